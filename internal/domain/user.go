package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User types
const (
	UserTypeJobSeeker = "job_seeker"
	UserTypeEmployer  = "employer"
	UserTypeAdmin     = "admin"
)

// User is the embedding document for applications and saved jobs. Identity
// comes from an external provider; ExternalID is the opaque key it issues.
type User struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	ExternalID string               `bson:"external_id" json:"external_id"`
	Email      string               `bson:"email" json:"email"`
	FirstName  string               `bson:"first_name" json:"first_name"`
	LastName   string               `bson:"last_name" json:"last_name"`
	Phone      string               `bson:"phone,omitempty" json:"phone,omitempty"`
	Location   string               `bson:"location,omitempty" json:"location,omitempty"`
	Bio        string               `bson:"bio,omitempty" json:"bio,omitempty"`
	UserType   string               `bson:"user_type" json:"user_type"`
	// Applications keep insertion order; ordering for reads is applied_at desc.
	Applications []Application        `bson:"applications" json:"applications"`
	SavedJobs    []primitive.ObjectID `bson:"saved_jobs" json:"saved_jobs"`
	CreatedAt    time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time            `bson:"updated_at" json:"updated_at"`
}

// PublicProfile is the applicant snapshot exposed to employers.
type PublicProfile struct {
	ExternalID string `bson:"external_id" json:"external_id"`
	FirstName  string `bson:"first_name" json:"first_name"`
	LastName   string `bson:"last_name" json:"last_name"`
	Email      string `bson:"email" json:"email"`
	Location   string `bson:"location,omitempty" json:"location,omitempty"`
}

// Public returns the employer-visible snapshot of the user.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ExternalID: u.ExternalID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		Location:   u.Location,
	}
}

// HasApplied reports whether the user already holds an application for the job.
func (u *User) HasApplied(jobID primitive.ObjectID) bool {
	for _, app := range u.Applications {
		if app.JobID == jobID {
			return true
		}
	}
	return false
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByExternalID(ctx context.Context, externalID string) (*User, error)
	// EnsureByExternalID upserts the user keyed by external id in one atomic
	// store operation and returns the resulting document. Calling it for an
	// existing user is a no-op beyond the read.
	EnsureByExternalID(ctx context.Context, defaults *User) (*User, error)
	UpdateProfile(ctx context.Context, user *User) error
	// AppendApplication pushes the subdocument guarded against an existing
	// application for the same job; returns ErrDuplicate when the guard
	// matched nothing.
	AppendApplication(ctx context.Context, externalID string, app *Application) error
	UpdateApplicationStatus(ctx context.Context, externalID string, applicationID primitive.ObjectID, status string) error
	// FindByAppliedJob scans the collection for users holding an application
	// for the job.
	FindByAppliedJob(ctx context.Context, jobID primitive.ObjectID) ([]User, error)
	AddSavedJob(ctx context.Context, externalID string, jobID primitive.ObjectID) error
	RemoveSavedJob(ctx context.Context, externalID string, jobID primitive.ObjectID) error
}

// SyncUserInput is the payload of the explicit ensure-exists operation.
type SyncUserInput struct {
	ExternalID string `json:"externalUserId" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	FirstName  string `json:"firstName" validate:"omitempty,valid_name,no_emoji"`
	LastName   string `json:"lastName" validate:"omitempty,valid_name,no_emoji"`
	UserType   string `json:"userType" validate:"omitempty,oneof=job_seeker employer admin"`
}

// UpdateProfileInput carries mutable profile fields.
type UpdateProfileInput struct {
	FirstName string `json:"firstName" validate:"omitempty,valid_name,no_emoji"`
	LastName  string `json:"lastName" validate:"omitempty,valid_name,no_emoji"`
	Phone     string `json:"phone" validate:"omitempty,valid_phone"`
	Location  string `json:"location" validate:"omitempty,max=120"`
	Bio       string `json:"bio" validate:"omitempty,max=1000,no_emoji"`
}

type UserUsecase interface {
	// Sync is the explicit idempotent "ensure user exists" contract: first
	// sign-in creates the record, later calls refresh profile basics.
	Sync(ctx context.Context, in SyncUserInput) (*User, error)
	GetByExternalID(ctx context.Context, externalID string) (*User, error)
	UpdateProfile(ctx context.Context, externalID string, in UpdateProfileInput) (*User, error)
	// ToggleSavedJob saves the job when absent, removes it when present.
	ToggleSavedJob(ctx context.Context, externalID, jobID string) (saved bool, err error)
	ListSavedJobs(ctx context.Context, externalID string) ([]Job, error)
}
