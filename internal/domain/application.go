package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Application statuses
const (
	ApplicationStatusApplied     = "applied"
	ApplicationStatusUnderReview = "under_review"
	ApplicationStatusInterview   = "interview"
	ApplicationStatusRejected    = "rejected"
	ApplicationStatusAccepted    = "accepted"
)

// ValidApplicationStatus reports membership in the status enum.
func ValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationStatusApplied, ApplicationStatusUnderReview,
		ApplicationStatusInterview, ApplicationStatusRejected,
		ApplicationStatusAccepted:
		return true
	}
	return false
}

// Application is a subdocument owned exclusively by a User. It has no
// lifecycle of its own; the Job side only sees the denormalized counter.
type Application struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	JobID       primitive.ObjectID `bson:"job_id" json:"job_id"`
	AppliedAt   time.Time          `bson:"applied_at" json:"applied_at"`
	Status      string             `bson:"status" json:"status"`
	CoverLetter string             `bson:"cover_letter,omitempty" json:"cover_letter,omitempty"`
	ResumeURL   string             `bson:"resume_url,omitempty" json:"resume_url,omitempty"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
}

// ApplicationWithJob is an application expanded with a job snapshot for
// read responses.
type ApplicationWithJob struct {
	Application
	Job *JobSummary `json:"job,omitempty"`
}

// JobApplicant is one flattened match of the employer-view scan: the
// application annotated with the applicant's public profile.
type JobApplicant struct {
	Application
	Applicant PublicProfile `json:"applicant"`
}

// JobApplicantList is the employer view of a job's applicants.
type JobApplicantList struct {
	Job        JobSummary            `json:"job"`
	Applicants []JobApplicant        `json:"applications"`
	Pagination ApplicationPagination `json:"-"`
}

// ApplicationPagination is the pagination block of application listings.
type ApplicationPagination struct {
	Current           int   `json:"current"`
	Total             int   `json:"total"`
	Count             int   `json:"count"`
	TotalApplications int64 `json:"totalApplications"`
}

// SubmitApplicationInput is the payload for submitting an application.
// Identifier format errors are reported separately from missing fields.
type SubmitApplicationInput struct {
	ExternalUserID string `json:"externalUserId" validate:"required"`
	JobID          string `json:"jobId" validate:"required"`
	CoverLetter    string `json:"coverLetter" validate:"omitempty,max=1000"`
	ResumeURL      string `json:"resumeUrl" validate:"omitempty,url"`
	Notes          string `json:"notes" validate:"omitempty,max=500"`
}

type ApplicationUsecase interface {
	// Submit runs the full submission protocol: job lookup, lazy user
	// provisioning, duplicate rejection, subdocument append, best-effort
	// counter increment, read-after-write job expansion.
	Submit(ctx context.Context, in SubmitApplicationInput) (*ApplicationWithJob, error)
	// ListByUser never provisions; an unknown identity yields an empty page.
	ListByUser(ctx context.Context, externalUserID string, page, limit int) ([]ApplicationWithJob, ApplicationPagination, error)
	// ListByJob fans out across the user store; cost scales with total user
	// count, mitigated by the multikey index on applications.job_id.
	ListByJob(ctx context.Context, jobID string, page, limit int) (*JobApplicantList, error)
	// UpdateStatus mutates one subdocument in place, authorized by identity
	// value-match against the owning document.
	UpdateStatus(ctx context.Context, applicationID, externalUserID, status string) (*ApplicationWithJob, error)
}
