package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Job struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title       string              `bson:"title" json:"title"`
	Company     string              `bson:"company" json:"company"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	Location    string              `bson:"location,omitempty" json:"location,omitempty"`
	SalaryMin   float64             `bson:"salary_min,omitempty" json:"salary_min,omitempty"`
	SalaryMax   float64             `bson:"salary_max,omitempty" json:"salary_max,omitempty"`
	JobType     string              `bson:"job_type,omitempty" json:"job_type,omitempty"`
	CategoryID  *primitive.ObjectID `bson:"category_id,omitempty" json:"category_id,omitempty"`
	PostedBy    string              `bson:"posted_by,omitempty" json:"posted_by,omitempty"`
	// ApplicationCount is a denormalized cache incremented on submission.
	// It is never recomputed on read; drift is accepted.
	ApplicationCount int64     `bson:"application_count" json:"application_count"`
	IsActive         bool      `bson:"is_active" json:"is_active"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time `bson:"updated_at" json:"updated_at"`
}

// JobSummary is the snapshot embedded in application responses.
type JobSummary struct {
	ID       primitive.ObjectID `json:"id"`
	Title    string             `json:"title"`
	Company  string             `json:"company"`
	Location string             `json:"location,omitempty"`
}

// Summary returns the snapshot exposed alongside applications.
func (j *Job) Summary() JobSummary {
	return JobSummary{
		ID:       j.ID,
		Title:    j.Title,
		Company:  j.Company,
		Location: j.Location,
	}
}

// JobFilter narrows job listings.
type JobFilter struct {
	CategoryID *primitive.ObjectID
	Query      string // matched against title and company
	PostedBy   string
	ActiveOnly bool
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*Job, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*Job, error)
	Fetch(ctx context.Context, filter JobFilter, limit, offset int) ([]Job, int64, error)
	Update(ctx context.Context, job *Job) error
	// SoftDelete flips is_active; job documents are never removed because
	// application subdocuments keep referencing them.
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
	// IncrementApplicationCount is an independent, unsynchronized write
	// relative to the subdocument append; callers treat failure as drift,
	// not as a request failure.
	IncrementApplicationCount(ctx context.Context, id primitive.ObjectID, delta int) error
}

type CreateJobInput struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Company     string  `json:"company" validate:"required,valid_name,max=200"`
	Description string  `json:"description" validate:"omitempty,max=10000"`
	Location    string  `json:"location" validate:"omitempty,max=120"`
	SalaryMin   float64 `json:"salary_min" validate:"omitempty,gte=0"`
	SalaryMax   float64 `json:"salary_max" validate:"omitempty,gtefield=SalaryMin"`
	JobType     string  `json:"job_type" validate:"omitempty,oneof=full_time part_time contract internship remote"`
	CategoryID  string  `json:"category_id" validate:"omitempty"`
	PostedBy    string  `json:"posted_by" validate:"omitempty"`
}

type JobUsecase interface {
	CreateJob(ctx context.Context, in CreateJobInput) (*Job, error)
	GetJob(ctx context.Context, id string) (*Job, error)
	ListJobs(ctx context.Context, filter JobFilter, page, pageSize int) ([]Job, int64, error)
	UpdateJob(ctx context.Context, id string, in CreateJobInput) (*Job, error)
	DeleteJob(ctx context.Context, id string) error
}
