package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact categories
const (
	ContactCategoryGeneral  = "general"
	ContactCategorySupport  = "support"
	ContactCategoryFeedback = "feedback"
	ContactCategoryBusiness = "business"
	ContactCategoryReport   = "report"
)

// Contact statuses. Resolution is one-way; nothing transitions back to new.
const (
	ContactStatusNew        = "new"
	ContactStatusInProgress = "in_progress"
	ContactStatusResolved   = "resolved"
	ContactStatusClosed     = "closed"
)

// Contact priorities
const (
	ContactPriorityLow    = "low"
	ContactPriorityMedium = "medium"
	ContactPriorityHigh   = "high"
	ContactPriorityUrgent = "urgent"
)

// ContactResponse is the one-shot response block attached on resolution.
type ContactResponse struct {
	Message     string    `bson:"message" json:"message"`
	RespondedAt time.Time `bson:"responded_at" json:"responded_at"`
	ResponderID string    `bson:"responder_id" json:"responder_id"`
}

type Contact struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Subject  string             `bson:"subject" json:"subject"`
	Message  string             `bson:"message" json:"message"`
	Category string             `bson:"category" json:"category"`
	Status   string             `bson:"status" json:"status"`
	Priority string             `bson:"priority" json:"priority"`
	// UserID is the external identity of an authenticated submitter, if any.
	UserID    string           `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Response  *ContactResponse `bson:"response,omitempty" json:"response,omitempty"`
	CreatedAt time.Time        `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time        `bson:"updated_at" json:"updated_at"`
}

// ContactStats aggregates inquiry counts by each enum dimension.
type ContactStats struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"byStatus"`
	ByCategory map[string]int64 `json:"byCategory"`
	ByPriority map[string]int64 `json:"byPriority"`
}

// ContactPagination is the pagination block of contact listings.
type ContactPagination struct {
	Current       int   `json:"current"`
	Total         int   `json:"total"`
	Count         int   `json:"count"`
	TotalContacts int64 `json:"totalContacts"`
}

type ContactRepository interface {
	Create(ctx context.Context, contact *Contact) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*Contact, error)
	FetchByUser(ctx context.Context, userID string, limit, offset int) ([]Contact, int64, error)
	Stats(ctx context.Context) (*ContactStats, error)
	// AttachResponse overwrites the response block and forces status to
	// resolved; safe to call repeatedly.
	AttachResponse(ctx context.Context, id primitive.ObjectID, resp *ContactResponse) error
}

// ContactNotifier delivers out-of-band notifications. Errors are logged and
// swallowed by callers; delivery never gates the request.
type ContactNotifier interface {
	NotifyInquiry(contact *Contact) error
	NotifyResponse(contact *Contact) error
}

type SubmitContactInput struct {
	Name     string `json:"name" validate:"required,valid_name,no_emoji,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Subject  string `json:"subject" validate:"required,max=200"`
	Message  string `json:"message" validate:"required,max=5000"`
	Category string `json:"category" validate:"omitempty,oneof=general support feedback business report"`
	Priority string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	UserID   string `json:"userId" validate:"omitempty"`
}

type RespondContactInput struct {
	Message     string `json:"message" validate:"required,max=5000"`
	ResponderID string `json:"responderId" validate:"required"`
}

type ContactUsecase interface {
	Submit(ctx context.Context, in SubmitContactInput) (*Contact, error)
	Stats(ctx context.Context) (*ContactStats, error)
	ListByUser(ctx context.Context, userID string, page, limit int) ([]Contact, ContactPagination, error)
	// Respond attaches a response and resolves the inquiry; re-invoking on a
	// resolved inquiry overwrites the response idempotently.
	Respond(ctx context.Context, id string, in RespondContactInput) (*Contact, error)
}
