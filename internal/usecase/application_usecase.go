package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type applicationUsecase struct {
	userRepo domain.UserRepository
	jobRepo  domain.JobRepository
	validate *validator.Validate
}

// NewApplicationUsecase creates the application workflow usecase.
func NewApplicationUsecase(
	userRepo domain.UserRepository,
	jobRepo domain.JobRepository,
	validate *validator.Validate,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		userRepo: userRepo,
		jobRepo:  jobRepo,
		validate: validate,
	}
}

// placeholderUser builds the defaults for a lazily provisioned account. The
// synthesized email keeps the unique index happy until the real profile is
// synced.
func placeholderUser(externalID string) *domain.User {
	return &domain.User{
		ExternalID: externalID,
		Email:      fmt.Sprintf("%s@users.noreply.jobboard.local", strings.ToLower(externalID)),
		FirstName:  "Job",
		LastName:   "Seeker",
		UserType:   domain.UserTypeJobSeeker,
	}
}

// Submit runs the submission protocol. The duplicate check and the append
// are one guarded store write; the counter increment stays a separate
// best-effort write whose failure only drifts the cache.
func (uc *applicationUsecase) Submit(ctx context.Context, in domain.SubmitApplicationInput) (*domain.ApplicationWithJob, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, apperror.Validation("Invalid application payload", validationDetails(err)...)
	}

	jobID, err := primitive.ObjectIDFromHex(in.JobID)
	if err != nil {
		return nil, apperror.InvalidID("Invalid job id format")
	}

	// 1. The job must exist before anything is provisioned or written.
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}

	// 2. Find or silently provision the user. Provisioning must never fail
	// merely because the record didn't previously exist.
	user, err := uc.userRepo.GetByExternalID(ctx, in.ExternalUserID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Internal(err)
		}
		user, err = uc.userRepo.EnsureByExternalID(ctx, placeholderUser(in.ExternalUserID))
		if err != nil {
			return nil, apperror.Internal(err)
		}
	}

	// 3. Fast duplicate rejection before the write.
	if user.HasApplied(jobID) {
		return nil, apperror.Conflict("You have already applied to this job")
	}

	app := &domain.Application{
		ID:          primitive.NewObjectID(),
		JobID:       jobID,
		AppliedAt:   time.Now().UTC(),
		Status:      domain.ApplicationStatusApplied,
		CoverLetter: strings.TrimSpace(in.CoverLetter),
		ResumeURL:   strings.TrimSpace(in.ResumeURL),
		Notes:       strings.TrimSpace(in.Notes),
	}

	// 4. Guarded append: the store re-checks for a duplicate atomically, so
	// two near-simultaneous submissions cannot both slip past step 3.
	if err := uc.userRepo.AppendApplication(ctx, user.ExternalID, app); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("You have already applied to this job")
		}
		return nil, apperror.Internal(err)
	}

	// 5. Counter increment is not atomic with the append. The application
	// record is authoritative, so a failed increment only under-counts.
	if err := uc.jobRepo.IncrementApplicationCount(ctx, jobID, 1); err != nil {
		logger.Log.WithFields(logrus.Fields{
			"job_id": jobID.Hex(),
			"error":  err.Error(),
		}).Warn("application_count increment failed; counter will under-count")
	}

	// 6. Read-after-write expansion for the response payload.
	summary := job.Summary()
	return &domain.ApplicationWithJob{
		Application: *app,
		Job:         &summary,
	}, nil
}

// ListByUser is a read-only, non-provisioning query: an unknown identity
// yields an empty page, not a not-found error.
func (uc *applicationUsecase) ListByUser(ctx context.Context, externalUserID string, page, limit int) ([]domain.ApplicationWithJob, domain.ApplicationPagination, error) {
	if strings.TrimSpace(externalUserID) == "" {
		return nil, domain.ApplicationPagination{}, apperror.Validation("externalUserId is required")
	}
	page, limit = normalizePage(page, limit)

	user, err := uc.userRepo.GetByExternalID(ctx, externalUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.ApplicationWithJob{}, domain.ApplicationPagination{Current: page}, nil
		}
		return nil, domain.ApplicationPagination{}, apperror.Internal(err)
	}

	apps := make([]domain.Application, len(user.Applications))
	copy(apps, user.Applications)
	sort.Slice(apps, func(i, j int) bool {
		return apps[i].AppliedAt.After(apps[j].AppliedAt)
	})

	total := len(apps)
	start, end, totalPages := pageWindow(total, page, limit)
	window := apps[start:end]

	expanded, err := uc.expandJobs(ctx, window)
	if err != nil {
		return nil, domain.ApplicationPagination{}, apperror.Internal(err)
	}

	return expanded, domain.ApplicationPagination{
		Current:           page,
		Total:             totalPages,
		Count:             len(expanded),
		TotalApplications: int64(total),
	}, nil
}

// ListByJob is the employer view. It fans out across the user store for
// matching subdocuments and flattens them with applicant snapshots.
func (uc *applicationUsecase) ListByJob(ctx context.Context, jobIDHex string, page, limit int) (*domain.JobApplicantList, error) {
	jobID, err := primitive.ObjectIDFromHex(jobIDHex)
	if err != nil {
		return nil, apperror.InvalidID("Invalid job id format")
	}
	page, limit = normalizePage(page, limit)

	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}

	users, err := uc.userRepo.FindByAppliedJob(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	var applicants []domain.JobApplicant
	for i := range users {
		profile := users[i].Public()
		for _, app := range users[i].Applications {
			if app.JobID == jobID {
				applicants = append(applicants, domain.JobApplicant{
					Application: app,
					Applicant:   profile,
				})
			}
		}
	}

	sort.Slice(applicants, func(i, j int) bool {
		return applicants[i].AppliedAt.After(applicants[j].AppliedAt)
	})

	total := len(applicants)
	start, end, totalPages := pageWindow(total, page, limit)
	window := applicants[start:end]
	if window == nil {
		window = []domain.JobApplicant{}
	}

	return &domain.JobApplicantList{
		Job:        job.Summary(),
		Applicants: window,
		Pagination: domain.ApplicationPagination{
			Current:           page,
			Total:             totalPages,
			Count:             len(window),
			TotalApplications: int64(total),
		},
	}, nil
}

// UpdateStatus mutates a single subdocument in place. Ownership is a
// value-match on the external identity, not a cryptographic guarantee.
func (uc *applicationUsecase) UpdateStatus(ctx context.Context, applicationIDHex, externalUserID, status string) (*domain.ApplicationWithJob, error) {
	if strings.TrimSpace(externalUserID) == "" || strings.TrimSpace(status) == "" {
		return nil, apperror.Validation("externalUserId and status are required")
	}
	if !domain.ValidApplicationStatus(status) {
		return nil, apperror.Validation("Invalid status. Must be: applied, under_review, interview, rejected, or accepted")
	}

	applicationID, err := primitive.ObjectIDFromHex(applicationIDHex)
	if err != nil {
		return nil, apperror.InvalidID("Invalid application id format")
	}

	user, err := uc.userRepo.GetByExternalID(ctx, externalUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}

	var target *domain.Application
	for i := range user.Applications {
		if user.Applications[i].ID == applicationID {
			target = &user.Applications[i]
			break
		}
	}
	if target == nil {
		return nil, apperror.NotFound("Application not found")
	}

	if err := uc.userRepo.UpdateApplicationStatus(ctx, externalUserID, applicationID, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}
	target.Status = status

	out := &domain.ApplicationWithJob{Application: *target}
	if job, err := uc.jobRepo.GetByID(ctx, target.JobID); err == nil {
		summary := job.Summary()
		out.Job = &summary
	}
	return out, nil
}

// expandJobs resolves job snapshots for a window of applications in one
// batched read. Applications whose job has vanished keep a nil snapshot.
func (uc *applicationUsecase) expandJobs(ctx context.Context, apps []domain.Application) ([]domain.ApplicationWithJob, error) {
	ids := make([]primitive.ObjectID, 0, len(apps))
	seen := make(map[primitive.ObjectID]bool, len(apps))
	for _, app := range apps {
		if !seen[app.JobID] {
			seen[app.JobID] = true
			ids = append(ids, app.JobID)
		}
	}

	jobs, err := uc.jobRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ApplicationWithJob, 0, len(apps))
	for _, app := range apps {
		item := domain.ApplicationWithJob{Application: app}
		if job, ok := jobs[app.JobID]; ok {
			summary := job.Summary()
			item.Job = &summary
		}
		out = append(out, item)
	}
	return out, nil
}
