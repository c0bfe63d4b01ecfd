package usecase

import (
	"context"
	"errors"
	"strings"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userUsecase struct {
	userRepo domain.UserRepository
	jobRepo  domain.JobRepository
	validate *validator.Validate
}

func NewUserUsecase(
	userRepo domain.UserRepository,
	jobRepo domain.JobRepository,
	validate *validator.Validate,
) domain.UserUsecase {
	return &userUsecase{
		userRepo: userRepo,
		jobRepo:  jobRepo,
		validate: validate,
	}
}

// Sync is the explicit "ensure user exists" operation: an idempotent upsert
// keyed by external id, decoupled from the application-submission path so
// both can be exercised independently.
func (uc *userUsecase) Sync(ctx context.Context, in domain.SyncUserInput) (*domain.User, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, apperror.Validation("Invalid user payload", validationDetails(err)...)
	}

	userType := in.UserType
	if userType == "" {
		userType = domain.UserTypeJobSeeker
	}

	user, err := uc.userRepo.EnsureByExternalID(ctx, &domain.User{
		ExternalID: in.ExternalID,
		Email:      strings.ToLower(strings.TrimSpace(in.Email)),
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		UserType:   userType,
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return user, nil
}

func (uc *userUsecase) GetByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	if strings.TrimSpace(externalID) == "" {
		return nil, apperror.Validation("externalUserId is required")
	}

	user, err := uc.userRepo.GetByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

func (uc *userUsecase) UpdateProfile(ctx context.Context, externalID string, in domain.UpdateProfileInput) (*domain.User, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, apperror.Validation("Invalid profile payload", validationDetails(err)...)
	}

	user, err := uc.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}

	if in.FirstName != "" {
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		user.LastName = in.LastName
	}
	if in.Phone != "" {
		user.Phone = in.Phone
	}
	if in.Location != "" {
		user.Location = in.Location
	}
	if in.Bio != "" {
		user.Bio = in.Bio
	}

	if err := uc.userRepo.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

func (uc *userUsecase) ToggleSavedJob(ctx context.Context, externalID, jobIDHex string) (bool, error) {
	jobID, err := primitive.ObjectIDFromHex(jobIDHex)
	if err != nil {
		return false, apperror.InvalidID("Invalid job id format")
	}

	if _, err := uc.jobRepo.GetByID(ctx, jobID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, apperror.NotFound("Job not found")
		}
		return false, apperror.Internal(err)
	}

	user, err := uc.GetByExternalID(ctx, externalID)
	if err != nil {
		return false, err
	}

	for _, saved := range user.SavedJobs {
		if saved == jobID {
			if err := uc.userRepo.RemoveSavedJob(ctx, externalID, jobID); err != nil {
				return false, apperror.Internal(err)
			}
			return false, nil
		}
	}

	if err := uc.userRepo.AddSavedJob(ctx, externalID, jobID); err != nil {
		return false, apperror.Internal(err)
	}
	return true, nil
}

func (uc *userUsecase) ListSavedJobs(ctx context.Context, externalID string) ([]domain.Job, error) {
	user, err := uc.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}

	jobs, err := uc.jobRepo.GetByIDs(ctx, user.SavedJobs)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	// Keep the user's save order; drop references to vanished jobs.
	out := make([]domain.Job, 0, len(user.SavedJobs))
	for _, id := range user.SavedJobs {
		if job, ok := jobs[id]; ok {
			out = append(out, *job)
		}
	}
	return out, nil
}
