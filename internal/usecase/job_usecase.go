package usecase

import (
	"context"
	"errors"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type jobUsecase struct {
	jobRepo      domain.JobRepository
	categoryRepo domain.CategoryRepository
	validate     *validator.Validate
}

func NewJobUsecase(
	jobRepo domain.JobRepository,
	categoryRepo domain.CategoryRepository,
	validate *validator.Validate,
) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:      jobRepo,
		categoryRepo: categoryRepo,
		validate:     validate,
	}
}

// resolveCategory validates an optional category reference.
func (uc *jobUsecase) resolveCategory(ctx context.Context, hex string) (*primitive.ObjectID, error) {
	if hex == "" {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return nil, apperror.InvalidID("Invalid category id format")
	}
	if _, err := uc.categoryRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Category not found")
		}
		return nil, apperror.Internal(err)
	}
	return &id, nil
}

func (uc *jobUsecase) CreateJob(ctx context.Context, in domain.CreateJobInput) (*domain.Job, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, apperror.Validation("Invalid job payload", validationDetails(err)...)
	}

	categoryID, err := uc.resolveCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}

	job := &domain.Job{
		Title:       in.Title,
		Company:     in.Company,
		Description: in.Description,
		Location:    in.Location,
		SalaryMin:   in.SalaryMin,
		SalaryMax:   in.SalaryMax,
		JobType:     in.JobType,
		CategoryID:  categoryID,
		PostedBy:    in.PostedBy,
		IsActive:    true,
	}

	if err := uc.jobRepo.Create(ctx, job); err != nil {
		return nil, apperror.Internal(err)
	}
	return job, nil
}

func (uc *jobUsecase) GetJob(ctx context.Context, idHex string) (*domain.Job, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, apperror.InvalidID("Invalid job id format")
	}

	job, err := uc.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	return job, nil
}

func (uc *jobUsecase) ListJobs(ctx context.Context, filter domain.JobFilter, page, pageSize int) ([]domain.Job, int64, error) {
	page, pageSize = normalizePage(page, pageSize)

	jobs, total, err := uc.jobRepo.Fetch(ctx, filter, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	if jobs == nil {
		jobs = []domain.Job{}
	}
	return jobs, total, nil
}

func (uc *jobUsecase) UpdateJob(ctx context.Context, idHex string, in domain.CreateJobInput) (*domain.Job, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, apperror.Validation("Invalid job payload", validationDetails(err)...)
	}

	job, err := uc.GetJob(ctx, idHex)
	if err != nil {
		return nil, err
	}

	categoryID, err := uc.resolveCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}

	job.Title = in.Title
	job.Company = in.Company
	job.Description = in.Description
	job.Location = in.Location
	job.SalaryMin = in.SalaryMin
	job.SalaryMax = in.SalaryMax
	job.JobType = in.JobType
	job.CategoryID = categoryID

	if err := uc.jobRepo.Update(ctx, job); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	return job, nil
}

func (uc *jobUsecase) DeleteJob(ctx context.Context, idHex string) error {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return apperror.InvalidID("Invalid job id format")
	}

	if err := uc.jobRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job not found")
		}
		return apperror.Internal(err)
	}
	return nil
}
