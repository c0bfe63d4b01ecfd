package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mock Repositories
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) EnsureByExternalID(ctx context.Context, defaults *domain.User) (*domain.User, error) {
	args := m.Called(ctx, defaults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) UpdateProfile(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) AppendApplication(ctx context.Context, externalID string, app *domain.Application) error {
	return m.Called(ctx, externalID, app).Error(0)
}

func (m *MockUserRepo) UpdateApplicationStatus(ctx context.Context, externalID string, applicationID primitive.ObjectID, status string) error {
	return m.Called(ctx, externalID, applicationID, status).Error(0)
}

func (m *MockUserRepo) FindByAppliedJob(ctx context.Context, jobID primitive.ObjectID) ([]domain.User, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepo) AddSavedJob(ctx context.Context, externalID string, jobID primitive.ObjectID) error {
	return m.Called(ctx, externalID, jobID).Error(0)
}

func (m *MockUserRepo) RemoveSavedJob(ctx context.Context, externalID string, jobID primitive.ObjectID) error {
	return m.Called(ctx, externalID, jobID).Error(0)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockJobRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*domain.Job, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[primitive.ObjectID]*domain.Job), args.Error(1)
}

func (m *MockJobRepo) Fetch(ctx context.Context, filter domain.JobFilter, limit, offset int) ([]domain.Job, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}

func (m *MockJobRepo) Update(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockJobRepo) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockJobRepo) IncrementApplicationCount(ctx context.Context, id primitive.ObjectID, delta int) error {
	return m.Called(ctx, id, delta).Error(0)
}

func newValidator() *validator.Validate {
	v := validator.New()
	validation.RegisterValidators(v)
	return v
}

func appErrCode(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	return appErr.Code
}

func TestSubmitApplication(t *testing.T) {
	ctx := context.Background()
	jobID := primitive.NewObjectID()
	job := &domain.Job{ID: jobID, Title: "Backend Engineer", Company: "Acme", IsActive: true}

	t.Run("Should submit and increment the job counter", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(userRepo, jobRepo, newValidator())

		user := &domain.User{ExternalID: "user-1", Applications: []domain.Application{}}
		jobRepo.On("GetByID", ctx, jobID).Return(job, nil)
		userRepo.On("GetByExternalID", ctx, "user-1").Return(user, nil)
		userRepo.On("AppendApplication", ctx, "user-1", mock.AnythingOfType("*domain.Application")).Return(nil)
		jobRepo.On("IncrementApplicationCount", ctx, jobID, 1).Return(nil)

		result, err := uc.Submit(ctx, domain.SubmitApplicationInput{
			ExternalUserID: "user-1",
			JobID:          jobID.Hex(),
			CoverLetter:    "  I would be a great fit.  ",
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusApplied, result.Status)
		assert.Equal(t, jobID, result.JobID)
		assert.Equal(t, "I would be a great fit.", result.CoverLetter)
		assert.NotNil(t, result.Job)
		assert.Equal(t, "Backend Engineer", result.Job.Title)
		jobRepo.AssertCalled(t, "IncrementApplicationCount", ctx, jobID, 1)
	})

	t.Run("Should provision an unknown user before applying", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(userRepo, jobRepo, newValidator())

		jobRepo.On("GetByID", ctx, jobID).Return(job, nil)
		userRepo.On("GetByExternalID", ctx, "Fresh-User").Return(nil, domain.ErrNotFound)
		userRepo.On("EnsureByExternalID", ctx, mock.AnythingOfType("*domain.User")).Return(
			&domain.User{ExternalID: "Fresh-User"}, nil,
		).Run(func(args mock.Arguments) {
			defaults := args.Get(1).(*domain.User)
			assert.Equal(t, "Fresh-User", defaults.ExternalID)
			assert.Equal(t, "fresh-user@users.noreply.jobboard.local", defaults.Email)
			assert.Equal(t, domain.UserTypeJobSeeker, defaults.UserType)
		})
		userRepo.On("AppendApplication", ctx, "Fresh-User", mock.AnythingOfType("*domain.Application")).Return(nil)
		jobRepo.On("IncrementApplicationCount", ctx, jobID, 1).Return(nil)

		_, err := uc.Submit(ctx, domain.SubmitApplicationInput{
			ExternalUserID: "Fresh-User",
			JobID:          jobID.Hex(),
		})

		assert.NoError(t, err)
		userRepo.AssertCalled(t, "EnsureByExternalID", ctx, mock.AnythingOfType("*domain.User"))
	})

	t.Run("Should reject a repeat application for the same job", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(userRepo, jobRepo, newValidator())

		user := &domain.User{
			ExternalID:   "user-1",
			Applications: []domain.Application{{ID: primitive.NewObjectID(), JobID: jobID}},
		}
		jobRepo.On("GetByID", ctx, jobID).Return(job, nil)
		userRepo.On("GetByExternalID", ctx, "user-1").Return(user, nil)

		_, err := uc.Submit(ctx, domain.SubmitApplicationInput{
			ExternalUserID: "user-1",
			JobID:          jobID.Hex(),
		})

		assert.Error(t, err)
		assert.Equal(t, 409, appErrCode(t, err))
		userRepo.AssertNotCalled(t, "AppendApplication", mock.Anything, mock.Anything, mock.Anything)
		jobRepo.AssertNotCalled(t, "IncrementApplicationCount", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should reject when the store guard catches a concurrent duplicate", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(userRepo, jobRepo, newValidator())

		user := &domain.User{ExternalID: "user-1"}
		jobRepo.On("GetByID", ctx, jobID).Return(job, nil)
		userRepo.On("GetByExternalID", ctx, "user-1").Return(user, nil)
		userRepo.On("AppendApplication", ctx, "user-1", mock.AnythingOfType("*domain.Application")).Return(domain.ErrDuplicate)

		_, err := uc.Submit(ctx, domain.SubmitApplicationInput{
			ExternalUserID: "user-1",
			JobID:          jobID.Hex(),
		})

		assert.Error(t, err)
		assert.Equal(t, 409, appErrCode(t, err))
		jobRepo.AssertNotCalled(t, "IncrementApplicationCount", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should fail without provisioning when the job does not exist", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(userRepo, jobRepo, newValidator())

		missing := primitive.NewObjectID()
		jobRepo.On("GetByID", ctx, missing).Return(nil, domain.ErrNotFound)

		_, err := uc.Submit(ctx, domain.SubmitApplicationInput{
			ExternalUserID: "user-1",
			JobID:          missing.Hex(),
		})

		assert.Error(t, err)
		assert.Equal(t, 404, appErrCode(t, err))
		userRepo.AssertNotCalled(t, "GetByExternalID", mock.Anything, mock.Anything)
		userRepo.AssertNotCalled(t, "EnsureByExternalID", mock.Anything, mock.Anything)
	})

	t.Run("Should reject a malformed job id before touching the store", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(userRepo, jobRepo, newValidator())

		_, err := uc.Submit(ctx, domain.SubmitApplicationInput{
			ExternalUserID: "user-1",
			JobID:          "not-a-hex-id",
		})

		assert.Error(t, err)
		assert.Equal(t, 400, appErrCode(t, err))
		jobRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Should succeed even when the counter increment fails", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(userRepo, jobRepo, newValidator())

		user := &domain.User{ExternalID: "user-1"}
		jobRepo.On("GetByID", ctx, jobID).Return(job, nil)
		userRepo.On("GetByExternalID", ctx, "user-1").Return(user, nil)
		userRepo.On("AppendApplication", ctx, "user-1", mock.AnythingOfType("*domain.Application")).Return(nil)
		jobRepo.On("IncrementApplicationCount", ctx, jobID, 1).Return(errors.New("write timeout"))

		result, err := uc.Submit(ctx, domain.SubmitApplicationInput{
			ExternalUserID: "user-1",
			JobID:          jobID.Hex(),
		})

		assert.NoError(t, err)
		assert.NotNil(t, result)
	})

	t.Run("Should reject a missing externalUserId", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(userRepo, jobRepo, newValidator())

		_, err := uc.Submit(ctx, domain.SubmitApplicationInput{JobID: jobID.Hex()})

		assert.Error(t, err)
		assert.Equal(t, 400, appErrCode(t, err))
	})
}

func TestListApplicationsByUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Should return an empty page for an unknown user", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(userRepo, jobRepo, newValidator())

		userRepo.On("GetByExternalID", ctx, "ghost").Return(nil, domain.ErrNotFound)

		apps, pagination, err := uc.ListByUser(ctx, "ghost", 1, 10)

		assert.NoError(t, err)
		assert.Empty(t, apps)
		assert.Equal(t, domain.ApplicationPagination{Current: 1}, pagination)
	})

	t.Run("Should page newest-first regardless of insertion order", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(userRepo, jobRepo, newValidator())

		base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		jobID := primitive.NewObjectID()
		user := &domain.User{ExternalID: "user-1"}
		// Insert out of order; only applied_at should decide position.
		for _, offset := range []int{3, 14, 0, 7, 11, 1, 9, 5, 13, 2, 8, 4, 12, 6, 10} {
			user.Applications = append(user.Applications, domain.Application{
				ID:        primitive.NewObjectID(),
				JobID:     jobID,
				AppliedAt: base.Add(time.Duration(offset) * time.Hour),
				Status:    domain.ApplicationStatusApplied,
			})
		}

		userRepo.On("GetByExternalID", ctx, "user-1").Return(user, nil)
		jobRepo.On("GetByIDs", ctx, mock.Anything).Return(
			map[primitive.ObjectID]*domain.Job{jobID: {ID: jobID, Title: "Backend Engineer", Company: "Acme"}}, nil,
		)

		page1, pagination, err := uc.ListByUser(ctx, "user-1", 1, 10)
		assert.NoError(t, err)
		assert.Len(t, page1, 10)
		assert.Equal(t, 1, pagination.Current)
		assert.Equal(t, 2, pagination.Total)
		assert.Equal(t, 10, pagination.Count)
		assert.Equal(t, int64(15), pagination.TotalApplications)
		for i := 1; i < len(page1); i++ {
			assert.False(t, page1[i].AppliedAt.After(page1[i-1].AppliedAt))
		}
		assert.Equal(t, base.Add(14*time.Hour), page1[0].AppliedAt)
		assert.NotNil(t, page1[0].Job)

		page2, pagination, err := uc.ListByUser(ctx, "user-1", 2, 10)
		assert.NoError(t, err)
		assert.Len(t, page2, 5)
		assert.Equal(t, 2, pagination.Current)
		assert.Equal(t, 5, pagination.Count)
		assert.Equal(t, base, page2[4].AppliedAt)
	})

	t.Run("Should keep a nil job snapshot when the job vanished", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(userRepo, jobRepo, newValidator())

		user := &domain.User{
			ExternalID: "user-1",
			Applications: []domain.Application{
				{ID: primitive.NewObjectID(), JobID: primitive.NewObjectID(), AppliedAt: time.Now()},
			},
		}
		userRepo.On("GetByExternalID", ctx, "user-1").Return(user, nil)
		jobRepo.On("GetByIDs", ctx, mock.Anything).Return(map[primitive.ObjectID]*domain.Job{}, nil)

		apps, _, err := uc.ListByUser(ctx, "user-1", 1, 10)

		assert.NoError(t, err)
		assert.Len(t, apps, 1)
		assert.Nil(t, apps[0].Job)
	})
}

func TestListApplicantsByJob(t *testing.T) {
	ctx := context.Background()
	jobID := primitive.NewObjectID()
	otherJobID := primitive.NewObjectID()
	job := &domain.Job{ID: jobID, Title: "Backend Engineer", Company: "Acme"}

	t.Run("Should flatten only the matching applications", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(userRepo, jobRepo, newValidator())

		users := []domain.User{
			{
				ExternalID: "user-1",
				FirstName:  "Ada",
				Applications: []domain.Application{
					{ID: primitive.NewObjectID(), JobID: jobID, AppliedAt: time.Now().Add(-time.Hour)},
					{ID: primitive.NewObjectID(), JobID: otherJobID, AppliedAt: time.Now()},
				},
			},
			{
				ExternalID: "user-2",
				FirstName:  "Ben",
				Applications: []domain.Application{
					{ID: primitive.NewObjectID(), JobID: jobID, AppliedAt: time.Now()},
				},
			},
		}
		jobRepo.On("GetByID", ctx, jobID).Return(job, nil)
		userRepo.On("FindByAppliedJob", ctx, jobID).Return(users, nil)

		list, err := uc.ListByJob(ctx, jobID.Hex(), 1, 10)

		assert.NoError(t, err)
		assert.Equal(t, "Backend Engineer", list.Job.Title)
		assert.Len(t, list.Applicants, 2)
		// Newest first: user-2 applied later.
		assert.Equal(t, "Ben", list.Applicants[0].Applicant.FirstName)
		assert.Equal(t, int64(2), list.Pagination.TotalApplications)
	})

	t.Run("Should 404 for a job that does not exist", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(userRepo, jobRepo, newValidator())

		missing := primitive.NewObjectID()
		jobRepo.On("GetByID", ctx, missing).Return(nil, domain.ErrNotFound)

		_, err := uc.ListByJob(ctx, missing.Hex(), 1, 10)

		assert.Error(t, err)
		assert.Equal(t, 404, appErrCode(t, err))
		userRepo.AssertNotCalled(t, "FindByAppliedJob", mock.Anything, mock.Anything)
	})

	t.Run("Should return an empty window for a job with no applicants", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(userRepo, jobRepo, newValidator())

		jobRepo.On("GetByID", ctx, jobID).Return(job, nil)
		userRepo.On("FindByAppliedJob", ctx, jobID).Return([]domain.User{}, nil)

		list, err := uc.ListByJob(ctx, jobID.Hex(), 1, 10)

		assert.NoError(t, err)
		assert.NotNil(t, list.Applicants)
		assert.Len(t, list.Applicants, 0)
	})
}

func TestUpdateApplicationStatus(t *testing.T) {
	ctx := context.Background()
	applicationID := primitive.NewObjectID()
	jobID := primitive.NewObjectID()

	t.Run("Should reject an unknown status value", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(userRepo, jobRepo, newValidator())

		_, err := uc.UpdateStatus(ctx, applicationID.Hex(), "user-1", "hired")

		assert.Error(t, err)
		assert.Equal(t, 400, appErrCode(t, err))
		userRepo.AssertNotCalled(t, "GetByExternalID", mock.Anything, mock.Anything)
	})

	t.Run("Should update the status in place", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(userRepo, jobRepo, newValidator())

		user := &domain.User{
			ExternalID: "user-1",
			Applications: []domain.Application{
				{ID: applicationID, JobID: jobID, Status: domain.ApplicationStatusApplied},
			},
		}
		userRepo.On("GetByExternalID", ctx, "user-1").Return(user, nil)
		userRepo.On("UpdateApplicationStatus", ctx, "user-1", applicationID, domain.ApplicationStatusInterview).Return(nil)
		jobRepo.On("GetByID", ctx, jobID).Return(&domain.Job{ID: jobID, Title: "Backend Engineer"}, nil)

		result, err := uc.UpdateStatus(ctx, applicationID.Hex(), "user-1", domain.ApplicationStatusInterview)

		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusInterview, result.Status)
		assert.NotNil(t, result.Job)
	})

	t.Run("Should 404 when the identity does not own the application", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(userRepo, jobRepo, newValidator())

		stranger := &domain.User{ExternalID: "user-2"}
		userRepo.On("GetByExternalID", ctx, "user-2").Return(stranger, nil)

		_, err := uc.UpdateStatus(ctx, applicationID.Hex(), "user-2", domain.ApplicationStatusRejected)

		assert.Error(t, err)
		assert.Equal(t, 404, appErrCode(t, err))
		userRepo.AssertNotCalled(t, "UpdateApplicationStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should 404 for an unknown identity", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(userRepo, jobRepo, newValidator())

		userRepo.On("GetByExternalID", ctx, "ghost").Return(nil, domain.ErrNotFound)

		_, err := uc.UpdateStatus(ctx, applicationID.Hex(), "ghost", domain.ApplicationStatusAccepted)

		assert.Error(t, err)
		assert.Equal(t, 404, appErrCode(t, err))
	})
}
