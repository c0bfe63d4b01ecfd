package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockContactRepo struct {
	mock.Mock
}

func (m *MockContactRepo) Create(ctx context.Context, contact *domain.Contact) error {
	return m.Called(ctx, contact).Error(0)
}

func (m *MockContactRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}

func (m *MockContactRepo) FetchByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Contact, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Contact), args.Get(1).(int64), args.Error(2)
}

func (m *MockContactRepo) Stats(ctx context.Context) (*domain.ContactStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContactStats), args.Error(1)
}

func (m *MockContactRepo) AttachResponse(ctx context.Context, id primitive.ObjectID, resp *domain.ContactResponse) error {
	return m.Called(ctx, id, resp).Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyInquiry(contact *domain.Contact) error {
	return m.Called(contact).Error(0)
}

func (m *MockNotifier) NotifyResponse(contact *domain.Contact) error {
	return m.Called(contact).Error(0)
}

// memCache is a tiny map-backed Cache for exercising read-through behavior.
type memCache struct {
	entries map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]byte{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *memCache) SetJSON(_ context.Context, key string, val any, _ time.Duration) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func (c *memCache) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

func TestSubmitContact(t *testing.T) {
	ctx := context.Background()

	input := domain.SubmitContactInput{
		Name:    "Jane Doe",
		Email:   "Jane@Example.com",
		Subject: "Billing question",
		Message: "I was charged twice.",
	}

	t.Run("Should default category and priority and notify support", func(t *testing.T) {
		repo := new(MockContactRepo)
		notifier := new(MockNotifier)
		uc := usecase.NewContactUsecase(repo, notifier, nil, time.Minute, newValidator())

		repo.On("Create", ctx, mock.AnythingOfType("*domain.Contact")).Return(nil)
		notifier.On("NotifyInquiry", mock.AnythingOfType("*domain.Contact")).Return(nil)

		contact, err := uc.Submit(ctx, input)

		assert.NoError(t, err)
		assert.Equal(t, domain.ContactCategoryGeneral, contact.Category)
		assert.Equal(t, domain.ContactPriorityMedium, contact.Priority)
		assert.Equal(t, domain.ContactStatusNew, contact.Status)
		assert.Equal(t, "jane@example.com", contact.Email)
		notifier.AssertCalled(t, "NotifyInquiry", mock.AnythingOfType("*domain.Contact"))
	})

	t.Run("Should succeed even when the notification fails", func(t *testing.T) {
		repo := new(MockContactRepo)
		notifier := new(MockNotifier)
		uc := usecase.NewContactUsecase(repo, notifier, nil, time.Minute, newValidator())

		repo.On("Create", ctx, mock.AnythingOfType("*domain.Contact")).Return(nil)
		notifier.On("NotifyInquiry", mock.AnythingOfType("*domain.Contact")).Return(errors.New("smtp timeout"))

		contact, err := uc.Submit(ctx, input)

		assert.NoError(t, err)
		assert.NotNil(t, contact)
	})

	t.Run("Should reject missing required fields", func(t *testing.T) {
		repo := new(MockContactRepo)
		uc := usecase.NewContactUsecase(repo, nil, nil, time.Minute, newValidator())

		_, err := uc.Submit(ctx, domain.SubmitContactInput{Name: "Jane Doe"})

		assert.Error(t, err)
		assert.Equal(t, 400, appErrCode(t, err))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should invalidate cached stats on submission", func(t *testing.T) {
		repo := new(MockContactRepo)
		cache := newMemCache()
		uc := usecase.NewContactUsecase(repo, nil, cache, time.Minute, newValidator())

		repo.On("Create", ctx, mock.AnythingOfType("*domain.Contact")).Return(nil)
		repo.On("Stats", ctx).Return(&domain.ContactStats{Total: 1}, nil)

		_, err := uc.Stats(ctx)
		assert.NoError(t, err)
		assert.NotEmpty(t, cache.entries)

		_, err = uc.Submit(ctx, input)
		assert.NoError(t, err)
		assert.Empty(t, cache.entries)
	})
}

func TestContactStats(t *testing.T) {
	ctx := context.Background()

	t.Run("Should serve repeated reads from the cache", func(t *testing.T) {
		repo := new(MockContactRepo)
		cache := newMemCache()
		uc := usecase.NewContactUsecase(repo, nil, cache, time.Minute, newValidator())

		repo.On("Stats", ctx).Return(&domain.ContactStats{
			Total:    3,
			ByStatus: map[string]int64{domain.ContactStatusNew: 3},
		}, nil).Once()

		first, err := uc.Stats(ctx)
		assert.NoError(t, err)
		second, err := uc.Stats(ctx)
		assert.NoError(t, err)

		assert.Equal(t, first.Total, second.Total)
		repo.AssertNumberOfCalls(t, "Stats", 1)
	})

	t.Run("Should fall through to the store without a cache", func(t *testing.T) {
		repo := new(MockContactRepo)
		uc := usecase.NewContactUsecase(repo, nil, nil, time.Minute, newValidator())

		repo.On("Stats", ctx).Return(&domain.ContactStats{Total: 7}, nil)

		stats, err := uc.Stats(ctx)

		assert.NoError(t, err)
		assert.Equal(t, int64(7), stats.Total)
	})
}

func TestRespondToContact(t *testing.T) {
	ctx := context.Background()
	contactID := primitive.NewObjectID()

	input := domain.RespondContactInput{
		Message:     "Refund issued, sorry for the trouble.",
		ResponderID: "admin-1",
	}

	t.Run("Should attach the response and resolve the inquiry", func(t *testing.T) {
		repo := new(MockContactRepo)
		notifier := new(MockNotifier)
		uc := usecase.NewContactUsecase(repo, notifier, nil, time.Minute, newValidator())

		repo.On("GetByID", ctx, contactID).Return(&domain.Contact{
			ID:     contactID,
			Email:  "jane@example.com",
			Status: domain.ContactStatusNew,
		}, nil)
		repo.On("AttachResponse", ctx, contactID, mock.AnythingOfType("*domain.ContactResponse")).Return(nil)
		notifier.On("NotifyResponse", mock.AnythingOfType("*domain.Contact")).Return(nil)

		contact, err := uc.Respond(ctx, contactID.Hex(), input)

		assert.NoError(t, err)
		assert.Equal(t, domain.ContactStatusResolved, contact.Status)
		assert.NotNil(t, contact.Response)
		assert.Equal(t, "admin-1", contact.Response.ResponderID)
	})

	t.Run("Should overwrite the response on an already resolved inquiry", func(t *testing.T) {
		repo := new(MockContactRepo)
		uc := usecase.NewContactUsecase(repo, nil, nil, time.Minute, newValidator())

		repo.On("GetByID", ctx, contactID).Return(&domain.Contact{
			ID:     contactID,
			Status: domain.ContactStatusResolved,
			Response: &domain.ContactResponse{
				Message:     "Original reply",
				ResponderID: "admin-0",
				RespondedAt: time.Now().Add(-time.Hour),
			},
		}, nil)
		repo.On("AttachResponse", ctx, contactID, mock.AnythingOfType("*domain.ContactResponse")).Return(nil)

		contact, err := uc.Respond(ctx, contactID.Hex(), input)

		assert.NoError(t, err)
		assert.Equal(t, "Refund issued, sorry for the trouble.", contact.Response.Message)
		assert.Equal(t, "admin-1", contact.Response.ResponderID)
	})

	t.Run("Should succeed even when the notification fails", func(t *testing.T) {
		repo := new(MockContactRepo)
		notifier := new(MockNotifier)
		uc := usecase.NewContactUsecase(repo, notifier, nil, time.Minute, newValidator())

		repo.On("GetByID", ctx, contactID).Return(&domain.Contact{ID: contactID}, nil)
		repo.On("AttachResponse", ctx, contactID, mock.AnythingOfType("*domain.ContactResponse")).Return(nil)
		notifier.On("NotifyResponse", mock.AnythingOfType("*domain.Contact")).Return(errors.New("smtp timeout"))

		contact, err := uc.Respond(ctx, contactID.Hex(), input)

		assert.NoError(t, err)
		assert.NotNil(t, contact)
	})

	t.Run("Should 404 for an unknown inquiry", func(t *testing.T) {
		repo := new(MockContactRepo)
		uc := usecase.NewContactUsecase(repo, nil, nil, time.Minute, newValidator())

		missing := primitive.NewObjectID()
		repo.On("GetByID", ctx, missing).Return(nil, domain.ErrNotFound)

		_, err := uc.Respond(ctx, missing.Hex(), input)

		assert.Error(t, err)
		assert.Equal(t, 404, appErrCode(t, err))
	})

	t.Run("Should reject a malformed inquiry id", func(t *testing.T) {
		repo := new(MockContactRepo)
		uc := usecase.NewContactUsecase(repo, nil, nil, time.Minute, newValidator())

		_, err := uc.Respond(ctx, "nope", input)

		assert.Error(t, err)
		assert.Equal(t, 400, appErrCode(t, err))
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestListContactsByUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Should page with a totalContacts count", func(t *testing.T) {
		repo := new(MockContactRepo)
		uc := usecase.NewContactUsecase(repo, nil, nil, time.Minute, newValidator())

		repo.On("FetchByUser", ctx, "user-1", 10, 0).Return(
			[]domain.Contact{{Subject: "A"}, {Subject: "B"}}, int64(12), nil,
		)

		contacts, pagination, err := uc.ListByUser(ctx, "user-1", 1, 10)

		assert.NoError(t, err)
		assert.Len(t, contacts, 2)
		assert.Equal(t, 1, pagination.Current)
		assert.Equal(t, 2, pagination.Total)
		assert.Equal(t, int64(12), pagination.TotalContacts)
	})

	t.Run("Should reject a blank user id", func(t *testing.T) {
		repo := new(MockContactRepo)
		uc := usecase.NewContactUsecase(repo, nil, nil, time.Minute, newValidator())

		_, _, err := uc.ListByUser(ctx, "  ", 1, 10)

		assert.Error(t, err)
		assert.Equal(t, 400, appErrCode(t, err))
	})
}
