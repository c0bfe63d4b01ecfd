package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/cache"
	"go-jobboard-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const contactStatsCacheKey = "contact:stats"

type contactUsecase struct {
	contactRepo domain.ContactRepository
	notifier    domain.ContactNotifier
	cache       cache.Cache
	statsTTL    time.Duration
	validate    *validator.Validate
}

// NewContactUsecase builds the contact inquiry usecase. notifier and cache may
// be nil when email or redis are not configured; both paths degrade quietly.
func NewContactUsecase(
	contactRepo domain.ContactRepository,
	notifier domain.ContactNotifier,
	statsCache cache.Cache,
	statsTTL time.Duration,
	validate *validator.Validate,
) domain.ContactUsecase {
	return &contactUsecase{
		contactRepo: contactRepo,
		notifier:    notifier,
		cache:       statsCache,
		statsTTL:    statsTTL,
		validate:    validate,
	}
}

func (uc *contactUsecase) Submit(ctx context.Context, in domain.SubmitContactInput) (*domain.Contact, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, apperror.Validation("Invalid contact payload", validationDetails(err)...)
	}

	category := in.Category
	if category == "" {
		category = domain.ContactCategoryGeneral
	}
	priority := in.Priority
	if priority == "" {
		priority = domain.ContactPriorityMedium
	}

	contact := &domain.Contact{
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Subject:  strings.TrimSpace(in.Subject),
		Message:  strings.TrimSpace(in.Message),
		Category: category,
		Status:   domain.ContactStatusNew,
		Priority: priority,
		UserID:   in.UserID,
	}

	if err := uc.contactRepo.Create(ctx, contact); err != nil {
		return nil, apperror.Internal(err)
	}

	uc.invalidateStats(ctx)

	if uc.notifier != nil {
		if err := uc.notifier.NotifyInquiry(contact); err != nil {
			logger.Log.WithFields(logrus.Fields{
				"contact_id": contact.ID.Hex(),
				"error":      err.Error(),
			}).Warn("contact inquiry notification failed")
		}
	}

	return contact, nil
}

func (uc *contactUsecase) Stats(ctx context.Context) (*domain.ContactStats, error) {
	if uc.cache != nil {
		var cached domain.ContactStats
		hit, err := uc.cache.GetJSON(ctx, contactStatsCacheKey, &cached)
		if err != nil {
			logger.Log.WithField("error", err.Error()).Warn("contact stats cache read failed")
		} else if hit {
			return &cached, nil
		}
	}

	stats, err := uc.contactRepo.Stats(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if uc.cache != nil {
		if err := uc.cache.SetJSON(ctx, contactStatsCacheKey, stats, uc.statsTTL); err != nil {
			logger.Log.WithField("error", err.Error()).Warn("contact stats cache write failed")
		}
	}
	return stats, nil
}

func (uc *contactUsecase) ListByUser(ctx context.Context, userID string, page, limit int) ([]domain.Contact, domain.ContactPagination, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ContactPagination{}, apperror.Validation("User id is required")
	}
	page, limit = normalizePage(page, limit)

	contacts, total, err := uc.contactRepo.FetchByUser(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, domain.ContactPagination{}, apperror.Internal(err)
	}
	if contacts == nil {
		contacts = []domain.Contact{}
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return contacts, domain.ContactPagination{
		Current:       page,
		Total:         totalPages,
		Count:         len(contacts),
		TotalContacts: total,
	}, nil
}

func (uc *contactUsecase) Respond(ctx context.Context, idHex string, in domain.RespondContactInput) (*domain.Contact, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, apperror.Validation("Invalid response payload", validationDetails(err)...)
	}

	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, apperror.InvalidID("Invalid contact id format")
	}

	contact, err := uc.contactRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Contact inquiry not found")
		}
		return nil, apperror.Internal(err)
	}

	resp := &domain.ContactResponse{
		Message:     strings.TrimSpace(in.Message),
		RespondedAt: time.Now().UTC(),
		ResponderID: in.ResponderID,
	}
	if err := uc.contactRepo.AttachResponse(ctx, id, resp); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Contact inquiry not found")
		}
		return nil, apperror.Internal(err)
	}

	contact.Response = resp
	contact.Status = domain.ContactStatusResolved

	uc.invalidateStats(ctx)

	if uc.notifier != nil {
		if err := uc.notifier.NotifyResponse(contact); err != nil {
			logger.Log.WithFields(logrus.Fields{
				"contact_id": contact.ID.Hex(),
				"error":      err.Error(),
			}).Warn("contact response notification failed")
		}
	}

	return contact, nil
}

func (uc *contactUsecase) invalidateStats(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Del(ctx, contactStatsCacheKey); err != nil {
		logger.Log.WithField("error", err.Error()).Warn("contact stats cache invalidation failed")
	}
}
