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

type categoryUsecase struct {
	categoryRepo domain.CategoryRepository
	validate     *validator.Validate
}

func NewCategoryUsecase(categoryRepo domain.CategoryRepository, validate *validator.Validate) domain.CategoryUsecase {
	return &categoryUsecase{
		categoryRepo: categoryRepo,
		validate:     validate,
	}
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return slug
}

func (uc *categoryUsecase) CreateCategory(ctx context.Context, in domain.CategoryInput) (*domain.Category, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, apperror.Validation("Invalid category payload", validationDetails(err)...)
	}

	category := &domain.Category{
		Name:        strings.TrimSpace(in.Name),
		Slug:        slugify(in.Name),
		Description: in.Description,
	}

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("Category already exists")
		}
		return nil, apperror.Internal(err)
	}
	return category, nil
}

func (uc *categoryUsecase) GetCategory(ctx context.Context, idHex string) (*domain.Category, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, apperror.InvalidID("Invalid category id format")
	}

	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Category not found")
		}
		return nil, apperror.Internal(err)
	}
	return category, nil
}

func (uc *categoryUsecase) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := uc.categoryRepo.Fetch(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}

func (uc *categoryUsecase) UpdateCategory(ctx context.Context, idHex string, in domain.CategoryInput) (*domain.Category, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, apperror.Validation("Invalid category payload", validationDetails(err)...)
	}

	category, err := uc.GetCategory(ctx, idHex)
	if err != nil {
		return nil, err
	}

	category.Name = strings.TrimSpace(in.Name)
	category.Slug = slugify(in.Name)
	category.Description = in.Description

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			return nil, apperror.Conflict("Category already exists")
		case errors.Is(err, domain.ErrNotFound):
			return nil, apperror.NotFound("Category not found")
		}
		return nil, apperror.Internal(err)
	}
	return category, nil
}

func (uc *categoryUsecase) DeleteCategory(ctx context.Context, idHex string) error {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return apperror.InvalidID("Invalid category id format")
	}

	if err := uc.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Category not found")
		}
		return apperror.Internal(err)
	}
	return nil
}
