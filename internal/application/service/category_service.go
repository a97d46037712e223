package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/stockroom-api/internal/domain/entity"
	"github.com/sangkips/stockroom-api/internal/domain/repository"
	"github.com/sangkips/stockroom-api/pkg/apperror"
)

// CategoryService handles category-related operations
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	refRepo      repository.ReferenceRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repository.CategoryRepository, refRepo repository.ReferenceRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, refRepo: refRepo}
}

// CategoryInput represents the editable fields of a category
type CategoryInput struct {
	Name        string
	Description *string
}

func (in *CategoryInput) validate() error {
	var c fieldCheck
	c.check(strings.TrimSpace(in.Name) != "", "name", "name is required")
	return c.err()
}

// CreateCategory creates a new category
func (s *CategoryService) CreateCategory(ctx context.Context, input *CategoryInput) (*entity.Category, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	category := &entity.Category{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}
	return category, nil
}

// ListCategories lists categories matching search
func (s *CategoryService) ListCategories(ctx context.Context, search string) ([]entity.Category, error) {
	return s.categoryRepo.List(ctx, strings.TrimSpace(search))
}

// UpdateCategory replaces the editable fields of a category
func (s *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, input *CategoryInput) (*entity.Category, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = strings.TrimSpace(input.Name)
	category.Description = input.Description

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory deletes a category that no product uses
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}

	refs, err := s.refRepo.CategoryReferences(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return apperror.NewConflictError("Category is still assigned to products")
	}

	return s.categoryRepo.Delete(ctx, id)
}
