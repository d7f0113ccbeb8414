package services

import (
	"context"
	"fmt"

	"techmarket/internal/apperrors"
	"techmarket/internal/models"
	"techmarket/internal/repositories"
)

// CategoryService handles business logic related to categories.
type CategoryService struct {
	repo      repositories.CategoryRepository
	products  repositories.ProductRepository
	publisher EventPublisher
}

// NewCategoryService creates a new CategoryService. publisher may be nil.
func NewCategoryService(repo repositories.CategoryRepository, products repositories.ProductRepository,
	publisher EventPublisher) *CategoryService {
	return &CategoryService{repo: repo, products: products, publisher: publisher}
}

// GetAllCategories returns every category ordered by id.
func (s *CategoryService) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.List(ctx)
}

// GetCategoryByID returns a single category.
func (s *CategoryService) GetCategoryByID(ctx context.Context, id uint) (*models.Category, error) {
	return s.repo.GetByID(ctx, id)
}

// GetCategoryWithProducts retrieves a category with the products referencing it.
func (s *CategoryService) GetCategoryWithProducts(ctx context.Context, id uint) (*models.CategoryWithProducts, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	products, err := s.products.ListByCategoryID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.CategoryWithProducts{Category: *category, Products: products}, nil
}

// CreateCategory stores a new category after checking its name is free.
func (s *CategoryService) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := s.ensureNameFree(ctx, category.Name, 0); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	publish(s.publisher, EventCategoryCreated, category)
	return category, nil
}

// UpdateCategory applies a partial update to an existing category.
func (s *CategoryService) UpdateCategory(ctx context.Context, id uint, changes map[string]interface{}) (*models.Category, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if name, ok := changes["name"].(string); ok {
		if err := s.ensureNameFree(ctx, name, id); err != nil {
			return nil, err
		}
	}
	category, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	publish(s.publisher, EventCategoryUpdated, category)
	return category, nil
}

// DeleteCategory refuses to delete a category that still has products.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uint) (*models.Category, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	count, err := s.products.CountByCategoryID(ctx, id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperrors.Validation("Cannot delete category with associated products")
	}
	category, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	publish(s.publisher, EventCategoryDeleted, category)
	return category, nil
}

func (s *CategoryService) ensureNameFree(ctx context.Context, name string, self uint) error {
	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.CategoryID != self {
		return apperrors.Duplicate(fmt.Sprintf("Category with name '%s' already exists", name))
	}
	return nil
}
