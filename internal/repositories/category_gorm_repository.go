package repositories

import (
	"context"
	"fmt"

	"techmarket/internal/apperrors"
	"techmarket/internal/models"

	"gorm.io/gorm"
)

const categoryNotFound = "Category not found"

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{db: db}
}

// List returns every category ordered by id.
func (r *GORMCategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	categories := make([]models.Category, 0)
	if err := r.db.WithContext(ctx).Order("category_id ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", apperrors.FromStore(err, categoryNotFound))
	}
	return categories, nil
}

// GetByID fetches one category.
func (r *GORMCategoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "category_id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get category %d: %w", id, apperrors.FromStore(err, categoryNotFound))
	}
	return &category, nil
}

// FindByName returns nil without error when no category has the name.
func (r *GORMCategoryRepository) FindByName(ctx context.Context, name string) (*models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).Limit(1).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to find category by name: %w", apperrors.FromStore(err, categoryNotFound))
	}
	if len(categories) == 0 {
		return nil, nil
	}
	return &categories[0], nil
}

// Create inserts a category and fills its id.
func (r *GORMCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", apperrors.FromStore(err, categoryNotFound))
	}
	return nil
}

// Update applies the allowed columns of changes and returns the fresh row.
func (r *GORMCategoryRepository) Update(ctx context.Context, id uint, changes map[string]interface{}) (*models.Category, error) {
	changes = categoryUpdatable.filter(changes)
	if len(changes) == 0 {
		return r.GetByID(ctx, id)
	}
	res := r.db.WithContext(ctx).Model(&models.Category{}).Where("category_id = ?", id).Updates(changes)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update category %d: %w", id, apperrors.FromStore(res.Error, categoryNotFound))
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("category %d not found for update: %w", id, apperrors.NotFound(categoryNotFound))
	}
	return r.GetByID(ctx, id)
}

// Delete removes a category and returns the deleted row.
func (r *GORMCategoryRepository) Delete(ctx context.Context, id uint) (*models.Category, error) {
	category, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	res := r.db.WithContext(ctx).Delete(&models.Category{}, "category_id = ?", id)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to delete category %d: %w", id, apperrors.FromStore(res.Error, categoryNotFound))
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("category %d not found for deletion: %w", id, apperrors.NotFound(categoryNotFound))
	}
	return category, nil
}
