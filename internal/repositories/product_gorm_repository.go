package repositories

import (
	"context"
	"fmt"

	"techmarket/internal/apperrors"
	"techmarket/internal/models"

	"gorm.io/gorm"
)

const productNotFound = "Product not found"

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// List retrieves the products matching the filter.
func (r *GORMProductRepository) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := r.db.WithContext(ctx).Scopes(ProductSearch(filter)...).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", apperrors.FromStore(err, productNotFound))
	}
	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "product_id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, apperrors.FromStore(err, productNotFound))
	}
	return &product, nil
}

// FindByName looks a product up by its exact name.
func (r *GORMProductRepository) FindByName(ctx context.Context, name string) (*models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Where("name = ?", name).Limit(1).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find product by name: %w", apperrors.FromStore(err, productNotFound))
	}
	if len(products) == 0 {
		return nil, nil
	}
	return &products[0], nil
}

// ListByCategoryID retrieves the products assigned to a category.
func (r *GORMProductRepository) ListByCategoryID(ctx context.Context, categoryID uint) ([]models.Product, error) {
	products := make([]models.Product, 0)
	err := r.db.WithContext(ctx).Where("category_id = ?", categoryID).Order("product_id ASC").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products of category %d: %w", categoryID, apperrors.FromStore(err, productNotFound))
	}
	return products, nil
}

// CountByCategoryID counts the products assigned to a category.
func (r *GORMProductRepository) CountByCategoryID(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products of category %d: %w", categoryID, apperrors.FromStore(err, productNotFound))
	}
	return count, nil
}

// Create inserts a product; the store assigns the ID and timestamps.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", apperrors.FromStore(err, productNotFound))
	}
	return nil
}

// Update applies the allowed changes to a product. An empty change set
// leaves the row untouched and returns it as stored.
func (r *GORMProductRepository) Update(ctx context.Context, id uint, changes map[string]interface{}) (*models.Product, error) {
	changes = productUpdatable.filter(changes)
	if len(changes) == 0 {
		return r.GetByID(ctx, id)
	}
	res := r.db.WithContext(ctx).Model(&models.Product{}).Where("product_id = ?", id).Updates(changes)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update product %d: %w", id, apperrors.FromStore(res.Error, productNotFound))
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("product %d not found for update: %w", id, apperrors.NotFound(productNotFound))
	}
	return r.GetByID(ctx, id)
}

// Delete deletes a product by its ID.
func (r *GORMProductRepository) Delete(ctx context.Context, id uint) (*models.Product, error) {
	product, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "product_id = ?", id)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to delete product %d: %w", id, apperrors.FromStore(res.Error, productNotFound))
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("product %d not found for deletion: %w", id, apperrors.NotFound(productNotFound))
	}
	return product, nil
}
