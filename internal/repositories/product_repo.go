package repositories

import (
	"context"

	"techmarket/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	// FindByName returns nil without error when no product has the name.
	FindByName(ctx context.Context, name string) (*models.Product, error)
	ListByCategoryID(ctx context.Context, categoryID uint) ([]models.Product, error)
	CountByCategoryID(ctx context.Context, categoryID uint) (int64, error)
	Create(ctx context.Context, product *models.Product) error
	// Update applies the allow-listed subset of changes and returns the stored row.
	Update(ctx context.Context, id uint, changes map[string]interface{}) (*models.Product, error)
	// Delete removes the product and returns the row as it was before deletion.
	Delete(ctx context.Context, id uint) (*models.Product, error)
}
