package repositories

import (
	"context"

	"techmarket/internal/models"
)

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	// FindByName returns nil without error when no category has the name.
	FindByName(ctx context.Context, name string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, id uint, changes map[string]interface{}) (*models.Category, error)
	Delete(ctx context.Context, id uint) (*models.Category, error)
}
