package repositories

import (
	"context"

	"techmarket/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	// FindByUsername and FindByEmail return nil without error when nothing matches.
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id uint, changes map[string]interface{}) (*models.User, error)
	Delete(ctx context.Context, id uint) (*models.User, error)
}
