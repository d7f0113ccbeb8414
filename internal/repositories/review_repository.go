package repositories

import (
	"context"

	"techmarket/internal/models"
)

// ReviewRepository defines the interface for review data access. Read
// methods return reviews joined with the product name and/or username.
type ReviewRepository interface {
	List(ctx context.Context) ([]models.ReviewDetail, error)
	GetByID(ctx context.Context, id uint) (*models.ReviewDetail, error)
	ListByProductID(ctx context.Context, productID uint) ([]models.ReviewDetail, error)
	ListByUserID(ctx context.Context, userID uint) ([]models.ReviewDetail, error)
	// FindByUserAndProduct returns nil without error when the user has not reviewed the product.
	FindByUserAndProduct(ctx context.Context, userID, productID uint) (*models.Review, error)
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, id uint, changes map[string]interface{}) (*models.Review, error)
	Delete(ctx context.Context, id uint) (*models.Review, error)
}
