package repositories

import (
	"context"
	"fmt"

	"techmarket/internal/apperrors"
	"techmarket/internal/models"

	"gorm.io/gorm"
)

const reviewNotFound = "Review not found"

const newestFirst = "r.created_at DESC, r.review_id DESC"

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{db: db}
}

func (r *GORMReviewRepository) joined(ctx context.Context, withProduct, withUser bool) *gorm.DB {
	selects := "r.*"
	q := r.db.WithContext(ctx).Table("reviews AS r")
	if withProduct {
		selects += ", p.name AS product_name"
		q = q.Joins("JOIN products p ON r.product_id = p.product_id")
	}
	if withUser {
		selects += ", u.username AS username"
		q = q.Joins("JOIN users u ON r.user_id = u.user_id")
	}
	return q.Select(selects)
}

// List retrieves every review, newest first.
func (r *GORMReviewRepository) List(ctx context.Context) ([]models.ReviewDetail, error) {
	reviews := make([]models.ReviewDetail, 0)
	if err := r.joined(ctx, true, true).Order(newestFirst).Scan(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", apperrors.FromStore(err, reviewNotFound))
	}
	return reviews, nil
}

// GetByID retrieves a single review with its product name and author.
func (r *GORMReviewRepository) GetByID(ctx context.Context, id uint) (*models.ReviewDetail, error) {
	var reviews []models.ReviewDetail
	if err := r.joined(ctx, true, true).Where("r.review_id = ?", id).Limit(1).Scan(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to get review %d: %w", id, apperrors.FromStore(err, reviewNotFound))
	}
	if len(reviews) == 0 {
		return nil, fmt.Errorf("review %d: %w", id, apperrors.NotFound(reviewNotFound))
	}
	return &reviews[0], nil
}

// ListByProductID retrieves the reviews of a product with their authors.
func (r *GORMReviewRepository) ListByProductID(ctx context.Context, productID uint) ([]models.ReviewDetail, error) {
	reviews := make([]models.ReviewDetail, 0)
	err := r.joined(ctx, false, true).Where("r.product_id = ?", productID).Order(newestFirst).Scan(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews of product %d: %w", productID, apperrors.FromStore(err, reviewNotFound))
	}
	return reviews, nil
}

// ListByUserID retrieves the reviews written by a user with the product names.
func (r *GORMReviewRepository) ListByUserID(ctx context.Context, userID uint) ([]models.ReviewDetail, error) {
	reviews := make([]models.ReviewDetail, 0)
	err := r.joined(ctx, true, false).Where("r.user_id = ?", userID).Order(newestFirst).Scan(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews of user %d: %w", userID, apperrors.FromStore(err, reviewNotFound))
	}
	return reviews, nil
}

// FindByUserAndProduct returns nil without error when the user has not reviewed the product.
func (r *GORMReviewRepository) FindByUserAndProduct(ctx context.Context, userID, productID uint) (*models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).Where("user_id = ? AND product_id = ?", userID, productID).Limit(1).Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find review: %w", apperrors.FromStore(err, reviewNotFound))
	}
	if len(reviews) == 0 {
		return nil, nil
	}
	return &reviews[0], nil
}

// Create inserts a review and fills its id.
func (r *GORMReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", apperrors.FromStore(err, reviewNotFound))
	}
	return nil
}

func (r *GORMReviewRepository) get(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, "review_id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get review %d: %w", id, apperrors.FromStore(err, reviewNotFound))
	}
	return &review, nil
}

// Update applies the allowed changes (rating, comment) to a review.
func (r *GORMReviewRepository) Update(ctx context.Context, id uint, changes map[string]interface{}) (*models.Review, error) {
	changes = reviewUpdatable.filter(changes)
	if len(changes) == 0 {
		return r.get(ctx, id)
	}
	res := r.db.WithContext(ctx).Model(&models.Review{}).Where("review_id = ?", id).Updates(changes)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update review %d: %w", id, apperrors.FromStore(res.Error, reviewNotFound))
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("review %d not found for update: %w", id, apperrors.NotFound(reviewNotFound))
	}
	return r.get(ctx, id)
}

// Delete removes a review and returns the deleted row.
func (r *GORMReviewRepository) Delete(ctx context.Context, id uint) (*models.Review, error) {
	review, err := r.get(ctx, id)
	if err != nil {
		return nil, err
	}
	res := r.db.WithContext(ctx).Delete(&models.Review{}, "review_id = ?", id)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to delete review %d: %w", id, apperrors.FromStore(res.Error, reviewNotFound))
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("review %d not found for deletion: %w", id, apperrors.NotFound(reviewNotFound))
	}
	return review, nil
}
