package services

import (
	"context"

	"techmarket/internal/apperrors"
	"techmarket/internal/models"
	"techmarket/internal/repositories"
)

// ReviewService handles business logic related to reviews.
type ReviewService struct {
	repo      repositories.ReviewRepository
	products  repositories.ProductRepository
	users     repositories.UserRepository
	publisher EventPublisher
}

// NewReviewService creates a new ReviewService. publisher may be nil.
func NewReviewService(repo repositories.ReviewRepository, products repositories.ProductRepository,
	users repositories.UserRepository, publisher EventPublisher) *ReviewService {
	return &ReviewService{
		repo:      repo,
		products:  products,
		users:     users,
		publisher: publisher,
	}
}

// GetAllReviews retrieves every review, newest first.
func (s *ReviewService) GetAllReviews(ctx context.Context) ([]models.ReviewDetail, error) {
	return s.repo.List(ctx)
}

// GetReviewByID retrieves a single review by its ID.
func (s *ReviewService) GetReviewByID(ctx context.Context, id uint) (*models.ReviewDetail, error) {
	return s.repo.GetByID(ctx, id)
}

// GetReviewsByProduct retrieves the reviews of an existing product.
func (s *ReviewService) GetReviewsByProduct(ctx context.Context, productID uint) ([]models.ReviewDetail, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.ListByProductID(ctx, productID)
}

// GetReviewsByUser retrieves the reviews written by an existing user.
func (s *ReviewService) GetReviewsByUser(ctx context.Context, userID uint) ([]models.ReviewDetail, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByUserID(ctx, userID)
}

// CreateReview stores a review once both references exist and the user has
// not reviewed the product yet.
func (s *ReviewService) CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	if _, err := s.products.GetByID(ctx, review.ProductID); err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, review.UserID); err != nil {
		return nil, err
	}
	existing, err := s.repo.FindByUserAndProduct(ctx, review.UserID, review.ProductID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Duplicate("User has already reviewed this product")
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}
	publish(s.publisher, EventReviewCreated, review)
	return review, nil
}

// UpdateReview changes the rating and/or comment of an existing review.
func (s *ReviewService) UpdateReview(ctx context.Context, id uint, changes map[string]interface{}) (*models.Review, error) {
	review, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	publish(s.publisher, EventReviewUpdated, review)
	return review, nil
}

// DeleteReview removes a review and returns it.
func (s *ReviewService) DeleteReview(ctx context.Context, id uint) (*models.Review, error) {
	review, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	publish(s.publisher, EventReviewDeleted, review)
	return review, nil
}
