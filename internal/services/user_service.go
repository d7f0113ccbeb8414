package services

import (
	"context"
	"fmt"

	"techmarket/internal/apperrors"
	"techmarket/internal/models"
	"techmarket/internal/repositories"
)

// UserService handles business logic related to users. The password hash is
// stored exactly as received.
type UserService struct {
	repo      repositories.UserRepository
	reviews   repositories.ReviewRepository
	publisher EventPublisher
}

// NewUserService creates a new UserService. publisher may be nil.
func NewUserService(repo repositories.UserRepository, reviews repositories.ReviewRepository,
	publisher EventPublisher) *UserService {
	return &UserService{repo: repo, reviews: reviews, publisher: publisher}
}

// GetAllUsers returns every user ordered by id.
func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.repo.List(ctx)
}

// GetUserByID returns a single user.
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetUserWithReviews retrieves a user with the reviews they wrote.
func (s *UserService) GetUserWithReviews(ctx context.Context, id uint) (*models.UserWithReviews, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.ListByUserID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.UserWithReviews{User: *user, Reviews: reviews}, nil
}

// CreateUser registers a new user. Username is checked before email.
func (s *UserService) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if err := s.ensureUnique(ctx, user.Username, user.Email, 0); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	publish(s.publisher, EventUserCreated, user)
	return user, nil
}

// UpdateUser applies a partial update, checking only the unique keys it changes.
func (s *UserService) UpdateUser(ctx context.Context, id uint, changes map[string]interface{}) (*models.User, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	username, _ := changes["username"].(string)
	email, _ := changes["email"].(string)
	if err := s.ensureUnique(ctx, username, email, id); err != nil {
		return nil, err
	}
	user, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	publish(s.publisher, EventUserUpdated, user)
	return user, nil
}

// DeleteUser removes a user and returns it.
func (s *UserService) DeleteUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	publish(s.publisher, EventUserDeleted, user)
	return user, nil
}

// ensureUnique skips empty keys, so partial updates only check what they change.
func (s *UserService) ensureUnique(ctx context.Context, username, email string, self uint) error {
	if username != "" {
		existing, err := s.repo.FindByUsername(ctx, username)
		if err != nil {
			return err
		}
		if existing != nil && existing.UserID != self {
			return apperrors.Duplicate(fmt.Sprintf("User with username '%s' already exists", username))
		}
	}
	if email != "" {
		existing, err := s.repo.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil && existing.UserID != self {
			return apperrors.Duplicate(fmt.Sprintf("User with email '%s' already exists", email))
		}
	}
	return nil
}
