package repositories

import (
	"context"
	"fmt"

	"techmarket/internal/apperrors"
	"techmarket/internal/models"

	"gorm.io/gorm"
)

const userNotFound = "User not found"

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// List retrieves every user ordered by ID.
func (r *GORMUserRepository) List(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := r.db.WithContext(ctx).Order("user_id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", apperrors.FromStore(err, userNotFound))
	}
	return users, nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "user_id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, apperrors.FromStore(err, userNotFound))
	}
	return &user, nil
}

// FindByUsername retrieves a user by their username from the database.
func (r *GORMUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findBy(ctx, "username", username)
}

// FindByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findBy(ctx, "email", email)
}

func (r *GORMUserRepository) findBy(ctx context.Context, column, value string) (*models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Where(column+" = ?", value).Limit(1).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to find user by %s: %w", column, apperrors.FromStore(err, userNotFound))
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", apperrors.FromStore(err, userNotFound))
	}
	return nil
}

// Update applies the allowed changes to a user.
func (r *GORMUserRepository) Update(ctx context.Context, id uint, changes map[string]interface{}) (*models.User, error) {
	changes = userUpdatable.filter(changes)
	if len(changes) == 0 {
		return r.GetByID(ctx, id)
	}
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("user_id = ?", id).Updates(changes)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update user %d: %w", id, apperrors.FromStore(res.Error, userNotFound))
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("user %d not found for update: %w", id, apperrors.NotFound(userNotFound))
	}
	return r.GetByID(ctx, id)
}

// Delete deletes a user by their ID.
func (r *GORMUserRepository) Delete(ctx context.Context, id uint) (*models.User, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	res := r.db.WithContext(ctx).Delete(&models.User{}, "user_id = ?", id)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to delete user %d: %w", id, apperrors.FromStore(res.Error, userNotFound))
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("user %d not found for deletion: %w", id, apperrors.NotFound(userNotFound))
	}
	return user, nil
}
