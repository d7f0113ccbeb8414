package models

import "time"

// User represents a customer account. PasswordHash is stored as supplied and
// never serialized.
type User struct {
	UserID       uint      `json:"user_id" gorm:"primaryKey;column:user_id"`
	Username     string    `json:"username" gorm:"type:varchar(50);not null;uniqueIndex"`
	Email        string    `json:"email" gorm:"type:varchar(100);not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`
	FirstName    *string   `json:"first_name" gorm:"type:varchar(50)"`
	LastName     *string   `json:"last_name" gorm:"type:varchar(50)"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserWithReviews is a user together with the reviews they wrote.
type UserWithReviews struct {
	User
	Reviews []ReviewDetail `json:"reviews"`
}
