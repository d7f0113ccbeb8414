package models

import "time"

// Review is a rating left by a user on a product. A user reviews a product at most once.
type Review struct {
	ReviewID  uint      `json:"review_id" gorm:"primaryKey;column:review_id"`
	ProductID uint      `json:"product_id" gorm:"not null;uniqueIndex:idx_reviews_user_product,priority:2"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_reviews_user_product,priority:1"`
	Rating    int       `json:"rating" gorm:"not null"`
	Comment   *string   `json:"comment" gorm:"type:varchar(999)"`
	CreatedAt time.Time `json:"created_at"`

	Product *Product `json:"-" gorm:"foreignKey:ProductID;references:ProductID;constraint:OnDelete:RESTRICT"`
	User    *User    `json:"-" gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:RESTRICT"`
}

// ReviewDetail is a review joined with the reviewed product's name and the
// author's username. Either may be empty when the query did not join it.
type ReviewDetail struct {
	Review
	ProductName string `json:"product_name,omitempty"`
	Username    string `json:"username,omitempty"`
}
