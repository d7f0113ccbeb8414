package models

import "time"

// Category groups products. A category cannot be removed while products reference it.
type Category struct {
	CategoryID  uint      `json:"category_id" gorm:"primaryKey;column:category_id"`
	Name        string    `json:"name" gorm:"type:varchar(50);not null;uniqueIndex"`
	Description *string   `json:"description" gorm:"type:varchar(255)"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryWithProducts is a category with the products assigned to it.
type CategoryWithProducts struct {
	Category
	Products []Product `json:"products"`
}
