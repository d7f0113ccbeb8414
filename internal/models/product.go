package models

import "time"

// Product represents a catalog item.
type Product struct {
	ProductID   uint      `json:"product_id" gorm:"primaryKey;column:product_id"`
	Name        string    `json:"name" gorm:"type:varchar(50);not null;uniqueIndex"`
	Category    string    `json:"category" gorm:"type:varchar(50)"`
	CategoryID  *uint     `json:"category_id" gorm:"index"`
	Description *string   `json:"description" gorm:"type:varchar(999)"`
	Price       float64   `json:"price" gorm:"type:numeric(10,2);not null"`
	StockCount  int       `json:"stock_count" gorm:"not null"`
	Brand       string    `json:"brand" gorm:"type:varchar(50)"`
	ImageURL    *string   `json:"image_url" gorm:"type:varchar(999)"`
	IsAvailable bool      `json:"is_available" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	CategoryRecord *Category `json:"-" gorm:"foreignKey:CategoryID;references:CategoryID;constraint:OnDelete:RESTRICT"`
}

// ProductWithReviews is a product together with every review written for it.
type ProductWithReviews struct {
	Product
	Reviews []ReviewDetail `json:"reviews"`
}

// ProductSort selects the ordering of a product search.
type ProductSort string

const (
	SortByID        ProductSort = ""
	SortByPriceAsc  ProductSort = "price_asc"
	SortByPriceDesc ProductSort = "price_desc"
)

// ProductFilter holds the already-validated predicates of a product search.
// Zero values mean "no predicate".
type ProductFilter struct {
	Sort        ProductSort
	Available   *bool
	MinPrice    *float64
	MaxPrice    *float64
	Brand       string
	Category    string
	CategoryID  *uint
	NamePattern string
}
