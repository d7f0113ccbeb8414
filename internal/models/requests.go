package models

// Request payloads. Pointer fields distinguish "absent" from a zero value, so
// the same type serves creation (with a presence check) and partial updates.
// The `message` tag is the client-facing text reported when the field fails
// validation or cannot be decoded; `range` replaces it when an upper bound or
// the cents rule fails. Fields are declared in validation order.

// ProductInput is the body of POST and PATCH /api/products.
type ProductInput struct {
	Name        *string  `json:"name" validate:"omitnil,min=1,max=50" message:"Name must be a non-empty string with maximum length of 50 characters"`
	Category    *string  `json:"category" validate:"omitnil,min=1,max=50" message:"Category must be a non-empty string with maximum length of 50 characters"`
	Price       *float64 `json:"price" validate:"omitnil,gt=0,lte=99999999.99,cents" message:"Price must be a positive number" range:"Price must not exceed 99999999.99 and may have at most 2 decimal places"`
	StockCount  *int     `json:"stock_count" validate:"omitnil,gte=0,lte=2147483647" message:"Stock count must be a non-negative integer" range:"Stock count must not exceed 2147483647"`
	Brand       *string  `json:"brand" validate:"omitnil,min=1,max=50" message:"Brand must be a non-empty string with maximum length of 50 characters"`
	IsAvailable *bool    `json:"is_available" message:"is_available must be a boolean"`
	Description *string  `json:"description" validate:"omitnil,max=999" message:"Description must be a string with maximum length of 999 characters"`
	ImageURL    *string  `json:"image_url" validate:"omitnil,max=999" message:"Image URL must be a string with maximum length of 999 characters"`
	CategoryID  *uint    `json:"category_id" validate:"omitnil,gt=0" message:"Category ID must be a positive integer"`
}

// MissingFields lists required creation fields that are absent. category may
// be omitted when category_id is given.
func (in ProductInput) MissingFields() []string {
	var missing []string
	if in.Name == nil {
		missing = append(missing, "name")
	}
	if in.Category == nil && in.CategoryID == nil {
		missing = append(missing, "category")
	}
	if in.Price == nil {
		missing = append(missing, "price")
	}
	if in.StockCount == nil {
		missing = append(missing, "stock_count")
	}
	if in.Brand == nil {
		missing = append(missing, "brand")
	}
	if in.IsAvailable == nil {
		missing = append(missing, "is_available")
	}
	return missing
}

// Product builds a new product from a complete creation payload.
func (in ProductInput) Product() *Product {
	p := &Product{
		Description: in.Description,
		ImageURL:    in.ImageURL,
		CategoryID:  in.CategoryID,
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.StockCount != nil {
		p.StockCount = *in.StockCount
	}
	if in.Brand != nil {
		p.Brand = *in.Brand
	}
	if in.IsAvailable != nil {
		p.IsAvailable = *in.IsAvailable
	}
	return p
}

// Changes returns the column/value pairs of the fields present in the payload.
func (in ProductInput) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if in.Name != nil {
		changes["name"] = *in.Name
	}
	if in.Category != nil {
		changes["category"] = *in.Category
	}
	if in.Price != nil {
		changes["price"] = *in.Price
	}
	if in.StockCount != nil {
		changes["stock_count"] = *in.StockCount
	}
	if in.Brand != nil {
		changes["brand"] = *in.Brand
	}
	if in.IsAvailable != nil {
		changes["is_available"] = *in.IsAvailable
	}
	if in.Description != nil {
		changes["description"] = *in.Description
	}
	if in.ImageURL != nil {
		changes["image_url"] = *in.ImageURL
	}
	if in.CategoryID != nil {
		changes["category_id"] = *in.CategoryID
	}
	return changes
}

// CategoryInput is the body of POST and PATCH /api/categories.
type CategoryInput struct {
	Name        *string `json:"name" validate:"omitnil,min=1,max=50" message:"Name must be a non-empty string with maximum length of 50 characters"`
	Description *string `json:"description" validate:"omitnil,max=255" message:"Description must be a string with maximum length of 255 characters"`
}

// MissingFields lists required creation fields that are absent.
func (in CategoryInput) MissingFields() []string {
	if in.Name == nil {
		return []string{"name"}
	}
	return nil
}

// Category builds the model to insert.
func (in CategoryInput) Category() *Category {
	c := &Category{Description: in.Description}
	if in.Name != nil {
		c.Name = *in.Name
	}
	return c
}

// Changes returns the columns a PATCH sets.
func (in CategoryInput) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if in.Name != nil {
		changes["name"] = *in.Name
	}
	if in.Description != nil {
		changes["description"] = *in.Description
	}
	return changes
}

// UserInput is the body of POST and PATCH /api/users.
type UserInput struct {
	Username     *string `json:"username" validate:"omitnil,min=1,max=50" message:"Username must be a non-empty string with maximum length of 50 characters"`
	Email        *string `json:"email" validate:"omitnil,max=100,simple_email" message:"Email must be a valid address (local@domain.tld) with maximum length of 100 characters"`
	PasswordHash *string `json:"password_hash" validate:"omitnil,min=1,max=255" message:"Password hash must be a non-empty string with maximum length of 255 characters"`
	FirstName    *string `json:"first_name" validate:"omitnil,max=50" message:"First name must be a string with maximum length of 50 characters"`
	LastName     *string `json:"last_name" validate:"omitnil,max=50" message:"Last name must be a string with maximum length of 50 characters"`
}

// MissingFields lists required creation fields that are absent.
func (in UserInput) MissingFields() []string {
	var missing []string
	if in.Username == nil {
		missing = append(missing, "username")
	}
	if in.Email == nil {
		missing = append(missing, "email")
	}
	if in.PasswordHash == nil {
		missing = append(missing, "password_hash")
	}
	return missing
}

// User builds the model to insert.
func (in UserInput) User() *User {
	u := &User{FirstName: in.FirstName, LastName: in.LastName}
	if in.Username != nil {
		u.Username = *in.Username
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.PasswordHash != nil {
		u.PasswordHash = *in.PasswordHash
	}
	return u
}

// Changes returns the columns a PATCH sets.
func (in UserInput) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if in.Username != nil {
		changes["username"] = *in.Username
	}
	if in.Email != nil {
		changes["email"] = *in.Email
	}
	if in.PasswordHash != nil {
		changes["password_hash"] = *in.PasswordHash
	}
	if in.FirstName != nil {
		changes["first_name"] = *in.FirstName
	}
	if in.LastName != nil {
		changes["last_name"] = *in.LastName
	}
	return changes
}

// ReviewInput is the body of POST /api/reviews.
type ReviewInput struct {
	ProductID *uint   `json:"product_id" validate:"omitnil,gt=0" message:"Product ID must be a positive integer"`
	UserID    *uint   `json:"user_id" validate:"omitnil,gt=0" message:"User ID must be a positive integer"`
	Rating    *int    `json:"rating" validate:"omitnil,min=1,max=5" message:"Rating must be an integer between 1 and 5"`
	Comment   *string `json:"comment" validate:"omitnil,max=999" message:"Comment must be a string with maximum length of 999 characters"`
}

// MissingFields lists required creation fields that are absent.
func (in ReviewInput) MissingFields() []string {
	var missing []string
	if in.ProductID == nil {
		missing = append(missing, "product_id")
	}
	if in.UserID == nil {
		missing = append(missing, "user_id")
	}
	if in.Rating == nil {
		missing = append(missing, "rating")
	}
	return missing
}

// Review builds the model to insert.
func (in ReviewInput) Review() *Review {
	r := &Review{Comment: in.Comment}
	if in.ProductID != nil {
		r.ProductID = *in.ProductID
	}
	if in.UserID != nil {
		r.UserID = *in.UserID
	}
	if in.Rating != nil {
		r.Rating = *in.Rating
	}
	return r
}

// ReviewUpdate is the body of PATCH /api/reviews/:id. Only rating and comment
// can change after creation.
type ReviewUpdate struct {
	Rating  *int    `json:"rating" validate:"omitnil,min=1,max=5" message:"Rating must be an integer between 1 and 5"`
	Comment *string `json:"comment" validate:"omitnil,max=999" message:"Comment must be a string with maximum length of 999 characters"`
}

// Changes returns the columns a PATCH sets. Only rating and comment are editable.
func (in ReviewUpdate) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if in.Rating != nil {
		changes["rating"] = *in.Rating
	}
	if in.Comment != nil {
		changes["comment"] = *in.Comment
	}
	return changes
}
