package services

import (
	"context"
	"fmt"

	"techmarket/internal/apperrors"
	"techmarket/internal/models"
	"techmarket/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo       repositories.ProductRepository
	categories repositories.CategoryRepository
	reviews    repositories.ReviewRepository
	publisher  EventPublisher
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(repo repositories.ProductRepository, categories repositories.CategoryRepository,
	reviews repositories.ReviewRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:       repo,
		categories: categories,
		reviews:    reviews,
		publisher:  publisher,
	}
}

// GetAllProducts retrieves the products matching the filter.
func (s *ProductService) GetAllProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	return s.repo.List(ctx, filter)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// GetProductWithReviews retrieves a product together with its reviews.
func (s *ProductService) GetProductWithReviews(ctx context.Context, id uint) (*models.ProductWithReviews, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.ListByProductID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.ProductWithReviews{Product: *product, Reviews: reviews}, nil
}

// CreateProduct creates a new product after the duplicate-name and category checks.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := s.ensureNameFree(ctx, product.Name, 0); err != nil {
		return nil, err
	}
	if product.CategoryID != nil {
		category, err := s.category(ctx, *product.CategoryID)
		if err != nil {
			return nil, err
		}
		if product.Category == "" {
			product.Category = category.Name
		}
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	publish(s.publisher, EventProductCreated, product)
	return product, nil
}

// UpdateProduct applies a partial update to an existing product, reporting an
// unknown id before any conflict. Renames are checked against other
// products; a new category_id must reference an existing category and, unless
// the same payload renames the category, refreshes the category name.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, changes map[string]interface{}) (*models.Product, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if name, ok := changes["name"].(string); ok {
		if err := s.ensureNameFree(ctx, name, id); err != nil {
			return nil, err
		}
	}
	if categoryID, ok := changes["category_id"].(uint); ok {
		category, err := s.category(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		if _, renamed := changes["category"]; !renamed {
			changes["category"] = category.Name
		}
	}
	product, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	publish(s.publisher, EventProductUpdated, product)
	return product, nil
}

// DeleteProduct deletes a product by its ID and returns the deleted row.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	publish(s.publisher, EventProductDeleted, product)
	return product, nil
}

func (s *ProductService) ensureNameFree(ctx context.Context, name string, self uint) error {
	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ProductID != self {
		return apperrors.Duplicate(fmt.Sprintf("Product with name '%s' already exists", name))
	}
	return nil
}

func (s *ProductService) category(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if apperrors.Is(err, apperrors.KindNotFound) {
		return nil, apperrors.ValidationField("category_id", fmt.Sprintf("Category with id %d does not exist", id))
	}
	return category, err
}
