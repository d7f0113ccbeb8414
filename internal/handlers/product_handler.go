package handlers

import (
	"techmarket/internal/models"
	"techmarket/internal/services"
	"techmarket/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validation.Validator
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, validate *validation.Validator) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validate,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.GetAllProducts)
	productRoutes.Get("/:id/reviews", h.GetProductWithReviews)
	productRoutes.Get("/:id", h.GetProductByID)
	productRoutes.Post("/", h.CreateProduct)
	productRoutes.Patch("/:id", h.UpdateProduct)
	productRoutes.Delete("/:id", h.DeleteProduct)
}

// GetAllProducts handles the product search. Every query parameter is optional.
func (h *ProductHandler) GetAllProducts(c *fiber.Ctx) error {
	filter, err := validation.ProductFilter(c.Queries())
	if err != nil {
		return err
	}
	products, err := h.service.GetAllProducts(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// GetProductByID handles fetching a single product by ID.
func (h *ProductHandler) GetProductByID(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// GetProductWithReviews handles fetching a product with its reviews.
func (h *ProductHandler) GetProductWithReviews(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	product, err := h.service.GetProductWithReviews(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// CreateProduct handles creating a new product.
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var in models.ProductInput
	if err := decodeCreate(c, h.validate, &in); err != nil {
		return err
	}

	product, err := h.service.CreateProduct(c.UserContext(), in.Product())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product created successfully",
		"product": product,
	})
}

// UpdateProduct handles a partial update; absent fields keep their values.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in models.ProductInput
	if err := decode(c, &in); err != nil {
		return err
	}
	if err := h.validate.Struct(in); err != nil {
		return err
	}

	product, err := h.service.UpdateProduct(c.UserContext(), id, in.Changes())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Product updated successfully",
		"product": product,
	})
}

// DeleteProduct handles deleting a product by ID.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	product, err := h.service.DeleteProduct(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
		"product": product,
	})
}
