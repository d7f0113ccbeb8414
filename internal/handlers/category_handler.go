package handlers

import (
	"techmarket/internal/models"
	"techmarket/internal/services"
	"techmarket/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service  *services.CategoryService
	validate *validation.Validator
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService, validate *validation.Validator) *CategoryHandler {
	return &CategoryHandler{service: service, validate: validate}
}

// RegisterRoutes registers the category routes with the Fiber app.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.GetAllCategories)
	categoryRoutes.Get("/:id/products", h.GetCategoryWithProducts)
	categoryRoutes.Get("/:id", h.GetCategoryByID)
	categoryRoutes.Post("/", h.CreateCategory)
	categoryRoutes.Patch("/:id", h.UpdateCategory)
	categoryRoutes.Delete("/:id", h.DeleteCategory)
}

// GetAllCategories handles GET /categories.
func (h *CategoryHandler) GetAllCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetAllCategories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(categories)
}

// GetCategoryByID handles GET /categories/:id.
func (h *CategoryHandler) GetCategoryByID(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	category, err := h.service.GetCategoryByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(category)
}

// GetCategoryWithProducts handles GET /categories/:id/products.
func (h *CategoryHandler) GetCategoryWithProducts(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	category, err := h.service.GetCategoryWithProducts(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(category)
}

// CreateCategory handles POST /categories.
func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var in models.CategoryInput
	if err := decodeCreate(c, h.validate, &in); err != nil {
		return err
	}

	category, err := h.service.CreateCategory(c.UserContext(), in.Category())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Category created successfully",
		"category": category,
	})
}

// UpdateCategory handles PATCH /categories/:id.
func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in models.CategoryInput
	if err := decode(c, &in); err != nil {
		return err
	}
	if err := h.validate.Struct(in); err != nil {
		return err
	}

	category, err := h.service.UpdateCategory(c.UserContext(), id, in.Changes())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":  "Category updated successfully",
		"category": category,
	})
}

// DeleteCategory fails with 400 while products still reference the category.
func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	category, err := h.service.DeleteCategory(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":  "Category deleted successfully",
		"category": category,
	})
}
