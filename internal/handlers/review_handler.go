package handlers

import (
	"techmarket/internal/models"
	"techmarket/internal/services"
	"techmarket/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ReviewHandler handles HTTP requests for reviews.
type ReviewHandler struct {
	service  *services.ReviewService
	validate *validation.Validator
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *services.ReviewService, validate *validation.Validator) *ReviewHandler {
	return &ReviewHandler{service: service, validate: validate}
}

// RegisterRoutes registers the review routes with the Fiber app.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router) {
	reviewRoutes := router.Group("/reviews")
	reviewRoutes.Get("/", h.GetAllReviews)
	reviewRoutes.Get("/product/:productId", h.GetReviewsByProduct)
	reviewRoutes.Get("/user/:userId", h.GetReviewsByUser)
	reviewRoutes.Get("/:id", h.GetReviewByID)
	reviewRoutes.Post("/", h.CreateReview)
	reviewRoutes.Patch("/:id", h.UpdateReview)
	reviewRoutes.Delete("/:id", h.DeleteReview)
}

// GetAllReviews handles GET /reviews.
func (h *ReviewHandler) GetAllReviews(c *fiber.Ctx) error {
	reviews, err := h.service.GetAllReviews(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(reviews)
}

// GetReviewByID handles GET /reviews/:id.
func (h *ReviewHandler) GetReviewByID(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	review, err := h.service.GetReviewByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(review)
}

// GetReviewsByProduct handles GET /reviews/product/:productId.
func (h *ReviewHandler) GetReviewsByProduct(c *fiber.Ctx) error {
	productID, err := pathID(c, "productId")
	if err != nil {
		return err
	}
	reviews, err := h.service.GetReviewsByProduct(c.UserContext(), productID)
	if err != nil {
		return err
	}
	return c.JSON(reviews)
}

// GetReviewsByUser handles GET /reviews/user/:userId.
func (h *ReviewHandler) GetReviewsByUser(c *fiber.Ctx) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	reviews, err := h.service.GetReviewsByUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(reviews)
}

// CreateReview validates the rating before any store access.
func (h *ReviewHandler) CreateReview(c *fiber.Ctx) error {
	var in models.ReviewInput
	if err := decodeCreate(c, h.validate, &in); err != nil {
		return err
	}

	review, err := h.service.CreateReview(c.UserContext(), in.Review())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Review created successfully",
		"review":  review,
	})
}

// UpdateReview only ever changes rating and comment.
func (h *ReviewHandler) UpdateReview(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in models.ReviewUpdate
	if err := decode(c, &in); err != nil {
		return err
	}
	if err := h.validate.Struct(in); err != nil {
		return err
	}

	review, err := h.service.UpdateReview(c.UserContext(), id, in.Changes())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Review updated successfully",
		"review":  review,
	})
}

// DeleteReview handles DELETE /reviews/:id.
func (h *ReviewHandler) DeleteReview(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	review, err := h.service.DeleteReview(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Review deleted successfully",
		"review":  review,
	})
}
