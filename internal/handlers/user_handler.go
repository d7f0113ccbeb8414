package handlers

import (
	"techmarket/internal/models"
	"techmarket/internal/services"
	"techmarket/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for users. The password hash is never
// part of a response; models.User does not serialize it.
type UserHandler struct {
	service  *services.UserService
	validate *validation.Validator
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService, validate *validation.Validator) *UserHandler {
	return &UserHandler{service: service, validate: validate}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/", h.GetAllUsers)
	userRoutes.Get("/:id/reviews", h.GetUserWithReviews)
	userRoutes.Get("/:id", h.GetUserByID)
	userRoutes.Post("/", h.CreateUser)
	userRoutes.Patch("/:id", h.UpdateUser)
	userRoutes.Delete("/:id", h.DeleteUser)
}

// GetAllUsers handles GET /users.
func (h *UserHandler) GetAllUsers(c *fiber.Ctx) error {
	users, err := h.service.GetAllUsers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

// GetUserByID handles GET /users/:id.
func (h *UserHandler) GetUserByID(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.service.GetUserByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// GetUserWithReviews handles GET /users/:id/reviews.
func (h *UserHandler) GetUserWithReviews(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.service.GetUserWithReviews(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// CreateUser handles POST /users.
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var in models.UserInput
	if err := decodeCreate(c, h.validate, &in); err != nil {
		return err
	}

	user, err := h.service.CreateUser(c.UserContext(), in.User())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user":    user,
	})
}

// UpdateUser handles PATCH /users/:id.
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in models.UserInput
	if err := decode(c, &in); err != nil {
		return err
	}
	if err := h.validate.Struct(in); err != nil {
		return err
	}

	user, err := h.service.UpdateUser(c.UserContext(), id, in.Changes())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "User updated successfully",
		"user":    user,
	})
}

// DeleteUser handles DELETE /users/:id.
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.service.DeleteUser(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
		"user":    user,
	})
}
