package middleware

import (
	"errors"

	"techmarket/internal/apperrors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const serverErrorMessage = "Server-side error has occurred"

// StatusOf maps an error kind to its HTTP status.
func StatusOf(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation:
		return fiber.StatusBadRequest
	case apperrors.KindNotFound:
		return fiber.StatusNotFound
	case apperrors.KindDuplicate:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler is the Fiber error handler. Taxonomy errors are answered with
// their status and client message, *fiber.Error keeps its code, and anything
// else becomes a generic 500. The cause is logged, never returned.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := serverErrorMessage

	var appErr *apperrors.Error
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &appErr):
		code = StatusOf(appErr.Kind)
		if appErr.Kind != apperrors.KindDatabase {
			message = appErr.Message
		}
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	}

	fields := []zap.Field{
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", code),
		zap.Error(err),
	}
	if id, ok := c.Locals("requestid").(string); ok {
		fields = append(fields, zap.String("request_id", id))
	}
	if code >= fiber.StatusInternalServerError {
		zap.L().Error("request failed", fields...)
	} else {
		zap.L().Debug("request rejected", fields...)
	}

	return c.Status(code).JSON(fiber.Map{
		"message": message,
	})
}

// NotFound answers every request that matched no route.
func NotFound() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Resource not found: " + c.OriginalURL(),
		})
	}
}
