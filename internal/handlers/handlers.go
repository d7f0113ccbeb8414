// Package handlers exposes the catalog services over HTTP. Handlers only
// decode, validate, and shape responses; every failure is returned to the
// application error handler.
package handlers

import (
	"techmarket/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// pathID reads a positive integer route parameter.
func pathID(c *fiber.Ctx, param string) (uint, error) {
	return validation.ID(c.Params(param), param)
}

// decode parses the JSON body into target.
func decode(c *fiber.Ctx, target interface{}) error {
	if err := c.BodyParser(target); err != nil {
		return validation.DecodeError(err, target)
	}
	return nil
}

// decodeCreate parses a creation body and validates it, reporting absent
// required fields ahead of type errors.
func decodeCreate(c *fiber.Ctx, v *validation.Validator, in validation.Creatable) error {
	return v.CreateBody(c.Body(), c.BodyParser(in), in)
}
