package handler

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/anighost1/pp-be/internal/auth"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Bind parses the JSON body into out and validates its struct tags.
func Bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fmt.Errorf("%w: %w", auth.ErrInvalidInput, err)
	}

	return validate.Struct(out)
}

// BindQuery parses the query string into out and validates its struct tags.
func BindQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return fmt.Errorf("%w: %w", auth.ErrInvalidInput, err)
	}

	return validate.Struct(out)
}
