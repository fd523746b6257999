package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/anighost1/pp-be/internal/auth"
	"github.com/anighost1/pp-be/internal/db/controller/menu"
	"github.com/anighost1/pp-be/internal/db/controller/permission"
	"github.com/anighost1/pp-be/internal/db/controller/role"
	"github.com/anighost1/pp-be/internal/db/controller/ulb"
	"github.com/anighost1/pp-be/internal/db/controller/user"
)

// ErrNilDeps is returned by Init when app or dependencies are missing.
var ErrNilDeps = errors.New("app or dependencies are nil")

// Response is the JSON envelope of every API reply.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// OK sends a 200 envelope.
func OK(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusOK).JSON(Response{Success: true, Message: message, Data: data})
}

// Fail sends an error envelope with the given status.
func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Response{Success: false, Message: message})
}

// Error maps err to a status and sends it as an envelope.
func Error(c *fiber.Ctx, err error) error {
	status := StatusOf(err)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		return Fail(c, status, "Internal server error")
	}

	return Fail(c, status, err.Error())
}

// StatusOf classifies an error into an HTTP status.
func StatusOf(err error) int {
	var (
		validationErrs validator.ValidationErrors
		fiberErr       *fiber.Error
	)

	switch {
	case errors.Is(err, auth.ErrUserNotFound),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, role.ErrRoleNotFound),
		errors.Is(err, permission.ErrPermissionNotFound),
		errors.Is(err, menu.ErrMenuNotFound),
		errors.Is(err, ulb.ErrUlbNotFound),
		errors.Is(err, ulb.ErrWardNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, permission.ErrPermissionAlreadyExists),
		errors.Is(err, role.ErrRoleAlreadyExists),
		errors.Is(err, user.ErrUserAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, auth.ErrInvalidInput),
		errors.Is(err, user.ErrNoIDs),
		errors.Is(err, permission.ErrPermissionNameEmpty),
		errors.Is(err, role.ErrRoleNameEmpty),
		errors.Is(err, menu.ErrMenuLabelEmpty),
		errors.Is(err, menu.ErrMenuSelfParent),
		errors.As(err, &validationErrs):
		return fiber.StatusBadRequest
	case errors.Is(err, auth.ErrTokenMissing),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrTokenInvalid),
		errors.Is(err, auth.ErrTokenRevoked):
		return fiber.StatusUnauthorized
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	default:
		return fiber.StatusInternalServerError
	}
}
