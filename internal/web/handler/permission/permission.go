// Package permission serves the live effective permissions of the authenticated user.
package permission

import (
	"github.com/gofiber/fiber/v2"

	"github.com/anighost1/pp-be/internal/web/handler"
	authmw "github.com/anighost1/pp-be/internal/web/middleware/auth"
)

// Path is the path of the effective permissions endpoint.
const Path = "/api/panel/permissions/effective"

// Service is the permission handler service.
type Service struct {
	deps *handler.Deps
}

// Init registers the permission route.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.deps = deps

	app.Get(Path, authmw.RequireToken(deps.Tokens, deps.Denylist), s.Get)

	return nil
}

// Get resolves the permissions from the store. The result may differ from
// the token snapshot when access changed after login.
func (s *Service) Get(c *fiber.Ctx) error {
	claims, ok := handler.Claims(c)
	if !ok {
		return handler.Fail(c, fiber.StatusUnauthorized, authmw.MsgTokenMissing)
	}

	res, err := s.deps.Access.ResolvePermissions(c.UserContext(), claims.UserID)
	if err != nil {
		return handler.Error(c, err)
	}

	return handler.OK(c, "Permissions fetched successfully", res)
}
