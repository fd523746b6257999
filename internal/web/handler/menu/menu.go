// Package menu serves the menu forest of the authenticated user.
package menu

import (
	"github.com/gofiber/fiber/v2"

	"github.com/anighost1/pp-be/internal/web/handler"
	authmw "github.com/anighost1/pp-be/internal/web/middleware/auth"
)

// Path is the path of the menu endpoint.
const Path = "/api/panel/menus"

// Service is the menu handler service.
type Service struct {
	deps *handler.Deps
}

// Query are the query parameters of the menu endpoint.
type Query struct {
	UlbID uint `query:"ulb_id"`
}

// Init registers the menu route.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.deps = deps

	app.Get(Path, authmw.RequireToken(deps.Tokens, deps.Denylist), s.Get)

	return nil
}

// Get computes the live menu forest, optionally restricted to one ULB.
func (s *Service) Get(c *fiber.Ctx) error {
	claims, ok := handler.Claims(c)
	if !ok {
		return handler.Fail(c, fiber.StatusUnauthorized, authmw.MsgTokenMissing)
	}

	q := new(Query)
	if err := c.QueryParser(q); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "ulb_id must be a positive number")
	}

	res, err := s.deps.Access.MenusForUser(c.UserContext(), claims.UserID, q.UlbID)
	if err != nil {
		return handler.Error(c, err)
	}

	return handler.OK(c, "Menus fetched successfully", res)
}
