// Package logout provides the endpoint that revokes the current session token.
package logout

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/anighost1/pp-be/internal/web/handler"
	authmw "github.com/anighost1/pp-be/internal/web/middleware/auth"
)

// Path is the path of the logout endpoint.
const Path = "/api/auth/logout"

// Service is the logout handler service.
type Service struct {
	deps *handler.Deps
}

// Init registers the logout route.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.deps = deps

	app.Post(Path, authmw.RequireToken(deps.Tokens, deps.Denylist), s.Logout)

	return nil
}

// Logout denylists the token id until the token expires.
func (s *Service) Logout(c *fiber.Ctx) error {
	claims, ok := handler.Claims(c)
	if !ok {
		return handler.Fail(c, fiber.StatusUnauthorized, authmw.MsgTokenMissing)
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.deps.Denylist.Revoke(claims.ID, ttl); err != nil {
		return handler.Error(c, err)
	}

	return handler.OK(c, "Logged out successfully", nil)
}
