package handler

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/anighost1/pp-be/internal/auth"
	"github.com/anighost1/pp-be/internal/config"
	"github.com/anighost1/pp-be/internal/web/session"
)

const (
	// RouterRootPath is the root path of a route group.
	RouterRootPath = "/"

	// LocalClaims names the fiber local holding the verified *auth.Claims.
	LocalClaims = "claims"

	// LocalUserID names the fiber local holding the authenticated user id.
	LocalUserID = "userid"
)

// Deps are the collaborators shared by all handlers. They are built once at startup.
type Deps struct {
	Cfg      *config.Config
	DB       *gorm.DB
	Access   *auth.Service
	Local    *auth.LocalProvider
	Tokens   *auth.TokenManager
	Denylist *session.Denylist
}

// Valid reports whether every collaborator is set.
func (d *Deps) Valid() bool {
	return d != nil && d.Cfg != nil && d.DB != nil && d.Access != nil &&
		d.Local != nil && d.Tokens != nil && d.Denylist != nil
}

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, deps *Deps) error
}

// Claims returns the verified token claims stored by the token middleware.
func Claims(c *fiber.Ctx) (*auth.Claims, bool) {
	claims, ok := c.Locals(LocalClaims).(*auth.Claims)
	return claims, ok && claims != nil
}
