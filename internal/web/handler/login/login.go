// Package login provides the local username/password login endpoint.
package login

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/anighost1/pp-be/internal/auth"
	"github.com/anighost1/pp-be/internal/web/handler"
)

const (
	// Path is the path of the login endpoint.
	Path = "/api/auth/login"

	// MsgInvalidCredentials is sent for unknown users, wrong passwords and disabled accounts.
	MsgInvalidCredentials = "Invalid credentials"
)

// Service is the login handler service.
type Service struct {
	deps *handler.Deps
}

// Request is the login body.
type Request struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Result is the data of a successful login.
type Result struct {
	Token        string                     `json:"token"`
	ExpiresAt    int64                      `json:"expiresAt"`
	IsSuperAdmin bool                       `json:"isSuperAdmin"`
	Permissions  []auth.EffectivePermission `json:"permissions"`
	Menus        []*auth.MenuNode           `json:"menus"`
}

// Init registers the login route.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.deps = deps

	app.Post(Path, s.Post)

	return nil
}

// Post authenticates the user and issues a session token carrying its
// permission snapshot.
func (s *Service) Post(c *fiber.Ctx) error {
	req := new(Request)
	if err := handler.Bind(c, req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Username and password are required")
	}

	u, err := s.deps.Local.Authenticate(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) ||
			errors.Is(err, auth.ErrInvalidPassword) ||
			errors.Is(err, auth.ErrUserAccountDisabled) {
			log.Info().Err(err).Str("username", req.Username).Msg("login rejected")
			return handler.Fail(c, fiber.StatusUnauthorized, MsgInvalidCredentials)
		}

		return handler.Error(c, err)
	}

	snap, err := s.deps.Access.Snapshot(c.UserContext(), u)
	if err != nil {
		return handler.Error(c, err)
	}

	token, claims, err := s.deps.Tokens.Issue(u, snap.Resolution)
	if err != nil {
		return handler.Error(c, err)
	}

	log.Info().Uint64("user_id", u.ID).Bool("super_admin", snap.SuperUser).Msg("user logged in")

	return handler.OK(c, "Logged in successfully", Result{
		Token:        token,
		ExpiresAt:    claims.ExpiresAt.Unix(),
		IsSuperAdmin: snap.SuperUser,
		Permissions:  snap.Permissions,
		Menus:        snap.Menus,
	})
}
