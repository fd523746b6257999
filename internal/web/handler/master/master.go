// Package master serves the permission, role and menu masters.
// Every route requires a token holding master.access.
package master

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/anighost1/pp-be/internal/auth"
	"github.com/anighost1/pp-be/internal/db/controller/paging"
	"github.com/anighost1/pp-be/internal/web/handler"
	authmw "github.com/anighost1/pp-be/internal/web/middleware/auth"
)

// Path is the base path of the master endpoints.
const Path = "/api/panel/master"

const (
	msgIDRequired   = "ID is required"
	msgInvalidQuery = "Invalid query parameters"
)

// Service is the master handler service.
type Service struct {
	db *gorm.DB
}

// IDRequest addresses one record, in the body or as ?id=.
type IDRequest struct {
	ID uint `json:"id" query:"id" validate:"required"`
}

// Init registers the master routes behind the token and permission checks.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.db = deps.DB

	app.Route(Path, func(router fiber.Router) {
		router.Use(
			authmw.RequireToken(deps.Tokens, deps.Denylist),
			authmw.RequirePermission(auth.PermMasterAccess),
		)

		router.Post("/permission", s.CreatePermission)
		router.Get("/permission", s.ListPermissions)
		router.Get("/permission/by-id", s.GetPermission)
		router.Put("/permission", s.UpdatePermission)
		router.Put("/permission/toggle", s.TogglePermission)

		router.Post("/role", s.CreateRole)
		router.Get("/role", s.ListRoles)
		router.Get("/role/by-id", s.GetRole)
		router.Put("/role", s.UpdateRole)
		router.Put("/role/toggle", s.ToggleRole)

		router.Post("/menu", s.CreateMenu)
		router.Get("/menu", s.ListMenus)
		router.Get("/menu/by-id", s.GetMenu)
		router.Put("/menu", s.UpdateMenu)
		router.Put("/menu/toggle", s.ToggleMenu)
	})

	return nil
}

func (s *Service) conn(c *fiber.Ctx) *gorm.DB {
	return s.db.WithContext(c.UserContext())
}

// listQuery reads the paging parameters and the filter from the query string.
func listQuery(c *fiber.Ctx, filter any) (paging.Page, error) {
	var page paging.Page
	if err := c.QueryParser(&page); err != nil {
		return page, err
	}

	return page, c.QueryParser(filter)
}

// idFromQuery reads ?id=.
func idFromQuery(c *fiber.Ctx) (uint, bool) {
	req := new(IDRequest)
	if err := handler.BindQuery(c, req); err != nil {
		return 0, false
	}

	return req.ID, true
}

// idFromBody reads {"id": ...}.
func idFromBody(c *fiber.Ctx) (uint, bool) {
	req := new(IDRequest)
	if err := handler.Bind(c, req); err != nil {
		return 0, false
	}

	return req.ID, true
}

func status(active bool) string {
	if active {
		return "active"
	}

	return "inactive"
}

func audit(c *fiber.Ctx, action string, id uint) {
	var actor uint64
	if claims, ok := handler.Claims(c); ok {
		actor = claims.UserID
	}

	log.Info().Str("action", action).Uint64("actor", actor).Uint("id", id).Msg("master data changed")
}
