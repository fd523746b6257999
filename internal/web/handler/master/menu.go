package master

import (
	"github.com/gofiber/fiber/v2"

	"github.com/anighost1/pp-be/internal/db/controller/menu"
	"github.com/anighost1/pp-be/internal/web/handler"
)

// MenuRequest carries the editable fields of a menu. Permissions are names.
type MenuRequest struct {
	Label       string   `json:"label" validate:"required"`
	Path        string   `json:"path"`
	ParentID    *uint    `json:"parentId"`
	Order       int      `json:"order"`
	Permissions []string `json:"permissions" validate:"omitempty,dive,required"`
}

// MenuUpdateRequest replaces every editable field of a menu.
type MenuUpdateRequest struct {
	ID uint `json:"id" validate:"required"`
	MenuRequest
}

// CreateMenu stores a menu.
func (s *Service) CreateMenu(c *fiber.Ctx) error {
	req := new(MenuRequest)
	if err := handler.Bind(c, req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Menu label is required")
	}

	m, err := menu.Create(s.conn(c), req.Label, req.Path, req.ParentID, req.Order, req.Permissions)
	if err != nil {
		return handler.Error(c, err)
	}

	audit(c, "create-menu", m.ID)

	return handler.OK(c, "Menu created successfully", m)
}

// ListMenus pages the menus, filtered by ?label= and ?active=.
func (s *Service) ListMenus(c *fiber.Ctx) error {
	var filter menu.Filter

	page, err := listQuery(c, &filter)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, msgInvalidQuery)
	}

	res, err := menu.List(s.conn(c), filter, page)
	if err != nil {
		return handler.Error(c, err)
	}

	return handler.OK(c, "Menus fetched successfully", res)
}

// GetMenu returns one menu with its permissions.
func (s *Service) GetMenu(c *fiber.Ctx) error {
	id, ok := idFromQuery(c)
	if !ok {
		return handler.Fail(c, fiber.StatusBadRequest, msgIDRequired)
	}

	m, err := menu.GetByID(s.conn(c), id)
	if err != nil {
		return handler.Error(c, err)
	}

	return handler.OK(c, "Menu fetched successfully", m)
}

// UpdateMenu replaces a menu's fields and permissions.
func (s *Service) UpdateMenu(c *fiber.Ctx) error {
	req := new(MenuUpdateRequest)
	if err := handler.Bind(c, req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Both ID and menu label are required")
	}

	m, err := menu.Update(s.conn(c), req.ID, req.Label, req.Path, req.ParentID, req.Order, req.Permissions)
	if err != nil {
		return handler.Error(c, err)
	}

	audit(c, "update-menu", m.ID)

	return handler.OK(c, "Menu updated successfully", m)
}

// ToggleMenu flips the active flag of a menu.
func (s *Service) ToggleMenu(c *fiber.Ctx) error {
	id, ok := idFromBody(c)
	if !ok {
		return handler.Fail(c, fiber.StatusBadRequest, msgIDRequired)
	}

	m, err := menu.Toggle(s.conn(c), id)
	if err != nil {
		return handler.Error(c, err)
	}

	audit(c, "toggle-menu", m.ID)

	return handler.OK(c, "Menu toggled to "+status(m.Active)+" successfully", m)
}
