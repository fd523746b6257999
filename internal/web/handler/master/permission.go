package master

import (
	"github.com/gofiber/fiber/v2"

	"github.com/anighost1/pp-be/internal/db/controller/permission"
	"github.com/anighost1/pp-be/internal/web/handler"
)

// PermissionCreateRequest creates one or more permissions in the same scope.
type PermissionCreateRequest struct {
	Names []string `json:"permission_names" validate:"required,min=1,dive,required"`
	UlbID *uint    `json:"ulb_id"`
}

// PermissionUpdateRequest renames a permission. A missing ulb_id keeps the scope.
type PermissionUpdateRequest struct {
	ID    uint   `json:"id" validate:"required"`
	Name  string `json:"name" validate:"required"`
	UlbID *uint  `json:"ulb_id"`
}

// CreatePermission stores the named permissions, all or none.
func (s *Service) CreatePermission(c *fiber.Ctx) error {
	req := new(PermissionCreateRequest)
	if err := handler.Bind(c, req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "At least one permission name is required")
	}

	perms, err := permission.CreateMany(s.conn(c), req.Names, req.UlbID)
	if err != nil {
		return handler.Error(c, err)
	}

	for _, p := range perms {
		audit(c, "create-permission", p.ID)
	}

	return handler.OK(c, "Permission(s) created successfully", perms)
}

// ListPermissions pages the catalog, filtered by ?name= and ?active=.
func (s *Service) ListPermissions(c *fiber.Ctx) error {
	var filter permission.Filter

	page, err := listQuery(c, &filter)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, msgInvalidQuery)
	}

	res, err := permission.List(s.conn(c), filter, page)
	if err != nil {
		return handler.Error(c, err)
	}

	return handler.OK(c, "Permissions fetched successfully", res)
}

// GetPermission returns one permission with its menus.
func (s *Service) GetPermission(c *fiber.Ctx) error {
	id, ok := idFromQuery(c)
	if !ok {
		return handler.Fail(c, fiber.StatusBadRequest, msgIDRequired)
	}

	p, err := permission.GetByID(s.conn(c), id)
	if err != nil {
		return handler.Error(c, err)
	}

	return handler.OK(c, "Permission fetched successfully", p)
}

// UpdatePermission renames a permission.
func (s *Service) UpdatePermission(c *fiber.Ctx) error {
	req := new(PermissionUpdateRequest)
	if err := handler.Bind(c, req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Both ID and name are required")
	}

	p, err := permission.Update(s.conn(c), req.ID, req.Name, req.UlbID)
	if err != nil {
		return handler.Error(c, err)
	}

	audit(c, "update-permission", p.ID)

	return handler.OK(c, "Permission updated successfully", p)
}

// TogglePermission flips the active flag of a permission.
func (s *Service) TogglePermission(c *fiber.Ctx) error {
	id, ok := idFromBody(c)
	if !ok {
		return handler.Fail(c, fiber.StatusBadRequest, msgIDRequired)
	}

	p, err := permission.Toggle(s.conn(c), id)
	if err != nil {
		return handler.Error(c, err)
	}

	audit(c, "toggle-permission", p.ID)

	return handler.OK(c, "Permission toggled to "+status(p.Active)+" successfully", p)
}
