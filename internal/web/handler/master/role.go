package master

import (
	"github.com/gofiber/fiber/v2"

	"github.com/anighost1/pp-be/internal/db/controller/role"
	"github.com/anighost1/pp-be/internal/web/handler"
)

// RoleCreateRequest creates a role holding the given permission ids.
type RoleCreateRequest struct {
	Name        string `json:"name" validate:"required"`
	UlbID       *uint  `json:"ulb_id"`
	Permissions []uint `json:"permissions" validate:"omitempty,dive,required"`
}

// RoleUpdateRequest renames a role. A missing ulb_id keeps the scope, missing
// permissions keep the permissions, an empty list removes them all.
type RoleUpdateRequest struct {
	ID          uint   `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	UlbID       *uint  `json:"ulb_id"`
	Permissions []uint `json:"permissions" validate:"omitempty,dive,required"`
}

// CreateRole stores a role.
func (s *Service) CreateRole(c *fiber.Ctx) error {
	req := new(RoleCreateRequest)
	if err := handler.Bind(c, req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Role name is required")
	}

	r, err := role.Create(s.conn(c), req.Name, req.UlbID, req.Permissions)
	if err != nil {
		return handler.Error(c, err)
	}

	audit(c, "create-role", r.ID)

	return handler.OK(c, "Role created successfully", r)
}

// ListRoles pages the roles, filtered by ?name=, ?permission= and ?active=.
func (s *Service) ListRoles(c *fiber.Ctx) error {
	var filter role.Filter

	page, err := listQuery(c, &filter)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, msgInvalidQuery)
	}

	res, err := role.List(s.conn(c), filter, page)
	if err != nil {
		return handler.Error(c, err)
	}

	return handler.OK(c, "Roles fetched successfully", res)
}

// GetRole returns one role with its permissions.
func (s *Service) GetRole(c *fiber.Ctx) error {
	id, ok := idFromQuery(c)
	if !ok {
		return handler.Fail(c, fiber.StatusBadRequest, msgIDRequired)
	}

	r, err := role.GetByID(s.conn(c), id)
	if err != nil {
		return handler.Error(c, err)
	}

	return handler.OK(c, "Role fetched successfully", r)
}

// UpdateRole renames a role and optionally replaces its permissions.
func (s *Service) UpdateRole(c *fiber.Ctx) error {
	req := new(RoleUpdateRequest)
	if err := handler.Bind(c, req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Both ID and role name are required")
	}

	r, err := role.Update(s.conn(c), req.ID, req.Name, req.UlbID, req.Permissions)
	if err != nil {
		return handler.Error(c, err)
	}

	audit(c, "update-role", r.ID)

	return handler.OK(c, "Role updated successfully", r)
}

// ToggleRole flips the active flag of a role.
func (s *Service) ToggleRole(c *fiber.Ctx) error {
	id, ok := idFromBody(c)
	if !ok {
		return handler.Fail(c, fiber.StatusBadRequest, msgIDRequired)
	}

	r, err := role.Toggle(s.conn(c), id)
	if err != nil {
		return handler.Error(c, err)
	}

	audit(c, "toggle-role", r.ID)

	return handler.OK(c, "Role toggled to "+status(r.Active)+" successfully", r)
}
