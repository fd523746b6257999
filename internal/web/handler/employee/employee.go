// Package employee provides the endpoints that change an employee's roles,
// permissions, ULBs and wards.
package employee

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/anighost1/pp-be/internal/auth"
	"github.com/anighost1/pp-be/internal/db/controller/user"
	"github.com/anighost1/pp-be/internal/web/handler"
	authmw "github.com/anighost1/pp-be/internal/web/middleware/auth"
)

// Path is the base path of the employee access endpoints.
const Path = "/api/panel/employee"

// Service is the employee access handler service.
type Service struct {
	db *gorm.DB
}

// RolesRequest assigns roles to a user.
type RolesRequest struct {
	UserID uint64 `json:"user_id" validate:"required"`
	Roles  []uint `json:"roles" validate:"required,min=1,dive,required"`
}

// RoleRequest removes one role from a user.
type RoleRequest struct {
	UserID uint64 `json:"user_id" validate:"required"`
	Role   uint   `json:"role" validate:"required"`
}

// PermissionsRequest grants or revokes permissions.
type PermissionsRequest struct {
	UserID      uint64 `json:"user_id" validate:"required"`
	Permissions []uint `json:"permissions" validate:"required,min=1,dive,required"`
}

// PermissionRequest removes one direct grant or revocation.
type PermissionRequest struct {
	UserID     uint64 `json:"user_id" validate:"required"`
	Permission uint   `json:"permission" validate:"required"`
}

// UlbsRequest assigns ULBs to a user.
type UlbsRequest struct {
	UserID uint64 `json:"user_id" validate:"required"`
	Ulbs   []uint `json:"ulbs" validate:"required,min=1,dive,required"`
}

// UlbRequest removes one ULB from a user.
type UlbRequest struct {
	UserID uint64 `json:"user_id" validate:"required"`
	Ulb    uint   `json:"ulb" validate:"required"`
}

// WardsRequest maps wards to a user.
type WardsRequest struct {
	UserID uint64 `json:"user_id" validate:"required"`
	Wards  []uint `json:"wards" validate:"required,min=1,dive,required"`
}

// WardRequest removes one ward from a user.
type WardRequest struct {
	UserID uint64 `json:"user_id" validate:"required"`
	Ward   uint   `json:"ward" validate:"required"`
}

// Init registers the employee access routes behind the token and permission checks.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.db = deps.DB

	app.Route(Path, func(router fiber.Router) {
		router.Use(
			authmw.RequireToken(deps.Tokens, deps.Denylist),
			authmw.RequirePermission(auth.PermEmployeeAccess),
		)

		router.Put("/connect-role", s.ConnectRole)
		router.Put("/disconnect-role", s.DisconnectRole)
		router.Put("/map-permission", s.MapPermission)
		router.Put("/remove-permission", s.RemovePermission)
		router.Put("/revoke-permission", s.RevokePermission)
		router.Put("/restore-permission", s.RestorePermission)
		router.Put("/connect-ulb", s.ConnectUlb)
		router.Put("/disconnect-ulb", s.DisconnectUlb)
		router.Put("/map-wards", s.MapWards)
		router.Put("/remove-ward", s.RemoveWard)
	})

	return nil
}

// ConnectRole assigns roles to a user.
func (s *Service) ConnectRole(c *fiber.Ctx) error {
	req := new(RolesRequest)
	if err := handler.Bind(c, req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Both User ID and Role(s) are required")
	}

	err := user.ConnectRoles(s.db.WithContext(c.UserContext()), req.UserID, req.Roles)

	return s.done(c, "connect-role", req.UserID, err, "Role(s) connected successfully")
}

// DisconnectRole removes a role from a user.
func (s *Service) DisconnectRole(c *fiber.Ctx) error {
	req := new(RoleRequest)
	if err := handler.Bind(c, req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Both User ID and Role ID are required")
	}

	err := user.DisconnectRole(s.db.WithContext(c.UserContext()), req.UserID, req.Role)

	return s.done(c, "disconnect-role", req.UserID, err, "Role disconnected successfully")
}

// MapPermission grants permissions directly to a user.
func (s *Service) MapPermission(c *fiber.Ctx) error {
	return s.permissions(c, "map-permission", user.GrantPermissions, "Permissions mapped successfully")
}

// RevokePermission denies permissions to a user.
func (s *Service) RevokePermission(c *fiber.Ctx) error {
	return s.permissions(c, "revoke-permission", user.RevokePermissions, "Permissions revoked successfully")
}

// RemovePermission removes a direct grant.
func (s *Service) RemovePermission(c *fiber.Ctx) error {
	return s.permission(c, "remove-permission", user.RemovePermission, "Permission removed successfully")
}

// RestorePermission lifts a revocation.
func (s *Service) RestorePermission(c *fiber.Ctx) error {
	return s.permission(c, "restore-permission", user.RestorePermission, "Permission restored successfully")
}

// ConnectUlb assigns ULBs to a user.
func (s *Service) ConnectUlb(c *fiber.Ctx) error {
	req := new(UlbsRequest)
	if err := handler.Bind(c, req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Both User ID and ULB ID(s) are required")
	}

	err := user.ConnectUlbs(s.db.WithContext(c.UserContext()), req.UserID, req.Ulbs)

	return s.done(c, "connect-ulb", req.UserID, err, "ULB connected successfully")
}

// DisconnectUlb removes a ULB from a user.
func (s *Service) DisconnectUlb(c *fiber.Ctx) error {
	req := new(UlbRequest)
	if err := handler.Bind(c, req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Both User ID and ULB ID are required")
	}

	err := user.DisconnectUlb(s.db.WithContext(c.UserContext()), req.UserID, req.Ulb)

	return s.done(c, "disconnect-ulb", req.UserID, err, "ULB disconnected successfully")
}

// MapWards maps wards to a user.
func (s *Service) MapWards(c *fiber.Ctx) error {
	req := new(WardsRequest)
	if err := handler.Bind(c, req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Both User ID and Ward ID(s) are required")
	}

	err := user.MapWards(s.db.WithContext(c.UserContext()), req.UserID, req.Wards)

	return s.done(c, "map-wards", req.UserID, err, "Wards mapped successfully")
}

// RemoveWard removes a ward from a user.
func (s *Service) RemoveWard(c *fiber.Ctx) error {
	req := new(WardRequest)
	if err := handler.Bind(c, req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Both User ID and Ward ID are required")
	}

	err := user.RemoveWard(s.db.WithContext(c.UserContext()), req.UserID, req.Ward)

	return s.done(c, "remove-ward", req.UserID, err, "Ward removed successfully")
}

func (s *Service) done(c *fiber.Ctx, action string, target uint64, err error, msg string) error {
	if err != nil {
		return handler.Error(c, err)
	}

	audit(c, action, target)

	return handler.OK(c, msg, nil)
}

func (s *Service) permissions(
	c *fiber.Ctx,
	action string,
	apply func(*gorm.DB, uint64, []uint) error,
	msg string,
) error {
	req := new(PermissionsRequest)
	if err := handler.Bind(c, req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Both User ID and Permission ID(s) are required")
	}

	err := apply(s.db.WithContext(c.UserContext()), req.UserID, req.Permissions)

	return s.done(c, action, req.UserID, err, msg)
}

func (s *Service) permission(
	c *fiber.Ctx,
	action string,
	apply func(*gorm.DB, uint64, uint) error,
	msg string,
) error {
	req := new(PermissionRequest)
	if err := handler.Bind(c, req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Both User ID and Permission ID are required")
	}

	err := apply(s.db.WithContext(c.UserContext()), req.UserID, req.Permission)

	return s.done(c, action, req.UserID, err, msg)
}

func audit(c *fiber.Ctx, action string, target uint64) {
	var actor uint64
	if claims, ok := handler.Claims(c); ok {
		actor = claims.UserID
	}

	log.Info().Str("action", action).Uint64("actor", actor).Uint64("user_id", target).Msg("employee access changed")
}
