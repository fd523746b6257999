// Package role provides store access for roles.
package role

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/anighost1/pp-be/internal/db/controller/paging"
	"github.com/anighost1/pp-be/internal/db/controller/permission"
	"github.com/anighost1/pp-be/internal/db/models"
)

var (
	// ErrRoleNotFound is returned when one or more roles are not found.
	ErrRoleNotFound = errors.New("role not found")
	// ErrRoleNameEmpty is returned when attempting to create a role with an empty name.
	ErrRoleNameEmpty = errors.New("role name cannot be empty")
	// ErrRoleAlreadyExists is returned when the role name is taken.
	ErrRoleAlreadyExists = errors.New("role already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// FirstOrCreate returns the role with the given name, creating it active and
// scoped to ulbID when missing.
func FirstOrCreate(db *gorm.DB, name string, ulbID *uint) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrRoleNameEmpty
	}

	var r models.Role
	err := db.Where("name = ?", name).Attrs(models.Role{UlbID: ulbID, Active: true}).FirstOrCreate(&r).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get or create role %q: %w", name, err)
	}

	return &r, nil
}

// GetByIDs returns the roles with the given ids. Every id must exist.
func GetByIDs(db *gorm.DB, ids []uint) ([]models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var roles []models.Role
	if len(ids) == 0 {
		return roles, nil
	}

	if err := db.Where("id IN ?", ids).Order("id").Find(&roles).Error; err != nil {
		return nil, fmt.Errorf("failed to load roles: %w", err)
	}

	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	if len(roles) != len(seen) {
		return nil, ErrRoleNotFound
	}

	return roles, nil
}

// AttachPermissions appends permissions to a role. Already attached ones are kept once.
func AttachPermissions(db *gorm.DB, roleID uint, perms []models.Permission) error {
	if db == nil {
		return ErrDBNil
	}
	if len(perms) == 0 {
		return nil
	}

	r := models.Role{ID: roleID}
	if err := db.Model(&r).Association("Permissions").Append(&perms); err != nil {
		return fmt.Errorf("failed to attach permissions to role %d: %w", roleID, err)
	}

	return nil
}

// Create stores an active role holding the given permissions.
func Create(db *gorm.DB, name string, ulbID *uint, permissionIDs []uint) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrRoleNameEmpty
	}

	if err := nameFree(db, name, 0); err != nil {
		return nil, err
	}

	perms, err := permission.GetByIDs(db, permissionIDs)
	if err != nil {
		return nil, err
	}

	r := models.Role{Name: name, UlbID: ulbID, Active: true, Permissions: perms}
	if err := db.Create(&r).Error; err != nil {
		return nil, fmt.Errorf("failed to create role %q: %w", name, err)
	}

	return &r, nil
}

// Filter narrows List. Zero values do not filter.
type Filter struct {
	Name       string `query:"name"`       // case insensitive substring
	Permission string `query:"permission"` // exact name of a held permission
	Active     *bool  `query:"active"`
}

// List returns one page of roles, newest first, without their permissions.
func List(db *gorm.DB, f Filter, page paging.Page) (paging.Result[models.Role], error) {
	if db == nil {
		return paging.Result[models.Role]{}, ErrDBNil
	}

	query := db.Model(&models.Role{})
	if f.Name != "" {
		query = query.Where("LOWER(roles.name) LIKE ?", "%"+strings.ToLower(f.Name)+"%")
	}
	if f.Permission != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM role_permissions rp JOIN permissions p ON p.id = rp.permission_id "+
				"WHERE rp.role_id = roles.id AND p.name = ?)",
			f.Permission,
		)
	}
	if f.Active != nil {
		query = query.Where("roles.active = ?", *f.Active)
	}

	return paging.Find[models.Role](query, page, "roles.id desc")
}

// GetByID returns a role with its permissions.
func GetByID(db *gorm.DB, id uint) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var r models.Role
	if err := db.Preload("Permissions", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("permissions.id")
	}).First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("failed to load role %d: %w", id, err)
	}

	return &r, nil
}

// Update renames a role. A nil ulbID keeps the scope; a nil permissionIDs keeps
// the permissions, any other value, empty included, replaces them.
func Update(db *gorm.DB, id uint, name string, ulbID *uint, permissionIDs []uint) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrRoleNameEmpty
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var r models.Role
		if err := tx.First(&r, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoleNotFound
			}
			return fmt.Errorf("failed to load role %d: %w", id, err)
		}

		if err := nameFree(tx, name, id); err != nil {
			return err
		}

		updates := map[string]any{"name": name}
		if ulbID != nil {
			updates["ulb_id"] = *ulbID
		}
		if err := tx.Model(&r).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update role %d: %w", id, err)
		}

		if permissionIDs == nil {
			return nil
		}

		perms, err := permission.GetByIDs(tx, permissionIDs)
		if err != nil {
			return err
		}

		if err := tx.Model(&r).Association("Permissions").Replace(&perms); err != nil {
			return fmt.Errorf("failed to replace permissions of role %d: %w", id, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return GetByID(db, id)
}

// Toggle flips the active flag of a role and returns the updated record.
func Toggle(db *gorm.DB, id uint) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var r models.Role
	if err := db.First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}

	r.Active = !r.Active
	if err := db.Model(&r).Update("active", r.Active).Error; err != nil {
		return nil, fmt.Errorf("failed to toggle role %d: %w", id, err)
	}

	return &r, nil
}

// nameFree fails with ErrRoleAlreadyExists when another role than id uses name.
func nameFree(db *gorm.DB, name string, id uint) error {
	var count int64
	if err := db.Model(&models.Role{}).Where("name = ? AND id <> ?", name, id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check role %q: %w", name, err)
	}
	if count > 0 {
		return ErrRoleAlreadyExists
	}

	return nil
}
