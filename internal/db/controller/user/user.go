// Package user provides store access for employee accounts and their access graph.
package user

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/anighost1/pp-be/internal/db/controller/permission"
	"github.com/anighost1/pp-be/internal/db/controller/role"
	"github.com/anighost1/pp-be/internal/db/controller/ulb"
	"github.com/anighost1/pp-be/internal/db/models"
)

const (
	assocRoles       = "Roles"
	assocPermissions = "Permissions"
	assocRevoked     = "RevokedPermissions"
	assocUlbs        = "Ulbs"
	assocWards       = "Wards"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameEmpty is returned when attempting to create a user without a username.
	ErrUsernameEmpty = errors.New("username cannot be empty")
	// ErrUserAlreadyExists is returned when the username is taken.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrNoIDs is returned when an association change names no ids.
	ErrNoIDs = errors.New("at least one id is required")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Create stores a new active local user with an argon2id hashed password.
func Create(db *gorm.DB, username, email, password string) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if username == "" {
		return nil, ErrUsernameEmpty
	}

	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check user %q: %w", username, err)
	}
	if count > 0 {
		return nil, ErrUserAlreadyExists
	}

	u := models.User{
		Active:   true,
		Username: username,
		Email:    email,
		Password: models.HashPassword(password),
	}
	if err := db.Create(&u).Error; err != nil {
		return nil, fmt.Errorf("failed to create user %q: %w", username, err)
	}

	return &u, nil
}

// GetSubject loads a user with the whole access graph in one eager retrieval:
// roles with their permissions and menus, direct permissions with menus,
// revoked permissions with menus, ulbs and wards.
// A non-zero ulbID restricts the loaded roles to those scoped to that ULB.
func GetSubject(db *gorm.DB, id uint64, ulbID uint) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	q := db
	if ulbID != 0 {
		q = q.Preload(assocRoles, "ulb_id = ?", ulbID)
	}

	var u models.User
	err := q.
		Preload("Roles.Permissions.Menus").
		Preload("Permissions.Menus").
		Preload("RevokedPermissions.Menus").
		Preload("Ulbs").
		Preload("Wards").
		First(&u, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %d: %w", id, err)
	}

	return &u, nil
}

// GetByUsername retrieves a user by username.
func GetByUsername(db *gorm.DB, username string) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if username == "" {
		return nil, ErrUsernameEmpty
	}

	var u models.User
	if err := db.Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %q: %w", username, err)
	}

	return &u, nil
}

// ConnectRoles assigns roles to a user. Roles already held are kept once.
func ConnectRoles(db *gorm.DB, userID uint64, roleIDs []uint) error {
	if len(roleIDs) == 0 {
		return ErrNoIDs
	}

	u, err := exists(db, userID)
	if err != nil {
		return err
	}

	roles, err := role.GetByIDs(db, roleIDs)
	if err != nil {
		return err
	}

	if err := db.Model(u).Association(assocRoles).Append(&roles); err != nil {
		return fmt.Errorf("failed to connect roles to user %d: %w", userID, err)
	}

	return nil
}

// DisconnectRole removes a role from a user. Removing a role not held is a no-op.
func DisconnectRole(db *gorm.DB, userID uint64, roleID uint) error {
	u, err := exists(db, userID)
	if err != nil {
		return err
	}

	if err := db.Model(u).Association(assocRoles).Delete(&models.Role{ID: roleID}); err != nil {
		return fmt.Errorf("failed to disconnect role %d from user %d: %w", roleID, userID, err)
	}

	return nil
}

// GrantPermissions grants permissions directly to a user.
func GrantPermissions(db *gorm.DB, userID uint64, permissionIDs []uint) error {
	return appendPermissions(db, userID, assocPermissions, permissionIDs)
}

// RemovePermission removes a direct grant. Role-inherited access is unaffected.
func RemovePermission(db *gorm.DB, userID uint64, permissionID uint) error {
	return deletePermission(db, userID, assocPermissions, permissionID)
}

// RevokePermissions denies permissions to a user regardless of roles and direct grants.
func RevokePermissions(db *gorm.DB, userID uint64, permissionIDs []uint) error {
	return appendPermissions(db, userID, assocRevoked, permissionIDs)
}

// RestorePermission lifts a revocation.
func RestorePermission(db *gorm.DB, userID uint64, permissionID uint) error {
	return deletePermission(db, userID, assocRevoked, permissionID)
}

func appendPermissions(db *gorm.DB, userID uint64, assoc string, ids []uint) error {
	if len(ids) == 0 {
		return ErrNoIDs
	}

	u, err := exists(db, userID)
	if err != nil {
		return err
	}

	perms, err := permission.GetByIDs(db, ids)
	if err != nil {
		return err
	}

	if err := db.Model(u).Association(assoc).Append(&perms); err != nil {
		return fmt.Errorf("failed to update %s of user %d: %w", assoc, userID, err)
	}

	return nil
}

func deletePermission(db *gorm.DB, userID uint64, assoc string, id uint) error {
	u, err := exists(db, userID)
	if err != nil {
		return err
	}

	if err := db.Model(u).Association(assoc).Delete(&models.Permission{ID: id}); err != nil {
		return fmt.Errorf("failed to update %s of user %d: %w", assoc, userID, err)
	}

	return nil
}

// ConnectUlbs assigns ULBs to a user. ULBs already assigned are kept once.
func ConnectUlbs(db *gorm.DB, userID uint64, ulbIDs []uint) error {
	if len(ulbIDs) == 0 {
		return ErrNoIDs
	}

	u, err := exists(db, userID)
	if err != nil {
		return err
	}

	ulbs, err := ulb.GetByIDs(db, ulbIDs)
	if err != nil {
		return err
	}

	if err := db.Model(u).Association(assocUlbs).Append(&ulbs); err != nil {
		return fmt.Errorf("failed to connect ulbs to user %d: %w", userID, err)
	}

	return nil
}

// DisconnectUlb removes a ULB from a user. Wards of that ULB stay mapped.
func DisconnectUlb(db *gorm.DB, userID uint64, ulbID uint) error {
	u, err := exists(db, userID)
	if err != nil {
		return err
	}

	if err := db.Model(u).Association(assocUlbs).Delete(&models.Ulb{ID: ulbID}); err != nil {
		return fmt.Errorf("failed to disconnect ulb %d from user %d: %w", ulbID, userID, err)
	}

	return nil
}

// MapWards assigns wards to a user. Wards already mapped are kept once.
func MapWards(db *gorm.DB, userID uint64, wardIDs []uint) error {
	if len(wardIDs) == 0 {
		return ErrNoIDs
	}

	u, err := exists(db, userID)
	if err != nil {
		return err
	}

	wards, err := ulb.WardsByIDs(db, wardIDs)
	if err != nil {
		return err
	}

	if err := db.Model(u).Association(assocWards).Append(&wards); err != nil {
		return fmt.Errorf("failed to map wards to user %d: %w", userID, err)
	}

	return nil
}

// RemoveWard removes a ward from a user.
func RemoveWard(db *gorm.DB, userID uint64, wardID uint) error {
	u, err := exists(db, userID)
	if err != nil {
		return err
	}

	if err := db.Model(u).Association(assocWards).Delete(&models.Ward{ID: wardID}); err != nil {
		return fmt.Errorf("failed to remove ward %d from user %d: %w", wardID, userID, err)
	}

	return nil
}

func exists(db *gorm.DB, id uint64) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var u models.User
	if err := db.Select("id").First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %d: %w", id, err)
	}

	return &u, nil
}
