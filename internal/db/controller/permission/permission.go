// Package permission provides store access for the permission catalog.
package permission

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/anighost1/pp-be/internal/db/controller/paging"
	"github.com/anighost1/pp-be/internal/db/models"
)

var (
	// ErrPermissionNotFound is returned when a permission is not found.
	ErrPermissionNotFound = errors.New("permission not found")
	// ErrPermissionNameEmpty is returned when attempting to create a permission with an empty name.
	ErrPermissionNameEmpty = errors.New("permission name cannot be empty")
	// ErrPermissionAlreadyExists is returned when attempting to create a permission that already exists.
	ErrPermissionAlreadyExists = errors.New("permission already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Create stores a new active permission.
func Create(db *gorm.DB, name string, ulbID *uint) (*models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrPermissionNameEmpty
	}

	var count int64
	if err := db.Model(&models.Permission{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check permission %q: %w", name, err)
	}
	if count > 0 {
		return nil, ErrPermissionAlreadyExists
	}

	perm := models.Permission{Name: name, UlbID: ulbID, Active: true}
	if err := db.Create(&perm).Error; err != nil {
		return nil, fmt.Errorf("failed to create permission %q: %w", name, err)
	}

	return &perm, nil
}

// CreateMany stores one active permission per name in a single transaction.
// Nothing is stored when any name is empty or taken.
func CreateMany(db *gorm.DB, names []string, ulbID *uint) ([]models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	perms := make([]models.Permission, 0, len(names))

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, name := range names {
			p, err := Create(tx, strings.TrimSpace(name), ulbID)
			if err != nil {
				return err
			}
			perms = append(perms, *p)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return perms, nil
}

// FirstOrCreate returns the permission with the given name, creating it active when missing.
func FirstOrCreate(db *gorm.DB, name string) (*models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrPermissionNameEmpty
	}

	var perm models.Permission
	err := db.Where("name = ?", name).Attrs(models.Permission{Active: true}).FirstOrCreate(&perm).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get or create permission %q: %w", name, err)
	}

	return &perm, nil
}

// ActiveCatalog returns every active permission ordered by id.
func ActiveCatalog(db *gorm.DB) ([]models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var perms []models.Permission
	if err := db.Where("active = ?", true).Order("id").Find(&perms).Error; err != nil {
		return nil, fmt.Errorf("failed to load active permissions: %w", err)
	}

	return perms, nil
}

// GetByIDs returns the permissions with the given ids. Every id must exist.
func GetByIDs(db *gorm.DB, ids []uint) ([]models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var perms []models.Permission
	if len(ids) == 0 {
		return perms, nil
	}

	if err := db.Where("id IN ?", ids).Order("id").Find(&perms).Error; err != nil {
		return nil, fmt.Errorf("failed to load permissions: %w", err)
	}

	if len(perms) != countDistinct(ids) {
		return nil, ErrPermissionNotFound
	}

	return perms, nil
}

// GetByNames returns the permissions with the given names. Every name must exist.
func GetByNames(db *gorm.DB, names []string) ([]models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var perms []models.Permission
	if len(names) == 0 {
		return perms, nil
	}

	if err := db.Where("name IN ?", names).Order("id").Find(&perms).Error; err != nil {
		return nil, fmt.Errorf("failed to load permissions: %w", err)
	}

	if len(perms) != countDistinct(names) {
		return nil, ErrPermissionNotFound
	}

	return perms, nil
}

// Filter narrows List. Zero values do not filter.
type Filter struct {
	Name   string `query:"name"`   // case insensitive substring
	Active *bool  `query:"active"` // lifecycle flag
}

// List returns one page of permissions, newest first.
func List(db *gorm.DB, f Filter, page paging.Page) (paging.Result[models.Permission], error) {
	if db == nil {
		return paging.Result[models.Permission]{}, ErrDBNil
	}

	query := db.Model(&models.Permission{})
	if f.Name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(f.Name)+"%")
	}
	if f.Active != nil {
		query = query.Where("active = ?", *f.Active)
	}

	return paging.Find[models.Permission](query, page, "id desc")
}

// GetByID returns a permission with the menus it unlocks.
func GetByID(db *gorm.DB, id uint) (*models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var perm models.Permission
	if err := db.Preload("Menus").First(&perm, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPermissionNotFound
		}
		return nil, fmt.Errorf("failed to load permission %d: %w", id, err)
	}

	return &perm, nil
}

// Update renames a permission. A nil ulbID keeps the current scope.
func Update(db *gorm.DB, id uint, name string, ulbID *uint) (*models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPermissionNameEmpty
	}

	var perm models.Permission
	if err := db.First(&perm, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPermissionNotFound
		}
		return nil, fmt.Errorf("failed to load permission %d: %w", id, err)
	}

	var count int64
	if err := db.Model(&models.Permission{}).Where("name = ? AND id <> ?", name, id).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check permission %q: %w", name, err)
	}
	if count > 0 {
		return nil, ErrPermissionAlreadyExists
	}

	updates := map[string]any{"name": name}
	if ulbID != nil {
		updates["ulb_id"] = *ulbID
	}

	if err := db.Model(&perm).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update permission %d: %w", id, err)
	}

	perm.Name = name
	if ulbID != nil {
		perm.UlbID = ulbID
	}

	return &perm, nil
}

// Toggle flips the active flag of a permission and returns the updated record.
func Toggle(db *gorm.DB, id uint) (*models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var perm models.Permission
	if err := db.First(&perm, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPermissionNotFound
		}
		return nil, err
	}

	perm.Active = !perm.Active
	if err := db.Model(&perm).Update("active", perm.Active).Error; err != nil {
		return nil, fmt.Errorf("failed to toggle permission %d: %w", id, err)
	}

	return &perm, nil
}

func countDistinct[T comparable](values []T) int {
	seen := make(map[T]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}

	return len(seen)
}
