// Package menu provides store access for navigation menus.
package menu

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
	// ErrMenuNotFound is returned when a menu is not found.
	ErrMenuNotFound = errors.New("menu not found")
	// ErrMenuLabelEmpty is returned when attempting to create a menu without a label.
	ErrMenuLabelEmpty = errors.New("menu label cannot be empty")
	// ErrMenuSelfParent is returned when a menu would become its own parent.
	ErrMenuSelfParent = errors.New("menu cannot be its own parent")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Create stores an active menu and links it to the named permissions.
// The parent is not required to exist; an unresolvable parent renders as a root.
func Create(
	db *gorm.DB,
	label, path string,
	parentID *uint,
	order int,
	permissionNames []string,
) (*models.Menu, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if label == "" {
		return nil, ErrMenuLabelEmpty
	}

	perms, err := permission.GetByNames(db, permissionNames)
	if err != nil {
		return nil, err
	}

	m := models.Menu{
		Label:       label,
		Path:        path,
		ParentID:    parentID,
		Order:       order,
		Active:      true,
		Permissions: perms,
	}

	if err := db.Create(&m).Error; err != nil {
		return nil, fmt.Errorf("failed to create menu %q: %w", label, err)
	}

	return &m, nil
}

// Active returns every active menu ordered by id.
func Active(db *gorm.DB) ([]models.Menu, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var menus []models.Menu
	if err := db.Where("active = ?", true).Order("id").Find(&menus).Error; err != nil {
		return nil, fmt.Errorf("failed to load active menus: %w", err)
	}

	return menus, nil
}

// Toggle flips the active flag of a menu and returns the updated record.
func Toggle(db *gorm.DB, id uint) (*models.Menu, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var m models.Menu
	if err := db.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuNotFound
		}
		return nil, err
	}

	m.Active = !m.Active
	if err := db.Model(&m).Update("active", m.Active).Error; err != nil {
		return nil, fmt.Errorf("failed to toggle menu %d: %w", id, err)
	}

	return &m, nil
}

// Filter narrows List. Zero values do not filter.
type Filter struct {
	Label  string `query:"label"` // case insensitive substring
	Active *bool  `query:"active"`
}

// List returns one page of menus with their permissions, newest first.
func List(db *gorm.DB, f Filter, page paging.Page) (paging.Result[models.Menu], error) {
	if db == nil {
		return paging.Result[models.Menu]{}, ErrDBNil
	}

	query := db.Model(&models.Menu{})
	if f.Label != "" {
		query = query.Where("LOWER(label) LIKE ?", "%"+strings.ToLower(f.Label)+"%")
	}
	if f.Active != nil {
		query = query.Where("active = ?", *f.Active)
	}

	return paging.Find[models.Menu](query, page, "id desc", "Permissions")
}

// GetByID returns a menu with its permissions.
func GetByID(db *gorm.DB, id uint) (*models.Menu, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var m models.Menu
	if err := db.Preload("Permissions", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("permissions.id")
	}).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuNotFound
		}
		return nil, fmt.Errorf("failed to load menu %d: %w", id, err)
	}

	return &m, nil
}

// Update replaces label, path, parent, order and the linked permissions of a
// menu. A nil parentID makes it a root.
func Update(
	db *gorm.DB,
	id uint,
	label, path string,
	parentID *uint,
	order int,
	permissionNames []string,
) (*models.Menu, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if label == "" {
		return nil, ErrMenuLabelEmpty
	}
	if parentID != nil && *parentID == id {
		return nil, ErrMenuSelfParent
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var m models.Menu
		if err := tx.First(&m, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMenuNotFound
			}
			return fmt.Errorf("failed to load menu %d: %w", id, err)
		}

		perms, err := permission.GetByNames(tx, permissionNames)
		if err != nil {
			return err
		}

		err = tx.Model(&m).Select("Label", "Path", "ParentID", "Order").Updates(models.Menu{
			Label:    label,
			Path:     path,
			ParentID: parentID,
			Order:    order,
		}).Error
		if err != nil {
			return fmt.Errorf("failed to update menu %d: %w", id, err)
		}

		if err := tx.Model(&m).Association("Permissions").Replace(&perms); err != nil {
			return fmt.Errorf("failed to replace permissions of menu %d: %w", id, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return GetByID(db, id)
}
