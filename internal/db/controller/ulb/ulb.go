// Package ulb provides lookups of urban local bodies and their wards.
// Creating and editing them is done by the master data service.
package ulb

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/anighost1/pp-be/internal/db/models"
)

var (
	// ErrUlbNotFound is returned when one or more ULBs are not found.
	ErrUlbNotFound = errors.New("ulb not found")
	// ErrWardNotFound is returned when one or more wards are not found.
	ErrWardNotFound = errors.New("ward not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetByIDs returns the ULBs with the given ids. Every id must exist.
func GetByIDs(db *gorm.DB, ids []uint) ([]models.Ulb, error) {
	return byIDs[models.Ulb](db, ids, "ulbs", ErrUlbNotFound)
}

// WardsByIDs returns the wards with the given ids. Every id must exist.
func WardsByIDs(db *gorm.DB, ids []uint) ([]models.Ward, error) {
	return byIDs[models.Ward](db, ids, "wards", ErrWardNotFound)
}

func byIDs[T any](db *gorm.DB, ids []uint, what string, notFound error) ([]T, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	rows := []T{}
	if len(ids) == 0 {
		return rows, nil
	}

	if err := db.Where("id IN ?", ids).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", what, err)
	}

	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	if len(rows) != len(seen) {
		return nil, notFound
	}

	return rows, nil
}
