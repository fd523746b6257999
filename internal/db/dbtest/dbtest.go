// Package dbtest opens throwaway migrated SQLite databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/anighost1/pp-be/internal/db/models"
)

// New creates a file backed SQLite database in the test's temp dir and migrates all models.
// A file is used instead of :memory: so every pooled connection sees the same schema.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to create test database")

	require.NoError(t, db.AutoMigrate(models.All()...), "failed to migrate test database")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

// Permission inserts an active or inactive permission.
func Permission(t *testing.T, db *gorm.DB, name string, active bool) models.Permission {
	t.Helper()

	p := models.Permission{Name: name, Active: active}
	require.NoError(t, db.Create(&p).Error)

	return p
}

// Menu inserts a menu linked to the given permissions.
func Menu(t *testing.T, db *gorm.DB, label string, parentID *uint, order int, active bool, perms ...models.Permission) models.Menu {
	t.Helper()

	m := models.Menu{Label: label, Path: "/" + label, ParentID: parentID, Order: order, Active: active, Permissions: perms}
	require.NoError(t, db.Create(&m).Error)

	return m
}

// Role inserts an active role holding the given permissions.
func Role(t *testing.T, db *gorm.DB, name string, ulbID *uint, perms ...models.Permission) models.Role {
	t.Helper()

	r := models.Role{Name: name, UlbID: ulbID, Active: true, Permissions: perms}
	require.NoError(t, db.Create(&r).Error)

	return r
}

// User inserts an active user with the given roles, direct and revoked permissions.
func User(t *testing.T, db *gorm.DB, username string, roles []models.Role, direct, revoked []models.Permission) models.User {
	t.Helper()

	u := models.User{
		Active:             true,
		Username:           username,
		Email:              username + "@example.org",
		Password:           models.HashPassword("secret"),
		Roles:              roles,
		Permissions:        direct,
		RevokedPermissions: revoked,
	}
	require.NoError(t, db.Create(&u).Error)

	return u
}

// Ulb inserts an active urban local body.
func Ulb(t *testing.T, db *gorm.DB, name string) models.Ulb {
	t.Helper()

	u := models.Ulb{Name: name, Active: true}
	require.NoError(t, db.Create(&u).Error)

	return u
}

// Ward inserts an active ward of the given ULB.
func Ward(t *testing.T, db *gorm.DB, wardNo string, ulbID uint) models.Ward {
	t.Helper()

	w := models.Ward{WardNo: wardNo, UlbID: ulbID, Active: true}
	require.NoError(t, db.Create(&w).Error)

	return w
}
