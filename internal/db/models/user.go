// Package models contains database model definitions.
package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// User represents an employee account of the back-office.
// Effective access is computed from Roles, direct Permissions and RevokedPermissions.
type User struct {
	// ID is the unique identifier for the user.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// Active indicates whether the user account is active and can log in.
	Active bool `json:"active"`
	// Username is the unique username for login.
	Username string `gorm:"unique;size:100;not null" json:"username"`
	// Email is the user's email address.
	Email string `gorm:"size:255" json:"email"`
	// Password is the Argon2id hashed password.
	Password string `gorm:"size:255" json:"-"`
	// Roles assigned to the user.
	Roles []Role `gorm:"many2many:user_roles;" json:"roles,omitempty"`
	// Permissions granted directly, independent of roles.
	Permissions []Permission `gorm:"many2many:user_permissions;" json:"permissions,omitempty"`
	// RevokedPermissions are denied explicitly and override role and direct grants.
	RevokedPermissions []Permission `gorm:"many2many:user_revoked_permissions;" json:"revoked_permissions,omitempty"`
	// Ulbs the user works for.
	Ulbs []Ulb `gorm:"many2many:user_ulbs;" json:"ulbs,omitempty"`
	// Wards the user is mapped to.
	Wards []Ward `gorm:"many2many:user_wards;" json:"wards,omitempty"`
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time `json:"-"`
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time `json:"-"`
}

// TableName specifies the database table name for the User model.
func (User) TableName() string {
	return "users"
}

// HashPassword hashes a plaintext password using the Argon2id algorithm.
func HashPassword(password string) string {
	hashedPassword, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		log.Fatal().Msgf("failed to hash password: %v", err)
	}

	return hashedPassword
}

// VerifyPassword verifies a plaintext password against the user's stored hashed password.
// It uses constant-time comparison to prevent timing attacks.
func (u *User) VerifyPassword(password string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, u.Password)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", u.ID).Msg("failed to verify password")
		return false
	}

	return match
}

// All returns every model the daemon migrates.
func All() []any {
	return []any{
		&Ulb{},
		&Ward{},
		&Permission{},
		&Role{},
		&Menu{},
		&User{},
	}
}
