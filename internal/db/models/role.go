package models

import "time"

// Role groups permissions. A role whose name matches the configured superuser
// marker grants every active permission and menu.
type Role struct {
	// ID is the unique identifier for the role.
	ID uint `gorm:"primaryKey" json:"id"`
	// Name is the unique name of the role (e.g. "super-admin", "surveyor").
	Name string `gorm:"unique;size:100;not null" json:"name"`
	// UlbID scopes the role to an urban local body, nil means global.
	UlbID *uint `gorm:"column:ulb_id" json:"ulb_id,omitempty"`
	// Active is the lifecycle flag.
	Active bool `gorm:"not null" json:"active"`
	// Permissions attached to the role.
	Permissions []Permission `gorm:"many2many:role_permissions;" json:"permissions,omitempty"`
	// CreatedAt is the timestamp when the role was created (managed by GORM).
	CreatedAt time.Time `json:"-"`
	// UpdatedAt is the timestamp when the role was last updated (managed by GORM).
	UpdatedAt time.Time `json:"-"`
}

// TableName specifies the database table name for the Role model.
func (Role) TableName() string {
	return "roles"
}
