package models

import "time"

// Permission is a capability key granted through roles or directly to a user.
// Permissions are toggled active/inactive and never hard-deleted while referenced.
type Permission struct {
	// ID is the unique identifier for the permission.
	ID uint `gorm:"primaryKey" json:"id"`
	// Name is the unique capability key (e.g. "employee.access").
	Name string `gorm:"unique;size:100;not null" json:"name"`
	// UlbID scopes the permission to an urban local body, nil means global.
	UlbID *uint `gorm:"column:ulb_id" json:"ulb_id,omitempty"`
	// Active is the lifecycle flag.
	Active bool `gorm:"not null" json:"active"`
	// Menus are the menu entries this permission unlocks.
	Menus []Menu `gorm:"many2many:menu_permissions;" json:"menus,omitempty"`
	// CreatedAt is the timestamp when the permission was created (managed by GORM).
	CreatedAt time.Time `json:"-"`
	// UpdatedAt is the timestamp when the permission was last updated (managed by GORM).
	UpdatedAt time.Time `json:"-"`
}

// TableName specifies the database table name for the Permission model.
func (Permission) TableName() string {
	return "permissions"
}
