package models

import "time"

// Menu is one navigation entry. ParentID forms a forest; Order sorts siblings.
type Menu struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Label    string `gorm:"size:100;not null" json:"label"`
	Path     string `gorm:"size:255" json:"path"`
	ParentID *uint  `gorm:"column:parent_id;index" json:"parentId"`
	// Order is quoted by gorm, order is a reserved word in every supported engine.
	Order       int          `gorm:"column:order;not null;default:0" json:"order"`
	Active      bool         `gorm:"not null" json:"active"`
	Permissions []Permission `gorm:"many2many:menu_permissions;" json:"permissions,omitempty"`
	CreatedAt   time.Time    `json:"-"`
	UpdatedAt   time.Time    `json:"-"`
}

// TableName specifies the database table name for the Menu model.
func (Menu) TableName() string {
	return "menus"
}
