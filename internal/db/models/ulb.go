package models

// Ulb is an urban local body, the organizational unit roles and permissions are scoped to.
type Ulb struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"size:150;not null" json:"name"`
	Active bool   `gorm:"not null" json:"active"`
}

// TableName specifies the database table name for the Ulb model.
func (Ulb) TableName() string {
	return "ulbs"
}

// Ward is a ward of an urban local body; field staff are mapped to wards.
type Ward struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	WardNo string `gorm:"column:ward_no;size:20;not null" json:"ward_no"`
	UlbID  uint   `gorm:"column:ulb_id;not null" json:"ulb_id"`
	Active bool   `gorm:"not null" json:"active"`
}

// TableName specifies the database table name for the Ward model.
func (Ward) TableName() string {
	return "wards"
}
