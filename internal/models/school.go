package models

// School statuses.
const (
	SchoolStatusActive   = "ACTIVE"
	SchoolStatusInactive = "INACTIVE"
)

// School is a district school receiving therapy services.
type School struct {
	Base
	Name    string `gorm:"size:255;not null;index" json:"name"`
	Address string `gorm:"size:255" json:"address"`
	City    string `gorm:"size:128" json:"city"`
	State   string `gorm:"size:64" json:"state"`
	ZipCode string `gorm:"size:16" json:"zipCode"`
	Phone   string `gorm:"size:32" json:"phone"`
	Status  string `gorm:"size:16;not null" json:"status"`
}
