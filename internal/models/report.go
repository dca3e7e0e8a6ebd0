package models

import (
	"time"

	"github.com/google/uuid"
)

// Report statuses.
const (
	ReportStatusDraft     = "DRAFT"
	ReportStatusSubmitted = "SUBMITTED"
	ReportStatusApproved  = "APPROVED"
)

// Report is a progress report written against a therapy service.
type Report struct {
	Base
	TherapyServiceID uuid.UUID       `gorm:"type:uuid;not null;index" json:"therapyServiceId"`
	TherapyService   *TherapyService `gorm:"foreignKey:TherapyServiceID" json:"therapyService,omitempty"`
	Title            string          `gorm:"size:255;not null" json:"title"`
	Notes            string          `gorm:"type:text" json:"notes"`
	ReportDate       time.Time       `gorm:"not null" json:"reportDate"`
	Status           string          `gorm:"size:16;not null" json:"status"`
}
