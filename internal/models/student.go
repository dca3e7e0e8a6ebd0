package models

import (
	"time"

	"github.com/google/uuid"
)

// Student statuses.
const (
	StudentStatusActive    = "ACTIVE"
	StudentStatusInactive  = "INACTIVE"
	StudentStatusGraduated = "GRADUATED"
)

// Student is a learner enrolled at a school who may receive therapy services.
type Student struct {
	Base
	FirstName   string     `gorm:"size:128;not null" json:"firstName"`
	LastName    string     `gorm:"size:128;not null" json:"lastName"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	Grade       string     `gorm:"size:16" json:"grade"`
	Status      string     `gorm:"size:16;not null" json:"status"`
	SchoolID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"schoolId"`
	School      *School    `gorm:"foreignKey:SchoolID" json:"school,omitempty"`
}
