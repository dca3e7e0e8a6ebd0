package models

import (
	"time"

	"github.com/google/uuid"
)

// Therapy service statuses.
const (
	TherapyServiceStatusPending   = "PENDING"
	TherapyServiceStatusActive    = "ACTIVE"
	TherapyServiceStatusCompleted = "COMPLETED"
	TherapyServiceStatusCancelled = "CANCELLED"
)

// TherapyService is a therapy mandate delivered to a student by a provider.
type TherapyService struct {
	Base
	StudentID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"studentId"`
	Student        *Student   `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	ProviderID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"providerId"`
	Provider       *Provider  `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
	TherapistID    *uuid.UUID `gorm:"type:uuid;index" json:"therapistId"`
	Therapist      *Therapist `gorm:"foreignKey:TherapistID" json:"therapist,omitempty"`
	ServiceType    string     `gorm:"size:16;not null" json:"serviceType"`
	MinutesPerWeek int        `gorm:"not null" json:"minutesPerWeek"`
	StartDate      time.Time  `gorm:"not null" json:"startDate"`
	EndDate        *time.Time `json:"endDate"`
	Status         string     `gorm:"size:16;not null;index" json:"status"`
}
