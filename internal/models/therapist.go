package models

import "github.com/google/uuid"

// Therapist statuses.
const (
	TherapistStatusActive   = "ACTIVE"
	TherapistStatusInactive = "INACTIVE"
)

// Therapy disciplines, shared by therapists and therapy services.
const (
	DisciplineSpeech       = "SPEECH"
	DisciplineOccupational = "OCCUPATIONAL"
	DisciplinePhysical     = "PHYSICAL"
	DisciplineBehavioral   = "BEHAVIORAL"
)

// Therapist is a clinician working for a provider.
type Therapist struct {
	Base
	ProviderID    uuid.UUID `gorm:"type:uuid;not null;index" json:"providerId"`
	Provider      *Provider `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
	FirstName     string    `gorm:"size:128;not null" json:"firstName"`
	LastName      string    `gorm:"size:128;not null" json:"lastName"`
	Email         string    `gorm:"size:255" json:"email"`
	Phone         string    `gorm:"size:32" json:"phone"`
	Discipline    string    `gorm:"size:16;not null" json:"discipline"`
	LicenseNumber string    `gorm:"size:64" json:"licenseNumber"`
	Status        string    `gorm:"size:16;not null" json:"status"`
}
