package models

import (
	"time"

	"github.com/google/uuid"
)

// Provider statuses and types.
const (
	ProviderStatusPending  = "PENDING"
	ProviderStatusActive   = "ACTIVE"
	ProviderStatusInactive = "INACTIVE"

	ProviderTypeIndividual = "INDIVIDUAL"
	ProviderTypeAgency     = "AGENCY"
)

// Provider is a contracted therapy provider, either an individual or an agency.
type Provider struct {
	Base
	FirstName     string `gorm:"size:128;not null" json:"firstName"`
	LastName      string `gorm:"size:128;not null" json:"lastName"`
	Email         string `gorm:"size:255;not null" json:"email"`
	Phone         string `gorm:"size:32" json:"phone"`
	LicenseNumber string `gorm:"size:64;index" json:"licenseNumber"`
	NPINumber     string `gorm:"size:32" json:"npiNumber"`
	ProviderType  string `gorm:"size:16;not null" json:"providerType"`
	Status        string `gorm:"size:16;not null" json:"status"`
}

// Document is an uploaded file that can be linked to providers.
type Document struct {
	Base
	Name     string `gorm:"size:255;not null" json:"name"`
	URL      string `gorm:"size:512;not null" json:"url"`
	MimeType string `gorm:"size:128;not null" json:"mimeType"`
	Size     int64  `gorm:"not null" json:"size"`
	Checksum string `gorm:"size:128;index" json:"checksum"`
}

// Contract statuses.
const (
	ContractStatusActive  = "ACTIVE"
	ContractStatusExpired = "EXPIRED"
)

// Contract is a service agreement that can be linked to providers.
type Contract struct {
	Base
	Name      string     `gorm:"size:255;not null" json:"name"`
	StartDate time.Time  `gorm:"not null" json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	Rate      float64    `gorm:"type:numeric(12,2)" json:"rate"`
	Status    string     `gorm:"size:16;not null" json:"status"`
}

// Contact is a person reachable on behalf of a provider.
type Contact struct {
	Base
	Name  string `gorm:"size:255;not null" json:"name"`
	Email string `gorm:"size:255" json:"email"`
	Phone string `gorm:"size:32" json:"phone"`
	Title string `gorm:"size:128" json:"title"`
}

// ProviderDocument links a provider to a document.
type ProviderDocument struct {
	ProviderID uuid.UUID `gorm:"type:uuid;primaryKey"`
	DocumentID uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt  time.Time
}

// ProviderContract links a provider to a contract.
type ProviderContract struct {
	ProviderID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ContractID uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt  time.Time
}

// ProviderContact links a provider to a contact.
type ProviderContact struct {
	ProviderID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ContactID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt  time.Time
}
