package models

import (
	"time"

	"github.com/google/uuid"
)

// Invoice statuses.
const (
	InvoiceStatusPending   = "PENDING"
	InvoiceStatusPaid      = "PAID"
	InvoiceStatusOverdue   = "OVERDUE"
	InvoiceStatusCancelled = "CANCELLED"
)

// Invoice is a bill submitted by a provider for delivered services.
type Invoice struct {
	Base
	ProviderID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"providerId"`
	Provider      *Provider  `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
	SchoolID      *uuid.UUID `gorm:"type:uuid;index" json:"schoolId"`
	School        *School    `gorm:"foreignKey:SchoolID" json:"school,omitempty"`
	InvoiceNumber string     `gorm:"size:64;uniqueIndex;not null" json:"invoiceNumber"`
	Amount        float64    `gorm:"type:numeric(12,2);not null" json:"amount"`
	IssueDate     time.Time  `gorm:"not null" json:"issueDate"`
	DueDate       *time.Time `json:"dueDate"`
	Notes         string     `gorm:"type:text" json:"notes"`
	Status        string     `gorm:"size:16;not null;index" json:"status"`
}
