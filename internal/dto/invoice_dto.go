package dto

import (
	"time"

	"github.com/noah-isme/therapy-admin-api/internal/models"
)

// InvoiceListRequest defines filters for listing invoices.
type InvoiceListRequest struct {
	ListQuery
	ProviderID    string `json:"providerId" query:"providerId" validate:"omitempty,uuid"`
	SchoolID      string `json:"schoolId" query:"schoolId" validate:"omitempty,uuid"`
	InvoiceNumber string `json:"invoiceNumber" query:"invoiceNumber" validate:"omitempty,max=64"`
	Status        string `json:"status" query:"status" validate:"omitempty,oneof=PENDING PAID OVERDUE CANCELLED"`
	IssueDateFrom string `json:"issueDateFrom" query:"issueDateFrom" validate:"omitempty,datetime=2006-01-02"`
	IssueDateTo   string `json:"issueDateTo" query:"issueDateTo" validate:"omitempty,datetime=2006-01-02"`
	SortBy        string `json:"sortBy" query:"sortBy" validate:"omitempty,oneof=invoiceNumber amount issueDate dueDate status createdAt provider"`
}

// InvoiceCreateRequest captures the payload for creating an invoice.
type InvoiceCreateRequest struct {
	ProviderID    string  `json:"providerId" validate:"required,uuid"`
	SchoolID      *string `json:"schoolId" validate:"omitempty,nullable_uuid"`
	InvoiceNumber string  `json:"invoiceNumber" validate:"required,min=1,max=64"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	IssueDate     string  `json:"issueDate" validate:"required,datetime=2006-01-02"`
	DueDate       string  `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	Notes         string  `json:"notes" validate:"omitempty,max=5000"`
	Status        string  `json:"status" validate:"omitempty,oneof=PENDING PAID OVERDUE CANCELLED"`
}

// InvoiceUpdateRequest captures partial update payloads for invoices.
type InvoiceUpdateRequest struct {
	ProviderID    *string  `json:"providerId" validate:"omitempty,uuid"`
	SchoolID      *string  `json:"schoolId" validate:"omitempty,nullable_uuid"`
	InvoiceNumber *string  `json:"invoiceNumber" validate:"omitempty,min=1,max=64"`
	Amount        *float64 `json:"amount" validate:"omitempty,gt=0"`
	IssueDate     *string  `json:"issueDate" validate:"omitempty,datetime=2006-01-02"`
	DueDate       *string  `json:"dueDate" validate:"omitempty,nullable_date"`
	Notes         *string  `json:"notes" validate:"omitempty,max=5000"`
	Status        *string  `json:"status" validate:"omitempty,oneof=PENDING PAID OVERDUE CANCELLED"`
}

// InvoiceResponse serializes an invoice with provider and school expanded.
type InvoiceResponse struct {
	ID            string         `json:"id"`
	ProviderID    string         `json:"providerId"`
	Provider      *PersonSummary `json:"provider,omitempty"`
	SchoolID      *string        `json:"schoolId"`
	School        *SchoolSummary `json:"school,omitempty"`
	InvoiceNumber string         `json:"invoiceNumber"`
	Amount        float64        `json:"amount"`
	IssueDate     time.Time      `json:"issueDate"`
	DueDate       *time.Time     `json:"dueDate"`
	Notes         string         `json:"notes"`
	Status        string         `json:"status"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// NewInvoiceResponse converts an invoice model into a DTO.
func NewInvoiceResponse(invoice models.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:            invoice.ID.String(),
		ProviderID:    invoice.ProviderID.String(),
		Provider:      newProviderSummary(invoice.Provider),
		SchoolID:      optionalID(invoice.SchoolID),
		School:        newSchoolSummary(invoice.School),
		InvoiceNumber: invoice.InvoiceNumber,
		Amount:        invoice.Amount,
		IssueDate:     invoice.IssueDate,
		DueDate:       invoice.DueDate,
		Notes:         invoice.Notes,
		Status:        invoice.Status,
		CreatedAt:     invoice.CreatedAt,
		UpdatedAt:     invoice.UpdatedAt,
	}
}
