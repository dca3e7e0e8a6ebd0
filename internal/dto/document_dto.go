package dto

import (
	"time"

	"github.com/noah-isme/therapy-admin-api/internal/models"
)

// DocumentListRequest defines filters for listing documents.
type DocumentListRequest struct {
	ListQuery
	Name     string `json:"name" query:"name" validate:"omitempty,max=255"`
	MimeType string `json:"mimeType" query:"mimeType" validate:"omitempty,max=128"`
	SortBy   string `json:"sortBy" query:"sortBy" validate:"omitempty,oneof=name size createdAt"`
}

// DocumentUpdateRequest renames an uploaded document.
type DocumentUpdateRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=255"`
}

// DocumentResponse serializes uploaded document metadata.
type DocumentResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	MimeType  string    `json:"mimeType"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewDocumentResponse converts a document model into a DTO.
func NewDocumentResponse(document models.Document) DocumentResponse {
	return DocumentResponse{
		ID:        document.ID.String(),
		Name:      document.Name,
		URL:       document.URL,
		MimeType:  document.MimeType,
		Size:      document.Size,
		CreatedAt: document.CreatedAt,
		UpdatedAt: document.UpdatedAt,
	}
}

// ContractListRequest defines filters for listing contracts.
type ContractListRequest struct {
	ListQuery
	Name   string `json:"name" query:"name" validate:"omitempty,max=255"`
	Status string `json:"status" query:"status" validate:"omitempty,oneof=ACTIVE EXPIRED"`
	SortBy string `json:"sortBy" query:"sortBy" validate:"omitempty,oneof=name startDate endDate rate status createdAt"`
}

// ContractCreateRequest captures the payload for creating a contract.
type ContractCreateRequest struct {
	Name      string  `json:"name" validate:"required,min=1,max=255"`
	StartDate string  `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string  `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Rate      float64 `json:"rate" validate:"omitempty,gte=0"`
	Status    string  `json:"status" validate:"omitempty,oneof=ACTIVE EXPIRED"`
}

// ContractUpdateRequest captures partial update payloads for contracts.
type ContractUpdateRequest struct {
	Name      *string  `json:"name" validate:"omitempty,min=1,max=255"`
	StartDate *string  `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string  `json:"endDate" validate:"omitempty,nullable_date"`
	Rate      *float64 `json:"rate" validate:"omitempty,gte=0"`
	Status    *string  `json:"status" validate:"omitempty,oneof=ACTIVE EXPIRED"`
}

// ContractResponse serializes a contract.
type ContractResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	StartDate time.Time  `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	Rate      float64    `json:"rate"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// NewContractResponse converts a contract model into a DTO.
func NewContractResponse(contract models.Contract) ContractResponse {
	return ContractResponse{
		ID:        contract.ID.String(),
		Name:      contract.Name,
		StartDate: contract.StartDate,
		EndDate:   contract.EndDate,
		Rate:      contract.Rate,
		Status:    contract.Status,
		CreatedAt: contract.CreatedAt,
		UpdatedAt: contract.UpdatedAt,
	}
}

// ContactListRequest defines filters for listing contacts.
type ContactListRequest struct {
	ListQuery
	Name   string `json:"name" query:"name" validate:"omitempty,max=255"`
	Email  string `json:"email" query:"email" validate:"omitempty,max=255"`
	SortBy string `json:"sortBy" query:"sortBy" validate:"omitempty,oneof=name email title createdAt"`
}

// ContactCreateRequest captures the payload for creating a contact.
type ContactCreateRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=255"`
	Email string `json:"email" validate:"omitempty,email,max=255"`
	Phone string `json:"phone" validate:"omitempty,max=32"`
	Title string `json:"title" validate:"omitempty,max=128"`
}

// ContactUpdateRequest captures partial update payloads for contacts.
type ContactUpdateRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=255"`
	Email *string `json:"email" validate:"omitempty,email,max=255"`
	Phone *string `json:"phone" validate:"omitempty,max=32"`
	Title *string `json:"title" validate:"omitempty,max=128"`
}

// ContactResponse serializes a contact.
type ContactResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewContactResponse converts a contact model into a DTO.
func NewContactResponse(contact models.Contact) ContactResponse {
	return ContactResponse{
		ID:        contact.ID.String(),
		Name:      contact.Name,
		Email:     contact.Email,
		Phone:     contact.Phone,
		Title:     contact.Title,
		CreatedAt: contact.CreatedAt,
		UpdatedAt: contact.UpdatedAt,
	}
}
