package dto

import (
	"time"

	"github.com/noah-isme/therapy-admin-api/internal/models"
)

// ProviderListRequest defines filters for listing providers.
type ProviderListRequest struct {
	ListQuery
	Name          string `json:"name" query:"name" validate:"omitempty,max=255"`
	Email         string `json:"email" query:"email" validate:"omitempty,max=255"`
	LicenseNumber string `json:"licenseNumber" query:"licenseNumber" validate:"omitempty,max=64"`
	ProviderType  string `json:"providerType" query:"providerType" validate:"omitempty,oneof=INDIVIDUAL AGENCY"`
	Status        string `json:"status" query:"status" validate:"omitempty,oneof=PENDING ACTIVE INACTIVE"`
	SortBy        string `json:"sortBy" query:"sortBy" validate:"omitempty,oneof=firstName lastName email licenseNumber status createdAt"`
}

// ProviderCreateRequest captures the payload for creating a provider.
type ProviderCreateRequest struct {
	FirstName     string `json:"firstName" validate:"required,min=1,max=128"`
	LastName      string `json:"lastName" validate:"required,min=1,max=128"`
	Email         string `json:"email" validate:"required,email,max=255"`
	Phone         string `json:"phone" validate:"omitempty,max=32"`
	LicenseNumber string `json:"licenseNumber" validate:"required,min=1,max=64"`
	NPINumber     string `json:"npiNumber" validate:"omitempty,max=32"`
	ProviderType  string `json:"providerType" validate:"omitempty,oneof=INDIVIDUAL AGENCY"`
	Status        string `json:"status" validate:"omitempty,oneof=PENDING ACTIVE INACTIVE"`
}

// ProviderUpdateRequest captures partial update payloads for providers.
type ProviderUpdateRequest struct {
	FirstName     *string `json:"firstName" validate:"omitempty,min=1,max=128"`
	LastName      *string `json:"lastName" validate:"omitempty,min=1,max=128"`
	Email         *string `json:"email" validate:"omitempty,email,max=255"`
	Phone         *string `json:"phone" validate:"omitempty,max=32"`
	LicenseNumber *string `json:"licenseNumber" validate:"omitempty,min=1,max=64"`
	NPINumber     *string `json:"npiNumber" validate:"omitempty,max=32"`
	ProviderType  *string `json:"providerType" validate:"omitempty,oneof=INDIVIDUAL AGENCY"`
	Status        *string `json:"status" validate:"omitempty,oneof=PENDING ACTIVE INACTIVE"`
}

// ProviderResponse serializes a provider. Link sets are only populated by find.
type ProviderResponse struct {
	ID            string             `json:"id"`
	FirstName     string             `json:"firstName"`
	LastName      string             `json:"lastName"`
	Email         string             `json:"email"`
	Phone         string             `json:"phone"`
	LicenseNumber string             `json:"licenseNumber"`
	NPINumber     string             `json:"npiNumber"`
	ProviderType  string             `json:"providerType"`
	Status        string             `json:"status"`
	Documents     []DocumentResponse `json:"documents,omitempty"`
	Contracts     []ContractResponse `json:"contracts,omitempty"`
	Contacts      []ContactResponse  `json:"contacts,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// NewProviderResponse converts a provider model into a DTO.
func NewProviderResponse(provider models.Provider) ProviderResponse {
	return ProviderResponse{
		ID:            provider.ID.String(),
		FirstName:     provider.FirstName,
		LastName:      provider.LastName,
		Email:         provider.Email,
		Phone:         provider.Phone,
		LicenseNumber: provider.LicenseNumber,
		NPINumber:     provider.NPINumber,
		ProviderType:  provider.ProviderType,
		Status:        provider.Status,
		CreatedAt:     provider.CreatedAt,
		UpdatedAt:     provider.UpdatedAt,
	}
}

// NewProviderDetailResponse converts a provider and its link sets into a DTO.
func NewProviderDetailResponse(provider models.Provider, documents []models.Document, contracts []models.Contract, contacts []models.Contact) ProviderResponse {
	response := NewProviderResponse(provider)
	response.Documents = make([]DocumentResponse, 0, len(documents))
	for _, document := range documents {
		response.Documents = append(response.Documents, NewDocumentResponse(document))
	}
	response.Contracts = make([]ContractResponse, 0, len(contracts))
	for _, contract := range contracts {
		response.Contracts = append(response.Contracts, NewContractResponse(contract))
	}
	response.Contacts = make([]ContactResponse, 0, len(contacts))
	for _, contact := range contacts {
		response.Contacts = append(response.Contacts, NewContactResponse(contact))
	}
	return response
}

func newProviderSummary(provider *models.Provider) *PersonSummary {
	if provider == nil {
		return nil
	}
	return newPersonSummary(provider.ID.String(), provider.FirstName, provider.LastName)
}
