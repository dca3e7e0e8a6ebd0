package dto

import (
	"time"

	"github.com/noah-isme/therapy-admin-api/internal/models"
)

// TherapistListRequest defines filters for listing therapists.
type TherapistListRequest struct {
	ListQuery
	Name       string `json:"name" query:"name" validate:"omitempty,max=255"`
	ProviderID string `json:"providerId" query:"providerId" validate:"omitempty,uuid"`
	Discipline string `json:"discipline" query:"discipline" validate:"omitempty,oneof=SPEECH OCCUPATIONAL PHYSICAL BEHAVIORAL"`
	Status     string `json:"status" query:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
	SortBy     string `json:"sortBy" query:"sortBy" validate:"omitempty,oneof=firstName lastName discipline status createdAt provider"`
}

// TherapistCreateRequest captures the payload for creating a therapist.
type TherapistCreateRequest struct {
	ProviderID    string `json:"providerId" validate:"required,uuid"`
	FirstName     string `json:"firstName" validate:"required,min=1,max=128"`
	LastName      string `json:"lastName" validate:"required,min=1,max=128"`
	Email         string `json:"email" validate:"omitempty,email,max=255"`
	Phone         string `json:"phone" validate:"omitempty,max=32"`
	Discipline    string `json:"discipline" validate:"required,oneof=SPEECH OCCUPATIONAL PHYSICAL BEHAVIORAL"`
	LicenseNumber string `json:"licenseNumber" validate:"omitempty,max=64"`
	Status        string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

// TherapistUpdateRequest captures partial update payloads for therapists.
type TherapistUpdateRequest struct {
	ProviderID    *string `json:"providerId" validate:"omitempty,uuid"`
	FirstName     *string `json:"firstName" validate:"omitempty,min=1,max=128"`
	LastName      *string `json:"lastName" validate:"omitempty,min=1,max=128"`
	Email         *string `json:"email" validate:"omitempty,email,max=255"`
	Phone         *string `json:"phone" validate:"omitempty,max=32"`
	Discipline    *string `json:"discipline" validate:"omitempty,oneof=SPEECH OCCUPATIONAL PHYSICAL BEHAVIORAL"`
	LicenseNumber *string `json:"licenseNumber" validate:"omitempty,max=64"`
	Status        *string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

// TherapistResponse serializes a therapist with the provider expanded.
type TherapistResponse struct {
	ID            string         `json:"id"`
	ProviderID    string         `json:"providerId"`
	Provider      *PersonSummary `json:"provider,omitempty"`
	FirstName     string         `json:"firstName"`
	LastName      string         `json:"lastName"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone"`
	Discipline    string         `json:"discipline"`
	LicenseNumber string         `json:"licenseNumber"`
	Status        string         `json:"status"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// NewTherapistResponse converts a therapist model into a DTO.
func NewTherapistResponse(therapist models.Therapist) TherapistResponse {
	return TherapistResponse{
		ID:            therapist.ID.String(),
		ProviderID:    therapist.ProviderID.String(),
		Provider:      newProviderSummary(therapist.Provider),
		FirstName:     therapist.FirstName,
		LastName:      therapist.LastName,
		Email:         therapist.Email,
		Phone:         therapist.Phone,
		Discipline:    therapist.Discipline,
		LicenseNumber: therapist.LicenseNumber,
		Status:        therapist.Status,
		CreatedAt:     therapist.CreatedAt,
		UpdatedAt:     therapist.UpdatedAt,
	}
}
