package dto

import (
	"time"

	"github.com/noah-isme/therapy-admin-api/internal/models"
)

// TherapyServiceListRequest defines filters for listing therapy services.
type TherapyServiceListRequest struct {
	ListQuery
	StudentID     string `json:"studentId" query:"studentId" validate:"omitempty,uuid"`
	ProviderID    string `json:"providerId" query:"providerId" validate:"omitempty,uuid"`
	TherapistID   string `json:"therapistId" query:"therapistId" validate:"omitempty,uuid"`
	ServiceType   string `json:"serviceType" query:"serviceType" validate:"omitempty,oneof=SPEECH OCCUPATIONAL PHYSICAL BEHAVIORAL"`
	Status        string `json:"status" query:"status" validate:"omitempty,oneof=PENDING ACTIVE COMPLETED CANCELLED"`
	StartDateFrom string `json:"startDateFrom" query:"startDateFrom" validate:"omitempty,datetime=2006-01-02"`
	StartDateTo   string `json:"startDateTo" query:"startDateTo" validate:"omitempty,datetime=2006-01-02"`
	SortBy        string `json:"sortBy" query:"sortBy" validate:"omitempty,oneof=startDate endDate serviceType status createdAt student provider"`
}

// TherapyServiceCreateRequest captures the payload for creating a therapy service.
type TherapyServiceCreateRequest struct {
	StudentID      string  `json:"studentId" validate:"required,uuid"`
	ProviderID     string  `json:"providerId" validate:"required,uuid"`
	TherapistID    *string `json:"therapistId" validate:"omitempty,nullable_uuid"`
	ServiceType    string  `json:"serviceType" validate:"required,oneof=SPEECH OCCUPATIONAL PHYSICAL BEHAVIORAL"`
	MinutesPerWeek int     `json:"minutesPerWeek" validate:"required,min=1,max=10080"`
	StartDate      string  `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate        string  `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Status         string  `json:"status" validate:"omitempty,oneof=PENDING ACTIVE COMPLETED CANCELLED"`
}

// TherapyServiceUpdateRequest captures partial update payloads for therapy services.
type TherapyServiceUpdateRequest struct {
	StudentID      *string `json:"studentId" validate:"omitempty,uuid"`
	ProviderID     *string `json:"providerId" validate:"omitempty,uuid"`
	TherapistID    *string `json:"therapistId" validate:"omitempty,nullable_uuid"`
	ServiceType    *string `json:"serviceType" validate:"omitempty,oneof=SPEECH OCCUPATIONAL PHYSICAL BEHAVIORAL"`
	MinutesPerWeek *int    `json:"minutesPerWeek" validate:"omitempty,min=1,max=10080"`
	StartDate      *string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate        *string `json:"endDate" validate:"omitempty,nullable_date"`
	Status         *string `json:"status" validate:"omitempty,oneof=PENDING ACTIVE COMPLETED CANCELLED"`
}

// TherapyServiceResponse serializes a therapy service with its references expanded.
type TherapyServiceResponse struct {
	ID             string         `json:"id"`
	StudentID      string         `json:"studentId"`
	Student        *PersonSummary `json:"student,omitempty"`
	ProviderID     string         `json:"providerId"`
	Provider       *PersonSummary `json:"provider,omitempty"`
	TherapistID    *string        `json:"therapistId"`
	Therapist      *PersonSummary `json:"therapist,omitempty"`
	ServiceType    string         `json:"serviceType"`
	MinutesPerWeek int            `json:"minutesPerWeek"`
	StartDate      time.Time      `json:"startDate"`
	EndDate        *time.Time     `json:"endDate"`
	Status         string         `json:"status"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// NewTherapyServiceResponse converts a therapy service model into a DTO.
func NewTherapyServiceResponse(service models.TherapyService) TherapyServiceResponse {
	response := TherapyServiceResponse{
		ID:             service.ID.String(),
		StudentID:      service.StudentID.String(),
		ProviderID:     service.ProviderID.String(),
		Provider:       newProviderSummary(service.Provider),
		TherapistID:    optionalID(service.TherapistID),
		ServiceType:    service.ServiceType,
		MinutesPerWeek: service.MinutesPerWeek,
		StartDate:      service.StartDate,
		EndDate:        service.EndDate,
		Status:         service.Status,
		CreatedAt:      service.CreatedAt,
		UpdatedAt:      service.UpdatedAt,
	}
	if service.Student != nil {
		response.Student = newPersonSummary(service.Student.ID.String(), service.Student.FirstName, service.Student.LastName)
	}
	if service.Therapist != nil {
		response.Therapist = newPersonSummary(service.Therapist.ID.String(), service.Therapist.FirstName, service.Therapist.LastName)
	}
	return response
}
