package dto

import (
	"time"

	"github.com/noah-isme/therapy-admin-api/internal/models"
)

// ReportListRequest defines filters for listing reports.
type ReportListRequest struct {
	ListQuery
	TherapyServiceID string `json:"therapyServiceId" query:"therapyServiceId" validate:"omitempty,uuid"`
	Title            string `json:"title" query:"title" validate:"omitempty,max=255"`
	Status           string `json:"status" query:"status" validate:"omitempty,oneof=DRAFT SUBMITTED APPROVED"`
	ReportDateFrom   string `json:"reportDateFrom" query:"reportDateFrom" validate:"omitempty,datetime=2006-01-02"`
	ReportDateTo     string `json:"reportDateTo" query:"reportDateTo" validate:"omitempty,datetime=2006-01-02"`
	SortBy           string `json:"sortBy" query:"sortBy" validate:"omitempty,oneof=title reportDate status createdAt"`
}

// ReportCreateRequest captures the payload for creating a report.
type ReportCreateRequest struct {
	TherapyServiceID string `json:"therapyServiceId" validate:"required,uuid"`
	Title            string `json:"title" validate:"required,min=1,max=255"`
	Notes            string `json:"notes" validate:"omitempty,max=20000"`
	ReportDate       string `json:"reportDate" validate:"required,datetime=2006-01-02"`
	Status           string `json:"status" validate:"omitempty,oneof=DRAFT SUBMITTED APPROVED"`
}

// ReportUpdateRequest captures partial update payloads for reports.
type ReportUpdateRequest struct {
	TherapyServiceID *string `json:"therapyServiceId" validate:"omitempty,uuid"`
	Title            *string `json:"title" validate:"omitempty,min=1,max=255"`
	Notes            *string `json:"notes" validate:"omitempty,max=20000"`
	ReportDate       *string `json:"reportDate" validate:"omitempty,datetime=2006-01-02"`
	Status           *string `json:"status" validate:"omitempty,oneof=DRAFT SUBMITTED APPROVED"`
}

// TherapyServiceSummary is the expanded form of a therapy service reference.
type TherapyServiceSummary struct {
	ID          string         `json:"id"`
	ServiceType string         `json:"serviceType"`
	Student     *PersonSummary `json:"student,omitempty"`
}

// ReportResponse serializes a report with its therapy service expanded.
type ReportResponse struct {
	ID               string                 `json:"id"`
	TherapyServiceID string                 `json:"therapyServiceId"`
	TherapyService   *TherapyServiceSummary `json:"therapyService,omitempty"`
	Title            string                 `json:"title"`
	Notes            string                 `json:"notes"`
	ReportDate       time.Time              `json:"reportDate"`
	Status           string                 `json:"status"`
	CreatedAt        time.Time              `json:"createdAt"`
	UpdatedAt        time.Time              `json:"updatedAt"`
}

// NewReportResponse converts a report model into a DTO.
func NewReportResponse(report models.Report) ReportResponse {
	response := ReportResponse{
		ID:               report.ID.String(),
		TherapyServiceID: report.TherapyServiceID.String(),
		Title:            report.Title,
		Notes:            report.Notes,
		ReportDate:       report.ReportDate,
		Status:           report.Status,
		CreatedAt:        report.CreatedAt,
		UpdatedAt:        report.UpdatedAt,
	}
	if service := report.TherapyService; service != nil {
		summary := &TherapyServiceSummary{ID: service.ID.String(), ServiceType: service.ServiceType}
		if service.Student != nil {
			summary.Student = newPersonSummary(service.Student.ID.String(), service.Student.FirstName, service.Student.LastName)
		}
		response.TherapyService = summary
	}
	return response
}
