package dto

import (
	"time"

	"github.com/noah-isme/therapy-admin-api/internal/models"
)

// StudentListRequest defines filters for listing students.
type StudentListRequest struct {
	ListQuery
	Name     string `json:"name" query:"name" validate:"omitempty,max=255"`
	SchoolID string `json:"schoolId" query:"schoolId" validate:"omitempty,uuid"`
	Grade    string `json:"grade" query:"grade" validate:"omitempty,max=16"`
	Status   string `json:"status" query:"status" validate:"omitempty,oneof=ACTIVE INACTIVE GRADUATED"`
	SortBy   string `json:"sortBy" query:"sortBy" validate:"omitempty,oneof=firstName lastName grade status createdAt school"`
}

// StudentCreateRequest captures the payload for creating a student.
type StudentCreateRequest struct {
	FirstName   string `json:"firstName" validate:"required,min=1,max=128"`
	LastName    string `json:"lastName" validate:"required,min=1,max=128"`
	DateOfBirth string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	Grade       string `json:"grade" validate:"omitempty,max=16"`
	Status      string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE GRADUATED"`
	SchoolID    string `json:"schoolId" validate:"required,uuid"`
}

// StudentUpdateRequest captures partial update payloads for students.
type StudentUpdateRequest struct {
	FirstName   *string `json:"firstName" validate:"omitempty,min=1,max=128"`
	LastName    *string `json:"lastName" validate:"omitempty,min=1,max=128"`
	DateOfBirth *string `json:"dateOfBirth" validate:"omitempty,nullable_date"`
	Grade       *string `json:"grade" validate:"omitempty,max=16"`
	Status      *string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE GRADUATED"`
	SchoolID    *string `json:"schoolId" validate:"omitempty,uuid"`
}

// StudentResponse serializes a student with the school expanded.
type StudentResponse struct {
	ID          string         `json:"id"`
	FirstName   string         `json:"firstName"`
	LastName    string         `json:"lastName"`
	DateOfBirth *time.Time     `json:"dateOfBirth"`
	Grade       string         `json:"grade"`
	Status      string         `json:"status"`
	SchoolID    string         `json:"schoolId"`
	School      *SchoolSummary `json:"school,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// NewStudentResponse converts a student model into a DTO.
func NewStudentResponse(student models.Student) StudentResponse {
	return StudentResponse{
		ID:          student.ID.String(),
		FirstName:   student.FirstName,
		LastName:    student.LastName,
		DateOfBirth: student.DateOfBirth,
		Grade:       student.Grade,
		Status:      student.Status,
		SchoolID:    student.SchoolID.String(),
		School:      newSchoolSummary(student.School),
		CreatedAt:   student.CreatedAt,
		UpdatedAt:   student.UpdatedAt,
	}
}
