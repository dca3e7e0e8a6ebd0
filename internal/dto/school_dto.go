package dto

import (
	"time"

	"github.com/noah-isme/therapy-admin-api/internal/models"
)

// SchoolListRequest defines filters for listing schools.
type SchoolListRequest struct {
	ListQuery
	Name   string `json:"name" query:"name" validate:"omitempty,max=255"`
	City   string `json:"city" query:"city" validate:"omitempty,max=128"`
	State  string `json:"state" query:"state" validate:"omitempty,max=64"`
	Status string `json:"status" query:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
	SortBy string `json:"sortBy" query:"sortBy" validate:"omitempty,oneof=name city state status createdAt"`
}

// SchoolCreateRequest captures the payload for creating a school.
type SchoolCreateRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=255"`
	Address string `json:"address" validate:"omitempty,max=255"`
	City    string `json:"city" validate:"omitempty,max=128"`
	State   string `json:"state" validate:"omitempty,max=64"`
	ZipCode string `json:"zipCode" validate:"omitempty,max=16"`
	Phone   string `json:"phone" validate:"omitempty,max=32"`
	Status  string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

// SchoolUpdateRequest captures partial update payloads for schools.
type SchoolUpdateRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=255"`
	Address *string `json:"address" validate:"omitempty,max=255"`
	City    *string `json:"city" validate:"omitempty,max=128"`
	State   *string `json:"state" validate:"omitempty,max=64"`
	ZipCode *string `json:"zipCode" validate:"omitempty,max=16"`
	Phone   *string `json:"phone" validate:"omitempty,max=32"`
	Status  *string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

// SchoolResponse serializes a school.
type SchoolResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	ZipCode   string    `json:"zipCode"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewSchoolResponse converts a school model into a DTO.
func NewSchoolResponse(school models.School) SchoolResponse {
	return SchoolResponse{
		ID:        school.ID.String(),
		Name:      school.Name,
		Address:   school.Address,
		City:      school.City,
		State:     school.State,
		ZipCode:   school.ZipCode,
		Phone:     school.Phone,
		Status:    school.Status,
		CreatedAt: school.CreatedAt,
		UpdatedAt: school.UpdatedAt,
	}
}
