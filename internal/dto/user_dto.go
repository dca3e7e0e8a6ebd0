package dto

import (
	"sort"
	"time"

	"github.com/noah-isme/therapy-admin-api/internal/models"
)

// UserListRequest defines filters for listing users.
type UserListRequest struct {
	ListQuery
	Name     string `json:"name" query:"name" validate:"omitempty,max=255"`
	Email    string `json:"email" query:"email" validate:"omitempty,max=255"`
	Status   string `json:"status" query:"status" validate:"omitempty,oneof=ACTIVE INACTIVE INVITED"`
	RoleID   string `json:"roleId" query:"roleId" validate:"omitempty,uuid"`
	SchoolID string `json:"schoolId" query:"schoolId" validate:"omitempty,uuid"`
	SortBy   string `json:"sortBy" query:"sortBy" validate:"omitempty,oneof=firstName lastName email status createdAt role school"`
}

// UserCreateRequest captures the payload for inviting a user.
type UserCreateRequest struct {
	Email     string  `json:"email" validate:"required,email,max=255"`
	FirstName string  `json:"firstName" validate:"required,min=1,max=128"`
	LastName  string  `json:"lastName" validate:"required,min=1,max=128"`
	Status    string  `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE INVITED"`
	RoleID    string  `json:"roleId" validate:"required,uuid"`
	SchoolID  *string `json:"schoolId" validate:"omitempty,nullable_uuid"`
}

// UserUpdateRequest captures partial update payloads for users.
type UserUpdateRequest struct {
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
	FirstName *string `json:"firstName" validate:"omitempty,min=1,max=128"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1,max=128"`
	Status    *string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE INVITED"`
	RoleID    *string `json:"roleId" validate:"omitempty,uuid"`
	SchoolID  *string `json:"schoolId" validate:"omitempty,nullable_uuid"`
}

// UserResponse serializes a user with its role and school expanded.
type UserResponse struct {
	ID          string         `json:"id"`
	Email       string         `json:"email"`
	FirstName   string         `json:"firstName"`
	LastName    string         `json:"lastName"`
	Status      string         `json:"status"`
	RoleID      string         `json:"roleId"`
	Role        *RoleSummary   `json:"role,omitempty"`
	SchoolID    *string        `json:"schoolId"`
	School      *SchoolSummary `json:"school,omitempty"`
	Permissions []string       `json:"permissions,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// NewUserResponse converts a user model into a DTO.
func NewUserResponse(user models.User) UserResponse {
	response := UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Status:    user.Status,
		RoleID:    user.RoleID.String(),
		SchoolID:  optionalID(user.SchoolID),
		School:    newSchoolSummary(user.School),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	if user.Role != nil {
		response.Role = &RoleSummary{ID: user.Role.ID.String(), Name: user.Role.Name}
	}
	if len(user.Permissions) > 0 {
		response.Permissions = user.Permissions.Names()
		sort.Strings(response.Permissions)
	}
	return response
}
