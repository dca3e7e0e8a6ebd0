package dto

import (
	"time"

	"github.com/noah-isme/therapy-admin-api/internal/models"
)

// RoleListRequest defines filters for listing roles.
type RoleListRequest struct {
	ListQuery
	Name   string `json:"name" query:"name" validate:"omitempty,max=64"`
	SortBy string `json:"sortBy" query:"sortBy" validate:"omitempty,oneof=name createdAt"`
}

// RoleResponse serializes a role with its permission names.
type RoleResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewRoleResponse converts a role model into a DTO.
func NewRoleResponse(role models.Role) RoleResponse {
	permissions := make([]string, 0, len(role.Permissions))
	for _, permission := range role.Permissions {
		permissions = append(permissions, permission.Name)
	}
	return RoleResponse{
		ID:          role.ID.String(),
		Name:        role.Name,
		Description: role.Description,
		Permissions: permissions,
		CreatedAt:   role.CreatedAt,
		UpdatedAt:   role.UpdatedAt,
	}
}
