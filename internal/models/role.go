package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Permission names checked by the HTTP layer.
const (
	PermissionViewUsers             = "VIEW_USERS"
	PermissionManageUsers           = "MANAGE_USERS"
	PermissionViewSchools           = "VIEW_SCHOOLS"
	PermissionManageSchools         = "MANAGE_SCHOOLS"
	PermissionViewStudents          = "VIEW_STUDENTS"
	PermissionManageStudents        = "MANAGE_STUDENTS"
	PermissionViewTherapyServices   = "VIEW_THERAPY_SERVICES"
	PermissionManageTherapyServices = "MANAGE_THERAPY_SERVICES"
	PermissionViewReports           = "VIEW_REPORTS"
	PermissionManageReports         = "MANAGE_REPORTS"
	PermissionViewInvoices          = "VIEW_INVOICES"
	PermissionManageInvoices        = "MANAGE_INVOICES"
	PermissionViewActivityLogs      = "VIEW_ACTIVITY_LOGS"
)

// AllPermissions lists every permission known to the application.
var AllPermissions = []string{
	PermissionViewUsers,
	PermissionManageUsers,
	PermissionViewSchools,
	PermissionManageSchools,
	PermissionViewStudents,
	PermissionManageStudents,
	PermissionViewTherapyServices,
	PermissionManageTherapyServices,
	PermissionViewReports,
	PermissionManageReports,
	PermissionViewInvoices,
	PermissionManageInvoices,
	PermissionViewActivityLogs,
}

// Permission is an atomic capability granted through roles.
type Permission struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:64;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BeforeCreate assigns a random identifier when none was provided.
func (p *Permission) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Role bundles permissions shared by many users.
type Role struct {
	Base
	Name        string       `gorm:"size:64;uniqueIndex;not null" json:"name"`
	Description string       `gorm:"size:255" json:"description"`
	Permissions []Permission `gorm:"many2many:role_permissions;" json:"permissions,omitempty"`
}

// PermissionSet is the resolved set of permission names held by an authenticated user.
type PermissionSet map[string]struct{}

// NewPermissionSet builds a set from permission records.
func NewPermissionSet(permissions []Permission) PermissionSet {
	set := make(PermissionSet, len(permissions))
	for _, permission := range permissions {
		set[permission.Name] = struct{}{}
	}
	return set
}

// Has reports whether the set contains the named permission.
func (s PermissionSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the permission names in no particular order.
func (s PermissionSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	return names
}

// HasPermission is the authorization check: membership of permission in the user's resolved set.
func HasPermission(user *User, permission string) bool {
	if user == nil {
		return false
	}
	return user.Permissions.Has(permission)
}
