package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User statuses.
const (
	UserStatusActive   = "ACTIVE"
	UserStatusInactive = "INACTIVE"
	UserStatusInvited  = "INVITED"
)

// User is an administrator or staff member signing in to the dashboard.
type User struct {
	Base
	Email        string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	FirstName    string     `gorm:"size:128;not null" json:"firstName"`
	LastName     string     `gorm:"size:128;not null" json:"lastName"`
	Status       string     `gorm:"size:16;not null;index" json:"status"`
	PasswordHash string     `gorm:"size:255" json:"-"`
	RoleID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"roleId"`
	Role         *Role      `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	SchoolID     *uuid.UUID `gorm:"type:uuid;index" json:"schoolId"`
	School       *School    `gorm:"foreignKey:SchoolID" json:"school,omitempty"`

	Permissions PermissionSet `gorm:"-" json:"-"`
}

// User token kinds.
const (
	TokenKindReset  = "RESET"
	TokenKindInvite = "INVITE"
)

// UserToken is a single-use password reset or invitation token, stored hashed.
type UserToken struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"userId"`
	Kind      string     `gorm:"size:16;not null" json:"kind"`
	TokenHash string     `gorm:"size:128;uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expiresAt"`
	UsedAt    *time.Time `json:"usedAt"`
	CreatedAt time.Time  `json:"createdAt"`
}

// BeforeCreate assigns a random identifier when none was provided.
func (t *UserToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
