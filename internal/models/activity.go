package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityLog captures auditable events triggered by authenticated users. Entries are only ever inserted.
type ActivityLog struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"userId"`
	Action     string            `gorm:"size:64;not null;index" json:"action"`
	EntityType string            `gorm:"size:64;not null" json:"entityType"`
	SubjectID  *uuid.UUID        `gorm:"type:uuid;index" json:"subjectId"`
	Metadata   datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// BeforeCreate assigns a random identifier when none was provided.
func (a *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
