package dto

import (
	"time"

	"github.com/noah-isme/therapy-admin-api/internal/models"
)

// ActivityLogListRequest defines filters for the audit trail.
type ActivityLogListRequest struct {
	ListQuery
	UserID     string `json:"userId" query:"userId" validate:"omitempty,uuid"`
	Action     string `json:"action" query:"action" validate:"omitempty,max=64"`
	EntityType string `json:"entityType" query:"entityType" validate:"omitempty,max=64"`
	SubjectID  string `json:"subjectId" query:"subjectId" validate:"omitempty,uuid"`
}

// ActivityLogResponse serializes one audit entry.
type ActivityLogResponse struct {
	ID         string                 `json:"id"`
	UserID     string                 `json:"userId"`
	Action     string                 `json:"action"`
	EntityType string                 `json:"entityType"`
	SubjectID  *string                `json:"subjectId"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt  time.Time              `json:"createdAt"`
}

// NewActivityLogResponse converts an activity log model into a DTO.
func NewActivityLogResponse(entry models.ActivityLog) ActivityLogResponse {
	return ActivityLogResponse{
		ID:         entry.ID.String(),
		UserID:     entry.UserID.String(),
		Action:     entry.Action,
		EntityType: entry.EntityType,
		SubjectID:  optionalID(entry.SubjectID),
		Metadata:   entry.Metadata,
		CreatedAt:  entry.CreatedAt,
	}
}
