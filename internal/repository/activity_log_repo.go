package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/noah-isme/therapy-admin-api/internal/models"
)

// ActivityLogFilter narrows activity log queries.
type ActivityLogFilter struct {
	UserID     *uuid.UUID
	Action     string
	EntityType string
	SubjectID  *uuid.UUID
	SortDesc   bool
	Page       Page
}

// ActivityLogRepository persists audit trail events.
type ActivityLogRepository interface {
	Create(ctx context.Context, entry *models.ActivityLog) error
	List(ctx context.Context, filter ActivityLogFilter) ([]models.ActivityLog, int64, error)
}

type activityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository constructs the activity log repository.
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *activityLogRepository) List(ctx context.Context, filter ActivityLogFilter) ([]models.ActivityLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ActivityLog{})
	query = whereID(query, "user_id", filter.UserID)
	query = whereEqual(query, "action", filter.Action)
	query = whereEqual(query, "entity_type", filter.EntityType)
	query = whereID(query, "subject_id", filter.SubjectID)

	total, err := countFiltered(query)
	if err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	if !filter.SortDesc {
		order = "created_at ASC"
	}
	query = applyPage(query.Order(order), filter.Page)

	var entries []models.ActivityLog
	if err := query.Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
