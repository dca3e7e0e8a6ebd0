package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/noah-isme/therapy-admin-api/internal/models"
)

// TherapyServiceFilter defines filters for listing therapy services.
type TherapyServiceFilter struct {
	StudentID   *uuid.UUID
	ProviderID  *uuid.UUID
	TherapistID *uuid.UUID
	ServiceType string
	Status      string
	StartDate   TimeRange
	SortBy      string
	SortDesc    bool
	Page        Page
}

// Relation sorts by a person use the first name only.
var therapyServiceSortColumns = map[string]SortColumn{
	"startDate":   {Column: "therapy_services.start_date"},
	"endDate":     {Column: "therapy_services.end_date"},
	"serviceType": {Column: "therapy_services.service_type"},
	"status":      {Column: "therapy_services.status"},
	"createdAt":   {Column: "therapy_services.created_at"},
	"student":     {Column: "students.first_name", Join: "LEFT JOIN students ON students.id = therapy_services.student_id AND students.deleted_at IS NULL"},
	"provider":    {Column: "providers.first_name", Join: "LEFT JOIN providers ON providers.id = therapy_services.provider_id AND providers.deleted_at IS NULL"},
}

// TherapyServiceRepository exposes persistence helpers for therapy services.
type TherapyServiceRepository interface {
	List(ctx context.Context, filter TherapyServiceFilter) ([]models.TherapyService, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.TherapyService, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, service *models.TherapyService) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type therapyServiceRepository struct {
	db *gorm.DB
}

// NewTherapyServiceRepository constructs the therapy service repository.
func NewTherapyServiceRepository(db *gorm.DB) TherapyServiceRepository {
	return &therapyServiceRepository{db: db}
}

func (r *therapyServiceRepository) List(ctx context.Context, filter TherapyServiceFilter) ([]models.TherapyService, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.TherapyService{})
	query = whereID(query, "therapy_services.student_id", filter.StudentID)
	query = whereID(query, "therapy_services.provider_id", filter.ProviderID)
	query = whereID(query, "therapy_services.therapist_id", filter.TherapistID)
	query = whereEqual(query, "therapy_services.service_type", filter.ServiceType)
	query = whereEqual(query, "therapy_services.status", filter.Status)
	query = whereRange(query, "therapy_services.start_date", filter.StartDate)

	total, err := countFiltered(query)
	if err != nil {
		return nil, 0, err
	}

	query = applySort(query, "therapy_services", therapyServiceSortColumns, filter.SortBy, "startDate", filter.SortDesc)
	query = applyPage(query, filter.Page)

	var services []models.TherapyService
	err = query.
		Preload("Student").
		Preload("Provider").
		Preload("Therapist").
		Find(&services).Error
	if err != nil {
		return nil, 0, err
	}
	return services, total, nil
}

func (r *therapyServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (models.TherapyService, error) {
	var service models.TherapyService
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Provider").
		Preload("Therapist").
		Where("id = ?", id).
		First(&service).Error
	if err != nil {
		return models.TherapyService{}, err
	}
	return service, nil
}

func (r *therapyServiceRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(ctx, r.db, &models.TherapyService{}, id)
}

func (r *therapyServiceRepository) Create(ctx context.Context, service *models.TherapyService) error {
	return r.db.WithContext(ctx).Omit("Student", "Provider", "Therapist").Create(service).Error
}

func (r *therapyServiceRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return updateActive(ctx, r.db, &models.TherapyService{}, id, updates)
}

func (r *therapyServiceRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return softDelete(ctx, r.db, &models.TherapyService{}, id)
}
