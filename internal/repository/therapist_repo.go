package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/noah-isme/therapy-admin-api/internal/models"
)

// TherapistFilter defines filters for listing therapists.
type TherapistFilter struct {
	Name       string
	ProviderID *uuid.UUID
	Discipline string
	Status     string
	SortBy     string
	SortDesc   bool
	Page       Page
}

var therapistSortColumns = map[string]SortColumn{
	"firstName":  {Column: "therapists.first_name"},
	"lastName":   {Column: "therapists.last_name"},
	"discipline": {Column: "therapists.discipline"},
	"status":     {Column: "therapists.status"},
	"createdAt":  {Column: "therapists.created_at"},
	"provider":   {Column: "providers.first_name", Join: "LEFT JOIN providers ON providers.id = therapists.provider_id AND providers.deleted_at IS NULL"},
}

// TherapistRepository exposes persistence helpers for therapists.
type TherapistRepository interface {
	List(ctx context.Context, filter TherapistFilter) ([]models.Therapist, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.Therapist, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, therapist *models.Therapist) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type therapistRepository struct {
	db *gorm.DB
}

// NewTherapistRepository constructs the therapist repository.
func NewTherapistRepository(db *gorm.DB) TherapistRepository {
	return &therapistRepository{db: db}
}

func (r *therapistRepository) List(ctx context.Context, filter TherapistFilter) ([]models.Therapist, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Therapist{})
	query = whereContains(query, filter.Name, "therapists.first_name", "therapists.last_name")
	query = whereID(query, "therapists.provider_id", filter.ProviderID)
	query = whereEqual(query, "therapists.discipline", filter.Discipline)
	query = whereEqual(query, "therapists.status", filter.Status)

	total, err := countFiltered(query)
	if err != nil {
		return nil, 0, err
	}

	query = applySort(query, "therapists", therapistSortColumns, filter.SortBy, "createdAt", filter.SortDesc)
	query = applyPage(query, filter.Page)

	var therapists []models.Therapist
	if err := query.Preload("Provider").Find(&therapists).Error; err != nil {
		return nil, 0, err
	}
	return therapists, total, nil
}

func (r *therapistRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Therapist, error) {
	var therapist models.Therapist
	if err := r.db.WithContext(ctx).Preload("Provider").Where("id = ?", id).First(&therapist).Error; err != nil {
		return models.Therapist{}, err
	}
	return therapist, nil
}

func (r *therapistRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(ctx, r.db, &models.Therapist{}, id)
}

func (r *therapistRepository) Create(ctx context.Context, therapist *models.Therapist) error {
	return r.db.WithContext(ctx).Omit("Provider").Create(therapist).Error
}

func (r *therapistRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return updateActive(ctx, r.db, &models.Therapist{}, id, updates)
}

func (r *therapistRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return softDelete(ctx, r.db, &models.Therapist{}, id)
}
