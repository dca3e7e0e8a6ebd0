package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/noah-isme/therapy-admin-api/internal/models"
)

// SchoolFilter defines filters for listing schools.
type SchoolFilter struct {
	Name     string
	City     string
	State    string
	Status   string
	SortBy   string
	SortDesc bool
	Page     Page
}

var schoolSortColumns = map[string]SortColumn{
	"name":      {Column: "schools.name"},
	"city":      {Column: "schools.city"},
	"state":     {Column: "schools.state"},
	"status":    {Column: "schools.status"},
	"createdAt": {Column: "schools.created_at"},
}

// SchoolRepository exposes persistence helpers for schools.
type SchoolRepository interface {
	List(ctx context.Context, filter SchoolFilter) ([]models.School, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.School, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, school *models.School) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type schoolRepository struct {
	db *gorm.DB
}

// NewSchoolRepository constructs the school repository.
func NewSchoolRepository(db *gorm.DB) SchoolRepository {
	return &schoolRepository{db: db}
}

func (r *schoolRepository) List(ctx context.Context, filter SchoolFilter) ([]models.School, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.School{})
	query = whereContains(query, filter.Name, "schools.name")
	query = whereContains(query, filter.City, "schools.city")
	query = whereContains(query, filter.State, "schools.state")
	query = whereEqual(query, "schools.status", filter.Status)

	total, err := countFiltered(query)
	if err != nil {
		return nil, 0, err
	}

	query = applySort(query, "schools", schoolSortColumns, filter.SortBy, "name", filter.SortDesc)
	query = applyPage(query, filter.Page)

	var schools []models.School
	if err := query.Find(&schools).Error; err != nil {
		return nil, 0, err
	}
	return schools, total, nil
}

func (r *schoolRepository) GetByID(ctx context.Context, id uuid.UUID) (models.School, error) {
	var school models.School
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&school).Error; err != nil {
		return models.School{}, err
	}
	return school, nil
}

func (r *schoolRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(ctx, r.db, &models.School{}, id)
}

func (r *schoolRepository) Create(ctx context.Context, school *models.School) error {
	return r.db.WithContext(ctx).Create(school).Error
}

func (r *schoolRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return updateActive(ctx, r.db, &models.School{}, id, updates)
}

func (r *schoolRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return softDelete(ctx, r.db, &models.School{}, id)
}
