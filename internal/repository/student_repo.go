package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/noah-isme/therapy-admin-api/internal/models"
)

// StudentFilter defines filters for listing students.
type StudentFilter struct {
	Name     string
	SchoolID *uuid.UUID
	Grade    string
	Status   string
	SortBy   string
	SortDesc bool
	Page     Page
}

var studentSortColumns = map[string]SortColumn{
	"firstName": {Column: "students.first_name"},
	"lastName":  {Column: "students.last_name"},
	"grade":     {Column: "students.grade"},
	"status":    {Column: "students.status"},
	"createdAt": {Column: "students.created_at"},
	"school":    {Column: "schools.name", Join: "LEFT JOIN schools ON schools.id = students.school_id AND schools.deleted_at IS NULL"},
}

// StudentRepository exposes persistence helpers for students.
type StudentRepository interface {
	List(ctx context.Context, filter StudentFilter) ([]models.Student, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.Student, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository constructs the student repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) List(ctx context.Context, filter StudentFilter) ([]models.Student, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Student{})
	query = whereContains(query, filter.Name, "students.first_name", "students.last_name")
	query = whereID(query, "students.school_id", filter.SchoolID)
	query = whereEqual(query, "students.grade", filter.Grade)
	query = whereEqual(query, "students.status", filter.Status)

	total, err := countFiltered(query)
	if err != nil {
		return nil, 0, err
	}

	query = applySort(query, "students", studentSortColumns, filter.SortBy, "lastName", filter.SortDesc)
	query = applyPage(query, filter.Page)

	var students []models.Student
	if err := query.Preload("School").Find(&students).Error; err != nil {
		return nil, 0, err
	}
	return students, total, nil
}

func (r *studentRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Preload("School").Where("id = ?", id).First(&student).Error; err != nil {
		return models.Student{}, err
	}
	return student, nil
}

func (r *studentRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(ctx, r.db, &models.Student{}, id)
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Omit("School").Create(student).Error
}

func (r *studentRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return updateActive(ctx, r.db, &models.Student{}, id, updates)
}

func (r *studentRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return softDelete(ctx, r.db, &models.Student{}, id)
}
