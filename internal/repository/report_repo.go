package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/noah-isme/therapy-admin-api/internal/models"
)

// ReportFilter defines filters for listing reports.
type ReportFilter struct {
	TherapyServiceID *uuid.UUID
	Title            string
	Status           string
	ReportDate       TimeRange
	SortBy           string
	SortDesc         bool
	Page             Page
}

var reportSortColumns = map[string]SortColumn{
	"title":      {Column: "reports.title"},
	"reportDate": {Column: "reports.report_date"},
	"status":     {Column: "reports.status"},
	"createdAt":  {Column: "reports.created_at"},
}

// ReportRepository exposes persistence helpers for reports.
type ReportRepository interface {
	List(ctx context.Context, filter ReportFilter) ([]models.Report, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.Report, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, report *models.Report) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository constructs the report repository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) List(ctx context.Context, filter ReportFilter) ([]models.Report, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Report{})
	query = whereID(query, "reports.therapy_service_id", filter.TherapyServiceID)
	query = whereContains(query, filter.Title, "reports.title")
	query = whereEqual(query, "reports.status", filter.Status)
	query = whereRange(query, "reports.report_date", filter.ReportDate)

	total, err := countFiltered(query)
	if err != nil {
		return nil, 0, err
	}

	query = applySort(query, "reports", reportSortColumns, filter.SortBy, "reportDate", filter.SortDesc)
	query = applyPage(query, filter.Page)

	var reports []models.Report
	if err := query.Preload("TherapyService.Student").Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (r *reportRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Report, error) {
	var report models.Report
	err := r.db.WithContext(ctx).
		Preload("TherapyService.Student").
		Where("id = ?", id).
		First(&report).Error
	if err != nil {
		return models.Report{}, err
	}
	return report, nil
}

func (r *reportRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(ctx, r.db, &models.Report{}, id)
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).Omit("TherapyService").Create(report).Error
}

func (r *reportRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return updateActive(ctx, r.db, &models.Report{}, id, updates)
}

func (r *reportRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return softDelete(ctx, r.db, &models.Report{}, id)
}
