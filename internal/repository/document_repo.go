package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/noah-isme/therapy-admin-api/internal/models"
)

// DocumentFilter defines filters for listing documents.
type DocumentFilter struct {
	Name     string
	MimeType string
	SortBy   string
	SortDesc bool
	Page     Page
}

var documentSortColumns = map[string]SortColumn{
	"name":      {Column: "documents.name"},
	"size":      {Column: "documents.size"},
	"createdAt": {Column: "documents.created_at"},
}

// DocumentRepository exposes persistence helpers for uploaded documents.
type DocumentRepository interface {
	List(ctx context.Context, filter DocumentFilter) ([]models.Document, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.Document, error)
	Create(ctx context.Context, document *models.Document) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository constructs the document repository.
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) List(ctx context.Context, filter DocumentFilter) ([]models.Document, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Document{})
	query = whereContains(query, filter.Name, "documents.name")
	query = whereEqual(query, "documents.mime_type", filter.MimeType)

	total, err := countFiltered(query)
	if err != nil {
		return nil, 0, err
	}

	query = applySort(query, "documents", documentSortColumns, filter.SortBy, "createdAt", filter.SortDesc)
	query = applyPage(query, filter.Page)

	var documents []models.Document
	if err := query.Find(&documents).Error; err != nil {
		return nil, 0, err
	}
	return documents, total, nil
}

func (r *documentRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Document, error) {
	var document models.Document
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&document).Error; err != nil {
		return models.Document{}, err
	}
	return document, nil
}

func (r *documentRepository) Create(ctx context.Context, document *models.Document) error {
	return r.db.WithContext(ctx).Create(document).Error
}

func (r *documentRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return updateActive(ctx, r.db, &models.Document{}, id, updates)
}

func (r *documentRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return softDelete(ctx, r.db, &models.Document{}, id)
}
