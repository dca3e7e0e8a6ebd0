package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/noah-isme/therapy-admin-api/internal/models"
)

// InvoiceFilter defines filters for listing invoices.
type InvoiceFilter struct {
	ProviderID    *uuid.UUID
	SchoolID      *uuid.UUID
	InvoiceNumber string
	Status        string
	IssueDate     TimeRange
	SortBy        string
	SortDesc      bool
	Page          Page
}

var invoiceSortColumns = map[string]SortColumn{
	"invoiceNumber": {Column: "invoices.invoice_number"},
	"amount":        {Column: "invoices.amount"},
	"issueDate":     {Column: "invoices.issue_date"},
	"dueDate":       {Column: "invoices.due_date"},
	"status":        {Column: "invoices.status"},
	"createdAt":     {Column: "invoices.created_at"},
	"provider":      {Column: "providers.first_name", Join: "LEFT JOIN providers ON providers.id = invoices.provider_id AND providers.deleted_at IS NULL"},
}

// InvoiceRepository exposes persistence helpers for invoices.
type InvoiceRepository interface {
	List(ctx context.Context, filter InvoiceFilter) ([]models.Invoice, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.Invoice, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, invoice *models.Invoice) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository constructs the invoice repository.
func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) List(ctx context.Context, filter InvoiceFilter) ([]models.Invoice, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Invoice{})
	query = whereID(query, "invoices.provider_id", filter.ProviderID)
	query = whereID(query, "invoices.school_id", filter.SchoolID)
	query = whereContains(query, filter.InvoiceNumber, "invoices.invoice_number")
	query = whereEqual(query, "invoices.status", filter.Status)
	query = whereRange(query, "invoices.issue_date", filter.IssueDate)

	total, err := countFiltered(query)
	if err != nil {
		return nil, 0, err
	}

	query = applySort(query, "invoices", invoiceSortColumns, filter.SortBy, "issueDate", filter.SortDesc)
	query = applyPage(query, filter.Page)

	var invoices []models.Invoice
	if err := query.Preload("Provider").Preload("School").Find(&invoices).Error; err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.WithContext(ctx).
		Preload("Provider").
		Preload("School").
		Where("id = ?", id).
		First(&invoice).Error
	if err != nil {
		return models.Invoice{}, err
	}
	return invoice, nil
}

func (r *invoiceRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(ctx, r.db, &models.Invoice{}, id)
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	return r.db.WithContext(ctx).Omit("Provider", "School").Create(invoice).Error
}

func (r *invoiceRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return updateActive(ctx, r.db, &models.Invoice{}, id, updates)
}

func (r *invoiceRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return softDelete(ctx, r.db, &models.Invoice{}, id)
}
