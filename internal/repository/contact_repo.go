package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/noah-isme/therapy-admin-api/internal/models"
)

// ContactFilter defines filters for listing contacts.
type ContactFilter struct {
	Name     string
	Email    string
	SortBy   string
	SortDesc bool
	Page     Page
}

var contactSortColumns = map[string]SortColumn{
	"name":      {Column: "contacts.name"},
	"email":     {Column: "contacts.email"},
	"title":     {Column: "contacts.title"},
	"createdAt": {Column: "contacts.created_at"},
}

// ContactRepository exposes persistence helpers for provider contacts.
type ContactRepository interface {
	List(ctx context.Context, filter ContactFilter) ([]models.Contact, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.Contact, error)
	Create(ctx context.Context, contact *models.Contact) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository constructs the contact repository.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) List(ctx context.Context, filter ContactFilter) ([]models.Contact, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Contact{})
	query = whereContains(query, filter.Name, "contacts.name")
	query = whereContains(query, filter.Email, "contacts.email")

	total, err := countFiltered(query)
	if err != nil {
		return nil, 0, err
	}

	query = applySort(query, "contacts", contactSortColumns, filter.SortBy, "name", filter.SortDesc)
	query = applyPage(query, filter.Page)

	var contacts []models.Contact
	if err := query.Find(&contacts).Error; err != nil {
		return nil, 0, err
	}
	return contacts, total, nil
}

func (r *contactRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Contact, error) {
	var contact models.Contact
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&contact).Error; err != nil {
		return models.Contact{}, err
	}
	return contact, nil
}

func (r *contactRepository) Create(ctx context.Context, contact *models.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *contactRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return updateActive(ctx, r.db, &models.Contact{}, id, updates)
}

func (r *contactRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return softDelete(ctx, r.db, &models.Contact{}, id)
}
