package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/therapy-admin-api/internal/models"
)

// LinkKind names one of the provider association sets.
type LinkKind string

// Provider association sets.
const (
	LinkDocuments LinkKind = "documents"
	LinkContracts LinkKind = "contracts"
	LinkContacts  LinkKind = "contacts"
)

type linkSpec struct {
	joinTable   string
	column      string
	targetTable string
	target      func() interface{}
	join        func() interface{}
}

var linkSpecs = map[LinkKind]linkSpec{
	LinkDocuments: {
		joinTable:   "provider_documents",
		column:      "document_id",
		targetTable: "documents",
		target:      func() interface{} { return &models.Document{} },
		join:        func() interface{} { return &models.ProviderDocument{} },
	},
	LinkContracts: {
		joinTable:   "provider_contracts",
		column:      "contract_id",
		targetTable: "contracts",
		target:      func() interface{} { return &models.Contract{} },
		join:        func() interface{} { return &models.ProviderContract{} },
	},
	LinkContacts: {
		joinTable:   "provider_contacts",
		column:      "contact_id",
		targetTable: "contacts",
		target:      func() interface{} { return &models.Contact{} },
		join:        func() interface{} { return &models.ProviderContact{} },
	},
}

// ProviderFilter defines filters for listing providers.
type ProviderFilter struct {
	Name          string
	Email         string
	LicenseNumber string
	ProviderType  string
	Status        string
	SortBy        string
	SortDesc      bool
	Page          Page
}

var providerSortColumns = map[string]SortColumn{
	"firstName":     {Column: "providers.first_name"},
	"lastName":      {Column: "providers.last_name"},
	"email":         {Column: "providers.email"},
	"licenseNumber": {Column: "providers.license_number"},
	"status":        {Column: "providers.status"},
	"createdAt":     {Column: "providers.created_at"},
}

// ProviderLinks holds the non-deleted targets linked to a provider.
type ProviderLinks struct {
	Documents []models.Document
	Contracts []models.Contract
	Contacts  []models.Contact
}

// ProviderRepository exposes persistence helpers for providers and their association sets.
type ProviderRepository interface {
	List(ctx context.Context, filter ProviderFilter) ([]models.Provider, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.Provider, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, provider *models.Provider) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Links(ctx context.Context, id uuid.UUID) (ProviderLinks, error)
	AddLinks(ctx context.Context, id uuid.UUID, kind LinkKind, targetIDs []uuid.UUID) ([]uuid.UUID, error)
	RemoveLinks(ctx context.Context, id uuid.UUID, kind LinkKind, targetIDs []uuid.UUID) error
}

type providerRepository struct {
	db *gorm.DB
}

// NewProviderRepository constructs the provider repository.
func NewProviderRepository(db *gorm.DB) ProviderRepository {
	return &providerRepository{db: db}
}

func (r *providerRepository) List(ctx context.Context, filter ProviderFilter) ([]models.Provider, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Provider{})
	query = whereContains(query, filter.Name, "providers.first_name", "providers.last_name")
	query = whereContains(query, filter.Email, "providers.email")
	query = whereContains(query, filter.LicenseNumber, "providers.license_number")
	query = whereEqual(query, "providers.provider_type", filter.ProviderType)
	query = whereEqual(query, "providers.status", filter.Status)

	total, err := countFiltered(query)
	if err != nil {
		return nil, 0, err
	}

	query = applySort(query, "providers", providerSortColumns, filter.SortBy, "createdAt", filter.SortDesc)
	query = applyPage(query, filter.Page)

	var providers []models.Provider
	if err := query.Find(&providers).Error; err != nil {
		return nil, 0, err
	}
	return providers, total, nil
}

func (r *providerRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Provider, error) {
	var provider models.Provider
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&provider).Error; err != nil {
		return models.Provider{}, err
	}
	return provider, nil
}

func (r *providerRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(ctx, r.db, &models.Provider{}, id)
}

func (r *providerRepository) Create(ctx context.Context, provider *models.Provider) error {
	return r.db.WithContext(ctx).Create(provider).Error
}

func (r *providerRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return updateActive(ctx, r.db, &models.Provider{}, id, updates)
}

func (r *providerRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return softDelete(ctx, r.db, &models.Provider{}, id)
}

func (r *providerRepository) Links(ctx context.Context, id uuid.UUID) (ProviderLinks, error) {
	var links ProviderLinks
	if err := r.linked(ctx, id, LinkDocuments, &links.Documents); err != nil {
		return ProviderLinks{}, err
	}
	if err := r.linked(ctx, id, LinkContracts, &links.Contracts); err != nil {
		return ProviderLinks{}, err
	}
	if err := r.linked(ctx, id, LinkContacts, &links.Contacts); err != nil {
		return ProviderLinks{}, err
	}
	return links, nil
}

func (r *providerRepository) linked(ctx context.Context, id uuid.UUID, kind LinkKind, dest interface{}) error {
	spec := linkSpecs[kind]
	return r.db.WithContext(ctx).
		Model(spec.target()).
		Select(spec.targetTable+".*").
		Joins(fmt.Sprintf("JOIN %s ON %s.%s = %s.id", spec.joinTable, spec.joinTable, spec.column, spec.targetTable)).
		Where(spec.joinTable+".provider_id = ?", id).
		Order(spec.targetTable + ".created_at").
		Find(dest).Error
}

// AddLinks links every target to the provider in one transaction. When any target is missing
// or soft-deleted nothing is written and the missing ids are returned.
func (r *providerRepository) AddLinks(ctx context.Context, id uuid.UUID, kind LinkKind, targetIDs []uuid.UUID) ([]uuid.UUID, error) {
	spec, ok := linkSpecs[kind]
	if !ok {
		return nil, fmt.Errorf("unknown link kind %q", kind)
	}

	var missing []uuid.UUID
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		missing, err = missingIDs(ctx, tx, spec.target(), targetIDs)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return nil
		}

		now := time.Now().UTC()
		rows := make([]map[string]interface{}, 0, len(targetIDs))
		for _, targetID := range targetIDs {
			rows = append(rows, map[string]interface{}{
				"provider_id": id,
				spec.column:   targetID,
				"created_at":  now,
			})
		}
		return tx.Table(spec.joinTable).Clauses(clause.OnConflict{DoNothing: true}).Create(rows).Error
	})
	if err != nil {
		return nil, err
	}
	return missing, nil
}

// RemoveLinks detaches the given targets, or every target of the kind when none are given.
func (r *providerRepository) RemoveLinks(ctx context.Context, id uuid.UUID, kind LinkKind, targetIDs []uuid.UUID) error {
	spec, ok := linkSpecs[kind]
	if !ok {
		return fmt.Errorf("unknown link kind %q", kind)
	}

	query := r.db.WithContext(ctx).Where("provider_id = ?", id)
	if len(targetIDs) > 0 {
		query = query.Where(spec.column+" IN ?", targetIDs)
	}
	return query.Delete(spec.join()).Error
}
