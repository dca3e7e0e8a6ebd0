package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/noah-isme/therapy-admin-api/internal/models"
)

// ContractFilter defines filters for listing contracts.
type ContractFilter struct {
	Name     string
	Status   string
	SortBy   string
	SortDesc bool
	Page     Page
}

var contractSortColumns = map[string]SortColumn{
	"name":      {Column: "contracts.name"},
	"startDate": {Column: "contracts.start_date"},
	"endDate":   {Column: "contracts.end_date"},
	"rate":      {Column: "contracts.rate"},
	"status":    {Column: "contracts.status"},
	"createdAt": {Column: "contracts.created_at"},
}

// ContractRepository exposes persistence helpers for contracts.
type ContractRepository interface {
	List(ctx context.Context, filter ContractFilter) ([]models.Contract, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.Contract, error)
	Create(ctx context.Context, contract *models.Contract) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type contractRepository struct {
	db *gorm.DB
}

// NewContractRepository constructs the contract repository.
func NewContractRepository(db *gorm.DB) ContractRepository {
	return &contractRepository{db: db}
}

func (r *contractRepository) List(ctx context.Context, filter ContractFilter) ([]models.Contract, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Contract{})
	query = whereContains(query, filter.Name, "contracts.name")
	query = whereEqual(query, "contracts.status", filter.Status)

	total, err := countFiltered(query)
	if err != nil {
		return nil, 0, err
	}

	query = applySort(query, "contracts", contractSortColumns, filter.SortBy, "startDate", filter.SortDesc)
	query = applyPage(query, filter.Page)

	var contracts []models.Contract
	if err := query.Find(&contracts).Error; err != nil {
		return nil, 0, err
	}
	return contracts, total, nil
}

func (r *contractRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Contract, error) {
	var contract models.Contract
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&contract).Error; err != nil {
		return models.Contract{}, err
	}
	return contract, nil
}

func (r *contractRepository) Create(ctx context.Context, contract *models.Contract) error {
	return r.db.WithContext(ctx).Create(contract).Error
}

func (r *contractRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return updateActive(ctx, r.db, &models.Contract{}, id, updates)
}

func (r *contractRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return softDelete(ctx, r.db, &models.Contract{}, id)
}
