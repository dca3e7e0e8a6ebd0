package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/therapy-admin-api/internal/models"
)

// RoleFilter defines filters for listing roles.
type RoleFilter struct {
	Name     string
	SortBy   string
	SortDesc bool
	Page     Page
}

var roleSortColumns = map[string]SortColumn{
	"name":      {Column: "roles.name"},
	"createdAt": {Column: "roles.created_at"},
}

// RoleRepository exposes read access to roles plus the bootstrap upserts.
type RoleRepository interface {
	List(ctx context.Context, filter RoleFilter) ([]models.Role, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.Role, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	EnsurePermissions(ctx context.Context, names []string) ([]models.Permission, error)
	EnsureRole(ctx context.Context, name, description string, permissions []models.Permission) (models.Role, error)
}

type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository constructs the role repository.
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) List(ctx context.Context, filter RoleFilter) ([]models.Role, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Role{})
	query = whereContains(query, filter.Name, "roles.name")

	total, err := countFiltered(query)
	if err != nil {
		return nil, 0, err
	}

	query = applySort(query, "roles", roleSortColumns, filter.SortBy, "name", filter.SortDesc)
	query = applyPage(query, filter.Page)

	var roles []models.Role
	if err := query.Preload("Permissions").Find(&roles).Error; err != nil {
		return nil, 0, err
	}
	return roles, total, nil
}

func (r *roleRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Role, error) {
	var role models.Role
	if err := r.db.WithContext(ctx).Preload("Permissions").Where("id = ?", id).First(&role).Error; err != nil {
		return models.Role{}, err
	}
	return role, nil
}

func (r *roleRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(ctx, r.db, &models.Role{}, id)
}

// EnsurePermissions inserts any missing permission names and returns all of them.
func (r *roleRepository) EnsurePermissions(ctx context.Context, names []string) ([]models.Permission, error) {
	if len(names) == 0 {
		return nil, nil
	}

	rows := make([]models.Permission, 0, len(names))
	for _, name := range names {
		rows = append(rows, models.Permission{Name: name})
	}

	db := r.db.WithContext(ctx)
	if err := db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).Create(&rows).Error; err != nil {
		return nil, err
	}

	var permissions []models.Permission
	if err := db.Where("name IN ?", names).Order("name").Find(&permissions).Error; err != nil {
		return nil, err
	}
	return permissions, nil
}

// EnsureRole creates the named role if needed and replaces its permission set.
func (r *roleRepository) EnsureRole(ctx context.Context, name, description string, permissions []models.Permission) (models.Role, error) {
	var role models.Role
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(models.Role{Name: name}).
			Attrs(models.Role{Description: description}).
			FirstOrCreate(&role).Error; err != nil {
			return err
		}
		if len(permissions) == 0 {
			return tx.Model(&role).Association("Permissions").Clear()
		}
		return tx.Model(&role).Association("Permissions").Replace(permissions)
	})
	if err != nil {
		return models.Role{}, err
	}
	role.Permissions = permissions
	return role, nil
}
