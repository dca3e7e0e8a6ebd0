package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/noah-isme/therapy-admin-api/internal/models"
)

// UserFilter defines filters for listing users.
type UserFilter struct {
	Name     string
	Email    string
	Status   string
	RoleID   *uuid.UUID
	SchoolID *uuid.UUID
	SortBy   string
	SortDesc bool
	Page     Page
}

var userSortColumns = map[string]SortColumn{
	"firstName": {Column: "users.first_name"},
	"lastName":  {Column: "users.last_name"},
	"email":     {Column: "users.email"},
	"status":    {Column: "users.status"},
	"createdAt": {Column: "users.created_at"},
	"role":      {Column: "roles.name", Join: "LEFT JOIN roles ON roles.id = users.role_id AND roles.deleted_at IS NULL"},
	"school":    {Column: "schools.name", Join: "LEFT JOIN schools ON schools.id = users.school_id AND schools.deleted_at IS NULL"},
}

// UserRepository exposes persistence helpers for users and their single-use tokens.
type UserRepository interface {
	List(ctx context.Context, filter UserFilter) ([]models.User, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindActiveByEmail(ctx context.Context, email string) (models.User, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, user *models.User, invite *models.UserToken) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	CreateToken(ctx context.Context, token *models.UserToken) error
	FindToken(ctx context.Context, kind, hash string) (models.UserToken, error)
	ConsumeToken(ctx context.Context, token models.UserToken, updates map[string]interface{}) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository constructs the user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]models.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})
	query = whereContains(query, filter.Name, "users.first_name", "users.last_name")
	query = whereContains(query, filter.Email, "users.email")
	query = whereEqual(query, "users.status", filter.Status)
	query = whereID(query, "users.role_id", filter.RoleID)
	query = whereID(query, "users.school_id", filter.SchoolID)

	total, err := countFiltered(query)
	if err != nil {
		return nil, 0, err
	}

	query = applySort(query, "users", userSortColumns, filter.SortBy, "createdAt", filter.SortDesc)
	query = applyPage(query, filter.Page)

	var users []models.User
	if err := query.Preload("Role").Preload("School").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Role").
		Preload("School").
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Role.Permissions").
		Preload("School").
		Where("LOWER(email) = LOWER(?)", email).
		First(&user).Error
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *userRepository) FindActiveByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Role.Permissions").
		Preload("School").
		Where("LOWER(email) = LOWER(?)", email).
		Where("status = ?", models.UserStatusActive).
		First(&user).Error
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *userRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(ctx, r.db, &models.User{}, id)
}

// Create stores the user and, when given, its invitation token atomically.
func (r *userRepository) Create(ctx context.Context, user *models.User, invite *models.UserToken) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Role", "School").Create(user).Error; err != nil {
			return err
		}
		if invite == nil {
			return nil
		}
		invite.UserID = user.ID
		return tx.Create(invite).Error
	})
}

func (r *userRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return updateActive(ctx, r.db, &models.User{}, id, updates)
}

func (r *userRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return softDelete(ctx, r.db, &models.User{}, id)
}

func (r *userRepository) CreateToken(ctx context.Context, token *models.UserToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *userRepository) FindToken(ctx context.Context, kind, hash string) (models.UserToken, error) {
	var token models.UserToken
	err := r.db.WithContext(ctx).
		Where("kind = ? AND token_hash = ?", kind, hash).
		First(&token).Error
	if err != nil {
		return models.UserToken{}, err
	}
	return token, nil
}

// ConsumeToken marks the token used and applies updates to its user in one transaction.
// A token consumed concurrently yields gorm.ErrRecordNotFound.
func (r *userRepository) ConsumeToken(ctx context.Context, token models.UserToken, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		used := tx.Model(&models.UserToken{}).
			Where("id = ? AND used_at IS NULL", token.ID).
			Update("used_at", time.Now().UTC())
		if used.Error != nil {
			return used.Error
		}
		if used.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return updateActive(ctx, tx, &models.User{}, token.UserID, updates)
	})
}
