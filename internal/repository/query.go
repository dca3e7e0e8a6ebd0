package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Page selects one window of a filtered result set. A zero Size disables paging.
type Page struct {
	Number int
	Size   int
}

// TimeRange filters a timestamp column inclusively on both ends.
type TimeRange struct {
	From *time.Time
	To   *time.Time
}

// SortColumn describes how a sortBy key is resolved in SQL. Join is only added for relation sorts.
type SortColumn struct {
	Column string
	Join   string
}

func applyPage(query *gorm.DB, page Page) *gorm.DB {
	if page.Size <= 0 {
		return query
	}
	number := page.Number
	if number <= 0 {
		number = 1
	}
	return query.Limit(page.Size).Offset((number - 1) * page.Size)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func whereContains(query *gorm.DB, value string, columns ...string) *gorm.DB {
	value = strings.TrimSpace(value)
	if value == "" || len(columns) == 0 {
		return query
	}
	like := "%" + likeEscaper.Replace(strings.ToLower(value)) + "%"
	conditions := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, column := range columns {
		conditions = append(conditions, "LOWER("+column+`) LIKE ? ESCAPE '\'`)
		args = append(args, like)
	}
	return query.Where("("+strings.Join(conditions, " OR ")+")", args...)
}

func whereEqual(query *gorm.DB, column, value string) *gorm.DB {
	if value == "" {
		return query
	}
	return query.Where(column+" = ?", value)
}

func whereID(query *gorm.DB, column string, id *uuid.UUID) *gorm.DB {
	if id == nil {
		return query
	}
	return query.Where(column+" = ?", *id)
}

func whereRange(query *gorm.DB, column string, r TimeRange) *gorm.DB {
	if r.From != nil {
		query = query.Where(column+" >= ?", *r.From)
	}
	if r.To != nil {
		query = query.Where(column+" <= ?", *r.To)
	}
	return query
}

// applySort resolves sortBy through columns, falling back to fallback when the key is unknown.
func applySort(query *gorm.DB, table string, columns map[string]SortColumn, sortBy, fallback string, desc bool) *gorm.DB {
	column, ok := columns[sortBy]
	if !ok {
		column = columns[fallback]
	}
	if column.Join != "" {
		query = query.Joins(column.Join).Select(table + ".*")
	}
	return query.
		Order(clause.OrderByColumn{Column: clause.Column{Name: column.Column, Raw: true}, Desc: desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: table + ".id", Raw: true}})
}

func countFiltered(query *gorm.DB) (int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// updateActive applies updates to a non-deleted row. An empty update only checks existence.
func updateActive(ctx context.Context, db *gorm.DB, model interface{}, id uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		found, err := exists(ctx, db, model, id)
		if err != nil {
			return err
		}
		if !found {
			return gorm.ErrRecordNotFound
		}
		return nil
	}

	result := db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// softDelete stamps deleted_at on a non-deleted row.
func softDelete(ctx context.Context, db *gorm.DB, model interface{}, id uuid.UUID) error {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func exists(ctx context.Context, db *gorm.DB, model interface{}, id uuid.UUID) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// missingIDs returns the requested ids that do not match a non-deleted row, in request order.
func missingIDs(ctx context.Context, db *gorm.DB, model interface{}, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var found []uuid.UUID
	if err := db.WithContext(ctx).Model(model).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, err
	}

	present := make(map[uuid.UUID]struct{}, len(found))
	for _, id := range found {
		present[id] = struct{}{}
	}

	var missing []uuid.UUID
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// IsNotFound reports whether err means no row matched.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate reports whether err is a translated unique constraint violation.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
