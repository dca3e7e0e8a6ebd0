package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/therapy-admin-api/internal/apperror"
	"github.com/noah-isme/therapy-admin-api/internal/dto"
	"github.com/noah-isme/therapy-admin-api/internal/repository"
)

const dateLayout = "2006-01-02"

func parseID(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil, apperror.InvalidRequest(field + ": must be a valid UUID")
	}
	return id, nil
}

func parseIDs(field string, values []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(values))
	seen := make(map[uuid.UUID]struct{}, len(values))
	for _, value := range values {
		id, err := parseID(field, value)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

// optionalID parses a validated filter id; blank input yields nil.
func optionalID(value string) *uuid.UUID {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil
	}
	return &id
}

func parseDate(field, value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(dateLayout, strings.TrimSpace(value), time.UTC)
	if err != nil {
		return time.Time{}, apperror.InvalidRequest(field + ": must be a date formatted as YYYY-MM-DD")
	}
	return parsed, nil
}

// optionalDate parses a date that may be blank.
func optionalDate(field, value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	parsed, err := parseDate(field, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func dateRange(fromField, from, toField, to string) (repository.TimeRange, error) {
	start, err := optionalDate(fromField, from)
	if err != nil {
		return repository.TimeRange{}, err
	}
	end, err := optionalDate(toField, to)
	if err != nil {
		return repository.TimeRange{}, err
	}
	return repository.TimeRange{From: start, To: end}, nil
}

func pageOf(query dto.ListQuery) repository.Page {
	return repository.Page{Number: query.PageNumber(), Size: query.Limit()}
}

func sortDesc(query dto.ListQuery, fallback string) bool {
	return query.Order(fallback) == "desc"
}

func trimmed(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}

func defaultString(value, fallback string) string {
	if value = strings.TrimSpace(value); value == "" {
		return fallback
	}
	return value
}

// storageError translates persistence sentinels into typed errors for resource.
func storageError(resource string, err error) error {
	switch {
	case err == nil:
		return nil
	case repository.IsNotFound(err):
		return apperror.NotFound(resource)
	case repository.IsDuplicate(err):
		return apperror.Conflict(capitalizeFirst(resource) + " already exists.")
	default:
		return err
	}
}

func capitalizeFirst(value string) string {
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

// ensureExists fails with resource's not found error unless id names a live row.
func ensureExists(ctx context.Context, check func(context.Context, uuid.UUID) (bool, error), resource string, id uuid.UUID) error {
	found, err := check(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return apperror.NotFound(resource)
	}
	return nil
}
