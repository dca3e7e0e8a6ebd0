package dto

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/therapy-admin-api/internal/models"
)

// DefaultPerPage is used when a list request omits perPage.
const DefaultPerPage = 20

// ListQuery carries the pagination and ordering parameters accepted by every list endpoint.
type ListQuery struct {
	SortOrder string `json:"sortOrder" query:"sortOrder" validate:"omitempty,oneof=asc desc"`
	PerPage   *int   `json:"perPage" query:"perPage" validate:"omitempty,min=1"`
	Page      *int   `json:"page" query:"page" validate:"omitempty,min=1"`
}

// PageNumber returns the requested page, defaulting to 1.
func (q ListQuery) PageNumber() int {
	if q.Page == nil || *q.Page < 1 {
		return 1
	}
	return *q.Page
}

// Limit returns the requested page size, defaulting to DefaultPerPage.
func (q ListQuery) Limit() int {
	if q.PerPage == nil || *q.PerPage < 1 {
		return DefaultPerPage
	}
	return *q.PerPage
}

// Order returns the requested sort order or the resource default.
func (q ListQuery) Order(fallback string) string {
	order := strings.ToLower(strings.TrimSpace(q.SortOrder))
	if order == "" {
		return fallback
	}
	return order
}

// Pagination is returned alongside list payloads.
type Pagination struct {
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NewPagination computes the page count for a filtered total.
func NewPagination(total int64, perPage int) Pagination {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return Pagination{
		Total: total,
		Pages: int(math.Ceil(float64(total) / float64(perPage))),
	}
}

// ListResponse wraps a page of items with its pagination metadata.
type ListResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// DateRange filters a date column inclusively on both ends.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// LinkAddRequest lists the child identifiers to associate with an owner.
type LinkAddRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,uuid"`
}

// LinkRemoveRequest lists the child identifiers to detach; an empty list detaches every child.
type LinkRemoveRequest struct {
	IDs []string `json:"ids" validate:"omitempty,dive,uuid"`
}

// SchoolSummary is the expanded form of a school reference.
type SchoolSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PersonSummary is the expanded form of a student, provider or therapist reference.
type PersonSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// RoleSummary is the expanded form of a role reference.
type RoleSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newSchoolSummary(school *models.School) *SchoolSummary {
	if school == nil {
		return nil
	}
	return &SchoolSummary{ID: school.ID.String(), Name: school.Name}
}

func newPersonSummary(id, firstName, lastName string) *PersonSummary {
	return &PersonSummary{ID: id, FirstName: firstName, LastName: lastName}
}

func optionalID(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	value := id.String()
	return &value
}
