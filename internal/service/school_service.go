package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/noah-isme/therapy-admin-api/internal/apperror"
	"github.com/noah-isme/therapy-admin-api/internal/dto"
	"github.com/noah-isme/therapy-admin-api/internal/models"
	"github.com/noah-isme/therapy-admin-api/internal/repository"
)

// SchoolService orchestrates school management use cases.
type SchoolService interface {
	List(ctx context.Context, req dto.SchoolListRequest) (dto.ListResponse[dto.SchoolResponse], error)
	Get(ctx context.Context, id uuid.UUID) (dto.SchoolResponse, error)
	Create(ctx context.Context, req dto.SchoolCreateRequest, actor Actor) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, req dto.SchoolUpdateRequest, actor Actor) error
	Delete(ctx context.Context, id uuid.UUID, actor Actor) error
}

type schoolService struct {
	repo      repository.SchoolRepository
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewSchoolService constructs the school service.
func NewSchoolService(repo repository.SchoolRepository, validator *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) SchoolService {
	return &schoolService{
		repo:      repo,
		validator: validator,
		activity:  activity,
		logger:    logger.With().Str("component", "school_service").Logger(),
	}
}

func (s *schoolService) List(ctx context.Context, req dto.SchoolListRequest) (dto.ListResponse[dto.SchoolResponse], error) {
	if err := validateStruct(s.validator, req); err != nil {
		return dto.ListResponse[dto.SchoolResponse]{}, err
	}

	filter := repository.SchoolFilter{
		Name:     strings.TrimSpace(req.Name),
		City:     strings.TrimSpace(req.City),
		State:    strings.TrimSpace(req.State),
		Status:   req.Status,
		SortBy:   defaultString(req.SortBy, "name"),
		SortDesc: sortDesc(req.ListQuery, "asc"),
		Page:     pageOf(req.ListQuery),
	}

	schools, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.ListResponse[dto.SchoolResponse]{}, err
	}

	responses := make([]dto.SchoolResponse, 0, len(schools))
	for _, school := range schools {
		responses = append(responses, dto.NewSchoolResponse(school))
	}
	return dto.ListResponse[dto.SchoolResponse]{Data: responses, Pagination: dto.NewPagination(total, filter.Page.Size)}, nil
}

func (s *schoolService) Get(ctx context.Context, id uuid.UUID) (dto.SchoolResponse, error) {
	school, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.SchoolResponse{}, storageError(apperror.ResourceSchool, err)
	}
	return dto.NewSchoolResponse(school), nil
}

func (s *schoolService) Create(ctx context.Context, req dto.SchoolCreateRequest, actor Actor) (uuid.UUID, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return uuid.Nil, err
	}

	school := models.School{
		Name:    strings.TrimSpace(req.Name),
		Address: strings.TrimSpace(req.Address),
		City:    strings.TrimSpace(req.City),
		State:   strings.TrimSpace(req.State),
		ZipCode: strings.TrimSpace(req.ZipCode),
		Phone:   strings.TrimSpace(req.Phone),
		Status:  defaultString(req.Status, models.SchoolStatusActive),
	}
	if err := s.repo.Create(ctx, &school); err != nil {
		return uuid.Nil, storageError(apperror.ResourceSchool, err)
	}

	recordActivity(ctx, s.activity, actor, VerbCreate, apperror.ResourceSchool, school.ID, nil)
	return school.ID, nil
}

func (s *schoolService) Update(ctx context.Context, id uuid.UUID, req dto.SchoolUpdateRequest, actor Actor) error {
	if err := validateStruct(s.validator, req); err != nil {
		return err
	}

	changes := newChangeSet()
	changes.setString("name", "name", req.Name)
	changes.setString("address", "address", req.Address)
	changes.setString("city", "city", req.City)
	changes.setString("state", "state", req.State)
	changes.setString("zip_code", "zipCode", req.ZipCode)
	changes.setString("phone", "phone", req.Phone)
	changes.setString("status", "status", req.Status)

	if err := s.repo.Update(ctx, id, changes.updates); err != nil {
		return storageError(apperror.ResourceSchool, err)
	}

	recordActivity(ctx, s.activity, actor, VerbUpdate, apperror.ResourceSchool, id, changes.metadata())
	return nil
}

func (s *schoolService) Delete(ctx context.Context, id uuid.UUID, actor Actor) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return storageError(apperror.ResourceSchool, err)
	}

	recordActivity(ctx, s.activity, actor, VerbDelete, apperror.ResourceSchool, id, nil)
	return nil
}
