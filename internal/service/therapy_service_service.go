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

// TherapyServiceService orchestrates therapy service management use cases.
type TherapyServiceService interface {
	List(ctx context.Context, req dto.TherapyServiceListRequest) (dto.ListResponse[dto.TherapyServiceResponse], error)
	Get(ctx context.Context, id uuid.UUID) (dto.TherapyServiceResponse, error)
	Create(ctx context.Context, req dto.TherapyServiceCreateRequest, actor Actor) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, req dto.TherapyServiceUpdateRequest, actor Actor) error
	Delete(ctx context.Context, id uuid.UUID, actor Actor) error
}

type therapyServiceService struct {
	repo       repository.TherapyServiceRepository
	students   repository.StudentRepository
	providers  repository.ProviderRepository
	therapists repository.TherapistRepository
	validator  *validator.Validate
	activity   ActivityRecorder
	logger     zerolog.Logger
}

// NewTherapyServiceService constructs the therapy service service.
func NewTherapyServiceService(repo repository.TherapyServiceRepository, students repository.StudentRepository, providers repository.ProviderRepository, therapists repository.TherapistRepository, validator *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) TherapyServiceService {
	return &therapyServiceService{
		repo:       repo,
		students:   students,
		providers:  providers,
		therapists: therapists,
		validator:  validator,
		activity:   activity,
		logger:     logger.With().Str("component", "therapy_service_service").Logger(),
	}
}

func (s *therapyServiceService) List(ctx context.Context, req dto.TherapyServiceListRequest) (dto.ListResponse[dto.TherapyServiceResponse], error) {
	if err := validateStruct(s.validator, req); err != nil {
		return dto.ListResponse[dto.TherapyServiceResponse]{}, err
	}

	startDate, err := dateRange("startDateFrom", req.StartDateFrom, "startDateTo", req.StartDateTo)
	if err != nil {
		return dto.ListResponse[dto.TherapyServiceResponse]{}, err
	}

	filter := repository.TherapyServiceFilter{
		StudentID:   optionalID(req.StudentID),
		ProviderID:  optionalID(req.ProviderID),
		TherapistID: optionalID(req.TherapistID),
		ServiceType: req.ServiceType,
		Status:      req.Status,
		StartDate:   startDate,
		SortBy:      defaultString(req.SortBy, "startDate"),
		SortDesc:    sortDesc(req.ListQuery, "desc"),
		Page:        pageOf(req.ListQuery),
	}

	services, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.ListResponse[dto.TherapyServiceResponse]{}, err
	}

	responses := make([]dto.TherapyServiceResponse, 0, len(services))
	for _, service := range services {
		responses = append(responses, dto.NewTherapyServiceResponse(service))
	}
	return dto.ListResponse[dto.TherapyServiceResponse]{Data: responses, Pagination: dto.NewPagination(total, filter.Page.Size)}, nil
}

func (s *therapyServiceService) Get(ctx context.Context, id uuid.UUID) (dto.TherapyServiceResponse, error) {
	service, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.TherapyServiceResponse{}, storageError(apperror.ResourceTherapyService, err)
	}
	return dto.NewTherapyServiceResponse(service), nil
}

func (s *therapyServiceService) Create(ctx context.Context, req dto.TherapyServiceCreateRequest, actor Actor) (uuid.UUID, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return uuid.Nil, err
	}

	studentID, err := parseID("studentId", req.StudentID)
	if err != nil {
		return uuid.Nil, err
	}
	providerID, err := parseID("providerId", req.ProviderID)
	if err != nil {
		return uuid.Nil, err
	}
	startDate, err := parseDate("startDate", req.StartDate)
	if err != nil {
		return uuid.Nil, err
	}
	endDate, err := optionalDate("endDate", req.EndDate)
	if err != nil {
		return uuid.Nil, err
	}
	if endDate != nil && endDate.Before(startDate) {
		return uuid.Nil, apperror.InvalidRequest("endDate: must not be before startDate")
	}

	if err := ensureExists(ctx, s.students.Exists, apperror.ResourceStudent, studentID); err != nil {
		return uuid.Nil, err
	}
	if err := ensureExists(ctx, s.providers.Exists, apperror.ResourceProvider, providerID); err != nil {
		return uuid.Nil, err
	}

	var therapistID *uuid.UUID
	if req.TherapistID != nil && strings.TrimSpace(*req.TherapistID) != "" {
		id, err := parseID("therapistId", *req.TherapistID)
		if err != nil {
			return uuid.Nil, err
		}
		if err := ensureExists(ctx, s.therapists.Exists, apperror.ResourceTherapist, id); err != nil {
			return uuid.Nil, err
		}
		therapistID = &id
	}

	service := models.TherapyService{
		StudentID:      studentID,
		ProviderID:     providerID,
		TherapistID:    therapistID,
		ServiceType:    req.ServiceType,
		MinutesPerWeek: req.MinutesPerWeek,
		StartDate:      startDate,
		EndDate:        endDate,
		Status:         defaultString(req.Status, models.TherapyServiceStatusPending),
	}
	if err := s.repo.Create(ctx, &service); err != nil {
		return uuid.Nil, storageError(apperror.ResourceTherapyService, err)
	}

	recordActivity(ctx, s.activity, actor, VerbCreate, apperror.ResourceTherapyService, service.ID, nil)
	return service.ID, nil
}

func (s *therapyServiceService) Update(ctx context.Context, id uuid.UUID, req dto.TherapyServiceUpdateRequest, actor Actor) error {
	if err := validateStruct(s.validator, req); err != nil {
		return err
	}
	if err := ensureExists(ctx, s.repo.Exists, apperror.ResourceTherapyService, id); err != nil {
		return err
	}

	changes := newChangeSet()
	if req.StudentID != nil {
		studentID, err := parseID("studentId", *req.StudentID)
		if err != nil {
			return err
		}
		if err := ensureExists(ctx, s.students.Exists, apperror.ResourceStudent, studentID); err != nil {
			return err
		}
		changes.setID("student_id", "studentId", &studentID)
	}
	if req.ProviderID != nil {
		providerID, err := parseID("providerId", *req.ProviderID)
		if err != nil {
			return err
		}
		if err := ensureExists(ctx, s.providers.Exists, apperror.ResourceProvider, providerID); err != nil {
			return err
		}
		changes.setID("provider_id", "providerId", &providerID)
	}
	therapistID, err := changes.setNullableID("therapist_id", "therapistId", req.TherapistID)
	if err != nil {
		return err
	}
	if therapistID != nil {
		if err := ensureExists(ctx, s.therapists.Exists, apperror.ResourceTherapist, *therapistID); err != nil {
			return err
		}
	}
	changes.setString("service_type", "serviceType", req.ServiceType)
	if req.MinutesPerWeek != nil {
		changes.set("minutes_per_week", "minutesPerWeek", *req.MinutesPerWeek)
	}
	if err := changes.setDate("start_date", "startDate", req.StartDate); err != nil {
		return err
	}
	if err := changes.setNullableDate("end_date", "endDate", req.EndDate); err != nil {
		return err
	}
	changes.setString("status", "status", req.Status)

	if err := s.repo.Update(ctx, id, changes.updates); err != nil {
		return storageError(apperror.ResourceTherapyService, err)
	}

	recordActivity(ctx, s.activity, actor, VerbUpdate, apperror.ResourceTherapyService, id, changes.metadata())
	return nil
}

func (s *therapyServiceService) Delete(ctx context.Context, id uuid.UUID, actor Actor) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return storageError(apperror.ResourceTherapyService, err)
	}

	recordActivity(ctx, s.activity, actor, VerbDelete, apperror.ResourceTherapyService, id, nil)
	return nil
}
