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

// TherapistService orchestrates therapist management use cases.
type TherapistService interface {
	List(ctx context.Context, req dto.TherapistListRequest) (dto.ListResponse[dto.TherapistResponse], error)
	Get(ctx context.Context, id uuid.UUID) (dto.TherapistResponse, error)
	Create(ctx context.Context, req dto.TherapistCreateRequest, actor Actor) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, req dto.TherapistUpdateRequest, actor Actor) error
	Delete(ctx context.Context, id uuid.UUID, actor Actor) error
}

type therapistService struct {
	repo      repository.TherapistRepository
	providers repository.ProviderRepository
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewTherapistService constructs the therapist service.
func NewTherapistService(repo repository.TherapistRepository, providers repository.ProviderRepository, validator *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) TherapistService {
	return &therapistService{
		repo:      repo,
		providers: providers,
		validator: validator,
		activity:  activity,
		logger:    logger.With().Str("component", "therapist_service").Logger(),
	}
}

func (s *therapistService) List(ctx context.Context, req dto.TherapistListRequest) (dto.ListResponse[dto.TherapistResponse], error) {
	if err := validateStruct(s.validator, req); err != nil {
		return dto.ListResponse[dto.TherapistResponse]{}, err
	}

	filter := repository.TherapistFilter{
		Name:       strings.TrimSpace(req.Name),
		ProviderID: optionalID(req.ProviderID),
		Discipline: req.Discipline,
		Status:     req.Status,
		SortBy:     defaultString(req.SortBy, "createdAt"),
		SortDesc:   sortDesc(req.ListQuery, "desc"),
		Page:       pageOf(req.ListQuery),
	}

	therapists, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.ListResponse[dto.TherapistResponse]{}, err
	}

	responses := make([]dto.TherapistResponse, 0, len(therapists))
	for _, therapist := range therapists {
		responses = append(responses, dto.NewTherapistResponse(therapist))
	}
	return dto.ListResponse[dto.TherapistResponse]{Data: responses, Pagination: dto.NewPagination(total, filter.Page.Size)}, nil
}

func (s *therapistService) Get(ctx context.Context, id uuid.UUID) (dto.TherapistResponse, error) {
	therapist, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.TherapistResponse{}, storageError(apperror.ResourceTherapist, err)
	}
	return dto.NewTherapistResponse(therapist), nil
}

func (s *therapistService) Create(ctx context.Context, req dto.TherapistCreateRequest, actor Actor) (uuid.UUID, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return uuid.Nil, err
	}

	providerID, err := parseID("providerId", req.ProviderID)
	if err != nil {
		return uuid.Nil, err
	}
	if err := ensureExists(ctx, s.providers.Exists, apperror.ResourceProvider, providerID); err != nil {
		return uuid.Nil, err
	}

	therapist := models.Therapist{
		ProviderID:    providerID,
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:         strings.TrimSpace(req.Phone),
		Discipline:    req.Discipline,
		LicenseNumber: strings.TrimSpace(req.LicenseNumber),
		Status:        defaultString(req.Status, models.TherapistStatusActive),
	}
	if err := s.repo.Create(ctx, &therapist); err != nil {
		return uuid.Nil, storageError(apperror.ResourceTherapist, err)
	}

	recordActivity(ctx, s.activity, actor, VerbCreate, apperror.ResourceTherapist, therapist.ID, nil)
	return therapist.ID, nil
}

func (s *therapistService) Update(ctx context.Context, id uuid.UUID, req dto.TherapistUpdateRequest, actor Actor) error {
	if err := validateStruct(s.validator, req); err != nil {
		return err
	}
	if err := ensureExists(ctx, s.repo.Exists, apperror.ResourceTherapist, id); err != nil {
		return err
	}

	changes := newChangeSet()
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
	changes.setString("first_name", "firstName", req.FirstName)
	changes.setString("last_name", "lastName", req.LastName)
	if req.Email != nil {
		changes.set("email", "email", strings.ToLower(strings.TrimSpace(*req.Email)))
	}
	changes.setString("phone", "phone", req.Phone)
	changes.setString("discipline", "discipline", req.Discipline)
	changes.setString("license_number", "licenseNumber", req.LicenseNumber)
	changes.setString("status", "status", req.Status)

	if err := s.repo.Update(ctx, id, changes.updates); err != nil {
		return storageError(apperror.ResourceTherapist, err)
	}

	recordActivity(ctx, s.activity, actor, VerbUpdate, apperror.ResourceTherapist, id, changes.metadata())
	return nil
}

func (s *therapistService) Delete(ctx context.Context, id uuid.UUID, actor Actor) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return storageError(apperror.ResourceTherapist, err)
	}

	recordActivity(ctx, s.activity, actor, VerbDelete, apperror.ResourceTherapist, id, nil)
	return nil
}
