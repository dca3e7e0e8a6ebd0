package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/therapy-admin-api/internal/apperror"
	"github.com/noah-isme/therapy-admin-api/internal/dto"
	"github.com/noah-isme/therapy-admin-api/internal/models"
	"github.com/noah-isme/therapy-admin-api/internal/repository"
)

// ProviderService orchestrates provider management and the provider association sets.
type ProviderService interface {
	List(ctx context.Context, req dto.ProviderListRequest) (dto.ListResponse[dto.ProviderResponse], error)
	Get(ctx context.Context, id uuid.UUID) (dto.ProviderResponse, error)
	Create(ctx context.Context, req dto.ProviderCreateRequest, actor Actor) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, req dto.ProviderUpdateRequest, actor Actor) error
	Delete(ctx context.Context, id uuid.UUID, actor Actor) error
	AddLinks(ctx context.Context, id uuid.UUID, kind repository.LinkKind, req dto.LinkAddRequest, actor Actor) error
	RemoveLinks(ctx context.Context, id uuid.UUID, kind repository.LinkKind, req dto.LinkRemoveRequest, actor Actor) error
}

var linkResources = map[repository.LinkKind]string{
	repository.LinkDocuments: apperror.ResourceDocument,
	repository.LinkContracts: apperror.ResourceContract,
	repository.LinkContacts:  apperror.ResourceContact,
}

type providerService struct {
	repo      repository.ProviderRepository
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewProviderService constructs the provider service.
func NewProviderService(repo repository.ProviderRepository, validator *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) ProviderService {
	return &providerService{
		repo:      repo,
		validator: validator,
		activity:  activity,
		logger:    logger.With().Str("component", "provider_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/therapy-admin-api/internal/service/provider"),
	}
}

func (s *providerService) List(ctx context.Context, req dto.ProviderListRequest) (dto.ListResponse[dto.ProviderResponse], error) {
	if err := validateStruct(s.validator, req); err != nil {
		return dto.ListResponse[dto.ProviderResponse]{}, err
	}

	filter := repository.ProviderFilter{
		Name:          strings.TrimSpace(req.Name),
		Email:         strings.TrimSpace(req.Email),
		LicenseNumber: strings.TrimSpace(req.LicenseNumber),
		ProviderType:  req.ProviderType,
		Status:        req.Status,
		SortBy:        defaultString(req.SortBy, "createdAt"),
		SortDesc:      sortDesc(req.ListQuery, "desc"),
		Page:          pageOf(req.ListQuery),
	}

	providers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.ListResponse[dto.ProviderResponse]{}, err
	}

	responses := make([]dto.ProviderResponse, 0, len(providers))
	for _, provider := range providers {
		responses = append(responses, dto.NewProviderResponse(provider))
	}
	return dto.ListResponse[dto.ProviderResponse]{Data: responses, Pagination: dto.NewPagination(total, filter.Page.Size)}, nil
}

func (s *providerService) Get(ctx context.Context, id uuid.UUID) (dto.ProviderResponse, error) {
	provider, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.ProviderResponse{}, storageError(apperror.ResourceProvider, err)
	}

	links, err := s.repo.Links(ctx, id)
	if err != nil {
		return dto.ProviderResponse{}, err
	}
	return dto.NewProviderDetailResponse(provider, links.Documents, links.Contracts, links.Contacts), nil
}

func (s *providerService) Create(ctx context.Context, req dto.ProviderCreateRequest, actor Actor) (uuid.UUID, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return uuid.Nil, err
	}

	provider := models.Provider{
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:         strings.TrimSpace(req.Phone),
		LicenseNumber: strings.TrimSpace(req.LicenseNumber),
		NPINumber:     strings.TrimSpace(req.NPINumber),
		ProviderType:  defaultString(req.ProviderType, models.ProviderTypeIndividual),
		Status:        defaultString(req.Status, models.ProviderStatusPending),
	}
	if err := s.repo.Create(ctx, &provider); err != nil {
		return uuid.Nil, storageError(apperror.ResourceProvider, err)
	}

	recordActivity(ctx, s.activity, actor, VerbCreate, apperror.ResourceProvider, provider.ID, nil)
	return provider.ID, nil
}

func (s *providerService) Update(ctx context.Context, id uuid.UUID, req dto.ProviderUpdateRequest, actor Actor) error {
	if err := validateStruct(s.validator, req); err != nil {
		return err
	}

	changes := newChangeSet()
	changes.setString("first_name", "firstName", req.FirstName)
	changes.setString("last_name", "lastName", req.LastName)
	if req.Email != nil {
		changes.set("email", "email", strings.ToLower(strings.TrimSpace(*req.Email)))
	}
	changes.setString("phone", "phone", req.Phone)
	changes.setString("license_number", "licenseNumber", req.LicenseNumber)
	changes.setString("npi_number", "npiNumber", req.NPINumber)
	changes.setString("provider_type", "providerType", req.ProviderType)
	changes.setString("status", "status", req.Status)

	if err := s.repo.Update(ctx, id, changes.updates); err != nil {
		return storageError(apperror.ResourceProvider, err)
	}

	recordActivity(ctx, s.activity, actor, VerbUpdate, apperror.ResourceProvider, id, changes.metadata())
	return nil
}

func (s *providerService) Delete(ctx context.Context, id uuid.UUID, actor Actor) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return storageError(apperror.ResourceProvider, err)
	}

	recordActivity(ctx, s.activity, actor, VerbDelete, apperror.ResourceProvider, id, nil)
	return nil
}

// AddLinks associates every listed child with the provider, or none of them when any
// identifier does not name a live child.
func (s *providerService) AddLinks(ctx context.Context, id uuid.UUID, kind repository.LinkKind, req dto.LinkAddRequest, actor Actor) error {
	ctx, span := s.tracer.Start(ctx, "provider.links.add")
	defer span.End()
	span.SetAttributes(attribute.String("provider.id", id.String()), attribute.String("link.kind", string(kind)))

	resource, ok := linkResources[kind]
	if !ok {
		return apperror.InvalidRequest("kind: must be one of [documents contracts contacts]")
	}
	if err := validateStruct(s.validator, req); err != nil {
		return err
	}
	ids, err := parseIDs("ids", req.IDs)
	if err != nil {
		return err
	}
	if err := ensureExists(ctx, s.repo.Exists, apperror.ResourceProvider, id); err != nil {
		return err
	}

	missing, err := s.repo.AddLinks(ctx, id, kind, ids)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "link insert failed")
		return err
	}
	if len(missing) > 0 {
		span.SetAttributes(attribute.Int("link.missing", len(missing)))
		return apperror.NotFound(resource, idStrings(missing)...)
	}

	span.SetAttributes(attribute.Int("link.count", len(ids)))
	recordActivity(ctx, s.activity, actor, VerbUpdate, apperror.ResourceProvider, id, map[string]interface{}{
		"link": string(kind),
		"add":  idStrings(ids),
	})
	return nil
}

// RemoveLinks detaches the listed children, or every child of kind when the list is empty.
func (s *providerService) RemoveLinks(ctx context.Context, id uuid.UUID, kind repository.LinkKind, req dto.LinkRemoveRequest, actor Actor) error {
	ctx, span := s.tracer.Start(ctx, "provider.links.remove")
	defer span.End()
	span.SetAttributes(attribute.String("provider.id", id.String()), attribute.String("link.kind", string(kind)))

	if _, ok := linkResources[kind]; !ok {
		return apperror.InvalidRequest("kind: must be one of [documents contracts contacts]")
	}
	if err := validateStruct(s.validator, req); err != nil {
		return err
	}
	ids, err := parseIDs("ids", req.IDs)
	if err != nil {
		return err
	}
	if err := ensureExists(ctx, s.repo.Exists, apperror.ResourceProvider, id); err != nil {
		return err
	}

	if err := s.repo.RemoveLinks(ctx, id, kind, ids); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "link delete failed")
		return err
	}

	metadata := map[string]interface{}{"link": string(kind), "remove": idStrings(ids)}
	if len(ids) == 0 {
		metadata["remove"] = "all"
	}
	recordActivity(ctx, s.activity, actor, VerbUpdate, apperror.ResourceProvider, id, metadata)
	return nil
}
