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

// ContactService orchestrates provider contact management use cases.
type ContactService interface {
	List(ctx context.Context, req dto.ContactListRequest) (dto.ListResponse[dto.ContactResponse], error)
	Get(ctx context.Context, id uuid.UUID) (dto.ContactResponse, error)
	Create(ctx context.Context, req dto.ContactCreateRequest, actor Actor) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, req dto.ContactUpdateRequest, actor Actor) error
	Delete(ctx context.Context, id uuid.UUID, actor Actor) error
}

type contactService struct {
	repo      repository.ContactRepository
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewContactService constructs the contact service.
func NewContactService(repo repository.ContactRepository, validator *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) ContactService {
	return &contactService{
		repo:      repo,
		validator: validator,
		activity:  activity,
		logger:    logger.With().Str("component", "contact_service").Logger(),
	}
}

func (s *contactService) List(ctx context.Context, req dto.ContactListRequest) (dto.ListResponse[dto.ContactResponse], error) {
	if err := validateStruct(s.validator, req); err != nil {
		return dto.ListResponse[dto.ContactResponse]{}, err
	}

	filter := repository.ContactFilter{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		SortBy:   defaultString(req.SortBy, "name"),
		SortDesc: sortDesc(req.ListQuery, "asc"),
		Page:     pageOf(req.ListQuery),
	}

	contacts, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.ListResponse[dto.ContactResponse]{}, err
	}

	responses := make([]dto.ContactResponse, 0, len(contacts))
	for _, contact := range contacts {
		responses = append(responses, dto.NewContactResponse(contact))
	}
	return dto.ListResponse[dto.ContactResponse]{Data: responses, Pagination: dto.NewPagination(total, filter.Page.Size)}, nil
}

func (s *contactService) Get(ctx context.Context, id uuid.UUID) (dto.ContactResponse, error) {
	contact, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.ContactResponse{}, storageError(apperror.ResourceContact, err)
	}
	return dto.NewContactResponse(contact), nil
}

func (s *contactService) Create(ctx context.Context, req dto.ContactCreateRequest, actor Actor) (uuid.UUID, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return uuid.Nil, err
	}

	contact := models.Contact{
		Name:  strings.TrimSpace(req.Name),
		Email: strings.ToLower(strings.TrimSpace(req.Email)),
		Phone: strings.TrimSpace(req.Phone),
		Title: strings.TrimSpace(req.Title),
	}
	if err := s.repo.Create(ctx, &contact); err != nil {
		return uuid.Nil, storageError(apperror.ResourceContact, err)
	}

	recordActivity(ctx, s.activity, actor, VerbCreate, apperror.ResourceContact, contact.ID, nil)
	return contact.ID, nil
}

func (s *contactService) Update(ctx context.Context, id uuid.UUID, req dto.ContactUpdateRequest, actor Actor) error {
	if err := validateStruct(s.validator, req); err != nil {
		return err
	}

	changes := newChangeSet()
	changes.setString("name", "name", req.Name)
	if req.Email != nil {
		changes.set("email", "email", strings.ToLower(strings.TrimSpace(*req.Email)))
	}
	changes.setString("phone", "phone", req.Phone)
	changes.setString("title", "title", req.Title)

	if err := s.repo.Update(ctx, id, changes.updates); err != nil {
		return storageError(apperror.ResourceContact, err)
	}

	recordActivity(ctx, s.activity, actor, VerbUpdate, apperror.ResourceContact, id, changes.metadata())
	return nil
}

func (s *contactService) Delete(ctx context.Context, id uuid.UUID, actor Actor) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return storageError(apperror.ResourceContact, err)
	}

	recordActivity(ctx, s.activity, actor, VerbDelete, apperror.ResourceContact, id, nil)
	return nil
}
