package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/noah-isme/therapy-admin-api/internal/apperror"
	"github.com/noah-isme/therapy-admin-api/internal/dto"
	"github.com/noah-isme/therapy-admin-api/internal/models"
	"github.com/noah-isme/therapy-admin-api/internal/repository"
)

// InvoiceService orchestrates invoice use cases.
type InvoiceService interface {
	List(ctx context.Context, req dto.InvoiceListRequest) (dto.ListResponse[dto.InvoiceResponse], error)
	Get(ctx context.Context, id uuid.UUID) (dto.InvoiceResponse, error)
	Create(ctx context.Context, req dto.InvoiceCreateRequest, actor Actor) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, req dto.InvoiceUpdateRequest, actor Actor) error
	Delete(ctx context.Context, id uuid.UUID, actor Actor) error
}

type invoiceService struct {
	repo      repository.InvoiceRepository
	providers repository.ProviderRepository
	schools   repository.SchoolRepository
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
	policy    *bluemonday.Policy
}

// NewInvoiceService constructs the invoice service.
func NewInvoiceService(repo repository.InvoiceRepository, providers repository.ProviderRepository, schools repository.SchoolRepository, validator *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) InvoiceService {
	return &invoiceService{
		repo:      repo,
		providers: providers,
		schools:   schools,
		validator: validator,
		activity:  activity,
		logger:    logger.With().Str("component", "invoice_service").Logger(),
		policy:    bluemonday.StrictPolicy(),
	}
}

func (s *invoiceService) List(ctx context.Context, req dto.InvoiceListRequest) (dto.ListResponse[dto.InvoiceResponse], error) {
	if err := validateStruct(s.validator, req); err != nil {
		return dto.ListResponse[dto.InvoiceResponse]{}, err
	}

	issueDate, err := dateRange("issueDateFrom", req.IssueDateFrom, "issueDateTo", req.IssueDateTo)
	if err != nil {
		return dto.ListResponse[dto.InvoiceResponse]{}, err
	}

	filter := repository.InvoiceFilter{
		ProviderID:    optionalID(req.ProviderID),
		SchoolID:      optionalID(req.SchoolID),
		InvoiceNumber: strings.TrimSpace(req.InvoiceNumber),
		Status:        req.Status,
		IssueDate:     issueDate,
		SortBy:        defaultString(req.SortBy, "issueDate"),
		SortDesc:      sortDesc(req.ListQuery, "desc"),
		Page:          pageOf(req.ListQuery),
	}

	invoices, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.ListResponse[dto.InvoiceResponse]{}, err
	}

	responses := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, invoice := range invoices {
		responses = append(responses, dto.NewInvoiceResponse(invoice))
	}
	return dto.ListResponse[dto.InvoiceResponse]{Data: responses, Pagination: dto.NewPagination(total, filter.Page.Size)}, nil
}

func (s *invoiceService) Get(ctx context.Context, id uuid.UUID) (dto.InvoiceResponse, error) {
	invoice, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.InvoiceResponse{}, storageError(apperror.ResourceInvoice, err)
	}
	return dto.NewInvoiceResponse(invoice), nil
}

func (s *invoiceService) Create(ctx context.Context, req dto.InvoiceCreateRequest, actor Actor) (uuid.UUID, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return uuid.Nil, err
	}

	providerID, err := parseID("providerId", req.ProviderID)
	if err != nil {
		return uuid.Nil, err
	}
	issueDate, err := parseDate("issueDate", req.IssueDate)
	if err != nil {
		return uuid.Nil, err
	}
	dueDate, err := optionalDate("dueDate", req.DueDate)
	if err != nil {
		return uuid.Nil, err
	}
	if err := ensureExists(ctx, s.providers.Exists, apperror.ResourceProvider, providerID); err != nil {
		return uuid.Nil, err
	}

	var schoolID *uuid.UUID
	if req.SchoolID != nil && strings.TrimSpace(*req.SchoolID) != "" {
		id, err := parseID("schoolId", *req.SchoolID)
		if err != nil {
			return uuid.Nil, err
		}
		if err := ensureExists(ctx, s.schools.Exists, apperror.ResourceSchool, id); err != nil {
			return uuid.Nil, err
		}
		schoolID = &id
	}

	invoice := models.Invoice{
		ProviderID:    providerID,
		SchoolID:      schoolID,
		InvoiceNumber: strings.TrimSpace(req.InvoiceNumber),
		Amount:        req.Amount,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		Notes:         s.policy.Sanitize(strings.TrimSpace(req.Notes)),
		Status:        defaultString(req.Status, models.InvoiceStatusPending),
	}
	if err := s.repo.Create(ctx, &invoice); err != nil {
		return uuid.Nil, storageError(apperror.ResourceInvoice, err)
	}

	recordActivity(ctx, s.activity, actor, VerbCreate, apperror.ResourceInvoice, invoice.ID, map[string]interface{}{"invoiceNumber": invoice.InvoiceNumber})
	return invoice.ID, nil
}

func (s *invoiceService) Update(ctx context.Context, id uuid.UUID, req dto.InvoiceUpdateRequest, actor Actor) error {
	if err := validateStruct(s.validator, req); err != nil {
		return err
	}
	if err := ensureExists(ctx, s.repo.Exists, apperror.ResourceInvoice, id); err != nil {
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
	schoolID, err := changes.setNullableID("school_id", "schoolId", req.SchoolID)
	if err != nil {
		return err
	}
	if schoolID != nil {
		if err := ensureExists(ctx, s.schools.Exists, apperror.ResourceSchool, *schoolID); err != nil {
			return err
		}
	}
	changes.setString("invoice_number", "invoiceNumber", req.InvoiceNumber)
	if req.Amount != nil {
		changes.set("amount", "amount", *req.Amount)
	}
	if err := changes.setDate("issue_date", "issueDate", req.IssueDate); err != nil {
		return err
	}
	if err := changes.setNullableDate("due_date", "dueDate", req.DueDate); err != nil {
		return err
	}
	if req.Notes != nil {
		changes.set("notes", "notes", s.policy.Sanitize(strings.TrimSpace(*req.Notes)))
	}
	changes.setString("status", "status", req.Status)

	if err := s.repo.Update(ctx, id, changes.updates); err != nil {
		return storageError(apperror.ResourceInvoice, err)
	}

	recordActivity(ctx, s.activity, actor, VerbUpdate, apperror.ResourceInvoice, id, changes.metadata())
	return nil
}

func (s *invoiceService) Delete(ctx context.Context, id uuid.UUID, actor Actor) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return storageError(apperror.ResourceInvoice, err)
	}

	recordActivity(ctx, s.activity, actor, VerbDelete, apperror.ResourceInvoice, id, nil)
	return nil
}
