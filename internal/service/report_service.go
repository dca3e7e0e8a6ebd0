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

// ReportService orchestrates progress report use cases.
type ReportService interface {
	List(ctx context.Context, req dto.ReportListRequest) (dto.ListResponse[dto.ReportResponse], error)
	Get(ctx context.Context, id uuid.UUID) (dto.ReportResponse, error)
	Create(ctx context.Context, req dto.ReportCreateRequest, actor Actor) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, req dto.ReportUpdateRequest, actor Actor) error
	Delete(ctx context.Context, id uuid.UUID, actor Actor) error
}

type reportService struct {
	repo      repository.ReportRepository
	services  repository.TherapyServiceRepository
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
	policy    *bluemonday.Policy
}

// NewReportService constructs the report service.
func NewReportService(repo repository.ReportRepository, services repository.TherapyServiceRepository, validator *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) ReportService {
	return &reportService{
		repo:      repo,
		services:  services,
		validator: validator,
		activity:  activity,
		logger:    logger.With().Str("component", "report_service").Logger(),
		policy:    bluemonday.UGCPolicy(),
	}
}

func (s *reportService) List(ctx context.Context, req dto.ReportListRequest) (dto.ListResponse[dto.ReportResponse], error) {
	if err := validateStruct(s.validator, req); err != nil {
		return dto.ListResponse[dto.ReportResponse]{}, err
	}

	reportDate, err := dateRange("reportDateFrom", req.ReportDateFrom, "reportDateTo", req.ReportDateTo)
	if err != nil {
		return dto.ListResponse[dto.ReportResponse]{}, err
	}

	filter := repository.ReportFilter{
		TherapyServiceID: optionalID(req.TherapyServiceID),
		Title:            strings.TrimSpace(req.Title),
		Status:           req.Status,
		ReportDate:       reportDate,
		SortBy:           defaultString(req.SortBy, "reportDate"),
		SortDesc:         sortDesc(req.ListQuery, "desc"),
		Page:             pageOf(req.ListQuery),
	}

	reports, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.ListResponse[dto.ReportResponse]{}, err
	}

	responses := make([]dto.ReportResponse, 0, len(reports))
	for _, report := range reports {
		responses = append(responses, dto.NewReportResponse(report))
	}
	return dto.ListResponse[dto.ReportResponse]{Data: responses, Pagination: dto.NewPagination(total, filter.Page.Size)}, nil
}

func (s *reportService) Get(ctx context.Context, id uuid.UUID) (dto.ReportResponse, error) {
	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.ReportResponse{}, storageError(apperror.ResourceReport, err)
	}
	return dto.NewReportResponse(report), nil
}

func (s *reportService) Create(ctx context.Context, req dto.ReportCreateRequest, actor Actor) (uuid.UUID, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return uuid.Nil, err
	}

	serviceID, err := parseID("therapyServiceId", req.TherapyServiceID)
	if err != nil {
		return uuid.Nil, err
	}
	reportDate, err := parseDate("reportDate", req.ReportDate)
	if err != nil {
		return uuid.Nil, err
	}
	if err := ensureExists(ctx, s.services.Exists, apperror.ResourceTherapyService, serviceID); err != nil {
		return uuid.Nil, err
	}

	report := models.Report{
		TherapyServiceID: serviceID,
		Title:            strings.TrimSpace(req.Title),
		Notes:            s.policy.Sanitize(strings.TrimSpace(req.Notes)),
		ReportDate:       reportDate,
		Status:           defaultString(req.Status, models.ReportStatusDraft),
	}
	if err := s.repo.Create(ctx, &report); err != nil {
		return uuid.Nil, storageError(apperror.ResourceReport, err)
	}

	recordActivity(ctx, s.activity, actor, VerbCreate, apperror.ResourceReport, report.ID, nil)
	return report.ID, nil
}

func (s *reportService) Update(ctx context.Context, id uuid.UUID, req dto.ReportUpdateRequest, actor Actor) error {
	if err := validateStruct(s.validator, req); err != nil {
		return err
	}
	if err := ensureExists(ctx, s.repo.Exists, apperror.ResourceReport, id); err != nil {
		return err
	}

	changes := newChangeSet()
	if req.TherapyServiceID != nil {
		serviceID, err := parseID("therapyServiceId", *req.TherapyServiceID)
		if err != nil {
			return err
		}
		if err := ensureExists(ctx, s.services.Exists, apperror.ResourceTherapyService, serviceID); err != nil {
			return err
		}
		changes.setID("therapy_service_id", "therapyServiceId", &serviceID)
	}
	changes.setString("title", "title", req.Title)
	if req.Notes != nil {
		changes.set("notes", "notes", s.policy.Sanitize(strings.TrimSpace(*req.Notes)))
	}
	if err := changes.setDate("report_date", "reportDate", req.ReportDate); err != nil {
		return err
	}
	changes.setString("status", "status", req.Status)

	if err := s.repo.Update(ctx, id, changes.updates); err != nil {
		return storageError(apperror.ResourceReport, err)
	}

	recordActivity(ctx, s.activity, actor, VerbUpdate, apperror.ResourceReport, id, changes.metadata())
	return nil
}

func (s *reportService) Delete(ctx context.Context, id uuid.UUID, actor Actor) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return storageError(apperror.ResourceReport, err)
	}

	recordActivity(ctx, s.activity, actor, VerbDelete, apperror.ResourceReport, id, nil)
	return nil
}
