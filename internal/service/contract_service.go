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

// ContractService orchestrates contract management use cases.
type ContractService interface {
	List(ctx context.Context, req dto.ContractListRequest) (dto.ListResponse[dto.ContractResponse], error)
	Get(ctx context.Context, id uuid.UUID) (dto.ContractResponse, error)
	Create(ctx context.Context, req dto.ContractCreateRequest, actor Actor) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, req dto.ContractUpdateRequest, actor Actor) error
	Delete(ctx context.Context, id uuid.UUID, actor Actor) error
}

type contractService struct {
	repo      repository.ContractRepository
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewContractService constructs the contract service.
func NewContractService(repo repository.ContractRepository, validator *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) ContractService {
	return &contractService{
		repo:      repo,
		validator: validator,
		activity:  activity,
		logger:    logger.With().Str("component", "contract_service").Logger(),
	}
}

func (s *contractService) List(ctx context.Context, req dto.ContractListRequest) (dto.ListResponse[dto.ContractResponse], error) {
	if err := validateStruct(s.validator, req); err != nil {
		return dto.ListResponse[dto.ContractResponse]{}, err
	}

	filter := repository.ContractFilter{
		Name:     strings.TrimSpace(req.Name),
		Status:   req.Status,
		SortBy:   defaultString(req.SortBy, "startDate"),
		SortDesc: sortDesc(req.ListQuery, "desc"),
		Page:     pageOf(req.ListQuery),
	}

	contracts, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.ListResponse[dto.ContractResponse]{}, err
	}

	responses := make([]dto.ContractResponse, 0, len(contracts))
	for _, contract := range contracts {
		responses = append(responses, dto.NewContractResponse(contract))
	}
	return dto.ListResponse[dto.ContractResponse]{Data: responses, Pagination: dto.NewPagination(total, filter.Page.Size)}, nil
}

func (s *contractService) Get(ctx context.Context, id uuid.UUID) (dto.ContractResponse, error) {
	contract, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.ContractResponse{}, storageError(apperror.ResourceContract, err)
	}
	return dto.NewContractResponse(contract), nil
}

func (s *contractService) Create(ctx context.Context, req dto.ContractCreateRequest, actor Actor) (uuid.UUID, error) {
	if err := validateStruct(s.validator, req); err != nil {
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

	contract := models.Contract{
		Name:      strings.TrimSpace(req.Name),
		StartDate: startDate,
		EndDate:   endDate,
		Rate:      req.Rate,
		Status:    defaultString(req.Status, models.ContractStatusActive),
	}
	if err := s.repo.Create(ctx, &contract); err != nil {
		return uuid.Nil, storageError(apperror.ResourceContract, err)
	}

	recordActivity(ctx, s.activity, actor, VerbCreate, apperror.ResourceContract, contract.ID, nil)
	return contract.ID, nil
}

func (s *contractService) Update(ctx context.Context, id uuid.UUID, req dto.ContractUpdateRequest, actor Actor) error {
	if err := validateStruct(s.validator, req); err != nil {
		return err
	}

	changes := newChangeSet()
	changes.setString("name", "name", req.Name)
	if err := changes.setDate("start_date", "startDate", req.StartDate); err != nil {
		return err
	}
	if err := changes.setNullableDate("end_date", "endDate", req.EndDate); err != nil {
		return err
	}
	if req.Rate != nil {
		changes.set("rate", "rate", *req.Rate)
	}
	changes.setString("status", "status", req.Status)

	if err := s.repo.Update(ctx, id, changes.updates); err != nil {
		return storageError(apperror.ResourceContract, err)
	}

	recordActivity(ctx, s.activity, actor, VerbUpdate, apperror.ResourceContract, id, changes.metadata())
	return nil
}

func (s *contractService) Delete(ctx context.Context, id uuid.UUID, actor Actor) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return storageError(apperror.ResourceContract, err)
	}

	recordActivity(ctx, s.activity, actor, VerbDelete, apperror.ResourceContract, id, nil)
	return nil
}
