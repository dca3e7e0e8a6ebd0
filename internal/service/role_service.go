package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/therapy-admin-api/internal/apperror"
	"github.com/noah-isme/therapy-admin-api/internal/dto"
	"github.com/noah-isme/therapy-admin-api/internal/repository"
)

// RoleService exposes read access to roles. Roles change only through seeding, so
// list pages are cached in redis when a client is configured.
type RoleService interface {
	List(ctx context.Context, req dto.RoleListRequest) (dto.ListResponse[dto.RoleResponse], error)
	Get(ctx context.Context, id uuid.UUID) (dto.RoleResponse, error)
}

type roleService struct {
	repo      repository.RoleRepository
	cache     *redis.Client
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewRoleService constructs the role service. cache may be nil.
func NewRoleService(repo repository.RoleRepository, cache *redis.Client, ttl time.Duration, validator *validator.Validate, logger zerolog.Logger) RoleService {
	return &roleService{
		repo:      repo,
		cache:     cache,
		cacheTTL:  ttl,
		validator: validator,
		logger:    logger.With().Str("component", "role_service").Logger(),
	}
}

func (s *roleService) List(ctx context.Context, req dto.RoleListRequest) (dto.ListResponse[dto.RoleResponse], error) {
	if err := validateStruct(s.validator, req); err != nil {
		return dto.ListResponse[dto.RoleResponse]{}, err
	}

	filter := repository.RoleFilter{
		Name:     strings.TrimSpace(req.Name),
		SortBy:   defaultString(req.SortBy, "name"),
		SortDesc: sortDesc(req.ListQuery, "asc"),
		Page:     pageOf(req.ListQuery),
	}
	cacheKey := fmt.Sprintf("roles:list:%s:%s:%t:%d:%d", strings.ToLower(filter.Name), filter.SortBy, filter.SortDesc, filter.Page.Number, filter.Page.Size)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.ListResponse[dto.RoleResponse]
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Str("key", cacheKey).Msg("roles cache hit")
				return response, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("failed to read roles cache")
		}
	}

	roles, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.ListResponse[dto.RoleResponse]{}, err
	}

	responses := make([]dto.RoleResponse, 0, len(roles))
	for _, role := range roles {
		responses = append(responses, dto.NewRoleResponse(role))
	}
	response := dto.ListResponse[dto.RoleResponse]{Data: responses, Pagination: dto.NewPagination(total, filter.Page.Size)}

	if s.cache != nil && s.cacheTTL > 0 {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store roles cache")
			}
		}
	}

	return response, nil
}

func (s *roleService) Get(ctx context.Context, id uuid.UUID) (dto.RoleResponse, error) {
	role, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.RoleResponse{}, storageError(apperror.ResourceRole, err)
	}
	return dto.NewRoleResponse(role), nil
}
