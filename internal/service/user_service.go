package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/noah-isme/therapy-admin-api/internal/apperror"
	"github.com/noah-isme/therapy-admin-api/internal/dto"
	"github.com/noah-isme/therapy-admin-api/internal/mail"
	"github.com/noah-isme/therapy-admin-api/internal/models"
	"github.com/noah-isme/therapy-admin-api/internal/observability"
	"github.com/noah-isme/therapy-admin-api/internal/repository"
)

// UserService orchestrates user management use cases.
type UserService interface {
	List(ctx context.Context, req dto.UserListRequest) (dto.ListResponse[dto.UserResponse], error)
	Get(ctx context.Context, id uuid.UUID) (dto.UserResponse, error)
	Create(ctx context.Context, req dto.UserCreateRequest, actor Actor) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UserUpdateRequest, actor Actor) error
	Delete(ctx context.Context, id uuid.UUID, actor Actor) error
}

// UserServiceConfig carries the invitation settings.
type UserServiceConfig struct {
	FrontendURL string
	InviteTTL   time.Duration
}

type userService struct {
	repo      repository.UserRepository
	roles     repository.RoleRepository
	schools   repository.SchoolRepository
	mailer    mail.Dispatcher
	cfg       UserServiceConfig
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
	now       func() time.Time
}

// NewUserService constructs the user service. mailer may be nil, in which case no invitation is sent.
func NewUserService(repo repository.UserRepository, roles repository.RoleRepository, schools repository.SchoolRepository, mailer mail.Dispatcher, cfg UserServiceConfig, validator *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) UserService {
	if cfg.InviteTTL <= 0 {
		cfg.InviteTTL = 7 * 24 * time.Hour
	}
	return &userService{
		repo:      repo,
		roles:     roles,
		schools:   schools,
		mailer:    mailer,
		cfg:       cfg,
		validator: validator,
		activity:  activity,
		logger:    logger.With().Str("component", "user_service").Logger(),
		now:       time.Now,
	}
}

func (s *userService) List(ctx context.Context, req dto.UserListRequest) (dto.ListResponse[dto.UserResponse], error) {
	if err := validateStruct(s.validator, req); err != nil {
		return dto.ListResponse[dto.UserResponse]{}, err
	}

	filter := repository.UserFilter{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Status:   req.Status,
		RoleID:   optionalID(req.RoleID),
		SchoolID: optionalID(req.SchoolID),
		SortBy:   defaultString(req.SortBy, "createdAt"),
		SortDesc: sortDesc(req.ListQuery, "desc"),
		Page:     pageOf(req.ListQuery),
	}

	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.ListResponse[dto.UserResponse]{}, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, dto.NewUserResponse(user))
	}
	return dto.ListResponse[dto.UserResponse]{Data: responses, Pagination: dto.NewPagination(total, filter.Page.Size)}, nil
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (dto.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.UserResponse{}, storageError(apperror.ResourceUser, err)
	}
	return dto.NewUserResponse(user), nil
}

func (s *userService) Create(ctx context.Context, req dto.UserCreateRequest, actor Actor) (uuid.UUID, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return uuid.Nil, err
	}

	roleID, err := parseID("roleId", req.RoleID)
	if err != nil {
		return uuid.Nil, err
	}
	if err := ensureExists(ctx, s.roles.Exists, apperror.ResourceRole, roleID); err != nil {
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

	user := models.User{
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Status:    defaultString(req.Status, models.UserStatusInvited),
		RoleID:    roleID,
		SchoolID:  schoolID,
	}

	var (
		plainToken string
		invite     *models.UserToken
	)
	if user.Status == models.UserStatusInvited {
		plain, token, err := newOneTimeToken(models.TokenKindInvite, s.cfg.InviteTTL, s.now())
		if err != nil {
			return uuid.Nil, err
		}
		plainToken, invite = plain, &token
	}

	if err := s.repo.Create(ctx, &user, invite); err != nil {
		return uuid.Nil, storageError(apperror.ResourceUser, err)
	}

	if invite != nil && s.mailer != nil {
		message := mail.InviteMessage(s.cfg.FrontendURL, user.Email, user.FirstName, plainToken)
		if err := s.mailer.Dispatch(ctx, message); err != nil {
			observability.MailDispatched().WithLabelValues("invite", "error").Inc()
			s.logger.Warn().Err(err).Str("user_id", user.ID.String()).Msg("failed to dispatch invitation")
		} else {
			observability.MailDispatched().WithLabelValues("invite", "queued").Inc()
		}
	}

	recordActivity(ctx, s.activity, actor, VerbCreate, apperror.ResourceUser, user.ID, map[string]interface{}{"status": user.Status})
	return user.ID, nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, req dto.UserUpdateRequest, actor Actor) error {
	if err := validateStruct(s.validator, req); err != nil {
		return err
	}
	if err := ensureExists(ctx, s.repo.Exists, apperror.ResourceUser, id); err != nil {
		return err
	}

	changes := newChangeSet()
	if req.Email != nil {
		changes.set("email", "email", strings.ToLower(strings.TrimSpace(*req.Email)))
	}
	changes.setString("first_name", "firstName", req.FirstName)
	changes.setString("last_name", "lastName", req.LastName)
	changes.setString("status", "status", req.Status)
	if req.RoleID != nil {
		roleID, err := parseID("roleId", *req.RoleID)
		if err != nil {
			return err
		}
		if err := ensureExists(ctx, s.roles.Exists, apperror.ResourceRole, roleID); err != nil {
			return err
		}
		changes.setID("role_id", "roleId", &roleID)
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

	if err := s.repo.Update(ctx, id, changes.updates); err != nil {
		return storageError(apperror.ResourceUser, err)
	}

	recordActivity(ctx, s.activity, actor, VerbUpdate, apperror.ResourceUser, id, changes.metadata())
	return nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID, actor Actor) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return storageError(apperror.ResourceUser, err)
	}

	recordActivity(ctx, s.activity, actor, VerbDelete, apperror.ResourceUser, id, nil)
	return nil
}
