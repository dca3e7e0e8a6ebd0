package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/noah-isme/therapy-admin-api/internal/dto"
	"github.com/noah-isme/therapy-admin-api/internal/models"
	"github.com/noah-isme/therapy-admin-api/internal/repository"
)

// Audit verbs combined with an entity type into actions such as CREATE_THERAPY_SERVICE.
const (
	VerbCreate = "CREATE"
	VerbUpdate = "UPDATE"
	VerbDelete = "DELETE"

	ActionLogin         = "LOGIN"
	ActionResetPassword = "RESET_PASSWORD"
	ActionAcceptInvite  = "ACCEPT_INVITE"
)

// Actor identifies who performs a mutation. Either a resolved user id or, before
// authentication completes, a bare email.
type Actor struct {
	UserID uuid.UUID
	Email  string
}

// ActorFromUser builds an actor from an authenticated user.
func ActorFromUser(user models.User) Actor {
	return Actor{UserID: user.ID, Email: user.Email}
}

// ActivityEntry captures the details required to persist an audit entry.
type ActivityEntry struct {
	Actor      Actor
	Action     string
	EntityType string
	SubjectID  *uuid.UUID
	Metadata   map[string]interface{}
}

// ActivityRecorder appends audit entries. Recording never fails the caller.
type ActivityRecorder interface {
	Record(ctx context.Context, entry ActivityEntry)
}

// ActivityService exposes methods to query and persist activity logs.
type ActivityService interface {
	ActivityRecorder
	List(ctx context.Context, req dto.ActivityLogListRequest) (dto.ListResponse[dto.ActivityLogResponse], error)
}

type activityService struct {
	repo      repository.ActivityLogRepository
	users     repository.UserRepository
	events    EventPublisher
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewActivityService constructs the activity log service. events may be nil.
func NewActivityService(repo repository.ActivityLogRepository, users repository.UserRepository, events EventPublisher, validator *validator.Validate, logger zerolog.Logger) ActivityService {
	return &activityService{
		repo:      repo,
		users:     users,
		events:    events,
		validator: validator,
		logger:    logger.With().Str("component", "activity_service").Logger(),
	}
}

// Action joins a verb and an entity type, e.g. Action(VerbCreate, "therapy service").
func Action(verb, entityType string) string {
	return verb + "_" + entityKey(entityType)
}

func entityKey(entityType string) string {
	return strings.ToUpper(strings.NewReplacer(" ", "_", "-", "_").Replace(strings.TrimSpace(entityType)))
}

func (s *activityService) Record(ctx context.Context, entry ActivityEntry) {
	userID, ok := s.resolveActor(ctx, entry.Actor)
	if !ok {
		s.logger.Warn().Str("action", entry.Action).Msg("activity actor could not be resolved")
		return
	}

	model := models.ActivityLog{
		UserID:     userID,
		Action:     strings.ToUpper(strings.TrimSpace(entry.Action)),
		EntityType: entityKey(entry.EntityType),
		SubjectID:  entry.SubjectID,
		Metadata:   sanitizeMetadata(entry.Metadata),
	}

	if err := s.repo.Create(ctx, &model); err != nil {
		s.logger.Warn().Err(err).Str("action", model.Action).Msg("failed to persist activity log")
		return
	}

	if s.events == nil {
		return
	}
	event := ActivityEvent{
		ID:         model.ID.String(),
		UserID:     model.UserID.String(),
		Action:     model.Action,
		EntityType: model.EntityType,
		CreatedAt:  model.CreatedAt,
	}
	if model.SubjectID != nil {
		event.SubjectID = model.SubjectID.String()
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn().Err(err).Str("action", model.Action).Msg("failed to publish activity event")
	}
}

func (s *activityService) resolveActor(ctx context.Context, actor Actor) (uuid.UUID, bool) {
	if actor.UserID != uuid.Nil {
		return actor.UserID, true
	}
	email := strings.TrimSpace(actor.Email)
	if email == "" || s.users == nil {
		return uuid.Nil, false
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !repository.IsNotFound(err) {
			s.logger.Warn().Err(err).Msg("failed to resolve activity actor")
		}
		return uuid.Nil, false
	}
	return user.ID, true
}

func (s *activityService) List(ctx context.Context, req dto.ActivityLogListRequest) (dto.ListResponse[dto.ActivityLogResponse], error) {
	if err := validateStruct(s.validator, req); err != nil {
		return dto.ListResponse[dto.ActivityLogResponse]{}, err
	}

	filter := repository.ActivityLogFilter{
		UserID:     optionalID(req.UserID),
		Action:     strings.ToUpper(strings.TrimSpace(req.Action)),
		EntityType: entityKey(req.EntityType),
		SubjectID:  optionalID(req.SubjectID),
		SortDesc:   sortDesc(req.ListQuery, "desc"),
		Page:       pageOf(req.ListQuery),
	}

	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.ListResponse[dto.ActivityLogResponse]{}, err
	}

	responses := make([]dto.ActivityLogResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, dto.NewActivityLogResponse(entry))
	}

	return dto.ListResponse[dto.ActivityLogResponse]{
		Data:       responses,
		Pagination: dto.NewPagination(total, filter.Page.Size),
	}, nil
}

func sanitizeMetadata(metadata map[string]interface{}) datatypes.JSONMap {
	if metadata == nil {
		return datatypes.JSONMap{}
	}

	sanitized := datatypes.JSONMap{}
	for key, value := range metadata {
		lower := strings.ToLower(key)
		if strings.Contains(lower, "password") || strings.Contains(lower, "token") {
			sanitized[key] = "***"
			continue
		}
		sanitized[key] = value
	}
	return sanitized
}

// recordActivity appends one entry for a mutation on subject. A nil recorder is ignored.
func recordActivity(ctx context.Context, activity ActivityRecorder, actor Actor, verb, entityType string, subject uuid.UUID, metadata map[string]interface{}) {
	if activity == nil {
		return
	}
	activity.Record(ctx, ActivityEntry{
		Actor:      actor,
		Action:     Action(verb, entityType),
		EntityType: entityType,
		SubjectID:  &subject,
		Metadata:   metadata,
	})
}
