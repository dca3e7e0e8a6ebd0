package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/therapy-admin-api/internal/apperror"
	"github.com/noah-isme/therapy-admin-api/internal/dto"
	"github.com/noah-isme/therapy-admin-api/internal/mail"
	"github.com/noah-isme/therapy-admin-api/internal/models"
	"github.com/noah-isme/therapy-admin-api/internal/observability"
	"github.com/noah-isme/therapy-admin-api/internal/repository"
)

// Authenticator resolves a bearer token into the active user it was issued for.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.User, error)
}

// AuthService covers sign-in, password reset and invitation acceptance.
type AuthService interface {
	Authenticator
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	StartPasswordReset(ctx context.Context, req dto.StartPasswordResetRequest) error
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error
	AcceptInvite(ctx context.Context, req dto.AcceptInviteRequest) error
}

// AuthConfig carries token signing and reset link settings.
type AuthConfig struct {
	Secret        string
	TokenTTL      time.Duration
	ResetTokenTTL time.Duration
	FrontendURL   string
}

type authService struct {
	users     repository.UserRepository
	mailer    mail.Dispatcher
	cfg       AuthConfig
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// NewAuthService constructs the auth service. mailer may be nil.
func NewAuthService(users repository.UserRepository, mailer mail.Dispatcher, cfg AuthConfig, validator *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.ResetTokenTTL <= 0 {
		cfg.ResetTokenTTL = time.Hour
	}
	return &authService{
		users:     users,
		mailer:    mailer,
		cfg:       cfg,
		validator: validator,
		activity:  activity,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/therapy-admin-api/internal/service/auth"),
		now:       time.Now,
	}
}

func (s *authService) Authenticate(ctx context.Context, tokenString string) (models.User, error) {
	ctx, span := s.tracer.Start(ctx, "auth.authenticate")
	defer span.End()

	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return models.User{}, apperror.Unauthenticated()
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.cfg.Secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		span.SetStatus(codes.Error, "invalid token")
		return models.User{}, apperror.Unauthenticated()
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.User{}, apperror.Unauthenticated()
	}
	email, _ := claims["email"].(string)
	if strings.TrimSpace(email) == "" {
		span.SetStatus(codes.Error, "missing email claim")
		return models.User{}, apperror.Unauthenticated()
	}

	user, err := s.users.FindActiveByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			span.SetStatus(codes.Error, "user not active")
			return models.User{}, apperror.Unauthenticated()
		}
		span.RecordError(err)
		return models.User{}, err
	}

	withPermissions(&user)
	span.SetAttributes(attribute.String("user.id", user.ID.String()))
	return user, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	ctx, span := s.tracer.Start(ctx, "auth.login")
	defer span.End()

	if err := validateStruct(s.validator, req); err != nil {
		return dto.LoginResponse{}, err
	}

	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if repository.IsNotFound(err) {
			observability.AuthAttempts().WithLabelValues("login", "invalid_credentials").Inc()
			return dto.LoginResponse{}, apperror.InvalidCredentials()
		}
		span.RecordError(err)
		return dto.LoginResponse{}, err
	}

	if user.PasswordHash == "" || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		observability.AuthAttempts().WithLabelValues("login", "invalid_credentials").Inc()
		s.logger.Info().Str("email", maskEmail(user.Email)).Msg("login rejected")
		return dto.LoginResponse{}, apperror.InvalidCredentials()
	}
	if user.Status != models.UserStatusActive {
		observability.AuthAttempts().WithLabelValues("login", "inactive").Inc()
		return dto.LoginResponse{}, apperror.InactiveAccount()
	}

	signed, err := s.issueToken(user)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "sign failed")
		return dto.LoginResponse{}, err
	}

	withPermissions(&user)
	observability.AuthAttempts().WithLabelValues("login", "success").Inc()
	s.record(ctx, Actor{Email: user.Email}, ActionLogin, user.ID)

	return dto.LoginResponse{Data: dto.NewUserResponse(user), Token: signed}, nil
}

// StartPasswordReset mails a reset link when an active account exists. The outcome is never
// reported to the caller.
func (s *authService) StartPasswordReset(ctx context.Context, req dto.StartPasswordResetRequest) error {
	if err := validateStruct(s.validator, req); err != nil {
		return err
	}

	user, err := s.users.FindActiveByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if !repository.IsNotFound(err) {
			s.logger.Error().Err(err).Msg("failed to look up account for password reset")
		}
		observability.AuthAttempts().WithLabelValues("reset_start", "unknown").Inc()
		return nil
	}

	plain, token, err := newOneTimeToken(models.TokenKindReset, s.cfg.ResetTokenTTL, s.now())
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to generate reset token")
		return nil
	}
	token.UserID = user.ID
	if err := s.users.CreateToken(ctx, &token); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to store reset token")
		return nil
	}

	observability.AuthAttempts().WithLabelValues("reset_start", "issued").Inc()
	if s.mailer == nil {
		return nil
	}
	if err := s.mailer.Dispatch(ctx, mail.PasswordResetMessage(s.cfg.FrontendURL, user.Email, plain)); err != nil {
		observability.MailDispatched().WithLabelValues("password_reset", "error").Inc()
		s.logger.Warn().Err(err).Str("email", maskEmail(user.Email)).Msg("failed to dispatch password reset")
		return nil
	}
	observability.MailDispatched().WithLabelValues("password_reset", "queued").Inc()
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	if err := validateStruct(s.validator, req); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	userID, err := s.consume(ctx, "reset", models.TokenKindReset, req.Token, map[string]interface{}{
		"password_hash": string(hash),
	})
	if err != nil {
		return err
	}

	s.record(ctx, Actor{UserID: userID}, ActionResetPassword, userID)
	return nil
}

func (s *authService) AcceptInvite(ctx context.Context, req dto.AcceptInviteRequest) error {
	if err := validateStruct(s.validator, req); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	userID, err := s.consume(ctx, "invite", models.TokenKindInvite, req.Token, map[string]interface{}{
		"password_hash": string(hash),
		"status":        models.UserStatusActive,
	})
	if err != nil {
		return err
	}

	s.record(ctx, Actor{UserID: userID}, ActionAcceptInvite, userID)
	return nil
}

// consume validates a one-time token of kind and applies updates to its user.
func (s *authService) consume(ctx context.Context, flow, kind, plain string, updates map[string]interface{}) (uuid.UUID, error) {
	ctx, span := s.tracer.Start(ctx, "auth."+flow)
	defer span.End()

	token, err := s.users.FindToken(ctx, kind, hashToken(strings.TrimSpace(plain)))
	if err != nil {
		if repository.IsNotFound(err) {
			observability.AuthAttempts().WithLabelValues(flow, "invalid_token").Inc()
			return uuid.Nil, apperror.InvalidResetToken()
		}
		span.RecordError(err)
		return uuid.Nil, err
	}
	if token.UsedAt != nil {
		observability.AuthAttempts().WithLabelValues(flow, "invalid_token").Inc()
		return uuid.Nil, apperror.InvalidResetToken()
	}
	if !s.now().Before(token.ExpiresAt) {
		observability.AuthAttempts().WithLabelValues(flow, "expired").Inc()
		return uuid.Nil, apperror.ResetTokenExpired()
	}

	if err := s.users.ConsumeToken(ctx, token, updates); err != nil {
		if repository.IsNotFound(err) {
			observability.AuthAttempts().WithLabelValues(flow, "invalid_token").Inc()
			return uuid.Nil, apperror.InvalidResetToken()
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "consume failed")
		return uuid.Nil, err
	}

	observability.AuthAttempts().WithLabelValues(flow, "success").Inc()
	span.SetAttributes(attribute.String("user.id", token.UserID.String()))
	return token.UserID, nil
}

func (s *authService) issueToken(user models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *authService) record(ctx context.Context, actor Actor, action string, subject uuid.UUID) {
	if s.activity == nil {
		return
	}
	s.activity.Record(ctx, ActivityEntry{
		Actor:      actor,
		Action:     action,
		EntityType: apperror.ResourceUser,
		SubjectID:  &subject,
	})
}

func withPermissions(user *models.User) {
	if user.Role != nil {
		user.Permissions = models.NewPermissionSet(user.Role.Permissions)
	}
}

func maskEmail(email string) string {
	email = strings.TrimSpace(strings.ToLower(email))
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return "***"
	}
	if len(local) <= 2 {
		return local[:1] + "***@" + domain
	}
	return local[:1] + "***" + local[len(local)-1:] + "@" + domain
}
