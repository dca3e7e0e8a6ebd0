package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/therapy-admin-api/internal/dto"
	"github.com/noah-isme/therapy-admin-api/internal/models"
	"github.com/noah-isme/therapy-admin-api/internal/repository"
)

var (
	// ErrSeedDisabled indicates the seeding tools are disabled by configuration.
	ErrSeedDisabled = errors.New("seeding is disabled")
	// ErrSeedUnauthorized indicates the provided token is invalid.
	ErrSeedUnauthorized = errors.New("invalid seed token")
)

// Seeded role names.
const (
	RoleAdministrator = "Administrator"
	RoleViewer        = "Viewer"
)

// SeedConfig controls the bootstrap run.
type SeedConfig struct {
	Enabled       bool
	Token         string
	AdminEmail    string
	AdminPassword string
}

// SeedService bootstraps permissions, the built-in roles and the first administrator.
type SeedService interface {
	Seed(ctx context.Context, token string) (dto.SeedResult, error)
}

type seedService struct {
	roles  repository.RoleRepository
	users  repository.UserRepository
	cfg    SeedConfig
	logger zerolog.Logger
}

// NewSeedService constructs a seeding service.
func NewSeedService(roles repository.RoleRepository, users repository.UserRepository, cfg SeedConfig, logger zerolog.Logger) SeedService {
	return &seedService{
		roles:  roles,
		users:  users,
		cfg:    cfg,
		logger: logger.With().Str("component", "seed_service").Logger(),
	}
}

// Seed is idempotent: permissions and roles are upserted and an existing administrator is
// left untouched.
func (s *seedService) Seed(ctx context.Context, token string) (dto.SeedResult, error) {
	if !s.cfg.Enabled {
		return dto.SeedResult{}, ErrSeedDisabled
	}
	if !s.validateToken(token) {
		return dto.SeedResult{}, ErrSeedUnauthorized
	}

	permissions, err := s.roles.EnsurePermissions(ctx, models.AllPermissions)
	if err != nil {
		return dto.SeedResult{}, err
	}

	admin, err := s.roles.EnsureRole(ctx, RoleAdministrator, "Full access to every resource.", permissions)
	if err != nil {
		return dto.SeedResult{}, err
	}

	viewing := make([]models.Permission, 0, len(permissions))
	for _, permission := range permissions {
		if strings.HasPrefix(permission.Name, "VIEW_") {
			viewing = append(viewing, permission)
		}
	}
	if _, err := s.roles.EnsureRole(ctx, RoleViewer, "Read-only access.", viewing); err != nil {
		return dto.SeedResult{}, err
	}

	result := dto.SeedResult{Permissions: len(permissions), RoleID: admin.ID.String()}

	adminUser, err := s.ensureAdminUser(ctx, admin.ID)
	if err != nil {
		return dto.SeedResult{}, err
	}
	if adminUser != nil {
		result.AdminUserID = adminUser.ID.String()
	}

	s.logger.Info().Int("permissions", result.Permissions).Str("role_id", result.RoleID).Msg("bootstrap data seeded")
	return result, nil
}

func (s *seedService) ensureAdminUser(ctx context.Context, roleID uuid.UUID) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(s.cfg.AdminEmail))
	if email == "" || s.cfg.AdminPassword == "" {
		return nil, nil
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return &existing, nil
	}
	if !repository.IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Email:        email,
		FirstName:    "System",
		LastName:     "Administrator",
		Status:       models.UserStatusActive,
		PasswordHash: string(hash),
		RoleID:       roleID,
	}
	if err := s.users.Create(ctx, &user, nil); err != nil {
		return nil, err
	}
	s.logger.Info().Str("email", maskEmail(email)).Msg("administrator account created")
	return &user, nil
}

func (s *seedService) validateToken(token string) bool {
	expected := strings.TrimSpace(s.cfg.Token)
	if expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(strings.TrimSpace(token))) == 1
}
