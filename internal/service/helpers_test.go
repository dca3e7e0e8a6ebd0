package service

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/therapy-admin-api/internal/apperror"
	"github.com/noah-isme/therapy-admin-api/internal/mail"
	"github.com/noah-isme/therapy-admin-api/internal/models"
	"github.com/noah-isme/therapy-admin-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

type stubActivityRecorder struct {
	mu      sync.Mutex
	entries []ActivityEntry
}

func (s *stubActivityRecorder) Record(ctx context.Context, entry ActivityEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
}

func (s *stubActivityRecorder) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	actions := make([]string, 0, len(s.entries))
	for _, entry := range s.entries {
		actions = append(actions, entry.Action)
	}
	return actions
}

func (s *stubActivityRecorder) last() ActivityEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		return ActivityEntry{}
	}
	return s.entries[len(s.entries)-1]
}

type captureDispatcher struct {
	mu       sync.Mutex
	messages []mail.Message
	err      error
}

func (d *captureDispatcher) Dispatch(ctx context.Context, message mail.Message) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.messages = append(d.messages, message)
	return nil
}

func (d *captureDispatcher) sent() []mail.Message {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]mail.Message(nil), d.messages...)
}

func seedTestSchool(t *testing.T, db *gorm.DB, name string) models.School {
	t.Helper()
	school := models.School{Name: name, City: "Austin", State: "TX", Status: models.SchoolStatusActive}
	require.NoError(t, db.Create(&school).Error)
	return school
}

func seedTestRole(t *testing.T, db *gorm.DB, name string, permissions ...string) models.Role {
	t.Helper()
	repo := repository.NewRoleRepository(db)
	perms, err := repo.EnsurePermissions(context.Background(), permissions)
	require.NoError(t, err)
	role, err := repo.EnsureRole(context.Background(), name, "", perms)
	require.NoError(t, err)
	return role
}

func seedTestProvider(t *testing.T, db *gorm.DB, firstName string) models.Provider {
	t.Helper()
	provider := models.Provider{
		FirstName:     firstName,
		LastName:      "Provider",
		Email:         firstName + "@providers.test",
		LicenseNumber: "LIC-" + firstName,
		ProviderType:  models.ProviderTypeIndividual,
		Status:        models.ProviderStatusActive,
	}
	require.NoError(t, db.Create(&provider).Error)
	return provider
}

func requireAppError(t *testing.T, err error, code string) *apperror.Error {
	t.Helper()
	require.Error(t, err)
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.Code)
	return appErr
}

// tokenFromMessage extracts the plaintext token from the action link in a mail body.
func tokenFromMessage(t *testing.T, message mail.Message) string {
	t.Helper()
	idx := strings.Index(message.Body, "?token=")
	require.GreaterOrEqual(t, idx, 0, "no action link in %q", message.Body)
	link := strings.Fields(message.Body[idx:])[0]
	values, err := url.ParseQuery(strings.TrimPrefix(link, "?"))
	require.NoError(t, err)
	token := values.Get("token")
	require.NotEmpty(t, token)
	return token
}

func strPtr(v string) *string {
	return &v
}
