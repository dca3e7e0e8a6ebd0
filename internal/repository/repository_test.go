package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/therapy-admin-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func seedSchool(t *testing.T, db *gorm.DB, name string) models.School {
	t.Helper()
	school := models.School{Name: name, Status: models.SchoolStatusActive}
	require.NoError(t, db.Create(&school).Error)
	return school
}

func seedRole(t *testing.T, db *gorm.DB, name string, permissions ...string) models.Role {
	t.Helper()
	repo := NewRoleRepository(db)
	perms, err := repo.EnsurePermissions(context.Background(), permissions)
	require.NoError(t, err)
	role, err := repo.EnsureRole(context.Background(), name, "", perms)
	require.NoError(t, err)
	return role
}

func TestContainsFilterTreatsWildcardsLiterally(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSchoolRepository(db)
	ctx := context.Background()

	seedSchool(t, db, "A_1 Academy")
	seedSchool(t, db, "AB1 Academy")
	seedSchool(t, db, "100% Charter")
	seedSchool(t, db, "1000 Oaks")

	schools, total, err := repo.List(ctx, SchoolFilter{Name: "a_1"})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "A_1 Academy", schools[0].Name)

	schools, total, err = repo.List(ctx, SchoolFilter{Name: "0%"})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "100% Charter", schools[0].Name)
}

func TestUpdateActiveOnlyTouchesGivenColumns(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSchoolRepository(db)
	ctx := context.Background()

	school := models.School{Name: "Lincoln", City: "Austin", State: "TX", Status: models.SchoolStatusActive}
	require.NoError(t, repo.Create(ctx, &school))

	require.NoError(t, repo.Update(ctx, school.ID, map[string]interface{}{"city": "Dallas"}))

	stored, err := repo.GetByID(ctx, school.ID)
	require.NoError(t, err)
	require.Equal(t, "Dallas", stored.City)
	require.Equal(t, "Lincoln", stored.Name)
	require.Equal(t, "TX", stored.State)
	require.Equal(t, models.SchoolStatusActive, stored.Status)
}

func TestUpdateActiveReportsMissingRows(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSchoolRepository(db)
	ctx := context.Background()

	err := repo.Update(ctx, uuid.New(), map[string]interface{}{"city": "Dallas"})
	require.True(t, IsNotFound(err))

	err = repo.Update(ctx, uuid.New(), map[string]interface{}{})
	require.True(t, IsNotFound(err))
}

func TestSoftDeleteKeepsRowAndHidesIt(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSchoolRepository(db)
	ctx := context.Background()

	school := seedSchool(t, db, "Roosevelt")

	require.NoError(t, repo.SoftDelete(ctx, school.ID))
	require.True(t, IsNotFound(repo.SoftDelete(ctx, school.ID)))

	_, err := repo.GetByID(ctx, school.ID)
	require.True(t, IsNotFound(err))

	schools, total, err := repo.List(ctx, SchoolFilter{Page: Page{Size: 10}})
	require.NoError(t, err)
	require.Zero(t, total)
	require.Empty(t, schools)

	var raw models.School
	require.NoError(t, db.Unscoped().Where("id = ?", school.ID).First(&raw).Error)
	require.True(t, raw.DeletedAt.Valid)

	require.True(t, IsNotFound(repo.Update(ctx, school.ID, map[string]interface{}{"name": "Back"})))
}

func TestListPaginatesWithoutOverlap(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSchoolRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		seedSchool(t, db, fmt.Sprintf("School %d", i))
	}

	first, total, err := repo.List(ctx, SchoolFilter{Page: Page{Number: 1, Size: 2}})
	require.NoError(t, err)
	require.Equal(t, int64(5), total)
	require.Len(t, first, 2)

	second, _, err := repo.List(ctx, SchoolFilter{Page: Page{Number: 2, Size: 2}})
	require.NoError(t, err)
	require.Len(t, second, 2)

	last, _, err := repo.List(ctx, SchoolFilter{Page: Page{Number: 3, Size: 2}})
	require.NoError(t, err)
	require.Len(t, last, 1)

	seen := map[uuid.UUID]bool{}
	for _, page := range [][]models.School{first, second, last} {
		for _, school := range page {
			require.False(t, seen[school.ID])
			seen[school.ID] = true
		}
	}
	require.Equal(t, "School 0", first[0].Name)
}

func TestUserListSortsBySchoolThroughJoin(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	role := seedRole(t, db, "Staff", models.PermissionViewUsers)
	zeta := seedSchool(t, db, "Zeta Elementary")
	alpha := seedSchool(t, db, "Alpha Middle")

	for _, u := range []struct {
		email  string
		school uuid.UUID
	}{{"z@example.com", zeta.ID}, {"a@example.com", alpha.ID}} {
		schoolID := u.school
		user := models.User{Email: u.email, FirstName: "F", LastName: "L", Status: models.UserStatusActive, RoleID: role.ID, SchoolID: &schoolID}
		require.NoError(t, repo.Create(ctx, &user, nil))
	}

	users, total, err := repo.List(ctx, UserFilter{SortBy: "school", Page: Page{Size: 10}})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Equal(t, "a@example.com", users[0].Email)
	require.NotNil(t, users[0].School)
	require.Equal(t, "Alpha Middle", users[0].School.Name)

	users, _, err = repo.List(ctx, UserFilter{SortBy: "school", SortDesc: true, Page: Page{Size: 10}})
	require.NoError(t, err)
	require.Equal(t, "z@example.com", users[0].Email)

	users, total, err = repo.List(ctx, UserFilter{Email: "Z@EXAMPLE", Page: Page{Size: 10}})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "z@example.com", users[0].Email)
}

func TestUserCreateRejectsDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	role := seedRole(t, db, "Staff")

	first := models.User{Email: "dup@example.com", FirstName: "A", LastName: "B", Status: models.UserStatusActive, RoleID: role.ID}
	require.NoError(t, repo.Create(ctx, &first, nil))

	second := models.User{Email: "dup@example.com", FirstName: "C", LastName: "D", Status: models.UserStatusActive, RoleID: role.ID}
	err := repo.Create(ctx, &second, nil)
	require.Error(t, err)
	require.True(t, IsDuplicate(err))
}

func TestFindActiveByEmailLoadsPermissions(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	role := seedRole(t, db, "Admin", models.PermissionViewUsers, models.PermissionManageUsers)

	active := models.User{Email: "active@example.com", FirstName: "A", LastName: "B", Status: models.UserStatusActive, RoleID: role.ID}
	invited := models.User{Email: "invited@example.com", FirstName: "C", LastName: "D", Status: models.UserStatusInvited, RoleID: role.ID}
	require.NoError(t, repo.Create(ctx, &active, nil))
	require.NoError(t, repo.Create(ctx, &invited, nil))

	user, err := repo.FindActiveByEmail(ctx, "ACTIVE@example.com")
	require.NoError(t, err)
	require.NotNil(t, user.Role)
	require.Len(t, user.Role.Permissions, 2)

	_, err = repo.FindActiveByEmail(ctx, "invited@example.com")
	require.True(t, IsNotFound(err))
}

func TestConsumeTokenIsSingleUse(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	role := seedRole(t, db, "Staff")

	user := models.User{Email: "invitee@example.com", FirstName: "A", LastName: "B", Status: models.UserStatusInvited, RoleID: role.ID}
	invite := models.UserToken{Kind: models.TokenKindInvite, TokenHash: "hash", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, &user, &invite))
	require.Equal(t, user.ID, invite.UserID)

	token, err := repo.FindToken(ctx, models.TokenKindInvite, "hash")
	require.NoError(t, err)

	updates := map[string]interface{}{"status": models.UserStatusActive, "password_hash": "x"}
	require.NoError(t, repo.ConsumeToken(ctx, token, updates))
	require.True(t, IsNotFound(repo.ConsumeToken(ctx, token, updates)))

	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, models.UserStatusActive, stored.Status)
}

func TestProviderLinksAreAllOrNothing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProviderRepository(db)
	ctx := context.Background()

	provider := models.Provider{FirstName: "P", LastName: "Q", Email: "p@example.com", ProviderType: models.ProviderTypeIndividual, Status: models.ProviderStatusActive}
	require.NoError(t, repo.Create(ctx, &provider))

	first := models.Document{Name: "license.pdf", URL: "https://files/1", MimeType: "application/pdf", Size: 10}
	second := models.Document{Name: "w9.pdf", URL: "https://files/2", MimeType: "application/pdf", Size: 10}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	unknown := uuid.New()
	missing, err := repo.AddLinks(ctx, provider.ID, LinkDocuments, []uuid.UUID{first.ID, unknown})
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{unknown}, missing)

	links, err := repo.Links(ctx, provider.ID)
	require.NoError(t, err)
	require.Empty(t, links.Documents)

	missing, err = repo.AddLinks(ctx, provider.ID, LinkDocuments, []uuid.UUID{first.ID, second.ID})
	require.NoError(t, err)
	require.Empty(t, missing)

	missing, err = repo.AddLinks(ctx, provider.ID, LinkDocuments, []uuid.UUID{first.ID})
	require.NoError(t, err)
	require.Empty(t, missing)

	links, err = repo.Links(ctx, provider.ID)
	require.NoError(t, err)
	require.Len(t, links.Documents, 2)

	require.NoError(t, repo.RemoveLinks(ctx, provider.ID, LinkDocuments, []uuid.UUID{first.ID, uuid.New()}))
	links, err = repo.Links(ctx, provider.ID)
	require.NoError(t, err)
	require.Len(t, links.Documents, 1)
	require.Equal(t, second.ID, links.Documents[0].ID)

	require.NoError(t, repo.RemoveLinks(ctx, provider.ID, LinkDocuments, nil))
	links, err = repo.Links(ctx, provider.ID)
	require.NoError(t, err)
	require.Empty(t, links.Documents)
}

func TestProviderLinksSkipSoftDeletedTargets(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProviderRepository(db)
	contacts := NewContactRepository(db)
	ctx := context.Background()

	provider := models.Provider{FirstName: "P", LastName: "Q", Email: "p@example.com", ProviderType: models.ProviderTypeAgency, Status: models.ProviderStatusActive}
	require.NoError(t, repo.Create(ctx, &provider))

	contact := models.Contact{Name: "Office"}
	require.NoError(t, contacts.Create(ctx, &contact))
	require.NoError(t, contacts.SoftDelete(ctx, contact.ID))

	missing, err := repo.AddLinks(ctx, provider.ID, LinkContacts, []uuid.UUID{contact.ID})
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{contact.ID}, missing)
}

func TestTherapyServiceListFiltersByStartDateRange(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTherapyServiceRepository(db)
	ctx := context.Background()

	school := seedSchool(t, db, "Lincoln")
	student := models.Student{FirstName: "Sam", LastName: "Lee", Status: models.StudentStatusActive, SchoolID: school.ID}
	require.NoError(t, db.Create(&student).Error)
	provider := models.Provider{FirstName: "P", LastName: "Q", Email: "p@example.com", ProviderType: models.ProviderTypeIndividual, Status: models.ProviderStatusActive}
	require.NoError(t, db.Create(&provider).Error)

	january := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	march := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	for _, start := range []time.Time{january, march} {
		service := models.TherapyService{StudentID: student.ID, ProviderID: provider.ID, ServiceType: models.DisciplineSpeech, MinutesPerWeek: 30, StartDate: start, Status: models.TherapyServiceStatusActive}
		require.NoError(t, repo.Create(ctx, &service))
	}

	from := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	to := march
	services, total, err := repo.List(ctx, TherapyServiceFilter{StartDate: TimeRange{From: &from, To: &to}, Page: Page{Size: 10}})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.True(t, services[0].StartDate.Equal(march))
	require.NotNil(t, services[0].Student)
	require.Equal(t, "Sam", services[0].Student.FirstName)
}

func TestActivityLogListFiltersByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewActivityLogRepository(db)
	ctx := context.Background()

	actor := uuid.New()
	require.NoError(t, repo.Create(ctx, &models.ActivityLog{UserID: actor, Action: "CREATE_SCHOOL", EntityType: "school"}))
	require.NoError(t, repo.Create(ctx, &models.ActivityLog{UserID: uuid.New(), Action: "LOGIN", EntityType: "user"}))

	entries, total, err := repo.List(ctx, ActivityLogFilter{UserID: &actor, SortDesc: true, Page: Page{Size: 10}})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "CREATE_SCHOOL", entries[0].Action)
}
