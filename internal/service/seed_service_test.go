package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/therapy-admin-api/internal/models"
	"github.com/noah-isme/therapy-admin-api/internal/repository"
)

func TestSeedRequiresEnabledAndToken(t *testing.T) {
	db := setupServiceDB(t)
	ctx := context.Background()

	disabled := NewSeedService(repository.NewRoleRepository(db), repository.NewUserRepository(db), SeedConfig{Token: "secret"}, testLogger())
	_, err := disabled.Seed(ctx, "secret")
	require.ErrorIs(t, err, ErrSeedDisabled)

	enabled := NewSeedService(repository.NewRoleRepository(db), repository.NewUserRepository(db), SeedConfig{Enabled: true, Token: "secret"}, testLogger())
	_, err = enabled.Seed(ctx, "wrong")
	require.ErrorIs(t, err, ErrSeedUnauthorized)

	tokenless := NewSeedService(repository.NewRoleRepository(db), repository.NewUserRepository(db), SeedConfig{Enabled: true}, testLogger())
	_, err = tokenless.Seed(ctx, "")
	require.ErrorIs(t, err, ErrSeedUnauthorized)

	var count int64
	require.NoError(t, db.Model(&models.Permission{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestSeedIsIdempotent(t *testing.T) {
	db := setupServiceDB(t)
	users := repository.NewUserRepository(db)
	svc := NewSeedService(repository.NewRoleRepository(db), users, SeedConfig{
		Enabled:       true,
		Token:         "secret",
		AdminEmail:    "Admin@Example.com",
		AdminPassword: "change-me-now",
	}, testLogger())
	ctx := context.Background()

	first, err := svc.Seed(ctx, "secret")
	require.NoError(t, err)
	require.Equal(t, len(models.AllPermissions), first.Permissions)
	require.NotEmpty(t, first.AdminUserID)

	second, err := svc.Seed(ctx, " secret ")
	require.NoError(t, err)
	require.Equal(t, first.RoleID, second.RoleID)
	require.Equal(t, first.AdminUserID, second.AdminUserID)

	var permissions, roles, accounts int64
	require.NoError(t, db.Model(&models.Permission{}).Count(&permissions).Error)
	require.NoError(t, db.Model(&models.Role{}).Count(&roles).Error)
	require.NoError(t, db.Model(&models.User{}).Count(&accounts).Error)
	require.Equal(t, int64(len(models.AllPermissions)), permissions)
	require.Equal(t, int64(2), roles)
	require.Equal(t, int64(1), accounts)

	admin, err := users.FindActiveByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	require.NotNil(t, admin.Role)
	require.Equal(t, RoleAdministrator, admin.Role.Name)
	withPermissions(&admin)
	for _, permission := range models.AllPermissions {
		require.True(t, models.HasPermission(&admin, permission), permission)
	}

	var viewer models.Role
	require.NoError(t, db.Preload("Permissions").Where("name = ?", RoleViewer).First(&viewer).Error)
	for _, permission := range viewer.Permissions {
		require.Contains(t, permission.Name, "VIEW_")
	}
	require.NotEmpty(t, viewer.Permissions)
}
