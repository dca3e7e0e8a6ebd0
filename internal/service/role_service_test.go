package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/therapy-admin-api/internal/dto"
	"github.com/noah-isme/therapy-admin-api/internal/models"
	"github.com/noah-isme/therapy-admin-api/internal/repository"
)

func TestRoleListServedFromCache(t *testing.T) {
	db := setupServiceDB(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	seedTestRole(t, db, "Administrator", models.PermissionViewUsers, models.PermissionManageUsers)
	svc := NewRoleService(repository.NewRoleRepository(db), client, time.Minute, NewValidator(), testLogger())
	ctx := context.Background()

	first, err := svc.List(ctx, dto.RoleListRequest{})
	require.NoError(t, err)
	require.Len(t, first.Data, 1)
	require.ElementsMatch(t, []string{models.PermissionViewUsers, models.PermissionManageUsers}, first.Data[0].Permissions)
	require.Len(t, mr.Keys(), 1)

	seedTestRole(t, db, "Viewer", models.PermissionViewUsers)

	cached, err := svc.List(ctx, dto.RoleListRequest{})
	require.NoError(t, err)
	require.Len(t, cached.Data, 1)

	mr.FastForward(2 * time.Minute)
	fresh, err := svc.List(ctx, dto.RoleListRequest{})
	require.NoError(t, err)
	require.Len(t, fresh.Data, 2)
	require.Equal(t, "Administrator", fresh.Data[0].Name)
	require.Equal(t, int64(2), fresh.Pagination.Total)
}

func TestRoleListWithoutCacheAndBrokenCache(t *testing.T) {
	db := setupServiceDB(t)
	seedTestRole(t, db, "Viewer", models.PermissionViewSchools)
	ctx := context.Background()

	uncached := NewRoleService(repository.NewRoleRepository(db), nil, time.Minute, NewValidator(), testLogger())
	resp, err := uncached.List(ctx, dto.RoleListRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	broken := NewRoleService(repository.NewRoleRepository(db), client, time.Minute, NewValidator(), testLogger())
	resp, err = broken.List(ctx, dto.RoleListRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
}

func TestRoleGet(t *testing.T) {
	db := setupServiceDB(t)
	role := seedTestRole(t, db, "Viewer", models.PermissionViewSchools)
	svc := NewRoleService(repository.NewRoleRepository(db), nil, 0, NewValidator(), testLogger())

	resp, err := svc.Get(context.Background(), role.ID)
	require.NoError(t, err)
	require.Equal(t, "Viewer", resp.Name)
	require.Equal(t, []string{models.PermissionViewSchools}, resp.Permissions)

	_, err = svc.Get(context.Background(), uuid.New())
	requireAppError(t, err, "ROLE_NOT_FOUND")
}
