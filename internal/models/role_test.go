package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHasPermissionChecksMembership(t *testing.T) {
	user := &User{Permissions: NewPermissionSet([]Permission{{Name: PermissionViewUsers}, {Name: PermissionManageUsers}})}

	require.True(t, HasPermission(user, PermissionManageUsers))
	require.False(t, HasPermission(user, PermissionManageInvoices))
	require.False(t, HasPermission(nil, PermissionViewUsers))
	require.False(t, HasPermission(&User{}, PermissionViewUsers))
}

func TestPermissionSetNames(t *testing.T) {
	set := NewPermissionSet([]Permission{{Name: PermissionViewReports}, {Name: PermissionViewReports}})
	require.Equal(t, []string{PermissionViewReports}, set.Names())
}
