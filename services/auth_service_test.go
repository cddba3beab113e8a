package services

import (
	"context"
	"testing"

	"digistore_server/database"
	"digistore_server/lib"
	"digistore_server/structs"
	"digistore_server/structs/tables"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSuperAdminIsIdempotent(t *testing.T) {
	sm := newTestServices(t)
	ctx := context.Background()

	created, err := sm.AdminService.EnsureSuperAdmin(ctx, "admin", "password123")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = sm.AdminService.EnsureSuperAdmin(ctx, "admin", "other")
	require.NoError(t, err)
	assert.False(t, created)

	admins, err := sm.AdminService.List(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, structs.RoleSuperAdmin, admins[0].Role)
	assert.Equal(t, []structs.Permission{structs.PermissionAll}, admins[0].Permissions)
}

func TestLoginAndAuthenticate(t *testing.T) {
	sm := newTestServices(t)
	ctx := context.Background()

	_, err := sm.AdminService.EnsureSuperAdmin(ctx, "admin", "password123")
	require.NoError(t, err)

	_, _, err = sm.AuthService.Login(ctx, &structs.LoginRequest{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, lib.ErrInvalidCredentials)

	_, _, err = sm.AuthService.Login(ctx, &structs.LoginRequest{Username: "ghost", Password: "password123"})
	assert.ErrorIs(t, err, lib.ErrInvalidCredentials)

	resp, claims, err := sm.AuthService.Login(ctx, &structs.LoginRequest{Username: " admin ", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin", resp.Admin.Username)
	assert.Equal(t, structs.AdminStatusActive, resp.Admin.Status)

	gotClaims, admin, err := sm.AuthService.Authenticate(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, claims.Jti, gotClaims.Jti)
	assert.Equal(t, resp.Admin.ID, admin.ID)

	require.NoError(t, sm.AuthService.Logout(ctx, claims))
	_, _, err = sm.AuthService.Authenticate(ctx, resp.Token)
	assert.ErrorIs(t, err, lib.ErrInvalidToken)
}

func TestSuspendedAdminCannotLogIn(t *testing.T) {
	sm := newTestServices(t)
	ctx := context.Background()

	staff, err := sm.AdminService.Create(ctx, superActor, &structs.AdminRequest{
		Username:    "staff",
		Password:    "rahasia1",
		Name:        "Staff",
		Role:        structs.RoleAdmin,
		Permissions: []structs.Permission{structs.PermissionOrders},
	})
	require.NoError(t, err)

	resp, _, err := sm.AuthService.Login(ctx, &structs.LoginRequest{Username: "staff", Password: "rahasia1"})
	require.NoError(t, err)

	_, err = sm.AdminService.Update(ctx, superActor, staff.ID, &structs.AdminRequest{
		Username:    "staff",
		Name:        "Staff",
		Role:        structs.RoleAdmin,
		Permissions: []structs.Permission{structs.PermissionOrders},
		IsActive:    ptr(false),
	})
	require.NoError(t, err)

	_, _, err = sm.AuthService.Login(ctx, &structs.LoginRequest{Username: "staff", Password: "rahasia1"})
	assert.ErrorIs(t, err, lib.ErrForbidden)

	_, _, err = sm.AuthService.Authenticate(ctx, resp.Token)
	assert.ErrorIs(t, err, lib.ErrInvalidToken)
}

func TestUpdateCredentials(t *testing.T) {
	sm := newTestServices(t)
	ctx := context.Background()

	_, err := sm.AdminService.EnsureSuperAdmin(ctx, "admin", "password123")
	require.NoError(t, err)
	other, err := sm.AdminService.Create(ctx, superActor, &structs.AdminRequest{Username: "kasir", Password: "rahasia1", Name: "Kasir", Role: structs.RoleAdmin})
	require.NoError(t, err)

	resp, _, err := sm.AuthService.Login(ctx, &structs.LoginRequest{Username: "admin", Password: "password123"})
	require.NoError(t, err)
	id := resp.Admin.ID

	_, _, err = sm.AuthService.UpdateCredentials(ctx, id, &structs.CredentialsRequest{CurrentPassword: "nope", NewPassword: "baru1234"})
	assert.ErrorIs(t, err, lib.ErrInvalidCredentials)

	_, _, err = sm.AuthService.UpdateCredentials(ctx, id, &structs.CredentialsRequest{CurrentPassword: "password123", Username: other.Username})
	assert.ErrorIs(t, err, lib.ErrConflict)

	updated, _, err := sm.AuthService.UpdateCredentials(ctx, id, &structs.CredentialsRequest{
		CurrentPassword: "password123",
		Username:        "pemilik",
		NewPassword:     "baru1234",
	})
	require.NoError(t, err)
	assert.Equal(t, "pemilik", updated.Admin.Username)
	assert.NotEmpty(t, updated.Token)

	_, _, err = sm.AuthService.Login(ctx, &structs.LoginRequest{Username: "admin", Password: "password123"})
	assert.ErrorIs(t, err, lib.ErrInvalidCredentials)

	_, _, err = sm.AuthService.Login(ctx, &structs.LoginRequest{Username: "pemilik", Password: "baru1234"})
	assert.NoError(t, err)
}

func TestAdminDeleteAndRestore(t *testing.T) {
	sm := newTestServices(t)
	ctx := context.Background()

	owner, err := sm.AdminService.Create(ctx, superActor, &structs.AdminRequest{Username: "owner", Password: "rahasia1", Name: "Owner", Role: structs.RoleSuperAdmin})
	require.NoError(t, err)
	staff, err := sm.AdminService.Create(ctx, superActor, &structs.AdminRequest{
		Username:    "staff",
		Password:    "rahasia1",
		Name:        "Staff",
		Role:        structs.RoleAdmin,
		Permissions: []structs.Permission{structs.PermissionOrders, structs.PermissionOrders, structs.PermissionProducts},
	})
	require.NoError(t, err)
	assert.Equal(t, []structs.Permission{structs.PermissionOrders, structs.PermissionProducts}, staff.Permissions)

	_, err = sm.AdminService.Create(ctx, superActor, &structs.AdminRequest{Username: "nopass", Name: "No Pass", Role: structs.RoleAdmin})
	var ve *lib.ValidationError
	assert.ErrorAs(t, err, &ve)

	ownerActor := &tables.Admin{ID: owner.ID, Role: structs.RoleSuperAdmin}
	err = sm.AdminService.Delete(ctx, ownerActor, owner.ID)
	assert.Equal(t, CodeAdminSelfDelete, ruleCode(t, err))

	require.NoError(t, sm.AdminService.Delete(ctx, ownerActor, staff.ID))
	assert.ErrorIs(t, sm.AdminService.Delete(ctx, ownerActor, staff.ID), lib.ErrNotFound)

	deleted, err := sm.AdminService.Get(ctx, staff.ID)
	require.NoError(t, err)
	assert.Equal(t, structs.AdminStatusDeleted, deleted.Status)

	_, _, err = sm.AuthService.Login(ctx, &structs.LoginRequest{Username: "staff", Password: "rahasia1"})
	assert.ErrorIs(t, err, lib.ErrInvalidCredentials)

	restored, err := sm.AdminService.Restore(ctx, ownerActor, staff.ID)
	require.NoError(t, err)
	assert.Equal(t, structs.AdminStatusActive, restored.Status)
}

func TestAdminCannotEscalatePrivileges(t *testing.T) {
	sm := newTestServices(t)
	ctx := context.Background()

	_, err := sm.AdminService.EnsureSuperAdmin(ctx, "owner", "password123")
	require.NoError(t, err)
	owner, err := database.Query[tables.Admin](sm.AdminService.db).Where("username", "owner").First(ctx)
	require.NoError(t, err)

	managerProfile, err := sm.AdminService.Create(ctx, superActor, &structs.AdminRequest{
		Username:    "manager",
		Password:    "rahasia1",
		Name:        "Manager",
		Role:        structs.RoleAdmin,
		Permissions: []structs.Permission{structs.PermissionAdminUsers, structs.PermissionOrders},
	})
	require.NoError(t, err)
	manager := &tables.Admin{
		ID:          managerProfile.ID,
		Role:        structs.RoleAdmin,
		Permissions: managerProfile.Permissions,
	}

	_, err = sm.AdminService.Create(ctx, manager, &structs.AdminRequest{
		Username: "boss", Password: "rahasia1", Name: "Boss", Role: structs.RoleSuperAdmin,
	})
	assert.ErrorIs(t, err, lib.ErrForbidden)

	_, err = sm.AdminService.Create(ctx, manager, &structs.AdminRequest{
		Username: "wide", Password: "rahasia1", Name: "Wide", Role: structs.RoleAdmin,
		Permissions: []structs.Permission{structs.PermissionAll},
	})
	assert.ErrorIs(t, err, lib.ErrForbidden)

	_, err = sm.AdminService.Update(ctx, manager, manager.ID, &structs.AdminRequest{
		Username: "manager", Name: "Manager", Role: structs.RoleSuperAdmin,
	})
	assert.ErrorIs(t, err, lib.ErrForbidden)

	_, err = sm.AdminService.Update(ctx, manager, owner.ID, &structs.AdminRequest{
		Username: "owner", Name: "Owner", Role: structs.RoleAdmin, IsActive: ptr(false),
	})
	assert.ErrorIs(t, err, lib.ErrForbidden)
	assert.ErrorIs(t, sm.AdminService.Delete(ctx, manager, owner.ID), lib.ErrForbidden)

	stored, err := sm.AdminService.Get(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, structs.RoleSuperAdmin, stored.Role)
	assert.Equal(t, structs.AdminStatusActive, stored.Status)

	count, err := database.Query[tables.Admin](sm.AdminService.db).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	kasir, err := sm.AdminService.Create(ctx, manager, &structs.AdminRequest{
		Username: "kasir", Password: "rahasia1", Name: "Kasir", Role: structs.RoleAdmin,
		Permissions: []structs.Permission{structs.PermissionOrders},
	})
	require.NoError(t, err)
	assert.Equal(t, []structs.Permission{structs.PermissionOrders}, kasir.Permissions)
	require.NoError(t, sm.AdminService.Delete(ctx, manager, kasir.ID))
}
