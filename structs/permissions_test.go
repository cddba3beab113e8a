package structs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		granted  []Permission
		required Permission
		want     bool
	}{
		{"super admin without grants", RoleSuperAdmin, nil, PermissionOrders, true},
		{"wildcard grant", RoleAdmin, []Permission{PermissionAll}, PermissionSettings, true},
		{"exact grant", RoleAdmin, []Permission{PermissionProducts, PermissionOrders}, PermissionOrders, true},
		{"missing grant", RoleAdmin, []Permission{PermissionProducts}, PermissionAdminUsers, false},
		{"no grants", RoleAdmin, nil, PermissionProducts, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasPermission(tt.role, tt.granted, tt.required))
		})
	}
}

func TestPermissionValid(t *testing.T) {
	for _, p := range AllPermissions {
		assert.True(t, p.Valid(), p)
	}
	assert.True(t, PermissionAll.Valid())
	assert.False(t, Permission("billing").Valid())
}
