package tables

import (
	"digistore_server/structs"
	"time"

	"github.com/uptrace/bun"
)

type Admin struct {
	bun.BaseModel `bun:"table:admins,alias:adm"`
	ID            int64                `bun:"id,pk,autoincrement" json:"id"`
	Username      string               `bun:"username,notnull,unique" json:"username"`
	PasswordHash  string               `bun:"password_hash,notnull" json:"-"`
	Name          string               `bun:"name,notnull" json:"name"`
	Email         *string              `bun:"email" json:"email,omitempty"`
	Role          structs.Role         `bun:"role,notnull" json:"role"`
	Permissions   []structs.Permission `bun:"permissions" json:"permissions"`
	IsActive      bool                 `bun:"is_active,notnull" json:"isActive"`
	DeletedAt     *time.Time           `bun:"deleted_at" json:"deletedAt,omitempty"`
	CreatedAt     time.Time            `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt     time.Time            `bun:"updated_at,notnull" json:"updatedAt"`
}

func (a *Admin) Status() structs.AdminStatus {
	switch {
	case a.DeletedAt != nil:
		return structs.AdminStatusDeleted
	case !a.IsActive:
		return structs.AdminStatusSuspended
	default:
		return structs.AdminStatusActive
	}
}

// Can reports whether the admin holds the given capability.
func (a *Admin) Can(p structs.Permission) bool {
	return structs.HasPermission(a.Role, a.Permissions, p)
}

func (a *Admin) Profile() structs.AdminProfile {
	perms := a.Permissions
	if perms == nil {
		perms = []structs.Permission{}
	}
	return structs.AdminProfile{
		ID:          a.ID,
		Username:    a.Username,
		Name:        a.Name,
		Email:       a.Email,
		Role:        a.Role,
		Permissions: perms,
		Status:      a.Status(),
	}
}
