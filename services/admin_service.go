package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"digistore_server/database"
	"digistore_server/lib"
	"digistore_server/structs"
	"digistore_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/uptrace/bun"
)

type AdminService struct {
	logger       *gecho.Logger
	cfg          *structs.Config
	db           *database.DB
	cacheService *CacheService
}

func NewAdminService(logger *gecho.Logger, cfg *structs.Config, db *database.DB, cacheService *CacheService) *AdminService {
	return &AdminService{
		logger:       logger,
		cfg:          cfg,
		db:           db,
		cacheService: cacheService,
	}
}

// CodeAdminSelfDelete is returned when an admin tries to delete its own account.
const CodeAdminSelfDelete = "ADMIN_SELF_DELETE"

var ErrSuperAdminOnly = fmt.Errorf("%w: only a super admin can do this", lib.ErrForbidden)

func adminNotFound(id int64) error {
	return &lib.NotFoundError{Resource: "admin", Key: id, Message: "Admin tidak ditemukan"}
}

// authorizeChange stops a non super admin from reaching past its own
// capabilities: super admin accounts are off limits, and it can only grant
// permissions it holds itself. target is nil on create, req is nil on delete and restore.
func authorizeChange(actor, target *tables.Admin, req *structs.AdminRequest) error {
	if actor == nil {
		return lib.ErrForbidden
	}
	if actor.Role == structs.RoleSuperAdmin {
		return nil
	}
	if target != nil && target.Role == structs.RoleSuperAdmin {
		return ErrSuperAdminOnly
	}
	if req == nil {
		return nil
	}
	if req.Role == structs.RoleSuperAdmin {
		return ErrSuperAdminOnly
	}
	for _, p := range req.Permissions {
		if !structs.HasPermission(actor.Role, actor.Permissions, p) {
			return fmt.Errorf("%w: cannot grant %q", lib.ErrForbidden, p)
		}
	}
	return nil
}

// List returns every admin account, deleted ones included so they can be restored.
func (as *AdminService) List(ctx context.Context) ([]structs.AdminProfile, error) {
	admins, err := database.Query[tables.Admin](as.db).OrderBy("created_at", database.ASC).All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch admins: %w", err)
	}

	profiles := make([]structs.AdminProfile, 0, len(admins))
	for i := range admins {
		profiles = append(profiles, admins[i].Profile())
	}
	return profiles, nil
}

func (as *AdminService) Get(ctx context.Context, id int64) (*structs.AdminProfile, error) {
	admin, err := as.find(ctx, as.db, id)
	if err != nil {
		return nil, err
	}
	profile := admin.Profile()
	return &profile, nil
}

func (as *AdminService) find(ctx context.Context, db bun.IDB, id int64) (*tables.Admin, error) {
	admin, err := database.FindByID[tables.Admin](db, ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load admin: %w", err)
	}
	if admin == nil {
		return nil, adminNotFound(id)
	}
	return admin, nil
}

func normalizePermissions(role structs.Role, perms []structs.Permission) []structs.Permission {
	if role == structs.RoleSuperAdmin {
		return []structs.Permission{structs.PermissionAll}
	}
	seen := make(map[structs.Permission]bool, len(perms))
	out := make([]structs.Permission, 0, len(perms))
	for _, p := range perms {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// Create adds an admin account on behalf of actor.
func (as *AdminService) Create(ctx context.Context, actor *tables.Admin, req *structs.AdminRequest) (*structs.AdminProfile, error) {
	if err := authorizeChange(actor, nil, req); err != nil {
		as.logger.Warn("Admin create denied", gecho.Field("username", req.Username), gecho.Field("role", req.Role))
		return nil, err
	}
	return as.create(ctx, req)
}

func (as *AdminService) create(ctx context.Context, req *structs.AdminRequest) (*structs.AdminProfile, error) {
	if req.Password == "" {
		return nil, lib.NewValidationError(map[string]string{"password": "is required"})
	}

	hash, err := lib.HashPassword(req.Password, as.cfg.Auth.BcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	admin := &tables.Admin{
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: hash,
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		Permissions:  normalizePermissions(req.Role, req.Permissions),
		IsActive:     boolOr(req.IsActive, true),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := database.Create(as.db, ctx, admin); err != nil {
		return nil, lib.Conflict(lib.MapDBError(err), "Username sudah digunakan")
	}

	as.logger.Info("Admin created", gecho.Field("admin_id", admin.ID), gecho.Field("role", admin.Role))
	profile := admin.Profile()
	return &profile, nil
}

// Update replaces the account fields. The password only changes when one is given.
func (as *AdminService) Update(ctx context.Context, actor *tables.Admin, id int64, req *structs.AdminRequest) (*structs.AdminProfile, error) {
	admin, err := database.TransactionWithResult(ctx, as.db, func(ctx context.Context, tx bun.Tx) (*tables.Admin, error) {
		admin, err := as.find(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if err := authorizeChange(actor, admin, req); err != nil {
			as.logger.Warn("Admin update denied", gecho.Field("admin_id", id), gecho.Field("role", req.Role))
			return nil, err
		}

		admin.Username = strings.TrimSpace(req.Username)
		admin.Name = req.Name
		admin.Email = req.Email
		admin.Role = req.Role
		admin.Permissions = normalizePermissions(req.Role, req.Permissions)
		admin.IsActive = boolOr(req.IsActive, admin.IsActive)
		admin.UpdatedAt = time.Now().UTC()

		if req.Password != "" {
			hash, err := lib.HashPassword(req.Password, as.cfg.Auth.BcryptCost)
			if err != nil {
				return nil, err
			}
			admin.PasswordHash = hash
		}

		if _, err := database.Query[tables.Admin](tx).Where("id", id).Update(ctx, admin); err != nil {
			return nil, lib.Conflict(lib.MapDBError(err), "Username sudah digunakan")
		}
		return admin, nil
	})
	if err != nil {
		return nil, err
	}

	as.invalidate(ctx, id)
	as.logger.Info("Admin updated", gecho.Field("admin_id", id), gecho.Field("by", actor.ID))
	profile := admin.Profile()
	return &profile, nil
}

// Delete soft-deletes the account. An admin cannot delete itself.
func (as *AdminService) Delete(ctx context.Context, actor *tables.Admin, id int64) error {
	if actor != nil && actor.ID == id {
		return lib.NewRuleError(CodeAdminSelfDelete, "Tidak dapat menghapus akun sendiri")
	}

	target, err := as.find(ctx, as.db, id)
	if err != nil {
		return err
	}
	if err := authorizeChange(actor, target, nil); err != nil {
		return err
	}

	n, err := database.SoftDelete[tables.Admin](as.db, ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete admin: %w", err)
	}
	if n == 0 {
		return adminNotFound(id)
	}

	as.invalidate(ctx, id)
	as.logger.Info("Admin deleted", gecho.Field("admin_id", id), gecho.Field("by", actor.ID))
	return nil
}

func (as *AdminService) Restore(ctx context.Context, actor *tables.Admin, id int64) (*structs.AdminProfile, error) {
	target, err := as.find(ctx, as.db, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeChange(actor, target, nil); err != nil {
		return nil, err
	}

	n, err := database.Restore[tables.Admin](as.db, ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to restore admin: %w", err)
	}
	if n == 0 {
		return nil, adminNotFound(id)
	}

	as.invalidate(ctx, id)
	as.logger.Info("Admin restored", gecho.Field("admin_id", id))
	return as.Get(ctx, id)
}

// EnsureSuperAdmin creates the super admin account unless the username exists.
func (as *AdminService) EnsureSuperAdmin(ctx context.Context, username, password string) (bool, error) {
	exists, err := database.Query[tables.Admin](as.db).Where("username", username).Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check admin: %w", err)
	}
	if exists {
		return false, nil
	}

	_, err = as.create(ctx, &structs.AdminRequest{
		Username: username,
		Password: password,
		Name:     "Super Admin",
		Role:     structs.RoleSuperAdmin,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (as *AdminService) invalidate(ctx context.Context, id int64) {
	if err := as.cacheService.InvalidateAdmin(ctx, id); err != nil {
		as.logger.Warn("Failed to invalidate admin cache", gecho.Field("error", err), gecho.Field("admin_id", id))
	}
}
