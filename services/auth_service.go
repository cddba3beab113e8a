package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"digistore_server/database"
	"digistore_server/lib"
	"digistore_server/structs"
	"digistore_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

var ErrAccountSuspended = fmt.Errorf("%w: account suspended", lib.ErrForbidden)

type AuthService struct {
	logger       *gecho.Logger
	cfg          *structs.Config
	db           *database.DB
	cacheService *CacheService
}

func NewAuthService(cfg *structs.Config, logger *gecho.Logger, db *database.DB, cacheService *CacheService) *AuthService {
	return &AuthService{
		logger:       logger,
		cfg:          cfg,
		db:           db,
		cacheService: cacheService,
	}
}

func (as *AuthService) CookieName() string {
	return as.cfg.Auth.CookieName
}

// Login checks the credentials and issues a token for an active admin.
func (as *AuthService) Login(ctx context.Context, req *structs.LoginRequest) (*structs.LoginResponse, *structs.AuthClaims, error) {
	startTime := time.Now()

	admin, err := database.ExcludeSoftDeleted(
		database.Query[tables.Admin](as.db).Where("username", strings.TrimSpace(req.Username)),
	).First(ctx)
	if err != nil {
		as.logger.Error("Unexpected database error during login", gecho.Field("error", err))
		return nil, nil, err
	}
	if admin == nil {
		as.logger.Debug("Admin not found during login attempt", gecho.Field("username", req.Username))
		// Always return invalid credentials (don't leak admin existence)
		return nil, nil, lib.ErrInvalidCredentials
	}

	if err := lib.CheckPassword(admin.PasswordHash, req.Password); err != nil {
		if !errors.Is(err, lib.ErrInvalidCredentials) {
			as.logger.Error("Failed to verify password hash", gecho.Field("error", err), gecho.Field("admin_id", admin.ID))
		}
		return nil, nil, lib.ErrInvalidCredentials
	}

	if !admin.IsActive {
		as.logger.Warn("Suspended admin attempted to log in", gecho.Field("admin_id", admin.ID))
		return nil, nil, ErrAccountSuspended
	}

	token, claims, err := lib.GenerateToken(lib.TokenSubject{
		ID:       admin.ID,
		Username: admin.Username,
		Name:     admin.Name,
		Role:     admin.Role,
	}, as.cfg.Auth.JWTSecret, as.cfg.Auth.Issuer, as.cfg.Auth.TokenTTL)
	if err != nil {
		return nil, nil, err
	}

	if err := as.cacheService.SetAdmin(ctx, admin); err != nil {
		as.logger.Warn("Failed to cache admin after login", gecho.Field("error", err), gecho.Field("admin_id", admin.ID))
	}

	as.logger.Info("Admin logged in",
		gecho.Field("admin_id", admin.ID),
		gecho.Field("elapsed_time_ms", time.Since(startTime).Milliseconds()),
	)

	return &structs.LoginResponse{Token: token, Admin: admin.Profile()}, claims, nil
}

// Authenticate validates a raw token and returns its claims together with the
// admin it belongs to. Revoked tokens and inactive or deleted admins are rejected.
func (as *AuthService) Authenticate(ctx context.Context, token string) (*structs.AuthClaims, *tables.Admin, error) {
	claims, err := lib.ParseToken(token, as.cfg.Auth.JWTSecret)
	if err != nil {
		return nil, nil, err
	}

	revoked, err := as.cacheService.IsTokenBlacklisted(ctx, claims.Jti)
	if err != nil {
		// fail open, the token is still signed and unexpired
		as.logger.Warn("Failed to check token blacklist", gecho.Field("error", err))
	}
	if revoked {
		return nil, nil, fmt.Errorf("%w: token revoked", lib.ErrInvalidToken)
	}

	admin, err := as.loadAdmin(ctx, claims.Sub)
	if err != nil {
		return nil, nil, err
	}
	if admin == nil || admin.Status() != structs.AdminStatusActive {
		return nil, nil, fmt.Errorf("%w: admin is not active", lib.ErrInvalidToken)
	}

	return claims, admin, nil
}

// loadAdmin reads an admin through the cache. It returns nil when the row is gone.
func (as *AuthService) loadAdmin(ctx context.Context, id int64) (*tables.Admin, error) {
	cached, err := as.cacheService.GetAdmin(ctx, id)
	if err != nil {
		as.logger.Warn("Failed to get admin from cache", gecho.Field("error", err), gecho.Field("admin_id", id))
	} else if cached != nil {
		return cached, nil
	}

	admin, err := database.FindByID[tables.Admin](as.db, ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load admin: %w", err)
	}
	if admin == nil {
		return nil, nil
	}

	if err := as.cacheService.SetAdmin(ctx, admin); err != nil {
		as.logger.Warn("Failed to cache admin", gecho.Field("error", err), gecho.Field("admin_id", id))
	}
	return admin, nil
}

// Logout revokes the token until it would have expired anyway.
func (as *AuthService) Logout(ctx context.Context, claims *structs.AuthClaims) error {
	if err := as.cacheService.BlacklistToken(ctx, claims.Jti, claims.Exp); err != nil {
		as.logger.Error("Failed to blacklist token", gecho.Field("error", err), gecho.Field("admin_id", claims.Sub))
		return err
	}
	as.logger.Info("Admin logged out", gecho.Field("admin_id", claims.Sub))
	return nil
}

// Me returns the profile of the admin behind the token.
func (as *AuthService) Me(ctx context.Context, id int64) (*structs.AdminProfile, error) {
	admin, err := as.loadAdmin(ctx, id)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, &lib.NotFoundError{Resource: "admin", Key: id, Message: "Admin tidak ditemukan"}
	}
	profile := admin.Profile()
	return &profile, nil
}

// UpdateCredentials changes the username, the password or both after checking
// the current password, then issues a fresh token.
func (as *AuthService) UpdateCredentials(ctx context.Context, id int64, req *structs.CredentialsRequest) (*structs.LoginResponse, *structs.AuthClaims, error) {
	admin, err := database.ExcludeSoftDeleted(database.Query[tables.Admin](as.db).Where("id", id)).First(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load admin: %w", err)
	}
	if admin == nil {
		return nil, nil, &lib.NotFoundError{Resource: "admin", Key: id, Message: "Admin tidak ditemukan"}
	}

	if err := lib.CheckPassword(admin.PasswordHash, req.CurrentPassword); err != nil {
		if errors.Is(err, lib.ErrInvalidCredentials) {
			return nil, nil, fmt.Errorf("%w: current password mismatch", lib.ErrInvalidCredentials)
		}
		return nil, nil, err
	}

	changes := map[string]any{}
	if username := strings.TrimSpace(req.Username); username != "" && username != admin.Username {
		taken, err := database.Query[tables.Admin](as.db).Where("username", username).WhereNot("id", id).Exists(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to check username: %w", err)
		}
		if taken {
			return nil, nil, &lib.ConflictError{Message: "Username sudah digunakan"}
		}
		changes["username"] = username
		admin.Username = username
	}
	if req.NewPassword != "" {
		hash, err := lib.HashPassword(req.NewPassword, as.cfg.Auth.BcryptCost)
		if err != nil {
			return nil, nil, err
		}
		changes["password_hash"] = hash
	}

	if len(changes) > 0 {
		changes["updated_at"] = time.Now().UTC()
		if _, err := database.UpdateByID[tables.Admin](as.db, ctx, id, changes); err != nil {
			return nil, nil, lib.Conflict(lib.MapDBError(err), "Username sudah digunakan")
		}
		if err := as.cacheService.InvalidateAdmin(ctx, id); err != nil {
			as.logger.Warn("Failed to invalidate admin cache", gecho.Field("error", err), gecho.Field("admin_id", id))
		}
		as.logger.Info("Admin credentials updated", gecho.Field("admin_id", id))
	}

	token, claims, err := lib.GenerateToken(lib.TokenSubject{
		ID:       admin.ID,
		Username: admin.Username,
		Name:     admin.Name,
		Role:     admin.Role,
	}, as.cfg.Auth.JWTSecret, as.cfg.Auth.Issuer, as.cfg.Auth.TokenTTL)
	if err != nil {
		return nil, nil, err
	}
	return &structs.LoginResponse{Token: token, Admin: admin.Profile()}, claims, nil
}
