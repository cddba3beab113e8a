package middleware

import (
	"context"
	"errors"
	"net/http"

	"digistore_server/lib"
	"digistore_server/structs"
	"digistore_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

// Context keys for storing admin data in request context
type contextKey string

const (
	AdminContextKey  contextKey = "admin"
	ClaimsContextKey contextKey = "claims"
)

// AdminAuthMiddleware protects routes to logged-in, active admins.
func (mw *Middleware) AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := lib.ExtractToken(r, mw.authService.CookieName())
		if err != nil {
			gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
			return
		}

		claims, admin, err := mw.authService.Authenticate(r.Context(), token)
		if err != nil {
			mw.logger.Warn("Rejected admin token", gecho.Field("error", err), gecho.Field("path", r.URL.Path))
			switch {
			case errors.Is(err, lib.ErrExpiredToken):
				gecho.Unauthorized(w, gecho.WithMessage("Token expired"), gecho.Send())
			case errors.Is(err, lib.ErrInvalidToken):
				gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
			default:
				gecho.InternalServerError(w, gecho.WithMessage("Failed to verify access token"), gecho.Send())
			}
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		ctx = context.WithValue(ctx, AdminContextKey, admin)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequirePermission lets the request through when the admin holds any of perms.
// Must be used after AdminAuthMiddleware.
func (mw *Middleware) RequirePermission(perms ...structs.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			admin, ok := GetAdminFromContext(r.Context())
			if !ok {
				gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
				return
			}

			for _, p := range perms {
				if admin.Can(p) {
					next.ServeHTTP(w, r)
					return
				}
			}

			mw.logger.Warn("Admin lacks permission",
				gecho.Field("admin_id", admin.ID),
				gecho.Field("required", perms),
				gecho.Field("path", r.URL.Path),
			)
			gecho.Forbidden(w, gecho.WithMessage("Access denied"), gecho.Send())
		})
	}
}

// GetAdminFromContext is a helper function to extract the admin from request context
func GetAdminFromContext(ctx context.Context) (*tables.Admin, bool) {
	admin, ok := ctx.Value(AdminContextKey).(*tables.Admin)
	return admin, ok
}

// GetClaimsFromContext is a helper function to extract the claims from request context
func GetClaimsFromContext(ctx context.Context) (*structs.AuthClaims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*structs.AuthClaims)
	return claims, ok
}
