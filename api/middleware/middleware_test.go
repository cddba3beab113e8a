package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"digistore_server/config"
	"digistore_server/lib"
	"digistore_server/services"
	"digistore_server/structs"
	"digistore_server/structs/tables"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMiddleware(t *testing.T) *Middleware {
	t.Helper()

	cfg := &structs.Config{
		Auth:   &structs.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour, Issuer: "digistore-test", CookieName: "admin_token"},
		Cache:  &structs.CacheConfig{Enabled: false},
		Upload: &structs.UploadConfig{PublicPath: "/uploads"},
		RateLimit: &structs.RateLimitConfig{
			Enabled:       true,
			GeneralLimit:  100,
			GeneralWindow: time.Minute,
			LoginLimit:    2,
			LoginWindow:   time.Minute,
			OrderLimit:    1,
			OrderWindow:   time.Minute,
		},
	}

	logger := config.NewLogger(false)
	cache := services.NewCacheService(logger, cfg)
	auth := services.NewAuthService(cfg, logger, nil, cache)
	return NewMiddleware(cfg, logger, auth, cache)
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestAdminAuthRejectsMissingAndBadTokens(t *testing.T) {
	mw := newTestMiddleware(t)
	handler := mw.AdminAuthMiddleware(okHandler)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	expired, _, err := lib.GenerateToken(lib.TokenSubject{ID: 1, Username: "admin", Role: structs.RoleSuperAdmin}, "test-secret", "digistore-test", -time.Minute)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	req.AddCookie(&http.Cookie{Name: "admin_token", Value: expired})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token expired")
}

func TestRequirePermission(t *testing.T) {
	mw := newTestMiddleware(t)
	handler := mw.RequirePermission(structs.PermissionProducts, structs.PermissionArticles)(okHandler)

	serve := func(admin *tables.Admin) int {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/upload", nil)
		if admin != nil {
			req = req.WithContext(context.WithValue(req.Context(), AdminContextKey, admin))
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusUnauthorized, serve(nil))
	assert.Equal(t, http.StatusForbidden, serve(&tables.Admin{ID: 2, Role: structs.RoleAdmin, Permissions: []structs.Permission{structs.PermissionOrders}}))
	assert.Equal(t, http.StatusOK, serve(&tables.Admin{ID: 3, Role: structs.RoleAdmin, Permissions: []structs.Permission{structs.PermissionArticles}}))
	assert.Equal(t, http.StatusOK, serve(&tables.Admin{ID: 4, Role: structs.RoleAdmin, Permissions: []structs.Permission{structs.PermissionAll}}))
	assert.Equal(t, http.StatusOK, serve(&tables.Admin{ID: 1, Role: structs.RoleSuperAdmin}))
}

func TestRateLimitBuckets(t *testing.T) {
	mw := newTestMiddleware(t)
	handler := mw.RateLimitMiddleware()(okHandler)

	send := func(method, path, addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, send(http.MethodPost, "/api/admin/login", "10.0.0.1:5000").Code)
	assert.Equal(t, http.StatusOK, send(http.MethodPost, "/api/admin/login", "10.0.0.1:5001").Code)

	rec := send(http.MethodPost, "/api/admin/login", "10.0.0.1:5002")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	// other clients and buckets keep their own counters
	assert.Equal(t, http.StatusOK, send(http.MethodPost, "/api/admin/login", "10.0.0.2:5000").Code)
	assert.Equal(t, http.StatusOK, send(http.MethodGet, "/api/products", "10.0.0.1:5003").Code)

	assert.Equal(t, http.StatusOK, send(http.MethodPost, "/api/orders", "10.0.0.3:5000").Code)
	assert.Equal(t, http.StatusTooManyRequests, send(http.MethodPost, "/api/validate-discount", "10.0.0.3:5000").Code)

	for range 5 {
		assert.Equal(t, http.StatusOK, send(http.MethodGet, "/health", "10.0.0.3:5000").Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	mw := newTestMiddleware(t)
	handler := mw.SecurityHeaders()(okHandler)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "default-src 'self'", rec.Header().Get("Content-Security-Policy"))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/a.jpg", nil))
	assert.Empty(t, rec.Header().Get("Content-Security-Policy"))
	assert.Equal(t, "cross-origin", rec.Header().Get("Cross-Origin-Resource-Policy"))
}
