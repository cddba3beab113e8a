package admin

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"digistore_server/api/middleware"
	"digistore_server/config"
	"digistore_server/database"
	"digistore_server/services"
	"digistore_server/structs"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t      *testing.T
	router chi.Router
	sm     *services.ServiceManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	sqldb, err := sql.Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = bunDB.Close() })

	db := database.Wrap(bunDB, 5*time.Second)
	require.NoError(t, database.Migrate(context.Background(), db))

	cfg := &structs.Config{
		Auth: &structs.AuthConfig{
			JWTSecret:  "test-secret",
			TokenTTL:   time.Hour,
			Issuer:     "digistore-test",
			BcryptCost: bcrypt.MinCost,
			CookieName: "admin_token",
		},
		Cache:  &structs.CacheConfig{Enabled: false},
		Email:  &structs.EmailConfig{},
		Upload: &structs.UploadConfig{Dir: t.TempDir(), PublicPath: "/uploads", MaxBytes: 1 << 20},
		Orders: &structs.OrderConfig{OrderCodePrefix: "ORD", BookingCodePrefix: "TFQ", UniqueCodeMax: 999},
	}

	logger := config.NewLogger(false)
	sm := services.NewServiceManager(logger, cfg, db)
	mw := middleware.NewMiddleware(cfg, logger, sm.AuthService, sm.CacheService)

	r := chi.NewRouter()
	r.Route("/api", NewAdminRoutesManager(logger, sm, mw).RegisterRoutes)

	_, err = sm.AdminService.EnsureSuperAdmin(context.Background(), "owner", "password123")
	require.NoError(t, err)

	return &testServer{t: t, router: r, sm: sm}
}

func (ts *testServer) do(method, path, token string, body any) (int, envelope) {
	ts.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(ts.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(ts.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func (ts *testServer) login(username, password string) structs.LoginResponse {
	ts.t.Helper()

	code, env := ts.do(http.MethodPost, "/api/admin/login", "", structs.LoginRequest{Username: username, Password: password})
	require.Equal(ts.t, http.StatusOK, code, env.Message)

	var resp structs.LoginResponse
	require.NoError(ts.t, json.Unmarshal(env.Data, &resp))
	return resp
}

func TestAdminRoutesEnforcePermissions(t *testing.T) {
	ts := newTestServer(t)
	owner := ts.login("owner", "password123")
	assert.Equal(t, structs.RoleSuperAdmin, owner.Admin.Role)

	code, _ := ts.do(http.MethodPost, "/api/admin/login", "", structs.LoginRequest{Username: "owner", Password: "salah"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = ts.do(http.MethodGet, "/api/admin/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env := ts.do(http.MethodPost, "/api/admin/admins", owner.Token, structs.AdminRequest{
		Username:    "manager",
		Password:    "rahasia1",
		Name:        "Manager",
		Role:        structs.RoleAdmin,
		Permissions: []structs.Permission{structs.PermissionAdminUsers, structs.PermissionOrders},
	})
	require.Equal(t, http.StatusOK, code, env.Message)

	manager := ts.login("manager", "rahasia1")

	code, _ = ts.do(http.MethodGet, "/api/admin/orders", manager.Token, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = ts.do(http.MethodGet, "/api/admin/products", manager.Token, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = ts.do(http.MethodPost, "/api/admin/admins", manager.Token, structs.AdminRequest{
		Username: "boss", Password: "rahasia1", Name: "Boss", Role: structs.RoleSuperAdmin,
	})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = ts.do(http.MethodPut, fmt.Sprintf("/api/admin/admins/%d", manager.Admin.ID), manager.Token, structs.AdminRequest{
		Username: "manager", Name: "Manager", Role: structs.RoleAdmin,
		Permissions: []structs.Permission{structs.PermissionAll},
	})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = ts.do(http.MethodDelete, fmt.Sprintf("/api/admin/admins/%d", owner.Admin.ID), manager.Token, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, env = ts.do(http.MethodDelete, fmt.Sprintf("/api/admin/admins/%d", owner.Admin.ID), owner.Token, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Tidak dapat menghapus akun sendiri", env.Message)

	code, env = ts.do(http.MethodGet, "/api/admin/admins", owner.Token, nil)
	require.Equal(t, http.StatusOK, code)
	var admins []structs.AdminProfile
	require.NoError(t, json.Unmarshal(env.Data, &admins))
	assert.Len(t, admins, 2)
}

func TestAdminProductRoutes(t *testing.T) {
	ts := newTestServer(t)
	owner := ts.login("owner", "password123")

	code, env := ts.do(http.MethodPost, "/api/admin/categories", owner.Token, structs.CategoryRequest{Name: "Streaming"})
	require.Equal(t, http.StatusOK, code, env.Message)
	var category struct {
		ID   int64  `json:"id"`
		Slug string `json:"slug"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &category))
	assert.Equal(t, "streaming", category.Slug)

	code, env = ts.do(http.MethodPost, "/api/admin/products", owner.Token, structs.ProductRequest{CategoryID: category.ID})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Validation failed", env.Message)

	code, env = ts.do(http.MethodPost, "/api/admin/products", owner.Token, structs.ProductRequest{
		Name:       "Netflix Premium",
		CategoryID: category.ID,
		Variants:   []structs.VariantRequest{{Name: "1 Bulan", Price: 30000}},
	})
	require.Equal(t, http.StatusOK, code, env.Message)

	code, _ = ts.do(http.MethodGet, "/api/admin/products/9999", owner.Token, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, env = ts.do(http.MethodDelete, fmt.Sprintf("/api/admin/categories/%d", category.ID), owner.Token, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Message, "Kategori masih memiliki produk")

	code, env = ts.do(http.MethodGet, "/api/admin/products?category=streaming", owner.Token, nil)
	require.Equal(t, http.StatusOK, code)
	var products []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Netflix Premium", products[0].Name)
}
