package services

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"digistore_server/config"
	"digistore_server/database"
	"digistore_server/structs"
	"digistore_server/structs/tables"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// newTestDB opens a migrated in-memory SQLite database private to the test.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	sqldb, err := sql.Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = bunDB.Close() })

	db := database.Wrap(bunDB, 5*time.Second)
	require.NoError(t, database.Migrate(context.Background(), db))
	return db
}

func newTestConfig(t *testing.T) *structs.Config {
	t.Helper()

	return &structs.Config{
		Auth: &structs.AuthConfig{
			JWTSecret:  "test-secret",
			TokenTTL:   time.Hour,
			Issuer:     "digistore-test",
			BcryptCost: bcrypt.MinCost,
			CookieName: "admin_token",
		},
		Cache:  &structs.CacheConfig{Enabled: false},
		Email:  &structs.EmailConfig{},
		Upload: &structs.UploadConfig{Dir: t.TempDir(), PublicPath: "/uploads", MaxBytes: 1 << 20, MaxWidth: 64},
		Orders: &structs.OrderConfig{OrderCodePrefix: "ORD", BookingCodePrefix: "TFQ", UniqueCodeMax: 999},
	}
}

// newTestServices wires every service against a fresh database with the cache disabled.
func newTestServices(t *testing.T) *ServiceManager {
	t.Helper()
	return NewServiceManager(config.NewLogger(false), newTestConfig(t), newTestDB(t))
}

func seedPaymentMethod(t *testing.T, db bun.IDB, pm tables.PaymentMethod) *tables.PaymentMethod {
	t.Helper()

	pm.IsActive = true
	pm.Currency = "IDR"
	pm.CreatedAt = time.Now().UTC()
	created, err := database.Create(db, context.Background(), &pm)
	require.NoError(t, err)
	return created
}

func seedDiscount(t *testing.T, db bun.IDB, d tables.Discount) *tables.Discount {
	t.Helper()

	if d.ApplyTo == "" {
		d.ApplyTo = tables.DiscountScopeAll
	}
	d.IsActive = true
	d.CreatedAt = time.Now().UTC()
	created, err := database.Create(db, context.Background(), &d)
	require.NoError(t, err)
	return created
}

// superActor stands in for the logged-in super admin in service calls.
var superActor = &tables.Admin{Role: structs.RoleSuperAdmin}

func ptr[T any](v T) *T {
	return &v
}
