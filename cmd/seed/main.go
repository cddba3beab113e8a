// Command seed prepares a fresh database: it runs the migrations, creates the
// super admin and writes the default store settings. Running it twice is safe.
package main

import (
	"context"
	"time"

	"digistore_server/config"
	"digistore_server/database"
	"digistore_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/joho/godotenv"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.GetConfig()
	logger := config.InitializeLogger()

	if envErr != nil {
		logger.Warn("No .env file found, using system environment variables")
	}

	db, err := database.Connect()
	if err != nil {
		logger.Fatal("Failed to connect to database", gecho.Field("error", err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := database.Migrate(ctx, db); err != nil {
		logger.Fatal("Failed to migrate database", gecho.Field("error", err))
	}
	logger.Info("Migrations applied")

	cacheService := services.NewCacheService(logger, cfg)
	defer cacheService.Close()

	username, password := config.SeedAdmin()
	created, err := services.NewAdminService(logger, cfg, db, cacheService).EnsureSuperAdmin(ctx, username, password)
	if err != nil {
		logger.Fatal("Failed to seed super admin", gecho.Field("error", err))
	}
	if created {
		logger.Info("Super admin created", gecho.Field("username", username))
	} else {
		logger.Info("Super admin already exists", gecho.Field("username", username))
	}

	n, err := services.NewSettingsService(logger, db, cacheService).EnsureDefaults(ctx)
	if err != nil {
		logger.Fatal("Failed to seed store settings", gecho.Field("error", err))
	}
	logger.Info("Store settings seeded", gecho.Field("inserted", n))
}
