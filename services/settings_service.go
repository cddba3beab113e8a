package services

import (
	"context"
	"fmt"
	"time"

	"digistore_server/database"
	"digistore_server/lib"
	"digistore_server/structs"
	"digistore_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/uptrace/bun"
)

type SettingsService struct {
	logger       *gecho.Logger
	db           *database.DB
	cacheService *CacheService
}

func NewSettingsService(logger *gecho.Logger, db *database.DB, cacheService *CacheService) *SettingsService {
	return &SettingsService{
		logger:       logger,
		db:           db,
		cacheService: cacheService,
	}
}

// Get returns the stored settings over the defaults.
func (ss *SettingsService) Get(ctx context.Context) (*structs.StoreSettings, error) {
	if cached, err := ss.cacheService.GetSettings(ctx); err != nil {
		ss.logger.Warn("Failed to get settings from cache", gecho.Field("error", err))
	} else if cached != nil {
		return cached, nil
	}

	rows, err := database.Query[tables.StoreSetting](ss.db).All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Key] = row.Value
	}

	settings := structs.DefaultStoreSettings()
	settings.FromMap(values)

	if err := ss.cacheService.SetSettings(ctx, &settings); err != nil {
		ss.logger.Warn("Failed to cache settings", gecho.Field("error", err))
	}
	return &settings, nil
}

// Update merges patch into the stored settings.
func (ss *SettingsService) Update(ctx context.Context, patch *structs.SettingsPatch) (*structs.StoreSettings, error) {
	if problems := patch.CheckDates(); len(problems) > 0 {
		return nil, lib.NewValidationError(problems)
	}

	changes := patch.Changes()
	if len(changes) > 0 {
		now := time.Now().UTC()
		err := database.Transaction(ctx, ss.db, func(ctx context.Context, tx bun.Tx) error {
			for key, value := range changes {
				row := &tables.StoreSetting{Key: key, Value: value, UpdatedAt: now}
				if _, err := database.Upsert(tx, ctx, row, "key", "value", "updated_at"); err != nil {
					return fmt.Errorf("failed to save setting %s: %w", key, err)
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}

		if err := ss.cacheService.InvalidateSettings(ctx); err != nil {
			ss.logger.Warn("Failed to invalidate settings cache", gecho.Field("error", err))
		}
		ss.logger.Info("Store settings updated", gecho.Field("keys", len(changes)))
	}

	return ss.Get(ctx)
}

// EnsureDefaults writes a row for every setting that has none yet.
func (ss *SettingsService) EnsureDefaults(ctx context.Context) (int, error) {
	now := time.Now().UTC()
	defaults := structs.DefaultStoreSettings()

	rows := make([]tables.StoreSetting, 0, len(defaults.ToMap()))
	for key, value := range defaults.ToMap() {
		rows = append(rows, tables.StoreSetting{Key: key, Value: value, UpdatedAt: now})
	}

	n, err := database.InsertIgnore(ss.db, ctx, rows)
	if err != nil {
		return 0, err
	}
	if err := ss.cacheService.InvalidateSettings(ctx); err != nil {
		ss.logger.Warn("Failed to invalidate settings cache", gecho.Field("error", err))
	}
	return n, nil
}

// CheckOpen returns an UnavailableError while the store is not live.
func (ss *SettingsService) CheckOpen(ctx context.Context) (*structs.StoreSettings, error) {
	settings, err := ss.Get(ctx)
	if err != nil {
		return nil, err
	}

	var message string
	switch settings.SiteMode {
	case structs.SiteModeLive:
		return settings, nil
	case structs.SiteModeComingSoon:
		message = settings.ComingSoonMessage
	default:
		message = settings.MaintenanceMessage
	}

	if message == "" {
		message = "Toko sedang tidak menerima pesanan"
	}
	return nil, &lib.UnavailableError{Message: message}
}
