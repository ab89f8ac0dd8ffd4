package di

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/salesboard/internal/clientdata"
	"github.com/aristath/salesboard/internal/config"
	"github.com/aristath/salesboard/internal/database"
)

// InitializeStorage opens the configured cache backend and builds the result cache
func InitializeStorage(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	container := &Container{Config: cfg}

	switch cfg.Cache.Backend {
	case config.CacheBackendValkey:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		store, err := clientdata.NewValkeyStore(ctx, clientdata.ValkeyConfig{
			Address:  cfg.Cache.Valkey.Address,
			Password: cfg.Cache.Valkey.Password,
			DB:       cfg.Cache.Valkey.DB,
			Prefix:   cfg.Cache.Valkey.Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize valkey cache: %w", err)
		}
		container.ValkeyStore = store
		container.Store = store

	default:
		// client_data.db - insight payload cache
		db, err := database.New(database.Config{
			Path:    cfg.ClientDataPath(),
			Profile: database.ProfileCache,
			Name:    "client_data",
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize client_data database: %w", err)
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply schema to %s: %w", db.Name(), err)
		}
		container.ClientDataDB = db
		container.Store = clientdata.NewRepository(db.Conn())
	}

	validity := clientdata.Validity{
		RefreshDay: cfg.Insights.RefreshDay,
		Location:   cfg.Cache.Location,
	}
	container.ResultCache = clientdata.NewResultCache(container.Store, validity, nil, log)

	log.Info().Str("backend", cfg.Cache.Backend).Msg("Insight cache initialized")
	return container, nil
}
