package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KirkDiggler/pokesheet/internal/config"
	"github.com/KirkDiggler/pokesheet/internal/repositories/campaigns"
	"github.com/KirkDiggler/pokesheet/internal/repositories/characters"
	"github.com/KirkDiggler/pokesheet/internal/services"
	"github.com/KirkDiggler/pokesheet/internal/storage/sqlite"
)

// openStore builds the repositories for the configured backend. The returned
// func releases the connection.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*services.ProviderConfig, func(), error) {
	switch cfg.Store {
	case config.StoreRedis:
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		client := redis.NewClient(opts)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		logger.Info("using Redis for persistence", zap.String("addr", opts.Addr))

		return &services.ProviderConfig{
				CharacterRepository: characters.NewRedis(client),
				CampaignRepository:  campaigns.NewRedis(client),
			}, func() {
				_ = client.Close()
			}, nil

	case config.StoreSQLite:
		db, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using SQLite for persistence", zap.String("path", cfg.SQLite.Path))

		return &services.ProviderConfig{
				CharacterRepository: characters.NewSQLiteRepository(&characters.SQLiteRepoConfig{DB: db}),
				CampaignRepository:  campaigns.NewSQLiteRepository(&campaigns.SQLiteRepoConfig{DB: db}),
			}, func() {
				_ = db.Close()
			}, nil
	}

	logger.Warn("using in-memory repositories, sheets are lost on restart")
	return &services.ProviderConfig{}, func() {}, nil
}
