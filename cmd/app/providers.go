package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/tomoika/tripmag/internal/domain/trip"
	"github.com/tomoika/tripmag/internal/infra/config"
	"github.com/tomoika/tripmag/internal/infra/triprepo"
	"github.com/tomoika/tripmag/internal/infra/tripstore"
)

func provideTripConfig(cfg *config.Config) trip.Config {
	return trip.Config{
		CacheTTL: cfg.Cache.TTL,
	}
}

func provideTripRepository(cfg *config.Config, logger *slog.Logger) trip.DocumentRepository {
	switch cfg.Trips.Source {
	case "postgres":
		repo := providePostgresRepository(cfg, logger)
		if repo != nil {
			return repo
		}
	case "s3":
		repo, err := triprepo.NewS3Repository(
			cfg.Trips.S3.Endpoint,
			cfg.Trips.S3.AccessKey,
			cfg.Trips.S3.SecretKey,
			cfg.Trips.S3.Bucket,
			cfg.Trips.S3.Region,
			logger,
		)
		if err == nil {
			logger.Info("trip s3 repository enabled", "bucket", cfg.Trips.S3.Bucket)
			return repo
		}
		logger.Error("failed to initialize s3 repository, using fs repository", "error", err)
	}
	logger.Info("trip fs repository enabled", "dir", cfg.Trips.Dir)
	return triprepo.NewFSRepository(cfg.Trips.Dir)
}

func providePostgresRepository(cfg *config.Config, logger *slog.Logger) trip.DocumentRepository {
	dsn := strings.TrimSpace(cfg.Trips.Postgres.DSN)
	if dsn == "" {
		logger.Info("trip postgres dsn not set, using fs repository")
		return nil
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using fs repository", "error", err)
		return nil
	}
	if cfg.Trips.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Trips.Postgres.MaxConns
	}
	if cfg.Trips.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Trips.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using fs repository", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using fs repository", "error", err)
		pool.Close()
		return nil
	}
	logger.Info("trip postgres repository enabled")
	return triprepo.NewPostgresRepository(pool)
}

func provideTripStore(cfg *config.Config, logger *slog.Logger) trip.Store {
	if cfg.Cache.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return tripstore.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return tripstore.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
		} else {
			logger.Info("trip valkey store enabled", "addr", cfg.Cache.Addr)
			return tripstore.NewValkeyStore(client, "trip")
		}
	}
	return tripstore.NewMemoryStore()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Cache.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Cache.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Cache.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
