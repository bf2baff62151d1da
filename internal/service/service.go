// Package service wires configuration into a running conadmin instance:
// storage backend, dataset store, backups and the authenticator.
package service

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/Supervision-Inbound/prueba.condo/internal/auth"
	"github.com/Supervision-Inbound/prueba.condo/internal/backup"
	"github.com/Supervision-Inbound/prueba.condo/internal/config"
	"github.com/Supervision-Inbound/prueba.condo/internal/kv"
	"github.com/Supervision-Inbound/prueba.condo/internal/store"
)

// Service owns every long-lived component of the process.
type Service struct {
	config *config.Config
	logger *zap.Logger

	kv     kv.Store
	closer func() error

	Store     *store.Store
	Backup    *backup.Service
	Scheduler *backup.Scheduler
	Auth      *auth.Authenticator
}

// New opens the configured backend and loads the dataset from it.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Service, error) {
	kvStore, closer, err := openBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return newWithKV(ctx, cfg, kvStore, closer, logger)
}

func newWithKV(ctx context.Context, cfg *config.Config, kvStore kv.Store, closer func() error, logger *zap.Logger) (*Service, error) {
	quota := cfg.Storage.MaxBytes
	if quota == 0 {
		quota = kv.DefaultQuota
	}
	st, err := store.Open(ctx, kvStore, logger,
		store.WithKey(cfg.Storage.Key),
		store.WithRetention(cfg.Backup.Retention()),
		store.WithQuota(quota),
		store.WithSampleData(cfg.SeedSampleData),
	)
	if err != nil {
		if closer != nil {
			_ = closer()
		}
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	backups := backup.NewService(st, kvStore, cfg.Storage.BackupKey, logger)
	return &Service{
		config:    cfg,
		logger:    logger,
		kv:        kvStore,
		closer:    closer,
		Store:     st,
		Backup:    backups,
		Scheduler: backup.NewScheduler(backups, cfg.Backup.Interval, logger),
		Auth:      auth.NewAuthenticator(auth.DefaultVerifier(), kvStore, cfg.Storage.AuthKey, cfg.LoginLatency, logger),
	}, nil
}

// openBackend returns the kv store for cfg and a function releasing it.
func openBackend(ctx context.Context, cfg *config.Config) (kv.Store, func() error, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return kv.NewMemoryStore(cfg.Storage.MaxBytes), nil, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return kv.NewRedisStore(client, cfg.Storage.MaxBytes), client.Close, nil

	case config.BackendSQLite:
		s, err := kv.OpenSQLite(ctx, cfg.Storage.SQLitePath, cfg.Storage.MaxBytes)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		return s, s.Close, nil

	case config.BackendPostgres:
		s, err := kv.OpenPostgres(ctx, cfg.Database.DSN(), cfg.Storage.MaxBytes)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return s, s.Close, nil
	}
	return nil, nil, fmt.Errorf("unsupported storage backend: %s", cfg.Storage.Backend)
}

// Start runs the backup scheduler and blocks in the autosave loop until ctx
// is cancelled.
func (s *Service) Start(ctx context.Context) error {
	s.logger.Info("Starting conadmin service",
		zap.String("backend", s.config.Storage.Backend),
		zap.Duration("backup_interval", s.config.Backup.Interval),
		zap.Duration("autosave_interval", s.config.AutosaveInterval),
	)
	if err := s.Scheduler.Start(ctx); err != nil {
		return err
	}
	s.Store.RunAutosave(ctx, s.config.AutosaveInterval)
	return nil
}

// Stop halts backups, writes the dataset a final time and releases the
// backend. ctx should outlive the one given to Start.
func (s *Service) Stop(ctx context.Context) error {
	s.logger.Info("Stopping conadmin service")
	s.Scheduler.Stop()

	var firstErr error
	if err := s.Store.Close(ctx); err != nil {
		s.logger.Error("Final persist failed", zap.Error(err))
		firstErr = err
	}
	if s.closer != nil {
		if err := s.closer(); err != nil {
			s.logger.Error("Error closing storage backend", zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	s.logger.Info("Conadmin service stopped")
	return firstErr
}
