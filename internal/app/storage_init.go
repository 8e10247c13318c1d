package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
	"github.com/vladislavdragonenkov/backoffice/internal/service/backoffice"
	"github.com/vladislavdragonenkov/backoffice/internal/storage/memory"
	"github.com/vladislavdragonenkov/backoffice/internal/storage/postgres"
)

// runtimeDependencies собирает репозитории выбранного хранилища.
type runtimeDependencies struct {
	repos      backoffice.Repositories
	outboxRepo domain.OutboxRepository
	pinger     domain.Pinger
	closeFn    func() error
}

func (d *runtimeDependencies) close() error {
	if d == nil || d.closeFn == nil {
		return nil
	}
	return d.closeFn()
}

func initRuntimeDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*runtimeDependencies, error) {
	switch cfg.StorageDriver {
	case "", StorageDriverMemory:
		store := memory.NewStore()
		if cfg.SeedMemoryCatalog {
			memory.SeedReferenceData(store)
		}
		logger.WithField("storage", StorageDriverMemory).Info("storage initialized")

		return &runtimeDependencies{
			repos: backoffice.Repositories{
				Customers: memory.NewCustomerRepository(store),
				Orders:    memory.NewOrderRepository(store),
				Catalog:   memory.NewCatalogRepository(store),
				Reports:   memory.NewReportRepository(store),
			},
			outboxRepo: memory.NewOutboxRepository(store),
			pinger:     store,
		}, nil

	case StorageDriverPostgres:
		dsn, err := resolvePostgresDSN(cfg)
		if err != nil {
			return nil, err
		}

		store, err := postgres.Open(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres storage: %w", err)
		}
		if cfg.PostgresAutoMigrate {
			if err := store.EnsureSchema(ctx); err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("apply postgres migrations: %w", err)
			}
		}
		logger.WithFields(log.Fields{
			"storage":      StorageDriverPostgres,
			"auto_migrate": cfg.PostgresAutoMigrate,
		}).Info("storage initialized")

		return &runtimeDependencies{
			repos: backoffice.Repositories{
				Customers: postgres.NewCustomerRepository(store),
				Orders:    postgres.NewOrderRepository(store),
				Catalog:   postgres.NewCatalogRepository(store),
				Reports:   postgres.NewReportRepository(store),
			},
			outboxRepo: postgres.NewOutboxRepository(store),
			pinger:     store,
			closeFn:    store.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}
