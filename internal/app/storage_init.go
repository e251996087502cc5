package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
	"github.com/vladislavdragonenkov/storefront/internal/storage/postgres"
)

// runtimeDependencies собирает репозитории выбранного драйвера хранилища.
type runtimeDependencies struct {
	users           domain.UserRepository
	products        domain.ProductRepository
	orders          domain.OrderRepository
	outboxRepo      domain.OutboxRepository
	timelineRepo    domain.TimelineRepository
	idempotencyRepo domain.IdempotencyRepository

	// store задан только для postgres.
	store *postgres.Store
}

func (d *runtimeDependencies) Close() error {
	if d == nil || d.store == nil {
		return nil
	}
	return d.store.Close()
}

func initRuntimeDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*runtimeDependencies, error) {
	switch cfg.StorageDriver {
	case StorageDriverMemory, "":
		logger.Info("storage driver: memory")
		return &runtimeDependencies{
			users:           memory.NewUserRepository(),
			products:        memory.NewProductRepository(),
			orders:          memory.NewOrderRepository(),
			outboxRepo:      memory.NewOutboxRepository(),
			timelineRepo:    memory.NewTimelineRepository(),
			idempotencyRepo: memory.NewIdempotencyRepository(),
		}, nil
	case StorageDriverPostgres:
		dsn := strings.TrimSpace(cfg.PostgresDSN)
		if dsn == "" {
			return nil, errors.New("postgres dsn is required for postgres storage driver")
		}

		store, err := postgres.Open(ctx, dsn)
		if err != nil {
			return nil, err
		}
		if cfg.PostgresAutoMigrate {
			if err := store.MigrateUp(ctx, 0); err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("apply migrations: %w", err)
			}
			version, applied, err := store.MigrationStatus(ctx)
			if err == nil {
				logger.WithFields(log.Fields{"version": version, "applied": applied}).Info("postgres migrations applied")
			}
		}

		logger.Info("storage driver: postgres")
		return &runtimeDependencies{
			users:           postgres.NewUserRepository(store),
			products:        postgres.NewProductRepository(store),
			orders:          postgres.NewOrderRepository(store),
			outboxRepo:      postgres.NewOutboxRepository(store),
			timelineRepo:    postgres.NewTimelineRepository(store),
			idempotencyRepo: postgres.NewIdempotencyRepository(store),
			store:           store,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}
