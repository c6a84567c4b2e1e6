package storage

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
	"github.com/jhoicas/Pedidos-api/internal/infrastructure/dynamodb"
	"github.com/jhoicas/Pedidos-api/internal/infrastructure/kvstore"
	"github.com/jhoicas/Pedidos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Pedidos-api/pkg/config"
)

// Open abre el almacenamiento durable elegido por STORAGE_DRIVER.
// closeFn libera las conexiones; siempre es no nil.
func Open(ctx context.Context, cfg *config.Config) (kv repository.KeyValueStore, closeFn func(), err error) {
	noop := func() {}
	ns := cfg.Storage.Namespace

	switch cfg.Storage.Driver {
	case config.StorageMemory:
		return kvstore.NewMemory(), noop, nil

	case config.StorageFile:
		f, err := kvstore.NewFile(afero.NewOsFs(), cfg.Storage.Dir, ns)
		if err != nil {
			return nil, noop, err
		}
		return f, noop, nil

	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB, cfg.App.Name+"/"+cfg.Storage.Namespace)
		if err != nil {
			return nil, noop, fmt.Errorf("storage: postgres: %w", err)
		}
		repo := postgres.NewKVRepository(pool, ns)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, fmt.Errorf("storage: postgres: %w", err)
		}
		return repo, pool.Close, nil

	case config.StorageDynamoDB:
		client, err := dynamodb.NewClient(ctx, cfg.DynamoDB)
		if err != nil {
			return nil, noop, fmt.Errorf("storage: %w", err)
		}
		repo := dynamodb.NewKVRepository(client, cfg.DynamoDB.Table, ns)
		if err := repo.EnsureTable(ctx); err != nil {
			return nil, noop, fmt.Errorf("storage: %w", err)
		}
		return repo, noop, nil
	}
	return nil, noop, fmt.Errorf("storage: driver desconocido %q", cfg.Storage.Driver)
}
