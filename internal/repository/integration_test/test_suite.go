//go:build integration

package integration_test

import (
	"context"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"logistics/internal/pkg/migrations"
	"logistics/internal/pkg/postgres"
	"logistics/pkg/logger/zap_adapter"
	"logistics/pkg/querier"
)

const (
	image    = "postgres:16-alpine"
	database = "logistics_test"
	user     = "logistics"
	password = "logistics"
)

var (
	poolInstance    *pgxpool.Pool
	querierInstance *querier.Querier
	suiteOnce       sync.Once
)

// start поднимает один контейнер на процесс тестов пакета и накатывает миграции.
// Контейнер останавливается reaper'ом testcontainers после выхода процесса.
func start() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	zapLogger, err := zap_adapter.NewZapAdapter()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			log.Printf("failed to sync logger: %v", err)
		}
	}()

	container, err := tcpostgres.Run(ctx,
		image,
		tcpostgres.WithDatabase(database),
		tcpostgres.WithUsername(user),
		tcpostgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		log.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("failed to get connection string: %v", err)
	}

	poolInstance, err = postgres.Connect(ctx, zapLogger, dsn)
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}

	if err := migrations.Up(ctx, zapLogger, poolInstance); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	querierInstance = querier.New(poolInstance, pgxv5.DefaultCtxGetter)
}

func GetQuerier() *querier.Querier {
	suiteOnce.Do(start)
	return querierInstance
}

func GetPool() *pgxpool.Pool {
	suiteOnce.Do(start)
	return poolInstance
}

func SetupDB(t *testing.T, setupSql string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := GetQuerier().Exec(ctx, setupSql)

	require.NoError(t, err)
}

// TeardownDB чистит данные, оставляя засеянные миграцией статусы.
func TeardownDB(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := GetQuerier().Exec(ctx, `
		TRUNCATE TABLE delivery_service_links, deliveries,
			transport_models, package_types, delivery_services, cargo_types CASCADE;
		DELETE FROM delivery_statuses WHERE code NOT IN ('pending', 'completed')
			OR name NOT IN ('В ожидании', 'Проведено');
	`)
	require.NoError(t, err)
}
