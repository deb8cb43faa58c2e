package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// testPool общий pool для всех тестов пакета.
// nil, если Docker недоступен.
var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	os.Exit(runWithPostgres(m))
}

func runWithPostgres(m *testing.M) int {
	ctx := context.Background()

	// PostgreSQL 16 через модуль postgres (log occurrence(2) + port check)
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		slog.Warn("postgres container unavailable, database tests will be skipped", "error", err)
		return m.Run()
	}
	defer func() {
		_ = testcontainers.TerminateContainer(container)
	}()

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		slog.Error("getting connection string", "error", err)
		return 1
	}

	testPool, err = pgxpool.New(ctx, dsn)
	if err != nil {
		slog.Error("connecting to test db", "error", err)
		return 1
	}
	defer testPool.Close()

	if err := runMigrations(ctx, testPool); err != nil {
		slog.Error("running migrations", "error", err)
		return 1
	}

	return m.Run()
}

// setupTestDB возвращает shared pool и очищает таблицы для изоляции тестов.
func setupTestDB(tb testing.TB) *pgxpool.Pool {
	tb.Helper()

	if testPool == nil {
		tb.Skip("postgres container is not available")
	}

	if _, err := testPool.Exec(context.Background(), "TRUNCATE runs CASCADE"); err != nil {
		tb.Fatalf("truncating tables: %v", err)
	}
	return testPool
}

// runMigrations применяет embedded миграции через goose.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	// goose требует *sql.DB, получаем его из pgxpool
	connStr := stdlib.RegisterConnConfig(pool.Config().ConnConfig)
	sqlDB, err := sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("opening sql.DB: %w", err)
	}
	defer sqlDB.Close()

	return migrate(ctx, sqlDB)
}
