package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"quiz-practice-service/internal/config"
	"quiz-practice-service/internal/infra/memory"
	pgstore "quiz-practice-service/internal/infra/postgres"
	pgmigrations "quiz-practice-service/internal/infra/postgres/migrations"
	redisstore "quiz-practice-service/internal/infra/redis"
	sqlitestore "quiz-practice-service/internal/infra/sqlite"
	"quiz-practice-service/internal/repo"
)

// openStore builds the configured key-value store and runs the schema
// migration so every command starts against an up-to-date layout. The
// returned cleanup releases the backend's resources.
func openStore(ctx context.Context, configPath string) (repo.Store, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	store, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := repo.NewMigrator(store).EnsureSchema(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}
	return store, cleanup, nil
}

func buildStore(ctx context.Context, cfg config.Config) (repo.Store, func(), error) {
	switch cfg.Storage.Backend {
	case "", "memory":
		return memory.NewStore(), func() {}, nil
	case "sqlite":
		store, err := sqlitestore.Open(cfg.Storage.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, func() { _ = store.Close() }, nil
	case "redis":
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return redisstore.NewStore(client), func() { _ = client.Close() }, nil
	case "postgres":
		if err := runPostgresMigrations(ctx, cfg.Postgres.URL); err != nil {
			return nil, nil, err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		return pgstore.NewStore(pool), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// runPostgresMigrations ensures the kv table exists before the pool is used.
func runPostgresMigrations(ctx context.Context, url string) error {
	if url == "" {
		return fmt.Errorf("postgres url not configured")
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(url)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return err
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		return err
	}
	return nil
}
