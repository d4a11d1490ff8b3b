package storage

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sklep-internetowy/backend/internal/adapter/config"
)

type DB struct {
	*pgxpool.Pool
	dsn          string
	QueryBuilder *squirrel.StatementBuilderType
}

// Migration sets, one per service database.
const (
	MigrationsOrders   = "orders"
	MigrationsProducts = "products"
)

//go:embed migrations/orders/*.sql migrations/products/*.sql
var migrationsDir embed.FS

func NewDBStorage(ctx context.Context, conf *config.Database) (*DB, error) {
	poolConf, err := pgxpool.ParseConfig(conf.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	poolConf.MaxConns = conf.MaxConns
	poolConf.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, poolConf)
	if err != nil {
		return nil, fmt.Errorf("failed to create a connection pool: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	dbs := DB{
		Pool:         pool,
		dsn:          conf.DSN,
		QueryBuilder: &psql,
	}

	return &dbs, nil
}

// RunMigrations applies the named embedded migration set.
func (db *DB) RunMigrations(set string) error {
	d, err := iofs.New(migrationsDir, "migrations/"+set)
	if err != nil {
		return fmt.Errorf("failed to return an iofs driver: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", d, db.dsn)
	if err != nil {
		return fmt.Errorf("failed to get a new migrate instance: %w", err)
	}
	if err := m.Up(); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to apply migrations to the DB: %w", err)
		}
	}
	return nil
}
