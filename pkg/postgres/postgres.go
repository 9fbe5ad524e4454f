// Package postgres подключает журнал разметки к PostgreSQL и накатывает его схему.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/hsm-textlab/workbench/internal/cfg"
	"github.com/hsm-textlab/workbench/pkg/e"
	"github.com/hsm-textlab/workbench/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	pingTimeout   = 5 * time.Second
	sqlDriverName = "pgx"
	migrateDBName = "postgres"
)

// PgDatabase держит пул соединений журнала и знает, откуда брать миграции.
type PgDatabase struct {
	Pool       *pgxpool.Pool
	dsn        string
	migrations string
}

// Connect открывает пул и проверяет его. При неудаче пул закрывается.
func Connect(ctx context.Context, cfg *cfg.PGDBCfg) (*PgDatabase, error) {
	const op = "postgres.Connect"

	dsn := cfg.DSN()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	db := &PgDatabase{Pool: pool, dsn: dsn, migrations: cfg.Migrations}
	if err := db.Ping(ctx); err != nil {
		pool.Close()
		return nil, e.Wrap(op, err)
	}

	return db, nil
}

func (db *PgDatabase) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.Pool.Ping(ctx); err != nil {
		return e.Wrap("PgDatabase.Ping", err)
	}

	return nil
}

func (db *PgDatabase) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// RunMigrations поднимает схему до последней версии и пишет в лог итоговую версию.
func (db *PgDatabase) RunMigrations(log logger.Logger) (err error) {
	const op = "PgDatabase.RunMigrations"

	m, err := db.newMigrator()
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if err == nil {
			err = errors.Join(srcErr, dbErr)
		}
	}()

	switch err := m.Up(); {
	case errors.Is(err, migrate.ErrNoChange):
		log.Debugf("label journal schema is up to date")
	case err != nil:
		return e.Wrap(op, err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return e.Wrap(op, err)
	}
	log.Infof("label journal schema version %d (dirty=%t) from %s", version, dirty, db.migrations)

	return nil
}

// newMigrator открывает отдельное database/sql подключение: migrate не работает с pgxpool.
func (db *PgDatabase) newMigrator() (*migrate.Migrate, error) {
	sqlDB, err := sql.Open(sqlDriverName, db.dsn)
	if err != nil {
		return nil, err
	}

	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	m, err := migrate.NewWithDatabaseInstance(db.migrations, migrateDBName, driver)
	if err != nil {
		_ = driver.Close()
		return nil, err
	}

	return m, nil
}
