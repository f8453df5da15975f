package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"reportdesk/internal/common"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

type MigrateOpts struct {
	Connection *sql.DB

	// Steps when non-zero applies that many migration steps, negative
	// values roll back; when zero, migrates all the way up
	Steps int

	ServiceLogs chan<- common.ServiceLog
}

func MigrateMysql(opts MigrateOpts) error {
	driver, err := mysql.WithInstance(opts.Connection, &mysql.Config{})
	if err != nil {
		return fmt.Errorf("failed to create mysql driver: %w", err)
	}

	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "mysql", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator instance: %w", err)
	}

	version, isDirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get version of current migration: %w", err)
	}
	if isDirty {
		return fmt.Errorf("failed to get a clean slate to run migrations on (current dirty version: %v)", version)
	}
	opts.ServiceLogs <- common.ServiceLogf(common.LogLevelDebug, "current migration version: %v", version)

	if opts.Steps != 0 {
		opts.ServiceLogs <- common.ServiceLogf(common.LogLevelDebug, "applying %v migration steps", opts.Steps)
		err = migrator.Steps(opts.Steps)
	} else {
		opts.ServiceLogs <- common.ServiceLogf(common.LogLevelDebug, "applying all pending migrations")
		err = migrator.Up()
	}
	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			opts.ServiceLogs <- common.ServiceLogf(common.LogLevelDebug, "schema is already up to date")
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
