// Package db provides PostgreSQL connection, migration and health utilities
// built on [github.com/jackc/pgx/v5/pgxpool] and [github.com/pressly/goose/v3].
//
// # Configuration
//
// Settings are loaded from environment variables:
//
//	DATABASE_URL                - PostgreSQL connection URL
//	DATABASE_MAX_OPEN_CONNS     - Maximum open connections (default: 10)
//	DATABASE_MIN_CONNS          - Minimum idle connections (default: 2)
//	DATABASE_HEALTHCHECK_PERIOD - Health check interval (default: 1m)
//	DATABASE_MAX_CONN_IDLE_TIME - Maximum connection idle time (default: 10m)
//	DATABASE_MAX_CONN_LIFETIME  - Maximum connection lifetime (default: 30m)
//	DATABASE_RETRY_ATTEMPTS     - Connection retry attempts (default: 3)
//	DATABASE_RETRY_INTERVAL     - Base retry interval (default: 5s)
//	DATABASE_MIGRATIONS_TABLE   - Migrations table name (default: schema_migrations)
//
// # Usage
//
//	pool, err := db.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := db.Migrate(ctx, pool, migrations.FS, cfg.MigrationsTable, log); err != nil {
//		return err
//	}
//
// [Healthcheck] returns a closure suitable for readiness probes, and
// [Shutdown] returns a hook that closes the pool on server shutdown.
//
// # Error Handling
//
// Failures are reported as sentinel errors joined with the cause via
// [errors.Join]:
//
//   - [ErrMissingConnectionString] - DATABASE_URL is empty
//   - [ErrFailedToParseDBConfig] - Invalid connection string format
//   - [ErrFailedToOpenDBConnection] - Connection failed after all retries
//   - [ErrHealthcheckFailed] - Database ping failed
//   - [ErrSetDialect] - Migration dialect configuration error
//   - [ErrApplyMigrations] - Migration execution failed
//   - [ErrMigrationStatus] - Reading the applied version failed
package db
