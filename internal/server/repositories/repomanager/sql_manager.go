// Package repomanager wires repository constructors, database connections and
// goose migrations for the supported dialects.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gqlauth/internal/dbx"
	"github.com/dmitrijs2005/gqlauth/internal/logging"
	"github.com/dmitrijs2005/gqlauth/internal/server/migrations"
	"github.com/dmitrijs2005/gqlauth/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

// SQLRepositoryManager serves both PostgreSQL and SQLite; only the migration
// set differs between them.
type SQLRepositoryManager struct {
	dialect Dialect
	logger  logging.Logger
}

type Option func(*SQLRepositoryManager)

// WithLogger sends migration output to logger. Without it goose stays quiet.
func WithLogger(logger logging.Logger) Option {
	return func(m *SQLRepositoryManager) {
		m.logger = logger.With("component", "migrations")
	}
}

// NewRepositoryManager constructs a RepositoryManager for dialect.
func NewRepositoryManager(dialect Dialect, opts ...Option) (RepositoryManager, error) {
	switch dialect {
	case DialectPostgres, DialectSQLite:
	default:
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}

	m := &SQLRepositoryManager{dialect: dialect, logger: logging.NewNopLogger()}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations for the manager's dialect.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(m.migrationLogger())
	if err := goose.SetDialect(m.gooseDialect()); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, string(m.dialect)); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	return nil
}

func (m *SQLRepositoryManager) migrationLogger() goose.Logger {
	if m.logger == nil {
		return goose.NopLogger()
	}
	return gooseLogger{logger: m.logger}
}

func (m *SQLRepositoryManager) gooseDialect() string {
	if m.dialect == DialectSQLite {
		return "sqlite3"
	}
	return "pgx"
}
