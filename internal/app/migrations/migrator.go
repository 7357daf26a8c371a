package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed *.sql
var FS embed.FS

// Migrator applies the embedded schema migrations with goose
type Migrator struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewMigrator creates a new migrator over a database/sql handle
func NewMigrator(db *sql.DB, logger zerolog.Logger) *Migrator {
	return &Migrator{
		db:     db,
		logger: logger,
	}
}

func (m *Migrator) provider() (*goose.Provider, error) {
	p, err := goose.NewProvider(goose.DialectPostgres, m.db, FS)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	return p, nil
}

// Up applies every pending migration
func (m *Migrator) Up(ctx context.Context) error {
	p, err := m.provider()
	if err != nil {
		return err
	}
	results, err := p.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	for _, r := range results {
		m.logger.Info().
			Int64("version", r.Source.Version).
			Str("file", r.Source.Path).
			Dur("duration", r.Duration).
			Msg("Applied migration")
	}
	if len(results) == 0 {
		m.logger.Info().Msg("Database schema is up to date")
	}
	return nil
}

// Version returns the current schema version
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	p, err := m.provider()
	if err != nil {
		return 0, err
	}
	return p.GetDBVersion(ctx)
}
