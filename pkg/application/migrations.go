package application

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// MigrationManager collects per-module embedded migration sets and applies
// them with goose. Each module tracks its own version table so modules
// stay independently versioned.
type MigrationManager interface {
	RegisterSchema(module string, fsys *embed.FS, dir string)
	Apply(ctx context.Context) error
}

type schemaSet struct {
	module string
	fsys   *embed.FS
	dir    string
}

type migrationManager struct {
	pool    *pgxpool.Pool
	schemas []schemaSet
}

func NewMigrationManager(pool *pgxpool.Pool) MigrationManager {
	return &migrationManager{pool: pool}
}

func (m *migrationManager) RegisterSchema(module string, fsys *embed.FS, dir string) {
	m.schemas = append(m.schemas, schemaSet{module: module, fsys: fsys, dir: dir})
}

func (m *migrationManager) Apply(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(m.pool)
	defer func() { _ = db.Close() }()

	for _, set := range m.schemas {
		sub, err := fs.Sub(set.fsys, set.dir)
		if err != nil {
			return fmt.Errorf("migrations for module %s: %w", set.module, err)
		}
		provider, err := goose.NewProvider(
			goose.DialectPostgres,
			db,
			sub,
			goose.WithTableName(fmt.Sprintf("goose_migrations_%s", set.module)),
		)
		if err != nil {
			return fmt.Errorf("migration provider for module %s: %w", set.module, err)
		}
		if _, err := provider.Up(ctx); err != nil {
			return fmt.Errorf("apply migrations for module %s: %w", set.module, err)
		}
	}
	return nil
}
