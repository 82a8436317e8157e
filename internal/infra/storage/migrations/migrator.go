package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var embedded embed.FS

const dir = "sql"

// Migrator обёртка над goose, миграции вшиты в бинарник
type Migrator struct {
	db  *sql.DB
	log Logger
}

type Logger interface {
	Info(format string, v ...interface{})
}

// NewMigrator создаёт новый мигратор
func NewMigrator(db *sql.DB, log Logger) (*Migrator, error) {
	goose.SetBaseFS(embedded)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}

	return &Migrator{db: db, log: log}, nil
}

// Run применяет все pending миграции
func (m *Migrator) Run(ctx context.Context) error {
	m.log.Info("Applying database migrations...")

	if err := goose.UpContext(ctx, m.db, dir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return fmt.Errorf("get version: %w", err)
	}

	m.log.Info("Migrations applied, version=%d", version)
	return nil
}
