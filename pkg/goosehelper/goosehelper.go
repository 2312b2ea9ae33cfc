package goosehelper

import (
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

// MigrateUp выполняет миграции из директории migrationsDir встроенной файловой системы migrations
func MigrateUp(db *sql.DB, migrations fs.FS, migrationsDir string) error {
	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}
	return nil
}
