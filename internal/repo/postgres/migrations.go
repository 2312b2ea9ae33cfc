package postgres

import "embed"

// Migrations - SQL-миграции схемы для goose
//
//go:embed migrations/*.sql
var Migrations embed.FS

const MigrationsDir = "migrations"
