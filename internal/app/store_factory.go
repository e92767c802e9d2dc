package app

import (
	"strings"

	"github.com/shrimpsizemoose/kateder/internal/store"
	"github.com/shrimpsizemoose/kateder/internal/store/postgres"
	"github.com/shrimpsizemoose/kateder/internal/store/sqlite"
)

func NewStore(dsn, migrationsDir string) (store.Store, error) {
	if strings.HasPrefix(dsn, "postgres") {
		return postgres.NewPostgresStore(dsn, migrationsDir)
	}
	return sqlite.NewSQLiteStore(dsn, migrationsDir)
}
