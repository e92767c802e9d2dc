package postgres

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/shrimpsizemoose/kateder/internal/store"
)

type PostgresStore struct {
	store.BaseStore
}

func NewPostgresStore(dsn, migrationsDir string) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	convert := func(query string) string {
		out := query
		for i := 1; strings.Contains(out, "?"); i++ {
			out = strings.Replace(out, "?", fmt.Sprintf("$%d", i), 1)
		}
		return out
	}

	s := &PostgresStore{BaseStore: store.BaseStore{
		DB:        db,
		Converter: convert,
	}}
	s.InsertID = func(query string, args ...interface{}) (int64, error) {
		// lib/pq has no LastInsertId; fetch the generated id instead.
		var id int64
		q := convert(strings.TrimSpace(query) + " RETURNING id")
		if err := db.QueryRow(q, args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}

	if err := s.ApplyMigrations(migrationsDir); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return s, nil
}

func (s *PostgresStore) ApplyMigrations(dir string) error {
	return s.BaseStore.ApplyMigrations(dir, nil)
}
