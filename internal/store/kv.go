package store

import (
	"fmt"
)

// The kv_store table is a flat namespaced map with no relation to the entity
// model. It mirrors client-local state server-side.

func (s *BaseStore) KVSnapshot(namespace string) (map[string]string, error) {
	var rows []struct {
		Key   string `db:"storage_key"`
		Value string `db:"storage_value"`
	}
	query := s.Converter(`
		SELECT storage_key, storage_value
		FROM kv_store
		WHERE namespace = ?
	`)

	err := s.DB.Select(&rows, query, namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot namespace: %w", err)
	}

	items := make(map[string]string, len(rows))
	for _, row := range rows {
		items[row.Key] = row.Value
	}
	return items, nil
}

func (s *BaseStore) KVUpsert(namespace, key, value string) error {
	query := s.Converter(`
		INSERT INTO kv_store (namespace, storage_key, storage_value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (namespace, storage_key)
		DO UPDATE SET storage_value = excluded.storage_value, updated_at = excluded.updated_at
	`)

	if _, err := s.DB.Exec(query, namespace, key, value, nowText()); err != nil {
		return fmt.Errorf("failed to upsert kv entry: %w", err)
	}
	return nil
}

func (s *BaseStore) KVDelete(namespace, key string) error {
	query := s.Converter(`DELETE FROM kv_store WHERE namespace = ? AND storage_key = ?`)
	if _, err := s.DB.Exec(query, namespace, key); err != nil {
		return fmt.Errorf("failed to delete kv entry: %w", err)
	}
	return nil
}

func (s *BaseStore) KVClear(namespace string) error {
	query := s.Converter(`DELETE FROM kv_store WHERE namespace = ?`)
	if _, err := s.DB.Exec(query, namespace); err != nil {
		return fmt.Errorf("failed to clear namespace: %w", err)
	}
	return nil
}
