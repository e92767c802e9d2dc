package store

import (
	"database/sql"
	"fmt"

	"github.com/shrimpsizemoose/kateder/internal/models"
)

func (s *BaseStore) CreateSession(session *models.Session) error {
	_, err := s.DB.NamedExec(`
		INSERT INTO sessions (token, user_id, expires_at)
		VALUES (:token, :user_id, :expires_at)
	`, session)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetSessionUser looks a token up joined with its owning user. Expiry is the
// caller's business; a missing token yields (nil, nil, nil).
func (s *BaseStore) GetSessionUser(token string) (*models.Session, *models.User, error) {
	var row struct {
		Token     string `db:"token"`
		UserID    int64  `db:"user_id"`
		ExpiresAt string `db:"expires_at"`
		Username  string `db:"username"`
		Name      string `db:"name"`
		Role      string `db:"role"`
		CreatedAt string `db:"created_at"`
	}

	query := s.Converter(`
		SELECT s.token, s.user_id, s.expires_at, u.username, u.name, u.role, u.created_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.token = ?
	`)

	err := s.DB.Get(&row, query, token)
	if err == sql.ErrNoRows {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get session: %w", err)
	}

	session := &models.Session{
		Token:     row.Token,
		UserID:    row.UserID,
		ExpiresAt: row.ExpiresAt,
	}
	user := &models.User{
		ID:        row.UserID,
		Username:  row.Username,
		Name:      row.Name,
		Role:      row.Role,
		CreatedAt: row.CreatedAt,
	}
	return session, user, nil
}

func (s *BaseStore) DeleteSession(token string) error {
	query := s.Converter(`DELETE FROM sessions WHERE token = ?`)
	if _, err := s.DB.Exec(query, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
