package store

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/shrimpsizemoose/kateder/internal/models"
)

func (s *BaseStore) CreateUser(username, name, passwordHash, role string) (int64, error) {
	id, err := s.InsertID(`
		INSERT INTO users (username, name, password_hash, role)
		VALUES (?, ?, ?, ?)
	`, username, name, passwordHash, role)
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

func (s *BaseStore) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	query := s.Converter(`
		SELECT id, username, name, password_hash, role, created_at
		FROM users
		WHERE username = ?
	`)

	err := s.DB.Get(&user, query, username)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &user, nil
}

func (s *BaseStore) GetUserByID(id int64) (*models.User, error) {
	var user models.User
	query := s.Converter(`
		SELECT id, username, name, password_hash, role, created_at
		FROM users
		WHERE id = ?
	`)

	err := s.DB.Get(&user, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &user, nil
}

func (s *BaseStore) ListTeachersWithClasses() ([]models.TeacherWithClasses, error) {
	teachers := []models.TeacherWithClasses{}
	err := s.DB.Select(&teachers, `
		SELECT id, username, name, role, created_at
		FROM users
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}

	var perms []struct {
		TeacherID int64  `db:"teacher_id"`
		ClassID   int64  `db:"class_id"`
		ClassName string `db:"class_name"`
	}
	err = s.DB.Select(&perms, `
		SELECT p.teacher_id, p.class_id, c.name AS class_name
		FROM teacher_class_permissions p
		JOIN classes c ON c.id = p.class_id
		ORDER BY p.teacher_id, p.class_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list teacher permissions: %w", err)
	}

	byTeacher := make(map[int64][]models.ClassRef)
	for _, p := range perms {
		byTeacher[p.TeacherID] = append(byTeacher[p.TeacherID], models.ClassRef{ID: p.ClassID, Name: p.ClassName})
	}

	for i := range teachers {
		assigned := byTeacher[teachers[i].ID]
		if assigned == nil {
			assigned = []models.ClassRef{}
		}
		teachers[i].AssignedClasses = assigned
	}

	return teachers, nil
}

func (s *BaseStore) UpdateUser(id int64, name, role, passwordHash string) error {
	query := s.Converter(`
		UPDATE users SET name = ?, role = ?, password_hash = ? WHERE id = ?
	`)
	if _, err := s.DB.Exec(query, name, role, passwordHash, id); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// DeleteUserCascade removes a user together with their sessions, class
// permissions and authored attendance/evaluation rows. Reports false when the
// user was already gone.
func (s *BaseStore) DeleteUserCascade(id int64) (bool, error) {
	existing, err := s.GetUserByID(id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	err = s.withTx(func(tx *sqlx.Tx) error {
		statements := []string{
			`DELETE FROM sessions WHERE user_id = ?`,
			`DELETE FROM teacher_class_permissions WHERE teacher_id = ?`,
			`DELETE FROM attendance WHERE teacher_id = ?`,
			`DELETE FROM evaluations WHERE teacher_id = ?`,
			`DELETE FROM users WHERE id = ?`,
		}
		for _, stmt := range statements {
			if _, err := tx.Exec(s.Converter(stmt), id); err != nil {
				return fmt.Errorf("failed to cascade user delete: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
