package store

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/shrimpsizemoose/kateder/internal/models"
)

func (s *BaseStore) ListClasses() ([]models.Class, error) {
	classes := []models.Class{}
	err := s.DB.Select(&classes, `
		SELECT id, name, grade, created_at
		FROM classes
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}
	return classes, nil
}

func (s *BaseStore) GetClass(id int64) (*models.Class, error) {
	var class models.Class
	query := s.Converter(`
		SELECT id, name, grade, created_at
		FROM classes
		WHERE id = ?
	`)

	err := s.DB.Get(&class, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get class: %w", err)
	}
	return &class, nil
}

func (s *BaseStore) CreateClass(name, grade string) (int64, error) {
	id, err := s.InsertID(`
		INSERT INTO classes (name, grade)
		VALUES (?, ?)
	`, name, grade)
	if err != nil {
		return 0, fmt.Errorf("failed to create class: %w", err)
	}
	return id, nil
}

func (s *BaseStore) UpdateClass(id int64, name, grade string) error {
	query := s.Converter(`UPDATE classes SET name = ?, grade = ? WHERE id = ?`)
	if _, err := s.DB.Exec(query, name, grade, id); err != nil {
		return fmt.Errorf("failed to update class: %w", err)
	}
	return nil
}

// DeleteClassCascade removes a class, its students, every attendance and
// evaluation row tied to the class or its students, and the class permission
// rows. Reports false when the class was already gone.
func (s *BaseStore) DeleteClassCascade(id int64) (bool, error) {
	existing, err := s.GetClass(id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	err = s.withTx(func(tx *sqlx.Tx) error {
		var studentIDs []int64
		if err := tx.Select(&studentIDs, s.Converter(`SELECT id FROM students WHERE class_id = ?`), id); err != nil {
			return fmt.Errorf("failed to list class students: %w", err)
		}

		byClass := []string{
			`DELETE FROM attendance WHERE class_id = ?`,
			`DELETE FROM evaluations WHERE class_id = ?`,
			`DELETE FROM teacher_class_permissions WHERE class_id = ?`,
		}
		for _, stmt := range byClass {
			if _, err := tx.Exec(s.Converter(stmt), id); err != nil {
				return fmt.Errorf("failed to cascade class delete: %w", err)
			}
		}

		delAttendance := s.Converter(`DELETE FROM attendance WHERE student_id = ?`)
		delEvaluations := s.Converter(`DELETE FROM evaluations WHERE student_id = ?`)
		for _, studentID := range studentIDs {
			if _, err := tx.Exec(delAttendance, studentID); err != nil {
				return fmt.Errorf("failed to cascade student attendance delete: %w", err)
			}
			if _, err := tx.Exec(delEvaluations, studentID); err != nil {
				return fmt.Errorf("failed to cascade student evaluation delete: %w", err)
			}
		}

		if _, err := tx.Exec(s.Converter(`DELETE FROM students WHERE class_id = ?`), id); err != nil {
			return fmt.Errorf("failed to delete class students: %w", err)
		}
		if _, err := tx.Exec(s.Converter(`DELETE FROM classes WHERE id = ?`), id); err != nil {
			return fmt.Errorf("failed to delete class: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// CountClassesByIDs reports how many of the given ids exist. Used to validate
// permission replacements before any row changes.
func (s *BaseStore) CountClassesByIDs(ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := sqlx.In(`SELECT COUNT(1) FROM classes WHERE id IN (?)`, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to build class count query: %w", err)
	}

	var count int
	if err := s.DB.Get(&count, s.Converter(query), args...); err != nil {
		return 0, fmt.Errorf("failed to count classes: %w", err)
	}
	return count, nil
}
