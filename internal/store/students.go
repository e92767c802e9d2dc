package store

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/shrimpsizemoose/kateder/internal/models"
)

// ListStudentsByClass orders by the numeric value of student_no first so seat
// numbers sort correctly even without consistent zero-padding.
func (s *BaseStore) ListStudentsByClass(classID int64) ([]models.Student, error) {
	students := []models.Student{}
	query := s.Converter(`
		SELECT id, class_id, student_no, name, status, created_at
		FROM students
		WHERE class_id = ?
		ORDER BY CAST(student_no AS INTEGER), student_no, id
	`)

	err := s.DB.Select(&students, query, classID)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

func (s *BaseStore) HasStudentNo(classID int64, studentNo string) (bool, error) {
	var id int64
	query := s.Converter(`
		SELECT id FROM students
		WHERE class_id = ? AND student_no = ?
		LIMIT 1
	`)

	err := s.DB.Get(&id, query, classID, studentNo)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check student number: %w", err)
	}
	return true, nil
}

func (s *BaseStore) CreateStudent(classID int64, studentNo, name, status string) (int64, error) {
	id, err := s.InsertID(`
		INSERT INTO students (class_id, student_no, name, status)
		VALUES (?, ?, ?, ?)
	`, classID, studentNo, name, status)
	if err != nil {
		return 0, fmt.Errorf("failed to create student: %w", err)
	}
	return id, nil
}

// DeleteStudentCascade removes a student with their attendance and evaluation
// rows. Reports false when the student was already gone.
func (s *BaseStore) DeleteStudentCascade(id int64) (bool, error) {
	var existing int64
	err := s.DB.Get(&existing, s.Converter(`SELECT id FROM students WHERE id = ?`), id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check student: %w", err)
	}

	err = s.withTx(func(tx *sqlx.Tx) error {
		statements := []string{
			`DELETE FROM attendance WHERE student_id = ?`,
			`DELETE FROM evaluations WHERE student_id = ?`,
			`DELETE FROM students WHERE id = ?`,
		}
		for _, stmt := range statements {
			if _, err := tx.Exec(s.Converter(stmt), id); err != nil {
				return fmt.Errorf("failed to cascade student delete: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// BatchDeleteStudents deletes each id with its dependent rows in one
// transaction and reports how many student rows actually went away. Missing
// ids are not an error.
func (s *BaseStore) BatchDeleteStudents(ids []int64) (int64, error) {
	var deleted int64

	err := s.withTx(func(tx *sqlx.Tx) error {
		delAttendance := s.Converter(`DELETE FROM attendance WHERE student_id = ?`)
		delEvaluations := s.Converter(`DELETE FROM evaluations WHERE student_id = ?`)
		delStudent := s.Converter(`DELETE FROM students WHERE id = ?`)

		for _, id := range ids {
			if _, err := tx.Exec(delAttendance, id); err != nil {
				return fmt.Errorf("failed to delete student attendance: %w", err)
			}
			if _, err := tx.Exec(delEvaluations, id); err != nil {
				return fmt.Errorf("failed to delete student evaluations: %w", err)
			}
			res, err := tx.Exec(delStudent, id)
			if err != nil {
				return fmt.Errorf("failed to delete student: %w", err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("failed to count deleted students: %w", err)
			}
			deleted += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
