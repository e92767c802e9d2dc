package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

func (s *BaseStore) ListTeacherClassIDs(teacherID int64) ([]int64, error) {
	classIDs := []int64{}
	query := s.Converter(`
		SELECT class_id
		FROM teacher_class_permissions
		WHERE teacher_id = ?
		ORDER BY class_id
	`)

	err := s.DB.Select(&classIDs, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teacher class ids: %w", err)
	}
	return classIDs, nil
}

// ReplaceTeacherClassPermissions swaps the whole permission set in one
// transaction: delete everything for the teacher, then insert the new ids.
// Last writer wins on concurrent replaces.
func (s *BaseStore) ReplaceTeacherClassPermissions(teacherID int64, classIDs []int64) error {
	return s.withTx(func(tx *sqlx.Tx) error {
		if _, err := tx.Exec(s.Converter(`DELETE FROM teacher_class_permissions WHERE teacher_id = ?`), teacherID); err != nil {
			return fmt.Errorf("failed to clear teacher permissions: %w", err)
		}

		insert := s.Converter(`
			INSERT INTO teacher_class_permissions (teacher_id, class_id)
			VALUES (?, ?)
		`)
		for _, classID := range classIDs {
			if _, err := tx.Exec(insert, teacherID, classID); err != nil {
				return fmt.Errorf("failed to insert teacher permission: %w", err)
			}
		}
		return nil
	})
}
