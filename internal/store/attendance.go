package store

import (
	"fmt"

	"github.com/shrimpsizemoose/kateder/internal/models"
)

func (s *BaseStore) ListAttendance(classID int64, date string) ([]models.Attendance, error) {
	records := []models.Attendance{}
	query := s.Converter(`
		SELECT id, class_id, student_id, status, attendance_date, created_at
		FROM attendance
		WHERE class_id = ? AND attendance_date = ?
		ORDER BY student_id
	`)

	err := s.DB.Select(&records, query, classID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return records, nil
}

// UpsertAttendance keeps at most one row per (class, student, date); posting
// again overwrites status and the recording teacher, so same-day corrections
// never duplicate.
func (s *BaseStore) UpsertAttendance(classID, studentID, teacherID int64, status, date string) error {
	query := s.Converter(`
		INSERT INTO attendance (class_id, student_id, status, attendance_date, teacher_id)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (class_id, student_id, attendance_date)
		DO UPDATE SET status = excluded.status, teacher_id = excluded.teacher_id
	`)

	if _, err := s.DB.Exec(query, classID, studentID, status, date, teacherID); err != nil {
		return fmt.Errorf("failed to upsert attendance: %w", err)
	}
	return nil
}
