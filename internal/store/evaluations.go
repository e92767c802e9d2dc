package store

import (
	"fmt"

	"github.com/shrimpsizemoose/kateder/internal/models"
)

// CreateEvaluation is a pure insert. Evaluations have no update or delete
// path; they are an append-only log feeding the aggregate statistics.
func (s *BaseStore) CreateEvaluation(classID, studentID, teacherID int64, score int, tagsJSON, comment string) (int64, error) {
	id, err := s.InsertID(`
		INSERT INTO evaluations (class_id, student_id, teacher_id, score, tags_json, comment)
		VALUES (?, ?, ?, ?, ?, ?)
	`, classID, studentID, teacherID, score, tagsJSON, comment)
	if err != nil {
		return 0, fmt.Errorf("failed to create evaluation: %w", err)
	}
	return id, nil
}

func (s *BaseStore) ClassEvaluationStats(classID int64) ([]models.StudentEvaluationStat, error) {
	stats := []models.StudentEvaluationStat{}
	query := s.Converter(`
		SELECT
			s.id AS student_id,
			s.name,
			COALESCE(SUM(e.score), 0) AS total_stars,
			COUNT(e.id) AS evaluation_count
		FROM students s
		LEFT JOIN evaluations e ON e.student_id = s.id
		WHERE s.class_id = ?
		GROUP BY s.id, s.name
		ORDER BY s.id
	`)

	err := s.DB.Select(&stats, query, classID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch class evaluation stats: %w", err)
	}
	return stats, nil
}

func (s *BaseStore) OverviewStats() (*models.OverviewStats, error) {
	stats := &models.OverviewStats{TopStudents: []models.TopStudent{}}

	counts := []struct {
		query string
		dest  *int64
	}{
		{`SELECT COUNT(1) FROM classes`, &stats.Classes},
		{`SELECT COUNT(1) FROM students`, &stats.Students},
		{`SELECT COUNT(1) FROM evaluations`, &stats.Evaluations},
	}
	for _, c := range counts {
		if err := s.DB.Get(c.dest, c.query); err != nil {
			return nil, fmt.Errorf("failed to count rows: %w", err)
		}
	}

	err := s.DB.Get(&stats.AvgScore, `
		SELECT COALESCE(ROUND(AVG(score), 2), 0) FROM evaluations
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to compute average score: %w", err)
	}

	err = s.DB.Select(&stats.TopStudents, `
		SELECT
			s.id,
			s.name,
			s.class_id,
			ROUND(AVG(e.score), 2) AS avg_score,
			COUNT(e.id) AS evaluation_count
		FROM evaluations e
		JOIN students s ON s.id = e.student_id
		GROUP BY s.id, s.name, s.class_id
		ORDER BY avg_score DESC, evaluation_count DESC
		LIMIT 10
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch top students: %w", err)
	}

	return stats, nil
}

func (s *BaseStore) TeacherStats(teacherID int64) (*models.TeacherStats, error) {
	var stats models.TeacherStats
	query := s.Converter(`
		SELECT
			COUNT(1) AS evaluation_count,
			COALESCE(SUM(score), 0) AS stars_given
		FROM evaluations
		WHERE teacher_id = ?
	`)

	err := s.DB.Get(&stats, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch teacher stats: %w", err)
	}
	return &stats, nil
}
