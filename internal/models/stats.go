package models

type TopStudent struct {
	ID              int64   `db:"id" json:"id"`
	Name            string  `db:"name" json:"name"`
	ClassID         int64   `db:"class_id" json:"classId"`
	AvgScore        float64 `db:"avg_score" json:"avgScore"`
	EvaluationCount int64   `db:"evaluation_count" json:"evaluationCount"`
}

type OverviewStats struct {
	Classes     int64        `json:"classes"`
	Students    int64        `json:"students"`
	Evaluations int64        `json:"evaluations"`
	AvgScore    float64      `json:"avgScore"`
	TopStudents []TopStudent `json:"topStudents"`
}

type TeacherStats struct {
	EvaluationCount int64 `db:"evaluation_count" json:"evaluation_count"`
	StarsGiven      int64 `db:"stars_given" json:"stars_given"`
}

// StudentEvaluationStat feeds per-class group scoring in the front-end.
type StudentEvaluationStat struct {
	StudentID       int64  `db:"student_id" json:"studentId"`
	Name            string `db:"name" json:"name"`
	TotalStars      int64  `db:"total_stars" json:"totalStars"`
	EvaluationCount int64  `db:"evaluation_count" json:"evaluationCount"`
}
