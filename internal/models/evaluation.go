package models

// Evaluation is an append-only star rating. Tags are kept serialized as a
// JSON array string; nothing reads them back individually server-side.
type Evaluation struct {
	ID        int64  `db:"id" json:"id"`
	ClassID   int64  `db:"class_id" json:"classId"`
	StudentID int64  `db:"student_id" json:"studentId"`
	TeacherID int64  `db:"teacher_id" json:"teacherId"`
	Score     int    `db:"score" json:"score"`
	TagsJSON  string `db:"tags_json" json:"-"`
	Comment   string `db:"comment" json:"comment"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}
