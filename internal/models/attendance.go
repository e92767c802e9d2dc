package models

// Attendance statuses accepted on the wire.
const (
	AttendancePresent = "present"
	AttendanceLate    = "late"
	AttendanceAbsent  = "absent"
	AttendanceLeave   = "leave"
)

// Attendance holds one per-student per-day mark. At most one row exists
// per (class, student, date); re-posting overwrites status and teacher.
type Attendance struct {
	ID        int64  `db:"id" json:"id"`
	ClassID   int64  `db:"class_id" json:"classId"`
	StudentID int64  `db:"student_id" json:"studentId"`
	Status    string `db:"status" json:"status"`
	Date      string `db:"attendance_date" json:"date"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}
