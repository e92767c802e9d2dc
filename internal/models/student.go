package models

type Student struct {
	ID        int64  `db:"id" json:"id"`
	ClassID   int64  `db:"class_id" json:"classId"`
	StudentNo string `db:"student_no" json:"studentNo"`
	Name      string `db:"name" json:"name"`
	Status    string `db:"status" json:"status"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}
