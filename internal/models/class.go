package models

type Class struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Grade     string `db:"grade" json:"grade"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}
