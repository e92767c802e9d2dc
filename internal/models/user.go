package models

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
)

type User struct {
	ID           int64  `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	Name         string `db:"name" json:"name"`
	PasswordHash string `db:"password_hash" json:"-"`
	Role         string `db:"role" json:"role"`
	CreatedAt    string `db:"created_at" json:"createdAt"`
}

// ClassRef is the short class shape embedded in teacher listings.
type ClassRef struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// TeacherWithClasses is a user row plus the classes assigned to them.
type TeacherWithClasses struct {
	ID              int64      `db:"id" json:"id"`
	Username        string     `db:"username" json:"username"`
	Name            string     `db:"name" json:"name"`
	Role            string     `db:"role" json:"role"`
	CreatedAt       string     `db:"created_at" json:"createdAt"`
	AssignedClasses []ClassRef `json:"assignedClasses"`
}
