package store

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/shrimpsizemoose/kateder/internal/models"
)

// Store is the single owner of all persisted classroom data. Handlers never
// cache entity state across requests.
type Store interface {
	Close() error
	ApplyMigrations(dir string) error

	CreateUser(username, name, passwordHash, role string) (int64, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id int64) (*models.User, error)
	ListTeachersWithClasses() ([]models.TeacherWithClasses, error)
	UpdateUser(id int64, name, role, passwordHash string) error
	DeleteUserCascade(id int64) (bool, error)

	CreateSession(session *models.Session) error
	GetSessionUser(token string) (*models.Session, *models.User, error)
	DeleteSession(token string) error

	ListClasses() ([]models.Class, error)
	GetClass(id int64) (*models.Class, error)
	CreateClass(name, grade string) (int64, error)
	UpdateClass(id int64, name, grade string) error
	DeleteClassCascade(id int64) (bool, error)
	CountClassesByIDs(ids []int64) (int, error)

	ListStudentsByClass(classID int64) ([]models.Student, error)
	HasStudentNo(classID int64, studentNo string) (bool, error)
	CreateStudent(classID int64, studentNo, name, status string) (int64, error)
	DeleteStudentCascade(id int64) (bool, error)
	BatchDeleteStudents(ids []int64) (int64, error)

	ListTeacherClassIDs(teacherID int64) ([]int64, error)
	ReplaceTeacherClassPermissions(teacherID int64, classIDs []int64) error

	ListAttendance(classID int64, date string) ([]models.Attendance, error)
	UpsertAttendance(classID, studentID, teacherID int64, status, date string) error

	CreateEvaluation(classID, studentID, teacherID int64, score int, tagsJSON, comment string) (int64, error)
	ClassEvaluationStats(classID int64) ([]models.StudentEvaluationStat, error)
	OverviewStats() (*models.OverviewStats, error)
	TeacherStats(teacherID int64) (*models.TeacherStats, error)

	KVSnapshot(namespace string) (map[string]string, error)
	KVUpsert(namespace, key, value string) error
	KVDelete(namespace, key string) error
	KVClear(namespace string) error
}

// BaseStore provides common functionality for different DB implementations.
// Converter rewrites '?' placeholders into the backend dialect; InsertID runs
// a single-row INSERT and reports the generated id.
type BaseStore struct {
	DB        *sqlx.DB
	Converter func(string) string
	InsertID  func(query string, args ...interface{}) (int64, error)
}

func (s *BaseStore) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

// ApplyMigrations applies SQL migrations from a directory, translating dialect if needed
func (s *BaseStore) ApplyMigrations(dir string, translateSQL func(string) string) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, file := range files {
		if !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		content, err := os.ReadFile(fmt.Sprintf("%s/%s", dir, file.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file.Name(), err)
		}

		sql := string(content)
		if translateSQL != nil {
			sql = translateSQL(sql)
		}

		if _, err := s.DB.Exec(sql); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file.Name(), err)
		}
	}

	return nil
}

// withTx runs fn inside a transaction; any error rolls the whole thing back
// so no partial cascade survives a failure.
func (s *BaseStore) withTx(fn func(tx *sqlx.Tx) error) error {
	tx, err := s.DB.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// nowText is the textual timestamp written from the Go side (kv updated_at).
func nowText() string {
	return time.Now().UTC().Format("2006-01-02 15:04:05")
}
