// internal/store/sqlite/store_test.go
package sqlite

import (
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/kateder/internal/models"
)

// setupTestStore creates a throwaway on-disk SQLite database with the real
// migrations applied.
func setupTestStore(t *testing.T) *SQLiteStore {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s, err := NewSQLiteStore(dbPath, "../../../migrations")
	require.NoError(t, err, "Failed to create store")

	t.Cleanup(func() {
		err := s.Close()
		require.NoError(t, err, "Failed to close database")
	})

	return s
}

type testData struct {
	store     *SQLiteStore
	teacherID int64
	classID   int64
	studentID int64
}

func setupTestData(t *testing.T) *testData {
	s := setupTestStore(t)

	teacherID, err := s.CreateUser("teacher", "教师账号", "not-a-real-hash", models.RoleTeacher)
	require.NoError(t, err, "Failed to create teacher")

	classID, err := s.CreateClass("高一(1)班", "高一")
	require.NoError(t, err, "Failed to create class")

	studentID, err := s.CreateStudent(classID, "01", "张明", "active")
	require.NoError(t, err, "Failed to create student")

	return &testData{
		store:     s,
		teacherID: teacherID,
		classID:   classID,
		studentID: studentID,
	}
}

func TestMain(m *testing.M) {
	log.Println("Starting SQLite store tests...")
	code := m.Run()
	log.Println("Finished SQLite store tests")
	os.Exit(code)
}

func TestStudentNumbers(t *testing.T) {
	td := setupTestData(t)

	t.Run("existing seat number is reported taken", func(t *testing.T) {
		taken, err := td.store.HasStudentNo(td.classID, "01")
		require.NoError(t, err)
		assert.True(t, taken)
	})

	t.Run("free seat number is reported free", func(t *testing.T) {
		taken, err := td.store.HasStudentNo(td.classID, "02")
		require.NoError(t, err)
		assert.False(t, taken)
	})

	t.Run("listing sorts seat numbers numerically", func(t *testing.T) {
		_, err := td.store.CreateStudent(td.classID, "10", "李华", "active")
		require.NoError(t, err)
		_, err = td.store.CreateStudent(td.classID, "2", "王敏", "active")
		require.NoError(t, err)

		students, err := td.store.ListStudentsByClass(td.classID)
		require.NoError(t, err)
		require.Len(t, students, 3)
		assert.Equal(t, "01", students[0].StudentNo)
		assert.Equal(t, "2", students[1].StudentNo)
		assert.Equal(t, "10", students[2].StudentNo)
	})
}

func TestDeleteClassCascade(t *testing.T) {
	td := setupTestData(t)

	err := td.store.UpsertAttendance(td.classID, td.studentID, td.teacherID, models.AttendancePresent, "2024-01-15")
	require.NoError(t, err)
	_, err = td.store.CreateEvaluation(td.classID, td.studentID, td.teacherID, 5, `["active"]`, "")
	require.NoError(t, err)
	err = td.store.ReplaceTeacherClassPermissions(td.teacherID, []int64{td.classID})
	require.NoError(t, err)

	t.Run("first delete removes class and dependents", func(t *testing.T) {
		deleted, err := td.store.DeleteClassCascade(td.classID)
		require.NoError(t, err)
		assert.True(t, deleted)

		class, err := td.store.GetClass(td.classID)
		require.NoError(t, err)
		assert.Nil(t, class)

		students, err := td.store.ListStudentsByClass(td.classID)
		require.NoError(t, err)
		assert.Empty(t, students)

		records, err := td.store.ListAttendance(td.classID, "2024-01-15")
		require.NoError(t, err)
		assert.Empty(t, records)

		classIDs, err := td.store.ListTeacherClassIDs(td.teacherID)
		require.NoError(t, err)
		assert.Empty(t, classIDs)

		stats, err := td.store.OverviewStats()
		require.NoError(t, err)
		assert.Zero(t, stats.Evaluations)
	})

	t.Run("second delete is an idempotent no-op", func(t *testing.T) {
		deleted, err := td.store.DeleteClassCascade(td.classID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestDeleteUserCascade(t *testing.T) {
	td := setupTestData(t)

	err := td.store.CreateSession(&models.Session{
		Token:     "sk-test-token",
		UserID:    td.teacherID,
		ExpiresAt: time.Now().UTC().Add(time.Hour).Format(time.RFC3339),
	})
	require.NoError(t, err)
	err = td.store.ReplaceTeacherClassPermissions(td.teacherID, []int64{td.classID})
	require.NoError(t, err)
	_, err = td.store.CreateEvaluation(td.classID, td.studentID, td.teacherID, 4, "[]", "")
	require.NoError(t, err)

	deleted, err := td.store.DeleteUserCascade(td.teacherID)
	require.NoError(t, err)
	assert.True(t, deleted)

	session, user, err := td.store.GetSessionUser("sk-test-token")
	require.NoError(t, err)
	assert.Nil(t, session)
	assert.Nil(t, user)

	gone, err := td.store.GetUserByID(td.teacherID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	deleted, err = td.store.DeleteUserCascade(td.teacherID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestUpsertAttendance(t *testing.T) {
	td := setupTestData(t)

	err := td.store.UpsertAttendance(td.classID, td.studentID, td.teacherID, models.AttendancePresent, "2024-01-15")
	require.NoError(t, err)
	err = td.store.UpsertAttendance(td.classID, td.studentID, td.teacherID, models.AttendanceLate, "2024-01-15")
	require.NoError(t, err)

	records, err := td.store.ListAttendance(td.classID, "2024-01-15")
	require.NoError(t, err)
	require.Len(t, records, 1, "upsert must not duplicate the day's row")
	assert.Equal(t, models.AttendanceLate, records[0].Status)

	t.Run("different day gets its own row", func(t *testing.T) {
		err := td.store.UpsertAttendance(td.classID, td.studentID, td.teacherID, models.AttendanceAbsent, "2024-01-16")
		require.NoError(t, err)

		records, err := td.store.ListAttendance(td.classID, "2024-01-16")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, models.AttendanceAbsent, records[0].Status)
	})
}

func TestBatchDeleteStudents(t *testing.T) {
	td := setupTestData(t)

	otherID, err := td.store.CreateStudent(td.classID, "02", "李华", "active")
	require.NoError(t, err)
	err = td.store.UpsertAttendance(td.classID, otherID, td.teacherID, models.AttendancePresent, "2024-01-15")
	require.NoError(t, err)

	deleted, err := td.store.BatchDeleteStudents([]int64{td.studentID, otherID, 9999})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted, "missing ids must not count as deleted")

	students, err := td.store.ListStudentsByClass(td.classID)
	require.NoError(t, err)
	assert.Empty(t, students)

	records, err := td.store.ListAttendance(td.classID, "2024-01-15")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestReplaceTeacherClassPermissions(t *testing.T) {
	td := setupTestData(t)

	secondClass, err := td.store.CreateClass("高一(2)班", "高一")
	require.NoError(t, err)

	err = td.store.ReplaceTeacherClassPermissions(td.teacherID, []int64{secondClass, td.classID})
	require.NoError(t, err)

	classIDs, err := td.store.ListTeacherClassIDs(td.teacherID)
	require.NoError(t, err)
	assert.Equal(t, []int64{td.classID, secondClass}, classIDs, "listing is sorted by class id")

	t.Run("replace swaps the whole set", func(t *testing.T) {
		err := td.store.ReplaceTeacherClassPermissions(td.teacherID, []int64{secondClass})
		require.NoError(t, err)

		classIDs, err := td.store.ListTeacherClassIDs(td.teacherID)
		require.NoError(t, err)
		assert.Equal(t, []int64{secondClass}, classIDs)
	})

	t.Run("count validates ids against existing classes", func(t *testing.T) {
		count, err := td.store.CountClassesByIDs([]int64{td.classID, secondClass, 9999})
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})
}

func TestStatistics(t *testing.T) {
	td := setupTestData(t)

	for i := 0; i < 3; i++ {
		_, err := td.store.CreateEvaluation(td.classID, td.studentID, td.teacherID, 5, "[]", "")
		require.NoError(t, err)
	}

	t.Run("overview", func(t *testing.T) {
		stats, err := td.store.OverviewStats()
		require.NoError(t, err)
		assert.Equal(t, int64(1), stats.Classes)
		assert.Equal(t, int64(1), stats.Students)
		assert.Equal(t, int64(3), stats.Evaluations)
		assert.InDelta(t, 5.0, stats.AvgScore, 0.001)
		require.Len(t, stats.TopStudents, 1)
		assert.Equal(t, td.studentID, stats.TopStudents[0].ID)
		assert.InDelta(t, 5.0, stats.TopStudents[0].AvgScore, 0.001)
		assert.Equal(t, int64(3), stats.TopStudents[0].EvaluationCount)
	})

	t.Run("overview with no evaluations reports zero average", func(t *testing.T) {
		empty := setupTestStore(t)
		stats, err := empty.OverviewStats()
		require.NoError(t, err)
		assert.Zero(t, stats.Evaluations)
		assert.Zero(t, stats.AvgScore)
		assert.Empty(t, stats.TopStudents)
	})

	t.Run("per teacher", func(t *testing.T) {
		stats, err := td.store.TeacherStats(td.teacherID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), stats.EvaluationCount)
		assert.Equal(t, int64(15), stats.StarsGiven)
	})

	t.Run("per class", func(t *testing.T) {
		stats, err := td.store.ClassEvaluationStats(td.classID)
		require.NoError(t, err)
		require.Len(t, stats, 1)
		assert.Equal(t, td.studentID, stats[0].StudentID)
		assert.Equal(t, int64(15), stats[0].TotalStars)
		assert.Equal(t, int64(3), stats[0].EvaluationCount)
	})
}

func TestKVStore(t *testing.T) {
	s := setupTestStore(t)

	require.NoError(t, s.KVUpsert("board", "layout", "rows"))
	require.NoError(t, s.KVUpsert("board", "layout", "columns"))
	require.NoError(t, s.KVUpsert("board", "theme", "dark"))
	require.NoError(t, s.KVUpsert("other", "layout", "grid"))

	t.Run("snapshot sees the latest value per key", func(t *testing.T) {
		items, err := s.KVSnapshot("board")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"layout": "columns", "theme": "dark"}, items)
	})

	t.Run("namespaces are independent", func(t *testing.T) {
		items, err := s.KVSnapshot("other")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"layout": "grid"}, items)
	})

	t.Run("delete removes a single key", func(t *testing.T) {
		require.NoError(t, s.KVDelete("board", "layout"))

		items, err := s.KVSnapshot("board")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"theme": "dark"}, items)
	})

	t.Run("clear wipes only its namespace", func(t *testing.T) {
		require.NoError(t, s.KVClear("board"))

		items, err := s.KVSnapshot("board")
		require.NoError(t, err)
		assert.Empty(t, items)

		items, err = s.KVSnapshot("other")
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})
}
