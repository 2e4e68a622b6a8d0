package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"lms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Enrollment{},
		&models.Quiz{},
		&models.QuizQuestion{},
		&models.QuizSubmission{},
	))
	return db
}

func seedCourse(t *testing.T, db *gorm.DB) models.Course {
	t.Helper()
	instructor := models.User{Name: "Prof", Email: "prof@test.io", Password: "x", Role: models.RoleInstructor}
	require.NoError(t, db.Create(&instructor).Error)
	course := models.Course{Code: "CS101", Title: "Intro", InstructorID: instructor.ID}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func enrollStudent(t *testing.T, db *gorm.DB, course models.Course, name, email, status string) models.User {
	t.Helper()
	student := models.User{Name: name, Email: email, Password: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&student).Error)
	require.NoError(t, db.Create(&models.Enrollment{
		StudentID: student.ID,
		CourseID:  course.ID,
		Status:    status,
	}).Error)
	return student
}

func TestCourseStudentSummary(t *testing.T) {
	db := testDB(t)
	course := seedCourse(t, db)

	ann := enrollStudent(t, db, course, "Ann", "ann@test.io", models.EnrollmentActive)
	enrollStudent(t, db, course, "Bob", "bob@test.io", models.EnrollmentActive)

	quiz1 := models.Quiz{CourseID: course.ID, Title: "Q1", MaxMarks: 30}
	quiz2 := models.Quiz{CourseID: course.ID, Title: "Q2", MaxMarks: 10}
	require.NoError(t, db.Create(&quiz1).Error)
	require.NoError(t, db.Create(&quiz2).Error)

	// Ann: 10/30 = 33.333..%, 8/10 = 80% -> avg 56.67 after half-up rounding
	require.NoError(t, db.Create(&models.QuizSubmission{
		QuizID: quiz1.ID, StudentID: ann.ID, MarksObtained: 10, SubmittedAt: time.Now(),
	}).Error)
	require.NoError(t, db.Create(&models.QuizSubmission{
		QuizID: quiz2.ID, StudentID: ann.ID, MarksObtained: 8, SubmittedAt: time.Now(),
	}).Error)

	rows, err := CourseStudentSummary(db, course.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byName := map[string]StudentSummary{}
	for _, r := range rows {
		byName[r.Name] = r
	}

	annRow := byName["Ann"]
	assert.Equal(t, 2, annRow.QuizzesSubmitted)
	assert.Equal(t, 2, annRow.TotalQuizzes)
	require.NotNil(t, annRow.AvgPercentage)
	assert.Equal(t, 56.67, *annRow.AvgPercentage)

	// Bob has no submissions: null average, not zero
	bobRow := byName["Bob"]
	assert.Equal(t, 0, bobRow.QuizzesSubmitted)
	assert.Equal(t, 2, bobRow.TotalQuizzes)
	assert.Nil(t, bobRow.AvgPercentage)
}

func TestCourseStudentSummaryZeroQuizzes(t *testing.T) {
	db := testDB(t)
	course := seedCourse(t, db)
	enrollStudent(t, db, course, "Ann", "ann@test.io", models.EnrollmentActive)

	rows, err := CourseStudentSummary(db, course.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 0, rows[0].TotalQuizzes)
	assert.Equal(t, 0, rows[0].QuizzesSubmitted)
	assert.Nil(t, rows[0].AvgPercentage)
}

func TestCourseStudentSummaryExcludesDropped(t *testing.T) {
	db := testDB(t)
	course := seedCourse(t, db)
	enrollStudent(t, db, course, "Ann", "ann@test.io", models.EnrollmentActive)
	enrollStudent(t, db, course, "Zoe", "zoe@test.io", models.EnrollmentDropped)

	rows, err := CourseStudentSummary(db, course.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ann", rows[0].Name)
}

func TestRoundPercentage(t *testing.T) {
	assert.Equal(t, 33.33, RoundPercentage(100.0/3))
	assert.Equal(t, 56.67, RoundPercentage(56.666666))
	assert.Equal(t, 77.5, RoundPercentage(77.5))
	assert.Equal(t, 80.0, RoundPercentage(80))
}

type fakeCounter struct {
	stats *DocumentStats
	err   error
}

func (f fakeCounter) Counts(context.Context) (*DocumentStats, error) {
	return f.stats, f.err
}

func TestPlatformStats(t *testing.T) {
	db := testDB(t)
	course := seedCourse(t, db)
	enrollStudent(t, db, course, "Ann", "ann@test.io", models.EnrollmentActive)

	stats := Platform(context.Background(), db, fakeCounter{
		stats: &DocumentStats{Discussions: 3, Assignments: 2, ActivityLogs: 10},
	})

	require.NotNil(t, stats.Relational)
	assert.Equal(t, int64(1), stats.Relational.Courses)
	assert.Equal(t, int64(1), stats.Relational.Enrollments)
	assert.Equal(t, int64(1), stats.Relational.UsersByRole[models.RoleInstructor])
	assert.Equal(t, int64(1), stats.Relational.UsersByRole[models.RoleStudent])

	require.NotNil(t, stats.Documents)
	assert.Equal(t, int64(3), stats.Documents.Discussions)
}

func TestPlatformStatsDocumentHalfFailure(t *testing.T) {
	db := testDB(t)
	seedCourse(t, db)

	stats := Platform(context.Background(), db, fakeCounter{err: errors.New("mongo down")})

	// The relational half still reports; the failed half is absent
	require.NotNil(t, stats.Relational)
	assert.Equal(t, int64(1), stats.Relational.Courses)
	assert.Nil(t, stats.Documents)
}
