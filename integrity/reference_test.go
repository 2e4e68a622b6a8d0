package integrity

import (
	"testing"

	"lms/apperror"
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

func TestValidateCourse(t *testing.T) {
	db := testDB(t)

	course := models.Course{Code: "CS101", Title: "Intro", InstructorID: 1}
	require.NoError(t, db.Create(&course).Error)

	assert.NoError(t, Validate(db, KindCourse, course.ID))
	assert.ErrorIs(t, Validate(db, KindCourse, 999), apperror.ErrNotFound)
}

func TestValidateCourseSoftDeleted(t *testing.T) {
	db := testDB(t)

	course := models.Course{Code: "CS101", Title: "Intro", InstructorID: 1, IsDeleted: true}
	require.NoError(t, db.Create(&course).Error)

	assert.ErrorIs(t, Validate(db, KindCourse, course.ID), apperror.ErrNotFound)
}

func TestValidateStudent(t *testing.T) {
	db := testDB(t)

	student := models.User{Name: "Ann", Email: "ann@test.io", Password: "x", Role: models.RoleStudent}
	instructor := models.User{Name: "Bob", Email: "bob@test.io", Password: "x", Role: models.RoleInstructor}
	require.NoError(t, db.Create(&student).Error)
	require.NoError(t, db.Create(&instructor).Error)

	assert.NoError(t, Validate(db, KindStudent, student.ID))
	assert.ErrorIs(t, Validate(db, KindStudent, instructor.ID), apperror.ErrRoleMismatch)
	assert.ErrorIs(t, Validate(db, KindStudent, 999), apperror.ErrNotFound)
}

func TestValidateInstructorAcceptsAdmin(t *testing.T) {
	db := testDB(t)

	instructor := models.User{Name: "Bob", Email: "bob@test.io", Password: "x", Role: models.RoleInstructor}
	admin := models.User{Name: "Root", Email: "root@test.io", Password: "x", Role: models.RoleAdmin}
	student := models.User{Name: "Ann", Email: "ann@test.io", Password: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&instructor).Error)
	require.NoError(t, db.Create(&admin).Error)
	require.NoError(t, db.Create(&student).Error)

	assert.NoError(t, Validate(db, KindInstructor, instructor.ID))
	assert.NoError(t, Validate(db, KindInstructor, admin.ID))
	assert.ErrorIs(t, Validate(db, KindInstructor, student.ID), apperror.ErrRoleMismatch)
}

func TestValidateUnknownKind(t *testing.T) {
	db := testDB(t)
	assert.ErrorIs(t, Validate(db, Kind("teacher"), 1), apperror.ErrValidation)
}

// A valid token can outlive its account. Any role passes, but a
// soft-deleted or missing user must not.
func TestValidateUserAnyLiveRole(t *testing.T) {
	db := testDB(t)

	student := models.User{Name: "Ann", Email: "ann@test.io", Password: "x", Role: models.RoleStudent}
	instructor := models.User{Name: "Bob", Email: "bob@test.io", Password: "x", Role: models.RoleInstructor}
	gone := models.User{Name: "Eve", Email: "eve@test.io", Password: "x", Role: models.RoleStudent, IsDeleted: true}
	require.NoError(t, db.Create(&student).Error)
	require.NoError(t, db.Create(&instructor).Error)
	require.NoError(t, db.Create(&gone).Error)

	assert.NoError(t, ValidateUser(db, student.ID))
	assert.NoError(t, ValidateUser(db, instructor.ID))
	assert.ErrorIs(t, ValidateUser(db, gone.ID), apperror.ErrNotFound)
	assert.ErrorIs(t, ValidateUser(db, 999), apperror.ErrNotFound)
}

func TestValidateEnrollment(t *testing.T) {
	db := testDB(t)

	course := models.Course{Code: "CS101", Title: "Intro", InstructorID: 1}
	require.NoError(t, db.Create(&course).Error)

	enrolled := models.User{Name: "Ann", Email: "ann@test.io", Password: "x", Role: models.RoleStudent}
	dropped := models.User{Name: "Bob", Email: "bob@test.io", Password: "x", Role: models.RoleStudent}
	outsider := models.User{Name: "Cal", Email: "cal@test.io", Password: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&enrolled).Error)
	require.NoError(t, db.Create(&dropped).Error)
	require.NoError(t, db.Create(&outsider).Error)

	require.NoError(t, db.Create(&models.Enrollment{
		StudentID: enrolled.ID, CourseID: course.ID, Status: models.EnrollmentActive,
	}).Error)
	require.NoError(t, db.Create(&models.Enrollment{
		StudentID: dropped.ID, CourseID: course.ID, Status: models.EnrollmentDropped,
	}).Error)

	assert.NoError(t, ValidateEnrollment(db, enrolled.ID, course.ID))
	assert.ErrorIs(t, ValidateEnrollment(db, dropped.ID, course.ID), apperror.ErrForbidden)
	assert.ErrorIs(t, ValidateEnrollment(db, outsider.ID, course.ID), apperror.ErrForbidden)
}
