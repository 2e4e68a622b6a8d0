// Package integrity guards cross-store references. Mongo documents hold
// plain integer ids of Postgres rows with no foreign key behind them, so
// every document write that introduces a new relational id goes through
// Validate first. Ids already embedded in an existing document are not
// re-checked on later mutations of that document.
package integrity

import (
	"errors"
	"fmt"

	"lms/apperror"
	"lms/models"

	"gorm.io/gorm"
)

// Kind names what the referenced row must be.
type Kind string

const (
	KindCourse     Kind = "course"
	KindStudent    Kind = "student"
	KindInstructor Kind = "instructor"
)

// Validate confirms the referenced row exists and has the expected role.
// Validation failure must abort the enclosing operation before any
// document-store write happens.
func Validate(db *gorm.DB, kind Kind, id uint) error {
	switch kind {
	case KindCourse:
		var course models.Course
		err := db.Where("id = ? AND is_deleted = ?", id, false).First(&course).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("course %d: %w", id, apperror.ErrNotFound)
		}
		return err

	case KindStudent, KindInstructor:
		var user models.User
		err := db.Where("id = ? AND is_deleted = ?", id, false).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %d: %w", id, apperror.ErrNotFound)
		}
		if err != nil {
			return err
		}
		if kind == KindStudent && user.Role != models.RoleStudent {
			return fmt.Errorf("user %d is not a student: %w", id, apperror.ErrRoleMismatch)
		}
		// Admins may own courses, so the instructor kind accepts both.
		if kind == KindInstructor && user.Role != models.RoleInstructor && user.Role != models.RoleAdmin {
			return fmt.Errorf("user %d is not an instructor: %w", id, apperror.ErrRoleMismatch)
		}
		return nil

	default:
		return fmt.Errorf("unknown reference kind %q: %w", kind, apperror.ErrValidation)
	}
}

// ValidateUser confirms the referenced user exists and is not deleted,
// regardless of role. Used for author/actor ids where any live user
// qualifies (discussion creators, post authors); a token can outlive
// the account it was issued for.
func ValidateUser(db *gorm.DB, id uint) error {
	var user models.User
	err := db.Where("id = ? AND is_deleted = ?", id, false).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("user %d: %w", id, apperror.ErrNotFound)
	}
	return err
}

// ValidateEnrollment confirms the student holds an active enrollment in
// the course.
func ValidateEnrollment(db *gorm.DB, studentID, courseID uint) error {
	var enrollment models.Enrollment
	err := db.Where("student_id = ? AND course_id = ? AND status = ? AND is_deleted = ?",
		studentID, courseID, models.EnrollmentActive, false).First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("student %d not enrolled in course %d: %w", studentID, courseID, apperror.ErrForbidden)
	}
	return err
}
