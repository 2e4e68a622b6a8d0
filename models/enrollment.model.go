package models

import "gorm.io/gorm"

// Enrollment statuses
const (
	EnrollmentActive    = "active"
	EnrollmentDropped   = "dropped"
	EnrollmentCompleted = "completed"
)

// Enrollment tracks a student's enrollment in a course. At most one row
// per (student, course) pair, enforced by the composite unique index.
type Enrollment struct {
	gorm.Model
	StudentID uint   `json:"student_id" gorm:"uniqueIndex:idx_student_course;not null"`
	CourseID  uint   `json:"course_id" gorm:"uniqueIndex:idx_student_course;not null"`
	Status    string `json:"status" gorm:"default:'active'"` // active, dropped, completed
	IsDeleted bool   `json:"-" gorm:"default:false"`
}
