package models

import (
	"time"

	"gorm.io/gorm"
)

// Quiz is a graded quiz attached to a course.
type Quiz struct {
	gorm.Model
	CourseID  uint    `json:"course_id" gorm:"index;not null"`
	Title     string  `json:"title" gorm:"not null"`
	MaxMarks  float64 `json:"max_marks" gorm:"not null"`
	IsDeleted bool    `json:"-" gorm:"default:false"`
}

// QuizQuestion is one question of a quiz. Options are stored as a JSON
// array of strings; CorrectIndex points into that array.
type QuizQuestion struct {
	gorm.Model
	QuizID       uint    `json:"quiz_id" gorm:"index;not null"`
	Text         string  `json:"text" gorm:"not null"`
	Options      string  `json:"options" gorm:"not null"` // JSON array
	CorrectIndex int     `json:"-"`
	Marks        float64 `json:"marks" gorm:"not null"`
	OrderIndex   int     `json:"order_index" gorm:"default:0"`
}

// QuizSubmission holds one student's result for one quiz. The composite
// unique index gives at-most-one-submission-per-student-per-quiz; the
// application surfaces the violation as a 409.
type QuizSubmission struct {
	gorm.Model
	QuizID        uint      `json:"quiz_id" gorm:"uniqueIndex:idx_quiz_student;not null"`
	StudentID     uint      `json:"student_id" gorm:"uniqueIndex:idx_quiz_student;not null"`
	MarksObtained float64   `json:"marks_obtained"`
	SubmittedAt   time.Time `json:"submitted_at"`
}
