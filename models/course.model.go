package models

import "gorm.io/gorm"

// Course represents a course owned by exactly one instructor.
// Discussion and Assignment documents in Mongo reference Course.ID
// as a plain integer; the relational side is the source of truth.
type Course struct {
	gorm.Model
	Code         string `json:"code" gorm:"uniqueIndex;not null"`
	Title        string `json:"title" gorm:"not null"`
	Description  string `json:"description"`
	InstructorID uint   `json:"instructor_id" gorm:"index;not null"`
	IsDeleted    bool   `json:"-" gorm:"default:false"`
}
