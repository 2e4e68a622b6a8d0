package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles. Role is assigned at registration and never changed afterwards.
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

type User struct {
	gorm.Model
	Name      string     `json:"name" gorm:"default:''"`
	Email     string     `json:"email" gorm:"unique;not null"`
	Password  string     `json:"-" gorm:"not null"`
	Role      string     `json:"role" gorm:"default:'student'"` // student, instructor, admin
	LastLogin *time.Time `json:"last_login"`
	IsDeleted bool       `json:"-" gorm:"default:false"`
}
