package database

import (
	"errors"
	"log"

	"lms/config"
	"lms/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin ensures one admin account exists so role-gated endpoints are
// reachable on a fresh install.
func SeedAdmin() {
	db := Database.Db

	var admin models.User
	err := db.Where("email = ?", config.AppConfig.AdminEmail).First(&admin).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Admin seed lookup failed: %v", err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(config.AppConfig.AdminPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Admin seed hash failed: %v", err)
		return
	}

	admin = models.User{
		Name:     "Administrator",
		Email:    config.AppConfig.AdminEmail,
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Admin seed failed: %v", err)
		return
	}
	log.Printf("Seeded admin account %s", admin.Email)
}
