package courseController

import (
	"errors"
	"strconv"

	"lms/activity"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/models/documents"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// EnrollInCourse enrolls the acting student in a course. The check and
// insert run inside one transaction; the composite unique index backs
// the duplicate check up under concurrency.
func EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	db := database.Database.Db

	// Check if course exists
	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var enrollment models.Enrollment
	err := db.Transaction(func(tx *gorm.DB) error {
		var existing models.Enrollment
		if err := tx.Where("student_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
			First(&existing).Error; err == nil {
			return gorm.ErrDuplicatedKey
		}

		enrollment = models.Enrollment{
			StudentID: userID,
			CourseID:  courseID,
			Status:    models.EnrollmentActive,
		}
		return tx.Create(&enrollment).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	activity.Default().Record(documents.ActivityLog{
		UserID:   userID,
		Action:   documents.ActionEnrolled,
		Entity:   "course",
		EntityID: strconv.Itoa(int(courseID)),
	})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled in course successfully!", enrollment)
}

// DropCourse marks the acting student's enrollment as dropped.
func DropCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	if enrollment.Status == models.EnrollmentDropped {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Enrollment already dropped!", nil)
	}

	if err := db.Model(&enrollment).Update("status", models.EnrollmentDropped).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to drop course!", nil)
	}

	activity.Default().Record(documents.ActivityLog{
		UserID:   userID,
		Action:   documents.ActionDropped,
		Entity:   "course",
		EntityID: strconv.Itoa(int(courseID)),
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course dropped successfully!", enrollment)
}

// GetEnrollments lists the acting student's enrollments.
func GetEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var enrollments []models.Enrollment
	if err := database.Database.Db.
		Where("student_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": enrollments,
		"total":       len(enrollments),
	})
}
