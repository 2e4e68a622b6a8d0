package statsController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/reports"

	"github.com/gofiber/fiber/v2"
)

// CourseSummary returns per-student quiz performance for one course.
// Course owner or admin only.
func CourseSummary(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(string)
	courseID := c.Locals("courseID").(uint)

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.InstructorID != userID && role != models.RoleAdmin {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the course owner may view this report!", nil)
	}

	rows, err := reports.CourseStudentSummary(db, courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build course summary!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course summary fetched successfully!", fiber.Map{
		"course":   course,
		"students": rows,
	})
}

// PlatformStats returns the merged platform report. Admin only. Either
// half may be null if its store was unreachable.
func PlatformStats(c *fiber.Ctx) error {
	stats := reports.Platform(c.Context(), database.Database.Db, reports.MongoCounter{Db: database.Mongo.Db})
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Platform stats fetched successfully!", stats)
}
