package courseController

import (
	"errors"
	"strconv"
	"strings"

	"lms/activity"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/models/documents"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateCourse creates a course owned by the acting instructor.
func CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CreateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	// Duplicate course code is a conflict
	var existing models.Course
	if err := db.Where("code = ? AND is_deleted = ?", reqData.Code, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course code already exists!", nil)
	}

	course := models.Course{
		Code:         strings.ToUpper(strings.TrimSpace(reqData.Code)),
		Title:        strings.TrimSpace(reqData.Title),
		Description:  reqData.Description,
		InstructorID: userID,
	}

	if err := db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	activity.Default().Record(documents.ActivityLog{
		UserID:   userID,
		Action:   documents.ActionCourseCreated,
		Entity:   "course",
		EntityID: strconv.Itoa(int(course.ID)),
		Detail:   course.Code,
	})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// GetAllCourses lists courses with pagination.
func GetAllCourses(c *fiber.Ctx) error {
	page, _ := c.Locals("page").(int)
	limit, _ := c.Locals("limit").(int)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.Course{}).Where("is_deleted = ?", false)

	var total int64
	db.Count(&total)

	var courses []models.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetCourseDetails fetches one course.
func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", course)
}

// DeleteCourse soft-deletes a course. Owner or admin only. Discussions
// and assignments referencing the course stay in Mongo; the reconciler
// reports them as orphans.
func DeleteCourse(c *fiber.Ctx) error {
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
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the course owner may delete it!", nil)
	}

	if err := db.Model(&course).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	activity.Default().Record(documents.ActivityLog{
		UserID:   userID,
		Action:   documents.ActionCourseDeleted,
		Entity:   "course",
		EntityID: strconv.Itoa(int(course.ID)),
		Detail:   course.Code,
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}
