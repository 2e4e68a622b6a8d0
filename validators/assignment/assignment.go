package assignmentValidator

import (
	"strconv"
	"strings"
	"time"

	"lms/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate = validator.New()

type CreateAssignmentRequest struct {
	CourseID            uint      `json:"course_id" validate:"required,gt=0"`
	Title               string    `json:"title" validate:"required,min=2"`
	Description         string    `json:"description"`
	MaxMarks            float64   `json:"max_marks" validate:"required,gt=0"`
	DueDate             time.Time `json:"due_date" validate:"required"`
	AllowLateSubmission bool      `json:"allow_late_submission"`
}

type SubmitAssignmentRequest struct {
	Content     string   `json:"content" validate:"required"`
	Attachments []string `json:"attachments"`
}

type GradeRequest struct {
	Grade    float64 `json:"grade" validate:"gte=0"`
	Feedback string  `json:"feedback"`
}

// AssignmentID validates the :id path param as a Mongo ObjectID.
func AssignmentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := primitive.ObjectIDFromHex(idStr)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Assignment ID!", nil)
		}

		c.Locals("assignmentID", id)
		return c.Next()
	}
}

// StudentID validates the :studentId path param.
func StudentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("studentId"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Student ID!", nil)
		}

		c.Locals("studentID", uint(id))
		return c.Next()
	}
}

func CreateAssignment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateAssignmentRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fe := range err.(validator.ValidationErrors) {
				errors[fe.Field()] = "failed on " + fe.Tag()
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAssignment", reqData)
		return c.Next()
	}
}

func SubmitAssignment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SubmitAssignmentRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil || strings.TrimSpace(reqData.Content) == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content is required!", nil)
		}

		c.Locals("validatedSubmission", reqData)
		return c.Next()
	}
}

func Grade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(GradeRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Grade must be zero or positive!", nil)
		}

		c.Locals("validatedGrade", reqData)
		return c.Next()
	}
}
