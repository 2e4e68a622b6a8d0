package courseValidator

import (
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type CreateCourseRequest struct {
	Code        string `json:"code" validate:"required,min=2,max=32"`
	Title       string `json:"title" validate:"required,min=2"`
	Description string `json:"description"`
}

// QuizQuestionInput is one question in a quiz creation payload.
type QuizQuestionInput struct {
	Text         string   `json:"text" validate:"required"`
	Options      []string `json:"options" validate:"required,min=2,dive,required"`
	CorrectIndex int      `json:"correct_index" validate:"gte=0"`
	Marks        float64  `json:"marks" validate:"required,gt=0"`
}

type CreateQuizRequest struct {
	Title     string              `json:"title" validate:"required,min=2"`
	Questions []QuizQuestionInput `json:"questions" validate:"required,min=1,dive"`
}

type SubmitQuizRequest struct {
	// One selected option index per question, in question order.
	Answers []int `json:"answers" validate:"required,min=1"`
}

// CourseID validates the :id path param and stores it as uint.
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", uint(id))
		return c.Next()
	}
}

// QuizID validates the :id path param for quiz routes.
func QuizID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Quiz ID!", nil)
		}

		c.Locals("quizID", uint(id))
		return c.Next()
	}
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCourseRequest)
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

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func CreateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateQuizRequest)
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

		// Correct index must point into the option list
		for i, q := range reqData.Questions {
			if q.CorrectIndex >= len(q.Options) {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false,
					"Question "+strconv.Itoa(i+1)+": correct_index out of range!", nil)
			}
		}

		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}

func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SubmitQuizRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Answers are required!", nil)
		}

		c.Locals("validatedQuizSubmit", reqData)
		return c.Next()
	}
}

// ListQuery validates optional pagination query params.
func ListQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  int `query:"page"`
			Limit int `query:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if reqData.Page < 1 {
			reqData.Page = 1
		}
		if reqData.Limit < 1 || reqData.Limit > 100 {
			reqData.Limit = 10
		}

		c.Locals("page", reqData.Page)
		c.Locals("limit", reqData.Limit)
		return c.Next()
	}
}
