package discussionValidator

import (
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate = validator.New()

type CreateDiscussionRequest struct {
	CourseID uint   `json:"course_id" validate:"required,gt=0"`
	Title    string `json:"title" validate:"required,min=2"`
}

type PostRequest struct {
	Content string `json:"content" validate:"required"`
}

// DiscussionID validates the :id path param as a Mongo ObjectID.
func DiscussionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := primitive.ObjectIDFromHex(idStr)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Discussion ID!", nil)
		}

		c.Locals("discussionID", id)
		return c.Next()
	}
}

// PostID validates the :postId path param.
func PostID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("postId"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Post ID!", nil)
		}

		c.Locals("postID", id)
		return c.Next()
	}
}

func CreateDiscussion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateDiscussionRequest)
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

		c.Locals("validatedDiscussion", reqData)
		return c.Next()
	}
}

func Post() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(PostRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil || strings.TrimSpace(reqData.Content) == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content is required!", nil)
		}

		c.Locals("validatedPost", reqData)
		return c.Next()
	}
}
