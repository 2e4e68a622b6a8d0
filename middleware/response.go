package middleware

import (
	"lms/apperror"

	"github.com/gofiber/fiber/v2"
)

// JsonResponse writes the uniform response envelope.
func JsonResponse(c *fiber.Ctx, statusCode int, success bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"success": success,
		"message": message,
		"data":    data,
	})
}

// ErrorResponse maps a core error to its HTTP status and envelope.
func ErrorResponse(c *fiber.Ctx, err error) error {
	return c.Status(apperror.StatusCode(err)).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
		"error":   err.Error(),
	})
}

// ValidationErrorResponse reports field-level validation failures.
func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusBadRequest, false, "Validation failed!", errors)
}
