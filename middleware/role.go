package middleware

import (
	"lms/database"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// RequireRole returns a middleware that loads the acting user and checks
// its role against the allowed set. The role in the database wins over
// the role claim in the token.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		var user models.User
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		}

		for _, role := range roles {
			if user.Role == role {
				c.Locals("role", user.Role)
				return c.Next()
			}
		}

		return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}
}
