package statsRoutes

import (
	controllers "lms/controllers/stats"
	"lms/middleware"
	"lms/models"
	courseValidators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupStatsRoutes(app *fiber.App) {
	group := app.Group("/api/v1/reports")

	group.Get("/courses/:id/summary", middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleInstructor, models.RoleAdmin),
		courseValidators.CourseID(), controllers.CourseSummary)
	group.Get("/platform", middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleAdmin),
		controllers.PlatformStats)
}
