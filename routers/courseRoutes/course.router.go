package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up course, enrollment, and quiz routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/api/v1/courses")

	// Course CRUD
	courseGroup.Post("/", middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleInstructor, models.RoleAdmin),
		validators.CreateCourse(), controllers.CreateCourse)
	courseGroup.Get("/", middleware.JWTMiddleware, validators.ListQuery(), controllers.GetAllCourses)
	courseGroup.Get("/:id", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseDetails)
	courseGroup.Delete("/:id", middleware.JWTMiddleware, validators.CourseID(), controllers.DeleteCourse)

	// Enrollment
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleStudent),
		validators.CourseID(), controllers.EnrollInCourse)
	courseGroup.Post("/:id/drop", middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleStudent),
		validators.CourseID(), controllers.DropCourse)

	enrollGroup := app.Group("/api/v1/enrollments")
	enrollGroup.Get("/", middleware.JWTMiddleware, controllers.GetEnrollments)

	// Quizzes
	courseGroup.Post("/:id/quizzes", middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleInstructor, models.RoleAdmin),
		validators.CourseID(), validators.CreateQuiz(), controllers.CreateQuiz)
	courseGroup.Get("/:id/quizzes", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseQuizzes)

	quizGroup := app.Group("/api/v1/quizzes")
	quizGroup.Get("/:id", middleware.JWTMiddleware, validators.QuizID(), controllers.GetQuiz)
	quizGroup.Post("/:id/submit", middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleStudent),
		validators.QuizID(), validators.SubmitQuiz(), controllers.SubmitQuiz)
}
