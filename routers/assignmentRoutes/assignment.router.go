package assignmentRoutes

import (
	controllers "lms/controllers/assignment"
	"lms/middleware"
	validators "lms/validators/assignment"
	courseValidators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupAssignmentRoutes(app *fiber.App) {
	group := app.Group("/api/v1/assignments")

	group.Post("/", middleware.JWTMiddleware, validators.CreateAssignment(), controllers.CreateAssignment)
	group.Get("/:id", middleware.JWTMiddleware, validators.AssignmentID(), controllers.GetAssignment)
	group.Post("/:id/submit", middleware.JWTMiddleware, validators.AssignmentID(), validators.SubmitAssignment(), controllers.SubmitAssignment)
	group.Post("/:id/grade/:studentId", middleware.JWTMiddleware, validators.AssignmentID(), validators.StudentID(), validators.Grade(), controllers.GradeSubmission)

	app.Get("/api/v1/courses/:id/assignments", middleware.JWTMiddleware,
		courseValidators.CourseID(), controllers.GetCourseAssignments)
}
