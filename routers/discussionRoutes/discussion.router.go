package discussionRoutes

import (
	controllers "lms/controllers/discussion"
	"lms/middleware"
	courseValidators "lms/validators/course"
	validators "lms/validators/discussion"

	"github.com/gofiber/fiber/v2"
)

func SetupDiscussionRoutes(app *fiber.App) {
	group := app.Group("/api/v1/discussions")

	group.Post("/", middleware.JWTMiddleware, validators.CreateDiscussion(), controllers.CreateDiscussion)
	group.Get("/:id", middleware.JWTMiddleware, validators.DiscussionID(), controllers.GetDiscussion)
	group.Post("/:id/posts", middleware.JWTMiddleware, validators.DiscussionID(), validators.Post(), controllers.AddPost)
	group.Put("/:id/posts/:postId", middleware.JWTMiddleware, validators.DiscussionID(), validators.PostID(), validators.Post(), controllers.EditPost)

	app.Get("/api/v1/courses/:id/discussions", middleware.JWTMiddleware,
		courseValidators.CourseID(), controllers.GetCourseDiscussions)
}
