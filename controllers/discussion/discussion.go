package discussionController

import (
	"fmt"
	"time"

	"lms/activity"
	"lms/apperror"
	"lms/database"
	"lms/docstore"
	"lms/integrity"
	"lms/middleware"
	"lms/models/documents"
	discussionValidator "lms/validators/discussion"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func discussions() *docstore.MongoCollection[*documents.Discussion] {
	return docstore.NewMongoCollection(
		database.Mongo.Db.Collection(database.DiscussionCollection),
		func() *documents.Discussion { return &documents.Discussion{} },
	)
}

// CreateDiscussion opens a new thread. The course reference and the
// creating user are validated against Postgres before anything is
// written to Mongo.
func CreateDiscussion(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedDiscussion").(*discussionValidator.CreateDiscussionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db
	if err := integrity.ValidateUser(db, userID); err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if err := integrity.Validate(db, integrity.KindCourse, reqData.CourseID); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	now := time.Now().UTC()
	discussion := &documents.Discussion{
		CourseID:  reqData.CourseID,
		Title:     reqData.Title,
		CreatedBy: userID,
		Posts:     []documents.Post{},
		PostCount: 0,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := discussions().Insert(c.Context(), discussion)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	discussion.ID = id

	activity.Default().Record(documents.ActivityLog{
		UserID:   userID,
		Action:   documents.ActionDiscussionCreated,
		Entity:   "discussion",
		EntityID: id.Hex(),
	})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Discussion created successfully!", discussion)
}

// GetCourseDiscussions lists the threads of a course.
func GetCourseDiscussions(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	docs, err := discussions().Find(c.Context(), bson.M{"course_id": courseID})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Discussions fetched successfully!", fiber.Map{
		"discussions": docs,
		"total":       len(docs),
	})
}

// GetDiscussion fetches one thread with all its posts.
func GetDiscussion(c *fiber.Ctx) error {
	id := c.Locals("discussionID").(primitive.ObjectID)

	discussion, err := discussions().FindByID(c.Context(), id)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Discussion fetched successfully!", discussion)
}

// AddPost appends a post to a thread. Applied as one read-modify-write
// with optimistic retry so two simultaneous posts both land. The author
// id is validated against Postgres before the write; the JWT alone does
// not prove the account still exists.
func AddPost(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	id := c.Locals("discussionID").(primitive.ObjectID)

	reqData, ok := c.Locals("validatedPost").(*discussionValidator.PostRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if err := integrity.ValidateUser(database.Database.Db, userID); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	var post *documents.Post
	discussion, err := docstore.Mutate(c.Context(), discussions(), id, func(d *documents.Discussion) error {
		post = docstore.AppendPost(d, userID, reqData.Content)
		return nil
	})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	activity.Default().Record(documents.ActivityLog{
		UserID:   userID,
		Action:   documents.ActionPostAdded,
		Entity:   "discussion",
		EntityID: discussion.ID.Hex(),
	})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Post added successfully!", post)
}

// EditPost updates an existing post's content. Author only.
func EditPost(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	id := c.Locals("discussionID").(primitive.ObjectID)
	postID := c.Locals("postID").(int)

	reqData, ok := c.Locals("validatedPost").(*discussionValidator.PostRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var post *documents.Post
	discussion, err := docstore.Mutate(c.Context(), discussions(), id, func(d *documents.Discussion) error {
		for i := range d.Posts {
			if d.Posts[i].PostID == postID && d.Posts[i].UserID != userID {
				return fmt.Errorf("only the author may edit a post: %w", apperror.ErrForbidden)
			}
		}
		var err error
		post, err = docstore.EditPost(d, postID, reqData.Content)
		return err
	})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	activity.Default().Record(documents.ActivityLog{
		UserID:   userID,
		Action:   documents.ActionPostEdited,
		Entity:   "discussion",
		EntityID: discussion.ID.Hex(),
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Post updated successfully!", post)
}
