package assignmentController

import (
	"time"

	"lms/activity"
	"lms/database"
	"lms/docstore"
	"lms/integrity"
	"lms/middleware"
	"lms/models"
	"lms/models/documents"
	"lms/utils"
	assignmentValidator "lms/validators/assignment"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func assignments() *docstore.MongoCollection[*documents.Assignment] {
	return docstore.NewMongoCollection(
		database.Mongo.Db.Collection(database.AssignmentCollection),
		func() *documents.Assignment { return &documents.Assignment{} },
	)
}

// CreateAssignment creates an assignment document. Both the course and
// the acting instructor are validated against Postgres before the
// document is written.
func CreateAssignment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedAssignment").(*assignmentValidator.CreateAssignmentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	if err := integrity.Validate(db, integrity.KindInstructor, userID); err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if err := integrity.Validate(db, integrity.KindCourse, reqData.CourseID); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	now := time.Now().UTC()
	assignment := &documents.Assignment{
		CourseID:            reqData.CourseID,
		InstructorID:        userID,
		Title:               reqData.Title,
		Description:         reqData.Description,
		MaxMarks:            reqData.MaxMarks,
		DueDate:             reqData.DueDate.UTC(),
		AllowLateSubmission: reqData.AllowLateSubmission,
		Submissions:         []documents.Submission{},
		SubmissionCount:     0,
		Version:             1,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	id, err := assignments().Insert(c.Context(), assignment)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	assignment.ID = id

	activity.Default().Record(documents.ActivityLog{
		UserID:   userID,
		Action:   documents.ActionAssignmentCreated,
		Entity:   "assignment",
		EntityID: id.Hex(),
	})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assignment created successfully!", assignment)
}

// GetCourseAssignments lists the assignments of a course.
func GetCourseAssignments(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	docs, err := assignments().Find(c.Context(), bson.M{"course_id": courseID})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignments fetched successfully!", fiber.Map{
		"assignments": docs,
		"total":       len(docs),
	})
}

// GetAssignment fetches one assignment.
func GetAssignment(c *fiber.Ctx) error {
	id := c.Locals("assignmentID").(primitive.ObjectID)

	assignment, err := assignments().FindByID(c.Context(), id)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment fetched successfully!", assignment)
}

// SubmitAssignment creates or replaces the acting student's submission.
// Validation order is strict: the student reference and an active
// enrollment in the assignment's course are checked first, and the
// late-submission rule runs inside the mutation, so a rejected submit
// leaves the document untouched.
func SubmitAssignment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	id := c.Locals("assignmentID").(primitive.ObjectID)

	reqData, ok := c.Locals("validatedSubmission").(*assignmentValidator.SubmitAssignmentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	coll := assignments()
	current, err := coll.FindByID(c.Context(), id)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	db := database.Database.Db
	if err := integrity.Validate(db, integrity.KindStudent, userID); err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if err := integrity.ValidateEnrollment(db, userID, current.CourseID); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	var submission *documents.Submission
	assignment, err := docstore.Mutate(c.Context(), coll, id, func(a *documents.Assignment) error {
		var err error
		submission, err = docstore.UpsertSubmission(a, userID, docstore.SubmissionInput{
			Content:     reqData.Content,
			Attachments: reqData.Attachments,
		}, time.Now().UTC())
		return err
	})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	activity.Default().Record(documents.ActivityLog{
		UserID:   userID,
		Action:   documents.ActionAssignmentSubmitted,
		Entity:   "assignment",
		EntityID: assignment.ID.Hex(),
	})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assignment submitted successfully!", submission)
}

// GradeSubmission grades one student's submission. Instructor only; the
// grade is bounded by the assignment's max_marks inside the mutation.
func GradeSubmission(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	id := c.Locals("assignmentID").(primitive.ObjectID)
	studentID := c.Locals("studentID").(uint)

	reqData, ok := c.Locals("validatedGrade").(*assignmentValidator.GradeRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if err := integrity.Validate(database.Database.Db, integrity.KindInstructor, userID); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	var submission *documents.Submission
	assignment, err := docstore.Mutate(c.Context(), assignments(), id, func(a *documents.Assignment) error {
		var err error
		submission, err = docstore.GradeSubmission(a, studentID, reqData.Grade, reqData.Feedback, userID)
		return err
	})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	activity.Default().Record(documents.ActivityLog{
		UserID:   userID,
		Action:   documents.ActionSubmissionGraded,
		Entity:   "assignment",
		EntityID: assignment.ID.Hex(),
	})

	// Best-effort student notification
	var student models.User
	if err := database.Database.Db.Where("id = ?", studentID).First(&student).Error; err == nil {
		utils.NotifyGrade(student.Email, student.Name, assignment.Title, reqData.Grade, assignment.MaxMarks)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submission graded successfully!", submission)
}
