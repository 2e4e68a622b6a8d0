package courseController

import (
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"time"

	"lms/activity"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/models/documents"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateQuiz creates a quiz with its questions for a course the acting
// user owns. Quiz and questions are inserted in one transaction;
// max_marks is the sum of the question marks.
func CreateQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(string)
	courseID := c.Locals("courseID").(uint)

	reqData, ok := c.Locals("validatedQuiz").(*courseValidator.CreateQuizRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.InstructorID != userID && role != models.RoleAdmin {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the course owner may add quizzes!", nil)
	}

	maxMarks := 0.0
	for _, q := range reqData.Questions {
		maxMarks += q.Marks
	}

	quiz := models.Quiz{
		CourseID: courseID,
		Title:    reqData.Title,
		MaxMarks: maxMarks,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&quiz).Error; err != nil {
			return err
		}
		for i, q := range reqData.Questions {
			optionsJSON, err := json.Marshal(q.Options)
			if err != nil {
				return err
			}
			question := models.QuizQuestion{
				QuizID:       quiz.ID,
				Text:         q.Text,
				Options:      string(optionsJSON),
				CorrectIndex: q.CorrectIndex,
				Marks:        q.Marks,
				OrderIndex:   i,
			}
			if err := tx.Create(&question).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
	}

	activity.Default().Record(documents.ActivityLog{
		UserID:   userID,
		Action:   documents.ActionQuizCreated,
		Entity:   "quiz",
		EntityID: strconv.Itoa(int(quiz.ID)),
	})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created successfully!", quiz)
}

// GetCourseQuizzes lists the quizzes of a course.
func GetCourseQuizzes(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	var quizzes []models.Quiz
	if err := database.Database.Db.
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("created_at asc").
		Find(&quizzes).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quizzes!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quizzes fetched successfully!", fiber.Map{
		"quizzes": quizzes,
		"total":   len(quizzes),
	})
}

// GetQuiz fetches one quiz with its questions. Correct answers are
// never included in the response.
func GetQuiz(c *fiber.Ctx) error {
	quizID := c.Locals("quizID").(uint)

	db := database.Database.Db

	var quiz models.Quiz
	if err := db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	var questions []models.QuizQuestion
	if err := db.Where("quiz_id = ?", quizID).Order("order_index asc").Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	type questionView struct {
		ID      uint     `json:"id"`
		Text    string   `json:"text"`
		Options []string `json:"options"`
		Marks   float64  `json:"marks"`
	}

	views := make([]questionView, len(questions))
	for i, q := range questions {
		var options []string
		if err := json.Unmarshal([]byte(q.Options), &options); err != nil {
			log.Printf("Malformed options on question %d: %v", q.ID, err)
		}
		views[i] = questionView{ID: q.ID, Text: q.Text, Options: options, Marks: q.Marks}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", fiber.Map{
		"quiz":      quiz,
		"questions": views,
	})
}

// SubmitQuiz scores and records the acting student's quiz submission.
// At most one submission per student per quiz; the composite unique
// index turns a concurrent double submit into a conflict.
func SubmitQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	quizID := c.Locals("quizID").(uint)

	reqData, ok := c.Locals("validatedQuizSubmit").(*courseValidator.SubmitQuizRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var quiz models.Quiz
	if err := db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	// Submitter must hold an active enrollment in the quiz's course
	var enrollment models.Enrollment
	if err := db.Where("student_id = ? AND course_id = ? AND status = ? AND is_deleted = ?",
		userID, quiz.CourseID, models.EnrollmentActive, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not enrolled in this course!", nil)
	}

	var questions []models.QuizQuestion
	if err := db.Where("quiz_id = ?", quizID).Order("order_index asc").Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	if len(reqData.Answers) != len(questions) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Answer count does not match question count!", nil)
	}

	marks := 0.0
	for i, q := range questions {
		if reqData.Answers[i] == q.CorrectIndex {
			marks += q.Marks
		}
	}

	submission := models.QuizSubmission{
		QuizID:        quizID,
		StudentID:     userID,
		MarksObtained: marks,
		SubmittedAt:   time.Now().UTC(),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var existing models.QuizSubmission
		if err := tx.Where("quiz_id = ? AND student_id = ?", quizID, userID).First(&existing).Error; err == nil {
			return gorm.ErrDuplicatedKey
		}
		return tx.Create(&submission).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Quiz already submitted!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit quiz!", nil)
	}

	activity.Default().Record(documents.ActivityLog{
		UserID:   userID,
		Action:   documents.ActionQuizSubmitted,
		Entity:   "quiz",
		EntityID: strconv.Itoa(int(quizID)),
	})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz submitted successfully!", fiber.Map{
		"marks_obtained": marks,
		"max_marks":      quiz.MaxMarks,
	})
}
