package documents

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Submission statuses. submitted and late are mutually exclusive at
// creation (decided by the due-date comparison); graded is terminal.
// resubmit is reserved: the model defines it but no code path sets it.
const (
	StatusSubmitted = "submitted"
	StatusLate      = "late"
	StatusGraded    = "graded"
	StatusResubmit  = "resubmit"
)

// Submission is one student's submission, embedded in the parent
// Assignment. Exactly one entry per StudentID; resubmitting replaces
// the entry in place.
type Submission struct {
	StudentID   uint       `bson:"student_id" json:"student_id"`
	Content     string     `bson:"content" json:"content"`
	Attachments []string   `bson:"attachments,omitempty" json:"attachments,omitempty"`
	Status      string     `bson:"status" json:"status"`
	SubmittedAt time.Time  `bson:"submitted_at" json:"submitted_at"`
	Grade       *float64   `bson:"grade,omitempty" json:"grade,omitempty"`
	Feedback    string     `bson:"feedback,omitempty" json:"feedback,omitempty"`
	GradedBy    *uint      `bson:"graded_by,omitempty" json:"graded_by,omitempty"`
	GradedAt    *time.Time `bson:"graded_at,omitempty" json:"graded_at,omitempty"`
}

// Assignment is one assignment document with its submissions embedded.
// SubmissionCount must always equal len(Submissions).
type Assignment struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CourseID            uint               `bson:"course_id" json:"course_id"`
	InstructorID        uint               `bson:"instructor_id" json:"instructor_id"`
	Title               string             `bson:"title" json:"title"`
	Description         string             `bson:"description" json:"description"`
	MaxMarks            float64            `bson:"max_marks" json:"max_marks"`
	DueDate             time.Time          `bson:"due_date" json:"due_date"`
	AllowLateSubmission bool               `bson:"allow_late_submission" json:"allow_late_submission"`
	Submissions         []Submission       `bson:"submissions" json:"submissions"`
	SubmissionCount     int                `bson:"submission_count" json:"submission_count"`
	Version             int64              `bson:"version" json:"-"`
	CreatedAt           time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time          `bson:"updated_at" json:"updated_at"`
}

func (a *Assignment) DocID() primitive.ObjectID { return a.ID }
func (a *Assignment) DocVersion() int64         { return a.Version }
func (a *Assignment) SetDocVersion(v int64)     { a.Version = v }
