package documents

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Actions recorded in the activity log. Closed enumeration; the sink
// accepts nothing else.
const (
	ActionUserRegistered      = "user_registered"
	ActionCourseCreated       = "course_created"
	ActionCourseDeleted       = "course_deleted"
	ActionEnrolled            = "enrolled"
	ActionDropped             = "dropped"
	ActionQuizCreated         = "quiz_created"
	ActionQuizSubmitted       = "quiz_submitted"
	ActionDiscussionCreated   = "discussion_created"
	ActionPostAdded           = "post_added"
	ActionPostEdited          = "post_edited"
	ActionAssignmentCreated   = "assignment_created"
	ActionAssignmentSubmitted = "assignment_submitted"
	ActionSubmissionGraded    = "submission_graded"
)

// ActivityLog is append-only: written once, never updated. Duplicate
// entries under retry are acceptable, so there is no uniqueness index.
type ActivityLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    uint               `bson:"user_id" json:"user_id"`
	Action    string             `bson:"action" json:"action"`
	Entity    string             `bson:"entity" json:"entity"`
	EntityID  string             `bson:"entity_id" json:"entity_id"`
	Detail    string             `bson:"detail,omitempty" json:"detail,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
