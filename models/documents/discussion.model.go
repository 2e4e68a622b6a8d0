package documents

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is one entry in a discussion thread. PostID is sequential within
// the parent document, assigned by the mutation engine, and never reused.
type Post struct {
	PostID    int        `bson:"post_id" json:"post_id"`
	UserID    uint       `bson:"user_id" json:"user_id"`
	Content   string     `bson:"content" json:"content"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	IsEdited  bool       `bson:"is_edited" json:"is_edited"`
	EditedAt  *time.Time `bson:"edited_at,omitempty" json:"edited_at,omitempty"`
}

// Discussion is one thread. CourseID and CreatedBy are plain references
// to relational rows; they are validated before the document is written,
// Mongo itself enforces nothing about them.
//
// PostCount must always equal len(Posts); every mutation recomputes it
// in the same write that changes Posts.
type Discussion struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CourseID  uint               `bson:"course_id" json:"course_id"`
	Title     string             `bson:"title" json:"title"`
	CreatedBy uint               `bson:"created_by" json:"created_by"`
	Posts     []Post             `bson:"posts" json:"posts"`
	PostCount int                `bson:"post_count" json:"post_count"`
	Version   int64              `bson:"version" json:"-"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

func (d *Discussion) DocID() primitive.ObjectID { return d.ID }
func (d *Discussion) DocVersion() int64         { return d.Version }
func (d *Discussion) SetDocVersion(v int64)     { d.Version = v }
