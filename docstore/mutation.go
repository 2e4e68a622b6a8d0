package docstore

import (
	"fmt"
	"strings"
	"time"

	"lms/apperror"
	"lms/models/documents"
)

// The functions below apply one logical change to an embedded collection
// and keep its derived counter correct in the same in-memory mutation.
// They know nothing about persistence; callers run them inside Mutate so
// the whole document is written back atomically.

// AppendPost appends a new post to the discussion. The post id continues
// the sequence from the highest id ever used, so ids are never reused.
func AppendPost(d *documents.Discussion, userID uint, content string) *documents.Post {
	maxID := 0
	for _, p := range d.Posts {
		if p.PostID > maxID {
			maxID = p.PostID
		}
	}

	now := time.Now().UTC()
	d.Posts = append(d.Posts, documents.Post{
		PostID:    maxID + 1,
		UserID:    userID,
		Content:   strings.TrimSpace(content),
		CreatedAt: now,
	})
	d.PostCount = len(d.Posts)
	d.UpdatedAt = now

	return &d.Posts[len(d.Posts)-1]
}

// EditPost updates the content of an existing post in place.
func EditPost(d *documents.Discussion, postID int, newContent string) (*documents.Post, error) {
	for i := range d.Posts {
		if d.Posts[i].PostID != postID {
			continue
		}
		now := time.Now().UTC()
		d.Posts[i].Content = strings.TrimSpace(newContent)
		d.Posts[i].IsEdited = true
		d.Posts[i].EditedAt = &now
		d.UpdatedAt = now
		return &d.Posts[i], nil
	}
	return nil, fmt.Errorf("post %d: %w", postID, apperror.ErrNotFound)
}

// SubmissionInput is the student-supplied part of a submission.
type SubmissionInput struct {
	Content     string
	Attachments []string
}

// UpsertSubmission creates or replaces the student's submission. A
// second submit from the same student overwrites the existing entry
// rather than appending, so the count only grows for new students.
// Past the due date the submission is rejected outright unless the
// assignment allows late submissions, in which case it is stored with
// status late.
func UpsertSubmission(a *documents.Assignment, studentID uint, in SubmissionInput, now time.Time) (*documents.Submission, error) {
	late := now.After(a.DueDate)
	if late && !a.AllowLateSubmission {
		return nil, fmt.Errorf("assignment due %s: %w", a.DueDate.Format(time.RFC3339), apperror.ErrLateSubmission)
	}

	status := documents.StatusSubmitted
	if late {
		status = documents.StatusLate
	}

	sub := documents.Submission{
		StudentID:   studentID,
		Content:     strings.TrimSpace(in.Content),
		Attachments: in.Attachments,
		Status:      status,
		SubmittedAt: now,
	}

	for i := range a.Submissions {
		if a.Submissions[i].StudentID == studentID {
			// Resubmission replaces in place; the count stays put.
			a.Submissions[i] = sub
			a.UpdatedAt = now
			return &a.Submissions[i], nil
		}
	}

	a.Submissions = append(a.Submissions, sub)
	a.SubmissionCount = len(a.Submissions)
	a.UpdatedAt = now
	return &a.Submissions[len(a.Submissions)-1], nil
}

// GradeSubmission records a grade for an existing submission. Re-grading
// is allowed and only updates grade and feedback; status stays graded.
func GradeSubmission(a *documents.Assignment, studentID uint, grade float64, feedback string, graderID uint) (*documents.Submission, error) {
	if grade < 0 || grade > a.MaxMarks {
		return nil, fmt.Errorf("grade %.2f out of range 0..%.2f: %w", grade, a.MaxMarks, apperror.ErrGradeOutOfRange)
	}

	for i := range a.Submissions {
		if a.Submissions[i].StudentID != studentID {
			continue
		}
		now := time.Now().UTC()
		a.Submissions[i].Grade = &grade
		a.Submissions[i].Feedback = feedback
		a.Submissions[i].GradedBy = &graderID
		a.Submissions[i].GradedAt = &now
		a.Submissions[i].Status = documents.StatusGraded
		a.UpdatedAt = now
		return &a.Submissions[i], nil
	}
	return nil, fmt.Errorf("no submission from student %d: %w", studentID, apperror.ErrNotFound)
}
