package docstore

import (
	"testing"
	"time"

	"lms/apperror"
	"lms/models/documents"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscussion() *documents.Discussion {
	return &documents.Discussion{
		CourseID:  1,
		Title:     "Week 1",
		CreatedBy: 7,
		Posts:     []documents.Post{},
		Version:   1,
	}
}

func newAssignment(due time.Time, allowLate bool) *documents.Assignment {
	return &documents.Assignment{
		CourseID:            1,
		InstructorID:        2,
		Title:               "Essay",
		MaxMarks:            100,
		DueDate:             due,
		AllowLateSubmission: allowLate,
		Submissions:         []documents.Submission{},
		Version:             1,
	}
}

func TestAppendPostAssignsSequentialIDs(t *testing.T) {
	d := newDiscussion()

	p1 := AppendPost(d, 4, "hello")
	assert.Equal(t, 1, p1.PostID)
	assert.Equal(t, 1, d.PostCount)

	p2 := AppendPost(d, 2, "world")
	assert.Equal(t, 2, p2.PostID)
	assert.Equal(t, 2, d.PostCount)
	assert.Len(t, d.Posts, d.PostCount)
}

func TestAppendPostTrimsContent(t *testing.T) {
	d := newDiscussion()
	p := AppendPost(d, 4, "  hello  ")
	assert.Equal(t, "hello", p.Content)
}

func TestAppendPostNeverReusesIDs(t *testing.T) {
	d := newDiscussion()
	AppendPost(d, 1, "a")
	AppendPost(d, 1, "b")
	AppendPost(d, 1, "c")

	// A future delete must not cause id reuse: ids continue from the max
	d.Posts = d.Posts[:2]
	d.PostCount = len(d.Posts)

	p := AppendPost(d, 1, "d")
	assert.Equal(t, 3, p.PostID)
	assert.Equal(t, 3, d.PostCount)
}

func TestEditPost(t *testing.T) {
	d := newDiscussion()
	AppendPost(d, 4, "hello")

	p, err := EditPost(d, 1, "hello edited")
	require.NoError(t, err)
	assert.True(t, p.IsEdited)
	assert.NotNil(t, p.EditedAt)
	assert.Equal(t, "hello edited", p.Content)
}

func TestEditPostNotFound(t *testing.T) {
	d := newDiscussion()
	AppendPost(d, 4, "hello")

	before := d.Posts[0]
	_, err := EditPost(d, 99, "x")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, before, d.Posts[0])
	assert.Equal(t, 1, d.PostCount)
}

func TestUpsertSubmissionReplacesInPlace(t *testing.T) {
	due := time.Date(2025, 12, 15, 23, 59, 59, 0, time.UTC)
	a := newAssignment(due, false)

	first := time.Date(2025, 12, 14, 10, 0, 0, 0, time.UTC)
	s, err := UpsertSubmission(a, 11, SubmissionInput{Content: "draft"}, first)
	require.NoError(t, err)
	assert.Equal(t, documents.StatusSubmitted, s.Status)
	assert.Equal(t, 1, a.SubmissionCount)

	second := time.Date(2025, 12, 14, 15, 0, 0, 0, time.UTC)
	s, err = UpsertSubmission(a, 11, SubmissionInput{Content: "final"}, second)
	require.NoError(t, err)
	assert.Equal(t, 1, a.SubmissionCount)
	assert.Len(t, a.Submissions, 1)
	assert.Equal(t, "final", s.Content)
	assert.Equal(t, second, s.SubmittedAt)
}

func TestUpsertSubmissionRejectsLate(t *testing.T) {
	due := time.Date(2025, 12, 15, 23, 59, 59, 0, time.UTC)
	a := newAssignment(due, false)

	_, err := UpsertSubmission(a, 11, SubmissionInput{Content: "on time"},
		time.Date(2025, 12, 14, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	_, err = UpsertSubmission(a, 22, SubmissionInput{Content: "too late"},
		time.Date(2025, 12, 16, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, apperror.ErrLateSubmission)
	// No partial append
	assert.Equal(t, 1, a.SubmissionCount)
	assert.Len(t, a.Submissions, 1)
}

func TestUpsertSubmissionMarksLateWhenAllowed(t *testing.T) {
	due := time.Date(2025, 12, 15, 23, 59, 59, 0, time.UTC)
	a := newAssignment(due, true)

	s, err := UpsertSubmission(a, 11, SubmissionInput{Content: "late but ok"},
		time.Date(2025, 12, 16, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, documents.StatusLate, s.Status)
	assert.Equal(t, 1, a.SubmissionCount)
}

func TestGradeSubmission(t *testing.T) {
	due := time.Date(2025, 12, 15, 23, 59, 59, 0, time.UTC)
	a := newAssignment(due, false)
	_, err := UpsertSubmission(a, 11, SubmissionInput{Content: "work"},
		time.Date(2025, 12, 14, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	_, err = GradeSubmission(a, 11, 101, "too generous", 2)
	assert.ErrorIs(t, err, apperror.ErrGradeOutOfRange)
	assert.Equal(t, documents.StatusSubmitted, a.Submissions[0].Status)
	assert.Nil(t, a.Submissions[0].Grade)

	s, err := GradeSubmission(a, 11, 85, "good work", 2)
	require.NoError(t, err)
	assert.Equal(t, documents.StatusGraded, s.Status)
	require.NotNil(t, s.Grade)
	assert.Equal(t, 85.0, *s.Grade)
	require.NotNil(t, s.GradedBy)
	assert.Equal(t, uint(2), *s.GradedBy)
}

func TestGradeSubmissionNotFound(t *testing.T) {
	a := newAssignment(time.Now().Add(time.Hour), false)
	_, err := GradeSubmission(a, 99, 50, "", 2)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestRegradeKeepsGradedStatus(t *testing.T) {
	a := newAssignment(time.Now().Add(time.Hour), false)
	_, err := UpsertSubmission(a, 11, SubmissionInput{Content: "work"}, time.Now())
	require.NoError(t, err)

	_, err = GradeSubmission(a, 11, 70, "first pass", 2)
	require.NoError(t, err)

	s, err := GradeSubmission(a, 11, 75, "second pass", 2)
	require.NoError(t, err)
	assert.Equal(t, documents.StatusGraded, s.Status)
	assert.Equal(t, 75.0, *s.Grade)
	assert.Equal(t, "second pass", s.Feedback)
}
