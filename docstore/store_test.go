package docstore

import (
	"context"
	"fmt"
	"testing"

	"lms/apperror"
	"lms/models/documents"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeCollection keeps one discussion in memory and can simulate an
// interleaved writer by bumping the stored version between a read and
// the corresponding replace.
type fakeCollection struct {
	doc *documents.Discussion

	conflictsLeft int // replaces to fail with a version bump first
	findCalls     int
	replaceCalls  int
}

func (f *fakeCollection) FindByID(_ context.Context, id primitive.ObjectID) (*documents.Discussion, error) {
	f.findCalls++
	if f.doc == nil || f.doc.ID != id {
		return nil, fmt.Errorf("document %s: %w", id.Hex(), apperror.ErrNotFound)
	}
	clone := *f.doc
	clone.Posts = append([]documents.Post(nil), f.doc.Posts...)
	return &clone, nil
}

func (f *fakeCollection) Insert(_ context.Context, doc *documents.Discussion) (primitive.ObjectID, error) {
	f.doc = doc
	return doc.ID, nil
}

func (f *fakeCollection) Replace(_ context.Context, doc *documents.Discussion, expectedVersion int64) error {
	f.replaceCalls++
	if f.conflictsLeft > 0 {
		f.conflictsLeft--
		f.doc.Version++ // someone else won the race
		return fmt.Errorf("document %s version %d: %w", doc.ID.Hex(), expectedVersion, apperror.ErrConflict)
	}
	if f.doc.Version != expectedVersion {
		return fmt.Errorf("document %s version %d: %w", doc.ID.Hex(), expectedVersion, apperror.ErrConflict)
	}
	f.doc = doc
	return nil
}

func seededFake() (*fakeCollection, primitive.ObjectID) {
	id := primitive.NewObjectID()
	return &fakeCollection{doc: &documents.Discussion{ID: id, Version: 1, Posts: []documents.Post{}}}, id
}

func TestMutateAppliesAndBumpsVersion(t *testing.T) {
	fake, id := seededFake()

	doc, err := Mutate(context.Background(), fake, id, func(d *documents.Discussion) error {
		AppendPost(d, 4, "hello")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), doc.Version)
	assert.Equal(t, 1, doc.PostCount)
	assert.Equal(t, 1, fake.findCalls)
}

func TestMutateRetriesOnConflict(t *testing.T) {
	fake, id := seededFake()
	fake.conflictsLeft = 2

	doc, err := Mutate(context.Background(), fake, id, func(d *documents.Discussion) error {
		AppendPost(d, 4, "hello")
		return nil
	})
	require.NoError(t, err)
	// Two conflicted attempts, third succeeds from a fresh read
	assert.Equal(t, 3, fake.findCalls)
	assert.Equal(t, 1, doc.PostCount)
}

func TestMutateGivesUpAfterMaxAttempts(t *testing.T) {
	fake, id := seededFake()
	fake.conflictsLeft = MaxMutateAttempts

	_, err := Mutate(context.Background(), fake, id, func(d *documents.Discussion) error {
		AppendPost(d, 4, "hello")
		return nil
	})
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Equal(t, MaxMutateAttempts, fake.replaceCalls)
}

func TestMutateDoesNotReplaceWhenApplyFails(t *testing.T) {
	fake, id := seededFake()

	_, err := Mutate(context.Background(), fake, id, func(d *documents.Discussion) error {
		_, err := EditPost(d, 99, "x")
		return err
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Zero(t, fake.replaceCalls)
	assert.Equal(t, int64(1), fake.doc.Version)
}

func TestMutateNotFound(t *testing.T) {
	fake := &fakeCollection{}
	_, err := Mutate(context.Background(), fake, primitive.NewObjectID(), func(d *documents.Discussion) error {
		return nil
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
