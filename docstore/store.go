// Package docstore is the access layer for the Mongo-held aggregates
// (discussions, assignments) plus the mutation engine for their embedded
// collections. Writes are whole-document replaces guarded by a version
// field: the replace filter matches {_id, version}, so an interleaved
// writer makes the replace miss and the mutation is retried from a fresh
// read instead of overwriting the other writer's array entry.
package docstore

import (
	"context"
	"errors"
	"fmt"

	"lms/apperror"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MaxMutateAttempts bounds the optimistic-concurrency retry loop.
const MaxMutateAttempts = 3

// Document is implemented by the versioned aggregate roots.
type Document interface {
	DocID() primitive.ObjectID
	DocVersion() int64
	SetDocVersion(v int64)
}

// Collection is the persistence surface Mutate works against. The Mongo
// implementation is below; tests substitute a fake.
type Collection[T Document] interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (T, error)
	Insert(ctx context.Context, doc T) (primitive.ObjectID, error)
	Replace(ctx context.Context, doc T, expectedVersion int64) error
}

// Mutate runs one read-modify-write cycle against a single document:
// load, apply, bump version, replace-if-version-unchanged. A version
// miss restarts from a fresh read, up to MaxMutateAttempts, after which
// the conflict is surfaced to the caller.
func Mutate[T Document](ctx context.Context, coll Collection[T], id primitive.ObjectID, apply func(T) error) (T, error) {
	var zero T
	for attempt := 0; attempt < MaxMutateAttempts; attempt++ {
		doc, err := coll.FindByID(ctx, id)
		if err != nil {
			return zero, err
		}

		expected := doc.DocVersion()
		if err := apply(doc); err != nil {
			return zero, err
		}
		doc.SetDocVersion(expected + 1)

		err = coll.Replace(ctx, doc, expected)
		if errors.Is(err, apperror.ErrConflict) {
			continue
		}
		if err != nil {
			return zero, err
		}
		return doc, nil
	}
	return zero, fmt.Errorf("document %s: concurrent modification: %w", id.Hex(), apperror.ErrConflict)
}

// MongoCollection adapts one mongo.Collection to the Collection interface.
type MongoCollection[T Document] struct {
	coll   *mongo.Collection
	newDoc func() T
}

// NewMongoCollection wraps coll; newDoc allocates an empty document to
// decode into.
func NewMongoCollection[T Document](coll *mongo.Collection, newDoc func() T) *MongoCollection[T] {
	return &MongoCollection[T]{coll: coll, newDoc: newDoc}
}

func (m *MongoCollection[T]) FindByID(ctx context.Context, id primitive.ObjectID) (T, error) {
	doc := m.newDoc()
	err := m.coll.FindOne(ctx, bson.M{"_id": id}).Decode(doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		var zero T
		return zero, fmt.Errorf("document %s: %w", id.Hex(), apperror.ErrNotFound)
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %v", apperror.ErrStoreUnavailable, err)
	}
	return doc, nil
}

func (m *MongoCollection[T]) Insert(ctx context.Context, doc T) (primitive.ObjectID, error) {
	res, err := m.coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %v", apperror.ErrStoreUnavailable, err)
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

// Replace writes the whole document back, but only if nobody bumped the
// version since our read.
func (m *MongoCollection[T]) Replace(ctx context.Context, doc T, expectedVersion int64) error {
	res, err := m.coll.ReplaceOne(ctx, bson.M{"_id": doc.DocID(), "version": expectedVersion}, doc)
	if err != nil {
		return fmt.Errorf("%w: %v", apperror.ErrStoreUnavailable, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("document %s version %d: %w", doc.DocID().Hex(), expectedVersion, apperror.ErrConflict)
	}
	return nil
}

// Find returns documents matching filter, decoded via newDoc. The
// result is never nil, so an empty match serializes as a JSON array.
func (m *MongoCollection[T]) Find(ctx context.Context, filter bson.M) ([]T, error) {
	cur, err := m.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrStoreUnavailable, err)
	}
	defer cur.Close(ctx)

	out := []T{}
	for cur.Next(ctx) {
		doc := m.newDoc()
		if err := cur.Decode(doc); err != nil {
			return nil, fmt.Errorf("%w: %v", apperror.ErrStoreUnavailable, err)
		}
		out = append(out, doc)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrStoreUnavailable, err)
	}
	return out, nil
}
