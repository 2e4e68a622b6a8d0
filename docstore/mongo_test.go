package docstore

import (
	"context"
	"encoding/json"
	"testing"

	"lms/models/documents"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func discussionCollection(mt *mtest.T) *MongoCollection[*documents.Discussion] {
	return NewMongoCollection(mt.Coll, func() *documents.Discussion { return &documents.Discussion{} })
}

func TestFindEmptyResultIsAnEmptySlice(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("no matches", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "lms.discussions", mtest.FirstBatch))

		docs, err := discussionCollection(mt).Find(context.Background(), bson.M{"course_id": 42})
		require.NoError(mt, err)
		require.NotNil(mt, docs)
		assert.Empty(mt, docs)

		// List endpoints hand the slice straight to the JSON encoder,
		// so an empty match must render as [] and not null.
		body, err := json.Marshal(docs)
		require.NoError(mt, err)
		assert.Equal(mt, "[]", string(body))
	})
}

func TestFindDecodesMatches(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("one match", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		first := mtest.CreateCursorResponse(1, "lms.discussions", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "course_id", Value: 42},
			{Key: "title", Value: "Week 1"},
			{Key: "version", Value: int64(1)},
		})
		end := mtest.CreateCursorResponse(0, "lms.discussions", mtest.NextBatch)
		mt.AddMockResponses(first, end)

		docs, err := discussionCollection(mt).Find(context.Background(), bson.M{"course_id": 42})
		require.NoError(mt, err)
		require.Len(mt, docs, 1)
		assert.Equal(mt, id, docs[0].ID)
		assert.Equal(mt, "Week 1", docs[0].Title)
	})
}
