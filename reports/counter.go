package reports

import (
	"context"

	"lms/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoCounter counts documents in the live Mongo database.
type MongoCounter struct {
	Db *mongo.Database
}

func (m MongoCounter) Counts(ctx context.Context) (*DocumentStats, error) {
	stats := &DocumentStats{}

	counts := []struct {
		coll string
		dest *int64
	}{
		{database.DiscussionCollection, &stats.Discussions},
		{database.AssignmentCollection, &stats.Assignments},
		{database.ActivityLogCollection, &stats.ActivityLogs},
	}
	for _, c := range counts {
		n, err := m.Db.Collection(c.coll).CountDocuments(ctx, bson.M{})
		if err != nil {
			return nil, err
		}
		*c.dest = n
	}
	return stats, nil
}
