package database

import (
	"context"
	"log"
	"time"

	"lms/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoInstance holds the document store connection
type MongoInstance struct {
	Client *mongo.Client
	Db     *mongo.Database
}

// Mongo is the global document store instance
var Mongo MongoInstance

const (
	DiscussionCollection  = "discussions"
	AssignmentCollection  = "assignments"
	ActivityLogCollection = "activity_logs"
)

// ConnectMongo establishes a connection to MongoDB and prepares indexes.
func ConnectMongo() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.AppConfig.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}

	db := client.Database(config.AppConfig.MongoDBName)
	ensureIndexes(ctx, db)

	Mongo = MongoInstance{Client: client, Db: db}
}

// DisconnectMongo closes the document store connection.
func DisconnectMongo() {
	if Mongo.Client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Mongo.Client.Disconnect(ctx); err != nil {
		log.Printf("Error disconnecting MongoDB: %v", err)
	}
}

func ensureIndexes(ctx context.Context, db *mongo.Database) {
	indexes := map[string][]mongo.IndexModel{
		DiscussionCollection: {
			{Keys: bson.D{{Key: "course_id", Value: 1}}},
		},
		AssignmentCollection: {
			{Keys: bson.D{{Key: "course_id", Value: 1}}},
		},
		ActivityLogCollection: {
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
		},
	}

	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			log.Printf("Warning: failed to create indexes on %s: %v", coll, err)
		}
	}
}
