// Package activity records state-changing operations into the
// activity_logs collection. Recording is best effort: it runs after the
// primary write has committed, on its own goroutine with its own
// timeout, and a failure is logged and dropped, never surfaced to the
// request that triggered it.
package activity

import (
	"context"
	"log"
	"time"

	"lms/models/documents"

	"go.mongodb.org/mongo-driver/mongo"
)

const recordTimeout = 5 * time.Second

// Sink writes activity log entries.
type Sink struct {
	coll *mongo.Collection
}

// NewSink returns a sink writing to coll.
func NewSink(coll *mongo.Collection) *Sink {
	return &Sink{coll: coll}
}

// Record persists the entry asynchronously. Fire and forget.
func (s *Sink) Record(entry documents.ActivityLog) {
	if s == nil || s.coll == nil {
		return
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("activity sink panic: %v", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()

		if _, err := s.coll.InsertOne(ctx, entry); err != nil {
			log.Printf("activity sink: failed to record %s: %v", entry.Action, err)
		}
	}()
}
