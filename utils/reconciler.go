package utils

import (
	"context"
	"log"
	"time"

	"lms/database"
	"lms/models"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
)

// logReconciler logs reconciler events with timestamp
func logReconciler(message string) {
	log.Printf("[RECONCILER %s] %s", time.Now().Format(time.RFC3339), message)
}

// StartReconciler schedules the periodic cross-store orphan scan.
// Mongo documents reference Postgres courses by plain integer, so a
// course deleted on the relational side can leave discussions and
// assignments behind. The scan only reports; whether orphans get
// removed or re-homed is an operator decision.
func StartReconciler(spec string) *cron.Cron {
	c := cron.New()
	if _, err := c.AddFunc(spec, ReconcileOnce); err != nil {
		log.Fatalf("Failed to schedule reconciler: %v", err)
	}
	c.Start()
	logReconciler("scheduled with spec " + spec)
	return c
}

// ReconcileOnce runs one scan over both document collections.
func ReconcileOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	for _, coll := range []string{database.DiscussionCollection, database.AssignmentCollection} {
		orphans, err := orphanedCourseIDs(ctx, coll)
		if err != nil {
			logReconciler("scan of " + coll + " failed: " + err.Error())
			continue
		}
		if len(orphans) == 0 {
			logReconciler(coll + ": no orphaned course references")
			continue
		}
		for _, id := range orphans {
			log.Printf("[RECONCILER] %s: course_id %d has no live course", coll, id)
		}
	}
}

// orphanedCourseIDs returns the distinct course ids referenced by coll
// that do not resolve to a live (non-deleted) course row.
func orphanedCourseIDs(ctx context.Context, coll string) ([]uint, error) {
	raw, err := database.Mongo.Db.Collection(coll).Distinct(ctx, "course_id", bson.M{})
	if err != nil {
		return nil, err
	}

	referenced := make([]uint, 0, len(raw))
	for _, v := range raw {
		switch n := v.(type) {
		case int32:
			referenced = append(referenced, uint(n))
		case int64:
			referenced = append(referenced, uint(n))
		case float64:
			referenced = append(referenced, uint(n))
		}
	}
	if len(referenced) == 0 {
		return nil, nil
	}

	var live []uint
	if err := database.Database.Db.Model(&models.Course{}).
		Where("id IN ? AND is_deleted = ?", referenced, false).
		Pluck("id", &live).Error; err != nil {
		return nil, err
	}

	liveSet := make(map[uint]bool, len(live))
	for _, id := range live {
		liveSet[id] = true
	}

	var orphans []uint
	for _, id := range referenced {
		if !liveSet[id] {
			orphans = append(orphans, id)
		}
	}
	return orphans, nil
}
