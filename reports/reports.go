// Package reports builds read-only rollups across the two stores. It
// never writes to either store, and the two halves of a merged report
// are computed independently so one store being down does not take the
// other half with it.
package reports

import (
	"context"
	"log"
	"math"

	"lms/models"

	"gorm.io/gorm"
)

// StudentSummary is one row of the per-course performance report.
// AvgPercentage is nil for students with no quiz submissions; a zero
// there would drag course averages down for students who simply have
// not submitted yet.
type StudentSummary struct {
	StudentID        uint     `json:"student_id"`
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	QuizzesSubmitted int      `json:"quizzes_submitted"`
	TotalQuizzes     int      `json:"total_quizzes"`
	AvgPercentage    *float64 `json:"avg_percentage"`
}

// CourseStudentSummary reports, per enrolled student, how many of the
// course's quizzes they submitted and their average percentage.
func CourseStudentSummary(db *gorm.DB, courseID uint) ([]StudentSummary, error) {
	var totalQuizzes int64
	if err := db.Model(&models.Quiz{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Count(&totalQuizzes).Error; err != nil {
		return nil, err
	}

	var rows []StudentSummary
	err := db.Raw(`
		SELECT e.student_id AS student_id,
		       u.name AS name,
		       u.email AS email,
		       COUNT(qs.id) AS quizzes_submitted,
		       AVG(qs.marks_obtained * 100.0 / q.max_marks) AS avg_percentage
		FROM enrollments e
		JOIN users u ON u.id = e.student_id
		LEFT JOIN quizzes q ON q.course_id = e.course_id AND q.is_deleted = ?
		LEFT JOIN quiz_submissions qs ON qs.quiz_id = q.id AND qs.student_id = e.student_id
		WHERE e.course_id = ? AND e.is_deleted = ? AND e.status <> ?
		GROUP BY e.student_id, u.name, u.email
		ORDER BY u.name`,
		false, courseID, false, models.EnrollmentDropped,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for i := range rows {
		rows[i].TotalQuizzes = int(totalQuizzes)
		if rows[i].AvgPercentage != nil {
			rounded := RoundPercentage(*rows[i].AvgPercentage)
			rows[i].AvgPercentage = &rounded
		}
	}
	return rows, nil
}

// RoundPercentage rounds half-up to 2 decimal places. Applied everywhere
// a percentage leaves this package so reported values are exact.
func RoundPercentage(x float64) float64 {
	return math.Floor(x*100+0.5) / 100
}

// RelationalStats is the Postgres half of the platform report.
type RelationalStats struct {
	UsersByRole     map[string]int64 `json:"users_by_role"`
	Courses         int64            `json:"courses"`
	Enrollments     int64            `json:"enrollments"`
	Quizzes         int64            `json:"quizzes"`
	QuizSubmissions int64            `json:"quiz_submissions"`
}

// DocumentStats is the Mongo half of the platform report.
type DocumentStats struct {
	Discussions  int64 `json:"discussions"`
	Assignments  int64 `json:"assignments"`
	ActivityLogs int64 `json:"activity_logs"`
}

// DocumentCounter provides the document-store counts. The Mongo
// implementation lives in counter.go; tests substitute a fake.
type DocumentCounter interface {
	Counts(ctx context.Context) (*DocumentStats, error)
}

// PlatformStats merges both halves. A half that failed is nil in the
// result; the report itself never fails because one store is down.
type PlatformStats struct {
	Relational *RelationalStats `json:"relational"`
	Documents  *DocumentStats   `json:"documents"`
}

// Platform computes both halves independently and merges them.
func Platform(ctx context.Context, db *gorm.DB, docs DocumentCounter) PlatformStats {
	var stats PlatformStats

	rel, err := relationalStats(db)
	if err != nil {
		log.Printf("platform stats: relational half failed: %v", err)
	} else {
		stats.Relational = rel
	}

	doc, err := docs.Counts(ctx)
	if err != nil {
		log.Printf("platform stats: document half failed: %v", err)
	} else {
		stats.Documents = doc
	}

	return stats
}

func relationalStats(db *gorm.DB) (*RelationalStats, error) {
	stats := &RelationalStats{UsersByRole: map[string]int64{}}

	var roleRows []struct {
		Role  string
		Count int64
	}
	if err := db.Model(&models.User{}).
		Select("role, COUNT(*) AS count").
		Where("is_deleted = ?", false).
		Group("role").
		Scan(&roleRows).Error; err != nil {
		return nil, err
	}
	for _, r := range roleRows {
		stats.UsersByRole[r.Role] = r.Count
	}

	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.Course{}, &stats.Courses},
		{&models.Enrollment{}, &stats.Enrollments},
		{&models.Quiz{}, &stats.Quizzes},
		{&models.QuizSubmission{}, &stats.QuizSubmissions},
	}
	for _, c := range counts {
		q := db.Model(c.model)
		switch c.model.(type) {
		case *models.QuizSubmission:
			// no soft-delete column on submissions
		default:
			q = q.Where("is_deleted = ?", false)
		}
		if err := q.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	return stats, nil
}
