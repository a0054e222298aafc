package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ActivityEntry is one row of the recent-activity feed shown on the
// dashboard.
type ActivityEntry struct {
	ID         string
	TeacherID  int64
	EventType  string
	Summary    string
	OccurredAt time.Time
}

// ActivityRepository persists the dashboard activity feed.
type ActivityRepository interface {
	Record(ctx context.Context, entry *ActivityEntry) error
	RecentByTeacher(ctx context.Context, teacherID int64, limit int) ([]*ActivityEntry, error)
}

type activityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository returns a Postgres-backed implementation.
func NewActivityRepository(pool *pgxpool.Pool) ActivityRepository {
	return &activityRepository{pool: pool}
}

func (r *activityRepository) Record(ctx context.Context, entry *ActivityEntry) error {
	const query = `
        INSERT INTO activity_log (id, teacher_id, event_type, summary, occurred_at)
        VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.TeacherID,
		entry.EventType,
		entry.Summary,
		entry.OccurredAt,
	)
	return err
}

func (r *activityRepository) RecentByTeacher(ctx context.Context, teacherID int64, limit int) ([]*ActivityEntry, error) {
	const query = `
        SELECT id, teacher_id, event_type, summary, occurred_at
        FROM activity_log WHERE teacher_id=$1
        ORDER BY occurred_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, teacherID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*ActivityEntry
	for rows.Next() {
		var e ActivityEntry
		if err := rows.Scan(&e.ID, &e.TeacherID, &e.EventType, &e.Summary, &e.OccurredAt); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
