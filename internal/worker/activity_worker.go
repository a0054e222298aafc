package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/tutoring-service/internal/auth"
	"github.com/spec-kit/tutoring-service/internal/events"
	"github.com/spec-kit/tutoring-service/internal/repository"
)

// StartActivityRecorder subscribes the activity-log writer to all business
// events so the dashboard feed fills up as things happen.
func StartActivityRecorder(dispatcher events.Dispatcher, activity repository.ActivityRepository, logger *zap.Logger) {
	if dispatcher == nil || activity == nil {
		return
	}

	record := func(ctx context.Context, event events.Event) error {
		entry := &repository.ActivityEntry{
			ID:         event.ID,
			TeacherID:  event.TeacherID,
			EventType:  string(event.Type),
			Summary:    event.Summary,
			OccurredAt: event.Timestamp,
		}
		if err := activity.Record(ctx, entry); err != nil {
			logger.Warn("failed to record activity", zap.String("event_type", string(event.Type)), zap.Error(err))
		}
		return nil
	}

	for _, eventType := range []events.EventType{
		events.EventStudentCreated,
		events.EventStudentAddedToGroup,
		events.EventGroupCreated,
		events.EventEvaluationRecorded,
		events.EventPlanAssigned,
	} {
		dispatcher.Subscribe(eventType, record)
	}
}

// StartBlacklistSweeper purges expired blacklist entries on an interval
// until ctx is cancelled. Sweeping only bounds memory; Contains already
// evicts expired entries on read.
func StartBlacklistSweeper(ctx context.Context, blacklist *auth.Blacklist, interval time.Duration, logger *zap.Logger) {
	if blacklist == nil || interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := blacklist.Sweep(); removed > 0 {
					logger.Debug("blacklist sweep", zap.Int("removed", removed))
				}
			}
		}
	}()
}
