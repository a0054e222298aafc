package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/tutoring-service/internal/config"
	"github.com/spec-kit/tutoring-service/internal/repository"
)

// ActivityItem is one dashboard feed entry.
type ActivityItem struct {
	EventType  string    `json:"event_type"`
	Summary    string    `json:"summary"`
	OccurredAt time.Time `json:"occurred_at"`
}

// DashboardSummary aggregates recent business activity for one teacher.
type DashboardSummary struct {
	StudentCount        int64          `json:"student_count"`
	GroupCount          int64          `json:"group_count"`
	EvaluationsThisWeek int64          `json:"evaluations_this_week"`
	RecentActivity      []ActivityItem `json:"recent_activity"`
	GeneratedAt         time.Time      `json:"generated_at"`
}

// DashboardService builds teacher dashboard summaries, caching them briefly
// in Redis so a busy dashboard does not hammer the aggregate queries.
type DashboardService struct {
	students    repository.StudentRepository
	groups      repository.ClassGroupRepository
	evaluations repository.EvaluationRepository
	activity    repository.ActivityRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	recentLimit int
	logger      *zap.Logger
}

// NewDashboardService builds the service. The cache client may be nil, in
// which case every request recomputes the summary.
func NewDashboardService(cfg config.DashboardConfig, students repository.StudentRepository, groups repository.ClassGroupRepository, evaluations repository.EvaluationRepository, activity repository.ActivityRepository, cache *redis.Client, logger *zap.Logger) *DashboardService {
	recent := cfg.RecentActivity
	if recent <= 0 {
		recent = 10
	}
	return &DashboardService{
		students:    students,
		groups:      groups,
		evaluations: evaluations,
		activity:    activity,
		cache:       cache,
		cacheTTL:    cfg.DashboardCacheTTL(),
		recentLimit: recent,
		logger:      logger,
	}
}

// Summary returns the teacher's dashboard, served from cache when fresh.
func (s *DashboardService) Summary(ctx context.Context, teacherID int64) (*DashboardSummary, error) {
	key := fmt.Sprintf("dashboard:summary:%d", teacherID)

	if cached := s.fromCache(ctx, key); cached != nil {
		return cached, nil
	}

	summary, err := s.build(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, key, summary)
	return summary, nil
}

func (s *DashboardService) build(ctx context.Context, teacherID int64) (*DashboardSummary, error) {
	studentCount, err := s.students.CountByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	groupCount, err := s.groups.CountByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	weekAgo := time.Now().AddDate(0, 0, -7)
	evalCount, err := s.evaluations.CountByTeacherSince(ctx, teacherID, weekAgo)
	if err != nil {
		return nil, err
	}
	entries, err := s.activity.RecentByTeacher(ctx, teacherID, s.recentLimit)
	if err != nil {
		return nil, err
	}

	items := make([]ActivityItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, ActivityItem{
			EventType:  e.EventType,
			Summary:    e.Summary,
			OccurredAt: e.OccurredAt,
		})
	}

	return &DashboardSummary{
		StudentCount:        studentCount,
		GroupCount:          groupCount,
		EvaluationsThisWeek: evalCount,
		RecentActivity:      items,
		GeneratedAt:         time.Now(),
	}, nil
}

func (s *DashboardService) fromCache(ctx context.Context, key string) *DashboardSummary {
	if s.cache == nil || s.cacheTTL <= 0 {
		return nil
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var summary DashboardSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil
	}
	return &summary
}

func (s *DashboardService) toCache(ctx context.Context, key string, summary *DashboardSummary) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Debug("dashboard cache write failed", zap.Error(err))
	}
}
