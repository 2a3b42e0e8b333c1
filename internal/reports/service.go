package reports

import (
	"context"

	"github.com/google/uuid"

	"github.com/wellpulse/wellpulse/internal/entries"
)

// EntrySource supplies the entries a report aggregates over.
type EntrySource interface {
	List(ctx context.Context, userID uuid.UUID) ([]entries.Entry, error)
}

// Service coordinates report computation with the cache layer. Reports
// are pure functions of the user's entry list, so every getter follows
// the same load-compute-cache shape.
type Service struct {
	source EntrySource
	cache  *Cache
}

// NewService wires an EntrySource with a Cache helper.
func NewService(source EntrySource, cache *Cache) *Service {
	return &Service{source: source, cache: cache}
}

// Summary resolves the stats overview for the user.
func (s *Service) Summary(ctx context.Context, userID uuid.UUID) (Summary, error) {
	var summary Summary
	err := s.fetch(ctx, userID, "summary", &summary, func(list []entries.Entry) interface{} {
		return ComputeSummary(list)
	})
	return summary, err
}

// Weekly resolves per-week metric averages for the user.
func (s *Service) Weekly(ctx context.Context, userID uuid.UUID) ([]WeekAverages, error) {
	var weeks []WeekAverages
	err := s.fetch(ctx, userID, "weekly", &weeks, func(list []entries.Entry) interface{} {
		return ComputeWeekly(list)
	})
	return weeks, err
}

// MoodTrend resolves the mood trend points for the user.
func (s *Service) MoodTrend(ctx context.Context, userID uuid.UUID) ([]TrendPoint, error) {
	var points []TrendPoint
	err := s.fetch(ctx, userID, "mood_trend", &points, func(list []entries.Entry) interface{} {
		return ComputeMoodTrend(list)
	})
	return points, err
}

// SleepMood resolves the sleep/mood correlation for the user.
func (s *Service) SleepMood(ctx context.Context, userID uuid.UUID) (Correlation, error) {
	var corr Correlation
	err := s.fetch(ctx, userID, "sleep_mood", &corr, func(list []entries.Entry) interface{} {
		return ComputeSleepMood(list)
	})
	return corr, err
}

func (s *Service) fetch(ctx context.Context, userID uuid.UUID, kind string, dest interface{}, compute func([]entries.Entry) interface{}) error {
	loader := func(ctx context.Context) (interface{}, error) {
		list, err := s.source.List(ctx, userID)
		if err != nil {
			return nil, err
		}
		return compute(list), nil
	}

	key, err := s.cache.BuildKey(ctx, userID, kind)
	if err != nil {
		return err
	}
	return s.cache.FetchJSON(ctx, key, dest, loader)
}
