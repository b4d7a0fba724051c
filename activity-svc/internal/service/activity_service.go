package service

import (
	"context"

	"bella-vista/domain"

	"go.uber.org/zap"
)

const (
	DefaultRecentLimit = 20
	MaxRecentLimit     = 50
)

type ActivityService struct {
	store  FeedStore
	logger *zap.Logger
}

func NewActivityService(store FeedStore, logger *zap.Logger) *ActivityService {
	return &ActivityService{store: store, logger: logger}
}

// Recent returns the newest events, newest first. The Redis feed is tried
// first; the audit log answers when the feed is empty or unreachable.
func (s *ActivityService) Recent(ctx context.Context, limit int) ([]domain.ChangeEvent, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}

	events, err := s.store.RecentFromCache(ctx, limit)
	if err == nil && len(events) > 0 {
		return events, nil
	}
	if err != nil {
		s.logger.Warn("recent feed unavailable, reading audit log", zap.Error(err))
	}
	return s.store.RecentFromLog(ctx, limit)
}

func (s *ActivityService) Daily(ctx context.Context, date string) (map[string]int64, error) {
	return s.store.DailyCounts(ctx, date)
}
