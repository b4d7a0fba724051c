package service

import (
	"context"

	"bella-vista/activity-svc/internal/storage"
	"bella-vista/domain"

	"github.com/segmentio/kafka-go"
)

type StoreInterface interface {
	Record(ctx context.Context, event domain.ChangeEvent) error
}

type FeedStore interface {
	RecentFromCache(ctx context.Context, limit int) ([]domain.ChangeEvent, error)
	RecentFromLog(ctx context.Context, limit int) ([]domain.ChangeEvent, error)
	DailyCounts(ctx context.Context, date string) (map[string]int64, error)
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ActivityInterface interface {
	Recent(ctx context.Context, limit int) ([]domain.ChangeEvent, error)
	Daily(ctx context.Context, date string) (map[string]int64, error)
}

var (
	_ StoreInterface    = (*storage.Store)(nil)
	_ FeedStore         = (*storage.Store)(nil)
	_ MessageReader     = (*kafka.Reader)(nil)
	_ ActivityInterface = (*ActivityService)(nil)
)
