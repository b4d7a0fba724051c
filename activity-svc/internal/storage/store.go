package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"bella-vista/domain"

	"github.com/redis/go-redis/v9"
)

const (
	RecentKey      = "activity:recent"
	recentCapacity = 50
	dailyTTL       = 7 * 24 * time.Hour
)

func DailyKey(date string) string {
	return "activity:daily:" + date
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS content_events (
		id          BIGSERIAL PRIMARY KEY,
		event_type  TEXT NOT NULL,
		resource    TEXT NOT NULL,
		record_id   TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT '',
		occurred_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS content_events_occurred_at_idx ON content_events (occurred_at DESC)`,
}

// Store keeps the durable audit log in Postgres and the hot feed plus
// per-day counters in Redis.
type Store struct {
	db  *sql.DB
	rdb *redis.Client
}

func NewStore(db *sql.DB, rdb *redis.Client) *Store {
	return &Store{db: db, rdb: rdb}
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (s *Store) Record(ctx context.Context, event domain.ChangeEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO content_events (event_type, resource, record_id, status, occurred_at)
		VALUES ($1, $2, $3, $4, $5)
	`, event.Type, event.Resource, event.ID, event.Status, event.Timestamp)
	if err != nil {
		return fmt.Errorf("insert content event: %w", err)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal content event: %w", err)
	}

	dailyKey := DailyKey(event.Timestamp.UTC().Format(domain.DateLayout))
	_, err = s.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, RecentKey, payload)
		pipe.LTrim(ctx, RecentKey, 0, recentCapacity-1)
		pipe.HIncrBy(ctx, dailyKey, event.Resource+":"+event.Type, 1)
		pipe.Expire(ctx, dailyKey, dailyTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("update activity cache: %w", err)
	}
	return nil
}

func (s *Store) RecentFromCache(ctx context.Context, limit int) ([]domain.ChangeEvent, error) {
	values, err := s.rdb.LRange(ctx, RecentKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	events := make([]domain.ChangeEvent, 0, len(values))
	for _, v := range values {
		var event domain.ChangeEvent
		if err := json.Unmarshal([]byte(v), &event); err != nil {
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

func (s *Store) RecentFromLog(ctx context.Context, limit int) ([]domain.ChangeEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT event_type, resource, record_id, status, occurred_at
		FROM content_events
		ORDER BY occurred_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: query content events: %v", domain.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	events := []domain.ChangeEvent{}
	for rows.Next() {
		var e domain.ChangeEvent
		if err := rows.Scan(&e.Type, &e.Resource, &e.ID, &e.Status, &e.Timestamp); err != nil {
			continue
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (s *Store) DailyCounts(ctx context.Context, date string) (map[string]int64, error) {
	raw, err := s.rdb.HGetAll(ctx, DailyKey(date)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: read daily counters: %v", domain.ErrStorageUnavailable, err)
	}
	counts := make(map[string]int64, len(raw))
	for field, value := range raw {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			continue
		}
		counts[field] = n
	}
	return counts, nil
}
