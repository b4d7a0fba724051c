package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"bella-vista/activity-svc/internal/storage"
	"bella-vista/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (*storage.Store, sqlmock.Sqlmock, *miniredis.Miniredis) {
	t.Helper()
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return storage.NewStore(db, rdb), sqlMock, mr
}

func TestStore_Record(t *testing.T) {
	ctx := context.Background()
	store, sqlMock, mr := setupStore(t)
	event := domain.ChangeEvent{
		Type: domain.EventUpdated, Resource: domain.ResourceReservations, ID: "r1", Status: "confirmed", Timestamp: eventTime,
	}

	sqlMock.ExpectExec("INSERT INTO content_events").
		WithArgs("updated", "reservations", "r1", "confirmed", eventTime).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, store.Record(ctx, event))
	require.NoError(t, sqlMock.ExpectationsWereMet())

	recent, err := mr.List(storage.RecentKey)
	require.NoError(t, err)
	assert.Len(t, recent, 1)

	dailyKey := storage.DailyKey("2026-10-19")
	assert.Equal(t, "1", mr.HGet(dailyKey, "reservations:updated"))
	assert.Equal(t, 7*24*time.Hour, mr.TTL(dailyKey))
}

func TestStore_RecordTrimsFeed(t *testing.T) {
	ctx := context.Background()
	store, sqlMock, mr := setupStore(t)

	for i := 0; i < 55; i++ {
		sqlMock.ExpectExec("INSERT INTO content_events").WillReturnResult(sqlmock.NewResult(int64(i), 1))
		require.NoError(t, store.Record(ctx, domain.ChangeEvent{
			Type: domain.EventCreated, Resource: domain.ResourceMenu, ID: "m", Timestamp: eventTime,
		}))
	}

	recent, err := mr.List(storage.RecentKey)
	require.NoError(t, err)
	assert.Len(t, recent, 50)
	assert.Equal(t, "55", mr.HGet(storage.DailyKey("2026-10-19"), "menu:created"))
}

func TestStore_RecordDatabaseError(t *testing.T) {
	store, sqlMock, mr := setupStore(t)
	sqlMock.ExpectExec("INSERT INTO content_events").WillReturnError(errors.New("connection refused"))

	err := store.Record(context.Background(), domain.ChangeEvent{Type: "created", Resource: "menu", ID: "m1", Timestamp: eventTime})

	assert.Error(t, err)
	assert.False(t, mr.Exists(storage.RecentKey))
}

func TestStore_RecentRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, sqlMock, _ := setupStore(t)

	for _, id := range []string{"a", "b", "c"} {
		sqlMock.ExpectExec("INSERT INTO content_events").WillReturnResult(sqlmock.NewResult(1, 1))
		require.NoError(t, store.Record(ctx, domain.ChangeEvent{Type: "created", Resource: "gallery", ID: id, Timestamp: eventTime}))
	}

	events, err := store.RecentFromCache(ctx, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "c", events[0].ID)
	assert.Equal(t, "b", events[1].ID)
}

func TestStore_RecentFromLog(t *testing.T) {
	store, sqlMock, _ := setupStore(t)

	rows := sqlmock.NewRows([]string{"event_type", "resource", "record_id", "status", "occurred_at"}).
		AddRow("created", "testimonials", "t1", "", eventTime).
		AddRow("deleted", "menu", "m1", "", eventTime.Add(-time.Minute))
	sqlMock.ExpectQuery("SELECT event_type, resource, record_id, status, occurred_at").
		WithArgs(10).
		WillReturnRows(rows)

	events, err := store.RecentFromLog(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "testimonials", events[0].Resource)
	assert.True(t, events[0].Timestamp.Equal(eventTime))
}

func TestStore_RecentFromLogUnavailable(t *testing.T) {
	store, sqlMock, _ := setupStore(t)
	sqlMock.ExpectQuery("SELECT event_type").WillReturnError(errors.New("connection refused"))

	_, err := store.RecentFromLog(context.Background(), 10)

	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestStore_DailyCounts(t *testing.T) {
	store, _, mr := setupStore(t)
	mr.HSet(storage.DailyKey("2026-10-19"), "menu:created", "4")

	counts, err := store.DailyCounts(context.Background(), "2026-10-19")
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"menu:created": 4}, counts)

	counts, err = store.DailyCounts(context.Background(), "2026-10-18")
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestStore_EnsureSchema(t *testing.T) {
	store, sqlMock, _ := setupStore(t)
	sqlMock.ExpectExec("CREATE TABLE IF NOT EXISTS content_events").WillReturnResult(sqlmock.NewResult(0, 0))
	sqlMock.ExpectExec("CREATE INDEX IF NOT EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.EnsureSchema(context.Background()))
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
