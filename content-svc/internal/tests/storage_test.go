package tests

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"bella-vista/config"
	"bella-vista/content-svc/internal/mocks"
	"bella-vista/content-svc/internal/service"
	"bella-vista/content-svc/internal/storage"
	"bella-vista/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newTestListCache(t *testing.T) (*storage.RedisListCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return storage.NewRedisListCache(client, time.Minute), mr
}

func TestRedisListCache(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestListCache(t)

	var items []domain.GalleryItem
	hit, err := cache.Get(ctx, domain.ResourceGallery, &items)
	require.NoError(t, err)
	assert.False(t, hit)

	gen, err := cache.Generation(ctx, domain.ResourceGallery)
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)

	stored := []domain.GalleryItem{{ID: "g1", Title: "Terrace", URL: "/img/t.jpg"}}
	require.NoError(t, cache.Set(ctx, domain.ResourceGallery, gen, stored))
	assert.True(t, mr.Exists("content:list:gallery"))
	assert.Equal(t, time.Minute, mr.TTL("content:list:gallery"))

	hit, err = cache.Get(ctx, domain.ResourceGallery, &items)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, stored, items)

	require.NoError(t, cache.Invalidate(ctx, domain.ResourceGallery))
	assert.False(t, mr.Exists("content:list:gallery"))

	gen, err = cache.Generation(ctx, domain.ResourceGallery)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)
}

func TestRedisListCache_SetAfterInvalidateIsDropped(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestListCache(t)

	gen, err := cache.Generation(ctx, domain.ResourceMenu)
	require.NoError(t, err)
	require.NoError(t, cache.Invalidate(ctx, domain.ResourceMenu))

	require.NoError(t, cache.Set(ctx, domain.ResourceMenu, gen, []domain.MenuItem{}))
	assert.False(t, mr.Exists("content:list:menu"))
}

// gatedCollection takes its List snapshot, then waits for release before
// returning it.
type gatedCollection[T domain.Identifiable] struct {
	*mocks.MemoryCollection[T]
	gated    chan struct{}
	release  chan struct{}
	gateOnce sync.Once
}

func (c *gatedCollection[T]) List(ctx context.Context) ([]T, error) {
	records, err := c.MemoryCollection.List(ctx)
	wait := false
	c.gateOnce.Do(func() { wait = true })
	if wait {
		close(c.gated)
		<-c.release
	}
	return records, err
}

func TestResource_ListAfterConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestListCache(t)
	collection := &gatedCollection[domain.MenuItem]{
		MemoryCollection: mocks.NewMemoryCollection[domain.MenuItem](),
		gated:            make(chan struct{}),
		release:          make(chan struct{}),
	}
	svc := service.NewMenuService(collection, service.Deps{Cache: cache})

	done := make(chan error, 1)
	go func() {
		_, err := svc.List(ctx)
		done <- err
	}()
	<-collection.gated

	created, err := svc.Create(ctx, domain.MenuItemInput{
		Name: "Soup", Category: "Starters", Price: ptr(decimal.RequireFromString("9.5")),
	})
	require.NoError(t, err)

	close(collection.release)
	require.NoError(t, <-done)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, created.ID, items[0].ID)

	require.NoError(t, svc.Delete(ctx, created.ID))
	items, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRedisListCache_ServerDown(t *testing.T) {
	cache, mr := newTestListCache(t)
	mr.Close()

	var items []domain.GalleryItem
	_, err := cache.Get(context.Background(), domain.ResourceGallery, &items)
	assert.Error(t, err)
}

type recordingWriter struct {
	messages []kafka.Message
	err      error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.messages = append(w.messages, msgs...)
	return w.err
}

func TestKafkaPublisher_PublishChange(t *testing.T) {
	writer := &recordingWriter{}
	publisher := storage.NewKafkaPublisher(writer)

	event := domain.ChangeEvent{
		Type: domain.EventUpdated, Resource: domain.ResourceReservations, ID: "r1",
		Status: "confirmed", Timestamp: fixedNow,
	}
	require.NoError(t, publisher.PublishChange(context.Background(), event))

	require.Len(t, writer.messages, 1)
	assert.Equal(t, "reservations:r1", string(writer.messages[0].Key))

	var decoded domain.ChangeEvent
	require.NoError(t, json.Unmarshal(writer.messages[0].Value, &decoded))
	assert.Equal(t, event, decoded)

	writer.err = errors.New("broker down")
	assert.Error(t, publisher.PublishChange(context.Background(), event))
}

func TestRegistry_StoresPriceAsDecimal128(t *testing.T) {
	reg := storage.NewRegistry()
	item := domain.MenuItem{ID: "m1", Name: "Risotto", Category: "Mains", Price: decimal.RequireFromString("18.90"), Available: true}

	raw, err := bson.MarshalWithRegistry(reg, item)
	require.NoError(t, err)
	assert.Equal(t, bsontype.Decimal128, bson.Raw(raw).Lookup("price").Type)

	var decoded domain.MenuItem
	require.NoError(t, bson.UnmarshalWithRegistry(reg, raw, &decoded))
	assert.True(t, item.Price.Equal(decoded.Price))
	assert.Equal(t, "m1", decoded.ID)
}

func TestRegistry_DecodesLegacyDoublePrice(t *testing.T) {
	reg := storage.NewRegistry()
	raw, err := bson.Marshal(bson.D{{Key: "_id", Value: "m2"}, {Key: "price", Value: 12.5}})
	require.NoError(t, err)

	var decoded domain.MenuItem
	require.NoError(t, bson.UnmarshalWithRegistry(reg, raw, &decoded))
	assert.Equal(t, "12.5", decoded.Price.String())
}

func TestMongoCollection(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	collectionFor := func(mt *mtest.T) *storage.MongoCollection[domain.GalleryItem] {
		return storage.NewMongoCollectionFunc[domain.GalleryItem](func() (*mongo.Collection, error) {
			return mt.Coll, nil
		}, time.Second)
	}
	ns := func(mt *mtest.T) string { return mt.Coll.Database().Name() + "." + mt.Coll.Name() }

	mt.Run("list", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "g1"}, {Key: "title", Value: "Terrace"}},
			bson.D{{Key: "_id", Value: "g2"}, {Key: "title", Value: "Bar"}},
		))

		items, err := collectionFor(mt).List(ctx)

		require.NoError(mt, err)
		assert.Equal(mt, []domain.GalleryItem{{ID: "g1", Title: "Terrace"}, {ID: "g2", Title: "Bar"}}, items)
	})

	mt.Run("get_missing_is_not_found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch))

		_, err := collectionFor(mt).Get(ctx, "nope")

		assert.ErrorIs(mt, err, domain.ErrNotFound)
	})

	mt.Run("update_returns_document_after", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: "g1"}, {Key: "title", Value: "Renamed"},
		}}))

		item, err := collectionFor(mt).Update(ctx, "g1", map[string]any{"title": "Renamed"})

		require.NoError(mt, err)
		assert.Equal(mt, "Renamed", item.Title)
	})

	mt.Run("command_error_is_storage_unavailable", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 2, Name: "BadValue", Message: "bad value",
		}))

		err := collectionFor(mt).Insert(ctx, domain.GalleryItem{ID: "g3", Title: "Garden"})

		assert.ErrorIs(mt, err, domain.ErrStorageUnavailable)
	})

	mt.Run("delete", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		assert.NoError(mt, collectionFor(mt).Delete(ctx, "nope"))
	})
}

func TestMongoCollection_ResolveError(t *testing.T) {
	coll := storage.NewMongoCollectionFunc[domain.MenuItem](func() (*mongo.Collection, error) {
		return nil, domain.ErrStorageUnavailable
	}, time.Second)

	_, err := coll.List(context.Background())
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestMongoClient_DisconnectBeforeFirstUse(t *testing.T) {
	client := storage.NewMongoClient(config.MongoConfig{URI: "mongodb://127.0.0.1:1", Database: "bella_vista_test", OpTimeout: time.Second})

	require.NoError(t, client.Disconnect(context.Background()))

	_, err := client.Database()
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}
