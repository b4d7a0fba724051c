package storage

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"

	"bella-vista/config"
	"bella-vista/domain"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClient connects on first use and is shared by every collection.
type MongoClient struct {
	cfg config.MongoConfig

	once sync.Once
	db   *mongo.Database
	err  error
}

func NewMongoClient(cfg config.MongoConfig) *MongoClient {
	return &MongoClient{cfg: cfg}
}

func (c *MongoClient) Database() (*mongo.Database, error) {
	c.once.Do(func() {
		opts := options.Client().
			ApplyURI(c.cfg.URI).
			SetRegistry(NewRegistry()).
			SetServerSelectionTimeout(c.cfg.OpTimeout)

		client, err := mongo.Connect(context.Background(), opts)
		if err != nil {
			c.err = fmt.Errorf("%w: connect mongo: %v", domain.ErrStorageUnavailable, err)
			return
		}
		c.db = client.Database(c.cfg.Database)
	})
	return c.db, c.err
}

func (c *MongoClient) Ping(ctx context.Context) error {
	db, err := c.Database()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, c.cfg.OpTimeout)
	defer cancel()
	return db.Client().Ping(ctx, nil)
}

// Disconnect waits for an in-flight first connect. A client that never
// connected stays unusable afterwards.
func (c *MongoClient) Disconnect(ctx context.Context) error {
	c.once.Do(func() {
		c.err = fmt.Errorf("%w: mongo client closed", domain.ErrStorageUnavailable)
	})
	if c.db == nil {
		return nil
	}
	return c.db.Client().Disconnect(ctx)
}

// CollectionFunc resolves the underlying driver collection.
type CollectionFunc func() (*mongo.Collection, error)

// MongoCollection stores one resource kind as documents keyed by string _id.
type MongoCollection[T any] struct {
	resolve CollectionFunc
	timeout time.Duration
}

func NewMongoCollection[T any](client *MongoClient, name string) *MongoCollection[T] {
	return NewMongoCollectionFunc[T](func() (*mongo.Collection, error) {
		db, err := client.Database()
		if err != nil {
			return nil, err
		}
		return db.Collection(name), nil
	}, client.cfg.OpTimeout)
}

func NewMongoCollectionFunc[T any](resolve CollectionFunc, timeout time.Duration) *MongoCollection[T] {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &MongoCollection[T]{resolve: resolve, timeout: timeout}
}

func (c *MongoCollection[T]) List(ctx context.Context) ([]T, error) {
	coll, err := c.resolve()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cursor, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, storageError("find", err)
	}
	records := []T{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, storageError("decode", err)
	}
	return records, nil
}

func (c *MongoCollection[T]) Get(ctx context.Context, id string) (*T, error) {
	coll, err := c.resolve()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var record T
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&record); err != nil {
		return nil, storageError("find one", err)
	}
	return &record, nil
}

func (c *MongoCollection[T]) Insert(ctx context.Context, record T) error {
	coll, err := c.resolve()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if _, err := coll.InsertOne(ctx, record); err != nil {
		return storageError("insert", err)
	}
	return nil
}

// Update applies fields with $set and returns the stored document after the
// change.
func (c *MongoCollection[T]) Update(ctx context.Context, id string, fields map[string]any) (*T, error) {
	if len(fields) == 0 {
		return c.Get(ctx, id)
	}
	coll, err := c.resolve()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var record T
	err = coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&record)
	if err != nil {
		return nil, storageError("update", err)
	}
	return &record, nil
}

func (c *MongoCollection[T]) Delete(ctx context.Context, id string) error {
	coll, err := c.resolve()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if _, err := coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return storageError("delete", err)
	}
	return nil
}

func storageError(op string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%w: mongo %s: %v", domain.ErrStorageUnavailable, op, err)
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

// NewRegistry stores decimal.Decimal as BSON Decimal128 so prices keep their
// exact value.
func NewRegistry() *bsoncodec.Registry {
	reg := bson.NewRegistry()
	reg.RegisterTypeEncoder(decimalType, bsoncodec.ValueEncoderFunc(encodeDecimal))
	reg.RegisterTypeDecoder(decimalType, bsoncodec.ValueDecoderFunc(decodeDecimal))
	return reg
}

func encodeDecimal(_ bsoncodec.EncodeContext, vw bsonrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Type() != decimalType {
		return bsoncodec.ValueEncoderError{Name: "encodeDecimal", Types: []reflect.Type{decimalType}, Received: val}
	}
	d := val.Interface().(decimal.Decimal)
	dec, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return fmt.Errorf("encode decimal %s: %w", d, err)
	}
	return vw.WriteDecimal128(dec)
}

func decodeDecimal(_ bsoncodec.DecodeContext, vr bsonrw.ValueReader, val reflect.Value) error {
	if !val.CanSet() || val.Type() != decimalType {
		return bsoncodec.ValueDecoderError{Name: "decodeDecimal", Types: []reflect.Type{decimalType}, Received: val}
	}

	var (
		d   decimal.Decimal
		err error
	)
	switch vr.Type() {
	case bsontype.Decimal128:
		var dec primitive.Decimal128
		if dec, err = vr.ReadDecimal128(); err == nil {
			d, err = decimal.NewFromString(dec.String())
		}
	case bsontype.Double:
		var f float64
		if f, err = vr.ReadDouble(); err == nil {
			d = decimal.NewFromFloat(f)
		}
	case bsontype.Int32:
		var i int32
		if i, err = vr.ReadInt32(); err == nil {
			d = decimal.NewFromInt32(i)
		}
	case bsontype.Int64:
		var i int64
		if i, err = vr.ReadInt64(); err == nil {
			d = decimal.NewFromInt(i)
		}
	case bsontype.String:
		var s string
		if s, err = vr.ReadString(); err == nil {
			d, err = decimal.NewFromString(s)
		}
	case bsontype.Null:
		err = vr.ReadNull()
	default:
		return fmt.Errorf("cannot decode %v into decimal", vr.Type())
	}
	if err != nil {
		return err
	}
	val.Set(reflect.ValueOf(d))
	return nil
}
