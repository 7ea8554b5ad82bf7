package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig configures a MongoStore.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// MongoStore keeps one document per key. Expired documents are reaped by
// a TTL index on expires_at and are also filtered on read.
type MongoStore struct {
	client  *mongo.Client
	coll    *mongo.Collection
	now     func() time.Time
	backoff Backoff
}

// document is the stored form of one entry.
type document struct {
	Key       string     `bson:"_id"`
	Data      []byte     `bson:"data"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
	UpdatedAt time.Time  `bson:"updated_at"`
}

func newDocument(key string, data []byte, ttl time.Duration, now time.Time) document {
	d := document{Key: key, Data: data, UpdatedAt: now.UTC()}
	if exp := expiry(now, ttl); !exp.IsZero() {
		exp = exp.UTC()
		d.ExpiresAt = &exp
	}
	return d
}

func (d document) expired(now time.Time) bool {
	return d.ExpiresAt != nil && now.After(*d.ExpiresAt)
}

// prefixFilter matches documents whose key starts with prefix.
func prefixFilter(prefix string) bson.M {
	if prefix == "" {
		return bson.M{}
	}
	return bson.M{"_id": bson.M{"$regex": "^" + regexp.QuoteMeta(prefix)}}
}

// NewMongoStore connects, pings the primary and ensures the TTL index.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		cfg.URI = "mongodb://localhost:27017"
	}
	if cfg.Database == "" {
		cfg.Database = "panelayout"
	}
	if cfg.Collection == "" {
		cfg.Collection = "layouts"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("create ttl index: %w", err)
	}
	return &MongoStore{client: client, coll: coll, now: time.Now, backoff: DefaultBackoff}, nil
}

// classifyMongo marks driver network failures as retryable.
func classifyMongo(err error) error {
	if err != nil && mongo.IsNetworkError(err) {
		return Retryable(fmt.Errorf("%w: %w", ErrNetwork, err))
	}
	return err
}

func (s *MongoStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var d document
	err := s.backoff.Retry(ctx, func() error {
		return classifyMongo(s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&d))
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("mongo find: %w", err)
	}
	if d.expired(s.now()) {
		return nil, false, nil
	}
	return d.Data, true, nil
}

func (s *MongoStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	d := newDocument(key, data, ttl, s.now())
	err := s.backoff.Retry(ctx, func() error {
		_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": key}, d, options.Replace().SetUpsert(true))
		return classifyMongo(err)
	})
	if err != nil {
		return fmt.Errorf("mongo replace: %w", err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, key string) error {
	err := s.backoff.Retry(ctx, func() error {
		_, err := s.coll.DeleteOne(ctx, bson.M{"_id": key})
		return classifyMongo(err)
	})
	if err != nil {
		return fmt.Errorf("mongo delete: %w", err)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context, prefix string) ([]string, error) {
	cur, err := s.coll.Find(ctx, prefixFilter(prefix), options.Find().SetProjection(bson.M{"data": 0}))
	if err != nil {
		return nil, fmt.Errorf("mongo find: %w", err)
	}
	var docs []document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo cursor: %w", err)
	}
	now := s.now()
	keys := make([]string, 0, len(docs))
	for _, d := range docs {
		if !d.expired(now) {
			keys = append(keys, d.Key)
		}
	}
	return keys, nil
}

func (s *MongoStore) Backend() string { return "mongo" }

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
