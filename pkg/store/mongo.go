package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mkarlsen/argmap/pkg/errors"
)

// MongoStore is a MongoDB-backed archive for server deployments.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	// URI is the MongoDB connection string.
	URI string

	// Database name. Defaults to "argmap".
	Database string

	// Collection name. Defaults to "layouts".
	Collection string
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "argmap"
	}
	if cfg.Collection == "" {
		cfg.Collection = "layouts"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Save persists an entry, assigning ID and CreatedAt when unset.
// Existing entries with the same ID are replaced.
func (s *MongoStore) Save(ctx context.Context, e *Entry) error {
	prepare(e)
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": e.ID}, e, opts); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "save layout %s", e.ID)
	}
	return nil
}

// Get retrieves an entry by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (*Entry, error) {
	var e Entry
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if err == mongo.ErrNoDocuments {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "get layout %s", id)
	}
	return &e, nil
}

// List returns entries newest first.
func (s *MongoStore) List(ctx context.Context, limit int) ([]Entry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list layouts")
	}
	defer cur.Close(ctx)

	var entries []Entry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "decode layouts")
	}
	return entries, nil
}

// Delete removes an entry.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete layout %s", id)
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
