package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/a-detiste/parse-type/pkg/errors"
)

// Mongo collection defaults.
const (
	DefaultDatabase   = "parsetype"
	DefaultCollection = "schemas"
)

// MongoStore persists schemas in a MongoDB collection, keyed by name.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoStore connects to MongoDB at uri and verifies the connection
// with a ping. Schemas live in the "schemas" collection of the
// "parsetype" database.
func NewMongoStore(ctx context.Context, uri string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to mongodb")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "ping mongodb")
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(DefaultDatabase).Collection(DefaultCollection),
	}, nil
}

// Put upserts the schema under its name. CreatedAt is set only on insert.
func (s *MongoStore) Put(ctx context.Context, schema *Schema) error {
	if err := schema.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"format":     schema.Format,
			"types":      schema.Types,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{"created_at": now},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := s.collection.UpdateByID(ctx, schema.Name, update, opts); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "store schema %q", schema.Name)
	}
	return nil
}

// Get returns the schema stored under name.
func (s *MongoStore) Get(ctx context.Context, name string) (*Schema, error) {
	var schema Schema
	err := s.collection.FindOne(ctx, bson.M{"_id": name}).Decode(&schema)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeSchemaNotFound, "schema %q not found", name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "load schema %q", name)
	}
	return &schema, nil
}

// List returns all schemas in name order.
func (s *MongoStore) List(ctx context.Context) ([]*Schema, error) {
	opts := options.Find().SetSort(bson.M{"_id": 1})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list schemas")
	}
	defer cursor.Close(ctx)

	var schemas []*Schema
	if err := cursor.All(ctx, &schemas); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "decode schemas")
	}
	return schemas, nil
}

// Delete removes the schema stored under name.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": name})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete schema %q", name)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeSchemaNotFound, "schema %q not found", name)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
