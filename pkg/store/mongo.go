package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore persists records in a MongoDB collection, one document per
// graph hash.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to the MongoDB deployment at uri and uses the
// "embeddings" collection of the named database. The connection is verified
// with a ping.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", uri, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping %s: %w", uri, err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection("embeddings"),
	}, nil
}

func (s *MongoStore) Put(ctx context.Context, rec Record) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.coll.ReplaceOne(ctx, bson.M{"graph_hash": rec.GraphHash}, rec, opts)
	if err != nil {
		return fmt.Errorf("store record %s: %w", rec.GraphHash, err)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, graphHash string) (Record, error) {
	var rec Record
	err := s.coll.FindOne(ctx, bson.M{"graph_hash": graphHash}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Record{}, fmt.Errorf("%s: %w", graphHash, ErrNotFound)
	}
	if err != nil {
		return Record{}, fmt.Errorf("load record %s: %w", graphHash, err)
	}
	return rec, nil
}

func (s *MongoStore) Delete(ctx context.Context, graphHash string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"graph_hash": graphHash}); err != nil {
		return fmt.Errorf("delete record %s: %w", graphHash, err)
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
