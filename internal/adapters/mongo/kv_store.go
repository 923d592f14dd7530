package mongo_adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const KeyValueCollection = "kv_store"

type kvDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// KeyValueStore - один документ на ключ, значение хранится строкой JSON.
type KeyValueStore struct {
	collection *mongo.Collection
}

func NewKeyValueStore(db *mongo.Database) (*KeyValueStore, error) {
	if db == nil {
		return nil, fmt.Errorf("mongo database cannot be nil")
	}
	return &KeyValueStore{collection: db.Collection(KeyValueCollection)}, nil
}

func (s *KeyValueStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var doc kvDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to find key %q: %w", key, err)
	}
	return []byte(doc.Value), true, nil
}

func (s *KeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	update := bson.M{"$set": bson.M{
		"value":      string(value),
		"updated_at": time.Now().UTC(),
	}}
	_, err := s.collection.UpdateOne(ctx, bson.M{"_id": key}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert key %q: %w", key, err)
	}
	return nil
}
