package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CountersCollection = "counters"

// Sequencer hands out monotonically increasing integer ids per collection.
type Sequencer interface {
	NextID(ctx context.Context, name string) (int64, error)
}

type mongoSequencer struct {
	collection *mongo.Collection
	timeout    time.Duration
}

func NewSequencer(db *mongo.Database, timeout time.Duration) Sequencer {
	return &mongoSequencer{
		collection: db.Collection(CountersCollection),
		timeout:    timeout,
	}
}

type counter struct {
	Name  string `bson:"_id"`
	Value int64  `bson:"seq"`
}

func (s *mongoSequencer) NextID(ctx context.Context, name string) (int64, error) {
	ctx, cancel := WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var c counter
	err := s.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&c)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate id for %s: %w", name, err)
	}

	return c.Value, nil
}
