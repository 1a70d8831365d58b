package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/licaudit/licaudit/pkg/audit"
	"github.com/licaudit/licaudit/pkg/errors"
)

const connectTimeout = 5 * time.Second

// MongoStore persists report entries in a MongoDB collection.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connecting to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeStore, err, "pinging mongodb")
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}, nil
}

func (s *MongoStore) Save(ctx context.Context, report audit.Report) (Entry, error) {
	entry := newEntry(report)
	if _, err := s.collection.InsertOne(ctx, entry); err != nil {
		return Entry{}, errors.Wrap(errors.ErrCodeStore, err, "saving report")
	}
	return entry, nil
}

func (s *MongoStore) Latest(ctx context.Context) (Entry, bool, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var entry Entry
	err := s.collection.FindOne(ctx, bson.D{}, opts).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, errors.Wrap(errors.ErrCodeStore, err, "loading latest report")
	}
	return entry, true, nil
}

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
