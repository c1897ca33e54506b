package cache

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// DefaultMongoDatabase is the database used when none is configured.
	DefaultMongoDatabase = "hovercard"

	mongoCollection = "cache"
	mongoRecordID   = "previews"
)

type mongoRecord struct {
	ID     string `bson:"_id"`
	Record string `bson:"record"`
}

// MongoStore keeps the record in a single MongoDB document, replaced with an
// upsert on every write.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to uri and verifies the connection.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, storeErr("mongo", "connect", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, storeErr("mongo", "connect", err)
	}
	if database == "" {
		database = DefaultMongoDatabase
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(mongoCollection),
	}, nil
}

// Read returns the stored record, or nil if the document does not exist.
func (s *MongoStore) Read(ctx context.Context) ([]byte, error) {
	var doc mongoRecord
	err := s.coll.FindOne(ctx, bson.M{"_id": mongoRecordID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("mongo", "read", err)
	}
	return []byte(doc.Record), nil
}

// Write replaces the stored record.
func (s *MongoStore) Write(ctx context.Context, record []byte) error {
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": mongoRecordID},
		mongoRecord{ID: mongoRecordID, Record: string(record)},
		options.Replace().SetUpsert(true),
	)
	return storeErr("mongo", "write", err)
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
