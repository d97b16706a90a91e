package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tabviz/tabviz/pkg/errors"
)

const (
	defaultDatabase   = "tabviz"
	defaultCollection = "graphs"
)

// MongoStore persists graph documents in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to the MongoDB deployment at uri and uses the
// "tabviz.graphs" collection.
func NewMongoStore(ctx context.Context, uri string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", uri, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(defaultDatabase).Collection(defaultCollection),
	}, nil
}

// Save persists the document, replacing any existing one with the same id.
func (s *MongoStore) Save(ctx context.Context, g Graph) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": g.ID}, g, opts); err != nil {
		return fmt.Errorf("save graph %s: %w", g.ID, err)
	}
	return nil
}

// Load retrieves a document by id.
func (s *MongoStore) Load(ctx context.Context, id string) (Graph, error) {
	var g Graph
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&g)
	if err == mongo.ErrNoDocuments {
		return Graph{}, errors.New(errors.ErrCodeNotFound, "graph %s", id)
	}
	if err != nil {
		return Graph{}, fmt.Errorf("load graph %s: %w", id, err)
	}
	return g, nil
}

// Close disconnects from the deployment.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
