// Package store persists finished conversion results so the HTTP API can
// hand out stable graph ids. A MongoDB implementation backs deployments;
// an in-memory implementation backs tests and single-process use.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tabviz/tabviz/pkg/errors"
	"github.com/tabviz/tabviz/pkg/relate"
)

// Graph is the persisted form of a conversion result.
// Node and edge rows are stored as flat string records, matching the
// column-oriented tables they came from.
type Graph struct {
	ID        string              `json:"id" bson:"_id"`
	CreatedAt time.Time           `json:"created_at" bson:"created_at"`
	Directed  bool                `json:"directed" bson:"directed"`
	Nodes     []map[string]string `json:"nodes" bson:"nodes"`
	Edges     []map[string]string `json:"edges" bson:"edges"`
	DOT       string              `json:"dot" bson:"dot"`
}

// FromResult builds a storable document from a conversion result and its
// serialized DOT text, assigning a fresh uuid.
func FromResult(res *relate.Result, dot string) Graph {
	return Graph{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Directed:  res.Directed,
		Nodes:     res.Nodes.Records(),
		Edges:     res.Edges.Records(),
		DOT:       dot,
	}
}

// Store persists and retrieves graph documents.
type Store interface {
	// Save persists a graph document.
	Save(ctx context.Context, g Graph) error

	// Load retrieves a graph by id. Returns an ErrCodeNotFound error for
	// unknown ids.
	Load(ctx context.Context, id string) (Graph, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// MemoryStore is a Store held entirely in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	graphs map[string]Graph
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{graphs: make(map[string]Graph)}
}

// Save stores the document, replacing any existing one with the same id.
func (s *MemoryStore) Save(ctx context.Context, g Graph) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graphs[g.ID] = g
	return nil
}

// Load retrieves a document by id.
func (s *MemoryStore) Load(ctx context.Context, id string) (Graph, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.graphs[id]
	if !ok {
		return Graph{}, errors.New(errors.ErrCodeNotFound, "graph %s", id)
	}
	return g, nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
