// Package store persists planarity results keyed by graph content.
//
// A [Store] maps the content hash of a graph to the [Record] produced for
// it: the verdict, and the embedding when one exists. [MemoryStore] backs
// tests and single-process runs; [MongoStore] backs the server.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/planark/planark/pkg/graph"
)

// ErrNotFound is returned when no record exists for a graph hash.
var ErrNotFound = errors.New("record not found")

// Record is one persisted planarity result.
type Record struct {
	// GraphHash is the content hash of the graph's canonical serialization.
	GraphHash string `bson:"graph_hash" json:"graph_hash"`

	// Graph is the input graph.
	Graph graph.Doc `bson:"graph" json:"graph"`

	// Planar is the verdict.
	Planar bool `bson:"planar" json:"planar"`

	// Embedding is the rotation system, present only for planar graphs.
	Embedding *graph.Embedding `bson:"embedding,omitempty" json:"embedding,omitempty"`

	// CreatedAt is when the record was first stored.
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Store persists records keyed by graph hash. Put overwrites any existing
// record for the same hash.
type Store interface {
	Put(ctx context.Context, rec Record) error
	Get(ctx context.Context, graphHash string) (Record, error)
	Delete(ctx context.Context, graphHash string) error
	Close(ctx context.Context) error
}
