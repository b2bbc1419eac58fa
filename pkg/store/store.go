// Package store persists analysis runs.
//
// A Run is one executed search: the graph fingerprint, the options it
// ran with, and the full result. The RunStore interface supports:
//   - Get/List/Put/Delete operations
//   - Get returning nil, nil for absent runs (absence is not an error)
//
// Backends:
//   - memory: in-process storage for development and the test suite
//   - mongo: MongoDB-backed storage for the API service
//
// # Usage
//
// Create a store and record a run:
//
//	st := store.NewMemoryStore()
//	run := store.New(graphHash, nodes, edges, opts, result)
//	if err := st.Put(ctx, run); err != nil {
//	    return err
//	}
//
//	// Later
//	run, err := st.Get(ctx, id)
//	if err != nil {
//	    return err
//	}
//	if run == nil {
//	    // Not found
//	}
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/neurotopo/trisect/pkg/cluster"
)

// RunOptions are the semantic search options a run was executed with.
// Execution details such as worker counts are not part of the record.
type RunOptions struct {
	Criterion    string `json:"criterion" bson:"criterion"`
	Parameter    string `json:"parameter" bson:"parameter"`
	ExcludeInter bool   `json:"exclude_inter" bson:"exclude_inter"`
}

// Run is one persisted analysis.
type Run struct {
	ID        string          `json:"id" bson:"_id"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
	GraphHash string          `json:"graph_hash" bson:"graph_hash"`
	Nodes     int             `json:"nodes" bson:"nodes"`
	Edges     int             `json:"edges" bson:"edges"`
	Options   RunOptions      `json:"options" bson:"options"`
	Result    *cluster.Result `json:"result" bson:"result"`
}

// New creates a run record with a fresh ID and creation time.
func New(graphHash string, nodes, edges int, opts RunOptions, result *cluster.Result) *Run {
	return &Run{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		GraphHash: graphHash,
		Nodes:     nodes,
		Edges:     edges,
		Options:   opts,
		Result:    result,
	}
}

// RunStore is the interface for run storage backends.
//
// Stored runs are treated as immutable; callers must not mutate a Run
// after Put or after receiving one from Get or List.
type RunStore interface {
	// Get retrieves a run by ID.
	// Returns nil, nil if the run doesn't exist.
	Get(ctx context.Context, id string) (*Run, error)

	// List returns runs sorted most recent first. A limit of zero
	// returns everything.
	List(ctx context.Context, limit int) ([]*Run, error)

	// Put stores a run, replacing any run with the same ID.
	Put(ctx context.Context, run *Run) error

	// Delete removes a run. Absent IDs are not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
