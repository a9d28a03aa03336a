// Package store provides the layout archive: durable storage for computed
// layouts so they can be listed, re-rendered, and shared later.
//
// Two backends are available:
//   - memory: in-process storage for tests and the standalone CLI
//   - mongo: MongoDB-backed storage for server deployments
//
// Entries are identified by UUIDs assigned on save. Archive lookups are
// rare compared to layout computation, so the store is deliberately not
// part of the caching path.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mkarlsen/argmap/pkg/errors"
	"github.com/mkarlsen/argmap/pkg/graph"
	"github.com/mkarlsen/argmap/pkg/layout"
)

// Entry is one archived layout run.
type Entry struct {
	// ID is a UUID assigned by Save when empty.
	ID string `json:"id" bson:"_id"`

	// Name is an optional human-readable label.
	Name string `json:"name,omitempty" bson:"name,omitempty"`

	// CreatedAt is set by Save.
	CreatedAt time.Time `json:"created_at" bson:"created_at"`

	// Graph is the input graph as submitted.
	Graph graph.Graph `json:"graph" bson:"graph"`

	// Options are the layout options the run used, after defaulting.
	Options layout.Options `json:"options" bson:"options"`

	// Result holds the computed positions, layers, and metrics.
	Result layout.Result `json:"result" bson:"result"`
}

// Store is the interface for archive backends.
type Store interface {
	// Save persists an entry, assigning ID and CreatedAt when unset.
	Save(ctx context.Context, e *Entry) error

	// Get retrieves an entry by ID. Returns an error with code
	// [errors.ErrCodeLayoutNotFound] when the entry does not exist.
	Get(ctx context.Context, id string) (*Entry, error)

	// List returns entries sorted by CreatedAt descending, newest first.
	// A non-positive limit returns all entries.
	List(ctx context.Context, limit int) ([]Entry, error)

	// Delete removes an entry. Deleting a missing entry returns an error
	// with code [errors.ErrCodeLayoutNotFound].
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// prepare fills the entry's assigned fields before writing.
func prepare(e *Entry) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
}

// notFound builds the standard missing-entry error.
func notFound(id string) error {
	return errors.New(errors.ErrCodeLayoutNotFound, "layout %s not found", id)
}
