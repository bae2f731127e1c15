// Package store persists resolved layout runs.
//
// A run is one pipeline execution: the input scene name, the resolved
// layout document, and summary statistics, stamped with an ID and a
// creation time. Stores let the CLI and the HTTP service look up past
// runs without re-resolving the scene.
//
// Two backends are provided:
//   - [NewFileStore]: JSON files under a local directory, for CLI use
//   - [NewMongoStore]: MongoDB, for service deployments
package store

import (
	"context"
	"errors"
	"time"

	"github.com/matzehuels/placemat/pkg/scene"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("run not found")

// Run is one persisted pipeline execution.
type Run struct {
	ID        string        `json:"id" bson:"_id"`
	SceneName string        `json:"scene_name" bson:"scene_name"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
	Cached    bool          `json:"cached" bson:"cached"`
	Stats     scene.Stats   `json:"stats" bson:"stats"`
	Layout    *scene.Layout `json:"layout" bson:"layout"`
}

// Summary is a Run without its layout document, for listings.
type Summary struct {
	ID        string      `json:"id"`
	SceneName string      `json:"scene_name"`
	CreatedAt time.Time   `json:"created_at"`
	Cached    bool        `json:"cached"`
	Stats     scene.Stats `json:"stats"`
}

// Summary returns the run's listing view.
func (r *Run) Summary() Summary {
	return Summary{
		ID:        r.ID,
		SceneName: r.SceneName,
		CreatedAt: r.CreatedAt,
		Cached:    r.Cached,
		Stats:     r.Stats,
	}
}

// RunStore is the interface for run persistence backends.
type RunStore interface {
	// Put stores a run, replacing any run with the same ID.
	Put(ctx context.Context, run *Run) error

	// Get retrieves a run by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Run, error)

	// List returns summaries of the most recent runs, newest first,
	// up to limit. A limit of 0 applies the backend default.
	List(ctx context.Context, limit int) ([]Summary, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// DefaultListLimit caps listings when the caller passes no limit.
const DefaultListLimit = 50
