// Package pipeline provides the staged scene resolution used by the CLI
// and the HTTP service.
//
// The pipeline runs three stages over a validated scene:
//
//  1. Collect: turn scene features into placement elements with
//     estimated footprints and priority tiers.
//  2. Route: resolve campaign arrows against reserved space, committing
//     their swept boxes as obstacles.
//  3. Resolve: one greedy placement pass over all elements.
//
// Resolution is deterministic, so results are cached keyed on the scene
// content, the rule set, and the engine version.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, scn, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	doc := result.Layout
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/placemat/pkg/footprint"
	"github.com/matzehuels/placemat/pkg/scene"
)

// EngineVersion stamps cached layouts. Bump it when placement behavior
// changes so stale cache entries stop matching.
const EngineVersion = "1"

// Options contains the configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Rules is the placement rule set. Nil takes the defaults.
	Rules *Rules `json:"rules,omitempty"`

	// Refresh bypasses the cache lookup and overwrites the entry.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger    *log.Logger         `json:"-"`
	Estimator footprint.Estimator `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Rules == nil {
		o.Rules = DefaultRules()
	}
	if err := o.Rules.ValidateAndSetDefaults(); err != nil {
		return fmt.Errorf("invalid rules: %w", err)
	}
	if o.Estimator == nil {
		o.Estimator = footprint.Heuristic{}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID is the unique identifier stamped on this execution.
	RunID string

	// SceneName is the resolved scene's name.
	SceneName string

	// Layout is the resolved layout document.
	Layout *scene.Layout

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the layout came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ElementCount int
	RouteCount   int
	CollectTime  time.Duration
	RouteTime    time.Duration
	ResolveTime  time.Duration
}

// CacheInfo tracks the cache outcome of a run.
type CacheInfo struct {
	// Hit reports whether the layout was replayed from cache.
	Hit bool

	// Key is the cache key the run used.
	Key string
}
