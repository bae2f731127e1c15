package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/placemat/pkg/cache"
	"github.com/matzehuels/placemat/pkg/layout"
	"github.com/matzehuels/placemat/pkg/observability"
	"github.com/matzehuels/placemat/pkg/route"
	"github.com/matzehuels/placemat/pkg/scene"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and service use it so caching behavior stays identical.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely share one
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the collect → route → resolve pipeline with caching.
// The scene must already be validated; use scene.ReadScene for input
// from untrusted sources.
func (r *Runner) Execute(ctx context.Context, s *scene.Scene, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RunID:     uuid.NewString(),
		SceneName: s.Name,
	}

	key, err := r.layoutKey(s, opts.Rules)
	if err != nil {
		return nil, err
	}
	result.CacheInfo.Key = key

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if cached, err := scene.UnmarshalLayout(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				result.Layout = &cached
				result.CacheInfo.Hit = true
				result.Stats.ElementCount = cached.Stats.Total
				result.Stats.RouteCount = len(cached.Routes)
				r.Logger.Info("replayed layout from cache", "scene", s.Name, "key", key)
				return result, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	doc, stats, err := r.resolve(ctx, s, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = doc
	result.Stats = stats

	if data, err := scene.MarshalLayout(*doc); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return result, nil
}

// layoutKey computes the cache key for a scene under a rule set.
func (r *Runner) layoutKey(s *scene.Scene, rules *Rules) (string, error) {
	data, err := scene.MarshalScene(s)
	if err != nil {
		return "", fmt.Errorf("serialize scene for cache key: %w", err)
	}
	return r.Keyer.LayoutKey(cache.Hash(data), cache.LayoutKeyOpts{
		RulesHash: rules.Hash(),
		Engine:    EngineVersion,
	}), nil
}

// resolve runs the three stages over a scene and builds the layout
// document.
func (r *Runner) resolve(ctx context.Context, s *scene.Scene, opts Options) (*scene.Layout, Stats, error) {
	var stats Stats
	rules := opts.Rules

	// Stage 1: Collect
	collectStart := time.Now()
	observability.Pipeline().OnCollectStart(ctx, s.Name)
	col := collect(s, opts.Estimator, rules)
	stats.CollectTime = time.Since(collectStart)
	observability.Pipeline().OnCollectComplete(ctx, s.Name, len(col.elements), stats.CollectTime)

	opts.Logger.Info("collected elements",
		"scene", s.Name,
		"elements", len(col.elements),
		"campaigns", len(s.Campaigns),
		"duration", stats.CollectTime)

	mgr, err := layout.NewManager(rules.LayoutConfig())
	if err != nil {
		return nil, stats, fmt.Errorf("layout config: %w", err)
	}

	// Stage 2: Route
	routeStart := time.Now()
	arrows := arrowsFrom(s, rules)
	observability.Pipeline().OnRouteStart(ctx, s.Name, len(arrows))
	routed := route.Resolve(arrows, mgr, rules.RouteOptions())
	campaignElements(s, routed, opts.Estimator, rules, col)
	stats.RouteTime = time.Since(routeStart)
	stats.RouteCount = len(routed)

	forcedRoutes := 0
	for _, res := range routed {
		if res.Forced {
			forcedRoutes++
		}
	}
	observability.Pipeline().OnRouteComplete(ctx, s.Name, forcedRoutes, stats.RouteTime)

	if len(arrows) > 0 {
		opts.Logger.Info("routed campaign arrows",
			"arrows", len(arrows),
			"forced", forcedRoutes,
			"duration", stats.RouteTime)
	}

	// Stage 3: Resolve
	resolveStart := time.Now()
	observability.Pipeline().OnResolveStart(ctx, s.Name, len(col.elements))
	res := mgr.Resolve(col.elements)
	stats.ResolveTime = time.Since(resolveStart)
	stats.ElementCount = res.Stats.Total
	observability.Pipeline().OnResolveComplete(ctx, s.Name,
		res.Stats.Placed, res.Stats.Forced, res.Stats.Suppressed, stats.ResolveTime)

	opts.Logger.Info("resolved placements",
		"placed", res.Stats.Placed,
		"forced", res.Stats.Forced,
		"suppressed", res.Stats.Suppressed,
		"duration", stats.ResolveTime)

	return buildLayout(s, col, res, routed, forcedRoutes), stats, nil
}

// buildLayout assembles the serialized layout document.
func buildLayout(s *scene.Scene, col *collection, res *layout.Result, routed []route.Resolved, forcedRoutes int) *scene.Layout {
	doc := &scene.Layout{
		Scene:  s.Name,
		Extent: s.Extent,
		Stats: scene.Stats{
			Total:        res.Stats.Total,
			Placed:       res.Stats.Placed,
			Forced:       res.Stats.Forced,
			Suppressed:   res.Stats.Suppressed,
			RoutesForced: forcedRoutes,
		},
	}

	doc.Placements = make([]scene.Placement, 0, len(res.Placements))
	for _, p := range res.Placements {
		out := scene.Placement{
			ID:        p.ElementID,
			Kind:      p.Kind.String(),
			Status:    p.Status.String(),
			Text:      col.texts[p.ElementID],
			Reason:    p.Reason,
			BlockedBy: p.BlockedBy,
		}
		if p.Status != layout.StatusSuppressed {
			out.X = p.Center.X
			out.Y = p.Center.Y
			out.Rotation = p.Rotation
			out.Box = scene.BoxFromRect(p.Box)
			out.Rank = p.Rank
			out.Overlap = p.Overlap
		}
		doc.Placements = append(doc.Placements, out)
	}

	for i, c := range s.Campaigns {
		r := routed[i]
		doc.Routes = append(doc.Routes, scene.Route{
			ID:     r.ID,
			Points: r.Points,
			Tip:    r.Tip,
			Gap:    r.Gap,
			Forced: r.Forced,
			Style:  c.Style,
		})
	}

	return doc
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
