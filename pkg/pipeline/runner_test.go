package pipeline

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/placemat/pkg/cache"
	"github.com/matzehuels/placemat/pkg/footprint"
	"github.com/matzehuels/placemat/pkg/geom"
	"github.com/matzehuels/placemat/pkg/scene"
)

func runnerScene() *scene.Scene {
	return &scene.Scene{
		Name:   "Campaign of 1812",
		Extent: scene.Extent{MaxX: 1000, MaxY: 800},
		Cities: []scene.City{
			{ID: "moscow", Name: "Moscow", X: 800, Y: 600, Level: 1},
			{ID: "smolensk", Name: "Smolensk", X: 500, Y: 500, Level: 3},
			{ID: "vilna", Name: "Vilna", X: 150, Y: 550, Level: 3},
		},
		Rivers: []scene.River{
			{ID: "berezina", Name: "Berezina", Points: []geom.Point{{X: 300, Y: 200}, {X: 340, Y: 400}, {X: 360, Y: 550}}},
		},
		Regions: []scene.Region{
			{ID: "lithuania", Name: "LITHUANIA", X: 200, Y: 700},
		},
		Events: []scene.Event{
			{ID: "fire", Title: "City burns", X: 805, Y: 604},
		},
		Campaigns: []scene.Campaign{
			{ID: "advance", Name: "Grande Armée", From: scene.Waypoint{City: "vilna"}, To: "moscow", Curvature: 0.2},
		},
	}
}

func testRunner(c cache.Cache) *Runner {
	return NewRunner(c, nil, log.NewWithOptions(io.Discard, log.Options{}))
}

func testOptions() Options {
	return Options{Estimator: footprint.Fixed{W: 48, H: 14}}
}

func TestExecute(t *testing.T) {
	r := testRunner(nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), runnerScene(), testOptions())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.RunID == "" {
		t.Error("result should carry a run ID")
	}
	if result.SceneName != "Campaign of 1812" {
		t.Errorf("SceneName = %q", result.SceneName)
	}
	if result.CacheInfo.Hit {
		t.Error("first run should not hit the cache")
	}

	doc := result.Layout
	if doc == nil {
		t.Fatal("result should carry a layout document")
	}
	// 3 cities + 1 river + 1 region + event marker and label (marker
	// paired into moscow) + campaign label and endpoint.
	wantPlacements := runnerScene().ElementCount()
	if len(doc.Placements) != wantPlacements {
		t.Errorf("got %d placements, want %d", len(doc.Placements), wantPlacements)
	}
	if len(doc.Routes) != 1 {
		t.Fatalf("got %d routes, want 1", len(doc.Routes))
	}
	if len(doc.Routes[0].Points) < 2 {
		t.Error("route should carry a sampled polyline")
	}
	if doc.Stats.Total != wantPlacements {
		t.Errorf("stats total = %d, want %d", doc.Stats.Total, wantPlacements)
	}

	// Every placement has a status; labels carry their text.
	for _, p := range doc.Placements {
		if p.Status == "" {
			t.Errorf("placement %s has no status", p.ID)
		}
	}
	byID := make(map[string]scene.Placement)
	for _, p := range doc.Placements {
		byID[p.ID] = p
	}
	if byID["moscow"].Text != "Moscow" {
		t.Errorf("moscow text = %q", byID["moscow"].Text)
	}
	if byID["advance"].Text != "Grande Armée" {
		t.Errorf("campaign label text = %q", byID["advance"].Text)
	}
}

func TestExecuteDeterministic(t *testing.T) {
	ctx := context.Background()

	run := func() *scene.Layout {
		r := testRunner(nil)
		defer r.Close()
		result, err := r.Execute(ctx, runnerScene(), testOptions())
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		return result.Layout
	}

	a, b := run(), run()
	dataA, err := scene.MarshalLayout(*a)
	if err != nil {
		t.Fatalf("MarshalLayout() error = %v", err)
	}
	dataB, err := scene.MarshalLayout(*b)
	if err != nil {
		t.Fatalf("MarshalLayout() error = %v", err)
	}
	if string(dataA) != string(dataB) {
		t.Error("identical inputs should produce byte-identical layouts")
	}
}

func TestExecuteCacheReplay(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	r := testRunner(fc)
	defer r.Close()

	first, err := r.Execute(ctx, runnerScene(), testOptions())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if first.CacheInfo.Hit {
		t.Fatal("first run should miss")
	}

	second, err := r.Execute(ctx, runnerScene(), testOptions())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !second.CacheInfo.Hit {
		t.Fatal("second run should replay from cache")
	}
	if second.CacheInfo.Key != first.CacheInfo.Key {
		t.Error("both runs should share one cache key")
	}
	if second.RunID == first.RunID {
		t.Error("each run gets its own run ID")
	}

	dataA, _ := scene.MarshalLayout(*first.Layout)
	dataB, _ := scene.MarshalLayout(*second.Layout)
	if string(dataA) != string(dataB) {
		t.Error("cached layout should match the computed one")
	}
}

func TestExecuteRefreshBypassesCache(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	r := testRunner(fc)
	defer r.Close()

	if _, err := r.Execute(ctx, runnerScene(), testOptions()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	opts := testOptions()
	opts.Refresh = true
	result, err := r.Execute(ctx, runnerScene(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.CacheInfo.Hit {
		t.Error("refresh run should not hit the cache")
	}
}

func TestExecuteRulesChangeNewKey(t *testing.T) {
	ctx := context.Background()
	r := testRunner(nil)
	defer r.Close()

	first, err := r.Execute(ctx, runnerScene(), testOptions())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	opts := testOptions()
	opts.Rules = DefaultRules()
	opts.Rules.Padding = 4
	second, err := r.Execute(ctx, runnerScene(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if first.CacheInfo.Key == second.CacheInfo.Key {
		t.Error("different rule sets should produce different cache keys")
	}
}
