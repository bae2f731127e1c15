package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/placemat/pkg/cache"
	"github.com/matzehuels/placemat/pkg/layout"
	"github.com/matzehuels/placemat/pkg/route"
)

// Rules is the placement rule set, loadable from a TOML file so maps can
// be tuned without recompiling. The zero value is not usable; start from
// [DefaultRules] or call ValidateAndSetDefaults after decoding.
type Rules struct {
	// Padding is the margin added to every box before overlap tests.
	Padding float64 `toml:"padding" json:"padding"`

	// RingSteps are the clearance multipliers point labels walk outward
	// through when their inner ring is crowded.
	RingSteps []float64 `toml:"ring_steps" json:"ring_steps"`

	// PairSteps are the clearance multipliers for paired marker boxes.
	PairSteps []float64 `toml:"pair_steps" json:"pair_steps"`

	// PairDistance is the maximum anchor distance at which an event
	// marker pairs with a city label, in output pixels.
	PairDistance float64 `toml:"pair_distance" json:"pair_distance"`

	Fonts     FontRules      `toml:"fonts" json:"fonts"`
	Clearance ClearanceRules `toml:"clearance" json:"clearance"`
	Sizes     SizeRules      `toml:"sizes" json:"sizes"`
	Fallback  FallbackRules  `toml:"fallback" json:"fallback"`
	Route     RouteRules     `toml:"route" json:"route"`
}

// FontRules are the font sizes per feature class, in output pixels.
type FontRules struct {
	// City holds one size per city level, capital first.
	City []float64 `toml:"city" json:"city"`

	Event    float64 `toml:"event" json:"event"`
	River    float64 `toml:"river" json:"river"`
	Region   float64 `toml:"region" json:"region"`
	Campaign float64 `toml:"campaign" json:"campaign"`

	// RegionTracking is extra letter spacing for region names.
	RegionTracking float64 `toml:"region_tracking" json:"region_tracking"`
}

// ClearanceRules are the clearance radii per feature class.
type ClearanceRules struct {
	// City holds one anchor radius per city level, capital first. The
	// radius doubles as the campaign arrow target circle.
	City []float64 `toml:"city" json:"city"`

	Marker   float64 `toml:"marker" json:"marker"`
	Endpoint float64 `toml:"endpoint" json:"endpoint"`
	Path     float64 `toml:"path" json:"path"`
}

// SizeRules are the fixed box sizes of non-text decorations.
type SizeRules struct {
	// Marker is the edge length of an event marker box.
	Marker float64 `toml:"marker" json:"marker"`

	// Endpoint is the edge length of an arrow endpoint box.
	Endpoint float64 `toml:"endpoint" json:"endpoint"`
}

// FallbackRules select the crowded-placement policy per element kind.
// Valid values: "force-least-overlap", "suppress".
type FallbackRules struct {
	PointLabel    string `toml:"point_label" json:"point_label"`
	PathLabel     string `toml:"path_label" json:"path_label"`
	EventMarker   string `toml:"event_marker" json:"event_marker"`
	ArrowEndpoint string `toml:"arrow_endpoint" json:"arrow_endpoint"`
}

// RouteRules tune campaign arrow routing.
type RouteRules struct {
	// Thickness is the swept conflict box width along arrow polylines.
	Thickness float64 `toml:"thickness" json:"thickness"`

	// GapScales are the retreat distances tried per arrow, in target
	// radii, smallest first.
	GapScales []float64 `toml:"gap_scales" json:"gap_scales"`

	// Samples is the sampled point count per curve span.
	Samples int `toml:"samples" json:"samples"`
}

// DefaultRules returns the production rule set.
func DefaultRules() *Rules {
	return &Rules{
		Padding:      layout.DefaultPadding,
		RingSteps:    []float64{1.0, 1.5, 2.0},
		PairSteps:    []float64{1.0, 1.3, 1.6},
		PairDistance: 24,
		Fonts: FontRules{
			City:           []float64{18, 15, 12, 10},
			Event:          11,
			River:          11,
			Region:         16,
			Campaign:       12,
			RegionTracking: 4,
		},
		Clearance: ClearanceRules{
			City:     []float64{10, 8, 6, 5},
			Marker:   layout.DefaultMarkerClearance,
			Endpoint: layout.DefaultEndpointClearance,
			Path:     layout.DefaultPathClearance,
		},
		Sizes: SizeRules{
			Marker:   10,
			Endpoint: 12,
		},
		Fallback: FallbackRules{
			PointLabel:    string(layout.FallbackForce),
			PathLabel:     string(layout.FallbackSuppress),
			EventMarker:   string(layout.FallbackForce),
			ArrowEndpoint: string(layout.FallbackSuppress),
		},
		Route: RouteRules{
			Thickness: route.DefaultThickness,
			GapScales: route.DefaultGapScales,
			Samples:   route.DefaultSamples,
		},
	}
}

// LoadRules reads a TOML rule file and fills unset fields with defaults.
func LoadRules(path string) (*Rules, error) {
	rules := &Rules{}
	if _, err := toml.DecodeFile(path, rules); err != nil {
		return nil, fmt.Errorf("decode rules %s: %w", path, err)
	}
	if err := rules.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("rules %s: %w", path, err)
	}
	return rules, nil
}

// ValidateAndSetDefaults fills unset fields with defaults and rejects
// invalid values. Safe to call multiple times.
func (r *Rules) ValidateAndSetDefaults() error {
	def := DefaultRules()

	if r.Padding < 0 {
		return fmt.Errorf("padding must be non-negative, got %v", r.Padding)
	}
	if len(r.RingSteps) == 0 {
		r.RingSteps = def.RingSteps
	}
	if len(r.PairSteps) == 0 {
		r.PairSteps = def.PairSteps
	}
	if r.PairDistance == 0 {
		r.PairDistance = def.PairDistance
	}
	if r.PairDistance < 0 {
		return fmt.Errorf("pair_distance must be non-negative, got %v", r.PairDistance)
	}

	if len(r.Fonts.City) == 0 {
		r.Fonts.City = def.Fonts.City
	}
	setDefault(&r.Fonts.Event, def.Fonts.Event)
	setDefault(&r.Fonts.River, def.Fonts.River)
	setDefault(&r.Fonts.Region, def.Fonts.Region)
	setDefault(&r.Fonts.Campaign, def.Fonts.Campaign)
	if r.Fonts.RegionTracking == 0 {
		r.Fonts.RegionTracking = def.Fonts.RegionTracking
	}
	for _, size := range r.Fonts.City {
		if size <= 0 {
			return fmt.Errorf("city font sizes must be positive, got %v", size)
		}
	}
	for _, size := range []float64{r.Fonts.Event, r.Fonts.River, r.Fonts.Region, r.Fonts.Campaign} {
		if size <= 0 {
			return fmt.Errorf("font sizes must be positive, got %v", size)
		}
	}

	if len(r.Clearance.City) == 0 {
		r.Clearance.City = def.Clearance.City
	}
	setDefault(&r.Clearance.Marker, def.Clearance.Marker)
	setDefault(&r.Clearance.Endpoint, def.Clearance.Endpoint)
	setDefault(&r.Clearance.Path, def.Clearance.Path)
	for _, c := range r.Clearance.City {
		if c <= 0 {
			return fmt.Errorf("city clearances must be positive, got %v", c)
		}
	}

	setDefault(&r.Sizes.Marker, def.Sizes.Marker)
	setDefault(&r.Sizes.Endpoint, def.Sizes.Endpoint)

	if r.Fallback.PointLabel == "" {
		r.Fallback.PointLabel = def.Fallback.PointLabel
	}
	if r.Fallback.PathLabel == "" {
		r.Fallback.PathLabel = def.Fallback.PathLabel
	}
	if r.Fallback.EventMarker == "" {
		r.Fallback.EventMarker = def.Fallback.EventMarker
	}
	if r.Fallback.ArrowEndpoint == "" {
		r.Fallback.ArrowEndpoint = def.Fallback.ArrowEndpoint
	}

	setDefault(&r.Route.Thickness, def.Route.Thickness)
	if len(r.Route.GapScales) == 0 {
		r.Route.GapScales = def.Route.GapScales
	}
	if r.Route.Samples == 0 {
		r.Route.Samples = def.Route.Samples
	}
	if r.Route.Samples < 2 {
		return fmt.Errorf("route samples must be at least 2, got %d", r.Route.Samples)
	}
	for _, g := range r.Route.GapScales {
		if g <= 0 {
			return fmt.Errorf("gap scales must be positive, got %v", g)
		}
	}

	// Fallback strings are checked by the layout config validation below.
	cfg := r.LayoutConfig()
	return cfg.ValidateAndSetDefaults()
}

func setDefault(field *float64, def float64) {
	if *field == 0 {
		*field = def
	}
}

// Hash returns the content hash of the rule set, for cache keys.
func (r *Rules) Hash() string {
	data, _ := json.Marshal(r)
	return cache.Hash(data)
}

// LayoutConfig converts the rule set into an engine configuration.
func (r *Rules) LayoutConfig() layout.Config {
	return layout.Config{
		Padding: r.Padding,
		Clearance: map[layout.Kind]float64{
			layout.KindPathLabel:     r.Clearance.Path,
			layout.KindEventMarker:   r.Clearance.Marker,
			layout.KindArrowEndpoint: r.Clearance.Endpoint,
		},
		Fallback: map[layout.Kind]layout.Fallback{
			layout.KindPointLabel:    layout.Fallback(r.Fallback.PointLabel),
			layout.KindPathLabel:     layout.Fallback(r.Fallback.PathLabel),
			layout.KindEventMarker:   layout.Fallback(r.Fallback.EventMarker),
			layout.KindArrowEndpoint: layout.Fallback(r.Fallback.ArrowEndpoint),
		},
		RingSteps:              r.RingSteps,
		PairSteps:              r.PairSteps,
		ExcludeLabelDirections: true,
	}
}

// RouteOptions converts the rule set into routing options.
func (r *Rules) RouteOptions() route.Options {
	return route.Options{
		Thickness: r.Route.Thickness,
		Samples:   r.Route.Samples,
		GapScales: r.Route.GapScales,
	}
}

// cityFont returns the font size for a city level, clamped to the table.
func (r *Rules) cityFont(level int) float64 {
	return indexClamped(r.Fonts.City, level)
}

// cityRadius returns the anchor radius for a city level.
func (r *Rules) cityRadius(level int) float64 {
	return indexClamped(r.Clearance.City, level)
}

func indexClamped(table []float64, level int) float64 {
	idx := level - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(table) {
		idx = len(table) - 1
	}
	return table[idx]
}

// cityTier returns the priority tier for a city level.
func cityTier(level int) int {
	switch level {
	case 1:
		return layout.TierCityMajor
	case 2:
		return layout.TierCityLarge
	case 3:
		return layout.TierCityMid
	default:
		return layout.TierCitySmall
	}
}
