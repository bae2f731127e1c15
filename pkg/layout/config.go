package layout

import "fmt"

// Fallback selects what happens when an element has no overlap-free
// candidate.
type Fallback string

// Fallback policies.
const (
	// FallbackForce accepts the candidate with the smallest total overlap
	// area, first candidate on ties.
	FallbackForce Fallback = "force-least-overlap"

	// FallbackSuppress omits the element and occupies nothing.
	FallbackSuppress Fallback = "suppress"
)

// Default configuration values.
const (
	// DefaultPadding is the margin added to every box before overlap
	// tests.
	DefaultPadding = 1.0

	// Default clearance radii per kind, in output pixels.
	DefaultPointClearance    = 6.0
	DefaultPathClearance     = 3.0
	DefaultMarkerClearance   = 12.0
	DefaultEndpointClearance = 8.0
)

// Config tunes one resolution pass. The zero value is not usable; start
// from [DefaultConfig] or call ValidateAndSetDefaults.
type Config struct {
	// Padding is added to each box before the overlap test, so labels
	// that would visually touch still count as colliding.
	Padding float64

	// Clearance is the default clearance radius per element kind,
	// overridden by Element.Clearance when set.
	Clearance map[Kind]float64

	// Fallback is the per-kind policy for elements with no overlap-free
	// candidate.
	Fallback map[Kind]Fallback

	// RingSteps are the clearance multipliers point labels walk outward
	// through. Each ring yields the eight Imhof candidates in order.
	RingSteps []float64

	// PairSteps are the clearance multipliers for companion marker boxes
	// in paired placement.
	PairSteps []float64

	// ExcludeLabelDirections makes arrow-endpoint candidates skip the
	// compass directions taken by their anchor's placed label.
	ExcludeLabelDirections bool
}

// DefaultConfig returns the production defaults: point labels and event
// markers force their least-overlap candidate when crowded, path labels
// and arrow decorations suppress.
func DefaultConfig() Config {
	return Config{
		Padding: DefaultPadding,
		Clearance: map[Kind]float64{
			KindPointLabel:    DefaultPointClearance,
			KindPathLabel:     DefaultPathClearance,
			KindEventMarker:   DefaultMarkerClearance,
			KindArrowEndpoint: DefaultEndpointClearance,
		},
		Fallback: map[Kind]Fallback{
			KindPointLabel:    FallbackForce,
			KindPathLabel:     FallbackSuppress,
			KindEventMarker:   FallbackForce,
			KindArrowEndpoint: FallbackSuppress,
		},
		RingSteps:              []float64{1.0, 1.5, 2.0},
		PairSteps:              []float64{1.0, 1.3, 1.6},
		ExcludeLabelDirections: true,
	}
}

// ValidateAndSetDefaults fills unset maps and step lists with defaults
// and rejects invalid values. Safe to call multiple times.
//
// Padding is left as given: zero is a valid explicit value meaning
// boxes may touch, so only [DefaultConfig] applies DefaultPadding.
func (c *Config) ValidateAndSetDefaults() error {
	def := DefaultConfig()

	if c.Padding < 0 {
		return fmt.Errorf("padding must be non-negative, got %v", c.Padding)
	}

	if c.Clearance == nil {
		c.Clearance = def.Clearance
	}
	for k, v := range def.Clearance {
		if _, ok := c.Clearance[k]; !ok {
			c.Clearance[k] = v
		}
	}
	for k, v := range c.Clearance {
		if v <= 0 {
			return fmt.Errorf("clearance for %s must be positive, got %v", k, v)
		}
	}

	if c.Fallback == nil {
		c.Fallback = def.Fallback
	}
	for k, v := range def.Fallback {
		if _, ok := c.Fallback[k]; !ok {
			c.Fallback[k] = v
		}
	}
	for k, v := range c.Fallback {
		if v != FallbackForce && v != FallbackSuppress {
			return fmt.Errorf("unknown fallback policy %q for %s", v, k)
		}
	}

	if len(c.RingSteps) == 0 {
		c.RingSteps = def.RingSteps
	}
	for _, s := range c.RingSteps {
		if s <= 0 {
			return fmt.Errorf("ring steps must be positive, got %v", s)
		}
	}

	if len(c.PairSteps) == 0 {
		c.PairSteps = def.PairSteps
	}
	for _, s := range c.PairSteps {
		if s <= 0 {
			return fmt.Errorf("pair steps must be positive, got %v", s)
		}
	}

	return nil
}

// clearanceFor returns the effective clearance radius for an element.
func (c *Config) clearanceFor(el *Element) float64 {
	if el.Clearance > 0 {
		return el.Clearance
	}
	return c.Clearance[el.Kind]
}
