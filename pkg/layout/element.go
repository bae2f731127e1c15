package layout

import "github.com/matzehuels/placemat/pkg/geom"

// Kind discriminates the element variants. Candidate generation is a
// separate function per kind; nothing in the engine inspects types at
// runtime.
type Kind int

// Element kinds.
const (
	KindPointLabel Kind = iota
	KindPathLabel
	KindEventMarker
	KindArrowEndpoint
)

var kindNames = [...]string{"point-label", "path-label", "event-marker", "arrow-endpoint"}

// String returns the kind's serialization name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Priority tiers, lower value = placed earlier. The relative order follows
// cartographic importance: major cities and event markers beat everything,
// arrow decorations come after every city label they may depend on, and
// region names fill whatever space remains.
const (
	TierCityMajor     = 10
	TierEventMarker   = 20
	TierCityLarge     = 30
	TierCityMid       = 40
	TierEventLabel    = 50
	TierCitySmall     = 55
	TierArrowEndpoint = 60
	TierCampaignLabel = 65
	TierRiver         = 70
	TierRegion        = 80
)

// Override pins an element to an explicit position, bypassing candidate
// generation. The box is still committed to the occupied set.
type Override struct {
	// Offset is added to the point anchor (or the first path vertex) to
	// obtain the label center.
	Offset geom.Point

	// Rotation in degrees.
	Rotation float64
}

// Companion is a marker box resolved atomically with its host point
// label: a city label paired with a co-located event marker. Both boxes
// are tested and committed together, and the companion receives its own
// entry in the result under ID.
type Companion struct {
	ID        string
	Anchor    geom.Point
	W, H      float64
	Clearance float64
}

// Element is one unit of placement, immutable once constructed. The
// engine reports positions through the [Result]; it never writes back
// into the element.
type Element struct {
	// ID uniquely identifies the element within one pass.
	ID string

	Kind Kind

	// Point is the anchor for point-anchored kinds.
	Point geom.Point

	// Path is the polyline anchor for KindPathLabel, at least two points.
	Path []geom.Point

	// Priority tier; lower places earlier. Ties resolve by input order.
	Priority int

	// W, H is the pre-measured footprint in output pixels.
	W, H float64

	// Clearance overrides the per-kind clearance radius when positive.
	Clearance float64

	// PathOffset pushes a path label away from its polyline, in addition
	// to half the label height.
	PathOffset float64

	// AnchorRef names the shared point anchor this element belongs to.
	// Arrow endpoints use it to avoid the directions taken by the
	// anchor's label.
	AnchorRef string

	// Group exempts elements from conflicting with each other when equal
	// and non-empty.
	Group string

	// Override pins the element, bypassing candidate generation.
	Override *Override

	// Companion pairs a marker box with this label. Only meaningful on
	// KindPointLabel.
	Companion *Companion
}
