package scene

import (
	"github.com/matzehuels/placemat/pkg/geom"
)

// Placement statuses as serialized.
const (
	StatusPlaced     = "placed"
	StatusForced     = "forced"
	StatusSuppressed = "suppressed"
)

// Layout is the serialized outcome of one resolution pass: exactly one
// placement per scene element, the routed campaign arrows, and the
// aggregate statistics. It is the document the CLI writes, the service
// returns, and the run archive stores.
type Layout struct {
	Scene  string `json:"scene" bson:"scene"`
	Extent Extent `json:"extent" bson:"extent"`

	Placements []Placement `json:"placements" bson:"placements"`
	Routes     []Route     `json:"routes,omitempty" bson:"routes,omitempty"`

	Stats Stats `json:"stats" bson:"stats"`
}

// Placement is the final outcome for one element.
type Placement struct {
	ID     string `json:"id" bson:"id"`
	Kind   string `json:"kind" bson:"kind"`
	Status string `json:"status" bson:"status"`

	// Text is the rendered label content, empty for markers and
	// decorations.
	Text string `json:"text,omitempty" bson:"text,omitempty"`

	// Position and rotation of the accepted candidate; zero for
	// suppressed elements.
	X        float64 `json:"x,omitempty" bson:"x,omitempty"`
	Y        float64 `json:"y,omitempty" bson:"y,omitempty"`
	Rotation float64 `json:"rotation,omitempty" bson:"rotation,omitempty"`

	// Box is the committed conflict box, padding excluded.
	Box Box `json:"box,omitempty" bson:"box,omitempty"`

	// Rank is the ordinal of the accepted candidate in the element's
	// candidate list.
	Rank int `json:"rank,omitempty" bson:"rank,omitempty"`

	// Overlap is the total padded overlap area for forced placements.
	Overlap float64 `json:"overlap,omitempty" bson:"overlap,omitempty"`

	// Reason explains a suppression.
	Reason string `json:"reason,omitempty" bson:"reason,omitempty"`

	// BlockedBy lists the element IDs whose boxes rejected at least one
	// candidate, sorted.
	BlockedBy []string `json:"blocked_by,omitempty" bson:"blocked_by,omitempty"`
}

// Box is a serialized axis-aligned rectangle.
type Box struct {
	MinX float64 `json:"min_x" bson:"min_x"`
	MinY float64 `json:"min_y" bson:"min_y"`
	MaxX float64 `json:"max_x" bson:"max_x"`
	MaxY float64 `json:"max_y" bson:"max_y"`
}

// BoxFromRect converts a geometry rectangle to its serialized form.
func BoxFromRect(r geom.Rect) Box {
	return Box{MinX: r.MinX, MinY: r.MinY, MaxX: r.MaxX, MaxY: r.MaxY}
}

// Rect converts the serialized box back to a geometry rectangle.
func (b Box) Rect() geom.Rect {
	return geom.Rect{MinX: b.MinX, MinY: b.MinY, MaxX: b.MaxX, MaxY: b.MaxY}
}

// Route is one routed campaign arrow.
type Route struct {
	ID string `json:"id" bson:"id"`

	// Points is the sampled polyline from tail to tip.
	Points []geom.Point `json:"points" bson:"points"`

	// Tip is the arrowhead position.
	Tip geom.Point `json:"tip" bson:"tip"`

	// Gap is the accepted retreat scale on the target's anchor circle.
	Gap float64 `json:"gap" bson:"gap"`

	// Forced marks a route accepted despite collisions.
	Forced bool `json:"forced,omitempty" bson:"forced,omitempty"`

	Style string `json:"style,omitempty" bson:"style,omitempty"`
}

// Stats aggregates the outcome of one pass.
type Stats struct {
	Total      int `json:"total" bson:"total"`
	Placed     int `json:"placed" bson:"placed"`
	Forced     int `json:"forced" bson:"forced"`
	Suppressed int `json:"suppressed" bson:"suppressed"`

	// RoutesForced counts campaign arrows that kept no gap variant
	// collision-free.
	RoutesForced int `json:"routes_forced,omitempty" bson:"routes_forced,omitempty"`
}
