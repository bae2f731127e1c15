package route

import (
	"sort"

	"github.com/matzehuels/placemat/pkg/anchor"
	"github.com/matzehuels/placemat/pkg/geom"
)

// DefaultThickness is the width of the swept conflict boxes along an
// arrow polyline, in output pixels.
const DefaultThickness = 4.0

// DefaultGapScales are the retreat distances tried for each arrow, in
// units of the target circle radius, smallest first.
var DefaultGapScales = []float64{2, 3, 4}

// Arrow is one campaign arrow awaiting routing.
type Arrow struct {
	// ID identifies the arrow in the result.
	ID string

	// From is the arrow tail.
	From geom.Point

	// Via are optional intermediate waypoints between tail and target.
	Via []geom.Point

	// Target is the anchor circle the arrowhead points at.
	Target anchor.Circle

	// Bearing is the approach bearing onto the target circle, assigned
	// by [anchor.Circle.Distribute] when several arrows share a target.
	Bearing float64

	// Curvature bends a two-waypoint arrow; ignored with via points.
	Curvature float64

	// Priority orders routing; lower routes first. Ties fall back to
	// input order.
	Priority int
}

// Resolved is a routed arrow.
type Resolved struct {
	ID string

	// Points is the sampled polyline from tail to tip.
	Points []geom.Point

	// Gap is the accepted retreat scale.
	Gap float64

	// Tip is the arrowhead position on the retreat circle.
	Tip geom.Point

	// Forced marks an arrow whose every gap variant collided; the
	// largest gap was taken anyway.
	Forced bool

	// Boxes are the swept conflict boxes committed for this arrow.
	Boxes []geom.Rect
}

// Space is the occupied-space view arrows route against.
// *layout.Manager satisfies it.
type Space interface {
	// Blocked reports whether a box intersects committed space.
	Blocked(geom.Rect) bool

	// AddObstacle commits a box.
	AddObstacle(geom.Rect)
}

// Options tunes route resolution. Zero fields take defaults.
type Options struct {
	// Thickness is the swept box width along the polyline.
	Thickness float64

	// Samples is the sampled point count per curve span.
	Samples int

	// GapScales overrides the retreat scales, tried in order.
	GapScales []float64
}

func (o *Options) setDefaults() {
	if o.Thickness <= 0 {
		o.Thickness = DefaultThickness
	}
	if o.Samples <= 0 {
		o.Samples = DefaultSamples
	}
	if len(o.GapScales) == 0 {
		o.GapScales = DefaultGapScales
	}
}

// Resolve routes every arrow in priority order against the occupied
// space, committing each accepted arrow's boxes before the next one
// routes. For each arrow the gap scales are tried smallest first; the
// first variant whose swept boxes all clear wins. When every variant
// collides the largest gap is accepted and marked forced. The result
// preserves input order.
func Resolve(arrows []Arrow, occ Space, opts Options) []Resolved {
	opts.setDefaults()

	order := make([]int, len(arrows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return arrows[order[a]].Priority < arrows[order[b]].Priority
	})

	out := make([]Resolved, len(arrows))
	for _, idx := range order {
		out[idx] = resolveOne(&arrows[idx], occ, &opts)
		for _, b := range out[idx].Boxes {
			occ.AddObstacle(b)
		}
	}
	return out
}

func resolveOne(a *Arrow, occ Space, opts *Options) Resolved {
	var last Resolved
	for i, gap := range opts.GapScales {
		tip := a.Target.PointAt(a.Bearing, gap)
		pts := SamplePath(a.waypoints(tip), a.Curvature, opts.Samples)
		boxes := SweptBoxes(pts, opts.Thickness)

		last = Resolved{ID: a.ID, Points: pts, Gap: gap, Tip: tip, Boxes: boxes}
		if !anyBlocked(boxes, occ) {
			return last
		}
		if i == len(opts.GapScales)-1 {
			last.Forced = true
		}
	}
	return last
}

func (a *Arrow) waypoints(tip geom.Point) []geom.Point {
	pts := make([]geom.Point, 0, len(a.Via)+2)
	pts = append(pts, a.From)
	pts = append(pts, a.Via...)
	return append(pts, tip)
}

func anyBlocked(boxes []geom.Rect, occ Space) bool {
	for _, b := range boxes {
		if occ.Blocked(b) {
			return true
		}
	}
	return false
}

// SweptBoxes covers the polyline with one axis-aligned box per sampled
// segment, each grown to the given thickness. Sampled segments are
// short, so the per-segment AABB stays tight even on diagonals.
func SweptBoxes(pts []geom.Point, thickness float64) []geom.Rect {
	if len(pts) < 2 {
		return nil
	}
	out := make([]geom.Rect, 0, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		box := geom.Rect{
			MinX: minF(a.X, b.X),
			MinY: minF(a.Y, b.Y),
			MaxX: maxF(a.X, b.X),
			MaxY: maxF(a.Y, b.Y),
		}
		out = append(out, box.Pad(thickness/2))
	}
	return out
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
