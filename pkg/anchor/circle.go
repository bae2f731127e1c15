package anchor

import (
	"math"
	"sort"

	"github.com/matzehuels/placemat/pkg/geom"
)

// Circle is the clearance disc around a point anchor. Arrows terminate on
// (or short of) this circle rather than at the anchor point itself.
type Circle struct {
	Center geom.Point
	Radius float64
}

// Bearing returns the compass bearing from one point toward another in
// degrees, 0° = north, clockwise, normalized to [0, 360). Coincident
// points yield 0.
func Bearing(from, to geom.Point) float64 {
	dx, dy := to.X-from.X, to.Y-from.Y
	if dx == 0 && dy == 0 {
		return 0
	}
	return normBearing(math.Atan2(dx, dy) * 180 / math.Pi)
}

// BearingVector returns the unit vector pointing along a compass bearing.
func BearingVector(bearing float64) geom.Point {
	rad := bearing * math.Pi / 180
	return geom.Point{X: math.Sin(rad), Y: math.Cos(rad)}
}

// PointAt returns the point at the given bearing, scale×radius away from
// the circle center. Scale 1 is the circle itself; arrow retreat gaps use
// larger multiples.
func (c Circle) PointAt(bearing, scale float64) geom.Point {
	return c.Center.Add(BearingVector(bearing).Scale(c.Radius * scale))
}

// Attachment is one arrow wanting to touch the circle.
type Attachment struct {
	// ID identifies the arrow in the returned assignment.
	ID string

	// Bearing is the preferred approach bearing in degrees.
	Bearing float64

	// Priority orders slot claims; lower values claim first.
	// Ties fall back to input order.
	Priority int
}

// Distribute assigns a final approach bearing to every attachment so that
// arrows arriving at the same anchor spread around it:
//
//   - one attachment keeps its preferred bearing
//   - two attachments sit 180° apart, the higher-priority one on its
//     preferred bearing
//   - three or more take evenly spaced slots anchored at the
//     highest-priority attachment's preferred bearing, each claiming the
//     nearest free slot in priority order
//
// The result preserves input order.
func (c Circle) Distribute(atts []Attachment) []Attachment {
	out := make([]Attachment, len(atts))
	copy(out, atts)
	if len(out) == 0 {
		return out
	}

	order := make([]int, len(out))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return out[order[a]].Priority < out[order[b]].Priority
	})

	switch len(out) {
	case 1:
		out[0].Bearing = normBearing(out[0].Bearing)
	case 2:
		first, second := order[0], order[1]
		out[first].Bearing = normBearing(out[first].Bearing)
		out[second].Bearing = normBearing(out[first].Bearing + 180)
	default:
		step := 360 / float64(len(out))
		base := normBearing(out[order[0]].Bearing)
		slots := make([]float64, len(out))
		taken := make([]bool, len(out))
		for i := range slots {
			slots[i] = normBearing(base + float64(i)*step)
		}

		for _, idx := range order {
			best := -1
			bestDist := math.MaxFloat64
			for s := range slots {
				if taken[s] {
					continue
				}
				if d := angularDistance(out[idx].Bearing, slots[s]); d < bestDist {
					best, bestDist = s, d
				}
			}
			taken[best] = true
			out[idx].Bearing = slots[best]
		}
	}
	return out
}

// normBearing folds a bearing into [0, 360).
func normBearing(b float64) float64 {
	b = math.Mod(b, 360)
	if b < 0 {
		b += 360
	}
	return b
}

// angularDistance returns the smaller angle between two bearings.
func angularDistance(a, b float64) float64 {
	d := math.Abs(normBearing(a) - normBearing(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}
