package anchor

import (
	"math"

	"github.com/matzehuels/placemat/pkg/geom"
)

// Direction is one of the eight compass directions around a point anchor.
type Direction int

// Compass directions. The zero value is NE, the most preferred position.
const (
	NE Direction = iota
	E
	NW
	W
	SE
	SW
	N
	S
)

// ImhofOrder is the fixed candidate preference order for point anchors.
var ImhofOrder = [8]Direction{NE, E, NW, W, SE, SW, N, S}

var directionNames = [8]string{"NE", "E", "NW", "W", "SE", "SW", "N", "S"}

// String returns the compass abbreviation for the direction.
func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return "?"
	}
	return directionNames[d]
}

var directionBearings = [8]float64{45, 90, 315, 270, 135, 225, 0, 180}

// Bearing returns the compass bearing of the direction in degrees,
// 0° = north, clockwise.
func (d Direction) Bearing() float64 {
	return directionBearings[d]
}

// DirectionFromBearing returns the compass direction nearest to the given
// bearing in degrees. Ties round to the earlier direction in clockwise
// order from north.
func DirectionFromBearing(bearing float64) Direction {
	b := math.Mod(bearing, 360)
	if b < 0 {
		b += 360
	}
	sector := int(math.Floor(b/45 + 0.5)) % 8
	clockwise := [8]Direction{N, NE, E, SE, S, SW, W, NW}
	return clockwise[sector]
}

// PointCandidate is one proposed label placement around a point anchor.
type PointCandidate struct {
	Dir    Direction
	Center geom.Point
	Box    geom.Rect
}

// PointCandidates generates the eight Imhof candidates for a w×h label
// around the anchor at the given clearance radius. The box edge nearest
// the anchor sits at the radius for the cardinal directions; for the
// diagonals the nearest box corner sits on the 45° point of the circle.
// The result is always exactly eight candidates in [ImhofOrder].
func PointCandidates(a geom.Point, radius, w, h float64) []PointCandidate {
	rd := radius * math.Sqrt2 / 2

	centers := [8]geom.Point{
		NE: {X: a.X + rd + w/2, Y: a.Y + rd + h/2},
		E:  {X: a.X + radius + w/2, Y: a.Y},
		NW: {X: a.X - rd - w/2, Y: a.Y + rd + h/2},
		W:  {X: a.X - radius - w/2, Y: a.Y},
		SE: {X: a.X + rd + w/2, Y: a.Y - rd - h/2},
		SW: {X: a.X - rd - w/2, Y: a.Y - rd - h/2},
		N:  {X: a.X, Y: a.Y + radius + h/2},
		S:  {X: a.X, Y: a.Y - radius - h/2},
	}

	out := make([]PointCandidate, 0, 8)
	for _, d := range ImhofOrder {
		c := centers[d]
		out = append(out, PointCandidate{
			Dir:    d,
			Center: c,
			Box:    geom.RectAround(c, w, h),
		})
	}
	return out
}
