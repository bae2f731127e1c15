package geom

import "math"

// Point is a location in output pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point { return Point{p.X + d.X, p.Y + d.Y} }

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p with both components multiplied by s.
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Segment is a directed line segment from A to B.
type Segment struct {
	A, B Point
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 { return s.A.Distance(s.B) }

// Midpoint returns the point halfway along the segment.
func (s Segment) Midpoint() Point {
	return Point{(s.A.X + s.B.X) / 2, (s.A.Y + s.B.Y) / 2}
}

// PointAt returns the point at parameter t along the segment,
// where t=0 is A and t=1 is B.
func (s Segment) PointAt(t float64) Point {
	return Point{s.A.X + (s.B.X-s.A.X)*t, s.A.Y + (s.B.Y-s.A.Y)*t}
}

// Angle returns the segment direction in degrees, counterclockwise from
// the positive x-axis, in (-180, 180].
func (s Segment) Angle() float64 {
	return math.Atan2(s.B.Y-s.A.Y, s.B.X-s.A.X) * 180 / math.Pi
}

// Normal returns the unit vector perpendicular to the segment,
// rotated 90° counterclockwise from its direction. Zero-length
// segments yield the zero vector.
func (s Segment) Normal() Point {
	dx, dy := s.B.X-s.A.X, s.B.Y-s.A.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return Point{}
	}
	return Point{-dy / l, dx / l}
}

// DistanceToPoint returns the shortest distance from p to the segment.
func (s Segment) DistanceToPoint(p Point) float64 {
	dx, dy := s.B.X-s.A.X, s.B.Y-s.A.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return s.A.Distance(p)
	}
	t := ((p.X-s.A.X)*dx + (p.Y-s.A.Y)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return s.PointAt(t).Distance(p)
}

// PolylineLength returns the total length of the polyline through pts.
func PolylineLength(pts []Point) float64 {
	var total float64
	for i := 1; i < len(pts); i++ {
		total += pts[i-1].Distance(pts[i])
	}
	return total
}
