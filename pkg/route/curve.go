package route

import "github.com/matzehuels/placemat/pkg/geom"

// DefaultSamples is the number of sampled points per curve span.
const DefaultSamples = 16

// BezierControl returns the control point for a quadratic bend from a to
// b: the midpoint pushed sideways by curvature times the span length.
// Positive curvature bends to the left of the travel direction.
func BezierControl(a, b geom.Point, curvature float64) geom.Point {
	seg := geom.Segment{A: a, B: b}
	return seg.Midpoint().Add(seg.Normal().Scale(curvature * seg.Length()))
}

// QuadBezier samples the quadratic Bézier through a, control c, and b
// into n spans. The result has n+1 points including both endpoints.
func QuadBezier(a, c, b geom.Point, n int) []geom.Point {
	if n < 1 {
		n = 1
	}
	out := make([]geom.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		u := 1 - t
		out = append(out, geom.Point{
			X: u*u*a.X + 2*u*t*c.X + t*t*b.X,
			Y: u*u*a.Y + 2*u*t*c.Y + t*t*b.Y,
		})
	}
	return out
}

// CatmullRom samples a centripetal-free Catmull-Rom spline through the
// given waypoints, n spans per waypoint pair. Endpoints are duplicated
// as phantom neighbors so the curve passes through every waypoint. Each
// span converts to a cubic Bézier with one-sixth tangents.
func CatmullRom(pts []geom.Point, n int) []geom.Point {
	if len(pts) < 2 {
		return append([]geom.Point(nil), pts...)
	}
	if n < 1 {
		n = 1
	}

	out := []geom.Point{pts[0]}
	for i := 0; i < len(pts)-1; i++ {
		p0 := pts[maxInt(i-1, 0)]
		p1 := pts[i]
		p2 := pts[i+1]
		p3 := pts[minInt(i+2, len(pts)-1)]

		c1 := p1.Add(p2.Sub(p0).Scale(1.0 / 6.0))
		c2 := p2.Sub(p3.Sub(p1).Scale(1.0 / 6.0))

		for j := 1; j <= n; j++ {
			t := float64(j) / float64(n)
			out = append(out, cubicAt(p1, c1, c2, p2, t))
		}
	}
	return out
}

// SamplePath samples the curve through the waypoints: a straight segment
// for two waypoints, a quadratic bend for two waypoints with curvature,
// and a Catmull-Rom spline for three or more.
func SamplePath(waypoints []geom.Point, curvature float64, samples int) []geom.Point {
	switch {
	case len(waypoints) < 2:
		return append([]geom.Point(nil), waypoints...)
	case len(waypoints) == 2 && curvature == 0:
		return []geom.Point{waypoints[0], waypoints[1]}
	case len(waypoints) == 2:
		return QuadBezier(waypoints[0], BezierControl(waypoints[0], waypoints[1], curvature), waypoints[1], samples)
	default:
		return CatmullRom(waypoints, samples)
	}
}

// PointAtLength walks the polyline to the given arc length and returns
// the interpolated point. Lengths beyond the polyline clamp to the ends.
func PointAtLength(pts []geom.Point, dist float64) geom.Point {
	if len(pts) == 0 {
		return geom.Point{}
	}
	if dist <= 0 {
		return pts[0]
	}
	for i := 1; i < len(pts); i++ {
		seg := geom.Segment{A: pts[i-1], B: pts[i]}
		l := seg.Length()
		if dist <= l {
			if l == 0 {
				return seg.A
			}
			return seg.PointAt(dist / l)
		}
		dist -= l
	}
	return pts[len(pts)-1]
}

// Midpoint returns the arc-length midpoint of the polyline.
func Midpoint(pts []geom.Point) geom.Point {
	return PointAtLength(pts, geom.PolylineLength(pts)/2)
}

func cubicAt(p0, c1, c2, p1 geom.Point, t float64) geom.Point {
	u := 1 - t
	return geom.Point{
		X: u*u*u*p0.X + 3*u*u*t*c1.X + 3*u*t*t*c2.X + t*t*t*p1.X,
		Y: u*u*u*p0.Y + 3*u*u*t*c1.Y + 3*u*t*t*c2.Y + t*t*t*p1.Y,
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
