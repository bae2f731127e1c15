package geom

import "math"

// Rect is an axis-aligned rectangle in output pixel space.
// Valid rectangles have MinX <= MaxX and MinY <= MaxY.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// RectAround returns the rectangle of the given size centered on c.
func RectAround(c Point, w, h float64) Rect {
	return Rect{
		MinX: c.X - w/2,
		MinY: c.Y - h/2,
		MaxX: c.X + w/2,
		MaxY: c.Y + h/2,
	}
}

// Width returns the horizontal span of the rectangle.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical span of the rectangle.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{(r.MinX + r.MaxX) / 2, (r.MinY + r.MaxY) / 2}
}

// Area returns the area of the rectangle, zero for degenerate rectangles.
func (r Rect) Area() float64 {
	if r.MaxX < r.MinX || r.MaxY < r.MinY {
		return 0
	}
	return r.Width() * r.Height()
}

// Pad returns the rectangle grown by m on every side. Negative margins
// shrink the rectangle and may produce a degenerate result.
func (r Rect) Pad(m float64) Rect {
	return Rect{r.MinX - m, r.MinY - m, r.MaxX + m, r.MaxY + m}
}

// Translate returns the rectangle shifted by d.
func (r Rect) Translate(d Point) Rect {
	return Rect{r.MinX + d.X, r.MinY + d.Y, r.MaxX + d.X, r.MaxY + d.Y}
}

// Intersects reports whether r and o overlap. Intervals are closed:
// rectangles sharing only an edge or corner still intersect.
func (r Rect) Intersects(o Rect) bool {
	return !(r.MaxX < o.MinX || r.MinX > o.MaxX || r.MaxY < o.MinY || r.MinY > o.MaxY)
}

// OverlapArea returns the area of the intersection of r and o,
// zero if they are disjoint or touch only along an edge.
func (r Rect) OverlapArea(o Rect) float64 {
	w := math.Min(r.MaxX, o.MaxX) - math.Max(r.MinX, o.MinX)
	h := math.Min(r.MaxY, o.MaxY) - math.Max(r.MinY, o.MinY)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		MinX: math.Min(r.MinX, o.MinX),
		MinY: math.Min(r.MinY, o.MinY),
		MaxX: math.Max(r.MaxX, o.MaxX),
		MaxY: math.Max(r.MaxY, o.MaxY),
	}
}

// ContainsPoint reports whether p lies inside or on the boundary of r.
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// RotatedAABB returns the axis-aligned bounding box of a w×h rectangle
// centered on c and rotated by angle degrees.
func RotatedAABB(c Point, w, h, angle float64) Rect {
	rad := angle * math.Pi / 180
	cos, sin := math.Abs(math.Cos(rad)), math.Abs(math.Sin(rad))
	bw := w*cos + h*sin
	bh := w*sin + h*cos
	return RectAround(c, bw, bh)
}
