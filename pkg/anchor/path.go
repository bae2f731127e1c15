package anchor

import (
	"sort"

	"github.com/matzehuels/placemat/pkg/geom"
)

// PathCandidate is one proposed label placement along a polyline anchor.
type PathCandidate struct {
	// SegmentIndex is the index of the originating segment in the input
	// polyline, before length ordering.
	SegmentIndex int

	Center   geom.Point
	Rotation float64
	Box      geom.Rect
}

// PathSegments returns the segments of the polyline ordered by descending
// length, ties broken by original segment index. The returned indices
// refer to positions in the input polyline.
func PathSegments(pts []geom.Point) []int {
	n := len(pts) - 1
	if n < 1 {
		return nil
	}

	idx := make([]int, n)
	lengths := make([]float64, n)
	for i := range idx {
		idx[i] = i
		lengths[i] = geom.Segment{A: pts[i], B: pts[i+1]}.Length()
	}

	sort.SliceStable(idx, func(a, b int) bool {
		return lengths[idx[a]] > lengths[idx[b]]
	})
	return idx
}

// PathCandidates generates label candidates for a w×h label along the
// polyline, one per segment, longest segment first. The label is centered
// on the segment midpoint, pushed to the segment's upward side by offset
// plus half the label height, and rotated to the segment bearing. The
// rotation is kept within (-90°, 90°] so text never renders upside-down;
// the conflict box is the enclosing AABB of the rotated label.
func PathCandidates(pts []geom.Point, offset, w, h float64) []PathCandidate {
	order := PathSegments(pts)
	if order == nil {
		return nil
	}

	out := make([]PathCandidate, 0, len(order))
	for _, i := range order {
		seg := geom.Segment{A: pts[i], B: pts[i+1]}
		if seg.Length() == 0 {
			continue
		}

		normal := upwardNormal(seg)
		center := seg.Midpoint().Add(normal.Scale(offset + h/2))
		rot := uprightAngle(seg.Angle())

		out = append(out, PathCandidate{
			SegmentIndex: i,
			Center:       center,
			Rotation:     rot,
			Box:          geom.RotatedAABB(center, w, h, rot),
		})
	}
	return out
}

// upwardNormal returns the segment normal flipped onto the upward side.
// Vertical segments resolve to the right-hand side.
func upwardNormal(s geom.Segment) geom.Point {
	n := s.Normal()
	if n.Y < 0 || (n.Y == 0 && n.X < 0) {
		return n.Scale(-1)
	}
	return n
}

// uprightAngle folds an angle in degrees into (-90, 90].
func uprightAngle(a float64) float64 {
	for a > 90 {
		a -= 180
	}
	for a <= -90 {
		a += 180
	}
	return a
}
