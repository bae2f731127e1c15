package layout

import (
	"math"

	"github.com/matzehuels/placemat/pkg/geom"
)

// gridCell is the edge length of the uniform grid backing the occupied
// set. Boxes register in every cell they touch; queries only examine the
// cells under the probe box, keeping overlap tests sub-linear in the
// occupied-set size.
const gridCell = 64.0

// occupiedBox is one committed box. The rect is stored already padded.
type occupiedBox struct {
	rect  geom.Rect
	owner string
	group string
}

// occupiedSet is the spatial index of committed boxes for one pass.
type occupiedSet struct {
	boxes []occupiedBox
	cells map[[2]int][]int
}

func newOccupiedSet() *occupiedSet {
	return &occupiedSet{cells: make(map[[2]int][]int)}
}

func cellRange(r geom.Rect) (x0, y0, x1, y1 int) {
	x0 = int(math.Floor(r.MinX / gridCell))
	y0 = int(math.Floor(r.MinY / gridCell))
	x1 = int(math.Floor(r.MaxX / gridCell))
	y1 = int(math.Floor(r.MaxY / gridCell))
	return x0, y0, x1, y1
}

// add commits a padded box to the set.
func (s *occupiedSet) add(b occupiedBox) {
	idx := len(s.boxes)
	s.boxes = append(s.boxes, b)

	x0, y0, x1, y1 := cellRange(b.rect)
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			key := [2]int{x, y}
			s.cells[key] = append(s.cells[key], idx)
		}
	}
}

// probe tests a padded box against the set. It reports whether anything
// intersects, the total overlap area, and the owners hit. Boxes whose
// group matches the non-empty probe group are exempt. Owners are reported
// in commit order without duplicates.
func (s *occupiedSet) probe(r geom.Rect, group string) (hit bool, area float64, owners []string) {
	seen := make(map[int]struct{})
	var hits []int

	x0, y0, x1, y1 := cellRange(r)
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			for _, idx := range s.cells[[2]int{x, y}] {
				if _, ok := seen[idx]; ok {
					continue
				}
				seen[idx] = struct{}{}

				b := s.boxes[idx]
				if group != "" && b.group == group {
					continue
				}
				if !r.Intersects(b.rect) {
					continue
				}
				hits = append(hits, idx)
			}
		}
	}

	if len(hits) == 0 {
		return false, 0, nil
	}

	// Commit order keeps diagnostics deterministic regardless of which
	// cells the probe visited first.
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j] < hits[j-1]; j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}

	owners = make([]string, 0, len(hits))
	for _, idx := range hits {
		b := s.boxes[idx]
		area += r.OverlapArea(b.rect)
		if b.owner != "" {
			owners = append(owners, b.owner)
		}
	}
	return true, area, owners
}

// size returns the number of committed boxes.
func (s *occupiedSet) size() int { return len(s.boxes) }
