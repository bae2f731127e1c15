package layout

import (
	"github.com/matzehuels/placemat/pkg/anchor"
	"github.com/matzehuels/placemat/pkg/geom"
)

// Status is the outcome of placing one element.
type Status int

// Placement outcomes.
const (
	// StatusPlaced means an overlap-free candidate was accepted.
	StatusPlaced Status = iota

	// StatusForced means every candidate overlapped and the
	// least-overlap one was accepted anyway.
	StatusForced

	// StatusSuppressed means the element was deliberately omitted.
	StatusSuppressed
)

var statusNames = [...]string{"placed", "forced", "suppressed"}

// String returns the status serialization name.
func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

// Placement is the final outcome for one element.
type Placement struct {
	ElementID string
	Kind      Kind
	Status    Status

	// Center and Rotation are set for placed and forced elements.
	Center   geom.Point
	Rotation float64

	// Box is the committed conflict box, padding excluded.
	Box geom.Rect

	// Rank is the ordinal of the accepted candidate in the element's
	// candidate list.
	Rank int

	// Dir is the compass direction of the accepted candidate for
	// point-anchored elements; HasDir marks it valid.
	Dir    anchor.Direction
	HasDir bool

	// Overlap is the total padded overlap area for forced placements.
	Overlap float64

	// Reason explains a suppression.
	Reason string

	// BlockedBy lists the distinct element IDs whose boxes rejected at
	// least one of this element's candidates, sorted.
	BlockedBy []string
}

// HasDirection reports whether the placement took the given compass
// direction.
func (p Placement) HasDirection(d anchor.Direction) bool {
	return p.HasDir && p.Dir == d
}

// Stats aggregates the outcome counts of one pass.
type Stats struct {
	Total      int
	Placed     int
	Forced     int
	Suppressed int
}

// Result is the completed output of one resolution pass: exactly one
// placement per input element (companion placements follow their host),
// in input order. Read-only once returned.
type Result struct {
	Placements []Placement
	Stats      Stats

	byID map[string]int
}

// Get returns the placement for an element ID.
func (r *Result) Get(id string) (Placement, bool) {
	idx, ok := r.byID[id]
	if !ok {
		return Placement{}, false
	}
	return r.Placements[idx], true
}

// ForcedIDs returns the IDs of forced elements in result order.
func (r *Result) ForcedIDs() []string {
	return r.idsWithStatus(StatusForced)
}

// SuppressedIDs returns the IDs of suppressed elements in result order.
func (r *Result) SuppressedIDs() []string {
	return r.idsWithStatus(StatusSuppressed)
}

func (r *Result) idsWithStatus(s Status) []string {
	var ids []string
	for _, p := range r.Placements {
		if p.Status == s {
			ids = append(ids, p.ElementID)
		}
	}
	return ids
}

// PlacedBoxes returns the unpadded boxes of all placed and forced
// elements, in result order. Feeding these into a later pass via
// [Manager.AddObstacle] reproduces this pass's occupied space.
func (r *Result) PlacedBoxes() []geom.Rect {
	var boxes []geom.Rect
	for _, p := range r.Placements {
		if p.Status == StatusPlaced || p.Status == StatusForced {
			boxes = append(boxes, p.Box)
		}
	}
	return boxes
}

func (r *Result) add(p Placement) {
	r.byID[p.ElementID] = len(r.Placements)
	r.Placements = append(r.Placements, p)

	r.Stats.Total++
	switch p.Status {
	case StatusPlaced:
		r.Stats.Placed++
	case StatusForced:
		r.Stats.Forced++
	case StatusSuppressed:
		r.Stats.Suppressed++
	}
}

func newResult() *Result {
	return &Result{byID: make(map[string]int)}
}
