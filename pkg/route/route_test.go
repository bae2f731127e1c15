package route

import (
	"testing"

	"github.com/matzehuels/placemat/pkg/anchor"
	"github.com/matzehuels/placemat/pkg/geom"
)

// fakeSpace is a plain slice-backed occupied set for routing tests.
type fakeSpace struct {
	boxes []geom.Rect
}

func (s *fakeSpace) Blocked(r geom.Rect) bool {
	for _, b := range s.boxes {
		if r.Intersects(b) {
			return true
		}
	}
	return false
}

func (s *fakeSpace) AddObstacle(r geom.Rect) {
	s.boxes = append(s.boxes, r)
}

func TestResolveClearTakesSmallestGap(t *testing.T) {
	arrow := Arrow{
		ID:      "a1",
		From:    geom.Point{X: 0, Y: 0},
		Target:  anchor.Circle{Center: geom.Point{X: 100, Y: 0}, Radius: 5},
		Bearing: 270, // approach from the west
	}

	got := Resolve([]Arrow{arrow}, &fakeSpace{}, Options{})
	if len(got) != 1 {
		t.Fatalf("got %d resolved arrows, want 1", len(got))
	}
	r := got[0]
	if r.Gap != 2 {
		t.Errorf("gap = %v, want 2 (smallest scale)", r.Gap)
	}
	if r.Forced {
		t.Error("clear route should not be forced")
	}

	// Tip retreats gap×radius west of the target center.
	wantTip := geom.Point{X: 90, Y: 0}
	if r.Tip.Distance(wantTip) > 1e-9 {
		t.Errorf("tip = %v, want %v", r.Tip, wantTip)
	}
	if len(r.Boxes) == 0 {
		t.Error("resolved arrow should carry swept boxes")
	}
}

func TestResolveWidensGapAroundObstacle(t *testing.T) {
	arrow := Arrow{
		ID:      "a1",
		From:    geom.Point{X: 0, Y: 0},
		Target:  anchor.Circle{Center: geom.Point{X: 100, Y: 0}, Radius: 10},
		Bearing: 270,
	}

	// Block only the stretch the smallest gap would cross.
	occ := &fakeSpace{boxes: []geom.Rect{{MinX: 75, MinY: -1, MaxX: 79, MaxY: 1}}}

	got := Resolve([]Arrow{arrow}, occ, Options{})
	r := got[0]
	if r.Gap != 3 {
		t.Errorf("gap = %v, want 3", r.Gap)
	}
	if r.Forced {
		t.Error("widened route should not be forced")
	}
}

func TestResolveForcesLargestGap(t *testing.T) {
	arrow := Arrow{
		ID:      "a1",
		From:    geom.Point{X: 0, Y: 0},
		Target:  anchor.Circle{Center: geom.Point{X: 100, Y: 0}, Radius: 5},
		Bearing: 270,
	}

	// A wall across the whole corridor blocks every gap variant.
	occ := &fakeSpace{boxes: []geom.Rect{{MinX: 50, MinY: -50, MaxX: 52, MaxY: 50}}}

	got := Resolve([]Arrow{arrow}, occ, Options{})
	r := got[0]
	if !r.Forced {
		t.Error("fully blocked route should be forced")
	}
	if r.Gap != 4 {
		t.Errorf("forced gap = %v, want 4 (largest scale)", r.Gap)
	}
}

func TestResolvePriorityOrderAndMutualAvoidance(t *testing.T) {
	target := anchor.Circle{Center: geom.Point{X: 100, Y: 0}, Radius: 5}

	// Two arrows share the same corridor; the high-priority one routes
	// first and claims it, pushing the second to a wider gap.
	arrows := []Arrow{
		{ID: "low", From: geom.Point{X: 0, Y: 0}, Target: target, Bearing: 270, Priority: 2},
		{ID: "high", From: geom.Point{X: 0, Y: 0}, Target: target, Bearing: 270, Priority: 1},
	}

	got := Resolve(arrows, &fakeSpace{}, Options{})
	if got[0].ID != "low" || got[1].ID != "high" {
		t.Fatal("result should preserve input order")
	}
	if got[1].Gap != 2 {
		t.Errorf("high-priority gap = %v, want 2", got[1].Gap)
	}
	if got[0].Gap == 2 && !got[0].Forced {
		t.Error("low-priority arrow should not get the same clear corridor")
	}
}

func TestResolveDeterminism(t *testing.T) {
	target := anchor.Circle{Center: geom.Point{X: 80, Y: 40}, Radius: 6}
	arrows := []Arrow{
		{ID: "a", From: geom.Point{X: 0, Y: 0}, Target: target, Bearing: 225, Priority: 1, Curvature: 0.2},
		{ID: "b", From: geom.Point{X: 0, Y: 80}, Target: target, Bearing: 315, Priority: 2},
	}

	first := Resolve(arrows, &fakeSpace{}, Options{})
	second := Resolve(arrows, &fakeSpace{}, Options{})

	for i := range first {
		if first[i].Gap != second[i].Gap || first[i].Tip != second[i].Tip {
			t.Fatalf("pass %d differs between runs", i)
		}
		for j := range first[i].Points {
			if first[i].Points[j] != second[i].Points[j] {
				t.Fatalf("arrow %s point %d differs between runs", first[i].ID, j)
			}
		}
	}
}

func TestSweptBoxes(t *testing.T) {
	pts := []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	boxes := SweptBoxes(pts, 4)
	if len(boxes) != 2 {
		t.Fatalf("got %d boxes, want 2", len(boxes))
	}

	want := geom.Rect{MinX: -2, MinY: -2, MaxX: 12, MaxY: 2}
	if boxes[0] != want {
		t.Errorf("first box = %v, want %v", boxes[0], want)
	}

	if SweptBoxes(pts[:1], 4) != nil {
		t.Error("single point should yield no boxes")
	}
}
