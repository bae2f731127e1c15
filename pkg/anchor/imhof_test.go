package anchor

import (
	"math"
	"testing"

	"github.com/matzehuels/placemat/pkg/geom"
)

func TestImhofOrder(t *testing.T) {
	want := []string{"NE", "E", "NW", "W", "SE", "SW", "N", "S"}
	for i, d := range ImhofOrder {
		if d.String() != want[i] {
			t.Errorf("ImhofOrder[%d] = %s, want %s", i, d, want[i])
		}
	}
}

func TestPointCandidatesOrder(t *testing.T) {
	cands := PointCandidates(geom.Point{X: 100, Y: 100}, 6, 8, 4)
	if len(cands) != 8 {
		t.Fatalf("PointCandidates() returned %d candidates, want 8", len(cands))
	}
	for i, c := range cands {
		if c.Dir != ImhofOrder[i] {
			t.Errorf("candidate %d direction = %s, want %s", i, c.Dir, ImhofOrder[i])
		}
	}
}

func TestPointCandidatesGeometry(t *testing.T) {
	a := geom.Point{X: 0, Y: 0}
	cands := PointCandidates(a, 10, 8, 4)

	byDir := map[Direction]PointCandidate{}
	for _, c := range cands {
		byDir[c.Dir] = c
	}

	// Cardinal candidates keep the near box edge at the clearance radius.
	if e := byDir[E]; e.Box.MinX != 10 || e.Center.Y != 0 {
		t.Errorf("E candidate box MinX = %v, center Y = %v; want 10, 0", e.Box.MinX, e.Center.Y)
	}
	if w := byDir[W]; w.Box.MaxX != -10 || w.Center.Y != 0 {
		t.Errorf("W candidate box MaxX = %v, center Y = %v; want -10, 0", w.Box.MaxX, w.Center.Y)
	}
	if n := byDir[N]; n.Box.MinY != 10 || n.Center.X != 0 {
		t.Errorf("N candidate box MinY = %v, center X = %v; want 10, 0", n.Box.MinY, n.Center.X)
	}
	if s := byDir[S]; s.Box.MaxY != -10 || s.Center.X != 0 {
		t.Errorf("S candidate box MaxY = %v, center X = %v; want -10, 0", s.Box.MaxY, s.Center.X)
	}

	// Diagonal candidates put the near box corner on the 45° circle point.
	rd := 10 * math.Sqrt2 / 2
	if ne := byDir[NE]; math.Abs(ne.Box.MinX-rd) > 1e-9 || math.Abs(ne.Box.MinY-rd) > 1e-9 {
		t.Errorf("NE candidate corner = (%v, %v), want (%v, %v)", ne.Box.MinX, ne.Box.MinY, rd, rd)
	}
	if sw := byDir[SW]; math.Abs(sw.Box.MaxX+rd) > 1e-9 || math.Abs(sw.Box.MaxY+rd) > 1e-9 {
		t.Errorf("SW candidate corner = (%v, %v), want (%v, %v)", sw.Box.MaxX, sw.Box.MaxY, -rd, -rd)
	}
}

func TestPointCandidatesDisjointFromAnchor(t *testing.T) {
	a := geom.Point{X: 50, Y: 50}
	for _, c := range PointCandidates(a, 5, 12, 6) {
		if c.Box.ContainsPoint(a) {
			t.Errorf("%s candidate box %+v contains the anchor", c.Dir, c.Box)
		}
	}
}

func TestDirectionFromBearing(t *testing.T) {
	tests := []struct {
		name    string
		bearing float64
		want    Direction
	}{
		{name: "due north", bearing: 0, want: N},
		{name: "due east", bearing: 90, want: E},
		{name: "northeast", bearing: 45, want: NE},
		{name: "near northeast", bearing: 50, want: NE},
		{name: "due south", bearing: 180, want: S},
		{name: "southwest", bearing: 225, want: SW},
		{name: "wraps negative", bearing: -45, want: NW},
		{name: "wraps past full turn", bearing: 405, want: NE},
		{name: "rounds back to north", bearing: 350, want: N},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DirectionFromBearing(tt.bearing); got != tt.want {
				t.Errorf("DirectionFromBearing(%v) = %s, want %s", tt.bearing, got, tt.want)
			}
		})
	}
}

func TestDirectionBearing(t *testing.T) {
	tests := []struct {
		dir  Direction
		want float64
	}{
		{N, 0}, {NE, 45}, {E, 90}, {SE, 135}, {S, 180}, {SW, 225}, {W, 270}, {NW, 315},
	}
	for _, tt := range tests {
		if got := tt.dir.Bearing(); got != tt.want {
			t.Errorf("%s.Bearing() = %v, want %v", tt.dir, got, tt.want)
		}
	}
}
