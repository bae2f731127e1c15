package scene

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/placemat/pkg/geom"
)

func TestSceneFileRoundTrip(t *testing.T) {
	s := testScene()
	path := filepath.Join(t.TempDir(), "scene.json")

	if err := WriteSceneFile(s, path); err != nil {
		t.Fatalf("WriteSceneFile() error: %v", err)
	}

	got, err := ReadSceneFile(path)
	if err != nil {
		t.Fatalf("ReadSceneFile() error: %v", err)
	}

	if !reflect.DeepEqual(got, s) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, s)
	}
}

func TestReadSceneRejectsInvalid(t *testing.T) {
	// Syntactically valid JSON, semantically broken scene.
	data := `{"name": "Broken", "extent": {"max_x": 100, "max_y": 100},
		"campaigns": [{"id": "c1", "name": "March", "to": "nowhere"}]}`

	if _, err := ReadScene(strings.NewReader(data)); err == nil {
		t.Fatal("ReadScene() = nil error, want validation failure")
	}
}

func TestReadSceneRejectsMalformedJSON(t *testing.T) {
	if _, err := ReadScene(strings.NewReader("{not json")); err == nil {
		t.Fatal("ReadScene() = nil error, want decode failure")
	}
}

func TestMarshalSceneDeterminism(t *testing.T) {
	s := testScene()

	a, err := MarshalScene(s)
	if err != nil {
		t.Fatalf("MarshalScene() error: %v", err)
	}
	b, err := MarshalScene(s)
	if err != nil {
		t.Fatalf("MarshalScene() error: %v", err)
	}

	if !bytes.Equal(a, b) {
		t.Error("MarshalScene() output differs between calls")
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	l := Layout{
		Scene:  "Campaign of 1812",
		Extent: Extent{MaxX: 800, MaxY: 600},
		Placements: []Placement{
			{
				ID: "moscow", Kind: "point-label", Status: StatusPlaced,
				Text: "Moscow", X: 712, Y: 412,
				Box: Box{MinX: 700, MinY: 406, MaxX: 724, MaxY: 418},
			},
			{
				ID: "berezina", Kind: "path-label", Status: StatusSuppressed,
				Reason: "no overlap-free candidate", BlockedBy: []string{"moscow"},
			},
		},
		Routes: []Route{
			{ID: "advance", Points: []geom.Point{{X: 50, Y: 300}, {X: 680, Y: 395}}, Tip: geom.Point{X: 680, Y: 395}, Gap: 2},
		},
		Stats: Stats{Total: 2, Placed: 1, Suppressed: 1},
	}

	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatalf("WriteLayoutFile() error: %v", err)
	}

	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile() error: %v", err)
	}

	if !reflect.DeepEqual(got, l) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, l)
	}
}

func TestUnmarshalLayoutRequiresScene(t *testing.T) {
	if _, err := UnmarshalLayout([]byte(`{"placements": []}`)); err == nil {
		t.Fatal("UnmarshalLayout() = nil error, want missing scene failure")
	}
}

func TestBoxRectRoundTrip(t *testing.T) {
	r := geom.Rect{MinX: 1, MinY: 2, MaxX: 3, MaxY: 4}
	if got := BoxFromRect(r).Rect(); got != r {
		t.Errorf("Box round trip = %v, want %v", got, r)
	}
}
