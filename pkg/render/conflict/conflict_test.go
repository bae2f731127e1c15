package conflict

import (
	"strings"
	"testing"

	"github.com/matzehuels/placemat/pkg/scene"
)

func conflictLayout() scene.Layout {
	return scene.Layout{
		Scene: "Test",
		Placements: []scene.Placement{
			{ID: "moscow", Status: scene.StatusPlaced, Text: "Moscow"},
			{ID: "fire", Status: scene.StatusForced, Text: "City burns", BlockedBy: []string{"moscow"}},
			{ID: "berezina", Status: scene.StatusSuppressed, BlockedBy: []string{"moscow", "fire"}},
			{ID: "lonely", Status: scene.StatusPlaced, Text: "Lonely"},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(conflictLayout(), Options{})

	if !strings.HasPrefix(dot, "digraph conflicts {") {
		t.Fatal("output should be a digraph")
	}
	for _, want := range []string{
		`"fire" -> "moscow";`,
		`"berezina" -> "moscow";`,
		`"berezina" -> "fire";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing edge %s", want)
		}
	}

	if !strings.Contains(dot, "fillcolor=orange") {
		t.Error("forced nodes should fill orange")
	}
	if !strings.Contains(dot, "fillcolor=lightgrey") {
		t.Error("suppressed nodes should fill grey")
	}
	if strings.Contains(dot, `"lonely"`) {
		t.Error("uncontested elements should be omitted by default")
	}
}

func TestToDOTAll(t *testing.T) {
	dot := ToDOT(conflictLayout(), Options{All: true})
	if !strings.Contains(dot, `"lonely"`) {
		t.Error("Options.All should include uncontested elements")
	}
}

func TestToDOTEmptyLayout(t *testing.T) {
	dot := ToDOT(scene.Layout{Scene: "Empty"}, Options{})
	if !strings.Contains(dot, "digraph conflicts {") || !strings.Contains(dot, "}") {
		t.Error("empty layout should still produce a valid digraph")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?>` + "\n" +
		`<svg width="124pt" height="82pt" viewBox="0.00 0.00 124.00 82.00" xmlns="http://www.w3.org/2000/svg">` +
		`<g></g></svg>`)

	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 124.00 82.00" width="124" height="82"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if strings.Contains(out, "pt") {
		t.Error("point units should be stripped from the svg tag")
	}
}

func TestNormalizeViewBoxNoMatch(t *testing.T) {
	in := []byte("<svg><g/></svg>")
	if got := string(normalizeViewBox(in)); got != string(in) {
		t.Errorf("svg without viewBox should pass through, got %s", got)
	}
}
