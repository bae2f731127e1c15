package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/placemat/pkg/scene"
)

func inspectLayout() scene.Layout {
	return scene.Layout{
		Scene: "Campaign of 1812",
		Placements: []scene.Placement{
			{ID: "moscow", Kind: "city", Status: scene.StatusPlaced, Text: "Moscow", X: 800, Y: 600},
			{ID: "fire", Kind: "event_label", Status: scene.StatusForced, Text: "City burns", X: 810, Y: 590, BlockedBy: []string{"moscow"}},
			{ID: "berezina", Kind: "path_label", Status: scene.StatusSuppressed, Reason: "no clear candidate"},
		},
		Stats: scene.Stats{Total: 3, Placed: 1, Forced: 1, Suppressed: 1},
	}
}

func keyPress(k string) tea.KeyMsg {
	if len(k) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	switch k {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{}
}

func TestLayoutModelNavigation(t *testing.T) {
	m := NewLayoutModel(inspectLayout())

	next, _ := m.Update(keyPress("j"))
	m = next.(LayoutModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor after j = %d, want 1", m.Cursor)
	}

	next, _ = m.Update(keyPress("j"))
	m = next.(LayoutModel)
	next, _ = m.Update(keyPress("j"))
	m = next.(LayoutModel)
	if m.Cursor != 2 {
		t.Errorf("Cursor should clamp at last row, got %d", m.Cursor)
	}

	next, _ = m.Update(keyPress("k"))
	m = next.(LayoutModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor after k = %d, want 1", m.Cursor)
	}
}

func TestLayoutModelFilter(t *testing.T) {
	m := NewLayoutModel(inspectLayout())
	if len(m.Rows) != 3 {
		t.Fatalf("unfiltered rows = %d, want 3", len(m.Rows))
	}

	next, _ := m.Update(keyPress("tab"))
	m = next.(LayoutModel)
	if len(m.Rows) != 1 || m.Rows[0].Status != scene.StatusPlaced {
		t.Errorf("placed filter rows = %v", m.Rows)
	}

	next, _ = m.Update(keyPress("tab"))
	m = next.(LayoutModel)
	if len(m.Rows) != 1 || m.Rows[0].Status != scene.StatusForced {
		t.Errorf("forced filter rows = %v", m.Rows)
	}

	// Cycling through suppressed and back to all
	next, _ = m.Update(keyPress("tab"))
	m = next.(LayoutModel)
	next, _ = m.Update(keyPress("tab"))
	m = next.(LayoutModel)
	if len(m.Rows) != 3 {
		t.Errorf("filter should cycle back to all, rows = %d", len(m.Rows))
	}
}

func TestLayoutModelQuit(t *testing.T) {
	m := NewLayoutModel(inspectLayout())
	_, cmd := m.Update(keyPress("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
}

func TestLayoutModelView(t *testing.T) {
	m := NewLayoutModel(inspectLayout())
	view := m.View()

	for _, want := range []string{"Campaign of 1812", "moscow", "fire", "berezina", "1 placed"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
