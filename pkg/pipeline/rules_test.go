package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/placemat/pkg/layout"
)

func TestDefaultRulesValid(t *testing.T) {
	rules := DefaultRules()
	if err := rules.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}

	cfg := rules.LayoutConfig()
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("LayoutConfig() invalid: %v", err)
	}
	if cfg.Fallback[layout.KindPointLabel] != layout.FallbackForce {
		t.Error("point labels should force their least-overlap candidate by default")
	}
	if cfg.Fallback[layout.KindPathLabel] != layout.FallbackSuppress {
		t.Error("path labels should suppress by default")
	}
}

func TestLoadRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.toml")
	content := `
padding = 2.5
ring_steps = [1.0, 2.0]

[fonts]
city = [20, 16, 13, 11]
region = 18

[fallback]
point_label = "suppress"

[route]
thickness = 6.0
gap_scales = [2.0, 4.0]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write rules file: %v", err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules() error = %v", err)
	}

	if rules.Padding != 2.5 {
		t.Errorf("Padding = %v, want 2.5", rules.Padding)
	}
	if got := rules.cityFont(1); got != 20 {
		t.Errorf("cityFont(1) = %v, want 20", got)
	}
	if rules.Fonts.Region != 18 {
		t.Errorf("Fonts.Region = %v, want 18", rules.Fonts.Region)
	}
	if rules.Fallback.PointLabel != "suppress" {
		t.Errorf("Fallback.PointLabel = %q, want suppress", rules.Fallback.PointLabel)
	}
	if rules.Route.Thickness != 6.0 {
		t.Errorf("Route.Thickness = %v, want 6.0", rules.Route.Thickness)
	}

	// Unset fields take defaults.
	def := DefaultRules()
	if rules.Fonts.River != def.Fonts.River {
		t.Errorf("Fonts.River = %v, want default %v", rules.Fonts.River, def.Fonts.River)
	}
	if rules.Fallback.PathLabel != def.Fallback.PathLabel {
		t.Errorf("Fallback.PathLabel = %q, want default", rules.Fallback.PathLabel)
	}
}

func TestLoadRulesMissingFile(t *testing.T) {
	if _, err := LoadRules(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("LoadRules() should fail on a missing file")
	}
}

func TestRulesValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Rules)
	}{
		{"negative padding", func(r *Rules) { r.Padding = -1 }},
		{"zero city font", func(r *Rules) { r.Fonts.City = []float64{0} }},
		{"negative clearance", func(r *Rules) { r.Clearance.City = []float64{-2} }},
		{"unknown fallback", func(r *Rules) { r.Fallback.PointLabel = "explode" }},
		{"one sample", func(r *Rules) { r.Route.Samples = 1 }},
		{"negative gap scale", func(r *Rules) { r.Route.GapScales = []float64{-1} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := DefaultRules()
			tt.mutate(rules)
			if err := rules.ValidateAndSetDefaults(); err == nil {
				t.Error("ValidateAndSetDefaults() should reject invalid rules")
			}
		})
	}
}

func TestRulesHash(t *testing.T) {
	a := DefaultRules()
	b := DefaultRules()
	if a.Hash() != b.Hash() {
		t.Error("equal rule sets should hash identically")
	}

	b.Padding = 3
	if a.Hash() == b.Hash() {
		t.Error("changed rule sets should hash differently")
	}
}

func TestCityTables(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		level  int
		font   float64
		radius float64
		tier   int
	}{
		{1, 18, 10, layout.TierCityMajor},
		{2, 15, 8, layout.TierCityLarge},
		{3, 12, 6, layout.TierCityMid},
		{4, 10, 5, layout.TierCitySmall},
		// Out-of-table levels clamp.
		{9, 10, 5, layout.TierCitySmall},
	}

	for _, tt := range tests {
		if got := rules.cityFont(tt.level); got != tt.font {
			t.Errorf("cityFont(%d) = %v, want %v", tt.level, got, tt.font)
		}
		if got := rules.cityRadius(tt.level); got != tt.radius {
			t.Errorf("cityRadius(%d) = %v, want %v", tt.level, got, tt.radius)
		}
		if got := cityTier(tt.level); got != tt.tier {
			t.Errorf("cityTier(%d) = %v, want %v", tt.level, got, tt.tier)
		}
	}
}
