package layout

import "testing"

func TestConfigValidateFillsDefaults(t *testing.T) {
	cfg := Config{}
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}

	if cfg.Clearance[KindPointLabel] != DefaultPointClearance {
		t.Errorf("Clearance[point] = %v, want %v", cfg.Clearance[KindPointLabel], DefaultPointClearance)
	}
	if cfg.Fallback[KindPathLabel] != FallbackSuppress {
		t.Errorf("Fallback[path] = %v, want suppress", cfg.Fallback[KindPathLabel])
	}
	if len(cfg.RingSteps) == 0 || len(cfg.PairSteps) == 0 {
		t.Error("step lists should be filled")
	}
}

func TestConfigZeroPaddingIsExplicit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Padding = 0
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if cfg.Padding != 0 {
		t.Errorf("Padding = %v, want 0 (zero means boxes may touch, not unset)", cfg.Padding)
	}
}

func TestConfigValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative padding", func(c *Config) { c.Padding = -1 }},
		{"zero clearance", func(c *Config) { c.Clearance[KindPointLabel] = 0 }},
		{"unknown fallback", func(c *Config) { c.Fallback[KindPointLabel] = "explode" }},
		{"negative ring step", func(c *Config) { c.RingSteps = []float64{1.0, -0.5} }},
		{"zero pair step", func(c *Config) { c.PairSteps = []float64{0} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.ValidateAndSetDefaults(); err == nil {
				t.Error("ValidateAndSetDefaults() should reject invalid config")
			}
		})
	}
}
