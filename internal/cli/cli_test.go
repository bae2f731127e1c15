package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/placemat/pkg/pipeline"
)

func TestCacheDir(t *testing.T) {
	// Clear XDG_CACHE_HOME to test default behavior
	oldXdg := os.Getenv("XDG_CACHE_HOME")
	os.Unsetenv("XDG_CACHE_HOME")
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_CACHE_HOME", oldXdg)
		}
	}()

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := "/tmp/custom-cache"
	oldXdg := os.Getenv("XDG_CACHE_HOME")
	os.Setenv("XDG_CACHE_HOME", customCache)
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_CACHE_HOME", oldXdg)
		} else {
			os.Unsetenv("XDG_CACHE_HOME")
		}
	}()

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestDataDir(t *testing.T) {
	oldXdg := os.Getenv("XDG_DATA_HOME")
	os.Unsetenv("XDG_DATA_HOME")
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_DATA_HOME", oldXdg)
		}
	}()

	dir, err := dataDir()
	if err != nil {
		t.Fatalf("dataDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".local", "share", appName, "runs")
	if dir != expected {
		t.Errorf("dataDir() = %q, want %q", dir, expected)
	}
}

func TestDataDirXDG(t *testing.T) {
	customData := "/tmp/custom-data"
	oldXdg := os.Getenv("XDG_DATA_HOME")
	os.Setenv("XDG_DATA_HOME", customData)
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_DATA_HOME", oldXdg)
		} else {
			os.Unsetenv("XDG_DATA_HOME")
		}
	}()

	dir, err := dataDir()
	if err != nil {
		t.Fatalf("dataDir() error: %v", err)
	}

	expected := filepath.Join(customData, appName, "runs")
	if dir != expected {
		t.Errorf("dataDir() with XDG_DATA_HOME = %q, want %q", dir, expected)
	}
}

func TestLoadRulesDefaults(t *testing.T) {
	rules, err := loadRules("")
	if err != nil {
		t.Fatalf("loadRules(\"\") error: %v", err)
	}
	if rules.Padding != pipeline.DefaultRules().Padding {
		t.Error("empty path should return default rules")
	}
}

func TestLoadRulesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.toml")
	if err := os.WriteFile(path, []byte("padding = 3.0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	rules, err := loadRules(path)
	if err != nil {
		t.Fatalf("loadRules() error: %v", err)
	}
	if rules.Padding != 3.0 {
		t.Errorf("Padding = %v, want 3.0", rules.Padding)
	}
}

func TestLoadRulesMissingFile(t *testing.T) {
	if _, err := loadRules("/nonexistent/rules.toml"); err == nil {
		t.Error("missing rule file should error")
	}
}

func TestNewRunnerNoCache(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	runner, err := c.newRunner(true)
	if err != nil {
		t.Fatalf("newRunner(true) error: %v", err)
	}
	defer runner.Close()
	if runner == nil {
		t.Fatal("newRunner returned nil")
	}
}

func TestRootCommandStructure(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	root := c.RootCommand()

	if root.Use != "placemat" {
		t.Errorf("root.Use = %q, want placemat", root.Use)
	}

	want := []string{"layout", "inspect", "conflicts", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if strings.HasPrefix(sub.Use, name) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}
