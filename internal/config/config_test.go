package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const validYAML = `
encoder:
  pin_a: 25
  pin_b: 33
button:
  pin: 32
  debounce_ms: 300
menu:
  root_count: 5
  child_count: 4
gpio:
  backend: rpio
defaults:
  tick_ms: 20
  debug_level: 2
`

func TestLoad_Valid(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Encoder.PinA != 25 || cfg.Encoder.PinB != 33 {
		t.Errorf("encoder pins = %d/%d, want 25/33", cfg.Encoder.PinA, cfg.Encoder.PinB)
	}
	if cfg.Button.Pin != 32 {
		t.Errorf("button pin = %d, want 32", cfg.Button.Pin)
	}
	if cfg.Menu.RootCount != 5 || cfg.Menu.ChildCount != 4 {
		t.Errorf("menu = %d/%d, want 5/4", cfg.Menu.RootCount, cfg.Menu.ChildCount)
	}
	if cfg.GPIO.Backend != "rpio" {
		t.Errorf("backend = %q, want rpio", cfg.GPIO.Backend)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.GPIO.Backend != "mock" {
		t.Errorf("backend = %q, want mock", cfg.GPIO.Backend)
	}
	if cfg.GPIO.Chip != "gpiochip0" {
		t.Errorf("chip = %q, want gpiochip0", cfg.GPIO.Chip)
	}
	if cfg.Menu.RootCount != 5 || cfg.Menu.ChildCount != 4 {
		t.Errorf("menu = %d/%d, want reference 5/4", cfg.Menu.RootCount, cfg.Menu.ChildCount)
	}
	if cfg.Button.DebounceMs != 300 {
		t.Errorf("debounce = %d, want 300", cfg.Button.DebounceMs)
	}
	if cfg.Defaults.TickMs != 20 {
		t.Errorf("tick = %d, want 20", cfg.Defaults.TickMs)
	}
}

func TestLoad_DurationHelpers(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DebounceDelay() != 300*time.Millisecond {
		t.Errorf("DebounceDelay = %v, want 300ms", cfg.DebounceDelay())
	}
	if cfg.TickPeriod() != 20*time.Millisecond {
		t.Errorf("TickPeriod = %v, want 20ms", cfg.TickPeriod())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "menu: [broken")); err == nil {
		t.Error("expected error for malformed yaml, got nil")
	}
}

func TestLoad_UnknownBackend(t *testing.T) {
	if _, err := Load(writeConfig(t, "gpio:\n  backend: sysfs\n")); err == nil {
		t.Error("expected error for unknown backend, got nil")
	}
}

func TestLoad_RealBackendRequiresPins(t *testing.T) {
	cases := []string{
		// no pins at all
		"gpio:\n  backend: rpio\n",
		// missing button pin
		"gpio:\n  backend: gpiocdev\nencoder:\n  pin_a: 25\n  pin_b: 33\n",
	}
	for i, yaml := range cases {
		if _, err := Load(writeConfig(t, yaml)); err == nil {
			t.Errorf("case %d: expected error for missing pins, got nil", i)
		}
	}
}

func TestLoad_RejectsSharedPins(t *testing.T) {
	yaml := `
gpio:
  backend: rpio
encoder:
  pin_a: 25
  pin_b: 25
button:
  pin: 32
`
	if _, err := Load(writeConfig(t, yaml)); err == nil {
		t.Error("expected error for shared pins, got nil")
	}
}

func TestLoad_MockBackendNeedsNoPins(t *testing.T) {
	cfg, err := Load(writeConfig(t, "gpio:\n  backend: mock\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GPIO.Backend != "mock" {
		t.Errorf("backend = %q, want mock", cfg.GPIO.Backend)
	}
}

func TestLoad_InvalidMenuCounts(t *testing.T) {
	cases := []string{
		"menu:\n  root_count: -1\n",
		"menu:\n  root_count: 3\n  child_count: 1\n",
	}
	for i, yaml := range cases {
		if _, err := Load(writeConfig(t, yaml)); err == nil {
			t.Errorf("case %d: expected error for invalid counts, got nil", i)
		}
	}
}

func TestLoad_TickMustBeShorterThanDebounce(t *testing.T) {
	yaml := `
button:
  debounce_ms: 50
defaults:
  tick_ms: 50
`
	if _, err := Load(writeConfig(t, yaml)); err == nil {
		t.Error("expected error for tick >= debounce, got nil")
	}
}

func TestLoad_InvalidDebugLevel(t *testing.T) {
	if _, err := Load(writeConfig(t, "defaults:\n  debug_level: 7\n")); err == nil {
		t.Error("expected error for debug level 7, got nil")
	}
}
