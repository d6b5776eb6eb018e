package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// EncoderConfig holds the wiring of the quadrature encoder.
type EncoderConfig struct {
	PinA int `yaml:"pin_a"` // channel A (CLK), BCM numbering
	PinB int `yaml:"pin_b"` // channel B (DT), BCM numbering
}

// ButtonConfig holds the wiring and debounce policy of the select button.
// The button is wired active-low against the internal pull-up.
type ButtonConfig struct {
	Pin        int `yaml:"pin"`         // BCM numbering
	DebounceMs int `yaml:"debounce_ms"` // cooldown between accepted presses, ms
}

// MenuConfig holds the static menu layout.
type MenuConfig struct {
	RootCount  int      `yaml:"root_count"`
	ChildCount int      `yaml:"child_count"`           // includes the Return entry (last index)
	RootLabels []string `yaml:"root_labels,omitempty"` // optional, must match root_count
	ChildLabel string   `yaml:"child_label,omitempty"` // optional format, e.g. "Subitem %d-%d"
}

// GPIOConfig selects the GPIO backend.
type GPIOConfig struct {
	Backend string `yaml:"backend"` // "mock" (dev/test), "rpio" or "gpiocdev"
	Chip    string `yaml:"chip"`    // gpiochip name for the gpiocdev backend
}

// DefaultsConfig contains generic parameters (tick, debug).
type DefaultsConfig struct {
	TickMs     int `yaml:"tick_ms"`     // polling period
	DebugLevel int `yaml:"debug_level"` // debug level 0-4 (0=off, 1=info, 2=live, 3=verbose, 4=trace)
}

// Config aggregates all application configuration.
type Config struct {
	Encoder  EncoderConfig  `yaml:"encoder"`
	Button   ButtonConfig   `yaml:"button"`
	Menu     MenuConfig     `yaml:"menu"`
	GPIO     GPIOConfig     `yaml:"gpio"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// Load reads a YAML file and returns the configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	// Basic validation
	if cfg.GPIO.Backend == "" {
		cfg.GPIO.Backend = "mock"
	}
	switch cfg.GPIO.Backend {
	case "mock", "rpio", "gpiocdev":
	default:
		return nil, fmt.Errorf("gpio.backend must be mock, rpio or gpiocdev, got %q", cfg.GPIO.Backend)
	}
	if cfg.GPIO.Chip == "" {
		cfg.GPIO.Chip = "gpiochip0"
	}

	if cfg.GPIO.Backend != "mock" {
		if cfg.Encoder.PinA <= 0 || cfg.Encoder.PinB <= 0 {
			return nil, fmt.Errorf("encoder.pin_a and encoder.pin_b are required")
		}
		if cfg.Button.Pin <= 0 {
			return nil, fmt.Errorf("button.pin is required")
		}
		if cfg.Encoder.PinA == cfg.Encoder.PinB ||
			cfg.Encoder.PinA == cfg.Button.Pin ||
			cfg.Encoder.PinB == cfg.Button.Pin {
			return nil, fmt.Errorf("encoder and button pins must be distinct (a=%d b=%d button=%d)",
				cfg.Encoder.PinA, cfg.Encoder.PinB, cfg.Button.Pin)
		}
	}

	// Reference layout: 5 root items, 4 child items (3 + Return)
	if cfg.Menu.RootCount == 0 {
		cfg.Menu.RootCount = 5
	}
	if cfg.Menu.ChildCount == 0 {
		cfg.Menu.ChildCount = 4
	}
	if cfg.Menu.RootCount < 1 {
		return nil, fmt.Errorf("menu.root_count must be >= 1, got %d", cfg.Menu.RootCount)
	}
	if cfg.Menu.ChildCount < 2 {
		return nil, fmt.Errorf("menu.child_count must be >= 2, got %d", cfg.Menu.ChildCount)
	}

	if cfg.Button.DebounceMs < 0 {
		return nil, fmt.Errorf("button.debounce_ms must be >= 0, got %d", cfg.Button.DebounceMs)
	}
	if cfg.Button.DebounceMs == 0 {
		cfg.Button.DebounceMs = 300 // reference debounce window
	}

	if cfg.Defaults.TickMs < 0 {
		return nil, fmt.Errorf("defaults.tick_ms must be >= 0, got %d", cfg.Defaults.TickMs)
	}
	if cfg.Defaults.TickMs == 0 {
		cfg.Defaults.TickMs = 20 // reference refresh period
	}
	if cfg.Defaults.TickMs >= cfg.Button.DebounceMs {
		return nil, fmt.Errorf("defaults.tick_ms (%d) must be shorter than button.debounce_ms (%d)",
			cfg.Defaults.TickMs, cfg.Button.DebounceMs)
	}

	if cfg.Defaults.DebugLevel < 0 || cfg.Defaults.DebugLevel > 4 {
		return nil, fmt.Errorf("defaults.debug_level must be between 0 and 4, got %d", cfg.Defaults.DebugLevel)
	}

	return &cfg, nil
}

// DebounceDelay returns the button cooldown window.
func (c *Config) DebounceDelay() time.Duration {
	return time.Duration(c.Button.DebounceMs) * time.Millisecond
}

// TickPeriod returns the polling period.
func (c *Config) TickPeriod() time.Duration {
	return time.Duration(c.Defaults.TickMs) * time.Millisecond
}
