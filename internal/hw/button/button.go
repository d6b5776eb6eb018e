package button

import (
	"time"

	"github.com/cjeanneret/MenuGo/internal/debug"
	"github.com/cjeanneret/MenuGo/internal/hw/gpio"
)

// Config holds the hardware configuration for a push-button.
type Config struct {
	Pin           int
	DebounceDelay time.Duration // cooldown between accepted presses. 0 = default 300ms.
}

// State holds the filter's history: the time of the last accepted press.
type State struct {
	lastAccepted time.Time
}

// Poll applies the debounce filter to one raw sample. It accepts the
// press (returns true) only when the raw signal is pressed AND more than
// delay has elapsed since the last accepted press, and records the
// acceptance time.
//
// The filter is level-triggered with a cooldown, not edge-triggered: no
// release is required before re-arming, so a held button fires again once
// per delay window. This matches the behavior of the hardware this was
// built for.
func Poll(pressedRaw bool, now time.Time, s *State, delay time.Duration) bool {
	if pressedRaw && now.Sub(s.lastAccepted) > delay {
		s.lastAccepted = now
		return true
	}
	return false
}

// Button polls a debounced push-button through a GPIO driver.
// The pin is wired active-low with the internal pull-up: Low = pressed.
type Button struct {
	gpio  gpio.Driver
	cfg   Config
	state State
}

// New creates a button on the given pin, configured with the internal
// pull-up resistor.
func New(g gpio.Driver, cfg Config) *Button {
	_ = g.SetupPin(cfg.Pin, gpio.InputPullUp)

	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 300 * time.Millisecond
	}

	return &Button{
		gpio: g,
		cfg:  cfg,
	}
}

// Poll samples the pin once and returns true when a debounced press is
// accepted at time now.
func (b *Button) Poll(now time.Time) (bool, error) {
	level, err := b.gpio.ReadPin(b.cfg.Pin)
	if err != nil {
		return false, err
	}

	pressed := Poll(level == gpio.Low, now, &b.state, b.cfg.DebounceDelay)
	if pressed {
		debug.Press()
	}
	return pressed, nil
}
