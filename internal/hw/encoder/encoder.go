package encoder

import (
	"github.com/cjeanneret/MenuGo/internal/debug"
	"github.com/cjeanneret/MenuGo/internal/hw/gpio"
)

// Config holds the hardware configuration for a quadrature encoder.
type Config struct {
	PinA int // channel A (CLK)
	PinB int // channel B (DT)
}

// State holds the decoder's signal history: the channel A level seen on
// the previous sample. Continuously overwritten, never reset.
type State struct {
	lastA bool
}

// NewState creates decoder state primed with the current A level, so the
// first real sample does not register as a spurious edge.
func NewState(initialA bool) State {
	return State{lastA: initialA}
}

// Decode converts one sample of the two encoder channels into a step.
// It fires only on a channel A edge (current A differs from the stored
// previous A): +1 when B differs from A at the edge (clockwise), -1
// otherwise. The previous-A value is updated on every call.
//
// This is a single-edge decode, not full 4-state Gray decoding; it relies
// on the encoder's mechanical detents producing clean transitions and can
// miscount on electrically noisy ones. Kept deliberately simple.
func Decode(pinA, pinB bool, s *State) int {
	step := 0
	if pinA != s.lastA {
		if pinB != pinA {
			step = 1
		} else {
			step = -1
		}
	}
	s.lastA = pinA
	return step
}

// Encoder polls a quadrature encoder through a GPIO driver.
type Encoder struct {
	gpio  gpio.Driver
	cfg   Config
	state State
}

// New creates an encoder on the given pins. Both channels are configured
// as plain inputs and the decoder is primed with the current A level.
func New(g gpio.Driver, cfg Config) *Encoder {
	_ = g.SetupPin(cfg.PinA, gpio.Input)
	_ = g.SetupPin(cfg.PinB, gpio.Input)

	a, _ := g.ReadPin(cfg.PinA)

	return &Encoder{
		gpio:  g,
		cfg:   cfg,
		state: NewState(a == gpio.High),
	}
}

// Poll samples both channels once and returns the decoded step
// (-1, 0 or +1).
func (e *Encoder) Poll() (int, error) {
	a, err := e.gpio.ReadPin(e.cfg.PinA)
	if err != nil {
		return 0, err
	}
	b, err := e.gpio.ReadPin(e.cfg.PinB)
	if err != nil {
		return 0, err
	}

	step := Decode(a == gpio.High, b == gpio.High, &e.state)
	if step != 0 {
		debug.Step(step)
	}
	return step, nil
}
