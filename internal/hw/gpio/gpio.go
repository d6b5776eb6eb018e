package gpio

import (
	"fmt"
	"sync"

	"github.com/cjeanneret/MenuGo/internal/debug"
)

// Level represents the logical state of a GPIO pin.
type Level bool

const (
	Low  Level = false
	High Level = true
)

// PinMode indicates how a GPIO is configured.
type PinMode int

const (
	Input PinMode = iota
	InputPullUp
	Output
)

// Driver defines the abstract interface for controlling GPIOs.
// This allows plugging in a real Raspberry Pi implementation
// or a mock for development on PC.
type Driver interface {
	SetupPin(pin int, mode PinMode) error
	WritePin(pin int, level Level) error
	ReadPin(pin int) (Level, error)
	Close() error
}

// MockDriver is a test implementation backed by an in-memory pin map.
// Used for development on PC or testing: levels can be set from tests
// (or the web input endpoint) and read back through the Driver interface.
// Pull-up inputs idle High, plain inputs idle Low, matching the wiring
// the real drivers assume.
type MockDriver struct {
	mu     sync.Mutex
	modes  map[int]PinMode
	levels map[int]Level
}

// NewDriver creates a GPIO driver based on the configured backend name:
// "mock" (dev/test), "rpio" (/dev/gpiomem memory-mapped access) or
// "gpiocdev" (character device, chip names the gpiochip to use).
func NewDriver(backend, chip string) (Driver, error) {
	switch backend {
	case "mock":
		debug.Info("Using MOCK GPIO driver (development mode)")
		return NewMockDriver(), nil
	case "rpio":
		return NewRPiRealDriver()
	case "gpiocdev":
		return NewCdevDriver(chip)
	default:
		return nil, fmt.Errorf("unknown gpio backend: %q (want mock, rpio or gpiocdev)", backend)
	}
}

// NewMockDriver creates a mock driver with all pins unset.
func NewMockDriver() *MockDriver {
	return &MockDriver{
		modes:  make(map[int]PinMode),
		levels: make(map[int]Level),
	}
}

// SetLevel forces a pin level, simulating the external signal.
func (m *MockDriver) SetLevel(pin int, level Level) {
	m.mu.Lock()
	m.levels[pin] = level
	m.mu.Unlock()
}

func (m *MockDriver) SetupPin(pin int, mode PinMode) error {
	debug.GPIO("SetupPin", pin, mode)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modes[pin] = mode
	if _, ok := m.levels[pin]; !ok {
		// Idle level depends on wiring: pull-up inputs rest High.
		if mode == InputPullUp {
			m.levels[pin] = High
		} else {
			m.levels[pin] = Low
		}
	}
	return nil
}

func (m *MockDriver) WritePin(pin int, level Level) error {
	debug.GPIO("WritePin", pin, level)
	m.mu.Lock()
	m.levels[pin] = level
	m.mu.Unlock()
	return nil
}

func (m *MockDriver) ReadPin(pin int) (Level, error) {
	m.mu.Lock()
	level := m.levels[pin]
	m.mu.Unlock()
	debug.GPIO("ReadPin", pin, level)
	return level, nil
}

func (m *MockDriver) Close() error {
	debug.Trace("GPIO Close (mock)")
	return nil
}
