package gpio

import (
	"fmt"

	"github.com/cjeanneret/MenuGo/internal/debug"
	"github.com/warthog618/go-gpiocdev"
)

// CdevDriver is the real implementation using the character device
// (/dev/gpiochipN) via go-gpiocdev. Works on Raspberry Pi 5 and other
// boards where /dev/gpiomem memory mapping is not available.
type CdevDriver struct {
	chip  string
	lines map[int]*gpiocdev.Line
}

// NewCdevDriver creates a character-device GPIO driver on the given chip
// (e.g. "gpiochip0").
func NewCdevDriver(chip string) (*CdevDriver, error) {
	if chip == "" {
		chip = "gpiochip0"
	}
	debug.Info("Initializing character-device GPIO driver (%s)", chip)

	return &CdevDriver{
		chip:  chip,
		lines: make(map[int]*gpiocdev.Line),
	}, nil
}

func (c *CdevDriver) SetupPin(pin int, mode PinMode) error {
	debug.GPIO("SetupPin", pin, mode)

	// Re-configuring a line requires releasing the previous request.
	if old, ok := c.lines[pin]; ok {
		_ = old.Close()
		delete(c.lines, pin)
	}

	var (
		line *gpiocdev.Line
		err  error
	)
	switch mode {
	case Input:
		line, err = gpiocdev.RequestLine(c.chip, pin, gpiocdev.AsInput)
	case InputPullUp:
		line, err = gpiocdev.RequestLine(c.chip, pin, gpiocdev.AsInput, gpiocdev.WithPullUp)
	case Output:
		line, err = gpiocdev.RequestLine(c.chip, pin, gpiocdev.AsOutput(0))
	default:
		return fmt.Errorf("unknown pin mode: %d", mode)
	}
	if err != nil {
		return fmt.Errorf("request line %d on %s: %w", pin, c.chip, err)
	}

	c.lines[pin] = line
	return nil
}

func (c *CdevDriver) WritePin(pin int, level Level) error {
	debug.GPIO("WritePin", pin, level)

	line, ok := c.lines[pin]
	if !ok {
		if err := c.SetupPin(pin, Output); err != nil {
			return err
		}
		line = c.lines[pin]
	}

	v := 0
	if level == High {
		v = 1
	}
	return line.SetValue(v)
}

func (c *CdevDriver) ReadPin(pin int) (Level, error) {
	line, ok := c.lines[pin]
	if !ok {
		if err := c.SetupPin(pin, Input); err != nil {
			return Low, err
		}
		line = c.lines[pin]
	}

	v, err := line.Value()
	if err != nil {
		return Low, fmt.Errorf("read line %d: %w", pin, err)
	}
	debug.GPIO("ReadPin", pin, v)
	if v != 0 {
		return High, nil
	}
	return Low, nil
}

func (c *CdevDriver) Close() error {
	debug.Trace("GPIO Close (cdev driver)")

	var firstErr error
	for pin, line := range c.lines {
		debug.Verbose("Releasing line %d", pin)
		if err := line.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.lines = make(map[int]*gpiocdev.Line)
	return firstErr
}
