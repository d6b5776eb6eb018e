package controller

import (
	"context"
	"time"

	"github.com/cjeanneret/MenuGo/internal/debug"
	"github.com/cjeanneret/MenuGo/internal/hw/button"
	"github.com/cjeanneret/MenuGo/internal/hw/encoder"
	"github.com/cjeanneret/MenuGo/internal/logic/nav"
)

// Presenter consumes navigation events. Implementations apply the
// highlight, build or destroy the child list, etc. The snapshot is the
// machine state after the event was applied.
type Presenter interface {
	HandleEvent(evt nav.Event, snap nav.Snapshot)
}

// Input is a synthetic input, injected by the web layer when developing
// without hardware (mock GPIO driver).
type Input struct {
	Step  int  // -1, 0 or +1
	Press bool // activate
}

// Controller runs the polling loop: once per tick it samples the encoder
// and the button, feeds the results to the navigation machine, and fans
// out the produced events to the presenters. It is the single writer of
// the machine; injected inputs are queued and consumed inside the tick.
type Controller struct {
	encoder    *encoder.Encoder
	button     *button.Button
	machine    *nav.Machine
	presenters []Presenter
	tick       time.Duration

	inject chan Input
}

// New creates a controller. tick is the polling period; it must be short
// relative to the encoder step rate and the debounce delay, or steps are
// dropped. 0 = default 20ms.
func New(e *encoder.Encoder, b *button.Button, m *nav.Machine, tick time.Duration, presenters ...Presenter) *Controller {
	if tick <= 0 {
		tick = 20 * time.Millisecond
	}
	return &Controller{
		encoder:    e,
		button:     b,
		machine:    m,
		presenters: presenters,
		tick:       tick,
		inject:     make(chan Input, 16),
	}
}

// Inject queues a synthetic input for the next tick. Non-blocking: the
// input is dropped when the queue is full.
func (c *Controller) Inject(in Input) {
	select {
	case c.inject <- in:
	default:
		debug.Verbose("Injected input dropped (queue full)")
	}
}

// Tick performs one polling iteration at time now: sample both encoder
// channels and the button pin once, decode, debounce, apply to the
// machine, and hand every produced event to the presenters before
// returning. Inputs are fully consumed within the tick; nothing is
// queued or reordered.
func (c *Controller) Tick(now time.Time) ([]nav.Event, error) {
	step, err := c.encoder.Poll()
	if err != nil {
		return nil, err
	}
	pressed, err := c.button.Poll(now)
	if err != nil {
		return nil, err
	}

	// Merge at most one pending synthetic input into this tick.
	select {
	case in := <-c.inject:
		if step == 0 {
			step = in.Step
		}
		pressed = pressed || in.Press
	default:
	}

	var events []nav.Event
	if evt, ok := c.machine.ApplyStep(step); ok {
		events = append(events, evt)
	}
	if pressed {
		if evt, ok := c.machine.ApplyActivate(); ok {
			events = append(events, evt)
		}
	}

	for _, evt := range events {
		c.dispatch(evt)
	}
	return events, nil
}

// Run drives the loop with a ticker until ctx is cancelled. A GPIO read
// failure aborts the loop: the input hardware is gone, there is nothing
// to navigate with.
func (c *Controller) Run(ctx context.Context) error {
	debug.Live("Polling loop started (tick %v)", c.tick)

	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			debug.Live("Polling loop stopped")
			return nil
		case now := <-ticker.C:
			if _, err := c.Tick(now); err != nil {
				return err
			}
		}
	}
}

func (c *Controller) dispatch(evt nav.Event) {
	switch evt.Kind {
	case nav.CursorMoved:
		debug.Cursor(evt.Level.String(), evt.Index)
	case nav.LevelEntered:
		debug.Enter(evt.Index)
	case nav.LevelExited:
		debug.Exit()
	}

	snap := c.machine.Snapshot()
	for _, p := range c.presenters {
		p.HandleEvent(evt, snap)
	}
}
