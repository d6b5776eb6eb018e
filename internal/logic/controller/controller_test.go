package controller

import (
	"testing"
	"time"

	"github.com/cjeanneret/MenuGo/internal/hw/button"
	"github.com/cjeanneret/MenuGo/internal/hw/encoder"
	"github.com/cjeanneret/MenuGo/internal/hw/gpio"
	"github.com/cjeanneret/MenuGo/internal/logic/menu"
	"github.com/cjeanneret/MenuGo/internal/logic/nav"
)

const (
	pinA   = 25
	pinB   = 33
	pinBtn = 32
)

// recordingPresenter records dispatched events for verification.
type recordingPresenter struct {
	events []nav.Event
	snaps  []nav.Snapshot
}

func (p *recordingPresenter) HandleEvent(evt nav.Event, snap nav.Snapshot) {
	p.events = append(p.events, evt)
	p.snaps = append(p.snaps, snap)
}

func newTestController(t *testing.T) (*Controller, *gpio.MockDriver, *nav.Machine, *recordingPresenter) {
	t.Helper()
	drv := gpio.NewMockDriver()
	enc := encoder.New(drv, encoder.Config{PinA: pinA, PinB: pinB})
	btn := button.New(drv, button.Config{Pin: pinBtn, DebounceDelay: 300 * time.Millisecond})

	model, err := menu.New(menu.Config{RootCount: 5, ChildCount: 4})
	if err != nil {
		t.Fatalf("menu.New: %v", err)
	}
	machine := nav.NewMachine(model)
	pres := &recordingPresenter{}

	return New(enc, btn, machine, 20*time.Millisecond, pres), drv, machine, pres
}

func TestController_IdleTickProducesNothing(t *testing.T) {
	ctrl, _, _, pres := newTestController(t)

	events, err := ctrl.Tick(time.Now())
	if err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("events = %v, want none", events)
	}
	if len(pres.events) != 0 {
		t.Errorf("presenter got %d events, want 0", len(pres.events))
	}
}

func TestController_EncoderEdgeMovesCursor(t *testing.T) {
	ctrl, drv, _, pres := newTestController(t)

	// Clockwise edge: A rises while B stays low.
	drv.SetLevel(pinA, gpio.High)
	events, err := ctrl.Tick(time.Now())
	if err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	evt := events[0]
	if evt.Kind != nav.CursorMoved || evt.Level != nav.Root || evt.Index != 1 {
		t.Errorf("event = %+v, want CursorMoved(Root,1)", evt)
	}
	if len(pres.events) != 1 || pres.events[0] != evt {
		t.Errorf("presenter events = %v, want [%+v]", pres.events, evt)
	}
}

func TestController_ButtonPressActivates(t *testing.T) {
	ctrl, drv, machine, _ := newTestController(t)

	drv.SetLevel(pinBtn, gpio.Low)
	events, err := ctrl.Tick(time.Now())
	if err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Kind != nav.LevelEntered || events[0].Index != 0 {
		t.Errorf("event = %+v, want LevelEntered(0)", events[0])
	}
	if machine.Level() != nav.Child {
		t.Errorf("level = %v, want Child", machine.Level())
	}
}

func TestController_HeldButtonRespectsCooldown(t *testing.T) {
	ctrl, drv, machine, _ := newTestController(t)
	t0 := time.Now()

	drv.SetLevel(pinBtn, gpio.Low)

	// First tick enters the child list.
	if _, err := ctrl.Tick(t0); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if machine.Level() != nav.Child {
		t.Fatalf("level = %v, want Child", machine.Level())
	}

	// 20ms ticks inside the cooldown: held button does nothing more.
	for ms := 20; ms < 300; ms += 20 {
		events, err := ctrl.Tick(t0.Add(time.Duration(ms) * time.Millisecond))
		if err != nil {
			t.Fatalf("Tick: %v", err)
		}
		if len(events) != 0 {
			t.Fatalf("tick at +%dms produced %v inside cooldown", ms, events)
		}
	}

	// Past the cooldown the held press fires again; on a plain child item
	// (cursor 0, not Return) activation is a silent no-op.
	events, err := ctrl.Tick(t0.Add(320 * time.Millisecond))
	if err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("activation on plain child item produced %v", events)
	}
	if machine.Level() != nav.Child {
		t.Errorf("level = %v, want Child (unchanged)", machine.Level())
	}
}

func TestController_FullNavigationOverHardware(t *testing.T) {
	// Drive the whole root -> child -> Return -> root cycle through pin
	// transitions only.
	ctrl, drv, machine, _ := newTestController(t)
	t0 := time.Now()
	tick := 0
	next := func() time.Time {
		tick++
		return t0.Add(time.Duration(tick) * 20 * time.Millisecond)
	}

	// Two clockwise detents: A low->high then high->low, B opposite to A
	// at each edge.
	drv.SetLevel(pinA, gpio.High)
	drv.SetLevel(pinB, gpio.Low)
	if _, err := ctrl.Tick(next()); err != nil {
		t.Fatal(err)
	}
	drv.SetLevel(pinA, gpio.Low)
	drv.SetLevel(pinB, gpio.High)
	if _, err := ctrl.Tick(next()); err != nil {
		t.Fatal(err)
	}
	if snap := machine.Snapshot(); snap.RootCursor != 2 {
		t.Fatalf("root cursor = %d, want 2", snap.RootCursor)
	}

	// Press: enter child list of item 2.
	drv.SetLevel(pinBtn, gpio.Low)
	if _, err := ctrl.Tick(next()); err != nil {
		t.Fatal(err)
	}
	drv.SetLevel(pinBtn, gpio.High)
	if machine.Level() != nav.Child {
		t.Fatalf("level = %v, want Child", machine.Level())
	}

	// One counter-clockwise detent: child cursor wraps 0 -> 3 (Return).
	drv.SetLevel(pinB, gpio.High)
	drv.SetLevel(pinA, gpio.High)
	if _, err := ctrl.Tick(next()); err != nil {
		t.Fatal(err)
	}
	if snap := machine.Snapshot(); snap.ChildCursor != 3 {
		t.Fatalf("child cursor = %d, want 3", snap.ChildCursor)
	}

	// Press Return, after the cooldown: back to root, cursor intact.
	drv.SetLevel(pinBtn, gpio.Low)
	if _, err := ctrl.Tick(t0.Add(time.Second)); err != nil {
		t.Fatal(err)
	}
	snap := machine.Snapshot()
	if snap.Level != nav.Root || snap.RootCursor != 2 {
		t.Errorf("final state = %+v, want Root/2", snap)
	}
}

func TestController_InjectedStep(t *testing.T) {
	ctrl, _, machine, _ := newTestController(t)

	ctrl.Inject(Input{Step: 1})
	events, err := ctrl.Tick(time.Now())
	if err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if len(events) != 1 || events[0].Kind != nav.CursorMoved || events[0].Index != 1 {
		t.Errorf("events = %v, want CursorMoved(Root,1)", events)
	}
	if machine.Cursor() != 1 {
		t.Errorf("cursor = %d, want 1", machine.Cursor())
	}
}

func TestController_InjectedPress(t *testing.T) {
	ctrl, _, machine, _ := newTestController(t)

	ctrl.Inject(Input{Press: true})
	if _, err := ctrl.Tick(time.Now()); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if machine.Level() != nav.Child {
		t.Errorf("level = %v, want Child", machine.Level())
	}
}

func TestController_InjectQueueOverflowDoesNotBlock(t *testing.T) {
	ctrl, _, _, _ := newTestController(t)

	// Way past the queue capacity; must not block or panic.
	for i := 0; i < 100; i++ {
		ctrl.Inject(Input{Step: 1})
	}
}

func TestController_ConcurrentStateReadsDuringTicks(t *testing.T) {
	// The web layer reads the machine from HTTP handler goroutines while
	// the polling loop ticks. Run both concurrently; the race detector
	// flags any unsynchronized access, and every observed snapshot must
	// be internally consistent.
	ctrl, _, machine, _ := newTestController(t)
	t0 := time.Now()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			snap := machine.Snapshot()
			if snap.RootCursor < 0 || snap.RootCursor >= 5 {
				t.Errorf("root cursor = %d, out of [0,5)", snap.RootCursor)
				return
			}
			if snap.ChildCursor < 0 || snap.ChildCursor >= 4 {
				t.Errorf("child cursor = %d, out of [0,4)", snap.ChildCursor)
				return
			}
			_ = machine.Level()
			_ = machine.Cursor()
		}
	}()

	for i := 0; i < 1000; i++ {
		ctrl.Inject(Input{Step: 1, Press: i%7 == 0})
		if _, err := ctrl.Tick(t0.Add(time.Duration(i) * 20 * time.Millisecond)); err != nil {
			t.Fatalf("Tick %d: %v", i, err)
		}
	}
	<-done
}

func TestController_SnapshotFollowsEvent(t *testing.T) {
	ctrl, _, _, pres := newTestController(t)

	ctrl.Inject(Input{Press: true})
	if _, err := ctrl.Tick(time.Now()); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if len(pres.snaps) != 1 {
		t.Fatalf("got %d snapshots, want 1", len(pres.snaps))
	}
	if pres.snaps[0].Level != nav.Child {
		t.Errorf("snapshot level = %v, want Child (state after the event)", pres.snaps[0].Level)
	}
}
