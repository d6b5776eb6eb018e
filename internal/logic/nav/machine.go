package nav

import (
	"sync"

	"github.com/cjeanneret/MenuGo/internal/logic/menu"
)

// Level identifies which of the two menu lists is active.
type Level int

const (
	Root Level = iota
	Child
)

func (l Level) String() string {
	switch l {
	case Root:
		return "root"
	case Child:
		return "child"
	default:
		return "unknown"
	}
}

// EventKind tags the variants of Event.
type EventKind int

const (
	CursorMoved EventKind = iota
	LevelEntered
	LevelExited
)

func (k EventKind) String() string {
	switch k {
	case CursorMoved:
		return "cursor_moved"
	case LevelEntered:
		return "level_entered"
	case LevelExited:
		return "level_exited"
	default:
		return "unknown"
	}
}

// Event is the one-shot output of the state machine: consumed by the
// presentation layer within the tick that produced it, never buffered.
//   - CursorMoved: Level is the active level, Index the new cursor.
//   - LevelEntered: Index is the activated root item whose child list
//     should be built and shown.
//   - LevelExited: the child list should be destroyed and the root list
//     re-shown. Level and Index carry no information.
type Event struct {
	Kind  EventKind
	Level Level
	Index int
}

// Snapshot is the full observable state, for presenters that need more
// than the event stream (initial page render, JSON state endpoint).
type Snapshot struct {
	Level       Level
	RootCursor  int
	ChildCursor int
}

// Machine is the hierarchical selection state machine. It owns the active
// level and one cursor per level; only the polling loop mutates them, but
// Snapshot and the other accessors are also called from HTTP handler
// goroutines, so the fields are guarded by a mutex. Inputs are decoded
// encoder steps and debounced button presses, outputs are Events.
type Machine struct {
	model *menu.Model

	mu          sync.Mutex
	level       Level
	rootCursor  int
	childCursor int
}

// NewMachine creates a machine at the initial state: root list shown,
// both cursors at 0.
func NewMachine(m *menu.Model) *Machine {
	return &Machine{model: m}
}

// ApplyStep moves the active cursor by delta with wraparound: one step
// back from index 0 lands on the last item, one step forward from the
// last item lands on 0. A zero delta is a no-op with no event; any other
// delta updates the cursor and reports the new highlight position.
func (s *Machine) ApplyStep(delta int) (Event, bool) {
	if delta == 0 {
		return Event{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	count := s.model.RootCount()
	cursor := s.rootCursor
	if s.level == Child {
		count = s.model.ChildCount()
		cursor = s.childCursor
	}

	cursor += delta
	if cursor < 0 {
		cursor = count - 1
	}
	if cursor >= count {
		cursor = 0
	}

	if s.level == Child {
		s.childCursor = cursor
	} else {
		s.rootCursor = cursor
	}

	return Event{Kind: CursorMoved, Level: s.level, Index: cursor}, true
}

// ApplyActivate processes a button press. At root level it enters the
// child list of the highlighted root item, child cursor reset to 0. At
// child level it returns to the root list only when the cursor is on the
// Return entry; the root cursor is left where it was, so the round trip
// lands back on the item that was entered. Activating any other child
// item is a no-op here: what a plain child item does is up to the
// application layer consuming the events.
func (s *Machine) ApplyActivate() (Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.level == Root {
		s.level = Child
		s.childCursor = 0
		return Event{Kind: LevelEntered, Index: s.rootCursor}, true
	}

	if s.childCursor == s.model.ReturnIndex() {
		s.level = Root
		return Event{Kind: LevelExited}, true
	}

	return Event{}, false
}

// Level returns the active level.
func (s *Machine) Level() Level {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// Cursor returns the active level's cursor.
func (s *Machine) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.level == Child {
		return s.childCursor
	}
	return s.rootCursor
}

// Snapshot returns the full observable state. Safe to call from any
// goroutine (the web handlers do, while the polling loop ticks).
func (s *Machine) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Level:       s.level,
		RootCursor:  s.rootCursor,
		ChildCursor: s.childCursor,
	}
}
