package web

import (
	"time"

	"github.com/cjeanneret/MenuGo/internal/logic/nav"
)

// NavEvent is the wire form of a navigation event plus the state it
// produced, pushed to SSE clients.
type NavEvent struct {
	Time         string `json:"t"`
	Type         string `json:"type"`
	Level        string `json:"level,omitempty"`
	Index        int    `json:"index"`
	ShowingChild bool   `json:"showing_child"`
	RootCursor   int    `json:"root_cursor"`
	ChildCursor  int    `json:"child_cursor"`
}

// Presenter pushes each navigation event to SSE clients. It plays the
// Presentation Adapter role for the browser view: CursorMoved moves the
// highlight, LevelEntered shows the child list, LevelExited tears it down.
type Presenter struct {
	b *Broadcaster
}

// NewPresenter creates a presenter broadcasting on b.
func NewPresenter(b *Broadcaster) *Presenter {
	return &Presenter{b: b}
}

// HandleEvent implements controller.Presenter.
func (p *Presenter) HandleEvent(evt nav.Event, snap nav.Snapshot) {
	p.b.Broadcast(NavEvent{
		Time:         time.Now().Format(time.RFC3339),
		Type:         evt.Kind.String(),
		Level:        evt.Level.String(),
		Index:        evt.Index,
		ShowingChild: snap.Level == nav.Child,
		RootCursor:   snap.RootCursor,
		ChildCursor:  snap.ChildCursor,
	})
}
