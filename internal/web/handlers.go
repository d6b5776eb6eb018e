package web

import (
	"encoding/json"
	"io/fs"
	"net/http"
	"time"

	"github.com/cjeanneret/MenuGo/internal/logic/menu"
	"github.com/cjeanneret/MenuGo/internal/logic/nav"
)

// SnapshotFunc returns the current navigation state.
type SnapshotFunc func() nav.Snapshot

// InjectFunc queues a synthetic input (encoder step, button press) for
// the next tick. Wired only when running on the mock GPIO driver.
type InjectFunc func(step int, press bool)

// StateView is the JSON form of the full menu state, served by GET /state.
type StateView struct {
	Level        string   `json:"level"`
	RootCursor   int      `json:"root_cursor"`
	ChildCursor  int      `json:"child_cursor"`
	ShowingChild bool     `json:"showing_child"`
	RootLabels   []string `json:"root_labels"`
	ChildLabels  []string `json:"child_labels"`
	InputEnabled bool     `json:"input_enabled"`
}

// InputRequest is the JSON body of POST /input.
type InputRequest struct {
	Step  int  `json:"step"`
	Press bool `json:"press"`
}

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	Broadcaster *Broadcaster
	Snapshot    SnapshotFunc
	Inject      InjectFunc
	Model       *menu.Model
	staticFS    fs.FS
}

// NewHandlers creates handlers with the given dependencies.
// If inject is nil, POST /input returns 503 Service Unavailable.
func NewHandlers(broadcaster *Broadcaster, snapshot SnapshotFunc, inject InjectFunc, model *menu.Model, staticFS fs.FS) *Handlers {
	return &Handlers{
		Broadcaster: broadcaster,
		Snapshot:    snapshot,
		Inject:      inject,
		Model:       model,
		staticFS:    staticFS,
	}
}

// HandleState returns the full menu state as JSON. The child labels are
// those of the currently highlighted root item.
func (h *Handlers) HandleState(w http.ResponseWriter, r *http.Request) {
	snap := h.Snapshot()
	view := StateView{
		Level:        snap.Level.String(),
		RootCursor:   snap.RootCursor,
		ChildCursor:  snap.ChildCursor,
		ShowingChild: snap.Level == nav.Child,
		RootLabels:   h.Model.RootLabels(),
		ChildLabels:  h.Model.ChildLabels(snap.RootCursor),
		InputEnabled: h.Inject != nil,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

// ServeIndex serves the main HTML page (root path only).
func (h *Handlers) ServeIndex(w http.ResponseWriter, r *http.Request) {
	data, err := fs.ReadFile(h.staticFS, "index.html")
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

// HandleInput handles POST /input: a synthetic encoder step and/or
// button press, applied on the next tick. Only available with the mock
// GPIO driver.
func (h *Handlers) HandleInput(w http.ResponseWriter, r *http.Request) {
	if h.Inject == nil {
		http.Error(w, "synthetic input disabled (not running on mock GPIO)", http.StatusServiceUnavailable)
		return
	}

	var in InputRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	if in.Step < -1 || in.Step > 1 {
		http.Error(w, "step must be -1, 0 or 1", http.StatusBadRequest)
		return
	}
	if in.Step == 0 && !in.Press {
		http.Error(w, "nothing to inject", http.StatusBadRequest)
		return
	}

	h.Inject(in.Step, in.Press)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"status": "queued"})
}

// HandleEventStream handles GET /events/stream for SSE.
func (h *Handlers) HandleEventStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // nginx

	ch, unsub := h.Broadcaster.Subscribe()
	defer unsub()

	// Send initial comment to establish connection
	w.Write([]byte(": connected\n\n"))
	flusher.Flush()

	// Heartbeat while idle
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			w.Write([]byte("data: " + msg + "\n\n"))
			flusher.Flush()

		case <-ticker.C:
			w.Write([]byte(": heartbeat\n\n"))
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
