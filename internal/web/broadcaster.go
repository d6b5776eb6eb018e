package web

import (
	"encoding/json"
	"strings"
	"sync"
	"time"
)

// LogEvent carries a mirrored debug-log line for SSE.
type LogEvent struct {
	Time string `json:"t"`
	Type string `json:"type"`
	Msg  string `json:"msg"`
}

// Broadcaster distributes JSON payloads to multiple SSE clients.
type Broadcaster struct {
	mu      sync.RWMutex
	clients map[chan string]struct{}
}

// NewBroadcaster creates a new broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		clients: make(map[chan string]struct{}),
	}
}

// Subscribe returns a channel that receives broadcast messages and a cleanup function.
// The caller must call the returned cleanup when done (e.g. on client disconnect).
func (b *Broadcaster) Subscribe() (<-chan string, func()) {
	ch := make(chan string, 64)
	b.mu.Lock()
	b.clients[ch] = struct{}{}
	b.mu.Unlock()

	unsub := func() {
		b.mu.Lock()
		delete(b.clients, ch)
		b.mu.Unlock()
		close(ch)
	}
	return ch, unsub
}

// Broadcast marshals the payload and sends it to all subscribed clients.
// Slow clients may miss messages (non-blocking, buffered).
func (b *Broadcaster) Broadcast(payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	msg := string(data)

	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.clients {
		select {
		case ch <- msg:
		default:
			// channel full, skip
		}
	}
}

// BroadcastMsg sends a log line as a LogEvent.
func (b *Broadcaster) BroadcastMsg(msg string) {
	b.Broadcast(LogEvent{
		Time: time.Now().Format(time.RFC3339),
		Type: "log",
		Msg:  msg,
	})
}

// BroadcastWriter implements io.Writer; each Write broadcasts the content to SSE clients.
func BroadcastWriter(b *Broadcaster) *broadcastWriter {
	return &broadcastWriter{b: b}
}

// broadcastWriter wraps Broadcaster as io.Writer for use with log.SetOutput.
type broadcastWriter struct {
	b *Broadcaster
}

func (w *broadcastWriter) Write(p []byte) (n int, err error) {
	msg := strings.TrimSpace(string(p))
	if msg != "" {
		w.b.BroadcastMsg(msg)
	}
	return len(p), nil
}
