// Package eventlog implements the append-only structured event log the
// catalog and checkout emit inventory and outcome events to.
package eventlog

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/fairyhunter13/pos-checkout-simulator/internal/obs"
)

// Level classifies an event.
type Level string

// Event levels, ordered by severity.
const (
	LevelDebug   Level = "DEBUG"
	LevelInfo    Level = "INFO"
	LevelWarning Level = "WARNING"
	LevelError   Level = "ERROR"
)

// Event is one append-only log entry.
type Event struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Level     Level          `json:"level"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// Sink receives events. Emitters must not assume how events are persisted.
type Sink interface {
	Emit(ev Event)
}

// Log is an asynchronous Sink with a background writer. Events accumulate in
// a backlog and are written to the global logger in emission order; a bounded
// in-memory tail is kept for inspection.
type Log struct {
	mu           sync.Mutex
	backlog      []Event
	tail         []Event
	tailMax      int
	notify       chan struct{}
	shuttingDown atomic.Bool

	emitted atomic.Uint64
	written atomic.Uint64
}

// NewLog creates a Log retaining at most tailMax events for Tail.
func NewLog(tailMax int) *Log {
	if tailMax <= 0 {
		tailMax = 256
	}
	return &Log{
		tailMax: tailMax,
		notify:  make(chan struct{}, 1),
	}
}

// Start runs the writer loop.
func (l *Log) Start(ctx context.Context) {
	go l.writer(ctx)
}

// writer drains the backlog until the context is cancelled.
func (l *Log) writer(ctx context.Context) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		l.flushOnce()
		select {
		case <-ctx.Done():
			l.flushOnce()
			return
		case <-l.notify:
		case <-ticker.C:
		}
	}
}

// flushOnce writes out everything currently in the backlog.
func (l *Log) flushOnce() {
	l.mu.Lock()
	pending := l.backlog
	l.backlog = nil
	for _, ev := range pending {
		l.tail = append(l.tail, ev)
	}
	if over := len(l.tail) - l.tailMax; over > 0 {
		l.tail = append([]Event(nil), l.tail[over:]...)
	}
	l.mu.Unlock()

	for _, ev := range pending {
		writeEvent(ev)
		l.written.Add(1)
	}
}

func writeEvent(ev Event) {
	if obs.Logger == nil {
		return
	}
	obs.Logger.Log(context.Background(), slogLevel(ev.Level), ev.Message,
		"event_id", ev.ID,
		"event_time", ev.Timestamp.Format(time.RFC3339Nano),
		"fields", ev.Fields,
	)
}

func slogLevel(lv Level) slog.Level {
	switch lv {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarning:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Emit appends an event to the backlog and notifies the writer. Events
// arriving after CloseIntake are dropped. A zero ID or timestamp is stamped
// here so emitters only fill level, message, and fields.
func (l *Log) Emit(ev Event) {
	if l.shuttingDown.Load() {
		return
	}
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	l.emitted.Add(1)
	l.mu.Lock()
	l.backlog = append(l.backlog, ev)
	l.mu.Unlock()
	select {
	case l.notify <- struct{}{}:
	default:
	}
}

// Tail returns up to n most recent written events, oldest first.
func (l *Log) Tail(n int) []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n <= 0 || n > len(l.tail) {
		n = len(l.tail)
	}
	out := make([]Event, n)
	copy(out, l.tail[len(l.tail)-n:])
	return out
}

// BacklogSize returns the number of emitted-but-not-yet-written events.
func (l *Log) BacklogSize() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.backlog)
}

// Counters returns totals for observability.
func (l *Log) Counters() (emitted, written uint64) {
	return l.emitted.Load(), l.written.Load()
}

// CloseIntake disallows future emissions.
func (l *Log) CloseIntake() { l.shuttingDown.Store(true) }

// DrainUntil blocks until the backlog is empty or ctx expires. It reports
// whether the backlog fully drained.
func (l *Log) DrainUntil(ctx context.Context) bool {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		if l.BacklogSize() == 0 {
			return true
		}
		select {
		case <-ctx.Done():
			return l.BacklogSize() == 0
		case <-ticker.C:
		}
	}
}
