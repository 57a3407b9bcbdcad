package memory

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// logTimeout bounds how long a background write may take.
const logTimeout = 5 * time.Second

// AsyncLogger writes interactions in the background so the query path
// never waits on SQLite. Hand-off is an explicit buffered channel; when
// the buffer is full the interaction is dropped with a warning rather
// than blocking a search.
type AsyncLogger struct {
	store *Store

	mu     sync.Mutex
	ch     chan Interaction
	closed bool

	done chan struct{}
}

// NewAsyncLogger starts the background writer. buffer <= 0 gets a
// sensible default.
func NewAsyncLogger(store *Store, buffer int) *AsyncLogger {
	if buffer <= 0 {
		buffer = 256
	}
	l := &AsyncLogger{
		store: store,
		ch:    make(chan Interaction, buffer),
		done:  make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *AsyncLogger) run() {
	defer close(l.done)
	for in := range l.ch {
		ctx, cancel := context.WithTimeout(context.Background(), logTimeout)
		if err := l.store.Log(ctx, in); err != nil {
			slog.Warn("interaction log failed",
				slog.String("type", in.Type),
				slog.String("scholarship_id", in.ScholarshipID),
				slog.String("error", err.Error()))
		}
		cancel()
	}
}

// Log queues an interaction for background persistence. Never blocks
// and never panics; a full queue or a closed logger drops the
// interaction with a warning. A search racing shutdown must not fail
// over a lost boost signal.
func (l *AsyncLogger) Log(in Interaction) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		slog.Warn("interaction logger closed, dropping",
			slog.String("type", in.Type),
			slog.String("scholarship_id", in.ScholarshipID))
		return
	}

	select {
	case l.ch <- in:
	default:
		slog.Warn("interaction queue full, dropping",
			slog.String("type", in.Type),
			slog.String("scholarship_id", in.ScholarshipID))
	}
}

// Close stops accepting interactions, drains the queue and waits for
// the writer to finish. Safe to call more than once.
func (l *AsyncLogger) Close() {
	l.mu.Lock()
	if !l.closed {
		l.closed = true
		close(l.ch)
	}
	l.mu.Unlock()
	<-l.done
}
