package trace

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// #region nop-sink
// NopSink discards all events.
type NopSink struct{}

// Append implements Sink.
func (NopSink) Append(context.Context, Event) error { return nil }
// #endregion nop-sink

// #region log-sink
// LogSink mirrors trace events into the process logger so a session can be
// followed from logs without querying the database.
type LogSink struct {
	log *zap.SugaredLogger
}

// NewLogSink creates a LogSink over the given logger.
func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{log: logger.Sugar()}
}

// Append implements Sink.
func (s *LogSink) Append(_ context.Context, ev Event) error {
	if ev.Kind == KindError {
		s.log.Warnw(ev.Message, "session", ev.SessionID, "step", ev.StepNumber, "kind", string(ev.Kind))
		return nil
	}
	s.log.Infow(ev.Message, "session", ev.SessionID, "step", ev.StepNumber, "kind", string(ev.Kind))
	return nil
}
// #endregion log-sink

// #region multi-sink
// MultiSink fans events out to several sinks. Append returns the first
// error but still delivers to every sink.
type MultiSink []Sink

// Append implements Sink.
func (m MultiSink) Append(ctx context.Context, ev Event) error {
	var first error
	for _, s := range m {
		if err := s.Append(ctx, ev); err != nil && first == nil {
			first = err
		}
	}
	return first
}
// #endregion multi-sink

// #region memory-sink
// MemorySink records events in memory for tests and the replay harness.
type MemorySink struct {
	mu     sync.Mutex
	events []Event
}

// NewMemorySink creates an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Append implements Sink.
func (s *MemorySink) Append(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

// Events returns a copy of all recorded events in emission order.
func (s *MemorySink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}
// #endregion memory-sink
