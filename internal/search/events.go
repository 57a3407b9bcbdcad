package search

import (
	"log/slog"
	"time"
)

// Stage names, in pipeline order.
type Stage string

const (
	StageStart           Stage = "start"
	StageRetrieval       Stage = "retrieval"
	StageFusion          Stage = "fusion"
	StagePersonalization Stage = "personalization"
	StageEligibility     Stage = "eligibility"
	StageComplete        Stage = "complete"
	StageError           Stage = "error"
)

// stageProgress is the fixed progress ladder. Progress never decreases
// within a query.
var stageProgress = map[Stage]int{
	StageStart:           5,
	StageRetrieval:       25,
	StageFusion:          40,
	StagePersonalization: 55,
	StageEligibility:     80,
	StageComplete:        100,
	StageError:           100,
}

// StageEvent is one observational progress update. Ephemeral: consumed
// by the sink, never persisted.
type StageEvent struct {
	Stage    Stage          `json:"stage"`
	Message  string         `json:"message"`
	Progress int            `json:"progress"`
	Elapsed  time.Duration  `json:"elapsed"`
	Payload  map[string]any `json:"payload,omitempty"`
}

// ProgressSink receives stage events. Implementations must not assume
// any call happens: a canceled pipeline stops emitting.
type ProgressSink interface {
	Publish(StageEvent)
}

// SinkFunc adapts a function to ProgressSink.
type SinkFunc func(StageEvent)

// Publish implements ProgressSink.
func (f SinkFunc) Publish(e StageEvent) { f(e) }

type noopSink struct{}

func (noopSink) Publish(StageEvent) {}

// emitter publishes stage events for one pipeline run. A panicking sink
// is swallowed: event delivery is observational and must never affect
// control flow.
type emitter struct {
	sink      ProgressSink
	start     time.Time
	lastStage time.Time
}

func newEmitter(sink ProgressSink, start time.Time) *emitter {
	if sink == nil {
		sink = noopSink{}
	}
	return &emitter{sink: sink, start: start, lastStage: start}
}

func (e *emitter) emit(stage Stage, message string, payload map[string]any) {
	now := time.Now()
	event := StageEvent{
		Stage:    stage,
		Message:  message,
		Progress: stageProgress[stage],
		Elapsed:  now.Sub(e.lastStage),
		Payload:  payload,
	}
	e.lastStage = now

	defer func() {
		if r := recover(); r != nil {
			slog.Warn("progress sink panicked",
				slog.String("stage", string(stage)))
		}
	}()
	e.sink.Publish(event)
}
