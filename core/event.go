package core

// EventType classifies a stream event emitted while a run progresses.
type EventType string

// Stream event types emitted by the supervisor.
const (
	// EventModelThinking announces that an acting step is about to execute,
	// carrying the step text.
	EventModelThinking EventType = "model_thinking"
	// EventModelContent carries produced output: either direct reasoning
	// text or a note naming the tool that executed.
	EventModelContent EventType = "model_content"
)

// Event is a progress notification streamed to a caller-supplied sink.
// Events are emitted synchronously and in step order; the events for a step
// precede that step's trace entry.
type Event struct {
	Type EventType `json:"type"`
	Data string    `json:"data"`
}

// Sink receives stream events. Implementations must be fast: emission is
// synchronous and a slow sink stalls the run.
type Sink interface {
	Emit(event Event)
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(event Event)

// Emit implements the Sink interface for SinkFunc.
func (f SinkFunc) Emit(event Event) { f(event) }
