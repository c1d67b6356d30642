package tui

import "github.com/verte-zerg/namehunt/internal/model"

const sinkBuffer = 256

// Sink delivers hunter events to the Bubble Tea program through a channel.
type Sink struct {
	events chan model.Event
}

// NewSink returns a buffered event sink.
func NewSink() *Sink {
	return &Sink{events: make(chan model.Event, sinkBuffer)}
}

// Emit implements model.EventSink. Events are dropped if the UI has stopped
// draining, so the hunt loop can never block on a dead observer.
func (s *Sink) Emit(e model.Event) {
	select {
	case s.events <- e:
	default:
	}
}
