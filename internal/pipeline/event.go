package pipeline

import (
	"strings"
	"sync"
)

// Event is a transient stage-transition notification. The engine emits
// one per completed stage; the summary stage additionally emits partial
// events while its output is being produced.
type Event struct {
	Stage   string
	Status  Status
	Message string
	Data    map[string]any
}

// Humanize turns a status marker into a readable phrase for progress
// messages ("work_experience_extracted" -> "work experience extracted").
func (s Status) Humanize() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

// Emitter fans stage transitions out to a single consumer. Emit never
// blocks the pipeline: when the consumer falls behind, events are
// dropped rather than stalling a model call. A nil *Emitter is a valid
// no-op sink.
type Emitter struct {
	mu     sync.Mutex
	ch     chan Event
	closed bool
}

func NewEmitter(buffer int) *Emitter {
	return &Emitter{ch: make(chan Event, buffer)}
}

// Events returns the consumer side of the emitter. The channel is closed
// by the pipeline once the terminal stage has run.
func (e *Emitter) Events() <-chan Event {
	if e == nil {
		return nil
	}
	return e.ch
}

func (e *Emitter) Emit(ev Event) {
	if e == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	select {
	case e.ch <- ev:
	default:
	}
}

func (e *Emitter) Close() {
	if e == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.closed {
		e.closed = true
		close(e.ch)
	}
}
