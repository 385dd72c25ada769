package midi

import (
	"sync"

	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/debug"
	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/engine"
)

// ControllerType identifies the kind of controller
type ControllerType int

const (
	ControllerUnknown ControllerType = iota
	ControllerLaunchpad
	ControllerInput
)

func (t ControllerType) String() string {
	switch t {
	case ControllerLaunchpad:
		return "launchpad"
	case ControllerInput:
		return "input"
	}
	return "unknown"
}

// Controller is a connected MIDI device that produces events.
type Controller interface {
	ID() string
	Type() ControllerType
	Events() <-chan Event
	Close() error
}

// Preview is implemented by controllers that can show the strip.
type Preview interface {
	ShowStrip(leds []engine.Color) error
}

// Launchpad X channel for solid pad colors
const ChannelStatic uint8 = 0

const eventBuffer = 64

// eventQueue is a buffered event channel that never blocks the driver
// callback and tolerates pushes after close.
type eventQueue struct {
	mu     sync.Mutex
	ch     chan Event
	closed bool
	id     string
}

func newEventQueue(id string) *eventQueue {
	return &eventQueue{ch: make(chan Event, eventBuffer), id: id}
}

func (q *eventQueue) push(ev Event) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	select {
	case q.ch <- ev:
		return true
	default:
		debug.LogEvery(50, "midi", "%s: queue full, dropped %v", q.id, ev)
		return false
	}
}

func (q *eventQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.ch)
	}
}
