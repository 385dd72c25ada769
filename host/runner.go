package host

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/debug"
	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/engine"
	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/midi"
	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/strip"
)

const DefaultFPS = 30

// Snapshot is a copy of the engine after one frame.
type Snapshot struct {
	Frame uint32
	LEDs  []engine.Color
	State engine.State
}

// Runner owns one engine and renders it at a fixed rate. The engine is not
// safe for concurrent use, so every access goes through the runner's mutex.
type Runner struct {
	mu      sync.Mutex
	eng     *engine.Engine
	sink    strip.Sink
	fps     int
	last    []engine.Color
	snap    Snapshot
	updates chan struct{}
}

// New wraps eng. sink may be nil. Non-positive fps selects DefaultFPS.
func New(eng *engine.Engine, fps int, sink strip.Sink) *Runner {
	if fps <= 0 {
		fps = DefaultFPS
	}
	r := &Runner{
		eng:     eng,
		sink:    sink,
		fps:     fps,
		updates: make(chan struct{}, 1),
	}
	r.snap = r.snapshotLocked()
	return r
}

// FPS returns the render rate.
func (r *Runner) FPS() int {
	return r.fps
}

// Updates receives a value after each rendered frame. Slow readers miss
// intermediate frames, never block the loop.
func (r *Runner) Updates() <-chan struct{} {
	return r.updates
}

// Submit applies one MIDI event to the engine.
func (r *Runner) Submit(ev midi.Event) {
	r.mu.Lock()
	midi.Apply(ev, r.eng)
	r.mu.Unlock()
}

// Feed submits every event from src until src closes or ctx is done.
func (r *Runner) Feed(ctx context.Context, src <-chan midi.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-src:
			if !ok {
				return
			}
			r.Submit(ev)
		}
	}
}

// SetCC sets a parameter from its 0-127 value.
func (r *Runner) SetCC(cc, value int) {
	r.mu.Lock()
	r.eng.SetCC(cc, value)
	r.mu.Unlock()
}

// CC reads a parameter as its 0-127 value.
func (r *Runner) CC(cc int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.eng.CC(cc)
}

// Snapshot returns the most recently rendered frame.
func (r *Runner) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.snap
	s.LEDs = slices.Clone(s.LEDs)
	return s
}

func (r *Runner) snapshotLocked() Snapshot {
	return Snapshot{
		Frame: r.eng.Frame(),
		LEDs:  slices.Clone(r.eng.LEDs()),
		State: r.eng.State(),
	}
}

// Step renders one frame and writes it to the sink when it differs from the
// last frame written successfully.
func (r *Runner) Step() error {
	r.mu.Lock()
	r.eng.Render()
	r.snap = r.snapshotLocked()
	changed := !slices.Equal(r.last, r.snap.LEDs)
	if changed {
		r.last = slices.Clone(r.snap.LEDs)
	}
	leds := r.last
	r.mu.Unlock()

	select {
	case r.updates <- struct{}{}:
	default:
	}

	if !changed || r.sink == nil {
		return nil
	}
	if err := r.sink.WriteFrame(leds); err != nil {
		// resend on the next frame
		r.Refresh()
		return err
	}
	return nil
}

// Refresh makes the next Step write its frame even if nothing changed, e.g.
// after a preview device was plugged in.
func (r *Runner) Refresh() {
	r.mu.Lock()
	r.last = nil
	r.mu.Unlock()
}

// Run renders at the configured rate until ctx is done. Sink errors are
// logged and do not stop the loop.
func (r *Runner) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second / time.Duration(r.fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.Step(); err != nil {
				debug.LogEvery(r.fps, "host", "sink: %v", err)
			}
		}
	}
}

// State returns the engine state as of now, including events submitted since
// the last frame.
func (r *Runner) State() engine.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.eng.State()
}
