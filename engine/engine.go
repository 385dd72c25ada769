package engine

import "math/rand"

// Engine renders a fixed-length LED strip from MIDI-driven parameters.
//
// An Engine is not safe for concurrent use. Callers serialize every call on
// one instance themselves.
type Engine struct {
	state      State
	leds       []Color
	background []Color
	rng        *rand.Rand
}

// New creates an engine for numLEDs LEDs. Non-positive lengths select the
// 108-LED hardware layout. Notes to Drives and the wave modes assume that
// layout; other lengths render them without error but without meaning.
func New(numLEDs int) *Engine {
	if numLEDs <= 0 {
		numLEDs = DefaultNumLEDs
	}
	e := &Engine{
		state:      NewState(),
		leds:       make([]Color, numLEDs),
		background: make([]Color, numLEDs),
		rng:        rand.New(rand.NewSource(0)),
	}
	for i := range e.leds {
		h := checkerHueEven
		if i%2 != 0 {
			h = checkerHueOdd
		}
		e.leds[i] = hsv(h, checkerSat, e.state.FgBright)
	}
	return e
}

// HandleControlChange applies a CC from any channel. CCs outside 1..15 are
// ignored.
func (e *Engine) HandleControlChange(channel, control, value uint8) {
	e.state.SetControl(int(control), int(value))
}

// HandleNoteOn records a held note. In Move startLED mode every note-on, on
// any channel, also advances the foreground start, wrapping to 0 at 127.
// Notes above 127 are ignored entirely.
func (e *Engine) HandleNoteOn(channel, note, velocity uint8) {
	if note >= 128 {
		return
	}
	e.state.ActiveNotes[note] = velocity
	if channel >= 1 && channel <= NumChannels {
		e.state.CurrentNote[channel] = note
	}
	if e.state.FgMode == MoveStartOnNote {
		e.state.FgStart++
		if e.state.FgStart >= maxValue {
			e.state.FgStart = 0
		}
	}
}

// HandleNoteOff releases a note. The channel's current note is only cleared
// when it is still this note.
func (e *Engine) HandleNoteOff(channel, note, velocity uint8) {
	if note >= 128 {
		return
	}
	e.state.ActiveNotes[note] = 0
	if channel >= 1 && channel <= NumChannels && e.state.CurrentNote[channel] == note {
		e.state.CurrentNote[channel] = 0
	}
}

// Render advances the frame counter and redraws the whole strip.
func (e *Engine) Render() {
	e.state.Frame++
	RenderBackground(e.background, &e.state)
	copy(e.leds, e.background)
	RenderForeground(e.leds, &e.state, e.rng)
}

// LEDs returns the current frame. The slice is owned by the engine and is
// overwritten by the next Render.
func (e *Engine) LEDs() []Color {
	return e.leds
}

// NumLEDs returns the strip length.
func (e *Engine) NumLEDs() int {
	return len(e.leds)
}

// CC returns the 0..127 value of a parameter.
func (e *Engine) CC(cc int) int {
	return e.state.Control(cc)
}

// SetCC is HandleControlChange on channel 0.
func (e *Engine) SetCC(cc, value int) {
	if cc < 0 || cc > 255 || value < 0 || value > 255 {
		return
	}
	e.HandleControlChange(0, uint8(cc), uint8(value))
}

// Frame returns the number of Render calls so far.
func (e *Engine) Frame() uint32 {
	return e.state.Frame
}

// State returns a copy of the parameter and note state.
func (e *Engine) State() State {
	return e.state
}
