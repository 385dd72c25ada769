package replay

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/engine"
	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/midi"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Cue is one note or CC event at its absolute time in a song.
type Cue struct {
	At    time.Duration
	Event midi.Event
}

// Load reads every track of a Standard MIDI File. Times follow the file's
// tempo map. Cues are ordered by time, keeping file order for ties.
func Load(r io.Reader) ([]Cue, error) {
	var cues []Cue
	err := smf.ReadTracksFrom(r).Do(func(te smf.TrackEvent) {
		ev, ok := midi.FromMessage(gomidi.Message(te.Message))
		if !ok {
			return
		}
		cues = append(cues, Cue{At: time.Duration(te.AbsMicroSeconds) * time.Microsecond, Event: ev})
	}).Error()
	if err != nil {
		return nil, fmt.Errorf("read smf: %w", err)
	}

	sort.SliceStable(cues, func(i, j int) bool { return cues[i].At < cues[j].At })
	return cues, nil
}

// LoadFile is Load on a file path.
func LoadFile(path string) ([]Cue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Renderer is an engine that can be driven offline.
type Renderer interface {
	midi.Target
	Render()
	LEDs() []engine.Color
}

// Render plays cues into eng at fps frames per second. Before frame n every
// cue at or before n/fps seconds is applied, then the frame is rendered and
// handed to fn. Rendering stops after the frame that covers the last cue, or
// at the first error from fn. Identical cues on a fresh engine always give
// identical frames.
func Render(cues []Cue, fps int, eng Renderer, fn func(frame int, leds []engine.Color) error) (int, error) {
	if fps <= 0 {
		return 0, fmt.Errorf("replay: invalid frame rate %d", fps)
	}
	period := time.Second / time.Duration(fps)

	next := 0
	frame := 0
	for {
		now := time.Duration(frame) * period
		for next < len(cues) && cues[next].At <= now {
			midi.Apply(cues[next].Event, eng)
			next++
		}
		eng.Render()
		if err := fn(frame, eng.LEDs()); err != nil {
			return frame + 1, err
		}
		frame++
		if next >= len(cues) {
			return frame, nil
		}
	}
}

// Duration is the time of the last cue.
func Duration(cues []Cue) time.Duration {
	if len(cues) == 0 {
		return 0
	}
	return cues[len(cues)-1].At
}
