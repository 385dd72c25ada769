package host

import (
	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/engine"
	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/midi"
)

// PreviewSink mirrors frames on whatever previews are connected at the time
// of each write.
type PreviewSink struct {
	Previews func() []midi.Preview
}

func (p PreviewSink) WriteFrame(leds []engine.Color) error {
	if p.Previews == nil {
		return nil
	}
	var first error
	for _, pv := range p.Previews() {
		if err := pv.ShowStrip(leds); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (p PreviewSink) Close() error { return nil }
