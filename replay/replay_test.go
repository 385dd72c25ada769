package replay

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/engine"
	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/midi"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// song is one quarter note on channel 1 at 120 BPM, so the note-off lands
// at 500ms.
func song(t *testing.T) []byte {
	t.Helper()
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(960)

	var tr smf.Track
	tr.Add(0, smf.MetaTempo(120))
	tr.Add(0, gomidi.ControlChange(0, engine.CCHue, 64))
	tr.Add(0, gomidi.NoteOn(0, 36, 100))
	tr.Add(960, gomidi.NoteOff(0, 36))
	tr.Close(0)
	if err := s.Add(tr); err != nil {
		t.Fatalf("add track: %v", err)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		t.Fatalf("write smf: %v", err)
	}
	return buf.Bytes()
}

func TestLoad(t *testing.T) {
	cues, err := Load(bytes.NewReader(song(t)))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cues) != 3 {
		t.Fatalf("expected 3 cues, got %d: %+v", len(cues), cues)
	}
	if cues[0].Event.Type != midi.ControlChange || cues[1].Event != (midi.Event{Type: midi.NoteOn, Channel: 1, Data1: 36, Data2: 100}) {
		t.Fatalf("unexpected leading cues %+v", cues[:2])
	}
	if cues[2].Event.Type != midi.NoteOff || cues[2].At != 500*time.Millisecond {
		t.Fatalf("unexpected note-off cue %+v", cues[2])
	}
	if Duration(cues) != 500*time.Millisecond {
		t.Fatalf("unexpected duration %v", Duration(cues))
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	if _, err := Load(bytes.NewReader([]byte("not a midi file"))); err == nil {
		t.Fatal("expected an error")
	}
}

func TestRenderAppliesCuesPerFrame(t *testing.T) {
	cues, err := Load(bytes.NewReader(song(t)))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	var lit []bool
	n, err := Render(cues, 10, engine.New(engine.DefaultNumLEDs), func(frame int, leds []engine.Color) error {
		lit = append(lit, leds[19].H == 128)
		return nil
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if n != 6 || len(lit) != 6 {
		t.Fatalf("expected 6 frames, got %d", n)
	}
	for frame, on := range lit {
		if want := frame < 5; on != want {
			t.Fatalf("frame %d: lit=%v, want %v", frame, on, want)
		}
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	cues := []Cue{
		{At: 0, Event: midi.Event{Type: midi.ControlChange, Channel: 1, Data1: engine.CCForeground, Data2: uint8(engine.FlashLights)}},
		{At: time.Second, Event: midi.Event{Type: midi.NoteOn, Channel: 3, Data1: 50, Data2: 1}},
	}
	capture := func() [][]engine.Color {
		var frames [][]engine.Color
		_, err := Render(cues, 10, engine.New(engine.DefaultNumLEDs), func(_ int, leds []engine.Color) error {
			frames = append(frames, append([]engine.Color(nil), leds...))
			return nil
		})
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		return frames
	}

	a, b := capture(), capture()
	if len(a) != 11 || len(a) != len(b) {
		t.Fatalf("unexpected frame counts %d and %d", len(a), len(b))
	}
	for i := range a {
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				t.Fatalf("frame %d LED %d differs", i, j)
			}
		}
	}
}

func TestRenderStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	cues := []Cue{{At: time.Second}}
	n, err := Render(cues, 10, engine.New(8), func(frame int, _ []engine.Color) error {
		if frame == 2 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) || n != 3 {
		t.Fatalf("expected stop after 3 frames with boom, got %d, %v", n, err)
	}
	if _, err := Render(nil, 0, engine.New(8), nil); err == nil {
		t.Fatal("expected invalid frame rate error")
	}
}
