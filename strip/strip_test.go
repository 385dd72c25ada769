package strip

import (
	"bytes"
	"errors"
	"testing"

	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/engine"
)

func TestAppendFrameLayout(t *testing.T) {
	leds := []engine.Color{{H: 1, S: 2, V: 3}, {H: 4, S: 5, V: 6}}
	got, err := AppendFrame(nil, 7, leds)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := []byte{0xAA, 0x55, 0x00, 0x08, 0x20, 0x07, 1, 2, 3, 4, 5, 6, 0x28}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % x\nwant % x", got, want)
	}
}

func TestFrameRoundTrip(t *testing.T) {
	e := engine.New(engine.DefaultNumLEDs)
	e.SetCC(engine.CCForeground, int(engine.RainbowWheel))
	e.Render()

	buf, err := AppendFrame(nil, 200, e.LEDs())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	seq, leds, err := DecodeFrame(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if seq != 200 || len(leds) != engine.DefaultNumLEDs {
		t.Fatalf("unexpected seq %d / %d LEDs", seq, len(leds))
	}
	for i, c := range leds {
		if c != e.LEDs()[i] {
			t.Fatalf("LED %d: got %+v, want %+v", i, c, e.LEDs()[i])
		}
	}
}

func TestDecodeFrameErrors(t *testing.T) {
	good, _ := AppendFrame(nil, 1, []engine.Color{{H: 9, S: 9, V: 9}})

	bad := append([]byte(nil), good...)
	bad[len(bad)-1] ^= 0xFF
	if _, _, err := DecodeFrame(bad); !errors.Is(err, ErrChecksum) {
		t.Fatalf("expected checksum error, got %v", err)
	}

	bad = append([]byte(nil), good...)
	bad[0] = 0x00
	if _, _, err := DecodeFrame(bad); !errors.Is(err, ErrSync) {
		t.Fatalf("expected sync error, got %v", err)
	}

	if _, _, err := DecodeFrame(good[:len(good)-2]); !errors.Is(err, ErrShortFrame) {
		t.Fatalf("expected short frame error, got %v", err)
	}
}

type closeBuffer struct {
	bytes.Buffer
	closed bool
}

func (b *closeBuffer) Close() error {
	b.closed = true
	return nil
}

func TestFrameWriterSequence(t *testing.T) {
	var out closeBuffer
	w := NewFrameWriter("buf", &out)
	leds := []engine.Color{{H: 1}}

	for i := 0; i < 257; i++ {
		if err := w.WriteFrame(leds); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
	}
	frameLen := headerLen + 3 + 1
	data := out.Bytes()
	if len(data) != 257*frameLen {
		t.Fatalf("unexpected stream length %d", len(data))
	}
	last := data[256*frameLen:]
	if seq, _, err := DecodeFrame(last); err != nil || seq != 0 {
		t.Fatalf("expected sequence to wrap to 0, got %d (%v)", seq, err)
	}

	if err := w.Close(); err != nil || !out.closed {
		t.Fatalf("expected underlying writer to close, err=%v", err)
	}
	if err := w.WriteFrame(leds); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestMultiSinkWritesAll(t *testing.T) {
	boom := errors.New("boom")
	var calls []int
	m := MultiSink{
		FuncSink(func([]engine.Color) error { calls = append(calls, 0); return boom }),
		FuncSink(func([]engine.Color) error { calls = append(calls, 1); return nil }),
		FuncSink(func([]engine.Color) error { calls = append(calls, 2); return errors.New("later") }),
	}
	if err := m.WriteFrame(nil); !errors.Is(err, boom) {
		t.Fatalf("expected first error, got %v", err)
	}
	if len(calls) != 3 {
		t.Fatalf("expected every sink to be written, got %v", calls)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
