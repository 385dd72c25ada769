package strip

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/debug"
	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/engine"
)

// ErrClosed is returned by writes to a closed sink.
var ErrClosed = errors.New("strip: sink closed")

// Sink receives rendered frames.
type Sink interface {
	WriteFrame(leds []engine.Color) error
	Close() error
}

// FrameWriter encodes frames onto a byte stream, numbering them with a
// wrapping sequence byte.
type FrameWriter struct {
	mu     sync.Mutex
	w      io.Writer
	name   string
	seq    uint8
	buf    []byte
	closed bool
}

// NewFrameWriter writes frames to w. Close closes w when it is an io.Closer.
func NewFrameWriter(name string, w io.Writer) *FrameWriter {
	return &FrameWriter{w: w, name: name}
}

func (f *FrameWriter) WriteFrame(leds []engine.Color) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}
	buf, err := AppendFrame(f.buf[:0], f.seq, leds)
	if err != nil {
		return err
	}
	f.buf = buf
	if _, err := f.w.Write(buf); err != nil {
		return fmt.Errorf("write %s: %w", f.name, err)
	}
	debug.LogEvery(300, "strip", "%s: frame seq=%d bytes=%d", f.name, f.seq, len(buf))
	f.seq++
	return nil
}

func (f *FrameWriter) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true
	if c, ok := f.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// MultiSink writes every frame to all of its sinks.
type MultiSink []Sink

// WriteFrame writes to every sink even after a failure and returns the first
// error.
func (m MultiSink) WriteFrame(leds []engine.Color) error {
	var first error
	for _, s := range m {
		if err := s.WriteFrame(leds); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m MultiSink) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// FuncSink adapts a function to Sink.
type FuncSink func(leds []engine.Color) error

func (fn FuncSink) WriteFrame(leds []engine.Color) error { return fn(leds) }
func (fn FuncSink) Close() error                         { return nil }
