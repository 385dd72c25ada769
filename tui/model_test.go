package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/engine"
	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/host"
	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/midi"
	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/strip"
	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/theme"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	r := host.New(engine.New(engine.DefaultNumLEDs), 30, nil)
	return NewModel(r, nil, theme.New(nil), t.TempDir())
}

func press(t *testing.T, m Model, msgs ...tea.KeyMsg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAdjustSelectedParameter(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyRight})
	if got := m.Runner.CC(engine.CCSaturation); got != 101 {
		t.Fatalf("expected saturation 101, got %d", got)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftRight}, tea.KeyMsg{Type: tea.KeyShiftRight}, tea.KeyMsg{Type: tea.KeyShiftRight})
	if got := m.Runner.CC(engine.CCSaturation); got != 127 {
		t.Fatalf("expected saturation clamped to 127, got %d", got)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyLeft})
	if got := m.Runner.CC(engine.CCHue); got != 0 {
		t.Fatalf("expected hue clamped to 0, got %d", got)
	}
}

func TestCycleModes(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 10; i++ {
		m = press(t, m, runes("f"))
	}
	if got := m.Runner.CC(engine.CCForeground); got != 0 {
		t.Fatalf("expected foreground to wrap to 0, got %d", got)
	}
	m = press(t, m, runes("b"), runes("b"))
	if got := m.Runner.CC(engine.CCBackground); got != int(engine.SinusoidBackground) {
		t.Fatalf("expected sinusoid background, got %d", got)
	}
}

func TestTestNoteFollowsDrive(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, runes("]"), runes("]"), runes(" "))
	if !m.noteHeld || m.Runner.State().CurrentNote[3] != testNote {
		t.Fatalf("expected test note on channel 3, state %v", m.Runner.State().CurrentNote)
	}

	m = press(t, m, runes("["))
	if m.noteHeld || m.Runner.State().CurrentNote[3] != 0 {
		t.Fatal("expected switching drives to release the note")
	}
	if m.drive != 2 {
		t.Fatalf("expected drive 2, got %d", m.drive)
	}

	for i := 0; i < 5; i++ {
		m = press(t, m, runes("["))
	}
	if m.drive != 1 {
		t.Fatalf("expected drive to stop at 1, got %d", m.drive)
	}
}

func TestSaveAndLoadPreset(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, runes("o"))
	if !strings.HasPrefix(m.status, "no presets") {
		t.Fatalf("unexpected status %q", m.status)
	}

	m.Runner.SetCC(engine.CCLines, 5)
	m = press(t, m, runes("s"))
	if m.LastPreset() == "" || !strings.HasPrefix(m.status, "saved") {
		t.Fatalf("expected preset to be saved, status %q", m.status)
	}

	m.Runner.SetCC(engine.CCLines, 1)
	m = press(t, m, runes("o"))
	if got := m.Runner.CC(engine.CCLines); got != 5 {
		t.Fatalf("expected preset to restore 5 lines, got %d", got)
	}
}

func TestDeviceEvents(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(DeviceEventMsg{Type: midi.DeviceDisconnected, ID: "gone"})
	m = next.(Model)
	if m.status != "disconnected gone" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

type stubController struct{ id string }

func (c stubController) ID() string                { return c.id }
func (c stubController) Type() midi.ControllerType  { return midi.ControllerLaunchpad }
func (c stubController) Events() <-chan midi.Event { return nil }
func (c stubController) Close() error              { return nil }

func TestDeviceConnectResendsFrame(t *testing.T) {
	writes := 0
	r := host.New(engine.New(engine.DefaultNumLEDs), 30, strip.FuncSink(func([]engine.Color) error {
		writes++
		return nil
	}))
	m := NewModel(r, nil, theme.New(nil), t.TempDir())
	r.Step()
	r.Step()
	if writes != 1 {
		t.Fatalf("expected one write for a static scene, got %d", writes)
	}

	next, _ := m.Update(DeviceEventMsg{Type: midi.DeviceConnected, ID: "pad", Controller: stubController{"pad"}})
	m = next.(Model)
	if m.devices["pad"] != midi.ControllerLaunchpad {
		t.Fatalf("expected pad to be tracked, got %v", m.devices)
	}
	r.Step()
	if writes != 2 {
		t.Fatalf("expected the frame to be resent after connect, got %d", writes)
	}
}

func TestViewAndQuit(t *testing.T) {
	m := newTestModel(t)
	if err := m.Runner.Step(); err != nil {
		t.Fatal(err)
	}
	view := m.View()
	for _, want := range []string{engine.EngineName, "Notes to Drives", "Flat Color background", "MIDI disabled"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view is missing %q:\n%s", want, view)
		}
	}

	m = press(t, m, runes(" "))
	next, cmd := m.Update(runes("q"))
	m = next.(Model)
	if cmd == nil || m.View() != "" {
		t.Fatal("expected quit command and empty view")
	}
	if m.Runner.State().CurrentNote[1] != 0 {
		t.Fatal("expected held test note to be released on quit")
	}
}
