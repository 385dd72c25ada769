package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// MIDI message types
const (
	NoteOn        uint8 = 0x90
	NoteOff       uint8 = 0x80
	ControlChange uint8 = 0xB0
)

// Event is one channel message on its way to an engine. Channel is 1-16 as
// printed on hardware, not the 0-15 wire value.
type Event struct {
	Type    uint8 // NoteOn, NoteOff, ControlChange
	Channel uint8
	Data1   uint8 // note or controller
	Data2   uint8 // velocity or value
}

func (ev Event) String() string {
	switch ev.Type {
	case NoteOn:
		return fmt.Sprintf("note-on  ch=%-2d note=%-3d vel=%d", ev.Channel, ev.Data1, ev.Data2)
	case NoteOff:
		return fmt.Sprintf("note-off ch=%-2d note=%-3d vel=%d", ev.Channel, ev.Data1, ev.Data2)
	case ControlChange:
		return fmt.Sprintf("cc       ch=%-2d cc=%-3d   val=%d", ev.Channel, ev.Data1, ev.Data2)
	}
	return fmt.Sprintf("unknown 0x%02x", ev.Type)
}

// FromMessage converts a note or control change message. Note-on with
// velocity 0 becomes a note-off. Every other message is rejected.
func FromMessage(msg gomidi.Message) (Event, bool) {
	var channel, d1, d2 uint8
	switch {
	case msg.GetNoteOn(&channel, &d1, &d2):
		if d2 == 0 {
			return Event{Type: NoteOff, Channel: channel + 1, Data1: d1}, true
		}
		return Event{Type: NoteOn, Channel: channel + 1, Data1: d1, Data2: d2}, true
	case msg.GetNoteOff(&channel, &d1, &d2):
		return Event{Type: NoteOff, Channel: channel + 1, Data1: d1, Data2: d2}, true
	case msg.GetControlChange(&channel, &d1, &d2):
		return Event{Type: ControlChange, Channel: channel + 1, Data1: d1, Data2: d2}, true
	}
	return Event{}, false
}

// Target receives events. *engine.Engine implements it.
type Target interface {
	HandleNoteOn(channel, note, velocity uint8)
	HandleNoteOff(channel, note, velocity uint8)
	HandleControlChange(channel, control, value uint8)
}

// Apply routes ev to the matching handler of t.
func Apply(ev Event, t Target) {
	switch ev.Type {
	case NoteOn:
		t.HandleNoteOn(ev.Channel, ev.Data1, ev.Data2)
	case NoteOff:
		t.HandleNoteOff(ev.Channel, ev.Data1, ev.Data2)
	case ControlChange:
		t.HandleControlChange(ev.Channel, ev.Data1, ev.Data2)
	}
}
