package midi

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/debug"
	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/engine"
	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/theme"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// GridSize is the Launchpad's square pad grid.
const GridSize = 8

// padBaseNote is the note sent for column 0. Each row plays on its own
// channel so that a row lights its own drive in Notes to Drives.
const padBaseNote = 36

var ledSendCount uint64

// LaunchpadController drives a Novation Launchpad X in programmer mode. The
// 8x8 grid mirrors the strip and doubles as a note surface.
type LaunchpadController struct {
	id       string
	send     func(msg gomidi.Message) error
	stopFunc func()
	queue    *eventQueue

	mu     sync.Mutex
	shown  [GridSize][GridSize]uint8
	primed bool
}

// NewLaunchpadController opens both ports and switches the device into
// programmer mode.
func NewLaunchpadController(id string, inPort drivers.In, outPort drivers.Out) (*LaunchpadController, error) {
	lp := &LaunchpadController{
		id:    id,
		queue: newEventQueue(id),
	}

	if outPort != nil {
		send, err := gomidi.SendTo(outPort)
		if err != nil {
			return nil, fmt.Errorf("open output %s: %w", id, err)
		}
		lp.send = send

		// F0 00 20 29 02 0C 00 7F F7: programmer mode
		// F0 00 20 29 02 0C 08 7F F7: full brightness
		// F0 00 20 29 02 0C 0A 01 01 F7: external LED feedback
		for _, sx := range [][]byte{
			{0x00, 0x20, 0x29, 0x02, 0x0C, 0x00, 0x7F},
			{0x00, 0x20, 0x29, 0x02, 0x0C, 0x08, 0x7F},
			{0x00, 0x20, 0x29, 0x02, 0x0C, 0x0A, 0x01, 0x01},
		} {
			if err := lp.send(gomidi.SysEx(sx)); err != nil {
				return nil, fmt.Errorf("configure %s: %w", id, err)
			}
		}
	}

	if inPort != nil {
		stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
			if ev, ok := padEvent(msg); ok {
				lp.queue.push(ev)
			}
		})
		if err != nil {
			return nil, fmt.Errorf("open input %s: %w", id, err)
		}
		lp.stopFunc = stop
	}

	return lp, nil
}

func (lp *LaunchpadController) ID() string {
	return lp.id
}

func (lp *LaunchpadController) Type() ControllerType {
	return ControllerLaunchpad
}

func (lp *LaunchpadController) Events() <-chan Event {
	return lp.queue.ch
}

// padEvent translates a Launchpad message:
//   - grid pads play note 36+col on channel row+1, releasing on velocity 0
//   - the top row selects foreground modes 0-7
//   - the lowest scene buttons select background modes
func padEvent(msg gomidi.Message) (Event, bool) {
	var channel, note, velocity, cc, value uint8

	on := msg.GetNoteOn(&channel, &note, &velocity)
	if on || msg.GetNoteOff(&channel, &note, &velocity) {
		row, col := noteToRowCol(note)
		switch {
		case row < 0 || row >= GridSize:
			return Event{}, false
		case col == GridSize:
			if !on || velocity == 0 {
				return Event{}, false
			}
			return sceneEvent(row)
		}
		ev := Event{Type: NoteOff, Channel: uint8(row + 1), Data1: uint8(padBaseNote + col)}
		if on && velocity > 0 {
			ev.Type, ev.Data2 = NoteOn, velocity
		}
		return ev, true
	}

	if msg.GetControlChange(&channel, &cc, &value) && value > 0 {
		switch row, col := ccToRowCol(cc); {
		case row == GridSize:
			return Event{Type: ControlChange, Channel: 1, Data1: engine.CCForeground, Data2: uint8(col)}, true
		case col == GridSize:
			return sceneEvent(row)
		}
	}
	return Event{}, false
}

// sceneEvent selects a background mode from the scene button in row.
func sceneEvent(row int) (Event, bool) {
	if row < 0 || row >= len(engine.BackgroundModes()) {
		return Event{}, false
	}
	return Event{Type: ControlChange, Channel: 1, Data1: engine.CCBackground, Data2: uint8(row)}, true
}

// Downsample picks 64 evenly spaced LEDs. Row 7 (the top row on the device)
// holds the start of the strip so the grid reads left to right, top down.
func Downsample(leds []engine.Color) [GridSize][GridSize]engine.Color {
	var grid [GridSize][GridSize]engine.Color
	if len(leds) == 0 {
		return grid
	}
	pads := GridSize * GridSize
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			k := (GridSize-1-row)*GridSize + col
			grid[row][col] = leds[k*len(leds)/pads]
		}
	}
	return grid
}

// ShowStrip mirrors leds on the grid. Only pads whose palette color changed
// since the last call are sent.
func (lp *LaunchpadController) ShowStrip(leds []engine.Color) error {
	if lp.send == nil {
		return nil
	}
	grid := Downsample(leds)

	lp.mu.Lock()
	defer lp.mu.Unlock()

	sent := 0
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			color := mapRGBToLaunchpad(theme.LEDColor(grid[row][col]))
			if lp.primed && lp.shown[row][col] == color {
				continue
			}
			if err := lp.send(gomidi.NoteOn(ChannelStatic, rowColToNote(row, col), color)); err != nil {
				lp.primed = false
				return fmt.Errorf("launchpad %s pad %d,%d: %w", lp.id, row, col, err)
			}
			lp.shown[row][col] = color
			sent++
		}
	}
	lp.primed = true

	if sent > 0 {
		count := atomic.AddUint64(&ledSendCount, uint64(sent))
		debug.LogEvery(100, "lp-send", "sent %d pads (total %d)", sent, count)
	}
	return nil
}

// launchpadPalette holds approximate RGB values of common Launchpad X
// palette entries as {velocity, R, G, B}.
var launchpadPalette = [][4]uint8{
	{0, 0, 0, 0},         // off
	{5, 255, 0, 0},       // red
	{6, 255, 80, 80},     // bright red
	{7, 180, 60, 60},     // dim red
	{9, 255, 100, 0},     // orange
	{11, 180, 80, 40},    // dim orange
	{13, 255, 200, 0},    // yellow
	{17, 0, 180, 0},      // green
	{19, 0, 100, 0},      // dim green
	{21, 0, 255, 0},      // bright green
	{37, 0, 200, 200},    // cyan
	{43, 40, 60, 120},    // dim blue
	{45, 0, 100, 255},    // blue
	{47, 80, 150, 255},   // bright blue
	{49, 150, 0, 200},    // purple
	{53, 255, 80, 180},   // pink
	{78, 100, 100, 255},  // light blue
	{84, 255, 150, 50},   // bright orange
	{87, 150, 255, 100},  // lime
	{97, 180, 180, 60},   // dim yellow
	{119, 255, 255, 255}, // white
}

// mapRGBToLaunchpad finds the nearest palette velocity for an RGB value.
func mapRGBToLaunchpad(rgb theme.RGB) uint8 {
	best := uint8(0)
	bestDist := -1
	r, g, b := int(rgb[0]), int(rgb[1]), int(rgb[2])
	for _, p := range launchpadPalette {
		dr, dg, db := r-int(p[1]), g-int(p[2]), b-int(p[3])
		dist := dr*dr + dg*dg + db*db
		if bestDist < 0 || dist < bestDist {
			bestDist = dist
			best = p[0]
		}
	}
	return best
}

// Close blanks the grid and stops listening.
func (lp *LaunchpadController) Close() error {
	if lp.send != nil {
		lp.mu.Lock()
		for row := 0; row < GridSize; row++ {
			for col := 0; col < GridSize; col++ {
				lp.send(gomidi.NoteOn(ChannelStatic, rowColToNote(row, col), 0))
			}
		}
		lp.primed = false
		lp.mu.Unlock()
	}
	if lp.stopFunc != nil {
		lp.stopFunc()
	}
	lp.queue.close()
	return nil
}

// Launchpad X note mapping
// 8x8 Grid:  Row 0 (bottom) = notes 11-18, Row 7 = notes 81-88
// Side col:  Col 8 (scene buttons) = notes 19, 29, ... 89
// Top row:   Row 8 = CC 91-98
// Scene buttons may also arrive as CC 19, 29, ... 89 depending on firmware.

func rowColToNote(row, col int) uint8 {
	if row == GridSize {
		return uint8(91 + col)
	}
	return uint8((row+1)*10 + col + 1)
}

func noteToRowCol(note uint8) (row, col int) {
	if note >= 91 && note <= 98 {
		return GridSize, int(note - 91)
	}
	row = int(note/10) - 1
	col = int(note%10) - 1
	if row < 0 || row >= GridSize || col < 0 || col > GridSize {
		return -1, -1
	}
	return row, col
}

func ccToRowCol(cc uint8) (row, col int) {
	switch {
	case cc >= 91 && cc <= 98:
		return GridSize, int(cc - 91)
	case cc >= 19 && cc <= 89 && cc%10 == 9:
		return int(cc/10) - 1, GridSize
	}
	return -1, -1
}
