package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/engine"
	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/host"
	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/midi"
	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/preset"
	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/theme"
	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/widgets"
)

const (
	stripWidth = 36
	testNote   = 60
	testVel    = 100
)

type Model struct {
	Runner    *host.Runner
	DeviceMgr *midi.DeviceManager // nil when running without MIDI
	Theme     *theme.Theme
	PresetDir string

	keys       keyMap
	help       help.Model
	params     []engine.Parameter
	cursor     int
	drive      int // channel for test notes, 1-16
	noteHeld   bool
	presetIdx  int
	lastPreset string
	devices    map[string]midi.ControllerType
	status     string
	quitting   bool
}

type UpdateMsg struct{}

type DeviceEventMsg midi.DeviceEvent

func NewModel(runner *host.Runner, deviceMgr *midi.DeviceManager, th *theme.Theme, presetDir string) Model {
	return Model{
		Runner:    runner,
		DeviceMgr: deviceMgr,
		Theme:     th,
		PresetDir: presetDir,
		keys:      newKeyMap(),
		help:      help.New(),
		params:    engine.Parameters(),
		drive:     1,
		presetIdx: -1,
		devices:   make(map[string]midi.ControllerType),
	}
}

// LastPreset is the path of the preset most recently saved or loaded.
func (m Model) LastPreset() string {
	return m.lastPreset
}

func ListenForUpdates(runner *host.Runner) tea.Cmd {
	return func() tea.Msg {
		<-runner.Updates()
		return UpdateMsg{}
	}
}

func ListenForDevices(deviceMgr *midi.DeviceManager) tea.Cmd {
	if deviceMgr == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-deviceMgr.Events()
		if !ok {
			return nil
		}
		return DeviceEventMsg(event)
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		ListenForUpdates(m.Runner),
		ListenForDevices(m.DeviceMgr),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case UpdateMsg:
		return m, ListenForUpdates(m.Runner)

	case DeviceEventMsg:
		switch msg.Type {
		case midi.DeviceConnected:
			m.devices[msg.ID] = msg.Controller.Type()
			m.status = "connected " + msg.ID
			m.Runner.Refresh()
		case midi.DeviceDisconnected:
			delete(m.devices, msg.ID)
			m.status = "disconnected " + msg.ID
		}
		return m, ListenForDevices(m.DeviceMgr)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		if m.noteHeld {
			m.toggleNote()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.params)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Dec):
		m.adjust(-1)
	case key.Matches(msg, m.keys.Inc):
		m.adjust(1)
	case key.Matches(msg, m.keys.DecBig):
		m.adjust(-10)
	case key.Matches(msg, m.keys.IncBig):
		m.adjust(10)

	case key.Matches(msg, m.keys.NextFg):
		m.cycle(engine.CCForeground, len(engine.ForegroundModes()))
	case key.Matches(msg, m.keys.NextBg):
		m.cycle(engine.CCBackground, len(engine.BackgroundModes()))

	case key.Matches(msg, m.keys.PrevDrv):
		m.selectDrive(m.drive - 1)
	case key.Matches(msg, m.keys.NextDrv):
		m.selectDrive(m.drive + 1)
	case key.Matches(msg, m.keys.Note):
		m.toggleNote()

	case key.Matches(msg, m.keys.Save):
		m.savePreset()
	case key.Matches(msg, m.keys.Load):
		m.loadNextPreset()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) adjust(delta int) {
	cc := m.params[m.cursor].CC
	v := min(max(m.Runner.CC(cc)+delta, 0), 127)
	m.Runner.SetCC(cc, v)
}

func (m *Model) cycle(cc, n int) {
	m.Runner.SetCC(cc, (m.Runner.CC(cc)+1)%n)
}

func (m *Model) selectDrive(ch int) {
	if ch < 1 || ch > engine.NumChannels {
		return
	}
	if m.noteHeld {
		m.toggleNote()
	}
	m.drive = ch
}

func (m *Model) toggleNote() {
	ev := midi.Event{Type: midi.NoteOn, Channel: uint8(m.drive), Data1: testNote, Data2: testVel}
	if m.noteHeld {
		ev.Type, ev.Data2 = midi.NoteOff, 0
	}
	m.Runner.Submit(ev)
	m.noteHeld = !m.noteHeld
}

func (m *Model) savePreset() {
	s := m.Runner.State()
	name := fmt.Sprintf("%s - %s", s.FgMode, s.BgMode)
	path, err := preset.Save(m.PresetDir, preset.Capture(name, m.Runner))
	if err != nil {
		m.status = "save failed: " + err.Error()
		return
	}
	m.lastPreset = path
	m.status = "saved " + path
}

func (m *Model) loadNextPreset() {
	paths, err := preset.List(m.PresetDir)
	if err != nil {
		m.status = "list presets: " + err.Error()
		return
	}
	if len(paths) == 0 {
		m.status = "no presets in " + m.PresetDir
		return
	}
	m.presetIdx = (m.presetIdx + 1) % len(paths)
	p, err := preset.Load(paths[m.presetIdx])
	if err != nil {
		m.status = err.Error()
		return
	}
	p.Apply(m.Runner)
	m.lastPreset = paths[m.presetIdx]
	m.status = "loaded " + p.Name
}

// usedParams returns the CCs read by the current modes.
func usedParams(s engine.State) map[int]bool {
	used := map[int]bool{engine.CCForeground: true, engine.CCBackground: true}
	var modes []engine.ModeInfo
	if s.FgMode.Valid() {
		modes = append(modes, engine.ForegroundModes()[s.FgMode])
	}
	modes = append(modes, engine.BackgroundModes()[s.BgMode.Resolve()])
	for _, mode := range modes {
		for _, idx := range mode.Uses {
			used[idx+1] = true
		}
	}
	return used
}

func (m Model) paramRows(s engine.State) []widgets.ParamRow {
	used := usedParams(s)
	rows := make([]widgets.ParamRow, len(m.params))
	for i, p := range m.params {
		row := widgets.ParamRow{
			CC:    p.CC,
			Name:  p.Name,
			Layer: string(p.Layer),
			Value: s.Control(p.CC),
			Used:  used[p.CC],
		}
		switch p.CC {
		case engine.CCForeground:
			row.Label = s.FgMode.String()
		case engine.CCBackground:
			row.Label = s.BgMode.String()
		}
		rows[i] = row
	}
	return rows
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.Runner.Snapshot()
	state := m.Runner.State()

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent()).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	statusStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())

	header := headerStyle.Render(fmt.Sprintf("%s  frame %06d  %dfps", engine.EngineName, snap.Frame, m.Runner.FPS()))

	leds := theme.LEDColors(snap.LEDs)
	stripView := widgets.RenderStrip(leds, stripWidth, m.Theme.Symbols.LED)

	var grid [8][8]theme.RGB
	for r, row := range midi.Downsample(snap.LEDs) {
		for c, col := range row {
			grid[r][c] = theme.LEDColor(col)
		}
	}
	gridView := widgets.RenderPadGrid(grid, m.Theme.Symbols.Pad)

	table := widgets.RenderParamTable(m.paramRows(state), m.cursor, m.Theme)
	body := lipgloss.JoinHorizontal(lipgloss.Top, table, "   ", gridView)

	held := " "
	if m.noteHeld {
		held = string(m.Theme.Symbols.Held)
	}
	drives := fmt.Sprintf("drives %s   test ch %2d %s",
		widgets.RenderDrives(state.CurrentNote[:], m.Theme), m.drive, held)

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(stripView)
	out.WriteString("\n\n")
	out.WriteString(drives)
	out.WriteString("\n\n")
	out.WriteString(body)
	out.WriteString("\n\n")
	out.WriteString(dimStyle.Render(m.deviceLine()))
	if m.status != "" {
		out.WriteString("\n")
		out.WriteString(statusStyle.Render(m.status))
	}
	out.WriteString("\n\n")
	out.WriteString(m.help.View(m.keys))

	return out.String()
}

func (m Model) deviceLine() string {
	if m.DeviceMgr == nil {
		return "MIDI disabled"
	}
	if len(m.devices) == 0 {
		return "no MIDI devices (connect any time)"
	}
	var names []string
	for id, typ := range m.devices {
		names = append(names, fmt.Sprintf("%s [%s]", id, typ))
	}
	sort.Strings(names)
	return "devices: " + strings.Join(names, ", ")
}
