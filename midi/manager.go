package midi

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// DeviceEvent is emitted when controllers connect/disconnect
type DeviceEvent struct {
	Type       DeviceEventType
	Controller Controller
	ID         string
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

// PortFilter selects input ports by case-insensitive name substrings.
// Exclude wins over Include; an empty Include accepts everything else.
type PortFilter struct {
	Include []string
	Exclude []string
}

// Accepts reports whether a port named name should be connected.
func (f PortFilter) Accepts(name string) bool {
	name = strings.ToLower(name)
	for _, p := range f.Exclude {
		if p != "" && strings.Contains(name, strings.ToLower(p)) {
			return false
		}
	}
	if len(f.Include) == 0 {
		return true
	}
	for _, p := range f.Include {
		if p != "" && strings.Contains(name, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// DeviceManager handles hot-plug detection of MIDI inputs and merges their
// events into one stream.
type DeviceManager struct {
	controllers map[string]Controller
	mu          sync.RWMutex
	events      chan DeviceEvent
	midi        chan Event
	forwarders  sync.WaitGroup
	filter      PortFilter
	launchpad   bool
	pollRate    time.Duration
}

// NewDeviceManager creates a device manager. With launchpad set, Launchpad X
// ports are opened as previews instead of plain inputs.
func NewDeviceManager(filter PortFilter, launchpad bool) *DeviceManager {
	return &DeviceManager{
		controllers: make(map[string]Controller),
		events:      make(chan DeviceEvent, 16),
		midi:        make(chan Event, eventBuffer),
		filter:      filter,
		launchpad:   launchpad,
		pollRate:    time.Second,
	}
}

// Events returns a channel of device connect/disconnect events
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// MIDI returns the merged event stream of all connected controllers. It is
// closed when Run returns.
func (dm *DeviceManager) MIDI() <-chan Event {
	return dm.midi
}

// Controllers returns a snapshot of connected controllers
func (dm *DeviceManager) Controllers() map[string]Controller {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	out := make(map[string]Controller, len(dm.controllers))
	for k, v := range dm.controllers {
		out[k] = v
	}
	return out
}

// Previews returns the connected controllers that can show the strip.
func (dm *DeviceManager) Previews() []Preview {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	var out []Preview
	for _, c := range dm.controllers {
		if p, ok := c.(Preview); ok {
			out = append(out, p)
		}
	}
	return out
}

// Run polls for devices until ctx is done (blocking - run in goroutine)
func (dm *DeviceManager) Run(ctx context.Context) {
	ticker := time.NewTicker(dm.pollRate)
	defer ticker.Stop()

	dm.scan(ctx)

	for {
		select {
		case <-ctx.Done():
			dm.closeAll()
			dm.forwarders.Wait()
			close(dm.events)
			close(dm.midi)
			return
		case <-ticker.C:
			dm.scan(ctx)
		}
	}
}

// Add registers an already opened controller and starts forwarding its
// events.
func (dm *DeviceManager) Add(ctx context.Context, c Controller) {
	dm.mu.Lock()
	dm.controllers[c.ID()] = c
	dm.mu.Unlock()

	dm.forwarders.Add(1)
	go dm.forward(ctx, c)

	debug.Log("device", "connected %s (%s)", c.ID(), c.Type())
	dm.emit(DeviceEvent{Type: DeviceConnected, Controller: c, ID: c.ID()})
}

// Remove closes and forgets a controller.
func (dm *DeviceManager) Remove(id string) {
	dm.mu.Lock()
	c, ok := dm.controllers[id]
	delete(dm.controllers, id)
	dm.mu.Unlock()
	if !ok {
		return
	}

	c.Close()
	debug.Log("device", "disconnected %s", id)
	dm.emit(DeviceEvent{Type: DeviceDisconnected, ID: id})
}

func (dm *DeviceManager) forward(ctx context.Context, c Controller) {
	defer dm.forwarders.Done()
	for ev := range c.Events() {
		select {
		case dm.midi <- ev:
		case <-ctx.Done():
			return
		}
	}
}

func (dm *DeviceManager) emit(ev DeviceEvent) {
	select {
	case dm.events <- ev:
	default:
		debug.Log("device", "event queue full, dropped %v for %s", ev.Type, ev.ID)
	}
}

func (dm *DeviceManager) scan(ctx context.Context) {
	// Port enumeration can hang on some drivers (CoreMIDI)
	type portsResult struct {
		inPorts  []drivers.In
		outPorts []drivers.Out
	}

	ch := make(chan portsResult, 1)
	go func() {
		ch <- portsResult{inPorts: gomidi.GetInPorts(), outPorts: gomidi.GetOutPorts()}
	}()

	var result portsResult
	select {
	case result = <-ch:
	case <-time.After(3 * time.Second):
		debug.Log("device", "port scan timed out")
		return
	case <-ctx.Done():
		return
	}

	seen := make(map[string]bool)
	for _, inPort := range result.inPorts {
		id := inPort.String()
		if !dm.filter.Accepts(id) {
			continue
		}
		lp := isLaunchpad(id)
		if isLaunchpadAux(id) {
			continue // DAW port of a Launchpad
		}
		seen[id] = true

		dm.mu.RLock()
		_, exists := dm.controllers[id]
		dm.mu.RUnlock()
		if exists {
			continue
		}

		c, err := dm.open(id, inPort, result.outPorts, lp)
		if err != nil {
			debug.Log("device", "open %s: %v", id, err)
			delete(seen, id)
			continue
		}
		dm.Add(ctx, c)
	}

	for id := range dm.Controllers() {
		if !seen[id] {
			dm.Remove(id)
		}
	}
}

func (dm *DeviceManager) open(id string, in drivers.In, outs []drivers.Out, lp bool) (Controller, error) {
	if !lp || !dm.launchpad {
		return NewInputController(id, in)
	}
	var out drivers.Out
	for _, op := range outs {
		if strings.EqualFold(op.String(), id) {
			out = op
			break
		}
	}
	return NewLaunchpadController(id, in, out)
}

func (dm *DeviceManager) closeAll() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	for _, c := range dm.controllers {
		c.Close()
	}
	dm.controllers = make(map[string]Controller)
}

func isLaunchpad(name string) bool {
	name = strings.ToLower(name)
	return strings.Contains(name, "launchpad") && strings.Contains(name, "midi")
}

func isLaunchpadAux(name string) bool {
	name = strings.ToLower(name)
	return strings.Contains(name, "launchpad") && !strings.Contains(name, "midi")
}
