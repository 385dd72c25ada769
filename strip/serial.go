package strip

import (
	"fmt"

	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/debug"

	"go.bug.st/serial"
)

// SerialSink streams frames to the strip controller over a serial port.
type SerialSink struct {
	*FrameWriter
	Port string
	Baud int
}

// OpenSerial opens the named serial device at the given baud rate.
func OpenSerial(name string, baud int) (*SerialSink, error) {
	p, err := serial.Open(name, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", name, err)
	}
	debug.Log("strip", "serial port opened %s @ %d", name, baud)
	return &SerialSink{FrameWriter: NewFrameWriter(name, p), Port: name, Baud: baud}, nil
}

// ListPorts returns the serial devices present on this machine.
func ListPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("list serial ports: %w", err)
	}
	return ports, nil
}
