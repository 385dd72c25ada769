package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// InputController forwards every note and CC from one input port, such as
// a keyboard, a DAW loopback or a MIDI file player.
type InputController struct {
	id       string
	stopFunc func()
	queue    *eventQueue
}

// NewInputController starts listening on inPort.
func NewInputController(id string, inPort drivers.In) (*InputController, error) {
	in := &InputController{
		id:    id,
		queue: newEventQueue(id),
	}

	stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
		if ev, ok := FromMessage(msg); ok {
			in.queue.push(ev)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("open input %s: %w", id, err)
	}
	in.stopFunc = stop

	return in, nil
}

func (in *InputController) ID() string {
	return in.id
}

func (in *InputController) Type() ControllerType {
	return ControllerInput
}

func (in *InputController) Events() <-chan Event {
	return in.queue.ch
}

func (in *InputController) Close() error {
	if in.stopFunc != nil {
		in.stopFunc()
	}
	in.queue.close()
	return nil
}
