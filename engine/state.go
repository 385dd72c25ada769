package engine

// CC numbers of the engine parameters.
const (
	CCHue         = 1
	CCSaturation  = 2
	CCBrightness  = 3
	CCStart       = 4
	CCLength      = 5
	CCForeground  = 6
	CCLines       = 7
	CCAmplitude   = 8
	CCBackground  = 9
	CCPan         = 10
	CCBgHue       = 11
	CCBgSat       = 12
	CCBgBright    = 13
	CCBgStart     = 14
	CCBgLength    = 15
	NumParameters = 15
)

const maxValue = 127

// State is the full parameter and note model of one engine.
// HSV fields hold the doubled CC value (0..254, always even); the rest hold
// the raw CC value.
type State struct {
	FgHue, FgSat, FgBright int
	FgStart, FgLength      int
	FgMode                 ForegroundMode
	Lines                  int
	Amplitude              int
	BgMode                 BackgroundMode
	Pan                    int
	BgHue, BgSat, BgBright int
	BgStart, BgLength      int

	ActiveNotes [128]uint8
	CurrentNote [NumChannels + 1]uint8
	Frame       uint32
}

// NewState returns the power-on state.
func NewState() State {
	return State{
		FgSat:    200,
		FgBright: 200,
		Pan:      64,
		BgSat:    200,
	}
}

// field returns the storage for a CC and whether it is stored doubled.
func (s *State) field(cc int) (*int, bool) {
	switch cc {
	case CCHue:
		return &s.FgHue, true
	case CCSaturation:
		return &s.FgSat, true
	case CCBrightness:
		return &s.FgBright, true
	case CCStart:
		return &s.FgStart, false
	case CCLength:
		return &s.FgLength, false
	case CCForeground:
		return (*int)(&s.FgMode), false
	case CCLines:
		return &s.Lines, false
	case CCAmplitude:
		return &s.Amplitude, false
	case CCBackground:
		return (*int)(&s.BgMode), false
	case CCPan:
		return &s.Pan, false
	case CCBgHue:
		return &s.BgHue, true
	case CCBgSat:
		return &s.BgSat, true
	case CCBgBright:
		return &s.BgBright, true
	case CCBgStart:
		return &s.BgStart, false
	case CCBgLength:
		return &s.BgLength, false
	}
	return nil, false
}

// SetControl stores a 0..127 CC value. Unknown CCs and values above 127 are
// ignored.
func (s *State) SetControl(cc, value int) {
	if value < 0 || value > maxValue {
		return
	}
	f, doubled := s.field(cc)
	if f == nil {
		return
	}
	if doubled {
		value *= 2
	}
	*f = value
}

// Control returns the 0..127 representation of a CC, or 0 for unknown CCs.
func (s *State) Control(cc int) int {
	f, doubled := s.field(cc)
	if f == nil {
		return 0
	}
	if doubled {
		return *f / 2
	}
	return *f
}
