package engine

// ForegroundMode selects the pattern drawn over the background.
type ForegroundMode int

const (
	NotesToDrives ForegroundMode = iota
	RainbowWheel
	MovingDots
	Comets
	BackAndForth
	MoveStartOnNote
	ColorSinusoid
	FlashLights
	OceanWaves
	OpposingWaves
	numForegroundModes
)

// Valid reports whether m is one of the ten foreground modes.
func (m ForegroundMode) Valid() bool {
	return m >= 0 && m < numForegroundModes
}

func (m ForegroundMode) String() string {
	if !m.Valid() {
		return "None"
	}
	return foregroundModes[m].Name
}

// BackgroundMode selects the pattern that fills the whole strip first.
type BackgroundMode int

const (
	FlatBackground BackgroundMode = iota
	RainbowBackground
	SinusoidBackground
	numBackgroundModes
)

// Valid reports whether m is one of the three background modes.
func (m BackgroundMode) Valid() bool {
	return m >= 0 && m < numBackgroundModes
}

// Resolve maps unknown background modes to flat.
func (m BackgroundMode) Resolve() BackgroundMode {
	if !m.Valid() {
		return FlatBackground
	}
	return m
}

func (m BackgroundMode) String() string {
	return backgroundModes[m.Resolve()].Name
}
