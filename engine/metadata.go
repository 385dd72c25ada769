package engine

// Engine identity reported to editor hosts.
const (
	EngineName    = "Light Engine v1.0"
	EngineVersion = 1
)

// Layer tags a parameter with the pattern layer it drives.
type Layer string

const (
	LayerForeground Layer = "Foreground"
	LayerBackground Layer = "Background"
	LayerShared     Layer = "Shared"
)

// Parameter describes one CC-driven parameter for editor hosts.
type Parameter struct {
	CC      int
	Name    string
	Layer   Layer
	Tooltip string
}

// ModeInfo describes a pattern. Uses holds indices into Parameters().
type ModeInfo struct {
	ID   int
	Name string
	Uses []int
}

var parameters = [NumParameters]Parameter{
	{CCHue, "Hue", LayerForeground, "Sets color [roygbivmr]. Cyclic (min val = max val)"},
	{CCSaturation, "Saturation", LayerForeground, "Sets saturation [white, chosen hue]"},
	{CCBrightness, "Brightness", LayerForeground, "Sets intensity [LED off, LED on]"},
	{CCStart, "Start", LayerForeground, "Start position of line"},
	{CCLength, "Length", LayerForeground, "Length of line"},
	{CCForeground, "Foreground", LayerForeground, "Foreground mode selector"},
	{CCLines, "Number of Lines", LayerForeground, "Number of lines"},
	{CCAmplitude, "Color Amplitude", LayerShared, "Color amplitude for color sinusoid"},
	{CCBackground, "Background", LayerBackground, "Background mode selector"},
	{CCPan, "Pan", LayerForeground, "Pan position for wave effects"},
	{CCBgHue, "Hue", LayerBackground, "Sets color [roygbivmr]. Cyclic (min val = max val)"},
	{CCBgSat, "Saturation", LayerBackground, "Sets saturation [white, chosen hue]"},
	{CCBgBright, "Brightness", LayerBackground, "Sets intensity [LED off, LED on]"},
	{CCBgStart, "Start", LayerBackground, "Start position of line"},
	{CCBgLength, "Length", LayerBackground, "Length of line"},
}

// parameter indices, for the Uses lists
const (
	pHue = iota
	pSat
	pBright
	pStart
	pLength
	pFgMode
	pLines
	pAmp
	pBgMode
	pPan
	pBgHue
	pBgSat
	pBgBright
	pBgStart
	pBgLength
)

var foregroundModes = [numForegroundModes]ModeInfo{
	{0, "Notes to Drives", []int{pHue, pSat, pBright}},
	{1, "Rainbow Wheel", []int{pHue, pSat, pBright}},
	{2, "Moving Dots", []int{pHue, pSat, pBright, pStart, pLength, pLines}},
	{3, "Comets", []int{pHue, pSat, pBright, pStart, pLength, pLines}},
	{4, "Back and Forth", []int{pHue, pSat, pBright, pStart, pLength}},
	{5, "Move startLED with each note on event", []int{pHue, pSat, pBright, pStart, pLength, pLines}},
	{6, "Color Sinusoid", []int{pHue, pSat, pBright, pStart, pLength, pAmp}},
	{7, "Flash Lights", []int{pHue, pSat, pBright}},
	{8, "Ocean Waves", []int{pHue, pSat, pBright, pLength, pPan}},
	{9, "Opposing Waves", []int{pHue, pSat, pBright, pLength, pPan}},
}

var backgroundModes = [numBackgroundModes]ModeInfo{
	{0, "Flat Color background", []int{pBgHue, pBgSat, pBgBright}},
	{1, "Rainbow wheel background", []int{pBgHue, pBgSat, pBgBright}},
	{2, "Color Sinusoid", []int{pBgHue, pBgSat, pBgBright, pBgStart, pBgLength, pAmp}},
}

// Parameters returns the parameter table in CC order.
func Parameters() []Parameter {
	out := make([]Parameter, len(parameters))
	copy(out, parameters[:])
	return out
}

// ParameterInfo looks up a parameter by CC number.
func ParameterInfo(cc int) (Parameter, bool) {
	if cc < 1 || cc > NumParameters {
		return Parameter{}, false
	}
	return parameters[cc-1], true
}

// ForegroundModes returns the foreground mode table.
func ForegroundModes() []ModeInfo {
	return cloneModes(foregroundModes[:])
}

// BackgroundModes returns the background mode table.
func BackgroundModes() []ModeInfo {
	return cloneModes(backgroundModes[:])
}

func cloneModes(in []ModeInfo) []ModeInfo {
	out := make([]ModeInfo, len(in))
	for i, m := range in {
		out[i] = ModeInfo{ID: m.ID, Name: m.Name, Uses: append([]int(nil), m.Uses...)}
	}
	return out
}
