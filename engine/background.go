package engine

// canvas is a bounds-checked view over an LED buffer.
type canvas []Color

func (c canvas) set(i, h, s, v int) {
	if i >= 0 && i < len(c) {
		c[i] = hsv(h, s, v)
	}
}

// rainbowStep is the per-LED hue increment of the rainbow wheel. The
// truncating division means the wheel stops short of 255.
func rainbowStep(numLEDs int) int {
	return 255 / numLEDs
}

// sinusoidHue offsets hue by amp percent of the phase table entry for LED i.
func sinusoidHue(hue, amp, i, start, length int) int {
	idx := ((i + start) * 64 / length) % 64
	return (256 + hue + amp*colorPhase[idx]/100) % 256
}

// RenderBackground fills every LED of leds from the background layer.
// Unknown modes render flat.
func RenderBackground(leds []Color, s *State) {
	c := canvas(leds)
	switch s.BgMode.Resolve() {
	case RainbowBackground:
		renderRainbowBackground(c, s)
	case SinusoidBackground:
		renderSinusoidBackground(c, s)
	default:
		renderFlatBackground(c, s)
	}
}

func renderFlatBackground(c canvas, s *State) {
	for i := range c {
		c.set(i, s.BgHue, s.BgSat, s.BgBright)
	}
}

func renderRainbowBackground(c canvas, s *State) {
	step := rainbowStep(len(c))
	for i := range c {
		c.set(i, (s.BgHue+i*step)%256, s.BgSat, s.BgBright)
	}
}

func renderSinusoidBackground(c canvas, s *State) {
	if s.BgLength == 0 {
		renderFlatBackground(c, s)
		return
	}
	for i := range c {
		h := sinusoidHue(s.BgHue, s.Amplitude, i, s.BgStart, s.BgLength)
		c.set(i, h, s.BgSat, s.BgBright)
	}
}
