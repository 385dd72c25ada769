package engine

import "math/rand"

type foregroundFunc func(c canvas, s *State, rng *rand.Rand)

var foregroundRenderers = [numForegroundModes]foregroundFunc{
	NotesToDrives:   renderNotesToDrives,
	RainbowWheel:    renderRainbowWheel,
	MovingDots:      renderMovingDots,
	Comets:          renderComets,
	BackAndForth:    renderBackAndForth,
	MoveStartOnNote: renderMoveStartOnNote,
	ColorSinusoid:   renderColorSinusoid,
	FlashLights:     renderFlashLights,
	OceanWaves:      renderOceanWaves,
	OpposingWaves:   renderOpposingWaves,
}

// RenderForeground draws the foreground mode over leds, leaving LEDs the mode
// does not target untouched. Unknown modes draw nothing. rng is reseeded from
// s.Frame by modes that need randomness.
func RenderForeground(leds []Color, s *State, rng *rand.Rand) {
	if !s.FgMode.Valid() || len(leds) == 0 {
		return
	}
	foregroundRenderers[s.FgMode](canvas(leds), s, rng)
}

func renderNotesToDrives(c canvas, s *State, _ *rand.Rand) {
	for ch := 1; ch <= NumChannels; ch++ {
		for i, led := range channelLEDs[ch] {
			switch {
			case s.CurrentNote[ch] != 0:
				c.set(int(led), s.FgHue, s.FgSat, s.FgBright)
			case i%2 == 0:
				c.set(int(led), checkerHueEven, checkerSat, s.FgBright)
			default:
				c.set(int(led), checkerHueOdd, checkerSat, s.FgBright)
			}
		}
	}
}

func renderRainbowWheel(c canvas, s *State, _ *rand.Rand) {
	step := rainbowStep(len(c))
	for i := range c {
		c.set(i, (s.FgHue+i*step)%256, s.FgSat, s.FgBright)
	}
}

func renderMovingDots(c canvas, s *State, _ *rand.Rand) {
	if s.Lines == 0 {
		return
	}
	spacing := len(c) / s.Lines
	for line := 0; line < s.Lines; line++ {
		for led := s.FgStart; led < s.FgStart+s.FgLength; led++ {
			c.set((led+line*spacing)%len(c), s.FgHue, s.FgSat, s.FgBright)
		}
	}
}

// renderComets ramps brightness up from ffBright/L at the tail to ffBright at
// the head.
func renderComets(c canvas, s *State, _ *rand.Rand) {
	if s.Lines == 0 || s.FgLength == 0 {
		return
	}
	spacing := len(c) / s.Lines
	for line := 0; line < s.Lines; line++ {
		remaining := s.FgLength - 1
		for led := s.FgStart; led < s.FgStart+s.FgLength; led++ {
			v := s.FgBright * (s.FgLength - remaining) / s.FgLength
			c.set((led+line*spacing)%len(c), s.FgHue, s.FgSat, v)
			remaining--
		}
	}
}

func renderBackAndForth(c canvas, s *State, _ *rand.Rand) {
	if s.FgLength == 0 {
		return
	}
	offset := s.FgStart * s.FgLength
	for block := 0; block < len(c); block += 2 * s.FgLength {
		for led := 0; led < s.FgLength; led++ {
			c.set((offset+block+led)%len(c), s.FgHue, s.FgSat, s.FgBright)
		}
	}
}

func renderMoveStartOnNote(c canvas, s *State, _ *rand.Rand) {
	if s.Lines == 0 {
		return
	}
	spacing := len(c) / s.Lines
	step := rainbowStep(len(c))
	for line := 0; line < s.Lines; line++ {
		for led := s.FgStart; led < s.FgStart+s.FgLength; led++ {
			h := (s.FgHue + led*step) % 256
			c.set((led+line*spacing)%len(c), h, s.FgSat, s.FgBright)
		}
	}
}

func renderColorSinusoid(c canvas, s *State, _ *rand.Rand) {
	if s.FgLength == 0 {
		return
	}
	for i := range c {
		h := sinusoidHue(s.FgHue, s.Amplitude, i, s.FgStart, s.FgLength)
		c.set(i, h, s.FgSat, s.FgBright)
	}
}

// renderFlashLights lights one LED picked from a stream seeded by the frame
// counter, so identical frame sequences flash identically.
func renderFlashLights(c canvas, s *State, rng *rand.Rand) {
	rng.Seed(int64(s.Frame))
	c.set(rng.Intn(len(c)), s.FgHue, s.FgSat, s.FgBright)
}

// waveCenter places the wave between a quarter and three quarters of the
// strip according to pan.
func waveCenter(numLEDs, pan int) int {
	return (numLEDs/2-1)*pan/maxValue + numLEDs/4
}

// mirrorBand paints the outer-strip partner of band LED led, if it has one.
func mirrorBand(c canvas, led, h, sat, v int) {
	if k := led - bandLow; k >= 0 && k < bandSize {
		c.set(int(mirrorMap[k]), h, sat, v)
	}
}

func renderOceanWaves(c canvas, s *State, _ *rand.Rand) {
	mid := waveCenter(len(c), s.Pan)
	amp := s.FgLength / 2
	if mid-amp <= bandLow {
		amp = mid - bandLow
	} else if mid+amp > bandHigh {
		amp = bandHigh - mid
	}
	// the lower clamp alone can push the crest past the top of the band
	if mid+amp > bandHigh {
		amp = bandHigh - mid
	}
	if amp <= 0 {
		return
	}
	for p := 0; p < amp; p++ {
		v := s.FgBright * (amp - p) / amp
		c.set(mid+p, s.FgHue, s.FgSat, v)
		c.set(mid-p, s.FgHue, s.FgSat, v)
		mirrorBand(c, mid+p, s.FgHue, s.FgSat, v)
		mirrorBand(c, mid-p, s.FgHue, s.FgSat, v)
	}
}

// renderOpposingWaves clamps one LED lower than renderOceanWaves and includes
// the amp offset itself, so its trough reaches LED 23. The upper bound is only
// applied when the lower clamp did not fire, so the crest can run past 71.
func renderOpposingWaves(c canvas, s *State, _ *rand.Rand) {
	mid := waveCenter(len(c), s.Pan)
	amp := s.FgLength / 2
	if mid-amp <= bandLow {
		amp = mid - (bandLow - 1)
	} else if mid+amp > bandHigh {
		amp = bandHigh - mid
	}
	if amp <= 0 {
		return
	}
	opposite := len(c) - mid
	for p := 0; p <= amp; p++ {
		v := s.FgBright * (amp - p) / amp
		c.set(mid+p, s.FgHue, s.FgSat, v)
		c.set(mid-p, s.FgHue, s.FgSat, v)
		mirrorBand(c, opposite+p, s.FgHue, s.FgSat, v)
		mirrorBand(c, opposite-p, s.FgHue, s.FgSat, v)
	}
}
