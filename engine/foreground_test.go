package engine

import "testing"

const (
	testBgHue = 20
	testFgHue = 100
)

// newTestEngine returns an engine whose background and foreground hues differ,
// so painted LEDs can be told apart by hue alone.
func newTestEngine(mode ForegroundMode) *Engine {
	e := New(DefaultNumLEDs)
	e.SetCC(CCBgHue, testBgHue/2)
	e.SetCC(CCHue, testFgHue/2)
	e.SetCC(CCForeground, int(mode))
	return e
}

func painted(e *Engine) []int {
	var out []int
	for i, c := range e.LEDs() {
		if c.H == testFgHue {
			out = append(out, i)
		}
	}
	return out
}

func TestNotesToDrivesLightsChannel(t *testing.T) {
	e := New(DefaultNumLEDs)
	e.HandleNoteOn(1, 36, 100)
	e.Render()

	leds := e.LEDs()
	for led := 19; led <= 24; led++ {
		if leds[led] != (Color{H: 0, S: 200, V: 200}) {
			t.Fatalf("LED %d: expected lit drive, got %+v", led, leds[led])
		}
	}
	if leds[29] != (Color{H: checkerHueEven, S: checkerSat, V: 200}) {
		t.Fatalf("LED 29: expected checkerboard, got %+v", leds[29])
	}
	if leds[25] != (Color{H: 0, S: 200, V: 0}) {
		t.Fatalf("LED 25: expected background, got %+v", leds[25])
	}

	e.HandleNoteOff(1, 36, 0)
	e.Render()
	leds = e.LEDs()
	if leds[19].H != checkerHueEven || leds[20].H != checkerHueOdd {
		t.Fatalf("expected checkerboard after release, got %+v %+v", leds[19], leds[20])
	}
}

func TestRainbowWheelSteps(t *testing.T) {
	e := newTestEngine(RainbowWheel)
	e.Render()
	leds := e.LEDs()
	step := 255 / DefaultNumLEDs
	for i := 1; i < len(leds); i++ {
		if uint8(leds[i].H-leds[i-1].H) != uint8(step) {
			t.Fatalf("LED %d: hue %d does not follow %d", i, leds[i].H, leds[i-1].H)
		}
	}
}

func TestMovingDotsWrap(t *testing.T) {
	e := newTestEngine(MovingDots)
	e.SetCC(CCLines, 1)
	e.SetCC(CCStart, 106)
	e.SetCC(CCLength, 4)
	e.Render()

	got := painted(e)
	want := []int{0, 1, 106, 107}
	if len(got) != len(want) {
		t.Fatalf("expected LEDs %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected LEDs %v, got %v", want, got)
		}
	}
}

func TestMovingDotsNeedsLines(t *testing.T) {
	e := newTestEngine(MovingDots)
	e.SetCC(CCLength, 10)
	e.Render()
	if n := len(painted(e)); n != 0 {
		t.Fatalf("expected nothing drawn with zero lines, got %d LEDs", n)
	}
}

func TestCometsRampTowardHead(t *testing.T) {
	e := newTestEngine(Comets)
	e.SetCC(CCLines, 1)
	e.SetCC(CCStart, 10)
	e.SetCC(CCLength, 5)
	e.SetCC(CCBrightness, 100)
	e.Render()

	leds := e.LEDs()
	want := []uint8{40, 80, 120, 160, 200}
	for i, v := range want {
		if leds[10+i].V != v {
			t.Fatalf("LED %d: expected brightness %d, got %d", 10+i, v, leds[10+i].V)
		}
	}
}

func TestCometsLineSpacing(t *testing.T) {
	e := newTestEngine(Comets)
	e.SetCC(CCLines, 2)
	e.SetCC(CCLength, 3)
	e.Render()

	leds := e.LEDs()
	want := map[int]uint8{0: 66, 1: 133, 2: 200, 54: 66, 55: 133, 56: 200}
	for led, v := range want {
		if leds[led].H != testFgHue || leds[led].V != v {
			t.Fatalf("LED %d: expected hue %d brightness %d, got %+v", led, testFgHue, v, leds[led])
		}
	}
	if n := len(painted(e)); n != len(want) {
		t.Fatalf("expected %d comet LEDs, got %d", len(want), n)
	}
}

func TestCometsDegenerateParameters(t *testing.T) {
	tests := []struct {
		name          string
		lines, length int
	}{
		{"zero lines", 0, 5},
		{"zero length", 2, 0},
	}
	for _, tt := range tests {
		e := newTestEngine(Comets)
		e.SetCC(CCLines, tt.lines)
		e.SetCC(CCLength, tt.length)
		e.Render()
		if n := len(painted(e)); n != 0 {
			t.Fatalf("%s: expected nothing drawn, got %d LEDs", tt.name, n)
		}
	}
}

func TestBackAndForthAlternatesBlocks(t *testing.T) {
	e := newTestEngine(BackAndForth)
	e.SetCC(CCLength, 5)
	e.Render()

	leds := e.LEDs()
	for i := 0; i < 100; i++ {
		lit := leds[i].H == testFgHue
		if want := (i/5)%2 == 0; lit != want {
			t.Fatalf("LED %d: lit=%v, want %v", i, lit, want)
		}
	}
}

func TestMoveStartHueFollowsPosition(t *testing.T) {
	e := newTestEngine(MoveStartOnNote)
	e.SetCC(CCLines, 2)
	e.SetCC(CCStart, 100)
	e.SetCC(CCLength, 10)
	e.Render()

	// hue steps by 255/108 = 2 per position, before the wrap onto the strip
	tests := []struct {
		led int
		hue uint8
	}{
		{100, 44},
		{107, 58},
		{0, 60},
		{1, 62},
		{46, 44},
		{54, 60},
		{55, 62},
	}
	leds := e.LEDs()
	for _, tt := range tests {
		if got := leds[tt.led]; got != (Color{H: tt.hue, S: 200, V: 200}) {
			t.Fatalf("LED %d: expected hue %d, got %+v", tt.led, tt.hue, got)
		}
	}
	if leds[2].H != testBgHue || leds[99].H != testBgHue {
		t.Fatal("expected LEDs outside the lines to keep the background")
	}
}

func TestColorSinusoidForeground(t *testing.T) {
	e := newTestEngine(ColorSinusoid)
	e.SetCC(CCAmplitude, 127)
	e.SetCC(CCLength, 7)
	e.Render()

	tests := []struct {
		led int
		hue uint8
	}{
		{0, 112}, // phase 10
		{1, 205}, // phase 83
		{2, 221}, // phase 96
		{4, 41},  // phase -47
		{7, 112}, // one period later
	}
	leds := e.LEDs()
	for _, tt := range tests {
		if got := leds[tt.led]; got != (Color{H: tt.hue, S: 200, V: 200}) {
			t.Fatalf("LED %d: expected hue %d, got %+v", tt.led, tt.hue, got)
		}
	}
}

func TestColorSinusoidZeroLengthDrawsNothing(t *testing.T) {
	e := newTestEngine(ColorSinusoid)
	e.SetCC(CCAmplitude, 127)
	e.Render()
	for i, c := range e.LEDs() {
		if c != (Color{H: testBgHue, S: 200, V: 0}) {
			t.Fatalf("LED %d: expected background, got %+v", i, c)
		}
	}
}

func TestFlashLightsIsReproducible(t *testing.T) {
	a := newTestEngine(FlashLights)
	b := newTestEngine(FlashLights)
	for frame := 0; frame < 20; frame++ {
		a.Render()
		b.Render()
		pa, pb := painted(a), painted(b)
		if len(pa) != 1 || len(pb) != 1 {
			t.Fatalf("frame %d: expected one flash, got %v and %v", frame, pa, pb)
		}
		if pa[0] != pb[0] {
			t.Fatalf("frame %d: engines flashed %d and %d", frame, pa[0], pb[0])
		}
	}
}

func TestOceanWavesShape(t *testing.T) {
	e := newTestEngine(OceanWaves)
	e.SetCC(CCPan, 64)
	e.SetCC(CCLength, 20)
	e.Render()

	leds := e.LEDs()
	if leds[53].V != 200 {
		t.Fatalf("expected crest at LED 53, got %+v", leds[53])
	}
	if leds[44].V != 20 || leds[62].V != 20 {
		t.Fatalf("expected faint edges, got %+v and %+v", leds[44], leds[62])
	}
	if leds[43].H == testFgHue || leds[63].H == testFgHue {
		t.Fatal("expected wave to stop at amplitude")
	}
	m, _ := Mirror(53)
	if leds[m] != leds[53] {
		t.Fatalf("expected mirror LED %d to match crest, got %+v", m, leds[m])
	}
}

func TestOceanWavesStayInBand(t *testing.T) {
	for pan := 0; pan <= 127; pan++ {
		for length := 0; length <= 127; length++ {
			e := newTestEngine(OceanWaves)
			e.SetCC(CCPan, pan)
			e.SetCC(CCLength, length)
			e.Render()

			leds := e.LEDs()
			for _, led := range painted(e) {
				if led >= bandLow && led <= bandHigh {
					continue
				}
				m, ok := Mirror(led)
				if !ok || leds[m] != leds[led] {
					t.Fatalf("pan %d length %d: LED %d painted outside the band", pan, length, led)
				}
			}
		}
	}
}

func TestOpposingWavesReachBelowBand(t *testing.T) {
	ocean := newTestEngine(OceanWaves)
	ocean.SetCC(CCPan, 0)
	ocean.SetCC(CCLength, 20)
	ocean.Render()
	if ocean.LEDs()[23].H == testFgHue {
		t.Fatal("ocean waves should not paint LED 23 directly")
	}

	opposing := newTestEngine(OpposingWaves)
	opposing.SetCC(CCPan, 0)
	opposing.SetCC(CCLength, 20)
	opposing.Render()
	if opposing.LEDs()[23].H != testFgHue {
		t.Fatalf("expected opposing waves to reach LED 23, got %+v", opposing.LEDs()[23])
	}
}

func TestOpposingWavesCrestPassesBand(t *testing.T) {
	// pan 51 puts the centre on LED 48; the lower clamp widens amp to 25
	e := newTestEngine(OpposingWaves)
	e.SetCC(CCPan, 51)
	e.SetCC(CCLength, 48)
	e.Render()

	leds := e.LEDs()
	tests := []struct {
		led int
		v   uint8
	}{
		{23, 0},
		{24, 8},
		{48, 200},
		{73, 0},
	}
	for _, tt := range tests {
		if got := leds[tt.led]; got != (Color{H: testFgHue, S: 200, V: tt.v}) {
			t.Fatalf("LED %d: expected brightness %d, got %+v", tt.led, tt.v, got)
		}
	}
}

func TestUnknownForegroundDrawsNothing(t *testing.T) {
	e := newTestEngine(ForegroundMode(42))
	e.Render()
	for i, c := range e.LEDs() {
		if c != (Color{H: testBgHue, S: 200, V: 0}) {
			t.Fatalf("LED %d: expected background, got %+v", i, c)
		}
	}
	if ForegroundMode(42).String() != "None" {
		t.Fatal("expected unknown mode to be named None")
	}
}
