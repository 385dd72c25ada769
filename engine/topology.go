package engine

// Fixed hardware layout: 108 LEDs, 16 floppy drives with 6 LEDs each.
const (
	DefaultNumLEDs = 108
	NumChannels    = 16
	LEDsPerChannel = 6
)

// The wave band is the top strip, LEDs 24..71. Its mirror image covers the
// outer strips 0..23 and 72..95.
const (
	bandLow  = 24
	bandHigh = 71
	bandSize = bandHigh - bandLow + 1
)

// Checkerboard tones shown on idle drives and at startup.
const (
	checkerHueEven = 80
	checkerHueOdd  = 100
	checkerSat     = 200
)

// Mirror pairs a band LED with its outer-strip counterpart and back again.
// It reports false for LEDs that have no partner (96 and above).
func Mirror(led int) (int, bool) {
	switch {
	case led >= bandLow && led <= bandHigh:
		return int(mirrorMap[led-bandLow]), true
	case led >= 0 && led < bandLow:
		// 0..23 came from band 47..24
		return 2*bandLow - 1 - led, true
	case led > bandHigh && led <= bandHigh+bandLow:
		// 72..95 came from band 71..48
		return 2*bandLow + bandHigh + bandLow - led, true
	}
	return 0, false
}

// ChannelLEDs returns the six LEDs driven by a MIDI channel (1..16).
func ChannelLEDs(channel int) ([LEDsPerChannel]int, bool) {
	var out [LEDsPerChannel]int
	if channel < 1 || channel > NumChannels {
		return out, false
	}
	for i, led := range channelLEDs[channel] {
		out[i] = int(led)
	}
	return out, true
}
