package engine

// colorPhase is one period of 100*sin discretized to 64 steps.
var colorPhase = [64]int{
	10, 20, 29, 38, 47, 56, 63, 71, 77, 83, 88, 92, 96, 98, 100, 100,
	100, 98, 96, 92, 88, 83, 77, 71, 63, 56, 47, 38, 29, 20, 10, 0,
	-10, -20, -29, -38, -47, -56, -63, -71, -77, -83, -88, -92, -96, -98, -100, -100,
	-100, -98, -96, -92, -88, -83, -77, -71, -63, -56, -47, -38, -29, -20, -10, 0,
}

// mirrorMap[i] is the outer-strip LED paired with band LED i+bandLow.
var mirrorMap = [48]uint8{
	23, 22, 21, 20, 19, 18, 17, 16, 15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0,
	95, 94, 93, 92, 91, 90, 89, 88, 87, 86, 85, 84, 83, 82, 81, 80, 79, 78, 77, 76, 75, 74, 73, 72,
}

// channelLEDs maps a MIDI channel to the six LEDs of its floppy drive.
// Row 0 is a placeholder and is never rendered.
var channelLEDs = [NumChannels + 1][LEDsPerChannel]uint8{
	{0, 0, 0, 0, 0, 0},
	{19, 20, 21, 22, 23, 24},
	{29, 30, 31, 32, 33, 34},
	{13, 14, 15, 16, 17, 18},
	{35, 36, 37, 38, 39, 40},
	{7, 8, 9, 10, 11, 12},
	{41, 42, 43, 44, 45, 46},
	{1, 2, 3, 4, 5, 6},
	{47, 48, 49, 50, 51, 52},
	{73, 74, 75, 76, 77, 78},
	{83, 84, 85, 86, 87, 88},
	{67, 68, 69, 70, 71, 72},
	{89, 90, 91, 92, 93, 94},
	{61, 62, 63, 64, 65, 66},
	{95, 96, 97, 98, 99, 100},
	{55, 56, 57, 58, 59, 60},
	{101, 102, 103, 104, 105, 106},
}

// ColorPhase returns the phase table entry for i mod 64, in [-100, 100].
func ColorPhase(i int) int {
	i %= len(colorPhase)
	if i < 0 {
		i += len(colorPhase)
	}
	return colorPhase[i]
}
