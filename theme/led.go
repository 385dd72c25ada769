package theme

import (
	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/engine"
	"github.com/lucasb-eyer/go-colorful"
)

// LEDColor converts an engine HSV triple to RGB. Hue 0-255 spans the whole
// color wheel, the same scale the strip firmware uses.
func LEDColor(c engine.Color) RGB {
	col := colorful.Hsv(float64(c.H)*360/256, float64(c.S)/255, float64(c.V)/255)
	r, g, b := col.RGB255()
	return RGB{r, g, b}
}

// LEDColors converts a whole frame.
func LEDColors(leds []engine.Color) []RGB {
	out := make([]RGB, len(leds))
	for i, c := range leds {
		out[i] = LEDColor(c)
	}
	return out
}
