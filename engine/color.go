package engine

// Color is an HSV triple. Hue is cyclic mod 256.
type Color struct {
	H, S, V uint8
}

func hsv(h, s, v int) Color {
	return Color{H: uint8(h), S: uint8(s), V: uint8(v)}
}
