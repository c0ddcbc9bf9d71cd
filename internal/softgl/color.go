package softgl

// Color is an RGBA color in 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, A: 0xFF} }

// RGBf builds an opaque color from channels in [0,1]; values outside are clamped.
func RGBf(r, g, b float32) Color {
	return Color{R: unitToByte(r), G: unitToByte(g), B: unitToByte(b), A: 0xFF}
}

func (c Color) WithAlpha(a uint8) Color { c.A = a; return c }

func unitToByte(v float32) uint8 {
	return uint8(Clamp01(v)*255 + 0.5)
}
