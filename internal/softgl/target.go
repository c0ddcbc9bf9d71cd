package softgl

// Target is a minimal pixel target for software rendering.
//
// Implementations should clip out-of-bounds coordinates.
type Target interface {
	Size() (w, h int)
	SetPixel(x, y int, c Color)
	Clear(c Color)
}

// Blender is implemented by targets that support additive blending.
// The color alpha scales the contribution.
type Blender interface {
	AddPixel(x, y int, c Color)
}

// RenderMode selects the mesh rasterization mode.
type RenderMode uint8

const (
	RenderWireframe RenderMode = iota
	RenderSolidFlat
)

func addChannel(dst, src, alpha uint8) uint8 {
	v := uint32(dst) + uint32(src)*uint32(alpha)/255
	if v > 0xFF {
		v = 0xFF
	}
	return uint8(v)
}
