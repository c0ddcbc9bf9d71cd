package fieldview

import (
	"math"

	"wavefield/internal/field"
	"wavefield/internal/softgl"
)

const (
	minElevation = 0.15
	maxElevation = 1.45
)

// gridTransform lays grid space (x, y, height) onto the world with height as +Y
// and grid y as -Z.
var gridTransform = softgl.Mat4RotateX(-math.Pi / 2)

// gridToWorld maps a grid-plane point at height z to world space.
func gridToWorld(x, y, z float64) softgl.Vec3 {
	return softgl.V3(float32(x), float32(z), float32(-y))
}

// cameraMapper picks the grid point under a pixel by casting a ray from the
// scene camera onto the grid plane.
type cameraMapper struct {
	cam *softgl.Camera
}

func (m cameraMapper) ToGrid(x, y, w, h int) (gx, gy float64, ok bool) {
	if m.cam == nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	nx, ny := softgl.ScreenToNDC(x, y, w, h)
	hit, ok := m.cam.Ray(nx, ny, softgl.Aspect(w, h)).IntersectPlaneY(0)
	if !ok {
		return 0, 0, false
	}
	return float64(hit.X), float64(-hit.Z), true
}

var _ field.Mapper = cameraMapper{}

func colorOf(c field.RGB) softgl.Color {
	return softgl.RGBf(float32(c.R), float32(c.G), float32(c.B))
}

// shellTransform places the shell: the fixed z tilt wraps the tumbling x/y
// rotation, then the whole sphere is scaled into grid units.
func shellTransform(s *field.Shell, scale float64) softgl.Mat4 {
	rx, ry, tz := s.Rotation()
	inner := softgl.Mat4Mul(softgl.Mat4RotateX(float32(rx)), softgl.Mat4RotateY(float32(ry)))
	m := softgl.Mat4Mul(softgl.Mat4RotateZ(float32(tz)), inner)
	sc := float32(scale)
	return softgl.Mat4Mul(softgl.Mat4Scale(softgl.V3(sc, sc, sc)), m)
}

// newRingMesh builds a flat unit annulus in the XZ plane.
func newRingMesh(inner float32, segments int) softgl.Mesh {
	if segments < 3 {
		segments = 3
	}
	verts := make([]softgl.Vertex, 0, 2*segments)
	indices := make([]uint16, 0, 6*segments)

	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		c, s := float32(math.Cos(a)), float32(math.Sin(a))
		verts = append(verts,
			softgl.Vertex{Pos: softgl.V3(c, 0, s)},
			softgl.Vertex{Pos: softgl.V3(c*inner, 0, s*inner)},
		)
	}
	for i := 0; i < segments; i++ {
		o0 := uint16(2 * i)
		i0 := o0 + 1
		o1 := uint16(2 * ((i + 1) % segments))
		i1 := o1 + 1
		indices = append(indices, o0, o1, i1)
		indices = append(indices, o0, i1, i0)
	}
	return softgl.Mesh{Vertices: verts, Indices: indices}
}

// ringTransform centres the unit ring on the pointer and scales it to radius.
func ringTransform(p field.Pointer, radius float64) softgl.Mat4 {
	r := float32(radius)
	return softgl.Mat4Mul(
		softgl.Mat4Translate(gridToWorld(p.X, p.Y, 0)),
		softgl.Mat4Scale(softgl.V3(r, 1, r)),
	)
}
