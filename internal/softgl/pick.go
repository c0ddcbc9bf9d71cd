package softgl

// Ray is a half-line in world space.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// ScreenToNDC maps a pixel centre to normalized device coordinates in [-1,1],
// with +Y up. It is the inverse of the renderer's viewport mapping.
func ScreenToNDC(x, y, w, h int) (nx, ny Scalar) {
	if w <= 1 || h <= 1 {
		return 0, 0
	}
	nx = Scalar(x)/Scalar(w-1)*2 - 1
	ny = 1 - Scalar(y)/Scalar(h-1)*2
	return nx, ny
}

// Ray returns the world-space ray through the NDC position (nx, ny).
func (c Camera) Ray(nx, ny, aspect Scalar) Ray {
	f := Normalize(c.Target.Sub(c.Position))
	s := Normalize(Cross(f, c.up()))
	u := Cross(s, f)

	tanHalf := tan32(c.fovY() / 2)
	dir := f.Add(s.Mul(nx * tanHalf * aspect)).Add(u.Mul(ny * tanHalf))
	return Ray{Origin: c.Position, Dir: Normalize(dir)}
}

// IntersectPlaneY returns where the ray crosses the plane y = height.
// ok is false when the ray is parallel to the plane or points away from it.
func (r Ray) IntersectPlaneY(height Scalar) (Vec3, bool) {
	if r.Dir.Y == 0 {
		return Vec3{}, false
	}
	t := (height - r.Origin.Y) / r.Dir.Y
	if t < 0 {
		return Vec3{}, false
	}
	return r.Origin.Add(r.Dir.Mul(t)), true
}
