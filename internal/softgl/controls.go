package softgl

// OrbitController places a camera on a sphere around Target.
//
// Yaw turns around the world Y axis. Pitch tilts around X; negative pitch puts
// the camera above the XZ plane.
type OrbitController struct {
	Target Vec3
	Yaw    Scalar
	Pitch  Scalar
	Radius Scalar

	MinPitch Scalar
	MaxPitch Scalar
}

// Apply moves cam onto the orbit and aims it at Target.
func (c *OrbitController) Apply(cam *Camera) {
	if cam == nil {
		return
	}
	r := c.Radius
	if r <= 0 {
		r = 3
	}
	rot := Mat4Mul(Mat4RotateY(c.Yaw), Mat4RotateX(c.Pitch))
	p := Mat4MulV4(rot, Vec4{Z: r, W: 1})

	cam.Position = c.Target.Add(V3(p.X, p.Y, p.Z))
	cam.Target = c.Target
	if cam.Up == (Vec3{}) {
		cam.Up = V3(0, 1, 0)
	}
}

// SetPitch sets the pitch, clamped to [MinPitch, MaxPitch] when a limit is set.
func (c *OrbitController) SetPitch(p Scalar) {
	if c.MinPitch != 0 {
		p = max(p, c.MinPitch)
	}
	if c.MaxPitch != 0 {
		p = min(p, c.MaxPitch)
	}
	c.Pitch = p
}
