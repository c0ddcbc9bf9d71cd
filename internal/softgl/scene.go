package softgl

// Material is a minimal surface description.
type Material struct {
	BaseColor Color
}

// Camera is a perspective camera looking from Position at Target.
type Camera struct {
	Position Vec3
	Target   Vec3
	Up       Vec3

	FOVYRad Scalar
	Near    Scalar
	Far     Scalar
}

func (c Camera) up() Vec3 {
	if c.Up == (Vec3{}) {
		return V3(0, 1, 0)
	}
	return c.Up
}

// View returns the camera view matrix.
func (c Camera) View() Mat4 {
	return Mat4LookAt(c.Position, c.Target, c.up())
}

// Projection returns the projection matrix for a target aspect.
func (c Camera) Projection(aspect Scalar) Mat4 {
	return Mat4Perspective(c.fovY(), aspect, c.Near, c.Far)
}

func (c Camera) fovY() Scalar {
	if c.FOVYRad == 0 {
		return 1
	}
	return c.FOVYRad
}

// Vertex is a mesh vertex.
type Vertex struct {
	Pos Vec3
}

// Mesh is a triangle mesh with an object transform.
type Mesh struct {
	Enabled bool

	Vertices []Vertex
	Indices  []uint16 // triangle list

	Transform Mat4
	Material  Material
}

// PointCloud is a set of points drawn as square splats.
//
// Positions and Colors hold three floats per point; Colors is optional and in [0,1].
// Without Colors every point uses Tint. Additive clouds blend into the target (when
// it supports blending) and neither test nor write depth.
type PointCloud struct {
	Enabled bool

	Positions []float32
	Colors    []float32
	Tint      Color

	// Size is the splat edge in pixels at unit view depth; clamped to [1, MaxSize].
	Size    Scalar
	MaxSize int

	Additive  bool
	Transform Mat4
}

// Scene is a collection of objects to render.
type Scene struct {
	Camera Camera

	meshes     []Mesh
	meshAlive  []bool
	clouds     []PointCloud
	cloudAlive []bool
}

// CreateScene allocates a scene with fixed mesh and point cloud capacities.
func CreateScene(maxMeshes, maxClouds int) *Scene {
	if maxMeshes < 0 {
		maxMeshes = 0
	}
	if maxClouds < 0 {
		maxClouds = 0
	}
	return &Scene{
		Camera: Camera{
			Position: V3(0, 0, 3),
			Target:   V3(0, 0, 0),
			Up:       V3(0, 1, 0),
			FOVYRad:  1,
			Near:     0.05,
			Far:      100,
		},
		meshes:     make([]Mesh, maxMeshes),
		meshAlive:  make([]bool, maxMeshes),
		clouds:     make([]PointCloud, maxClouds),
		cloudAlive: make([]bool, maxClouds),
	}
}

// AddMesh adds a mesh to the scene and returns its id or -1 if full.
func (s *Scene) AddMesh(m Mesh) int {
	if s == nil {
		return -1
	}
	for i := range s.meshes {
		if s.meshAlive[i] {
			continue
		}
		if m.Transform == (Mat4{}) {
			m.Transform = Mat4Identity()
		}
		if m.Material.BaseColor == (Color{}) {
			m.Material.BaseColor = RGB(0xCC, 0xCC, 0xCC)
		}
		m.Enabled = true
		s.meshes[i] = m
		s.meshAlive[i] = true
		return i
	}
	return -1
}

// SetMeshEnabled enables/disables a mesh by id.
func (s *Scene) SetMeshEnabled(id int, enabled bool) {
	if s == nil || id < 0 || id >= len(s.meshes) || !s.meshAlive[id] {
		return
	}
	s.meshes[id].Enabled = enabled
}

// UpdateMeshTransform updates a mesh transform by id.
func (s *Scene) UpdateMeshTransform(id int, m Mat4) {
	if s == nil || id < 0 || id >= len(s.meshes) || !s.meshAlive[id] {
		return
	}
	s.meshes[id].Transform = m
}

// AddPoints adds a point cloud and returns its id or -1 if full.
func (s *Scene) AddPoints(pc PointCloud) int {
	if s == nil {
		return -1
	}
	for i := range s.clouds {
		if s.cloudAlive[i] {
			continue
		}
		if pc.Transform == (Mat4{}) {
			pc.Transform = Mat4Identity()
		}
		if pc.Size <= 0 {
			pc.Size = 1
		}
		if pc.MaxSize <= 0 {
			pc.MaxSize = 4
		}
		if pc.Tint == (Color{}) {
			pc.Tint = RGB(0xFF, 0xFF, 0xFF)
		}
		pc.Enabled = true
		s.clouds[i] = pc
		s.cloudAlive[i] = true
		return i
	}
	return -1
}

// UpdatePoints swaps the buffers of a point cloud. The scene keeps the slices;
// the caller must not mutate them while a render is in progress.
func (s *Scene) UpdatePoints(id int, positions, colors []float32) {
	if s == nil || id < 0 || id >= len(s.clouds) || !s.cloudAlive[id] {
		return
	}
	s.clouds[id].Positions = positions
	s.clouds[id].Colors = colors
}

// UpdatePointsTransform updates a point cloud transform by id.
func (s *Scene) UpdatePointsTransform(id int, m Mat4) {
	if s == nil || id < 0 || id >= len(s.clouds) || !s.cloudAlive[id] {
		return
	}
	s.clouds[id].Transform = m
}

// SetPointsEnabled enables/disables a point cloud by id.
func (s *Scene) SetPointsEnabled(id int, enabled bool) {
	if s == nil || id < 0 || id >= len(s.clouds) || !s.cloudAlive[id] {
		return
	}
	s.clouds[id].Enabled = enabled
}

func (s *Scene) eachMesh(fn func(m *Mesh)) {
	for i := range s.meshes {
		if !s.meshAlive[i] {
			continue
		}
		fn(&s.meshes[i])
	}
}

func (s *Scene) eachCloud(fn func(pc *PointCloud)) {
	for i := range s.clouds {
		if !s.cloudAlive[i] {
			continue
		}
		fn(&s.clouds[i])
	}
}

// MeshEnabled reports whether a live mesh is currently drawn.
func (s *Scene) MeshEnabled(id int) bool {
	if s == nil || id < 0 || id >= len(s.meshes) || !s.meshAlive[id] {
		return false
	}
	return s.meshes[id].Enabled
}
