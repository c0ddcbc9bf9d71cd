package field

import (
	"math"
	"math/rand"
)

// Shell is a cloud of points spread uniformly over a sphere that slowly tumbles.
type Shell struct {
	pos    []float32
	rotX   float64
	rotY   float64
	tiltZ  float64
	radius float64
}

// NewShell places count points on a sphere of the given radius. The layout depends
// only on seed.
func NewShell(count int, radius float64, seed int64) *Shell {
	if count < 0 {
		count = 0
	}
	rng := rand.New(rand.NewSource(seed))
	s := &Shell{
		pos:    make([]float32, 3*count),
		tiltZ:  math.Pi / 4,
		radius: radius,
	}
	for i := 0; i < count; i++ {
		theta := 2 * math.Pi * rng.Float64()
		phi := math.Acos(2*rng.Float64() - 1)
		s.pos[3*i] = float32(radius * math.Sin(phi) * math.Cos(theta))
		s.pos[3*i+1] = float32(radius * math.Sin(phi) * math.Sin(theta))
		s.pos[3*i+2] = float32(radius * math.Cos(phi))
	}
	return s
}

// Len returns the number of points.
func (s *Shell) Len() int { return len(s.pos) / 3 }

// Radius returns the sphere radius.
func (s *Shell) Radius() float64 { return s.radius }

// Positions returns the model-space positions (x,y,z per point).
func (s *Shell) Positions() []float32 { return s.pos }

// Advance rotates the shell by dt seconds.
func (s *Shell) Advance(dt float64) {
	s.rotX -= dt / 10
	s.rotY -= dt / 15
}

// Rotation returns the inner x/y rotation and the fixed outer z tilt, in radians.
func (s *Shell) Rotation() (x, y, z float64) { return s.rotX, s.rotY, s.tiltZ }
