package field

import (
	"fmt"
	"math"
)

// Wave is the ambient height at base position (bx, by) and time t.
func Wave(bx, by, t, amplitude, speed float64) float64 {
	vt := t * speed
	return amplitude*0.6*math.Sin(bx*1.2+vt) +
		amplitude*0.4*math.Cos(by*1.4+vt*0.7) +
		amplitude*0.3*math.Sin((bx+by)*0.8+vt*0.5)
}

// Influence is the pointer proximity factor in [0,1]; zero at or beyond radius.
func Influence(bx, by, mx, my, radius float64) float64 {
	dx := bx - mx
	dy := by - my
	v := 1 - math.Sqrt(dx*dx+dy*dy)/radius
	if v > 0 {
		return v
	}
	return 0
}

// Buffers is a read-only view of the animator buffers.
//
// Positions and Colors hold three float32 per point and alias the animator's
// storage: they are valid until the next Update, Reset or Dispose.
type Buffers struct {
	Positions   []float32
	Colors      []float32
	NeedsUpdate bool
}

// Animator simulates the particle field.
type Animator struct {
	cfg       Config
	colorRate float64

	n    int
	base []float64 // x,y per point
	pos  []float32 // x,y,z per point
	col  []float32 // r,g,b per point

	dirty  bool
	frames uint64
}

// New builds an animator over a Resolution×Resolution lattice centred at the origin.
func New(cfg Config) (*Animator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	n := cfg.Resolution
	half := float64(n-1) / 2
	base := make([][2]float64, 0, n*n)
	for row := 0; row < n; row++ {
		y := (float64(row) - half) * cfg.Spacing
		for col := 0; col < n; col++ {
			x := (float64(col) - half) * cfg.Spacing
			base = append(base, [2]float64{x, y})
		}
	}
	return newAnimator(cfg, base), nil
}

// NewWithBase builds an animator over explicit base positions. Resolution and
// Spacing are not used.
func NewWithBase(cfg Config, base [][2]float64) (*Animator, error) {
	if len(base) == 0 {
		return nil, fmt.Errorf("%w: no base positions", ErrInvalidConfiguration)
	}
	if err := cfg.validateDynamics(); err != nil {
		return nil, err
	}
	return newAnimator(cfg, base), nil
}

func newAnimator(cfg Config, base [][2]float64) *Animator {
	a := &Animator{
		cfg:       cfg,
		colorRate: cfg.ColorRate(),
		n:         len(base),
		base:      make([]float64, 2*len(base)),
		pos:       make([]float32, 3*len(base)),
		col:       make([]float32, 3*len(base)),
	}
	for i, p := range base {
		a.base[2*i] = p[0]
		a.base[2*i+1] = p[1]
	}
	a.Reset()
	return a
}

// Config returns the constants the animator was built with.
func (a *Animator) Config() Config { return a.cfg }

// Len returns the number of points.
func (a *Animator) Len() int { return a.n }

// Frames returns the number of updates applied since construction or Reset.
func (a *Animator) Frames() uint64 { return a.frames }

// Reset restores the initial state: z = 0 and colour = Base for every point.
func (a *Animator) Reset() {
	if a.pos == nil {
		return
	}
	c := a.cfg.Base
	for i := 0; i < a.n; i++ {
		j := 3 * i
		a.pos[j] = float32(a.base[2*i])
		a.pos[j+1] = float32(a.base[2*i+1])
		a.pos[j+2] = 0
		a.col[j] = float32(c.R)
		a.col[j+1] = float32(c.G)
		a.col[j+2] = float32(c.B)
	}
	a.frames = 0
	a.dirty = true
}

// Update advances every point one frame toward its target for time t and pointer p.
func (a *Animator) Update(t float64, p Pointer) {
	if a.pos == nil {
		return
	}
	cfg := &a.cfg
	amp, speed := cfg.WaveAmplitude, cfg.WaveSpeed
	radius, strength := cfg.Radius, cfg.Strength
	rate, crate := cfg.Rate, a.colorRate
	c0, c1 := cfg.Base, cfg.Highlight

	for i := 0; i < a.n; i++ {
		bx := a.base[2*i]
		by := a.base[2*i+1]

		var infl float64
		if p.Active {
			infl = Influence(bx, by, p.X, p.Y, radius)
		}
		target := Wave(bx, by, t, amp, speed) + infl*infl*strength

		j := 3 * i
		a.pos[j+2] = smooth(a.pos[j+2], target, rate)

		tc := c0
		if infl > cfg.Threshold {
			tc = c0.Lerp(c1, infl)
		}
		a.col[j] = smooth(a.col[j], tc.R, crate)
		a.col[j+1] = smooth(a.col[j+1], tc.G, crate)
		a.col[j+2] = smooth(a.col[j+2], tc.B, crate)
	}
	a.frames++
	a.dirty = true
}

// smooth moves cur a fraction rate of the way toward target; rate 1 snaps.
func smooth(cur float32, target, rate float64) float32 {
	if rate >= 1 {
		return float32(target)
	}
	c := float64(cur)
	return float32(c + (target-c)*rate)
}

// Buffers returns the current buffers and whether they changed since Uploaded.
func (a *Animator) Buffers() Buffers {
	return Buffers{Positions: a.pos, Colors: a.col, NeedsUpdate: a.dirty}
}

// Uploaded acknowledges that the consumer has copied the current buffers.
func (a *Animator) Uploaded() { a.dirty = false }

// Base returns the immutable base position of point i.
func (a *Animator) Base(i int) (x, y float64) {
	return a.base[2*i], a.base[2*i+1]
}

// Height returns the current z of point i, or 0 once disposed.
func (a *Animator) Height(i int) float32 {
	if a.pos == nil {
		return 0
	}
	return a.pos[3*i+2]
}

// Color returns the current colour of point i, or black once disposed.
func (a *Animator) Color(i int) (r, g, b float32) {
	if a.col == nil {
		return 0, 0, 0
	}
	j := 3 * i
	return a.col[j], a.col[j+1], a.col[j+2]
}

// Target returns the height and colour point i is moving toward at (t, p).
func (a *Animator) Target(i int, t float64, p Pointer) (z float64, c RGB) {
	bx, by := a.Base(i)
	var infl float64
	if p.Active {
		infl = Influence(bx, by, p.X, p.Y, a.cfg.Radius)
	}
	z = Wave(bx, by, t, a.cfg.WaveAmplitude, a.cfg.WaveSpeed) + infl*infl*a.cfg.Strength
	c = a.cfg.Base
	if infl > a.cfg.Threshold {
		c = c.Lerp(a.cfg.Highlight, infl)
	}
	return z, c
}

// Dispose releases the buffers. Later calls to Update are no-ops.
func (a *Animator) Dispose() {
	a.pos = nil
	a.col = nil
	a.dirty = false
}

// Disposed reports whether Dispose has been called.
func (a *Animator) Disposed() bool { return a.pos == nil }
