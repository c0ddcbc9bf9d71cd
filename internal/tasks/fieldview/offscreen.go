package fieldview

import (
	"fmt"
	"image"

	"wavefield/internal/field"
	"wavefield/internal/kernel"
	"wavefield/internal/softgl"
)

// Offscreen drives the view directly, without a kernel, input service or
// framebuffer. Frames are rendered on demand into an image.
type Offscreen struct {
	t *Task
}

// NewOffscreen prepares a w by h scene.
func NewOffscreen(w, h int, opts Options) (*Offscreen, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("offscreen size %dx%d must be positive", w, h)
	}
	t := New(nil, kernel.Capability{}, kernel.Capability{}, opts, nil)
	t.w, t.h = w, h
	if err := t.build(); err != nil {
		return nil, err
	}
	return &Offscreen{t: t}, nil
}

// PointerAt moves the pointer to viewport pixel (x, y).
func (o *Offscreen) PointerAt(x, y int) {
	o.t.tracker.Apply(field.PointerEvent{X: x, Y: y, Width: o.t.w, Height: o.t.h})
}

// Leave marks the pointer as outside the viewport.
func (o *Offscreen) Leave() { o.t.tracker.Leave() }

// Step advances the animation by dt seconds without drawing.
func (o *Offscreen) Step(dt float64) { o.t.step(nil, dt) }

// Render draws the current frame into img, which should match the viewport size.
func (o *Offscreen) Render(img *image.RGBA) {
	o.t.r.Render(softgl.ImageTarget{Img: img}, o.t.s)
}

// Pointer returns the current grid-space pointer.
func (o *Offscreen) Pointer() field.Pointer { return o.t.tracker.Pointer() }

// Frames returns the number of animator updates so far.
func (o *Offscreen) Frames() uint64 { return o.t.anim.Frames() }

// Close releases the animator buffers.
func (o *Offscreen) Close() { o.t.dispose() }
