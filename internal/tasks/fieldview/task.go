// Package fieldview runs the particle field: it owns the animator and its
// pointer state, turns input messages into pointer and camera changes, and
// renders every frame into the HAL framebuffer.
package fieldview

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"wavefield/hal"
	"wavefield/internal/client/logger"
	"wavefield/internal/field"
	"wavefield/internal/kernel"
	"wavefield/internal/proto"
	"wavefield/internal/softgl"
)

const component = "fieldview"

var errNoFramebuffer = errors.New("no RGB565 framebuffer")

type Task struct {
	disp   hal.Display
	ep     kernel.Capability
	logCap kernel.Capability
	opts   Options
	exit   func()

	fb hal.Framebuffer
	w  int
	h  int

	anim    *field.Animator
	tracker *field.Tracker
	shell   *field.Shell

	r *softgl.Renderer
	s *softgl.Scene

	orbit      softgl.OrbitController
	elevation  float32
	pitch      float32
	gridCloud  int
	shellCloud int
	ringMesh   int

	active bool
	paused bool
	ring   bool
	clock  float64

	lastFrame  uint64
	frames     uint64
	updateTime time.Duration
}

// New creates the task. exit is called when the user asks to quit; it may be nil.
func New(disp hal.Display, ep, logCap kernel.Capability, opts Options, exit func()) *Task {
	return &Task{
		disp:       disp,
		ep:         ep,
		logCap:     logCap,
		opts:       opts,
		exit:       exit,
		active:     true,
		ring:       opts.Ring,
		gridCloud:  -1,
		shellCloud: -1,
		ringMesh:   -1,
	}
}

func (t *Task) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(t.ep)
	if !ok {
		return
	}
	if err := t.init(); err != nil {
		_ = logger.LogRetry(ctx, t.logCap, component+": start error: "+err.Error(), 100)
		return
	}
	defer t.dispose()

	_ = logger.LogRetry(ctx, t.logCap, fmt.Sprintf("%s: running %d points on %dx%d", component, t.anim.Len(), t.w, t.h), 100)

	done := make(chan struct{})
	defer close(done)
	tickCh := ctx.Ticks(done)

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if !t.handleMessage(ctx, msg) {
				return
			}

		case now := <-tickCh:
			if !t.active {
				continue
			}
			if t.lastFrame != 0 && now-t.lastFrame < t.opts.FrameInterval {
				continue
			}
			dt := t.opts.FrameInterval
			if t.lastFrame != 0 {
				dt = now - t.lastFrame
			}
			t.lastFrame = now
			t.step(ctx, float64(dt)/1000)
			t.render()
		}
	}
}

// handleMessage applies one inbound message. It returns false when the task
// should stop.
func (t *Task) handleMessage(ctx *kernel.Context, msg kernel.Message) bool {
	switch proto.Kind(msg.Kind) {
	case proto.MsgPointerMove:
		x, y, w, h, ok := proto.DecodePointerMovePayload(msg.Payload())
		if !ok {
			return true
		}
		t.tracker.Apply(field.PointerEvent{X: x, Y: y, Width: w, Height: h})

	case proto.MsgPointerLeave:
		t.tracker.Leave()

	case proto.MsgKey:
		code, press, r, ok := proto.DecodeKeyPayload(msg.Payload())
		if !ok || !press {
			return true
		}
		return t.handleKey(ctx, hal.KeyCode(code), r)

	case proto.MsgAppControl:
		active, ok := proto.DecodeAppControlPayload(msg.Payload())
		if ok {
			t.active = active
		}

	case proto.MsgAppShutdown:
		return false
	}
	return true
}

func (t *Task) handleKey(ctx *kernel.Context, code hal.KeyCode, r rune) bool {
	switch {
	case r == 'q' || r == 'Q' || code == hal.KeyEscape:
		logger.Logf(ctx, t.logCap, component, "quit requested")
		if t.exit != nil {
			t.exit()
		}
		return false
	case r == 'w' || r == 'W':
		t.ring = !t.ring
	case r == 'p' || r == 'P' || r == ' ':
		t.paused = !t.paused
		logger.Logf(ctx, t.logCap, component, "paused=%v at t=%.2fs", t.paused, t.clock)
	case r == 'r' || r == 'R':
		t.reset()
		logger.Logf(ctx, t.logCap, component, "reset")
	case code == hal.KeyLeft:
		t.orbit.Yaw -= 0.08
	case code == hal.KeyRight:
		t.orbit.Yaw += 0.08
	case code == hal.KeyUp:
		t.elevation = clampElevation(t.elevation + 0.05)
	case code == hal.KeyDown:
		t.elevation = clampElevation(t.elevation - 0.05)
	}
	return true
}

func clampElevation(e float32) float32 {
	return min(max(e, minElevation), maxElevation)
}

func (t *Task) init() error {
	if t.disp == nil {
		return errNoFramebuffer
	}
	t.fb = t.disp.Framebuffer()
	if t.fb == nil || t.fb.Format() != hal.PixelFormatRGB565 {
		return errNoFramebuffer
	}
	t.w, t.h = t.fb.Width(), t.fb.Height()
	if t.w <= 0 || t.h <= 0 {
		return errNoFramebuffer
	}
	return t.build()
}

// build creates the animator and the scene for a t.w by t.h viewport.
func (t *Task) build() error {
	anim, err := field.New(t.opts.Field)
	if err != nil {
		return fmt.Errorf("animator: %w", err)
	}
	t.anim = anim

	t.r = softgl.NewRenderer(t.w, t.h, true)
	t.r.ClearColor = colorOf(t.opts.Background)
	t.r.Mode = softgl.RenderWireframe
	if t.opts.RingFill {
		t.r.Mode = softgl.RenderSolidFlat
	}

	t.s = softgl.CreateScene(1, 2)
	t.s.Camera.FOVYRad = t.opts.FOV
	t.s.Camera.Near = 0.1
	t.s.Camera.Far = 200

	t.tracker = field.NewTracker(cameraMapper{cam: &t.s.Camera})

	bufs := anim.Buffers()
	t.gridCloud = t.s.AddPoints(softgl.PointCloud{
		Positions: bufs.Positions,
		Colors:    bufs.Colors,
		Size:      t.opts.PointSize,
		MaxSize:   t.opts.MaxPointSize,
		Transform: gridTransform,
	})
	anim.Uploaded()

	if t.opts.Shell && t.opts.ShellCount > 0 {
		t.shell = field.NewShell(t.opts.ShellCount, t.opts.ShellRadius, t.opts.ShellSeed)
		alpha := uint8(t.opts.ShellOpacity*255 + 0.5)
		t.shellCloud = t.s.AddPoints(softgl.PointCloud{
			Positions: t.shell.Positions(),
			Tint:      colorOf(t.opts.ShellColor).WithAlpha(alpha),
			Size:      t.opts.PointSize / 2,
			MaxSize:   1,
			Additive:  true,
			Transform: shellTransform(t.shell, t.opts.ShellScale),
		})
	}

	ring := newRingMesh(0.94, 48)
	ring.Material.BaseColor = colorOf(t.opts.Field.Highlight)
	t.ringMesh = t.s.AddMesh(ring)
	t.s.SetMeshEnabled(t.ringMesh, false)

	t.resetCamera()
	return nil
}

func (t *Task) resetCamera() {
	t.orbit = softgl.OrbitController{
		Radius:   t.opts.CameraDistance,
		Yaw:      t.opts.CameraYaw,
		MinPitch: -maxElevation - t.opts.HoverTilt,
		MaxPitch: -minElevation,
	}
	t.elevation = clampElevation(t.opts.CameraElevation)
	t.pitch = -t.elevation
	t.orbit.SetPitch(t.pitch)
	t.orbit.Apply(&t.s.Camera)
}

func (t *Task) reset() {
	t.anim.Reset()
	t.clock = 0
	t.tracker.Leave()
	t.resetCamera()
}

// step advances the simulation by dt seconds of wall time.
func (t *Task) step(ctx *kernel.Context, dt float64) {
	if t.anim == nil {
		return
	}
	if !t.paused {
		t.clock += dt
	}
	p := t.tracker.Pointer()

	start := time.Now()
	t.anim.Update(t.clock, p)
	t.updateTime += time.Since(start)

	if bufs := t.anim.Buffers(); bufs.NeedsUpdate {
		t.s.UpdatePoints(t.gridCloud, bufs.Positions, bufs.Colors)
		t.anim.Uploaded()
	}

	if t.shell != nil {
		if !t.paused {
			t.shell.Advance(dt)
		}
		t.s.UpdatePointsTransform(t.shellCloud, shellTransform(t.shell, t.opts.ShellScale))
	}

	// Ease the camera up while the pointer is over the field.
	target := -t.elevation
	if p.Active {
		target -= t.opts.HoverTilt
	}
	t.pitch = softgl.Lerp(t.pitch, target, t.opts.HoverRate)
	t.orbit.SetPitch(t.pitch)
	t.orbit.Apply(&t.s.Camera)

	showRing := t.ring && p.Active
	t.s.SetMeshEnabled(t.ringMesh, showRing)
	if showRing {
		t.s.UpdateMeshTransform(t.ringMesh, ringTransform(p, t.opts.Field.Radius))
	}

	t.frames++
	if t.opts.StatsEvery > 0 && t.frames%uint64(t.opts.StatsEvery) == 0 {
		avg := t.updateTime / time.Duration(t.opts.StatsEvery)
		t.updateTime = 0
		logger.Logf(ctx, t.logCap, component, "frames=%d avg_update=%s pointer_active=%v", t.frames, avg, p.Active)
	}
}

var (
	hudTitle = color.RGBA{R: 0xE0, G: 0xE8, B: 0xFF, A: 0xFF}
	hudDim   = color.RGBA{R: 0x64, G: 0x74, B: 0x8B, A: 0xFF}
)

func (t *Task) render() {
	if t.fb == nil || t.r == nil || t.s == nil {
		return
	}

	t.r.Render(&softgl.RGB565Target{
		Buf:    t.fb.Buffer(),
		Stride: t.fb.StrideBytes(),
		W:      t.w,
		H:      t.h,
	}, t.s)

	if t.opts.HUD {
		t.drawHUD()
	}

	_ = t.fb.Present()
}

func (t *Task) drawHUD() {
	status := fmt.Sprintf("T %.1f", t.clock)
	if t.paused {
		status += " PAUSED"
	}
	t.drawText(4, 4, fmt.Sprintf("WAVEFIELD %d PTS", t.anim.Len()), hudTitle)
	t.drawText(4, 14, status, hudDim)

	if p := t.tracker.Pointer(); p.Active {
		t.drawText(4, t.h-22, fmt.Sprintf("PTR %+.2f %+.2f", p.X, p.Y), hudDim)
	}
	t.drawText(4, t.h-12, "ARROWS ORBIT W RING P PAUSE R RESET Q QUIT", hudDim)
}

func (t *Task) dispose() {
	if t.anim != nil {
		t.anim.Dispose()
	}
	if t.s != nil && t.gridCloud >= 0 {
		t.s.UpdatePoints(t.gridCloud, nil, nil)
		t.s.SetPointsEnabled(t.gridCloud, false)
	}
	t.active = false
}
