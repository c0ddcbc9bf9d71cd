package field

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Resolution = 12
	cfg.Spacing = 0.5
	return cfg
}

func TestNewInitialState(t *testing.T) {
	cfg := smallConfig()
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.Len() != cfg.Resolution*cfg.Resolution {
		t.Fatalf("Len() = %d, want %d", a.Len(), cfg.Resolution*cfg.Resolution)
	}
	b := a.Buffers()
	if len(b.Positions) != 3*a.Len() || len(b.Colors) != 3*a.Len() {
		t.Fatalf("buffer sizes = %d/%d, want %d", len(b.Positions), len(b.Colors), 3*a.Len())
	}
	if !b.NeedsUpdate {
		t.Fatal("fresh buffers should need an upload")
	}
	for i := 0; i < a.Len(); i++ {
		if a.Height(i) != 0 {
			t.Fatalf("point %d: z = %v, want 0", i, a.Height(i))
		}
		r, g, bb := a.Color(i)
		if r != float32(cfg.Base.R) || g != float32(cfg.Base.G) || bb != float32(cfg.Base.B) {
			t.Fatalf("point %d: colour = %v,%v,%v, want base", i, r, g, bb)
		}
	}
}

func TestLatticeCentred(t *testing.T) {
	cfg := smallConfig()
	cfg.Resolution = 3
	cfg.Spacing = 0.18
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	x0, y0 := a.Base(0)
	x4, y4 := a.Base(4)
	x8, y8 := a.Base(8)
	if math.Abs(x0+0.18) > 1e-12 || math.Abs(y0+0.18) > 1e-12 {
		t.Fatalf("corner = (%v,%v), want (-0.18,-0.18)", x0, y0)
	}
	if x4 != 0 || y4 != 0 {
		t.Fatalf("centre = (%v,%v), want origin", x4, y4)
	}
	if math.Abs(x8-0.18) > 1e-12 || math.Abs(y8-0.18) > 1e-12 {
		t.Fatalf("corner = (%v,%v), want (0.18,0.18)", x8, y8)
	}
}

func TestInvalidConfiguration(t *testing.T) {
	cases := map[string]func(*Config){
		"zero resolution":  func(c *Config) { c.Resolution = 0 },
		"negative spacing": func(c *Config) { c.Spacing = -1 },
		"nan spacing":      func(c *Config) { c.Spacing = math.NaN() },
		"zero rate":        func(c *Config) { c.Rate = 0 },
		"rate above one":   func(c *Config) { c.Rate = 1.5 },
		"zero radius":      func(c *Config) { c.Radius = 0 },
		"zero colour rate": func(c *Config) { c.ColorRateScale = 0 },
		"base colour":      func(c *Config) { c.Base.G = 2 },
		"highlight colour": func(c *Config) { c.Highlight.R = -0.1 },
		"infinite radius":  func(c *Config) { c.Radius = math.Inf(1) },
		"infinite amp":     func(c *Config) { c.WaveAmplitude = math.Inf(1) },
		"negative inf amp": func(c *Config) { c.WaveAmplitude = math.Inf(-1) },
		"inf strength":     func(c *Config) { c.Strength = math.Inf(1) },
		"neg inf strength": func(c *Config) { c.Strength = math.Inf(-1) },
		"infinite speed":   func(c *Config) { c.WaveSpeed = math.Inf(1) },
		"nan strength":     func(c *Config) { c.Strength = math.NaN() },
	}
	for name, mutate := range cases {
		cfg := smallConfig()
		mutate(&cfg)
		if _, err := New(cfg); !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("%s: err = %v, want ErrInvalidConfiguration", name, err)
		}
	}

	if _, err := NewWithBase(smallConfig(), nil); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("empty base: err = %v, want ErrInvalidConfiguration", err)
	}
}

func TestRateOneAccepted(t *testing.T) {
	cfg := smallConfig()
	cfg.Rate = 1
	if _, err := New(cfg); err != nil {
		t.Fatalf("New with rate 1: %v", err)
	}
}

type step struct {
	t float64
	p Pointer
}

func randomSteps(seed int64, n int) []step {
	rng := rand.New(rand.NewSource(seed))
	steps := make([]step, n)
	now := 0.0
	for i := range steps {
		now += rng.Float64() * 0.05
		p := Away()
		if rng.Intn(3) != 0 {
			p = At(rng.Float64()*6-3, rng.Float64()*6-3)
		}
		steps[i] = step{t: now, p: p}
	}
	return steps
}

func TestDeterminism(t *testing.T) {
	steps := randomSteps(1, 200)
	run := func() Buffers {
		a, err := New(smallConfig())
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		for _, s := range steps {
			a.Update(s.t, s.p)
		}
		return a.Buffers()
	}
	first := run()
	second := run()
	for i := range first.Positions {
		if first.Positions[i] != second.Positions[i] {
			t.Fatalf("positions[%d] differ: %v vs %v", i, first.Positions[i], second.Positions[i])
		}
		if first.Colors[i] != second.Colors[i] {
			t.Fatalf("colors[%d] differ: %v vs %v", i, first.Colors[i], second.Colors[i])
		}
	}
}

func TestBoundedness(t *testing.T) {
	cfg := smallConfig()
	cfg.Rate = 1
	cfg.Strength = 1.2
	cfg.Base = RGB{R: 0, G: 1, B: 0.5}
	cfg.Highlight = RGB{R: 1, G: 0, B: 1}
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	bound := float32(cfg.HeightBound()) + 1e-5
	for _, s := range randomSteps(7, 500) {
		a.Update(s.t, s.p)
		for i := 0; i < a.Len(); i++ {
			if z := a.Height(i); z > bound || z < -bound {
				t.Fatalf("point %d: z = %v outside ±%v", i, z, bound)
			}
			r, g, b := a.Color(i)
			for _, ch := range []float32{r, g, b} {
				if ch < 0 || ch > 1 {
					t.Fatalf("point %d: colour channel %v outside [0,1]", i, ch)
				}
			}
		}
	}
}

func TestConvergenceUnderStaticInput(t *testing.T) {
	cfg := smallConfig()
	cfg.Rate = 0.2
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	const now = 1.7
	p := At(0.3, -0.4)
	i := nearest(a, p)

	targetZ, targetC := a.Target(i, now, p)
	prevDist := math.Abs(targetZ - float64(a.Height(i)))
	_, g0, _ := a.Color(i)
	prevCDist := math.Abs(targetC.G - float64(g0))
	if prevCDist == 0 {
		t.Fatal("point is outside the pointer radius")
	}
	crate := cfg.ColorRate()

	for n := 0; n < 30; n++ {
		a.Update(now, p)
		dist := math.Abs(targetZ - float64(a.Height(i)))
		if want := prevDist * (1 - cfg.Rate); math.Abs(dist-want) > 1e-5 {
			t.Fatalf("step %d: height distance = %v, want %v", n, dist, want)
		}
		_, g, _ := a.Color(i)
		cdist := math.Abs(targetC.G - float64(g))
		if want := prevCDist * (1 - crate); math.Abs(cdist-want) > 1e-5 {
			t.Fatalf("step %d: colour distance = %v, want %v", n, cdist, want)
		}
		prevDist, prevCDist = dist, cdist
	}
}

func nearest(a *Animator, p Pointer) int {
	best, bestDist := 0, math.Inf(1)
	for i := 0; i < a.Len(); i++ {
		x, y := a.Base(i)
		if d := math.Hypot(x-p.X, y-p.Y); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func TestNoOvershoot(t *testing.T) {
	cfg := smallConfig()
	cfg.Rate = 0.5
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p := At(0, 0)
	i := nearest(a, p)
	target, _ := a.Target(i, 0, p)
	for n := 0; n < 40; n++ {
		a.Update(0, p)
		if z := float64(a.Height(i)); target > 0 && z > target+1e-6 || target < 0 && z < target-1e-6 {
			t.Fatalf("step %d: z = %v overshoots target %v", n, z, target)
		}
	}
}

func TestPointerLocality(t *testing.T) {
	cfg := smallConfig()
	cfg.Rate = 1
	cfg.Radius = 1
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p := At(0, 0)
	for _, now := range []float64{0, 0.5, 3.25} {
		a.Update(now, p)
		for i := 0; i < a.Len(); i++ {
			bx, by := a.Base(i)
			if math.Hypot(bx, by) < cfg.Radius {
				continue
			}
			want := float32(Wave(bx, by, now, cfg.WaveAmplitude, cfg.WaveSpeed))
			if z := a.Height(i); z != want {
				t.Fatalf("t=%v point %d: z = %v, want wave only %v", now, i, z, want)
			}
			r, g, b := a.Color(i)
			if r != float32(cfg.Base.R) || g != float32(cfg.Base.G) || b != float32(cfg.Base.B) {
				t.Fatalf("t=%v point %d: colour = %v,%v,%v, want base", now, i, r, g, b)
			}
		}
	}
}

func TestInactivePointerIgnoresCoordinates(t *testing.T) {
	cfg := smallConfig()
	cfg.Rate = 1
	a, _ := New(cfg)
	b, _ := New(cfg)
	a.Update(0.4, Pointer{})
	b.Update(0.4, Away())
	for i := 0; i < a.Len(); i++ {
		if a.Height(i) != b.Height(i) {
			t.Fatalf("point %d: zero pointer z = %v, away z = %v", i, a.Height(i), b.Height(i))
		}
	}
}

func TestBasePositionInvariance(t *testing.T) {
	a, err := New(smallConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	type xy struct{ x, y float64 }
	before := make([]xy, a.Len())
	for i := range before {
		before[i].x, before[i].y = a.Base(i)
	}
	for _, s := range randomSteps(3, 100) {
		a.Update(s.t, s.p)
	}
	pos := a.Buffers().Positions
	for i := range before {
		x, y := a.Base(i)
		if x != before[i].x || y != before[i].y {
			t.Fatalf("point %d base moved to (%v,%v)", i, x, y)
		}
		if pos[3*i] != float32(x) || pos[3*i+1] != float32(y) {
			t.Fatalf("point %d position x,y = (%v,%v), want base", i, pos[3*i], pos[3*i+1])
		}
	}
}

func TestScenarioTwoByTwo(t *testing.T) {
	cfg := Config{
		WaveAmplitude:  1,
		WaveSpeed:      0,
		Radius:         0.5,
		Strength:       1,
		Rate:           1,
		ColorRateScale: DefaultColorRateScale,
		Threshold:      DefaultThreshold,
		Base:           RGB{R: 0.1, G: 0.2, B: 0.3},
		Highlight:      RGB{R: 0.9, G: 0.8, B: 0.7},
	}
	a, err := NewWithBase(cfg, [][2]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}})
	if err != nil {
		t.Fatalf("NewWithBase: %v", err)
	}
	a.Update(0, At(0, 0))

	if got, want := a.Height(0), float32(Wave(0, 0, 0, 1, 0)+1); got != want {
		t.Fatalf("point (0,0): z = %v, want %v", got, want)
	}
	r, g, b := a.Color(0)
	if !near(r, cfg.Highlight.R) || !near(g, cfg.Highlight.G) || !near(b, cfg.Highlight.B) {
		t.Fatalf("point (0,0): colour = %v,%v,%v, want highlight", r, g, b)
	}

	if got, want := a.Height(3), float32(Wave(1, 1, 0, 1, 0)); got != want {
		t.Fatalf("point (1,1): z = %v, want %v", got, want)
	}
	r, g, b = a.Color(3)
	if r != float32(cfg.Base.R) || g != float32(cfg.Base.G) || b != float32(cfg.Base.B) {
		t.Fatalf("point (1,1): colour = %v,%v,%v, want base", r, g, b)
	}
}

func near(got float32, want float64) bool {
	return math.Abs(float64(got)-want) < 1e-6
}

func TestUploadedClearsFlag(t *testing.T) {
	a, _ := New(smallConfig())
	a.Uploaded()
	if a.Buffers().NeedsUpdate {
		t.Fatal("NeedsUpdate after Uploaded")
	}
	a.Update(0.1, Away())
	if !a.Buffers().NeedsUpdate {
		t.Fatal("NeedsUpdate not set by Update")
	}
}

func TestResetAndDispose(t *testing.T) {
	cfg := smallConfig()
	a, _ := New(cfg)
	for i := 0; i < 10; i++ {
		a.Update(float64(i)*0.1, At(0, 0))
	}
	a.Reset()
	if a.Frames() != 0 {
		t.Fatalf("Frames() = %d after Reset, want 0", a.Frames())
	}
	for i := 0; i < a.Len(); i++ {
		if a.Height(i) != 0 {
			t.Fatalf("point %d: z = %v after Reset", i, a.Height(i))
		}
	}

	a.Dispose()
	if !a.Disposed() {
		t.Fatal("Disposed() = false")
	}
	a.Update(1, At(0, 0))
	if b := a.Buffers(); b.Positions != nil || b.Colors != nil || b.NeedsUpdate {
		t.Fatalf("buffers after Dispose = %+v", b)
	}
	if z := a.Height(0); z != 0 {
		t.Fatalf("Height after Dispose = %v, want 0", z)
	}
	if r, g, b := a.Color(a.Len() - 1); r != 0 || g != 0 || b != 0 {
		t.Fatalf("Color after Dispose = %v,%v,%v, want zero", r, g, b)
	}
}

func TestThresholdBandKeepsBaseColour(t *testing.T) {
	cfg := Config{
		WaveAmplitude:  0.5,
		WaveSpeed:      0.3,
		Radius:         1,
		Strength:       2,
		Rate:           1,
		ColorRateScale: DefaultColorRateScale,
		Threshold:      DefaultThreshold,
		Base:           RGB{R: 0.2, G: 0.25, B: 0.33},
		Highlight:      RGB{R: 0.22, G: 0.74, B: 0.97},
	}
	inBand := cfg.Radius * (1 - 0.005)
	outBand := cfg.Radius * (1 - 0.02)
	a, err := NewWithBase(cfg, [][2]float64{{inBand, 0}, {0, outBand}})
	if err != nil {
		t.Fatalf("NewWithBase: %v", err)
	}
	const now = 0.7
	a.Update(now, At(0, 0))

	infl := Influence(inBand, 0, 0, 0, cfg.Radius)
	if !(infl > 0 && infl < cfg.Threshold) {
		t.Fatalf("influence = %v, want inside (0, %v)", infl, cfg.Threshold)
	}
	want := float32(Wave(inBand, 0, now, cfg.WaveAmplitude, cfg.WaveSpeed) + infl*infl*cfg.Strength)
	if z := a.Height(0); z != want {
		t.Fatalf("band point: z = %v, want %v", z, want)
	}
	if z0 := float32(Wave(inBand, 0, now, cfg.WaveAmplitude, cfg.WaveSpeed)); want == z0 {
		t.Fatal("band point received no height boost")
	}
	r, g, b := a.Color(0)
	if r != float32(cfg.Base.R) || g != float32(cfg.Base.G) || b != float32(cfg.Base.B) {
		t.Fatalf("band point: colour = %v,%v,%v, want base exactly", r, g, b)
	}

	_, g, _ = a.Color(1)
	if g == float32(cfg.Base.G) {
		t.Fatal("point above the threshold kept the base colour")
	}
}

func TestPointerLeaveDecaysGeometrically(t *testing.T) {
	cfg := smallConfig()
	cfg.Rate = 0.25
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	const now = 2.1
	p := At(0, 0)
	i := nearest(a, p)
	for n := 0; n < 20; n++ {
		a.Update(now, p)
	}

	targetZ, targetC := a.Target(i, now, Away())
	prevDist := math.Abs(targetZ - float64(a.Height(i)))
	if prevDist < 0.1 {
		t.Fatalf("pointer raised point %d by only %v", i, prevDist)
	}
	_, g0, _ := a.Color(i)
	prevCDist := math.Abs(targetC.G - float64(g0))
	crate := cfg.ColorRate()

	for n := 0; n < 25; n++ {
		a.Update(now, Away())
		dist := math.Abs(targetZ - float64(a.Height(i)))
		if want := prevDist * (1 - cfg.Rate); math.Abs(dist-want) > 1e-5 {
			t.Fatalf("frame %d after leave: height distance = %v, want %v", n, dist, want)
		}
		_, g, _ := a.Color(i)
		cdist := math.Abs(targetC.G - float64(g))
		if want := prevCDist * (1 - crate); math.Abs(cdist-want) > 1e-5 {
			t.Fatalf("frame %d after leave: colour distance = %v, want %v", n, cdist, want)
		}
		prevDist, prevCDist = dist, cdist
	}
}

func TestColorRateClamped(t *testing.T) {
	cfg := smallConfig()
	cfg.Rate = 0.8
	if got := cfg.ColorRate(); got != 1 {
		t.Fatalf("ColorRate() = %v, want 1", got)
	}
	cfg.Rate = 0.1
	if got := cfg.ColorRate(); math.Abs(got-0.2) > 1e-12 {
		t.Fatalf("ColorRate() = %v, want 0.2", got)
	}
}
