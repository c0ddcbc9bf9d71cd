package field

// farAway is far enough from any lattice that the influence is zero.
const farAway = 1e9

// Pointer is the last known pointer position in grid coordinates.
//
// The zero value is inactive and means "no pointer".
type Pointer struct {
	X, Y   float64
	Active bool
}

// At returns an active pointer at (x, y).
func At(x, y float64) Pointer { return Pointer{X: x, Y: y, Active: true} }

// Away returns the inactive sentinel.
func Away() Pointer { return Pointer{X: farAway, Y: farAway} }

// PointerEvent is a pointer sample in viewport pixels.
type PointerEvent struct {
	X, Y          int
	Width, Height int
	Leave         bool
}

// Mapper converts a viewport position into grid-plane coordinates.
//
// ok is false when the position does not hit the grid plane.
type Mapper interface {
	ToGrid(x, y, w, h int) (gx, gy float64, ok bool)
}

// Tracker owns a pointer state and applies events to it.
type Tracker struct {
	m Mapper
	p Pointer
}

// NewTracker returns a tracker that starts with the pointer away.
func NewTracker(m Mapper) *Tracker {
	return &Tracker{m: m, p: Away()}
}

// Apply overwrites the pointer with a move event or resets it on leave.
func (t *Tracker) Apply(ev PointerEvent) {
	if ev.Leave || t.m == nil || ev.Width <= 0 || ev.Height <= 0 {
		t.p = Away()
		return
	}
	gx, gy, ok := t.m.ToGrid(ev.X, ev.Y, ev.Width, ev.Height)
	if !ok {
		t.p = Away()
		return
	}
	t.p = At(gx, gy)
}

// Leave resets the pointer to the sentinel.
func (t *Tracker) Leave() { t.p = Away() }

// Pointer returns the current pointer state.
func (t *Tracker) Pointer() Pointer { return t.p }
