package hal

// hostPointer turns raw backend samples into move/leave events.
//
// Repeated samples at the same position are dropped and a leave is reported once.
type hostPointer struct {
	ch     chan PointerEvent
	inside bool
	lastX  int
	lastY  int
}

func newHostPointer() *hostPointer {
	return &hostPointer{ch: make(chan PointerEvent, 64)}
}

func (p *hostPointer) Events() <-chan PointerEvent { return p.ch }

func (p *hostPointer) emit(ev PointerEvent) {
	select {
	case p.ch <- ev:
	default:
	}
}

// sample reports a pointer position on a w×h surface. Positions outside the
// surface count as a leave.
func (p *hostPointer) sample(x, y, w, h int) {
	if x < 0 || y < 0 || x >= w || y >= h {
		p.leave()
		return
	}
	if p.inside && x == p.lastX && y == p.lastY {
		return
	}
	p.inside = true
	p.lastX, p.lastY = x, y
	p.emit(PointerEvent{X: x, Y: y, Width: w, Height: h})
}

func (p *hostPointer) leave() {
	if !p.inside {
		return
	}
	p.inside = false
	p.emit(PointerEvent{Leave: true})
}
