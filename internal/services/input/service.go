package input

import (
	"wavefield/hal"
	"wavefield/internal/kernel"
	"wavefield/internal/proto"
)

// Service forwards HAL keyboard and pointer events to one consumer endpoint as
// MsgKey, MsgPointerMove and MsgPointerLeave messages.
//
// Pointer samples are coalesced: when the consumer queue is full only the
// newest sample is kept. Held arrow keys auto-repeat.
type Service struct {
	in  hal.Input
	out kernel.Capability

	keys [][]byte

	ptr        hal.PointerEvent
	ptrPending bool

	heldCode       hal.KeyCode
	held           bool
	nextRepeatTick uint64
}

func New(in hal.Input, out kernel.Capability) *Service {
	return &Service{in: in, out: out}
}

func (s *Service) Run(ctx *kernel.Context) {
	if ctx == nil || s.in == nil || !s.out.Valid() {
		return
	}

	var keyCh <-chan hal.KeyEvent
	if kbd := s.in.Keyboard(); kbd != nil {
		keyCh = kbd.Events()
	}
	var ptrCh <-chan hal.PointerEvent
	if ptr := s.in.Pointer(); ptr != nil {
		ptrCh = ptr.Events()
	}
	if keyCh == nil && ptrCh == nil {
		return
	}

	done := make(chan struct{})
	defer close(done)
	tickCh := ctx.Ticks(done)

	for {
		select {
		case ev, ok := <-keyCh:
			if !ok {
				return
			}
			s.handleKey(ctx, ev)
			s.flush(ctx)
		case ev, ok := <-ptrCh:
			if !ok {
				return
			}
			s.ptr = ev
			s.ptrPending = true
			s.flush(ctx)
		case tick := <-tickCh:
			s.handleRepeat(tick)
			s.flush(ctx)
		}
	}
}

func (s *Service) handleKey(ctx *kernel.Context, ev hal.KeyEvent) {
	if !ev.Press {
		if s.held && ev.Code == s.heldCode {
			s.held = false
			s.nextRepeatTick = 0
		}
		s.queueKey(ev)
		return
	}

	s.queueKey(ev)
	if !repeatableKey(ev.Code) {
		return
	}
	s.held = true
	s.heldCode = ev.Code
	s.nextRepeatTick = ctx.NowTick() + repeatDelayTicks
}

func (s *Service) handleRepeat(tick uint64) {
	if !s.held || tick < s.nextRepeatTick {
		return
	}
	s.queueKey(hal.KeyEvent{Code: s.heldCode, Press: true})
	s.nextRepeatTick = tick + repeatRateTicks
}

func (s *Service) queueKey(ev hal.KeyEvent) {
	if len(s.keys) >= maxPendingKeys {
		return
	}
	s.keys = append(s.keys, proto.KeyPayload(uint16(ev.Code), ev.Press, ev.Rune))
}

func (s *Service) flush(ctx *kernel.Context) {
	for len(s.keys) > 0 {
		res := ctx.SendToCapResult(s.out, uint16(proto.MsgKey), s.keys[0], kernel.Capability{})
		if res == kernel.SendErrQueueFull {
			break
		}
		s.keys = s.keys[1:]
	}

	if !s.ptrPending {
		return
	}
	var res kernel.SendResult
	if s.ptr.Leave {
		res = ctx.SendToCapResult(s.out, uint16(proto.MsgPointerLeave), nil, kernel.Capability{})
	} else {
		payload := proto.PointerMovePayload(s.ptr.X, s.ptr.Y, s.ptr.Width, s.ptr.Height)
		res = ctx.SendToCapResult(s.out, uint16(proto.MsgPointerMove), payload, kernel.Capability{})
	}
	if res != kernel.SendErrQueueFull {
		s.ptrPending = false
	}
}

const (
	// Ticks are 1ms.
	repeatDelayTicks = 350
	repeatRateTicks  = 60

	maxPendingKeys = 32
)

func repeatableKey(code hal.KeyCode) bool {
	switch code {
	case hal.KeyUp, hal.KeyDown, hal.KeyLeft, hal.KeyRight:
		return true
	default:
		return false
	}
}
