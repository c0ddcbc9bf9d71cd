// Package app wires the kernel tasks that make up the field animator onto a HAL.
package app

import (
	"fmt"
	"sync"
	"sync/atomic"

	"wavefield/hal"
	"wavefield/internal/kernel"
	"wavefield/internal/services/input"
	"wavefield/internal/services/logger"
	"wavefield/internal/tasks/fieldview"
)

// Config selects what the system runs.
type Config struct {
	View fieldview.Options

	// HoldOnPanic keeps the step function returning nil after a task panic so
	// the panic screen stays visible. Otherwise the step returns the panic.
	HoldOnPanic bool
}

type system struct {
	k    *kernel.Kernel
	cfg  Config
	exit chan struct{}
	once sync.Once

	panicked atomic.Pointer[kernel.PanicInfo]
}

// New starts the system on h and returns the host step function. The step
// returns hal.ErrExit once the user has asked to quit.
func New(h hal.HAL, cfg Config) func() error {
	s := newSystem(h, cfg)
	return s.step
}

func newSystem(h hal.HAL, cfg Config) *system {
	s := &system{
		k:    kernel.New(),
		cfg:  cfg,
		exit: make(chan struct{}),
	}
	installPanicHandler(h, func(info kernel.PanicInfo) { s.panicked.Store(&info) })

	k := s.k
	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	viewEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	k.AddTask(logger.New(h.Logger(), logEP.Restrict(kernel.RightRecv)))
	k.AddTask(input.New(h.Input(), viewEP.Restrict(kernel.RightSend)))
	k.AddTask(fieldview.New(
		h.Display(),
		viewEP.Restrict(kernel.RightRecv),
		logEP.Restrict(kernel.RightSend),
		cfg.View,
		s.requestExit,
	))

	if ht := h.Time(); ht != nil {
		if ch := ht.Ticks(); ch != nil {
			go func() {
				for seq := range ch {
					k.TickTo(seq)
				}
			}()
		}
	}

	if l := h.Logger(); l != nil {
		l.WriteLineString(fmt.Sprintf("app: started %d points", cfg.View.Field.Resolution*cfg.View.Field.Resolution))
	}
	return s
}

func (s *system) requestExit() {
	s.once.Do(func() { close(s.exit) })
}

func (s *system) step() error {
	select {
	case <-s.exit:
		return hal.ErrExit
	default:
	}
	if info := s.panicked.Load(); info != nil && !s.cfg.HoldOnPanic {
		return *info
	}
	return nil
}
