package hal

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64

	// Orbit drives a synthetic pointer around the surface centre, one turn
	// every OrbitPeriod steps.
	Orbit       bool
	OrbitPeriod int
}

// RunHeadless runs the app without opening a window.
func RunHeadless(ctx context.Context, opts Options, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.OrbitPeriod <= 0 {
		cfg.OrbitPeriod = 4 * cfg.Hz
	}

	h := newHost(opts.withDefaults())
	step := newApp(h)

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if cfg.Orbit {
				orbitPointer(h, tick, cfg.OrbitPeriod)
			}
			h.t.step(1)
			if step != nil {
				if err := step(); err != nil {
					if errors.Is(err, ErrExit) {
						return nil
					}
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}

func orbitPointer(h *hostHAL, tick uint64, period int) {
	w, ht := h.fb.width, h.fb.height
	theta := 2 * math.Pi * float64(tick%uint64(period)) / float64(period)
	r := 0.3 * float64(min(w, ht))
	x := w/2 + int(r*math.Cos(theta))
	y := ht/2 + int(r*math.Sin(theta))
	h.ptr.sample(x, y, w, ht)
}
