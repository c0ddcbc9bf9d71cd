package hal

import (
	"context"
	"errors"
	"testing"
)

func TestRunHeadlessStopsAfterTicks(t *testing.T) {
	var steps int
	var ptr Pointer
	err := RunHeadless(context.Background(), Options{Width: 40, Height: 20}, func(h HAL) func() error {
		ptr = h.Input().Pointer()
		return func() error {
			steps++
			return nil
		}
	}, HeadlessConfig{Hz: 1000, Ticks: 5, Orbit: true, OrbitPeriod: 4})
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if steps != 5 {
		t.Fatalf("expected 5 steps, got %d", steps)
	}
	ev := <-ptr.Events()
	if ev.Leave || ev.Width != 40 || ev.Height != 20 {
		t.Fatalf("unexpected orbit sample %+v", ev)
	}
	if ev.X != 26 || ev.Y != 10 {
		t.Fatalf("first orbit sample should sit right of centre, got (%d,%d)", ev.X, ev.Y)
	}
}

func TestRunHeadlessExitIsClean(t *testing.T) {
	err := RunHeadless(context.Background(), Options{}, func(HAL) func() error {
		return func() error { return ErrExit }
	}, HeadlessConfig{Hz: 1000})
	if err != nil {
		t.Fatalf("expected clean exit, got %v", err)
	}
}

func TestRunHeadlessPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	err := RunHeadless(context.Background(), Options{}, func(HAL) func() error {
		return func() error { return boom }
	}, HeadlessConfig{Hz: 1000})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}
