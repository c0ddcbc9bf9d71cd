package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"wavefield/app"
	"wavefield/hal"
	"wavefield/internal/buildinfo"
	"wavefield/internal/config"
	"wavefield/internal/logging"
	"wavefield/internal/tasks/fieldview"
)

func main() {
	var (
		configPath string
		term       bool
		headless   hal.HeadlessConfig
	)
	flag.StringVar(&configPath, "config", "", "Path to a YAML config file.")
	flag.BoolVar(&headless.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&headless.Hz, "hz", 60, "Step rate in headless and terminal mode.")
	flag.Uint64Var(&headless.Ticks, "ticks", 0, "Stop after N steps in headless mode (0 = run forever).")
	flag.BoolVar(&headless.Orbit, "orbit", false, "Drive a synthetic pointer around the centre in headless mode.")
	flag.BoolVar(&term, "term", false, "Render into the terminal.")
	flag.Parse()

	if err := run(configPath, term, headless); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string, term bool, headless hal.HeadlessConfig) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// The terminal owns stdout and stderr while it draws.
	if term {
		switch strings.ToLower(cfg.Logging.Output) {
		case "", "stderr", "stdout":
			cfg.Logging.Output = "wavefield.log"
		}
	}

	logger, err := logging.New(cfg.Logging, buildinfo.Short())
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Close()

	view, err := fieldview.OptionsFromConfig(cfg)
	if err != nil {
		return err
	}

	mode := "window"
	switch {
	case term:
		mode = "terminal"
	case headless.Enabled:
		mode = "headless"
	}

	opts := hal.Options{
		Width:  cfg.Render.Width,
		Height: cfg.Render.Height,
		Scale:  cfg.Render.Scale,
		Log:    logger.With("mode", mode).Logger,
	}
	logger.Info("starting",
		"mode", mode,
		"resolution", cfg.Field.Resolution,
		"size", fmt.Sprintf("%dx%d", cfg.Render.Width, cfg.Render.Height),
		"config", configPath,
	)

	newApp := func(h hal.HAL) func() error {
		return app.New(h, app.Config{View: view, HoldOnPanic: mode == "window"})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch mode {
	case "terminal":
		err = hal.RunTerminal(ctx, opts, newApp, hal.TerminalConfig{Hz: headless.Hz})
	case "headless":
		err = hal.RunHeadless(ctx, opts, newApp, headless)
	default:
		err = hal.RunWindow(opts, newApp)
	}
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	if err != nil {
		logger.Error("stopped", "error", err)
		return err
	}
	logger.Info("stopped")
	return nil
}
