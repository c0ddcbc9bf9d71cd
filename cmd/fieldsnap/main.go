// Command fieldsnap renders the particle field offscreen and writes the last
// frame as a PNG.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"

	"wavefield/internal/buildinfo"
	"wavefield/internal/config"
	"wavefield/internal/logging"
	"wavefield/internal/tasks/fieldview"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to a YAML config file.")
		outPath    = flag.String("out", "wavefield.png", "Output PNG file.")
		frames     = flag.Int("frames", 180, "Frames to simulate before the snapshot.")
		hz         = flag.Int("hz", 60, "Simulated frame rate.")
		pointer    = flag.String("pointer", "orbit", "orbit|centre|none.")
	)
	flag.Parse()

	if *frames <= 0 || *hz <= 0 {
		fatalf("usage: fieldsnap [-config wavefield.yaml] [-frames 180] [-hz 60] [-pointer orbit|centre|none] [-out wavefield.png]")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.Logging, buildinfo.Short())
	if err != nil {
		fatalf("logger: %v", err)
	}
	defer logger.Close()

	opts, err := fieldview.OptionsFromConfig(cfg)
	if err != nil {
		fatalf("config: %v", err)
	}
	w, h := cfg.Render.Width, cfg.Render.Height
	view, err := fieldview.NewOffscreen(w, h, opts)
	if err != nil {
		fatalf("view: %v", err)
	}
	defer view.Close()

	dt := 1 / float64(*hz)
	for i := 0; i < *frames; i++ {
		switch *pointer {
		case "orbit":
			x, y := orbit(w, h, i, 4*(*hz))
			view.PointerAt(x, y)
		case "centre", "center":
			view.PointerAt(w/2, h/2)
		default:
			view.Leave()
		}
		view.Step(dt)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	view.Render(img)
	if err := writePNG(*outPath, img); err != nil {
		fatalf("write: %v", err)
	}
	p := view.Pointer()
	logger.Info("snapshot written",
		"path", *outPath,
		"frames", view.Frames(),
		"pointer_active", p.Active,
		"pointer_x", p.X,
		"pointer_y", p.Y,
	)
}

// orbit places the pointer on a circle around the surface centre, one turn
// every period frames.
func orbit(w, h, frame, period int) (x, y int) {
	theta := 2 * math.Pi * float64(frame%period) / float64(period)
	r := 0.3 * float64(min(w, h))
	return w/2 + int(r*math.Cos(theta)), h/2 + int(r*math.Sin(theta))
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
