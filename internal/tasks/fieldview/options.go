package fieldview

import (
	"math"
	"time"

	"wavefield/internal/config"
	"wavefield/internal/field"
)

// Options configures the field view task. Angles are radians.
type Options struct {
	Field field.Config

	Shell        bool
	ShellCount   int
	ShellRadius  float64
	ShellSeed    int64
	ShellColor   field.RGB
	ShellOpacity float64
	ShellScale   float64

	Background field.RGB

	// FrameInterval is the minimum number of 1ms ticks between frames.
	FrameInterval uint64
	PointSize     float32
	MaxPointSize  int

	CameraDistance  float32
	CameraElevation float32
	CameraYaw       float32
	FOV             float32

	HoverTilt float32
	HoverRate float32

	Ring       bool
	RingFill   bool
	HUD        bool
	StatsEvery int
}

// OptionsFromConfig converts a validated configuration.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	fc, err := cfg.FieldConfig()
	if err != nil {
		return Options{}, err
	}
	r := cfg.Render
	return Options{
		Field:           fc,
		Shell:           cfg.Shell.Enabled,
		ShellCount:      cfg.Shell.Count,
		ShellRadius:     cfg.Shell.Radius,
		ShellSeed:       cfg.Shell.Seed,
		ShellColor:      cfg.ShellColor(),
		ShellOpacity:    cfg.Shell.Opacity,
		ShellScale:      cfg.Shell.Scale,
		Background:      cfg.BackgroundColor(),
		FrameInterval:   uint64(max(r.FrameInterval/time.Millisecond, 1)),
		PointSize:       float32(r.PointSize),
		MaxPointSize:    r.MaxPointSize,
		CameraDistance:  float32(r.Camera.Distance),
		CameraElevation: radians(r.Camera.Elevation),
		CameraYaw:       radians(r.Camera.Yaw),
		FOV:             radians(r.Camera.FOV),
		HoverTilt:       radians(r.HoverTilt),
		HoverRate:       float32(r.HoverRate),
		Ring:            r.Ring,
		RingFill:        r.RingFill,
		HUD:             r.HUD,
		StatsEvery:      r.StatsEvery,
	}, nil
}

func radians(deg float64) float32 { return float32(deg * math.Pi / 180) }
