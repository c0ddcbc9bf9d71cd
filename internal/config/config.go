package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"wavefield/internal/field"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	Field   FieldConfig   `yaml:"field"`
	Shell   ShellConfig   `yaml:"shell"`
	Render  RenderConfig  `yaml:"render"`
	Logging LoggingConfig `yaml:"logging"`
}

// FieldConfig holds the animator constants.
type FieldConfig struct {
	Resolution      int     `yaml:"resolution"`
	Spacing         float64 `yaml:"spacing"`
	WaveSpeed       float64 `yaml:"wave_speed"`
	WaveAmplitude   float64 `yaml:"wave_amplitude"`
	PointerRadius   float64 `yaml:"pointer_radius"`
	PointerStrength float64 `yaml:"pointer_strength"`
	Rate            float64 `yaml:"rate"`
	ColorRateScale  float64 `yaml:"color_rate_scale"`
	Threshold       float64 `yaml:"threshold"`
	BaseColor       string  `yaml:"base_color"`
	HighlightColor  string  `yaml:"highlight_color"`
}

// ShellConfig controls the tumbling particle sphere drawn behind the grid.
type ShellConfig struct {
	Enabled bool    `yaml:"enabled"`
	Count   int     `yaml:"count"`
	Radius  float64 `yaml:"radius"`
	Seed    int64   `yaml:"seed"`
	Color   string  `yaml:"color"`
	Opacity float64 `yaml:"opacity"`
	// Scale maps the shell into grid units.
	Scale float64 `yaml:"scale"`
}

// RenderConfig controls the software renderer and the field view task.
type RenderConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Scale  int `yaml:"scale"`

	FrameInterval time.Duration `yaml:"frame_interval"`
	Background    string        `yaml:"background"`
	PointSize     float64       `yaml:"point_size"`
	MaxPointSize  int           `yaml:"max_point_size"`

	Camera CameraConfig `yaml:"camera"`

	// HoverTilt is how far (degrees) the camera rises while the pointer is
	// over the field; HoverRate is the per-frame easing factor.
	HoverTilt float64 `yaml:"hover_tilt"`
	HoverRate float64 `yaml:"hover_rate"`

	// RingFill draws the influence ring as a filled annulus instead of its
	// triangle edges.
	Ring       bool `yaml:"ring"`
	RingFill   bool `yaml:"ring_fill"`
	HUD        bool `yaml:"hud"`
	StatsEvery int  `yaml:"stats_every"`
}

// CameraConfig places the orbit camera. Angles are degrees.
type CameraConfig struct {
	Distance  float64 `yaml:"distance"`
	Elevation float64 `yaml:"elevation"`
	Yaw       float64 `yaml:"yaw"`
	FOV       float64 `yaml:"fov"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	// Output is "stdout", "stderr" or a file path.
	Output string `yaml:"output"`
}

// Default returns the built-in configuration.
func Default() *Config {
	fc := field.DefaultConfig()
	return &Config{
		Field: FieldConfig{
			Resolution:      fc.Resolution,
			Spacing:         fc.Spacing,
			WaveSpeed:       fc.WaveSpeed,
			WaveAmplitude:   fc.WaveAmplitude,
			PointerRadius:   fc.Radius,
			PointerStrength: fc.Strength,
			Rate:            fc.Rate,
			ColorRateScale:  fc.ColorRateScale,
			Threshold:       fc.Threshold,
			BaseColor:       "#334155",
			HighlightColor:  "#38bdf8",
		},
		Shell: ShellConfig{
			Enabled: true,
			Count:   5000,
			Radius:  1.5,
			Seed:    1,
			Color:   "#38bdf8",
			Opacity: 0.6,
			Scale:   4,
		},
		Render: RenderConfig{
			Width:         320,
			Height:        240,
			Scale:         3,
			FrameInterval: 33 * time.Millisecond,
			Background:    "#020617",
			PointSize:     24,
			MaxPointSize:  3,
			Camera: CameraConfig{
				Distance:  16,
				Elevation: 48,
				Yaw:       0,
				FOV:       55,
			},
			HoverTilt:  8,
			HoverRate:  0.05,
			Ring:       false,
			HUD:        true,
			StatsEvery: 300,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// Load reads a YAML file over the defaults. An empty path loads the defaults
// only. Environment overrides are applied before validation.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("WAVEFIELD_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("WAVEFIELD_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("WAVEFIELD_LOG_OUTPUT"); v != "" {
		cfg.Logging.Output = v
	}
	if v := os.Getenv("WAVEFIELD_RESOLUTION"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("WAVEFIELD_RESOLUTION: %w", err)
		}
		cfg.Field.Resolution = n
	}
	if v := os.Getenv("WAVEFIELD_SHELL"); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("WAVEFIELD_SHELL: %w", err)
		}
		cfg.Shell.Enabled = on
	}
	return nil
}

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error
	add := func(msg string) { errs = append(errs, errors.New(msg)) }

	if _, err := c.FieldConfig(); err != nil {
		errs = append(errs, fmt.Errorf("field: %w", err))
	}

	if c.Shell.Enabled {
		if c.Shell.Count <= 0 {
			add("shell.count must be positive")
		}
		if c.Shell.Radius <= 0 {
			add("shell.radius must be positive")
		}
		if c.Shell.Scale <= 0 {
			add("shell.scale must be positive")
		}
		if c.Shell.Opacity < 0 || c.Shell.Opacity > 1 {
			add("shell.opacity must be within [0,1]")
		}
		if _, err := parseColor(c.Shell.Color); err != nil {
			errs = append(errs, fmt.Errorf("shell.color: %w", err))
		}
	}

	r := c.Render
	if r.Width <= 0 || r.Height <= 0 || r.Width > 4096 || r.Height > 4096 {
		add("render.width and render.height must be within 1..4096")
	}
	if r.Scale <= 0 {
		add("render.scale must be positive")
	}
	if r.FrameInterval <= 0 {
		add("render.frame_interval must be positive")
	}
	if r.PointSize <= 0 {
		add("render.point_size must be positive")
	}
	if r.Camera.Distance <= 0 {
		add("render.camera.distance must be positive")
	}
	if r.Camera.Elevation <= 0 || r.Camera.Elevation >= 90 {
		add("render.camera.elevation must be within (0,90) degrees")
	}
	if r.Camera.FOV <= 0 || r.Camera.FOV >= 180 {
		add("render.camera.fov must be within (0,180) degrees")
	}
	if r.HoverRate < 0 || r.HoverRate > 1 {
		add("render.hover_rate must be within [0,1]")
	}
	if r.StatsEvery < 0 {
		add("render.stats_every must not be negative")
	}
	if _, err := parseColor(r.Background); err != nil {
		errs = append(errs, fmt.Errorf("render.background: %w", err))
	}

	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		add("logging.format must be text or json")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %w", errors.Join(errs...))
	}
	return nil
}

// FieldConfig converts the field section into animator constants.
// Errors wrap field.ErrInvalidConfiguration.
func (c *Config) FieldConfig() (field.Config, error) {
	f := c.Field
	base, err := parseColor(f.BaseColor)
	if err != nil {
		return field.Config{}, fmt.Errorf("%w: base_color: %v", field.ErrInvalidConfiguration, err)
	}
	highlight, err := parseColor(f.HighlightColor)
	if err != nil {
		return field.Config{}, fmt.Errorf("%w: highlight_color: %v", field.ErrInvalidConfiguration, err)
	}
	fc := field.Config{
		Resolution:     f.Resolution,
		Spacing:        f.Spacing,
		WaveSpeed:      f.WaveSpeed,
		WaveAmplitude:  f.WaveAmplitude,
		Radius:         f.PointerRadius,
		Strength:       f.PointerStrength,
		Rate:           f.Rate,
		ColorRateScale: f.ColorRateScale,
		Threshold:      f.Threshold,
		Base:           base,
		Highlight:      highlight,
	}
	if err := fc.Validate(); err != nil {
		return field.Config{}, err
	}
	return fc, nil
}

// ShellColor returns the parsed shell colour.
func (c *Config) ShellColor() field.RGB {
	col, _ := parseColor(c.Shell.Color)
	return col
}

// BackgroundColor returns the parsed clear colour.
func (c *Config) BackgroundColor() field.RGB {
	col, _ := parseColor(c.Render.Background)
	return col
}

func parseColor(s string) (field.RGB, error) {
	col, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return field.RGB{}, fmt.Errorf("invalid colour %q", s)
	}
	col = col.Clamped()
	return field.RGB{R: col.R, G: col.G, B: col.B}, nil
}
