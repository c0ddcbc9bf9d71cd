package field

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfiguration is returned when a parameter is outside its valid domain.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// RGB is a linear colour with channels in [0,1].
type RGB struct {
	R, G, B float64
}

// Lerp returns c + (o-c)·t per channel.
func (c RGB) Lerp(o RGB, t float64) RGB {
	return RGB{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
	}
}

func (c RGB) valid() bool {
	return unit(c.R) && unit(c.G) && unit(c.B)
}

func unit(v float64) bool { return v >= 0 && v <= 1 }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Config holds the animator constants.
type Config struct {
	// Resolution is the number of points per side.
	Resolution int
	// Spacing is the distance between neighbouring points.
	Spacing float64

	WaveSpeed     float64
	WaveAmplitude float64

	// Radius is the pointer influence radius; Strength the peak height boost.
	Radius   float64
	Strength float64

	// Rate is the per-frame height smoothing factor, 0 < Rate <= 1.
	Rate float64
	// ColorRateScale multiplies Rate for colour smoothing (clamped to 1).
	ColorRateScale float64
	// Threshold is the influence below which the target colour is Base exactly.
	Threshold float64

	Base      RGB
	Highlight RGB
}

const (
	DefaultResolution     = 100
	DefaultSpacing        = 0.18
	DefaultColorRateScale = 2
	DefaultThreshold      = 0.01
)

// DefaultConfig returns the configuration used by the hero background.
func DefaultConfig() Config {
	return Config{
		Resolution:     DefaultResolution,
		Spacing:        DefaultSpacing,
		WaveSpeed:      0.6,
		WaveAmplitude:  0.35,
		Radius:         1.6,
		Strength:       0.9,
		Rate:           0.08,
		ColorRateScale: DefaultColorRateScale,
		Threshold:      DefaultThreshold,
		Base:           RGB{R: 0x33 / 255.0, G: 0x41 / 255.0, B: 0x55 / 255.0},
		Highlight:      RGB{R: 0x38 / 255.0, G: 0xbd / 255.0, B: 0xf8 / 255.0},
	}
}

// Validate checks every parameter, including the lattice shape.
func (c Config) Validate() error {
	if c.Resolution <= 0 {
		return fmt.Errorf("%w: resolution %d must be positive", ErrInvalidConfiguration, c.Resolution)
	}
	if !(c.Spacing > 0) || math.IsInf(c.Spacing, 0) {
		return fmt.Errorf("%w: spacing %v must be positive", ErrInvalidConfiguration, c.Spacing)
	}
	return c.validateDynamics()
}

func (c Config) validateDynamics() error {
	if !(c.Rate > 0 && c.Rate <= 1) {
		return fmt.Errorf("%w: rate %v must be in (0,1]", ErrInvalidConfiguration, c.Rate)
	}
	if !(c.Radius > 0) || math.IsInf(c.Radius, 1) {
		return fmt.Errorf("%w: radius %v must be positive", ErrInvalidConfiguration, c.Radius)
	}
	if !(c.ColorRateScale > 0) {
		return fmt.Errorf("%w: colour rate scale %v must be positive", ErrInvalidConfiguration, c.ColorRateScale)
	}
	if !(c.Threshold >= 0) {
		return fmt.Errorf("%w: threshold %v must not be negative", ErrInvalidConfiguration, c.Threshold)
	}
	if !finite(c.WaveSpeed) || !finite(c.WaveAmplitude) || !finite(c.Strength) {
		return fmt.Errorf("%w: wave and strength parameters must be finite", ErrInvalidConfiguration)
	}
	if !c.Base.valid() {
		return fmt.Errorf("%w: base colour %+v outside [0,1]", ErrInvalidConfiguration, c.Base)
	}
	if !c.Highlight.valid() {
		return fmt.Errorf("%w: highlight colour %+v outside [0,1]", ErrInvalidConfiguration, c.Highlight)
	}
	return nil
}

// ColorRate is the effective per-frame colour smoothing factor.
func (c Config) ColorRate() float64 {
	r := c.Rate * c.ColorRateScale
	if r > 1 {
		r = 1
	}
	return r
}

// HeightBound is the largest |z| any point can reach: the sum of the wave
// component amplitudes plus the pointer boost.
func (c Config) HeightBound() float64 {
	return 1.3*math.Abs(c.WaveAmplitude) + math.Abs(c.Strength)
}
