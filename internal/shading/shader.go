package shading

import (
	"math"
	"math/cmplx"

	"github.com/lucasb-eyer/go-colorful"
)

// Shader colors one complex sample. Implementations must be safe for
// concurrent use.
type Shader interface {
	Shade(w complex128) colorful.Color
}

// ShaderFunc adapts a plain function to the Shader interface.
type ShaderFunc func(w complex128) colorful.Color

// Shade calls f(w).
func (f ShaderFunc) Shade(w complex128) colorful.Color {
	return f(w)
}

// Sentinel is the color of samples where the function is undefined.
var Sentinel = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

// IsFinite reports whether both parts of w are finite.
func IsFinite(w complex128) bool {
	re, im := real(w), imag(w)
	return !math.IsNaN(re) && !math.IsNaN(im) && !math.IsInf(re, 0) && !math.IsInf(im, 0)
}

// DomainColorConfig selects the encodings of a domain coloring.
type DomainColorConfig struct {
	// Abs shows |w| as lightness ramps between level curves.
	Abs bool `json:"abs"`

	// LogAbs is like Abs but for ln|w|. It takes precedence over Abs.
	LogAbs bool `json:"logabs"`

	// Grid marks samples with integer real or imaginary part.
	Grid bool `json:"grid"`

	// All is shorthand for Abs and Grid.
	All bool `json:"all"`

	// GridTolerance overrides DefaultGridTolerance when positive.
	GridTolerance float64 `json:"grid_tolerance,omitempty"`
}

// Resolve expands shorthands and applies precedence. After Resolve, All is
// false, at most one of Abs and LogAbs is set, and GridTolerance is positive.
func (c DomainColorConfig) Resolve() DomainColorConfig {
	if c.All {
		c.Abs = true
		c.Grid = true
		c.All = false
	}
	if c.LogAbs {
		c.Abs = false
	}
	if !(c.GridTolerance > 0) {
		c.GridTolerance = DefaultGridTolerance
	}
	return c
}

// DomainColor shades by phase through the Lab sweep, with optional
// magnitude ramps and integer grid.
type DomainColor struct {
	cfg DomainColorConfig
}

// NewDomainColor builds a domain coloring shader from a resolved copy of cfg.
func NewDomainColor(cfg DomainColorConfig) *DomainColor {
	return &DomainColor{cfg: cfg.Resolve()}
}

// Config returns the resolved configuration.
func (d *DomainColor) Config() DomainColorConfig {
	return d.cfg
}

// Shade implements Shader.
func (d *DomainColor) Shade(w complex128) colorful.Color {
	if !IsFinite(w) {
		return Sentinel
	}
	lab := SweepLab(cmplx.Phase(w))
	switch {
	case d.cfg.LogAbs:
		lab = LightnessRamp(lab, w, true)
	case d.cfg.Abs:
		lab = LightnessRamp(lab, w, false)
	}
	c := lab.Color()
	if d.cfg.Grid {
		c = GridOverlay(c, w, d.cfg.GridTolerance)
	}
	return c
}
