package shading

import (
	"math"
	"math/cmplx"

	"github.com/lucasb-eyer/go-colorful"
)

// Stripe rates of the checker plot.
const (
	RectStripes  = 5  // stripes per unit of Re w or Im w
	AngleStripes = 32 // stripes per full turn of arg w
	AbsStripes   = 5  // stripes per unit of ln|w|
)

var (
	checkerBlack = colorful.Color{R: 0, G: 0, B: 0}
	checkerWhite = colorful.Color{R: 1, G: 1, B: 1}
)

// CheckerConfig selects which quantities a checker plot stripes.
type CheckerConfig struct {
	Real  bool `json:"real"`
	Imag  bool `json:"imag"`
	Rect  bool `json:"rect"`  // Real and Imag
	Angle bool `json:"angle"`
	Abs   bool `json:"abs"`
	Phase bool `json:"phase"` // Angle and Abs
	Polar bool `json:"polar"` // same as Phase
}

// Resolve expands Rect, Phase and Polar into the underlying stripe flags and
// falls back to Rect when nothing is selected. Only Real, Imag, Angle and
// Abs are set afterwards.
func (c CheckerConfig) Resolve() CheckerConfig {
	if c.Polar {
		c.Phase = true
	}
	if !(c.Real || c.Imag || c.Rect || c.Angle || c.Abs || c.Phase) {
		c.Rect = true
	}
	if c.Rect {
		c.Real, c.Imag = true, true
	}
	if c.Phase {
		c.Angle, c.Abs = true, true
	}
	c.Rect, c.Phase, c.Polar = false, false, false
	return c
}

// Checker shades black and white stripes. Each enabled quantity contributes
// a square wave; a pixel is black when an odd number of them are on.
type Checker struct {
	cfg CheckerConfig
}

// NewChecker builds a checker plot shader from a resolved copy of cfg.
func NewChecker(cfg CheckerConfig) *Checker {
	return &Checker{cfg: cfg.Resolve()}
}

// Config returns the resolved configuration.
func (c *Checker) Config() CheckerConfig {
	return c.cfg
}

// Shade implements Shader.
func (c *Checker) Shade(w complex128) colorful.Color {
	if !IsFinite(w) {
		return Sentinel
	}
	if c.Odd(w) {
		return checkerBlack
	}
	return checkerWhite
}

// Odd reports whether an odd number of the enabled stripe tests are on at w.
func (c *Checker) Odd(w complex128) bool {
	odd := false
	if c.cfg.Real && stripeOn(RectStripes*real(w)) {
		odd = !odd
	}
	if c.cfg.Imag && stripeOn(RectStripes*imag(w)) {
		odd = !odd
	}
	if c.cfg.Angle && stripeOn(AngleStripes*cmplx.Phase(w)/(2*math.Pi)) {
		odd = !odd
	}
	if c.cfg.Abs && stripeOn(AbsStripes*math.Log(cmplx.Abs(w))) {
		odd = !odd
	}
	return odd
}

// stripeOn is the square wave: on over every odd unit interval of x.
// ln 0 = -Inf lands here for w == 0 and is treated as off.
func stripeOn(x float64) bool {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return false
	}
	return math.Mod(math.Floor(x), 2) != 0
}
