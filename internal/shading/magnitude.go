package shading

import (
	"math"
	"math/cmplx"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// RampDepth is the lightness swing, in L* units, of one magnitude band.
	RampDepth = 20

	// DefaultGridTolerance is how close Re w or Im w has to be to an
	// integer for GridOverlay to mark the sample.
	DefaultGridTolerance = 0.03
)

// GridMarker is the color GridOverlay paints on integer grid lines.
var GridMarker = colorful.Color{R: 0, G: 0, B: 0}

// LightnessRamp shifts the lightness of base by a sawtooth of the magnitude
// of w, one band per unit of |w| (or of ln|w| when logScale is set). Each
// band runs from RampDepth/2 darker to RampDepth/2 lighter, so equal steps
// of the magnitude give equal brightness bands.
//
// A magnitude whose logarithm is -Inf (w == 0) saturates to the darkest
// band and an infinite magnitude to the lightest; NaN never reaches the
// returned color.
func LightnessRamp(base Lab, w complex128, logScale bool) Lab {
	m := cmplx.Abs(w)
	if logScale {
		m = math.Log(m)
	}
	base.L += RampDepth * (rampPosition(m) - 0.5)
	return base
}

// rampPosition is the position of m within its unit band, in [0,1].
func rampPosition(m float64) float64 {
	switch {
	case math.IsNaN(m), math.IsInf(m, -1):
		return 0
	case math.IsInf(m, 1):
		return 1
	}
	return m - math.Floor(m)
}

// GridOverlay replaces c with GridMarker when the real or imaginary part of
// w lies within tol of an integer. It is applied after any lightness ramp so
// the marks are never washed out.
func GridOverlay(c colorful.Color, w complex128, tol float64) colorful.Color {
	if nearInteger(real(w), tol) || nearInteger(imag(w), tol) {
		return GridMarker
	}
	return c
}

func nearInteger(x, tol float64) bool {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return false
	}
	return math.Abs(x-math.Round(x)) <= tol
}
