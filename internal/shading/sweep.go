package shading

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// SweepRotation rotates the chroma circle of the sweep so that phase 0
// lands on red, 2π/3 on green, π on cyan and 4π/3 on blue.
const SweepRotation = 0.4

// Lab is a CIE L*a*b* coordinate in standard units (L* 0-100, a* and b*
// roughly -128..127) relative to the D65 white point.
type Lab struct {
	L float64
	A float64
	B float64
}

// Color converts the Lab value to sRGB and clamps each channel to [0,1].
func (c Lab) Color() colorful.Color {
	return c.raw().Clamped()
}

// raw converts without clamping. go-colorful scales Lab by 1/100.
func (c Lab) raw() colorful.Color {
	return colorful.Lab(c.L/100, c.A/100, c.B/100)
}

// SweepLab maps a phase angle to its point on the phase wheel:
//
//	L* = 12 cos(3θ - π) + 67
//	a* = 46 cos(θ + 0.4) - 3
//	b* = 46 sin(θ + 0.4) - 16
//
// θ is reduced modulo 2π first, so the sweep is total and periodic.
func SweepLab(theta float64) Lab {
	theta = wrapPhase(theta)
	return Lab{
		L: 12*math.Cos(3*theta-math.Pi) + 67,
		A: 46*math.Cos(theta+SweepRotation) - 3,
		B: 46*math.Sin(theta+SweepRotation) - 16,
	}
}

// LabColor is the phase wheel color for theta, clamped to the sRGB gamut.
func LabColor(theta float64) colorful.Color {
	return SweepLab(theta).Color()
}

// wrapPhase reduces theta to [0, 2π). Non-finite input maps to 0.
func wrapPhase(theta float64) float64 {
	if math.IsNaN(theta) || math.IsInf(theta, 0) {
		return 0
	}
	theta = math.Mod(theta, 2*math.Pi)
	if theta < 0 {
		theta += 2 * math.Pi
	}
	// math.Mod of a tiny negative value can round up to exactly 2π.
	if theta >= 2*math.Pi {
		theta = 0
	}
	return theta
}

// Wheel samples the sweep at n evenly spaced phases starting at 0.
func Wheel(n int) []colorful.Color {
	if n <= 0 {
		return nil
	}
	colors := make([]colorful.Color, n)
	for k := range colors {
		colors[k] = LabColor(2 * math.Pi * float64(k) / float64(n))
	}
	return colors
}

// GamutReport describes how much of the sweep falls outside sRGB.
type GamutReport struct {
	// Samples is the number of phases inspected.
	Samples int `json:"samples"`

	// ClippedFraction is the share of samples with at least one channel
	// outside [0,1] before clamping.
	ClippedFraction float64 `json:"clipped_fraction"`

	// MaxExcess is the largest distance of any channel from [0,1].
	MaxExcess float64 `json:"max_excess"`

	// WorstPhase is the phase at which MaxExcess occurs.
	WorstPhase float64 `json:"worst_phase"`
}

// SweepGamut measures the gamut fit of the sweep with an extra lightness
// offset dL applied, as the magnitude ramps do. The constants of the sweep
// have to be re-checked with this whenever the output color space changes.
func SweepGamut(n int, dL float64) GamutReport {
	report := GamutReport{Samples: n}
	if n <= 0 {
		return report
	}
	clipped := 0
	for k := 0; k < n; k++ {
		theta := 2 * math.Pi * float64(k) / float64(n)
		lab := SweepLab(theta)
		lab.L += dL
		c := lab.raw()
		excess := 0.0
		for _, v := range [3]float64{c.R, c.G, c.B} {
			switch {
			case v < 0:
				excess = math.Max(excess, -v)
			case v > 1:
				excess = math.Max(excess, v-1)
			}
		}
		if excess > 0 {
			clipped++
		}
		if excess > report.MaxExcess {
			report.MaxExcess = excess
			report.WorstPhase = theta
		}
	}
	report.ClippedFraction = float64(clipped) / float64(n)
	return report
}
