package shading

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertColorNear(t *testing.T, want, got colorful.Color, delta float64) {
	t.Helper()
	assert.InDelta(t, want.R, got.R, delta, "R")
	assert.InDelta(t, want.G, got.G, delta, "G")
	assert.InDelta(t, want.B, got.B, delta, "B")
}

func assertInGamut(t *testing.T, c colorful.Color) {
	t.Helper()
	for _, v := range []float64{c.R, c.G, c.B} {
		assert.False(t, math.IsNaN(v), "channel is NaN")
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestSweepLab_Formula(t *testing.T) {
	lab := SweepLab(0)
	assert.InDelta(t, 55.0, lab.L, 1e-12)
	assert.InDelta(t, 46*math.Cos(SweepRotation)-3, lab.A, 1e-12)
	assert.InDelta(t, 46*math.Sin(SweepRotation)-16, lab.B, 1e-12)

	lab = SweepLab(math.Pi / 3)
	assert.InDelta(t, 79.0, lab.L, 1e-9, "lightness lobe peaks at π/3")
}

func TestLabColor_Periodic(t *testing.T) {
	for theta := -10.0; theta <= 10.0; theta += 0.137 {
		assertColorNear(t, LabColor(theta), LabColor(theta+2*math.Pi), 1e-9)
		assertColorNear(t, LabColor(theta), LabColor(theta-4*math.Pi), 1e-9)
	}
}

func TestLabColor_InGamut(t *testing.T) {
	for theta := -7.0; theta <= 7.0; theta += 0.01 {
		assertInGamut(t, LabColor(theta))
	}
	for _, theta := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 1e300, -1e300} {
		assertInGamut(t, LabColor(theta))
	}
}

func TestLabColor_Landmarks(t *testing.T) {
	red := LabColor(0)
	assert.Greater(t, red.R, red.G)
	assert.Greater(t, red.R, red.B)

	green := LabColor(2 * math.Pi / 3)
	assert.Greater(t, green.G, green.R)
	assert.Greater(t, green.G, green.B)

	cyan := LabColor(math.Pi)
	assert.Less(t, cyan.R, cyan.G)
	assert.Less(t, cyan.R, cyan.B)

	blue := LabColor(4 * math.Pi / 3)
	assert.Greater(t, blue.B, blue.R)
	assert.Greater(t, blue.B, blue.G)
}

func TestWrapPhase(t *testing.T) {
	tests := []struct {
		name  string
		theta float64
		want  float64
	}{
		{"zero", 0, 0},
		{"pi", math.Pi, math.Pi},
		{"negative", -math.Pi / 2, 3 * math.Pi / 2},
		{"full turn", 2 * math.Pi, 0},
		{"nan", math.NaN(), 0},
		{"inf", math.Inf(1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapPhase(tt.theta)
			assert.InDelta(t, tt.want, got, 1e-12)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.Less(t, got, 2*math.Pi)
		})
	}
	assert.Less(t, wrapPhase(-1e-18), 2*math.Pi)
}

func TestWheel(t *testing.T) {
	assert.Nil(t, Wheel(0))

	colors := Wheel(64)
	require.Len(t, colors, 64)
	assertColorNear(t, LabColor(0), colors[0], 0)
	assertColorNear(t, LabColor(math.Pi), colors[32], 1e-12)
	for _, c := range colors {
		assertInGamut(t, c)
	}
}

func TestSweepGamut(t *testing.T) {
	report := SweepGamut(720, 0)
	assert.Equal(t, 720, report.Samples)
	assert.GreaterOrEqual(t, report.ClippedFraction, 0.0)
	assert.LessOrEqual(t, report.ClippedFraction, 1.0)
	if report.ClippedFraction > 0 {
		assert.Greater(t, report.MaxExcess, 0.0)
	}

	// Brighter sweeps push more of the cycle out of sRGB.
	lighter := SweepGamut(720, 10)
	assert.GreaterOrEqual(t, lighter.ClippedFraction, report.ClippedFraction)

	assert.Equal(t, GamutReport{}, SweepGamut(0, 0))
}
