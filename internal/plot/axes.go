package plot

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidAxes is returned for a degenerate, inverted or malformed
	// axis specification.
	ErrInvalidAxes = errors.New("invalid axes")

	// ErrInvalidResolution is returned for pixel counts that are not
	// positive integers or exceed the configured limit.
	ErrInvalidResolution = errors.New("invalid resolution")
)

// AxisRect is the rectangle of the complex plane being plotted.
type AxisRect struct {
	ReMin float64 `json:"re_min"`
	ReMax float64 `json:"re_max"`
	ImMin float64 `json:"im_min"`
	ImMax float64 `json:"im_max"`
}

// DefaultAxes is the unit square around the origin.
var DefaultAxes = AxisRect{ReMin: -1, ReMax: 1, ImMin: -1, ImMax: 1}

// NormalizeAxes turns an axis specification into an AxisRect:
//   - one value a: (-a, a, -a, a)
//   - two values a, b: (-a, a, -b, b)
//   - four values: (reMin, reMax, imMin, imMax)
//
// No values yields DefaultAxes. Any other length, a NaN or infinite bound,
// or an extent that is not strictly increasing returns ErrInvalidAxes.
func NormalizeAxes(spec ...float64) (AxisRect, error) {
	var r AxisRect
	switch len(spec) {
	case 0:
		return DefaultAxes, nil
	case 1:
		r = AxisRect{-spec[0], spec[0], -spec[0], spec[0]}
	case 2:
		r = AxisRect{-spec[0], spec[0], -spec[1], spec[1]}
	case 4:
		r = AxisRect{spec[0], spec[1], spec[2], spec[3]}
	default:
		return AxisRect{}, fmt.Errorf("%w: want 1, 2 or 4 values, got %d", ErrInvalidAxes, len(spec))
	}
	if err := r.Validate(); err != nil {
		return AxisRect{}, err
	}
	return r, nil
}

// Validate checks reMin < reMax and imMin < imMax with finite bounds and
// finite extents. NaN bounds fail.
func (r AxisRect) Validate() error {
	for _, v := range [4]float64{r.ReMin, r.ReMax, r.ImMin, r.ImMax} {
		if math.IsInf(v, 0) {
			return fmt.Errorf("%w: bound %g is not finite", ErrInvalidAxes, v)
		}
	}
	if !(r.ReMin < r.ReMax) {
		return fmt.Errorf("%w: real extent [%g, %g] is empty", ErrInvalidAxes, r.ReMin, r.ReMax)
	}
	if !(r.ImMin < r.ImMax) {
		return fmt.Errorf("%w: imaginary extent [%g, %g] is empty", ErrInvalidAxes, r.ImMin, r.ImMax)
	}
	// e.g. [-1e308, 1e308]
	if math.IsInf(r.Width(), 0) || math.IsInf(r.Height(), 0) {
		return fmt.Errorf("%w: extent of %+v overflows", ErrInvalidAxes, r)
	}
	return nil
}

// Width is the real extent.
func (r AxisRect) Width() float64 { return r.ReMax - r.ReMin }

// Height is the imaginary extent.
func (r AxisRect) Height() float64 { return r.ImMax - r.ImMin }

// PixelGrid is the number of samples along the real (Nx) and imaginary (Ny)
// axes.
type PixelGrid struct {
	Nx int `json:"nx"`
	Ny int `json:"ny"`
}

// DefaultPixels is the resolution used when none is given.
var DefaultPixels = PixelGrid{Nx: 720, Ny: 720}

// NormalizePixels turns a pixel specification into a PixelGrid: one value
// for a square grid, two for (nx, ny), none for DefaultPixels. Counts that
// are not positive or whose product overflows int, or any other length,
// return ErrInvalidResolution.
func NormalizePixels(spec ...int) (PixelGrid, error) {
	var g PixelGrid
	switch len(spec) {
	case 0:
		return DefaultPixels, nil
	case 1:
		g = PixelGrid{spec[0], spec[0]}
	case 2:
		g = PixelGrid{spec[0], spec[1]}
	default:
		return PixelGrid{}, fmt.Errorf("%w: want 1 or 2 values, got %d", ErrInvalidResolution, len(spec))
	}
	if err := g.Validate(); err != nil {
		return PixelGrid{}, err
	}
	return g, nil
}

// Validate checks that both counts are positive and that Len does not
// overflow.
func (g PixelGrid) Validate() error {
	if g.Nx <= 0 || g.Ny <= 0 {
		return fmt.Errorf("%w: %dx%d is not positive", ErrInvalidResolution, g.Nx, g.Ny)
	}
	if g.Nx > math.MaxInt/g.Ny {
		return fmt.Errorf("%w: %dx%d samples overflow", ErrInvalidResolution, g.Nx, g.Ny)
	}
	return nil
}

// Len is the number of samples, Nx*Ny.
func (g PixelGrid) Len() int { return g.Nx * g.Ny }

// Point returns the sample at the centre of pixel (i, j), i along the real
// axis and j along the imaginary axis, j = 0 at r.ImMin.
func (g PixelGrid) Point(r AxisRect, i, j int) complex128 {
	re := r.ReMin + (float64(i)+0.5)/float64(g.Nx)*r.Width()
	im := r.ImMin + (float64(j)+0.5)/float64(g.Ny)*r.Height()
	return complex(re, im)
}
