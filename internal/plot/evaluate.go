package plot

import (
	"errors"
	"fmt"
	"math/cmplx"
	"sync"
	"time"

	"github.com/anthonynsimon/bild/parallel"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/remeh/sizedwaitgroup"

	"github.com/ironsheep/domaincolor-mcp/internal/shading"
)

// Func is the function being plotted. It is treated as opaque: it may
// return NaN or Inf, and it may panic for some inputs.
type Func func(z complex128) complex128

var (
	errNilFunc   = errors.New("plot: nil function")
	errNilShader = errors.New("plot: nil shader")
)

// Image is the result of an evaluation. Samples and Pixels are indexed
// j*Grid.Nx + i, with i along the real axis and j along the imaginary axis
// (j = 0 at Rect.ImMin).
type Image struct {
	Rect    AxisRect
	Grid    PixelGrid
	Samples []complex128
	Pixels  []colorful.Color

	// NonFinite counts samples where f produced NaN or Inf, including
	// Failures.
	NonFinite int

	// Failures counts samples where f panicked.
	Failures int

	Elapsed time.Duration
}

// At returns the color of pixel (i, j).
func (m *Image) At(i, j int) colorful.Color {
	return m.Pixels[j*m.Grid.Nx+i]
}

// Sample returns f at the centre of pixel (i, j).
func (m *Image) Sample(i, j int) complex128 {
	return m.Samples[j*m.Grid.Nx+i]
}

type options struct {
	workers   int
	serialize bool
	maxPixels int
}

// Option tunes an evaluation.
type Option func(*options)

// WithWorkers sets the number of rows shaded concurrently. 1 runs
// sequentially on the calling goroutine; 0 or less partitions the rows
// across GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithSerializedCalls makes the evaluation call f from one goroutine at a
// time, for functions that are not safe for concurrent use. Shading still
// runs in parallel.
func WithSerializedCalls() Option {
	return func(o *options) { o.serialize = true }
}

// WithMaxPixels rejects grids with more than n samples. n <= 0 means no
// limit.
func WithMaxPixels(n int) Option {
	return func(o *options) { o.maxPixels = n }
}

// Evaluate samples f over the rectangle given by axes at the resolution
// given by pixels and colors each sample with shader. See NormalizeAxes and
// NormalizePixels for the accepted specifications; both are checked before
// anything is allocated.
//
// A sample where f returns NaN/Inf or panics is not an error: it is shaded
// as a non-finite value and counted in the result.
func Evaluate(f Func, axes []float64, pixels []int, shader shading.Shader, opts ...Option) (*Image, error) {
	rect, err := NormalizeAxes(axes...)
	if err != nil {
		return nil, err
	}
	grid, err := NormalizePixels(pixels...)
	if err != nil {
		return nil, err
	}
	return EvaluateGrid(f, rect, grid, shader, opts...)
}

// EvaluateGrid is Evaluate for an already built rectangle and grid.
func EvaluateGrid(f Func, rect AxisRect, grid PixelGrid, shader shading.Shader, opts ...Option) (*Image, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if err := rect.Validate(); err != nil {
		return nil, err
	}
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	if o.maxPixels > 0 && grid.Nx > o.maxPixels/grid.Ny {
		return nil, fmt.Errorf("%w: %dx%d exceeds the limit of %d samples", ErrInvalidResolution, grid.Nx, grid.Ny, o.maxPixels)
	}
	if f == nil {
		return nil, errNilFunc
	}
	if shader == nil {
		return nil, errNilShader
	}

	if o.serialize {
		f = serialized(f)
	}

	start := time.Now()
	e := &evaluation{
		f:        f,
		rect:     rect,
		grid:     grid,
		shader:   shader,
		samples:  make([]complex128, grid.Len()),
		pixels:   make([]colorful.Color, grid.Len()),
		failures: make([]int, grid.Ny),
	}

	switch {
	case o.workers == 1:
		for j := 0; j < grid.Ny; j++ {
			e.row(j)
		}
	case o.workers > 1:
		swg := sizedwaitgroup.New(o.workers)
		for j := 0; j < grid.Ny; j++ {
			swg.Add()
			go func(j int) {
				defer swg.Done()
				e.row(j)
			}(j)
		}
		swg.Wait()
	default:
		parallel.Line(grid.Ny, func(start, end int) {
			for j := start; j < end; j++ {
				e.row(j)
			}
		})
	}

	img := &Image{
		Rect:    rect,
		Grid:    grid,
		Samples: e.samples,
		Pixels:  e.pixels,
	}
	for _, n := range e.failures {
		img.Failures += n
	}
	for _, w := range e.samples {
		if !shading.IsFinite(w) {
			img.NonFinite++
		}
	}
	img.Elapsed = time.Since(start)
	return img, nil
}

// evaluation is the state of one Evaluate call. Each row writes only its
// own slots, so rows need no locking.
type evaluation struct {
	f        Func
	rect     AxisRect
	grid     PixelGrid
	shader   shading.Shader
	samples  []complex128
	pixels   []colorful.Color
	failures []int
}

func (e *evaluation) row(j int) {
	base := j * e.grid.Nx
	for i := 0; i < e.grid.Nx; i++ {
		w, ok := safeCall(e.f, e.grid.Point(e.rect, i, j))
		if !ok {
			e.failures[j]++
		}
		e.samples[base+i] = w
		e.pixels[base+i] = e.shader.Shade(w)
	}
}

// safeCall evaluates f at z, turning a panic into a NaN sample.
func safeCall(f Func, z complex128) (w complex128, ok bool) {
	defer func() {
		if recover() != nil {
			w, ok = cmplx.NaN(), false
		}
	}()
	return f(z), true
}

func serialized(f Func) Func {
	var mu sync.Mutex
	return func(z complex128) complex128 {
		mu.Lock()
		defer mu.Unlock()
		return f(z)
	}
}
