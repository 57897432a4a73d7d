package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/domaincolor-mcp/internal/plot"
)

const (
	// MaxScale is the largest accepted RenderOptions.Scale.
	MaxScale = 64

	// MaxRenderPixels bounds the width*height of a rendered PNG.
	MaxRenderPixels = 8192 * 8192
)

// ErrRenderSize is returned when the scaled image would be empty or too
// large to allocate.
var ErrRenderSize = errors.New("invalid render size")

// ScaledSize returns the PNG dimensions of grid g rendered at scale. It
// rejects scales outside (0, MaxScale] and images larger than
// MaxRenderPixels. A scale of 0 means 1.
func ScaledSize(g plot.PixelGrid, scale float64) (int, int, error) {
	if scale == 0 {
		scale = 1
	}
	if math.IsNaN(scale) || scale < 0 || scale > MaxScale {
		return 0, 0, fmt.Errorf("%w: scale must be in (0, %d], got %v", ErrRenderSize, MaxScale, scale)
	}
	w := math.Max(1, math.Floor(float64(g.Nx)*scale))
	h := math.Max(1, math.Floor(float64(g.Ny)*scale))
	if w*h > MaxRenderPixels {
		return 0, 0, fmt.Errorf("%w: %gx%g exceeds %d pixels", ErrRenderSize, w, h, MaxRenderPixels)
	}
	return int(w), int(h), nil
}

// PlotResult is a rendered plot ready to hand to an MCP client.
type PlotResult struct {
	// Width and Height are the PNG dimensions after scaling.
	Width  int `json:"width"`
	Height int `json:"height"`

	// ImageBase64 is the plot encoded as base64 PNG.
	ImageBase64 string `json:"image_base64"`

	// MimeType is always "image/png".
	MimeType string `json:"mime_type"`

	// Axes is the resolved rectangle of the complex plane shown.
	Axes plot.AxisRect `json:"axes"`

	// Pixels is the sampling grid before scaling.
	Pixels plot.PixelGrid `json:"pixels"`

	// NonFinite counts samples where the function was undefined.
	NonFinite int `json:"non_finite"`

	// Failures counts samples where the function panicked.
	Failures int `json:"failures"`

	// Elapsed is the evaluation time, human readable.
	Elapsed string `json:"elapsed,omitempty"`

	// SizeBytes is the size of the encoded PNG.
	SizeBytes int `json:"size_bytes"`
}

// RenderOptions controls how an evaluated plot becomes a PNG.
type RenderOptions struct {
	// Scale enlarges (or shrinks) the raster with nearest-neighbour
	// sampling so pixel boundaries stay sharp. 0 or 1 keeps the grid size;
	// see ScaledSize for the accepted range.
	Scale float64

	// ShowAxes draws the coordinate axes and corner coordinates.
	ShowAxes bool

	// AxisColor is a "#RRGGBB" or "#RRGGBBAA" color for the axes.
	// Defaults to semi-transparent white.
	AxisColor string
}

// Raster converts an evaluated plot into an image with the imaginary axis
// pointing up: row 0 of the result holds the samples nearest ImMax and
// column 0 those nearest ReMin.
func Raster(m *plot.Image) *image.NRGBA {
	nx, ny := m.Grid.Nx, m.Grid.Ny
	grid := image.NewNRGBA(image.Rect(0, 0, nx, ny))
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			r, g, b := m.At(i, j).Clamped().RGB255()
			grid.SetNRGBA(i, j, color.NRGBA{R: r, G: g, B: b, A: 255})
		}
	}
	// grid rows run from ImMin upward; image rows run downward
	return imaging.FlipV(grid)
}

// Render rasterizes, optionally scales and annotates, and encodes a plot.
func Render(m *plot.Image, opts RenderOptions) (*PlotResult, error) {
	newWidth, newHeight, err := ScaledSize(m.Grid, opts.Scale)
	if err != nil {
		return nil, err
	}

	img := Raster(m)
	if newWidth != m.Grid.Nx || newHeight != m.Grid.Ny {
		img = imaging.Resize(img, newWidth, newHeight, imaging.NearestNeighbor)
	}

	if opts.ShowAxes {
		AxisOverlay(img, m.Rect, opts.AxisColor)
	}

	data, err := encodePNG(img)
	if err != nil {
		return nil, err
	}

	result := &PlotResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(data),
		MimeType:    "image/png",
		Axes:        m.Rect,
		Pixels:      m.Grid,
		NonFinite:   m.NonFinite,
		Failures:    m.Failures,
		SizeBytes:   len(data),
	}
	return result, nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
