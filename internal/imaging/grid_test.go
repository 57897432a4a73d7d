package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/domaincolor-mcp/internal/plot"
)

func createInMemoryImage(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestAxisOverlay_AxisLines(t *testing.T) {
	img := createInMemoryImage(100, 100, color.NRGBA{0, 0, 0, 255})

	AxisOverlay(img, plot.AxisRect{ReMin: -1, ReMax: 3, ImMin: -3, ImMax: 1}, "#FF0000FF")

	// Re = 0 lies a quarter of the way across
	r, g, b := rgbAt(img, 25, 50)
	if r != 255 || g != 0 || b != 0 {
		t.Errorf("real axis at (25,50): got (%d,%d,%d), want (255,0,0)", r, g, b)
	}

	// Im = 0 lies a quarter of the way down
	r, g, b = rgbAt(img, 60, 25)
	if r != 255 || g != 0 || b != 0 {
		t.Errorf("imaginary axis at (60,25): got (%d,%d,%d), want (255,0,0)", r, g, b)
	}

	// away from axes and labels the background is untouched
	r, g, b = rgbAt(img, 60, 50)
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("background at (60,50): got (%d,%d,%d), want (0,0,0)", r, g, b)
	}
}

func TestAxisOverlay_AxesOutsideRect(t *testing.T) {
	img := createInMemoryImage(60, 60, color.NRGBA{10, 20, 30, 255})

	AxisOverlay(img, plot.AxisRect{ReMin: 1, ReMax: 2, ImMin: 1, ImMax: 2}, "#FF0000")

	// no axis crosses the rectangle, only the corner labels are drawn
	for _, p := range []image.Point{{30, 30}, {45, 5}, {5, 30}} {
		r, g, b := rgbAt(img, p.X, p.Y)
		if r != 10 || g != 20 || b != 30 {
			t.Errorf("(%d,%d): got (%d,%d,%d), want (10,20,30)", p.X, p.Y, r, g, b)
		}
	}
}

func TestAxisOverlay_InvalidColorUsesDefault(t *testing.T) {
	img := createInMemoryImage(100, 100, color.NRGBA{0, 0, 0, 255})

	AxisOverlay(img, plot.AxisRect{ReMin: -1, ReMax: 1, ImMin: -1, ImMax: 1}, "not-a-color")

	r, _, _ := rgbAt(img, 50, 70)
	if r == 0 {
		t.Error("default axis color was not drawn")
	}
}

func TestAxisOverlay_Labels(t *testing.T) {
	img := createInMemoryImage(200, 200, color.NRGBA{128, 128, 128, 255})

	AxisOverlay(img, plot.AxisRect{ReMin: 5, ReMax: 6, ImMin: 5, ImMax: 6}, "")

	// label boxes darken the gray background just inside both corners
	if r, _, _ := rgbAt(img, labelPadding-1, labelPadding-1); r >= 128 {
		t.Errorf("top-left label missing: red channel %d", r)
	}
	if r, _, _ := rgbAt(img, 200-labelPadding, 200-labelPadding); r >= 128 {
		t.Errorf("bottom-right label missing: red channel %d", r)
	}
}

func TestFormatPoint(t *testing.T) {
	tests := []struct {
		re, im float64
		want   string
	}{
		{-1, 1, "-1+1i"},
		{2.5, -0.5, "2.5-0.5i"},
		{0, 0, "0+0i"},
		{3.14159265, 1e-6, "3.142+1e-06i"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatPoint(tt.re, tt.im); got != tt.want {
				t.Errorf("formatPoint(%v, %v) = %q, want %q", tt.re, tt.im, got, tt.want)
			}
		})
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input   string
		want    color.NRGBA
		wantErr bool
	}{
		{"#FF0000", color.NRGBA{255, 0, 0, 255}, false},
		{"#00FF00", color.NRGBA{0, 255, 0, 255}, false},
		{"#0000FF", color.NRGBA{0, 0, 255, 255}, false},
		{"FF0000", color.NRGBA{255, 0, 0, 255}, false},
		{"#FF000080", color.NRGBA{255, 0, 0, 128}, false},
		{"#ffffff", color.NRGBA{255, 255, 255, 255}, false},
		{"#FFF", color.NRGBA{}, true},
		{"#GGGGGG", color.NRGBA{}, true},
		{"", color.NRGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseHexColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseHexColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseHexColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDrawLabel_ClipsAtEdge(t *testing.T) {
	img := createInMemoryImage(20, 20, color.NRGBA{255, 255, 255, 255})

	// must not panic when the label runs off the image
	drawLabel(img, 15, 15, "overflowing", color.NRGBA{255, 0, 0, 255}, color.NRGBA{0, 0, 0, 255})

	if r, g, b := rgbAt(img, 16, 16); r == 255 && g == 255 && b == 255 {
		t.Error("label background not drawn inside the image")
	}
}

func TestDrawLabel_Empty(t *testing.T) {
	img := createInMemoryImage(10, 10, color.NRGBA{255, 255, 255, 255})

	drawLabel(img, 0, 0, "", color.NRGBA{0, 0, 0, 255}, color.NRGBA{0, 0, 0, 255})

	if r, _, _ := rgbAt(img, 1, 1); r != 255 {
		t.Error("empty label should draw nothing")
	}
}
