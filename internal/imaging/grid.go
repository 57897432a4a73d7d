package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/domaincolor-mcp/internal/plot"
)

const labelPadding = 2

var (
	defaultAxisColor = color.NRGBA{255, 255, 255, 160}
	labelColor       = color.NRGBA{255, 255, 255, 255}
	labelBackground  = color.NRGBA{0, 0, 0, 170}
	labelFace        = basicfont.Face7x13
)

// AxisOverlay draws the real and imaginary axes (where they cross the plot)
// and labels the top-left and bottom-right corners with their complex
// coordinates. img must cover the whole rectangle r.
func AxisOverlay(img draw.Image, r plot.AxisRect, axisColorHex string) {
	axisColor, err := parseHexColor(axisColorHex)
	if err != nil {
		axisColor = defaultAxisColor
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// Re = 0 is a vertical line
	if r.ReMin < 0 && r.ReMax > 0 {
		x := bounds.Min.X + int(-r.ReMin/r.Width()*float64(width))
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			blend(img, x, y, axisColor)
		}
	}

	// Im = 0 is a horizontal line; image rows grow downward from ImMax
	if r.ImMin < 0 && r.ImMax > 0 {
		y := bounds.Min.Y + int(r.ImMax/r.Height()*float64(height))
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			blend(img, x, y, axisColor)
		}
	}

	topLeft := formatPoint(r.ReMin, r.ImMax)
	drawLabel(img, bounds.Min.X+labelPadding, bounds.Min.Y+labelPadding, topLeft, labelColor, labelBackground)

	bottomRight := formatPoint(r.ReMax, r.ImMin)
	w := font.MeasureString(labelFace, bottomRight).Ceil()
	h := labelFace.Metrics().Height.Ceil()
	drawLabel(img, bounds.Max.X-w-labelPadding, bounds.Max.Y-h-labelPadding, bottomRight, labelColor, labelBackground)
}

// formatPoint renders re + im·i compactly, e.g. "-1.5+2i".
func formatPoint(re, im float64) string {
	return fmt.Sprintf("%.4g%+.4gi", re, im)
}

func blend(img draw.Image, x, y int, c color.NRGBA) {
	if !(image.Point{x, y}.In(img.Bounds())) {
		return
	}
	draw.Draw(img, image.Rect(x, y, x+1, y+1), image.NewUniform(c), image.Point{}, draw.Over)
}

// parseHexColor parses a hex color string like "#FF0000" or "#FF000080"
func parseHexColor(hex string) (color.NRGBA, error) {
	if len(hex) == 0 {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint8 = 0, 0, 0, 255

	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.NRGBA{}, err
		}
		r = uint8(val >> 16)
		g = uint8(val >> 8)
		b = uint8(val)
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.NRGBA{}, err
		}
		r = uint8(val >> 24)
		g = uint8(val >> 16)
		b = uint8(val >> 8)
		a = uint8(val)
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color length")
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}

// drawLabel draws text on a filled box whose top-left corner is (x, y).
// Parts outside img are clipped.
func drawLabel(img draw.Image, x, y int, text string, fg, bg color.NRGBA) {
	if text == "" {
		return
	}
	w := font.MeasureString(labelFace, text).Ceil()
	h := labelFace.Metrics().Height.Ceil()

	box := image.Rect(x-1, y-1, x+w+1, y+h+1).Intersect(img.Bounds())
	draw.Draw(img, box, image.NewUniform(bg), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: labelFace,
		Dot:  fixed.P(x, y+labelFace.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}
