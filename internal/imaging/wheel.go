package imaging

import (
	"encoding/base64"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// StripResult is a horizontal color strip encoded as base64 PNG.
type StripResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Strip renders colors left to right, one column per color, height rows
// tall. It is used to show the phase wheel unrolled from 0 to 2π.
func Strip(colors []colorful.Color, height int) (*StripResult, error) {
	if height < 1 {
		height = 1
	}
	width := max(1, len(colors))
	img := imaging.New(width, height, color.NRGBA{0, 0, 0, 255})
	for x, c := range colors {
		r, g, b := c.Clamped().RGB255()
		px := color.NRGBA{R: r, G: g, B: b, A: 255}
		for y := 0; y < height; y++ {
			img.SetNRGBA(x, y, px)
		}
	}

	data, err := encodePNG(img)
	if err != nil {
		return nil, err
	}
	return &StripResult{
		Width:       width,
		Height:      height,
		ImageBase64: base64.StdEncoding.EncodeToString(data),
		MimeType:    "image/png",
	}, nil
}
