// Package imaging turns evaluated plots into images for MCP clients.
//
// This package is the output end of the pipeline: it takes the color array
// and axis rectangle produced by package plot and produces PNG images,
// optionally enlarged and annotated with the coordinate axes. It owns no
// numerics; every color it writes was computed by a shader.
//
// # Orientation
//
// Plot samples are indexed with j = 0 at the bottom of the rectangle
// (ImMin). Images are written the usual way, row 0 at the top, so the
// raster is flipped vertically: the top-left pixel is the sample nearest
// ReMin + ImMax·i and the bottom-right pixel the one nearest ReMax + ImMin·i.
//
// # Color Representation
//
// Colors are reported in several formats for flexibility:
//   - Hex: 6-character format "#RRGGBB"
//   - RGB: 8-bit components (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
//   - Lab: CIE L*a*b* of the displayed (clamped) color
//
// # Thread Safety
//
// All functions are stateless and may be called concurrently on different
// plots.
package imaging
