// Package shading turns single complex values into display colors.
//
// It holds the pieces every plot kind is assembled from: the analytic phase
// sweep through CIE L*a*b* space, the magnitude encoders that modulate a
// sweep color, and the pixel shaders that combine them for one plot kind.
// Nothing here knows about grids, images or functions; a shader sees one
// complex128 at a time.
//
// # Color Representation
//
// Intermediate colors are kept as unclamped Lab values (standard units,
// L* in 0-100, D65 white point). Final colors are go-colorful Color values
// in sRGB with every channel clamped to [0,1]:
//
//	c := shading.LabColor(math.Pi / 3)
//	r, g, b := c.RGB255()
//
// # Shaders
//
// Three shader families implement the Shader interface:
//   - DomainColor: hue by phase, optional lightness ramps and integer grid
//   - Checker: black and white stripes combined by parity
//   - CyclicPhase: phase only, through a cyclic color map (CBC1, CBTC1 or a
//     map loaded from disk)
//
// Flag shorthands and precedence are resolved when a shader is built, so
// Shade itself is branch-light and never re-validates its configuration.
//
// # Non-finite Values
//
// A NaN or infinite input is never an error. Every shader maps it to
// Sentinel, a neutral grey that is distinguishable from the sweep, from the
// grid marker and from checker black and white.
//
// # Thread Safety
//
// Shaders are immutable after construction and may be shared by any number
// of goroutines.
package shading
