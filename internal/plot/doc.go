// Package plot samples a complex function over a rectangle of the complex
// plane and shades every sample into an Image.
package plot
