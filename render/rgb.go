package render

import (
	"github.com/gdamore/tcell/v2"
)

// RGB is an opaque 24-bit colour stored in the framebuffer
type RGB struct {
	R, G, B uint8
}

// Color is an RGB colour with straight (non-premultiplied) opacity
type Color struct {
	RGB
	A float64
}

// Predefined colours
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}

	// RGBBackground is the page backdrop (Tokyo Night)
	RGBBackground = RGB{26, 27, 38}
)

// White returns white at the given opacity, the canvas rgba(255, 255, 255, a)
func White(alpha float64) Color {
	return Color{RGB: RGBWhite, A: alpha}
}

// Tcell converts to a tcell true-colour value
// tcell downsamples to the palette when the terminal lacks 24-bit support
func (c RGB) Tcell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Blend optimizes alpha blending
// If alpha is 1.0 or 0.0, we return early to save math
func Blend(c, src RGB, alpha float64) RGB {
	if alpha >= 1.0 {
		return src
	}
	if alpha <= 0.0 {
		return c
	}

	inv := 1.0 - alpha

	return RGB{
		R: clamp(float64(src.R)*alpha + float64(c.R)*inv + 0.5),
		G: clamp(float64(src.G)*alpha + float64(c.G)*inv + 0.5),
		B: clamp(float64(src.B)*alpha + float64(c.B)*inv + 0.5),
	}
}

// clamp converts float to uint8 efficiently
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v)
}
