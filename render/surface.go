package render

import "image"

// Surface is the 2D drawing context the background draws into
// Coordinates are surface units with the origin top-left and y growing downward
// Angles are radians measured clockwise from +x, as on an HTML canvas
type Surface interface {
	// Size returns surface dimensions in units
	Size() (width, height float64)

	// Clear resets every pixel to the backdrop
	Clear()

	// Line strokes a segment
	Line(x0, y0, x1, y1, width float64, c Color)

	// FillArc fills the sector swept clockwise from start to end
	// A sweep of 2π fills the whole disc; π to 0 (i.e. π to 2π) fills the upper half
	FillArc(cx, cy, r, start, end float64, c Color)

	// StrokeArc strokes the circle outline of radius r over the same sweep rules
	StrokeArc(cx, cy, r, start, end, width float64, c Color)

	// DrawImage draws img scaled into the rectangle at (x, y) of size w×h
	DrawImage(img image.Image, x, y, w, h float64)

	// Save pushes the current alpha and clip state; Restore pops it
	Save()
	Restore()

	// SetAlpha sets the global opacity multiplier applied to every subsequent draw
	SetAlpha(alpha float64)

	// ClipCircle restricts subsequent draws to the disc, intersecting any existing clip
	ClipCircle(cx, cy, r float64)
}
