package render

import (
	"github.com/gdamore/tcell/v2"
)

// HalfBlock is the upper half block; foreground paints the top raster row, background the bottom
const HalfBlock = '▀'

// Screen is the subset of tcell.Screen the presenter writes to
type Screen interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// Present writes the framebuffer to the screen, one half-block per cell
// Caller is responsible for Show()
func (r *Raster) Present(screen Screen) {
	for cy := 0; cy < r.rows; cy++ {
		top := r.pix[(cy*2)*r.pxW:]
		bottom := r.pix[(cy*2+1)*r.pxW:]
		for cx := 0; cx < r.cols; cx++ {
			style := tcell.StyleDefault.
				Foreground(top[cx].Tcell()).
				Background(bottom[cx].Tcell())
			screen.SetContent(cx, cy, HalfBlock, nil, style)
		}
	}
}

// CellBackground returns the colour behind a terminal cell, averaging its two raster rows
// Used by overlays that draw text over the background
func (r *Raster) CellBackground(cx, cy int) RGB {
	return Blend(r.At(cx, cy*2), r.At(cx, cy*2+1), 0.5)
}
