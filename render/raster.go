package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/lixenwraith/hearth/parameter"
	"github.com/lixenwraith/hearth/vmath"
)

// circle is a clip region in surface units
type circle struct {
	cx, cy, r float64
}

// drawState is the Save/Restore unit
type drawState struct {
	alpha float64
	clips []circle
}

// Raster is a Surface backed by an RGB framebuffer sized for half-block terminal output
// Each terminal cell holds one raster column and two raster rows
type Raster struct {
	cols, rows int
	pxW, pxH   int
	unitW      float64 // surface units per raster pixel, horizontal
	unitH      float64 // surface units per raster pixel, vertical

	pix   []RGB
	bg    RGB
	state drawState
	stack []drawState
}

// NewRaster creates a raster for a terminal of cols×rows cells
func NewRaster(cols, rows int) *Raster {
	r := &Raster{
		unitW: parameter.CellWidthUnits,
		unitH: parameter.CellHeightUnits / 2,
		bg:    RGBBackground,
		state: drawState{alpha: 1},
	}
	r.Resize(cols, rows)
	return r
}

// Resize adjusts dimensions, reallocates only if capacity insufficient
func (r *Raster) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	r.cols, r.rows = cols, rows
	r.pxW, r.pxH = cols, rows*2
	size := r.pxW * r.pxH
	if cap(r.pix) < size {
		r.pix = make([]RGB, size)
	} else {
		r.pix = r.pix[:size]
	}
	r.Clear()
}

// Cells returns the terminal grid dimensions
func (r *Raster) Cells() (cols, rows int) {
	return r.cols, r.rows
}

// Size returns surface dimensions in units
func (r *Raster) Size() (float64, float64) {
	return float64(r.pxW) * r.unitW, float64(r.pxH) * r.unitH
}

// SetBackground changes the backdrop used by Clear
func (r *Raster) SetBackground(bg RGB) {
	r.bg = bg
}

// Clear resets all pixels to the backdrop using exponential copy
func (r *Raster) Clear() {
	if len(r.pix) == 0 {
		return
	}
	r.pix[0] = r.bg
	for filled := 1; filled < len(r.pix); filled *= 2 {
		copy(r.pix[filled:], r.pix[:filled])
	}
}

// At returns the pixel at raster coordinates, backdrop when out of bounds
func (r *Raster) At(px, py int) RGB {
	if !r.inBounds(px, py) {
		return r.bg
	}
	return r.pix[py*r.pxW+px]
}

func (r *Raster) inBounds(px, py int) bool {
	return px >= 0 && px < r.pxW && py >= 0 && py < r.pxH
}

// Save pushes the current state
func (r *Raster) Save() {
	saved := drawState{alpha: r.state.alpha}
	if len(r.state.clips) > 0 {
		saved.clips = append([]circle(nil), r.state.clips...)
	}
	r.stack = append(r.stack, saved)
}

// Restore pops the last saved state, no-op on an empty stack
func (r *Raster) Restore() {
	if len(r.stack) == 0 {
		return
	}
	r.state = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

// SetAlpha sets the global opacity multiplier
func (r *Raster) SetAlpha(alpha float64) {
	r.state.alpha = vmath.Clamp01(alpha)
}

// ClipCircle intersects the clip region with a disc
func (r *Raster) ClipCircle(cx, cy, radius float64) {
	r.state.clips = append(r.state.clips, circle{cx, cy, radius})
}

// center returns the surface-unit centre of a raster pixel
func (r *Raster) center(px, py int) (float64, float64) {
	return (float64(px) + 0.5) * r.unitW, (float64(py) + 0.5) * r.unitH
}

// coverage approximates the fraction of a pixel inside an edge at distance edge from a feature
// d is the distance of the pixel centre from that feature
func (r *Raster) coverage(d, edge float64) float64 {
	unit := math.Min(r.unitW, r.unitH)
	return vmath.Clamp01((edge-d)/unit + 0.5)
}

// clipCoverage multiplies coverage of every active clip disc
func (r *Raster) clipCoverage(x, y float64) float64 {
	c := 1.0
	for _, cl := range r.state.clips {
		c *= r.coverage(vmath.Distance(x, y, cl.cx, cl.cy), cl.r)
		if c <= 0 {
			return 0
		}
	}
	return c
}

// bounds converts a surface-unit box into a clipped raster pixel range
func (r *Raster) bounds(x0, y0, x1, y1 float64) (px0, py0, px1, py1 int) {
	px0 = max(int(math.Floor(x0/r.unitW)), 0)
	py0 = max(int(math.Floor(y0/r.unitH)), 0)
	px1 = min(int(math.Ceil(x1/r.unitW)), r.pxW-1)
	py1 = min(int(math.Ceil(y1/r.unitH)), r.pxH-1)
	return
}

// plot blends a colour into one pixel scaled by coverage, global alpha and clip
func (r *Raster) plot(px, py int, c Color, cov float64) {
	if cov <= 0 || c.A <= 0 {
		return
	}
	x, y := r.center(px, py)
	a := c.A * cov * r.state.alpha * r.clipCoverage(x, y)
	if a <= 0 {
		return
	}
	idx := py*r.pxW + px
	r.pix[idx] = Blend(r.pix[idx], c.RGB, a)
}

// Line strokes a segment with distance-based antialiasing
// Widths below one pixel still paint a faint hairline
func (r *Raster) Line(x0, y0, x1, y1, width float64, c Color) {
	half := width / 2
	pad := half + math.Max(r.unitW, r.unitH)
	px0, py0, px1, py1 := r.bounds(math.Min(x0, x1)-pad, math.Min(y0, y1)-pad, math.Max(x0, x1)+pad, math.Max(y0, y1)+pad)

	dx, dy := x1-x0, y1-y0
	lenSq := dx*dx + dy*dy

	for py := py0; py <= py1; py++ {
		for px := px0; px <= px1; px++ {
			x, y := r.center(px, py)
			t := 0.0
			if lenSq > 0 {
				t = vmath.Clamp01(((x-x0)*dx + (y-y0)*dy) / lenSq)
			}
			d := vmath.Distance(x, y, x0+t*dx, y0+t*dy)
			r.plot(px, py, c, r.coverage(d, half))
		}
	}
}

// FillArc fills a sector of the disc
func (r *Raster) FillArc(cx, cy, radius, start, end float64, c Color) {
	if radius <= 0 {
		return
	}
	px0, py0, px1, py1 := r.bounds(cx-radius-r.unitW, cy-radius-r.unitH, cx+radius+r.unitW, cy+radius+r.unitH)

	for py := py0; py <= py1; py++ {
		for px := px0; px <= px1; px++ {
			x, y := r.center(px, py)
			if !vmath.AngleInSweep(math.Atan2(y-cy, x-cx), start, end) {
				continue
			}
			r.plot(px, py, c, r.coverage(vmath.Distance(x, y, cx, cy), radius))
		}
	}
}

// StrokeArc strokes the outline of a circle over the sweep
func (r *Raster) StrokeArc(cx, cy, radius, start, end, width float64, c Color) {
	if radius <= 0 {
		return
	}
	half := width / 2
	pad := half + math.Max(r.unitW, r.unitH)
	px0, py0, px1, py1 := r.bounds(cx-radius-pad, cy-radius-pad, cx+radius+pad, cy+radius+pad)

	for py := py0; py <= py1; py++ {
		for px := px0; px <= px1; px++ {
			x, y := r.center(px, py)
			if !vmath.AngleInSweep(math.Atan2(y-cy, x-cx), start, end) {
				continue
			}
			d := math.Abs(vmath.Distance(x, y, cx, cy) - radius)
			r.plot(px, py, c, r.coverage(d, half))
		}
	}
}

// DrawImage scales img into the target rectangle and composites it
func (r *Raster) DrawImage(img image.Image, x, y, w, h float64) {
	if img == nil || w <= 0 || h <= 0 {
		return
	}
	px0 := int(math.Floor(x / r.unitW))
	py0 := int(math.Floor(y / r.unitH))
	pw := max(int(math.Round(w/r.unitW)), 1)
	ph := max(int(math.Round(h/r.unitH)), 1)

	scaled := image.NewNRGBA(image.Rect(0, 0, pw, ph))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)

	for sy := 0; sy < ph; sy++ {
		for sx := 0; sx < pw; sx++ {
			px, py := px0+sx, py0+sy
			if !r.inBounds(px, py) {
				continue
			}
			n := scaled.NRGBAAt(sx, sy)
			if n.A == 0 {
				continue
			}
			r.plot(px, py, Color{RGB: RGB{n.R, n.G, n.B}, A: float64(n.A) / 255}, 1)
		}
	}
}

// Snapshot copies the framebuffer into an image for inspection
func (r *Raster) Snapshot() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, r.pxW, r.pxH))
	for py := 0; py < r.pxH; py++ {
		for px := 0; px < r.pxW; px++ {
			p := r.pix[py*r.pxW+px]
			out.SetRGBA(px, py, color.RGBA{p.R, p.G, p.B, 255})
		}
	}
	return out
}
