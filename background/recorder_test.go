package background

import (
	"image"

	"github.com/lixenwraith/hearth/render"
)

// op is one recorded Surface call
type op struct {
	name   string
	args   []float64
	color  render.Color
	hasImg bool
}

// recorder is a Surface that records calls instead of drawing
type recorder struct {
	w, h float64
	ops  []op
}

func newRecorder(w, h float64) *recorder {
	return &recorder{w: w, h: h}
}

func (r *recorder) Size() (float64, float64) { return r.w, r.h }
func (r *recorder) Clear()                   { r.ops = append(r.ops, op{name: "clear"}) }
func (r *recorder) Save()                    { r.ops = append(r.ops, op{name: "save"}) }
func (r *recorder) Restore()                 { r.ops = append(r.ops, op{name: "restore"}) }

func (r *recorder) SetAlpha(a float64) {
	r.ops = append(r.ops, op{name: "alpha", args: []float64{a}})
}

func (r *recorder) ClipCircle(cx, cy, radius float64) {
	r.ops = append(r.ops, op{name: "clip", args: []float64{cx, cy, radius}})
}

func (r *recorder) Line(x0, y0, x1, y1, width float64, c render.Color) {
	r.ops = append(r.ops, op{name: "line", args: []float64{x0, y0, x1, y1, width}, color: c})
}

func (r *recorder) FillArc(cx, cy, radius, start, end float64, c render.Color) {
	r.ops = append(r.ops, op{name: "fill", args: []float64{cx, cy, radius, start, end}, color: c})
}

func (r *recorder) StrokeArc(cx, cy, radius, start, end, width float64, c render.Color) {
	r.ops = append(r.ops, op{name: "stroke", args: []float64{cx, cy, radius, start, end, width}, color: c})
}

func (r *recorder) DrawImage(img image.Image, x, y, w, h float64) {
	r.ops = append(r.ops, op{name: "image", args: []float64{x, y, w, h}, hasImg: img != nil})
}

func (r *recorder) reset() { r.ops = r.ops[:0] }

func (r *recorder) count(name string) int {
	n := 0
	for _, o := range r.ops {
		if o.name == name {
			n++
		}
	}
	return n
}

func (r *recorder) find(name string) []op {
	var out []op
	for _, o := range r.ops {
		if o.name == name {
			out = append(out, o)
		}
	}
	return out
}

// seqRand replays a fixed sequence of values, cycling when exhausted
type seqRand struct {
	vals []float64
	i    int
}

func (s *seqRand) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}
