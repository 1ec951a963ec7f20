package background

import (
	"math"

	"github.com/lixenwraith/hearth/parameter"
	"github.com/lixenwraith/hearth/render"
)

// MemberNode is a small figure owned by one FamilyNode, positioned relative to its centre
type MemberNode struct {
	OffsetX, OffsetY float64
	Radius           float64
	Color            render.Color
}

// newMember places a member at a random angle within MemberSpread of the parent radius
func newMember(parentRadius float64, rng Rand) MemberNode {
	angle := rng.Float64() * math.Pi * 2
	distance := rng.Float64() * (parentRadius * parameter.MemberSpread)

	return MemberNode{
		OffsetX: math.Cos(angle) * distance,
		OffsetY: math.Sin(angle) * distance,
		Radius:  parameter.MemberRadiusMin + rng.Float64()*parameter.MemberRadiusRange,
		Color:   render.White(parameter.MemberAlpha),
	}
}

// Draw renders the member around the parent centre at the parent's current scale
// Above FigureScale the member becomes a head over a pair of shoulders
func (m *MemberNode) Draw(s render.Surface, parentX, parentY, scale float64) {
	x := parentX + m.OffsetX*scale
	y := parentY + m.OffsetY*scale
	r := m.Radius * scale

	if scale > parameter.FigureScale {
		// Head
		s.FillArc(x, y-r, r*0.8, 0, math.Pi*2, m.Color)
		// Shoulders: upper half-disc
		s.FillArc(x, y+r*0.8, r*1.2, math.Pi, 0, m.Color)
		return
	}

	s.FillArc(x, y, r, 0, math.Pi*2, m.Color)
}
