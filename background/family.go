package background

import (
	"math"

	"github.com/lixenwraith/hearth/parameter"
	"github.com/lixenwraith/hearth/render"
	"github.com/lixenwraith/hearth/vmath"
)

// FamilyNode is a drifting cluster that enlarges when the pointer comes near
type FamilyNode struct {
	X, Y   float64
	VX, VY float64

	BaseRadius   float64
	CurrentScale float64
	TargetScale  float64

	Color       render.Color
	BorderColor render.Color

	Members []MemberNode

	// Reflection bounds, fixed at construction
	boundW, boundH float64
}

// NewFamilyNode seeds a node at a uniform random position inside width×height
func NewFamilyNode(width, height float64, rng Rand) *FamilyNode {
	n := &FamilyNode{
		X:            rng.Float64() * width,
		Y:            rng.Float64() * height,
		VX:           (rng.Float64() - 0.5) * parameter.VelocitySpread,
		VY:           (rng.Float64() - 0.5) * parameter.VelocitySpread,
		BaseRadius:   parameter.BaseRadiusMin + rng.Float64()*parameter.BaseRadiusRange,
		CurrentScale: parameter.RestScale,
		TargetScale:  parameter.RestScale,
		Color:        render.White(parameter.NodeFillAlpha),
		BorderColor:  render.White(parameter.NodeBorderAlpha),
		boundW:       width,
		boundH:       height,
	}

	count := parameter.MembersMin + int(math.Floor(rng.Float64()*(parameter.MembersMax-parameter.MembersMin+1)))
	n.Members = make([]MemberNode, 0, count)
	for i := 0; i < count; i++ {
		n.Members = append(n.Members, newMember(n.BaseRadius, rng))
	}
	return n
}

// Bounds returns the reflection bounds captured at construction
func (n *FamilyNode) Bounds() (width, height float64) {
	return n.boundW, n.boundH
}

// Radius is the drawn radius at the current scale
func (n *FamilyNode) Radius() float64 {
	return n.BaseRadius * n.CurrentScale
}

// TargetScaleFor maps pointer distance to the hover target; the threshold is exclusive
func TargetScaleFor(distance float64) float64 {
	if distance < parameter.HoverDistance {
		return parameter.HoverScale
	}
	return parameter.RestScale
}

// Update advances one frame: move, reflect, and ease scale toward the hover target
func (n *FamilyNode) Update(pointer *PointerState) {
	n.X += n.VX
	n.Y += n.VY

	// Reflect velocity, position is left as is
	if n.X < 0 || n.X > n.boundW {
		n.VX = -n.VX
	}
	if n.Y < 0 || n.Y > n.boundH {
		n.VY = -n.VY
	}

	distance := vmath.Distance(pointer.X, pointer.Y, n.X, n.Y)
	n.TargetScale = TargetScaleFor(distance)
	n.CurrentScale = vmath.Approach(n.CurrentScale, n.TargetScale, parameter.ScaleEasing)
}

// Draw renders body, optional logo, then members
func (n *FamilyNode) Draw(s render.Surface, logo *render.Image) {
	r := n.Radius()

	s.FillArc(n.X, n.Y, r, 0, math.Pi*2, n.Color)
	s.StrokeArc(n.X, n.Y, r, 0, math.Pi*2, parameter.NodeBorderWidth, n.BorderColor)

	if n.CurrentScale > parameter.FigureScale && logo.Complete() {
		size := r * parameter.LogoSizeFactor
		s.Save()
		s.SetAlpha(parameter.LogoAlpha)
		s.ClipCircle(n.X, n.Y, r*parameter.LogoClipFactor)
		s.DrawImage(logo.Source(), n.X-size/2, n.Y-size/2, size, size)
		s.Restore()
	}

	for i := range n.Members {
		n.Members[i].Draw(s, n.X, n.Y, n.CurrentScale)
	}
}
