// Package background simulates the "network of family nodes" drawn behind page content.
//
// A Simulator owns a fixed population of FamilyNodes seeded from the surface area, each
// carrying 2-5 MemberNodes. Every Step clears the surface, links nearby nodes, then moves,
// scales and draws each node. The pointer position drives a hover enlargement.
//
// All methods must be called from a single goroutine; the host loop serialises input events
// and frames.
package background

import (
	"context"
	"math"
	"time"

	"github.com/lixenwraith/hearth/parameter"
	"github.com/lixenwraith/hearth/render"
	"github.com/lixenwraith/hearth/vmath"
)

// Rand is the random source used for seeding; *rand.Rand satisfies it
type Rand interface {
	Float64() float64
}

// Stats describes the most recent frame
type Stats struct {
	Frame       uint64
	Nodes       int
	Connections int
	Hovered     int
}

// Simulator owns the node population, the pointer and the decorative image
type Simulator struct {
	surface render.Surface
	logo    *render.Image
	rng     Rand

	width, height float64
	nodes         []*FamilyNode
	pointer       *PointerState

	stats Stats
	hooks Hooks
}

// New creates a simulator sized from the surface and seeds its population
// logo may be nil or incomplete; the logo draw is skipped until it completes
func New(surface render.Surface, logo *render.Image, rng Rand) *Simulator {
	w, h := surface.Size()
	s := &Simulator{
		surface: surface,
		logo:    logo,
		rng:     rng,
		width:   w,
		height:  h,
		pointer: NewPointerState(),
	}
	s.Reseed()
	return s
}

// NodeCount returns the population for a surface: one node per AreaPerNode square units
func NodeCount(width, height float64) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	return int(math.Floor(width * height / parameter.AreaPerNode))
}

// Reseed discards the population and seeds a new one for the current dimensions
func (s *Simulator) Reseed() {
	count := NodeCount(s.width, s.height)
	s.nodes = make([]*FamilyNode, 0, count)
	for i := 0; i < count; i++ {
		s.nodes = append(s.nodes, NewFamilyNode(s.width, s.height, s.rng))
	}
	s.stats.Nodes = count
}

// Resize records new surface dimensions without touching the population
// Existing nodes keep reflecting on the bounds they were created with
func (s *Simulator) Resize(width, height float64) {
	s.width = width
	s.height = height
}

// Size returns the dimensions last recorded
func (s *Simulator) Size() (float64, float64) {
	return s.width, s.height
}

// Nodes exposes the population
func (s *Simulator) Nodes() []*FamilyNode {
	return s.nodes
}

// Pointer exposes the pointer state
func (s *Simulator) Pointer() *PointerState {
	return s.pointer
}

// HandlePointer applies an input event to the pointer state
func (s *Simulator) HandlePointer(ev PointerEvent) {
	s.pointer.Apply(ev)
}

// Stats returns counters from the last Step
func (s *Simulator) Stats() Stats {
	return s.stats
}

// ConnectionOpacity returns the link opacity for two nodes at distance d
// ok is false at or beyond ConnectionDistance
func ConnectionOpacity(d float64) (opacity float64, ok bool) {
	if d >= parameter.ConnectionDistance {
		return 0, false
	}
	opacity = (1 - d/parameter.ConnectionDistance) * parameter.ConnectionAlpha
	return vmath.Clamp(opacity, 0, parameter.ConnectionAlpha), true
}

// Step runs one frame: clear, connections, then update and draw every node
// Connections use positions from before this frame's movement
func (s *Simulator) Step() {
	s.surface.Clear()

	s.stats.Frame++
	s.stats.Nodes = len(s.nodes)
	s.stats.Connections = s.drawConnections()
	s.stats.Hovered = 0

	for _, n := range s.nodes {
		n.Update(s.pointer)
		n.Draw(s.surface, s.logo)
		if n.TargetScale == parameter.HoverScale {
			s.stats.Hovered++
		}
	}
}

// drawConnections links every unordered pair closer than ConnectionDistance
// O(n²); population density keeps n small
func (s *Simulator) drawConnections() int {
	links := 0
	for i := 0; i < len(s.nodes); i++ {
		a := s.nodes[i]
		for j := i + 1; j < len(s.nodes); j++ {
			b := s.nodes[j]
			opacity, ok := ConnectionOpacity(vmath.Distance(a.X, a.Y, b.X, b.Y))
			if !ok {
				continue
			}
			s.surface.Line(a.X, a.Y, b.X, b.Y, parameter.ConnectionWidth, render.White(opacity))
			links++
		}
	}
	return links
}

// Hooks run on the loop goroutine around every Step taken by Run
type Hooks struct {
	// BeforeStep applies work queued since the last frame; an error ends Run with it
	BeforeStep func() error
	// AfterStep consumes the finished frame
	AfterStep func()
}

// SetHooks installs the per-frame hooks used by Run
func (s *Simulator) SetHooks(h Hooks) {
	s.hooks = h
}

// Run steps once per tick and applies pointer events between frames until ctx ends
// A nil or closed events channel is ignored; a closed ticks channel ends the loop
func (s *Simulator) Run(ctx context.Context, ticks <-chan time.Time, events <-chan PointerEvent) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			s.HandlePointer(ev)
		case _, ok := <-ticks:
			if !ok {
				return nil
			}
			if s.hooks.BeforeStep != nil {
				if err := s.hooks.BeforeStep(); err != nil {
					return err
				}
			}
			s.Step()
			if s.hooks.AfterStep != nil {
				s.hooks.AfterStep()
			}
		}
	}
}
