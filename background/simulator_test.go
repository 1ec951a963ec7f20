package background

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/hearth/parameter"
	"github.com/lixenwraith/hearth/render"
)

// stillNode builds a motionless node with a single member
func stillNode(x, y float64) *FamilyNode {
	return &FamilyNode{
		X:            x,
		Y:            y,
		BaseRadius:   20,
		CurrentScale: 1,
		TargetScale:  1,
		Color:        render.White(parameter.NodeFillAlpha),
		BorderColor:  render.White(parameter.NodeBorderAlpha),
		Members:      []MemberNode{{OffsetX: 1, OffsetY: 1, Radius: 3, Color: render.White(parameter.MemberAlpha)}},
		boundW:       1000,
		boundH:       1000,
	}
}

func newTestSimulator(nodes ...*FamilyNode) (*Simulator, *recorder) {
	rec := newRecorder(1000, 1000)
	sim := &Simulator{
		surface: rec,
		width:   1000,
		height:  1000,
		nodes:   nodes,
		pointer: NewPointerState(),
	}
	return sim, rec
}

func TestTargetScaleFor(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		want     float64
	}{
		{"On centre", 0, 2.5},
		{"Just inside", 199.999, 2.5},
		{"Exactly threshold is exclusive", 200, 1},
		{"Just outside", 200.001, 1},
		{"Sentinel distance", 1500, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TargetScaleFor(tt.distance); got != tt.want {
				t.Errorf("TargetScaleFor(%f) = %f, want %f", tt.distance, got, tt.want)
			}
		})
	}
}

func TestScaleConvergesWithoutOvershoot(t *testing.T) {
	n := stillNode(500, 500)
	p := &PointerState{X: 510, Y: 500}

	prev := n.CurrentScale
	for i := 0; i < 200; i++ {
		n.Update(p)
		if n.CurrentScale < prev {
			t.Fatalf("frame %d: scale decreased while hovering: %f -> %f", i, prev, n.CurrentScale)
		}
		if n.CurrentScale > parameter.HoverScale {
			t.Fatalf("frame %d: scale overshot: %f", i, n.CurrentScale)
		}
		prev = n.CurrentScale
	}
	if math.Abs(n.CurrentScale-parameter.HoverScale) > 1e-6 {
		t.Errorf("Expected convergence near 2.5, got %f", n.CurrentScale)
	}

	p.Reset()
	for i := 0; i < 200; i++ {
		n.Update(p)
		if n.CurrentScale > prev {
			t.Fatalf("frame %d: scale increased after leave: %f -> %f", i, prev, n.CurrentScale)
		}
		if n.CurrentScale < parameter.RestScale {
			t.Fatalf("frame %d: scale undershot: %f", i, n.CurrentScale)
		}
		prev = n.CurrentScale
	}
}

func TestScaleFirstStep(t *testing.T) {
	n := stillNode(500, 500)
	n.Update(&PointerState{X: 500, Y: 500})
	if math.Abs(n.CurrentScale-1.15) > 1e-12 {
		t.Errorf("Expected 1 + (2.5-1)*0.1 = 1.15, got %f", n.CurrentScale)
	}
}

func TestConnectionOpacity(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		want     float64
		ok       bool
	}{
		{"Coincident", 0, 0.4, true},
		{"Halfway", 95, 0.2, true},
		{"Near threshold", 189, (1 - 189.0/190.0) * 0.4, true},
		{"At threshold", 190, 0, false},
		{"Beyond", 250, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ConnectionOpacity(tt.distance)
			if ok != tt.ok {
				t.Fatalf("ConnectionOpacity(%f) ok = %v, want %v", tt.distance, ok, tt.ok)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("ConnectionOpacity(%f) = %f, want %f", tt.distance, got, tt.want)
			}
			if got < 0 || got > 0.4 {
				t.Errorf("opacity %f outside [0, 0.4]", got)
			}
		})
	}
}

func TestStepDrawsConnectionsIffClose(t *testing.T) {
	tests := []struct {
		name  string
		gap   float64
		lines int
	}{
		{"Inside range", 189, 1},
		{"At range", 190, 0},
		{"Far apart", 400, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim, rec := newTestSimulator(stillNode(100, 100), stillNode(100+tt.gap, 100))
			sim.Step()

			if got := rec.count("line"); got != tt.lines {
				t.Errorf("Expected %d lines, got %d", tt.lines, got)
			}
			if sim.Stats().Connections != tt.lines {
				t.Errorf("Expected stats to report %d connections, got %d", tt.lines, sim.Stats().Connections)
			}
			for _, l := range rec.find("line") {
				want := (1 - tt.gap/190) * 0.4
				if math.Abs(l.color.A-want) > 1e-12 {
					t.Errorf("Expected line opacity %f, got %f", want, l.color.A)
				}
				if l.args[4] != parameter.ConnectionWidth {
					t.Errorf("Expected line width %f, got %f", parameter.ConnectionWidth, l.args[4])
				}
			}
		})
	}
}

func TestStepConnectionsCoverAllPairs(t *testing.T) {
	// Three nodes within range of each other: 3 unordered pairs
	sim, rec := newTestSimulator(stillNode(100, 100), stillNode(150, 100), stillNode(100, 150))
	sim.Step()
	if got := rec.count("line"); got != 3 {
		t.Errorf("Expected 3 connections for 3 mutually close nodes, got %d", got)
	}
}

func TestStepOrder(t *testing.T) {
	sim, rec := newTestSimulator(stillNode(100, 100), stillNode(150, 100))
	sim.Step()

	if len(rec.ops) == 0 || rec.ops[0].name != "clear" {
		t.Fatal("Expected frame to start with clear")
	}
	lastLine, firstFill := -1, -1
	for i, o := range rec.ops {
		if o.name == "line" {
			lastLine = i
		}
		if o.name == "fill" && firstFill < 0 {
			firstFill = i
		}
	}
	if lastLine > firstFill {
		t.Errorf("Expected connections drawn before nodes (last line %d, first fill %d)", lastLine, firstFill)
	}
}

func TestReflectionFlipsOnceWithoutClamping(t *testing.T) {
	n := stillNode(0.1, 50)
	n.VX = -0.2
	n.boundW, n.boundH = 100, 100
	p := NewPointerState()

	n.Update(p)
	if n.X >= 0 {
		t.Fatalf("Expected position past the boundary, got %f", n.X)
	}
	if math.Abs(n.X-(-0.1)) > 1e-12 {
		t.Errorf("Expected unclamped position -0.1, got %f", n.X)
	}
	if n.VX != 0.2 {
		t.Errorf("Expected velocity flipped to 0.2, got %f", n.VX)
	}

	n.Update(p)
	if n.VX != 0.2 {
		t.Errorf("Expected single flip per crossing, velocity now %f", n.VX)
	}
	if n.X < 0 {
		t.Errorf("Expected node back inside, got %f", n.X)
	}
}

func TestReflectionFarEdge(t *testing.T) {
	n := stillNode(50, 99.95)
	n.VY = 0.1
	n.boundW, n.boundH = 100, 100

	n.Update(NewPointerState())
	if n.Y <= 100 || n.VY != -0.1 {
		t.Errorf("Expected y past bottom edge with flipped velocity, got y=%f vy=%f", n.Y, n.VY)
	}
}

func TestNodeCount(t *testing.T) {
	tests := []struct {
		w, h float64
		want int
	}{
		{640, 384, 20},
		{1920, 1080, 172},
		{100, 100, 0},
		{120, 100, 1},
		{0, 500, 0},
	}

	for _, tt := range tests {
		if got := NodeCount(tt.w, tt.h); got != tt.want {
			t.Errorf("NodeCount(%.0f, %.0f) = %d, want %d", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestNewSeedsPopulation(t *testing.T) {
	rec := newRecorder(1280, 720)
	sim := New(rec, nil, rand.New(rand.NewSource(42)))

	nodes := sim.Nodes()
	if len(nodes) != NodeCount(1280, 720) {
		t.Fatalf("Expected %d nodes, got %d", NodeCount(1280, 720), len(nodes))
	}

	for i, n := range nodes {
		if n.X < 0 || n.X > 1280 || n.Y < 0 || n.Y > 720 {
			t.Errorf("node %d seeded outside surface: (%f, %f)", i, n.X, n.Y)
		}
		if math.Abs(n.VX) > 0.25 || math.Abs(n.VY) > 0.25 {
			t.Errorf("node %d velocity too fast: (%f, %f)", i, n.VX, n.VY)
		}
		if n.BaseRadius < 15 || n.BaseRadius >= 25 {
			t.Errorf("node %d base radius %f outside [15, 25)", i, n.BaseRadius)
		}
		if n.CurrentScale != 1 || n.TargetScale != 1 {
			t.Errorf("node %d should start at rest scale", i)
		}
		if len(n.Members) < 2 || len(n.Members) > 5 {
			t.Errorf("node %d has %d members, want 2-5", i, len(n.Members))
		}
		for j, m := range n.Members {
			if d := math.Hypot(m.OffsetX, m.OffsetY); d > 0.6*n.BaseRadius+1e-9 {
				t.Errorf("node %d member %d at %f exceeds 0.6 × base radius %f", i, j, d, n.BaseRadius)
			}
			if m.Radius < 2 || m.Radius >= 5 {
				t.Errorf("node %d member %d radius %f outside [2, 5)", i, j, m.Radius)
			}
		}
	}
}

func TestMemberCountBounds(t *testing.T) {
	tests := []struct {
		name string
		roll float64
		want int
	}{
		{"Lowest roll", 0, 2},
		{"Highest roll", 0.9999, 5},
		{"Middle roll", 0.5, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewFamilyNode(100, 100, &seqRand{vals: []float64{tt.roll}})
			if len(n.Members) != tt.want {
				t.Errorf("Expected %d members for roll %f, got %d", tt.want, tt.roll, len(n.Members))
			}
		})
	}
}

func TestPointerEvents(t *testing.T) {
	p := NewPointerState()
	if p.Present() {
		t.Fatal("New pointer state should be absent")
	}

	steps := []struct {
		ev      PointerEvent
		x, y    float64
		present bool
	}{
		{PointerEvent{Kind: PointerMove, X: 10, Y: 20}, 10, 20, true},
		{PointerEvent{Kind: PointerLeave}, -1000, -1000, false},
		{PointerEvent{Kind: TouchStart, X: 5, Y: 6}, 5, 6, true},
		{PointerEvent{Kind: TouchMove, X: 7, Y: 8}, 7, 8, true},
		{PointerEvent{Kind: TouchEnd}, -1000, -1000, false},
	}

	for _, s := range steps {
		p.Apply(s.ev)
		if p.X != s.x || p.Y != s.y || p.Present() != s.present {
			t.Errorf("after %s: got (%f, %f, present=%v), want (%f, %f, present=%v)",
				s.ev.Kind, p.X, p.Y, p.Present(), s.x, s.y, s.present)
		}
	}
}

func TestPointerLeaveDisablesHover(t *testing.T) {
	sim, _ := newTestSimulator(stillNode(100, 100))
	sim.HandlePointer(PointerEvent{Kind: PointerMove, X: 100, Y: 100})
	sim.Step()
	if sim.Nodes()[0].TargetScale != parameter.HoverScale {
		t.Fatal("Expected hover target while pointer is on the node")
	}

	sim.HandlePointer(PointerEvent{Kind: PointerLeave})
	sim.Step()
	if sim.Nodes()[0].TargetScale != parameter.RestScale {
		t.Error("Expected rest target after pointer leave")
	}
}

func TestResizeKeepsPopulation(t *testing.T) {
	rec := newRecorder(600, 400)
	sim := New(rec, nil, rand.New(rand.NewSource(7)))
	before := append([]*FamilyNode(nil), sim.Nodes()...)

	sim.Resize(1200, 800)

	after := sim.Nodes()
	if len(after) != len(before) {
		t.Fatalf("Resize changed population: %d -> %d", len(before), len(after))
	}
	for i := range after {
		if after[i] != before[i] {
			t.Errorf("node %d replaced on resize", i)
		}
		if w, h := after[i].Bounds(); w != 600 || h != 400 {
			t.Errorf("node %d bounds changed to %fx%f", i, w, h)
		}
	}
	if w, h := sim.Size(); w != 1200 || h != 800 {
		t.Errorf("Expected recorded size 1200x800, got %fx%f", w, h)
	}

	sim.Reseed()
	if len(sim.Nodes()) != NodeCount(1200, 800) {
		t.Errorf("Reseed should use the resized dimensions, got %d nodes", len(sim.Nodes()))
	}
}

func TestLogoDrawnWhenEnlargedAndComplete(t *testing.T) {
	logo := render.NewLoadedImage(image.NewRGBA(image.Rect(0, 0, 8, 8)))

	n := stillNode(300, 300)
	n.CurrentScale = 2.0
	sim, rec := newTestSimulator(n)
	sim.logo = logo
	sim.HandlePointer(PointerEvent{Kind: PointerMove, X: 300, Y: 300})
	sim.Step()

	imgs := rec.find("image")
	if len(imgs) != 1 {
		t.Fatalf("Expected one logo draw, got %d", len(imgs))
	}
	r := n.Radius()
	size := r * 0.8
	if math.Abs(imgs[0].args[2]-size) > 1e-9 {
		t.Errorf("Expected logo size %f, got %f", size, imgs[0].args[2])
	}
	clips := rec.find("clip")
	if len(clips) != 1 || math.Abs(clips[0].args[2]-r*0.9) > 1e-9 {
		t.Errorf("Expected clip radius %f, got %v", r*0.9, clips)
	}
	alphas := rec.find("alpha")
	if len(alphas) != 1 || alphas[0].args[0] != 0.7 {
		t.Errorf("Expected logo alpha 0.7, got %v", alphas)
	}
	if rec.count("save") != 1 || rec.count("restore") != 1 {
		t.Error("Expected logo draw wrapped in save/restore")
	}
}

func TestLogoSkippedWhenIncompleteOrSmall(t *testing.T) {
	t.Run("Incomplete image", func(t *testing.T) {
		n := stillNode(300, 300)
		n.CurrentScale = 2.0
		sim, rec := newTestSimulator(n)
		sim.logo = render.NewImage("images/missing.png")
		sim.HandlePointer(PointerEvent{Kind: PointerMove, X: 300, Y: 300})
		sim.Step()
		if rec.count("image") != 0 {
			t.Error("Logo must not draw before loading completes")
		}
	})

	t.Run("Rest scale", func(t *testing.T) {
		sim, rec := newTestSimulator(stillNode(300, 300))
		sim.logo = render.NewLoadedImage(image.NewRGBA(image.Rect(0, 0, 8, 8)))
		sim.Step()
		if rec.count("image") != 0 {
			t.Error("Logo must not draw at rest scale")
		}
	})
}

func TestMemberDrawModes(t *testing.T) {
	m := MemberNode{OffsetX: 2, OffsetY: -3, Radius: 4, Color: render.White(0.8)}

	rec := newRecorder(100, 100)
	m.Draw(rec, 50, 50, 1)
	fills := rec.find("fill")
	if len(fills) != 1 {
		t.Fatalf("Expected one circle at rest scale, got %d fills", len(fills))
	}
	if fills[0].args[0] != 52 || fills[0].args[1] != 47 || fills[0].args[2] != 4 {
		t.Errorf("Unexpected circle geometry %v", fills[0].args)
	}

	rec.reset()
	m.Draw(rec, 50, 50, 2)
	fills = rec.find("fill")
	if len(fills) != 2 {
		t.Fatalf("Expected head and shoulders when enlarged, got %d fills", len(fills))
	}
	// Scaled centre (54, 44), r = 8
	head, shoulders := fills[0], fills[1]
	if head.args[1] != 36 || head.args[2] != 6.4 {
		t.Errorf("Unexpected head geometry %v", head.args)
	}
	if shoulders.args[1] != 44+6.4 || shoulders.args[2] != 9.6 || shoulders.args[3] != math.Pi || shoulders.args[4] != 0 {
		t.Errorf("Unexpected shoulder geometry %v", shoulders.args)
	}
}

func TestRunStepsUntilCancelled(t *testing.T) {
	sim, _ := newTestSimulator(stillNode(100, 100))
	ticks := make(chan time.Time)
	events := make(chan PointerEvent)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- sim.Run(ctx, ticks, events) }()

	events <- PointerEvent{Kind: PointerMove, X: 100, Y: 100}
	ticks <- time.Now()
	ticks <- time.Now()
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if sim.Stats().Frame != 2 {
		t.Errorf("Expected 2 frames, got %d", sim.Stats().Frame)
	}
	if sim.Stats().Hovered != 1 {
		t.Errorf("Expected the node hovered, got %d", sim.Stats().Hovered)
	}
}

func TestRunEndsWhenTicksClose(t *testing.T) {
	sim, _ := newTestSimulator()
	ticks := make(chan time.Time)
	close(ticks)
	if err := sim.Run(context.Background(), ticks, nil); err != nil {
		t.Errorf("Expected nil error on closed ticks, got %v", err)
	}
}

func TestRunHooksWrapEachStep(t *testing.T) {
	sim, rec := newTestSimulator(stillNode(100, 100))
	var calls []string
	sim.SetHooks(Hooks{
		BeforeStep: func() error {
			calls = append(calls, "before")
			return nil
		},
		AfterStep: func() {
			calls = append(calls, fmt.Sprintf("after:%d", rec.count("clear")))
		},
	})

	ticks := make(chan time.Time, 2)
	ticks <- time.Now()
	ticks <- time.Now()
	close(ticks)

	if err := sim.Run(context.Background(), ticks, nil); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	want := "before,after:1,before,after:2"
	if got := strings.Join(calls, ","); got != want {
		t.Errorf("Hook order:\n got %s\nwant %s", got, want)
	}
}

func TestRunStopsOnBeforeStepError(t *testing.T) {
	sim, _ := newTestSimulator(stillNode(100, 100))
	stop := errors.New("quit")
	sim.SetHooks(Hooks{BeforeStep: func() error { return stop }})

	ticks := make(chan time.Time, 1)
	ticks <- time.Now()

	if err := sim.Run(context.Background(), ticks, nil); !errors.Is(err, stop) {
		t.Errorf("Expected hook error, got %v", err)
	}
	if sim.Stats().Frame != 0 {
		t.Errorf("Expected no frame after a failing hook, got %d", sim.Stats().Frame)
	}
}
