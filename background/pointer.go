package background

import "github.com/lixenwraith/hearth/parameter"

// PointerKind identifies an input device event
type PointerKind uint8

const (
	PointerMove PointerKind = iota
	PointerLeave
	TouchStart
	TouchMove
	TouchEnd
)

var pointerKindNames = [...]string{
	PointerMove:  "pointer-move",
	PointerLeave: "pointer-leave",
	TouchStart:   "touch-start",
	TouchMove:    "touch-move",
	TouchEnd:     "touch-end",
}

func (k PointerKind) String() string {
	if int(k) < len(pointerKindNames) {
		return pointerKindNames[k]
	}
	return "unknown"
}

// PointerEvent carries a surface-relative coordinate; X and Y are ignored for leave/end
type PointerEvent struct {
	Kind PointerKind
	X, Y float64
}

// PointerState is the last known interaction coordinate
// Absent pointers sit at a far off-surface sentinel so no node is within hover range
type PointerState struct {
	X, Y float64
}

// NewPointerState returns a state at the sentinel
func NewPointerState() *PointerState {
	p := &PointerState{}
	p.Reset()
	return p
}

// Reset moves the pointer to the sentinel
func (p *PointerState) Reset() {
	p.X = parameter.PointerSentinel
	p.Y = parameter.PointerSentinel
}

// Present reports whether the pointer holds a real coordinate
func (p *PointerState) Present() bool {
	return p.X != parameter.PointerSentinel || p.Y != parameter.PointerSentinel
}

// Apply updates the state from an input event
func (p *PointerState) Apply(ev PointerEvent) {
	switch ev.Kind {
	case PointerMove, TouchStart, TouchMove:
		p.X = ev.X
		p.Y = ev.Y
	case PointerLeave, TouchEnd:
		p.Reset()
	}
}
