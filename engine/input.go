package engine

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/hearth/background"
	"github.com/lixenwraith/hearth/parameter"
)

// CellCenter maps a terminal cell to the surface point at its centre
func CellCenter(cx, cy int) (x, y float64) {
	x = float64(cx*parameter.CellWidthUnits) + parameter.CellWidthUnits/2
	y = float64(cy*parameter.CellHeightUnits) + parameter.CellHeightUnits/2
	return x, y
}

// pointerTracker turns terminal mouse and focus events into pointer events
// Button1 plays the role of a touch contact; plain motion is a pointer move
type pointerTracker struct {
	pressed bool
}

// translate returns the pointer event for ev, ok false when ev carries none
func (p *pointerTracker) translate(ev tcell.Event) (background.PointerEvent, bool) {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		cx, cy := ev.Position()
		x, y := CellCenter(cx, cy)
		down := ev.Buttons()&tcell.Button1 != 0

		switch {
		case down && !p.pressed:
			p.pressed = true
			return background.PointerEvent{Kind: background.TouchStart, X: x, Y: y}, true
		case down:
			return background.PointerEvent{Kind: background.TouchMove, X: x, Y: y}, true
		case p.pressed:
			p.pressed = false
			return background.PointerEvent{Kind: background.TouchEnd}, true
		default:
			return background.PointerEvent{Kind: background.PointerMove, X: x, Y: y}, true
		}

	case *tcell.EventFocus:
		if ev.Focused {
			return background.PointerEvent{}, false
		}
		p.pressed = false
		return background.PointerEvent{Kind: background.PointerLeave}, true
	}
	return background.PointerEvent{}, false
}
