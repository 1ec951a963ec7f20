package engine

import (
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/hearth/contact"
	"github.com/lixenwraith/hearth/render"
)

// Overlay palette
var (
	panelBg      = render.RGB{R: 36, G: 40, B: 59}
	inputBg      = render.RGB{R: 22, G: 22, B: 30}
	focusBg      = render.RGB{R: 65, G: 72, B: 104}
	textFg       = render.RGB{R: 192, G: 202, B: 245}
	dimFg        = render.RGB{R: 86, G: 95, B: 137}
	successFg    = render.RGB{R: 158, G: 206, B: 106}
	errorFg      = render.RGB{R: 247, G: 118, B: 142}
	statusBg     = render.RGB{R: 16, G: 16, B: 22}
	disabledFg   = render.RGB{R: 120, G: 124, B: 150}
	buttonBg     = render.RGB{R: 122, G: 162, B: 247}
	buttonTextFg = render.RGB{R: 26, G: 27, B: 38}
)

const (
	panelMaxWidth   = 48
	messageRows     = 3
	formTitle       = "Contact"
	cursorGlyph     = "▏"
	panelPaddingCol = 2
)

func style(fg, bg render.RGB) tcell.Style {
	return tcell.StyleDefault.Foreground(fg.Tcell()).Background(bg.Tcell())
}

// drawText writes s from (x, y) and stops before exceeding maxW columns
// Returns the columns used
func drawText(screen tcell.Screen, x, y, maxW int, s string, st tcell.Style) int {
	used := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if used+w > maxW {
			break
		}
		screen.SetContent(x+used, y, r, nil, st)
		used += w
	}
	return used
}

// fill paints a run of blank cells
func fill(screen tcell.Screen, x, y, w int, st tcell.Style) {
	for i := 0; i < w; i++ {
		screen.SetContent(x+i, y, ' ', nil, st)
	}
}

// tail keeps the rightmost part of s that fits in width columns
func tail(s string, width int) string {
	if width <= 0 {
		return ""
	}
	for runewidth.StringWidth(s) > width {
		_, size := utf8.DecodeRuneInString(s)
		s = s[size:]
	}
	return s
}

// panelHeight is the number of rows the form needs
func panelHeight(snap contact.Snapshot) int {
	h := 2 // title, spacer
	for _, f := range snap.Fields {
		h++ // label
		if f.Multiline {
			h += messageRows
		} else {
			h++
		}
	}
	h += 2 // spacer, button
	h += 2 // spacer, banner
	return h
}

// drawForm renders the contact panel centred on the screen
func drawForm(screen tcell.Screen, snap contact.Snapshot, cols, rows int) {
	w := min(panelMaxWidth, cols-2)
	if w < 12 {
		return
	}
	h := min(panelHeight(snap), rows)
	x0 := (cols - w) / 2
	y0 := max(0, (rows-h)/2)
	inner := w - 2*panelPaddingCol
	ix := x0 + panelPaddingCol

	base := style(textFg, panelBg)
	for y := y0; y < y0+h; y++ {
		fill(screen, x0, y, w, base)
	}

	y := y0
	drawText(screen, ix, y, inner, formTitle, base.Bold(true))
	y += 2

	for i, f := range snap.Fields {
		focused := snap.Focus == i
		labelStyle := style(dimFg, panelBg)
		if focused {
			labelStyle = style(textFg, panelBg)
		}
		drawText(screen, ix, y, inner, f.Label, labelStyle)
		y++

		bg := inputBg
		if focused {
			bg = focusBg
		}
		fieldStyle := style(textFg, bg)
		height := 1
		lines := []string{f.Value}
		if f.Multiline {
			height = messageRows
			lines = lastLines(f.Value, messageRows)
		}
		for row := 0; row < height; row++ {
			fill(screen, ix, y+row, inner, fieldStyle)
		}
		for li, line := range lines {
			text := tail(line, inner)
			if focused && li == len(lines)-1 && !snap.Button.Disabled {
				text = tail(line, inner-1) + cursorGlyph
			}
			drawText(screen, ix, y+li, inner, text, fieldStyle)
		}
		y += height
	}
	y++

	drawButton(screen, ix, y, inner, snap)
	y += 2

	if snap.Banner.Visible {
		fg := successFg
		if snap.Banner.Kind == contact.BannerError {
			fg = errorFg
		}
		drawText(screen, ix, y, inner, snap.Banner.Text, style(fg, panelBg))
	}
}

func drawButton(screen tcell.Screen, x, y, maxW int, snap contact.Snapshot) {
	label := "[ " + snap.Button.Content + " ]"
	st := style(buttonTextFg, buttonBg)
	switch {
	case snap.Button.Disabled:
		st = style(disabledFg, inputBg)
	case snap.Focus == len(snap.Fields):
		st = st.Bold(true).Reverse(true)
	}
	drawText(screen, x, y, maxW, runewidth.Truncate(label, maxW, "…"), st)
}

// lastLines returns at most n lines ending with the last line of s
func lastLines(s string, n int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}

// drawStatus writes the metrics line on the bottom row
func drawStatus(screen tcell.Screen, line string, cols, rows int) {
	if rows == 0 {
		return
	}
	st := style(dimFg, statusBg)
	y := rows - 1
	fill(screen, 0, y, cols, st)
	drawText(screen, 1, y, cols-2, line, st)
}
