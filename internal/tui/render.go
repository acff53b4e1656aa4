package tui

import (
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"rastertrace/internal/emit"
	"rastertrace/internal/geom"
)

// canvasSpan is the extent of the canvas the commands were scaled to.
func (m Model) canvasSpan() float64 {
	if m.meta.Span > 0 {
		return m.meta.Span
	}
	return geom.DefaultTargetSpan
}

// microScale is the number of micro-pixels per canvas unit. Braille dots are
// close to square, so one scale serves both axes.
func (m Model) microScale(w, h int) float64 {
	side := min(w*2, h*4) - 1
	if side < 1 {
		side = 1
	}
	return float64(side) / m.canvasSpan() * m.zoom
}

// screenXYMicro maps canvas coordinates (origin centre, y up) into the 2x4
// microgrid, applying zoom around the centre and pan.
func (m Model) screenXYMicro(x, y float64, w, h int) (int, int) {
	s := m.microScale(w, h)
	sx := int(math.Round(float64(w*2)/2+x*s)) + m.offsetX*2
	sy := int(math.Round(float64(h*4)/2-y*s)) + m.offsetY*4
	return sx, sy
}

// cellToCanvas converts a canvas cell back to canvas coordinates.
func (m Model) cellToCanvas(cx, cy, w, h int) (float64, float64, bool) {
	if w <= 1 || h <= 1 || len(m.cmds) == 0 {
		return 0, 0, false
	}
	s := m.microScale(w, h)
	mx := float64(cx*2 - m.offsetX*2)
	my := float64(cy*4 - m.offsetY*4)
	x := (mx - float64(w*2)/2) / s
	y := (float64(h*4)/2 - my) / s
	return x, y, true
}

func (m Model) renderCanvas(w, h int) string {
	br := newBrailleBuf(w, h)
	pen := &braillePen{buf: br, project: func(x, y float64) (int, int) {
		return m.screenXYMicro(x, y, w, h)
	}}
	shown := min(max(m.shown, 0), len(m.cmds))
	if err := emit.Replay(slices.Values(m.cmds[:shown]), pen); err != nil {
		return "render error: " + err.Error()
	}
	lines := br.toLines()

	if m.playing && shown > 0 {
		// mark the turtle
		lines = overlay(lines, pen.cx, pen.cy, lipgloss.NewStyle().Foreground(accentFg).Render("●"))
	}
	if m.hovering {
		lines = overlay(lines, m.hoverMicX, m.hoverMicY, lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Render("◯"))
	}
	return strings.Join(lines, "\n")
}

// overlay replaces the cell containing micro-pixel (mx, my) with glyph.
func overlay(lines []string, mx, my int, glyph string) []string {
	cx, cy := mx/2, my/4
	if mx < 0 || my < 0 || cy >= len(lines) {
		return lines
	}
	r := []rune(lines[cy])
	if cx >= len(r) {
		return lines
	}
	lines[cy] = string(r[:cx]) + glyph + string(r[cx+1:])
	return lines
}

// nearestVertex returns the MoveTo target closest to micro-pixel (hx, hy).
func (m Model) nearestVertex(hx, hy, w, h int) (geom.Command, int, int, bool) {
	best := math.MaxInt
	var bc geom.Command
	bx, by := hx, hy
	for _, c := range m.cmds {
		if c.Op != geom.MoveTo {
			continue
		}
		mx, my := m.screenXYMicro(c.X, c.Y, w, h)
		dx, dy := mx-hx, my-hy
		if d := dx*dx + dy*dy; d < best {
			best, bc, bx, by = d, c, mx, my
		}
	}
	return bc, bx, by, best != math.MaxInt
}
