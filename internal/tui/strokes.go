package tui

import (
	"fmt"
	"math"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"

	"rastertrace/internal/geom"
)

// strokeInfo summarises one pen-down run of the command stream.
type strokeInfo struct {
	points     int
	start, end geom.Point
	length     float64
}

// strokes splits cmds into pen-down runs. A run's points are the MoveTo
// commands issued while the pen is down.
func strokes(cmds []geom.Command) []strokeInfo {
	var out []strokeInfo
	down := false
	for _, c := range cmds {
		switch c.Op {
		case geom.PenUp:
			down = false
		case geom.PenDown:
			down = true
			out = append(out, strokeInfo{})
		case geom.MoveTo:
			if !down || len(out) == 0 {
				continue
			}
			s := &out[len(out)-1]
			p := geom.Pt(c.X, c.Y)
			if s.points == 0 {
				s.start = p
			} else {
				s.length += math.Hypot(p.X-s.end.X, p.Y-s.end.Y)
			}
			s.end = p
			s.points++
		}
	}
	return out
}

// refreshStrokes rebuilds the stroke table from the recorded stream.
func (m *Model) refreshStrokes() {
	info := strokes(m.cmds)
	if len(info) == 0 {
		m.showStrokes = false
		m.status = "no strokes in current drawing"
		return
	}
	cols := []table.Column{
		{Title: "#", Width: 5},
		{Title: "points", Width: 7},
		{Title: "start", Width: 18},
		{Title: "end", Width: 18},
		{Title: "length", Width: 9},
	}
	rows := make([]table.Row, 0, len(info))
	for i, s := range info {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(s.points),
			fmt.Sprintf("%.1f, %.1f", s.start.X, s.start.Y),
			fmt.Sprintf("%.1f, %.1f", s.end.X, s.end.Y),
			fmt.Sprintf("%.1f", s.length),
		})
	}
	// clear rows first so the table never sees rows wider than its columns
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(rows)
}
