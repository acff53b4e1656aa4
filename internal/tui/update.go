package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"rastertrace/internal/geom"
)

type tickMsg time.Time

// replayFrames is roughly how many ticks a full replay takes.
const replayFrames = 90

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
		}
	case tickMsg:
		if !m.playing {
			return m, nil
		}
		m.shown += max(1, len(m.cmds)/replayFrames)
		if m.shown >= len(m.cmds) {
			m.shown, m.playing = len(m.cmds), false
			m.status = "replay done"
			return m, nil
		}
		return m, tick()
	case fileChangedMsg:
		if filepath.Dir(msg.path) == m.cwd && m.showSidebar {
			m.refreshDir()
		}
		if m.selPath != "" && filepath.Clean(msg.path) == filepath.Clean(m.selPath) {
			m.reload()
		}
		return m, watchFiles(m.watcher)
	case watchErrMsg:
		m.status = "watch error: " + msg.err.Error()
		return m, watchFiles(m.watcher)
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.openMode {
			switch msg.String() {
			case "esc":
				m.openMode = false
				m.ta.Blur()
				return m, nil
			case "enter":
				p := strings.TrimSpace(m.ta.Value())
				if p == "" {
					m.status = "open: empty path"
					return m, nil
				}
				m.openMode = false
				m.ta.Blur()
				m.loadPath(p)
				return m, nil
			}
			var cmd tea.Cmd
			m.ta, cmd = m.ta.Update(msg)
			return m, cmd
		}
		if m.showStrokes {
			switch msg.String() {
			case "up", "down", "pgup", "pgdown", "home", "end":
				var cmd tea.Cmd
				m.tbl, cmd = m.tbl.Update(msg)
				return m, cmd
			}
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "+", "=":
			if m.zoom < 64 {
				m.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "-", "_":
			if m.zoom > 0.05 {
				m.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "0":
			m.zoom = 1.0
			m.offsetX, m.offsetY = 0, 0
			m.status = "view reset"
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
				m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
			}
		case "o":
			m.openMode = true
			m.ta.SetValue("")
			m.status = "open path"
			m.ta.Focus()
		case "h":
			m.helpVisible = !m.helpVisible
		case "s":
			m.showStrokes = !m.showStrokes
			if m.showStrokes {
				m.refreshStrokes()
			}
		case "r":
			if len(m.cmds) == 0 {
				m.status = "nothing to replay"
				return m, nil
			}
			m.shown, m.playing = 0, true
			m.status = "replaying"
			return m, tick()
		case " ":
			if len(m.cmds) == 0 {
				return m, nil
			}
			if m.playing {
				m.playing = false
				m.status = fmt.Sprintf("paused at %d/%d", m.shown, len(m.cmds))
				return m, nil
			}
			if m.shown >= len(m.cmds) {
				m.shown = 0
			}
			m.playing = true
			m.status = "replaying"
			return m, tick()
		case "c":
			m.cfg.Close = !m.cfg.Close
			m.reload()
			m.status = fmt.Sprintf("close strokes: %v  %s", m.cfg.Close, m.status)
		case "e":
			m.export()
		case "i":
			m.inspectPopup = m.inspect()
			m.status = "inspect popup"
		case "esc":
			m.inspectPopup = ""
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
			}
		case "up":
			m.offsetY -= 1
		case "down":
			m.offsetY += 1
		case "left":
			m.offsetX -= 2
		case "right":
			m.offsetX += 2
		}
	case tea.MouseMsg:
		lo := m.layout()
		cx, cy := msg.X-lo.mapX, msg.Y-lo.mapY
		if cx >= 0 && cx < lo.mapW && cy >= 0 && cy < lo.mapH && len(m.cmds) > 0 {
			m.hovering = true
			m.hoverX, m.hoverY, m.hoverHasPos = m.cellToCanvas(cx, cy, lo.mapW, lo.mapH)
			if _, bx, by, ok := m.nearestVertex(cx*2, cy*4, lo.mapW, lo.mapH); ok {
				m.hoverMicX, m.hoverMicY = bx, by
			} else {
				m.hovering = false
			}
		} else {
			m.hovering = false
			m.hoverHasPos = false
		}
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

// inspect describes the current drawing and the vertex nearest the centre
// of the canvas.
func (m Model) inspect() string {
	if len(m.cmds) == 0 {
		return "nothing loaded"
	}
	name := filepath.Base(m.selPath)
	if m.selPath == "" {
		name = "<none>"
	}
	bb, t := m.res.BBox, m.res.Transform
	meta := []string{
		fmt.Sprintf("name: %s", name),
		fmt.Sprintf("path: %s", m.selPath),
		fmt.Sprintf("pixel bbox: [%g, %g, %g, %g]", bb.MinX, bb.MinY, bb.MaxX, bb.MaxY),
		fmt.Sprintf("scale: %.4f  offset: %.2f, %.2f", t.Scale, t.OffsetX, t.OffsetY),
		fmt.Sprintf("contours: %d  strokes: %d  points: %d", m.res.Contours, m.res.Strokes, m.res.Points),
		fmt.Sprintf("commands: %d  span: %g  close: %v", len(m.cmds), m.canvasSpan(), m.cfg.Close),
	}
	lo := m.layout()
	w, h := lo.mapW, lo.mapH
	if c, _, _, ok := m.nearestVertex(w, h*2, w, h); ok && c.Op == geom.MoveTo {
		meta = append(meta, fmt.Sprintf("nearest centre: %s", c))
	}
	return strings.Join(meta, "\n")
}
