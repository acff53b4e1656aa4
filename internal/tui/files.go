package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"rastertrace/internal/emit"
	"rastertrace/internal/geom"
	"rastertrace/internal/pipeline"
	"rastertrace/internal/trace"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			continue
		}
		if trace.IsImageFile(name) || geom.IsContourFile(name) {
			ext := strings.ToLower(filepath.Ext(name))
			items = append(items, fileItem{title: name, desc: ext, path: filepath.Join(m.cwd, name)})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no images or contour files in current directory"
	}
}

// loadPath converts an image or contour file and records its command
// stream for display.
func (m *Model) loadPath(p string) {
	cfg := m.cfg
	switch {
	case geom.IsContourFile(p):
		cfg.ImagePath, cfg.Contours = "", p
	case trace.IsImageFile(p):
		cfg.ImagePath, cfg.Contours = p, ""
	default:
		m.status = "unsupported file: " + strings.ToLower(filepath.Ext(p))
		return
	}
	m.selPath = p
	m.watch(filepath.Dir(p))

	var rec emit.Recorder
	res, err := pipeline.RunTo(cfg, &rec)
	switch {
	case errors.Is(err, geom.ErrNoGeometry):
		m.res, m.meta, m.cmds = res, pipeline.Meta(cfg), nil
		m.status = "nothing to draw: " + filepath.Base(p)
	case err != nil:
		m.status = "load error: " + err.Error()
		return
	default:
		m.res, m.meta, m.cmds = res, rec.Meta, rec.Commands
		m.status = "loaded: " + filepath.Base(p) +
			fmt.Sprintf("  strokes=%d commands=%d", res.Strokes, res.Commands)
	}
	m.shown, m.playing = len(m.cmds), false
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
	m.inspectPopup = ""
	if m.showStrokes {
		m.refreshStrokes()
	}
}

// reload re-runs the conversion for the current file, keeping the view.
func (m *Model) reload() {
	if m.selPath == "" {
		return
	}
	zoom, ox, oy := m.zoom, m.offsetX, m.offsetY
	m.loadPath(m.selPath)
	m.zoom, m.offsetX, m.offsetY = zoom, ox, oy
}

// export writes the recorded stream to the configured output.
func (m *Model) export() {
	if len(m.cmds) == 0 {
		m.status = "export: nothing to draw"
		return
	}
	sink, err := emit.ForPath(m.cfg.Output)
	if err != nil {
		m.status = "export: " + err.Error()
		return
	}
	if err := sink.Emit(m.meta, slices.Values(m.cmds)); err != nil {
		m.status = "export: " + err.Error()
		return
	}
	m.status = "wrote " + m.cfg.Output
}
