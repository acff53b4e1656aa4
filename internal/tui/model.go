package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"rastertrace/internal/config"
	"rastertrace/internal/emit"
	"rastertrace/internal/geom"
	"rastertrace/internal/pipeline"
)

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Conversion settings and the last recorded stream
	cfg  config.Config
	res  pipeline.Result
	meta emit.Meta
	cmds []geom.Command

	// replay: only cmds[:shown] are drawn while playing
	shown   int
	playing bool

	// open-path prompt
	openMode bool
	ta       textarea.Model

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverMicX   int
	hoverMicY   int
	hoverHasPos bool
	hoverX      float64
	hoverY      float64

	// stroke table
	showStrokes bool
	tbl         table.Model

	watcher  *fsnotify.Watcher
	watchDir string
}

// New returns an empty preview using cfg for every conversion.
func New(cfg config.Config) Model {
	m := Model{
		showSidebar: false,
		helpVisible: true,
		zoom:        1.0,
		status:      "rastertrace ready",
		cfg:         cfg,
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Path to an image or contour file. Enter to open; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(3)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	if w, err := fsnotify.NewWatcher(); err == nil {
		m.watcher = w
	}
	m.refreshDir()
	return m
}

// NewWithPath preloads a file at launch.
func NewWithPath(cfg config.Config, path string) Model {
	m := New(cfg)
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return watchFiles(m.watcher) }

// Close releases the file watcher.
func (m Model) Close() error {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Close()
}
