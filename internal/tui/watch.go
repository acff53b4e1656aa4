package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

type fileChangedMsg struct{ path string }

type watchErrMsg struct{ err error }

// watchFiles waits for the next relevant event on w. Update re-arms it after
// every message it returns.
func watchFiles(w *fsnotify.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove) {
					return fileChangedMsg{path: ev.Name}
				}
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{err: err}
			}
		}
	}
}

// watch moves the watcher to dir, which holds the previewed file.
func (m *Model) watch(dir string) {
	if m.watcher == nil || dir == m.watchDir {
		return
	}
	if m.watchDir != "" {
		_ = m.watcher.Remove(m.watchDir)
	}
	if err := m.watcher.Add(dir); err != nil {
		m.watchDir = ""
		return
	}
	m.watchDir = dir
}
