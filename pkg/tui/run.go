package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackarck/werename/internal/watch"
	"github.com/blackarck/werename/pkg/rename"
)

// Run shows the editor until the session is committed or discarded.
// A missing watcher only costs the stale-listing warning.
func Run(s *rename.Session, opts Options) error {
	m := New(s, opts)

	w, err := watch.New(opts.Dir, rename.IsTempName)
	if err == nil {
		m.watcher = w
		defer w.Close()
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start the terminal user interface: %w", err)
	}
	if m.Err() != nil {
		return m.Err()
	}
	if !s.Done() {
		// killed from outside the update loop; nothing was renamed
		return s.Discard()
	}
	return nil
}
