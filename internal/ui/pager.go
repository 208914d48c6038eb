package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// openLogPager fetches every captured log of a run and shows them in the ov
// pager. The pager takes over the terminal, so the command releases it first
// and restores it when the pager exits.
func (m *Model) openLogPager(runID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.cfg.Timeout())
		defer cancel()

		names, err := m.client.RunLogs(ctx, runID)
		if err != nil {
			return logPagerMsg{runID: runID, err: err}
		}
		if len(names) == 0 {
			return logPagerMsg{runID: runID, err: fmt.Errorf("run %s has no logs", runID)}
		}

		var buf strings.Builder
		for i, name := range names {
			if i > 0 {
				buf.WriteString("\n")
			}
			buf.WriteString("===== " + name + " =====\n")
			content, err := m.client.RunLog(ctx, runID, name)
			if err != nil {
				buf.WriteString("(unavailable: " + err.Error() + ")\n")
				continue
			}
			buf.WriteString(content)
			if !strings.HasSuffix(content, "\n") {
				buf.WriteString("\n")
			}
		}

		return logPagerMsg{runID: runID, err: m.showInPager(buf.String())}
	}
}

// showInPager runs ov over the given content, handing the terminal back to
// Bubble Tea afterwards.
func (m *Model) showInPager(content string) error {
	if m.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := m.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// Small delay so ov has fully exited before the terminal is restored
		time.Sleep(100 * time.Millisecond)
		_ = m.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Keep ov from writing its buffer to the screen on exit
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
