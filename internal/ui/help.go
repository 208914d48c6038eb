package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// helpContent builds the help text shown in the pager.
func helpContent() string {
	var help strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	row := func(key, desc string) {
		help.WriteString(fmt.Sprintf("  %-12s %s\n", keyStyle.Render(key), descStyle.Render(desc)))
	}

	help.WriteString(titleStyle.Render("rungrip - experiment dashboard"))
	help.WriteString("\n\n")

	help.WriteString(sectionStyle.Render("Navigation"))
	help.WriteString("\n")
	row("↑/k ↓/j", "Move selection")
	row("pgup/pgdn", "Page")
	row("g/G", "First / last row")
	row("enter", "Open experiment runs / run detail")
	row("esc", "Back")
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Search"))
	help.WriteString("\n")
	row("/ or ctrl+p", "Open the search palette")
	row("↑/↓", "Move through results")
	row("ctrl+↑/↓", "Jump between result sections")
	row("enter", "Go to the selected result")
	row("esc", "Dismiss the palette")
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	row("r", "Refresh the experiment catalog")
	row("l", "View the selected run's logs")
	row("x", "Clear the experiment filter")
	row("?", "This help")
	row("q", "Quit")

	return help.String()
}

// showHelp pages the help text through ov.
func (m *Model) showHelp() tea.Cmd {
	return func() tea.Msg {
		return logPagerMsg{err: m.showInPager(helpContent())}
	}
}
