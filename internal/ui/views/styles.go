package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Filter        lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Header        lipgloss.Style
	Highlight     lipgloss.Style
	SelectionBg   lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusRunning lipgloss.Style
	StatusSuccess lipgloss.Style
	PaletteBox    lipgloss.Style
	GroupHeader   lipgloss.Style
	Overflow      lipgloss.Style
	Skeleton      lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Filter: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Help:   lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Header:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245")),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		SelectionBg:   lipgloss.NewStyle().Background(lipgloss.Color("238")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusRunning: lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // cyan
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		PaletteBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			BorderForeground(lipgloss.Color("99")),
		GroupHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Overflow:    lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Italic(true),
		Skeleton:    lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}

// GetStatusColor returns the color used for a run lifecycle status
func GetStatusColor(status string) string {
	switch status {
	case "success":
		return "78" // green
	case "failed":
		return "203" // red
	case "cancelled":
		return "214" // yellow
	case "running":
		return "51" // cyan
	default:
		return "241"
	}
}
