package views

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"rungrip/internal/search"
)

// PaletteData carries the palette overlay state.
type PaletteData struct {
	State       search.ViewState
	Input       string
	Spinner     string
	Items       []search.SelectableItem
	Cursor      int
	Offset      int
	Rows        int
	LogsPending bool
}

// PaletteOverlay renders the palette dialog centered over the dashboard. The
// base content is desaturated so the dialog reads as the focused layer.
func (r *Renderer) PaletteOverlay(base string, data PaletteData, width, height int) string {
	panelWidth := width - 8
	if panelWidth > 72 {
		panelWidth = 72
	}
	if panelWidth < 24 {
		panelWidth = 24
	}
	innerWidth := panelWidth - 4 // border and padding

	body := r.paletteBody(data, innerWidth)
	panel := r.styles.PaletteBox.Width(panelWidth - 2).Render(body)
	return spliceOverlay(base, panel, width, height)
}

// paletteBody renders the dialog interior. The panel grows through three
// size classes so the dialog does not jitter while results stream in:
// input-only, a fixed message block, and the full result window.
func (r *Renderer) paletteBody(data PaletteData, width int) string {
	var b strings.Builder
	b.WriteString(data.Input)
	b.WriteString("\n")

	switch data.State {
	case search.StateAwaitingInput:
		b.WriteString(r.styles.Dim.Render("Search experiments, runs, params, metrics and logs"))

	case search.StateNeedsMoreInput:
		b.WriteString(r.styles.Dim.Render(fmt.Sprintf("Keep typing (%d+ characters)", search.MinQueryLen)))

	case search.StateSkeleton:
		b.WriteString(data.Spinner + " " + r.styles.Dim.Render("searching…"))
		bar := r.styles.Skeleton.Render(strings.Repeat("█", width*2/3))
		for i := 0; i < 3; i++ {
			b.WriteString("\n" + bar)
		}

	case search.StateEmptyResults:
		b.WriteString(r.styles.Dim.Render("No matches"))

	case search.StateResults:
		r.writeResultRows(&b, data, width)
	}
	return b.String()
}

func (r *Renderer) writeResultRows(b *strings.Builder, data PaletteData, width int) {
	end := data.Offset + data.Rows
	if end > len(data.Items) {
		end = len(data.Items)
	}
	for i := data.Offset; i < end; i++ {
		item := data.Items[i]
		// Group header on the first visible row and at every category change
		if i == data.Offset || item.Group.Category != data.Items[i-1].Group.Category {
			b.WriteString(r.styles.GroupHeader.Render(item.Group.Label))
			b.WriteString("\n")
		}
		b.WriteString(r.resultRow(item, i == data.Cursor, width))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if end < len(data.Items) {
		b.WriteString("\n")
		b.WriteString(r.styles.Dim.Render(fmt.Sprintf("↓ %d more", len(data.Items)-end)))
	}
	if data.LogsPending {
		b.WriteString("\n")
		b.WriteString(r.styles.GroupHeader.Render("Log contents"))
		b.WriteString("\n")
		b.WriteString(data.Spinner + " " + r.styles.Dim.Render("searching logs…"))
	}
}

func (r *Renderer) resultRow(item search.SelectableItem, selected bool, width int) string {
	var line string
	switch item.Kind {
	case search.ItemOverflow:
		more := item.Group.Total - len(item.Group.Hits)
		line = "  " + r.styles.Overflow.Render(fmt.Sprintf("… %d more in %s", more, item.Group.Label))
	default:
		label := truncate(item.Hit.Label, width-4)
		line = "  " + label
		if item.Hit.Sublabel != "" {
			remain := width - 4 - len(label) - 2
			if remain > 8 {
				line += "  " + r.styles.Dim.Render(truncate(item.Hit.Sublabel, remain))
			}
		}
	}
	if selected {
		return r.styles.SelectionBg.Render("▸" + line[1:])
	}
	return line
}

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// desaturateANSI strips ANSI color/style codes and recolors text dim gray
func desaturateANSI(s string) string {
	plain := ansiRE.ReplaceAllString(s, "")
	return lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render(plain)
}

// spliceOverlay centers the panel over the base by replacing whole base
// lines. Replacing full lines sidesteps mid-line ANSI surgery.
func spliceOverlay(base, panel string, width, height int) string {
	baseLines := strings.Split(desaturateANSI(base), "\n")
	for len(baseLines) < height {
		baseLines = append(baseLines, "")
	}
	panelLines := strings.Split(panel, "\n")

	top := (height - len(panelLines)) / 2
	if top < 0 {
		top = 0
	}
	left := (width - lipgloss.Width(panel)) / 2
	if left < 0 {
		left = 0
	}
	pad := strings.Repeat(" ", left)
	for i, line := range panelLines {
		if top+i >= len(baseLines) {
			break
		}
		baseLines[top+i] = pad + line
	}
	return strings.Join(baseLines, "\n")
}
