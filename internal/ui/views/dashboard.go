package views

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"rungrip/internal/domain"
)

// Renderer turns model state into terminal output.
type Renderer struct {
	styles           *Styles
	showFingerprints bool
}

// NewRenderer creates a new renderer
func NewRenderer(showFingerprints bool) *Renderer {
	return &Renderer{
		styles:           NewStyles(),
		showFingerprints: showFingerprints,
	}
}

// ExperimentListData carries everything the experiment screen needs.
type ExperimentListData struct {
	Experiments []domain.ExperimentInfo
	FilterLabel string
	Cursor      int
	Offset      int
	Height      int
	Loading     bool
	Width       int
}

// RunListData carries everything the run screen needs.
type RunListData struct {
	Runs        []domain.Run
	Total       int
	Experiment  string
	FilterLabel string
	Cursor      int
	Offset      int
	Height      int
	Loading     bool
	Width       int
}

// RunDetailData carries the run detail screen state.
type RunDetailData struct {
	Run     *domain.Run
	Loading bool
	Width   int
}

// Frame wraps a body with the title bar, status line and key hints.
func (r *Renderer) Frame(body, status, hint string, width, height int) string {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render("rungrip"))
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	if status != "" {
		b.WriteString(r.styles.Status.Render(status))
	}
	b.WriteString("\n")
	b.WriteString(r.styles.Help.Render(hint))
	return r.styles.Main.Render(b.String())
}

// ExperimentList renders the experiment catalog screen.
func (r *Renderer) ExperimentList(data ExperimentListData) string {
	var b strings.Builder
	header := "Experiments"
	if data.FilterLabel != "" {
		header += "  " + r.styles.Filter.Render("["+data.FilterLabel+"]")
	}
	b.WriteString(r.styles.Header.Render(header))
	b.WriteString("\n")

	if data.Loading {
		b.WriteString(r.styles.Dim.Render("loading catalog…"))
		return b.String()
	}
	if len(data.Experiments) == 0 {
		b.WriteString(r.styles.Dim.Render("no experiments"))
		return b.String()
	}

	end := data.Offset + data.Height
	if end > len(data.Experiments) {
		end = len(data.Experiments)
	}
	for i := data.Offset; i < end; i++ {
		exp := data.Experiments[i]
		line := fmt.Sprintf("%-40s %5d runs   %s",
			truncate(exp.ExperimentID, 40), exp.RunCount, formatLatest(exp.LatestRun))
		if i == data.Cursor {
			line = r.styles.SelectionBg.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if scroll := scrollIndicator(data.Offset, end, len(data.Experiments)); scroll != "" {
		b.WriteString("\n")
		b.WriteString(r.styles.Dim.Render(scroll))
	}
	return b.String()
}

// RunList renders the run listing screen.
func (r *Renderer) RunList(data RunListData) string {
	var b strings.Builder
	header := "Runs"
	if data.Experiment != "" {
		header = "Runs · " + data.Experiment
	}
	if data.FilterLabel != "" {
		header += "  " + r.styles.Filter.Render("["+data.FilterLabel+"]")
	}
	b.WriteString(r.styles.Header.Render(header))
	b.WriteString("\n")

	if data.Loading {
		b.WriteString(r.styles.Dim.Render("loading runs…"))
		return b.String()
	}
	if len(data.Runs) == 0 {
		b.WriteString(r.styles.Dim.Render("no runs"))
		return b.String()
	}

	end := data.Offset + data.Height
	if end > len(data.Runs) {
		end = len(data.Runs)
	}
	for i := data.Offset; i < end; i++ {
		line := r.runLine(data.Runs[i], i == data.Cursor)
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if data.Total > len(data.Runs) {
		b.WriteString("\n")
		b.WriteString(r.styles.Dim.Render(fmt.Sprintf("showing %d of %d runs", len(data.Runs), data.Total)))
	} else if scroll := scrollIndicator(data.Offset, end, len(data.Runs)); scroll != "" {
		b.WriteString("\n")
		b.WriteString(r.styles.Dim.Render(scroll))
	}
	return b.String()
}

func (r *Renderer) runLine(run domain.Run, selected bool) string {
	record := run.Record
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(GetStatusColor(string(record.Status))))
	status := statusStyle.Render(fmt.Sprintf("%-9s", record.Status))

	var parts []string
	parts = append(parts, truncate(record.RunID, 28))
	parts = append(parts, status)
	parts = append(parts, record.StartedAt.Format("2006-01-02 15:04"))
	parts = append(parts, formatDuration(record.DurationMS))
	if r.showFingerprints && record.ParamsFingerprint != "" {
		parts = append(parts, r.styles.Dim.Render(truncate(record.ParamsFingerprint, 12)))
	}
	if len(record.Tags) > 0 {
		parts = append(parts, r.styles.Filter.Render(strings.Join(record.Tags, ",")))
	}

	line := strings.Join(parts, "  ")
	if selected {
		return r.styles.SelectionBg.Render("> " + line)
	}
	return "  " + line
}

// RunDetail renders a single run with its params, metrics and artifacts.
func (r *Renderer) RunDetail(data RunDetailData) string {
	if data.Loading || data.Run == nil {
		return r.styles.Dim.Render("loading run…")
	}
	run := data.Run
	record := run.Record

	var b strings.Builder
	b.WriteString(r.styles.Header.Render(record.RunID))
	b.WriteString("\n")

	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(GetStatusColor(string(record.Status))))
	b.WriteString(fmt.Sprintf("experiment  %s\n", record.ExperimentID))
	b.WriteString(fmt.Sprintf("status      %s\n", statusStyle.Render(string(record.Status))))
	b.WriteString(fmt.Sprintf("started     %s\n", record.StartedAt.Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf("duration    %s\n", formatDuration(record.DurationMS)))
	if len(record.Tags) > 0 {
		b.WriteString(fmt.Sprintf("tags        %s\n", strings.Join(record.Tags, ", ")))
	}
	if record.Notes != "" {
		b.WriteString(fmt.Sprintf("notes       %s\n", record.Notes))
	}
	if r.showFingerprints {
		if record.ContextFingerprint != "" {
			b.WriteString(fmt.Sprintf("context     %s\n", r.styles.Dim.Render(record.ContextFingerprint)))
		}
		if record.ParamsFingerprint != "" {
			b.WriteString(fmt.Sprintf("params fp   %s\n", r.styles.Dim.Render(record.ParamsFingerprint)))
		}
	}

	if len(run.Params) > 0 {
		b.WriteString("\n")
		b.WriteString(r.styles.Header.Render("Params"))
		b.WriteString("\n")
		writeSortedMap(&b, run.Params)
	}
	if len(run.Metrics) > 0 {
		b.WriteString("\n")
		b.WriteString(r.styles.Header.Render("Metrics"))
		b.WriteString("\n")
		writeSortedMap(&b, run.Metrics)
	}
	if len(run.Artifacts) > 0 {
		b.WriteString("\n")
		b.WriteString(r.styles.Header.Render("Artifacts"))
		b.WriteString("\n")
		for _, a := range run.Artifacts {
			size := ""
			if a.SizeBytes != nil {
				size = formatSize(*a.SizeBytes)
			}
			b.WriteString(fmt.Sprintf("  %-30s %-10s %s\n", truncate(a.Name, 30), a.Kind, size))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeSortedMap(b *strings.Builder, m map[string]any) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("  %-30s %v\n", truncate(k, 30), m[k]))
	}
}

func formatLatest(t *time.Time) string {
	if t == nil {
		return "never"
	}
	return t.Format("2006-01-02 15:04")
}

func formatDuration(ms *int64) string {
	if ms == nil {
		return "-"
	}
	d := time.Duration(*ms) * time.Millisecond
	if d < time.Minute {
		return d.Round(time.Millisecond * 100).String()
	}
	return d.Round(time.Second).String()
}

func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

func scrollIndicator(offset, end, total int) string {
	if offset == 0 && end >= total {
		return ""
	}
	return fmt.Sprintf("%d-%d of %d", offset+1, end, total)
}
