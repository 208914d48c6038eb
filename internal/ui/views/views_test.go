package views

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"rungrip/internal/domain"
	"rungrip/internal/search"
)

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", truncate("short", 10))
	require.Equal(t, "exactly-10", truncate("exactly-10", 10))
	require.Equal(t, "very-lo...", truncate("very-long-name", 10))
}

func TestFormatDuration(t *testing.T) {
	require.Equal(t, "-", formatDuration(nil))

	ms := int64(4200)
	require.Equal(t, "4.2s", formatDuration(&ms))

	long := int64(90 * 1000)
	require.Equal(t, "1m30s", formatDuration(&long))
}

func TestFormatSize(t *testing.T) {
	require.Equal(t, "512 B", formatSize(512))
	require.Equal(t, "1.5 KB", formatSize(1536))
	require.Equal(t, "2.0 MB", formatSize(2*1024*1024))
}

func TestExperimentListRendersSelection(t *testing.T) {
	r := NewRenderer(false)
	now := time.Now()
	out := r.ExperimentList(ExperimentListData{
		Experiments: []domain.ExperimentInfo{
			{ExperimentID: "exp-a", RunCount: 3, LatestRun: &now},
			{ExperimentID: "exp-b", RunCount: 1},
		},
		Cursor: 1,
		Height: 10,
		Width:  80,
	})
	require.Contains(t, out, "exp-a")
	require.Contains(t, out, "> ")
	require.Contains(t, out, "never")
}

func TestRunListShowsPartialPageNote(t *testing.T) {
	r := NewRenderer(false)
	out := r.RunList(RunListData{
		Runs: []domain.Run{{Record: domain.RunRecord{
			RunID:     "run-42",
			Status:    domain.StatusSuccess,
			StartedAt: time.Now(),
		}}},
		Total:  120,
		Height: 10,
		Width:  80,
	})
	require.Contains(t, out, "run-42")
	require.Contains(t, out, "showing 1 of 120 runs")
}

func TestPaletteBodySizeClasses(t *testing.T) {
	r := NewRenderer(false)

	awaiting := r.paletteBody(PaletteData{State: search.StateAwaitingInput, Input: "> "}, 60)
	short := r.paletteBody(PaletteData{State: search.StateNeedsMoreInput, Input: "> a"}, 60)
	skeleton := r.paletteBody(PaletteData{State: search.StateSkeleton, Input: "> lr", Spinner: "*"}, 60)

	require.Contains(t, awaiting, "Search experiments")
	require.Contains(t, short, "Keep typing")
	// The skeleton block is taller than the hint states.
	require.Greater(t,
		strings.Count(skeleton, "\n"),
		strings.Count(awaiting, "\n"))
}

func TestPaletteResultRowsGroupHeadersAndOverflow(t *testing.T) {
	r := NewRenderer(false)
	group := domain.SearchGroup{
		Category: "param_names",
		Label:    "Param names",
		Scope:    "experiment",
		Hits:     []domain.SearchHit{{Label: "lr", EntityType: domain.EntityExperiment, EntityID: "exp-a"}},
		Total:    4,
	}
	items := search.Flatten([]domain.SearchGroup{group}, "lr")

	out := r.paletteBody(PaletteData{
		State:  search.StateResults,
		Input:  "> lr",
		Items:  items,
		Cursor: 0,
		Rows:   10,
	}, 60)
	require.Contains(t, out, "Param names")
	require.Contains(t, out, "3 more")
}

func TestPaletteOverlayCentersPanel(t *testing.T) {
	r := NewRenderer(false)
	base := strings.Repeat(strings.Repeat("x", 80)+"\n", 23) + strings.Repeat("x", 80)

	out := r.PaletteOverlay(base, PaletteData{
		State: search.StateAwaitingInput,
		Input: "> ",
	}, 80, 24)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 24)
	require.Contains(t, out, "Search experiments")
}
