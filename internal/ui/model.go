package ui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"rungrip/internal/config"
	"rungrip/internal/domain"
	"rungrip/internal/eventbus"
	"rungrip/internal/tracker"
	"rungrip/internal/ui/views"
)

const (
	runPageSize       = 200
	statusLingerShort = 3 * time.Second
)

// sessionView identifies which dashboard screen is active.
type sessionView int

const (
	viewExperiments sessionView = iota
	viewRuns
	viewRunDetail
)

// Model is the root Bubble Tea model.
type Model struct {
	cfg    *config.Config
	bus    eventbus.EventBus
	client *tracker.Client

	palette  *Palette
	renderer *views.Renderer
	program  *tea.Program

	width  int
	height int
	view   sessionView

	// Experiment catalog
	experiments    []domain.ExperimentInfo
	expFilter      string // substring filter applied client-side
	expFilterLabel string
	expIndex       int
	expOffset      int
	loadingCatalog bool

	// Run listing
	runs           domain.RunListPage
	runOpts        tracker.RunsOptions
	runFilterLabel string
	runIndex       int
	runOffset      int
	loadingRuns    bool

	// Run detail
	run        *domain.Run
	loadingRun bool

	status string
}

// NewModel creates the root model.
func NewModel(cfg *config.Config, bus eventbus.EventBus, client *tracker.Client) *Model {
	m := &Model{
		cfg:            cfg,
		bus:            bus,
		client:         client,
		renderer:       views.NewRenderer(cfg.UISettings.ShowFingerprints),
		loadingCatalog: true,
	}
	m.palette = NewPalette(client, m.navigateTo, cfg.Search.PerCategoryLimit, cfg.Debounce(), cfg.Timeout())
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return m.fetchExperiments()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetSize(msg.Width, msg.Height)
		m.ensureVisible()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		// While the palette overlay is up it owns every key; the
		// dashboard's own navigation is suppressed so the dialog is
		// not hijacked. The palette's input always receives its
		// characters.
		if m.palette.IsOpen() {
			return m, m.palette.Update(msg)
		}
		return m, m.handleKey(msg)

	case debounceMsg, primaryResultMsg, logsResultMsg:
		if !m.palette.IsOpen() {
			return m, nil // superseded by close; state resets on reopen
		}
		return m, m.palette.Update(msg)

	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case experimentsMsg:
		m.loadingCatalog = false
		if msg.err != nil {
			m.status = "catalog fetch failed: " + msg.err.Error()
			return m, clearStatusAfter(statusLingerShort)
		}
		m.experiments = msg.experiments
		m.clampExperimentCursor()
		return m, nil

	case runsMsg:
		m.loadingRuns = false
		if msg.err != nil {
			m.status = "run fetch failed: " + msg.err.Error()
			return m, clearStatusAfter(statusLingerShort)
		}
		m.runs = msg.page
		m.clampRunCursor()
		return m, nil

	case runMsg:
		m.loadingRun = false
		if msg.err != nil {
			m.status = "run fetch failed: " + msg.err.Error()
			m.view = viewExperiments
			return m, clearStatusAfter(statusLingerShort)
		}
		run := msg.run
		m.run = &run
		return m, nil

	case logPagerMsg:
		if msg.err != nil {
			m.status = "pager failed: " + msg.err.Error()
			return m, clearStatusAfter(statusLingerShort)
		}
		return m, nil

	case clearStatusMsg:
		m.status = ""
		return m, nil
	}

	if m.palette.IsOpen() {
		return m, m.palette.Update(msg)
	}
	return m, nil
}

// handleKey processes dashboard keys while no overlay is open.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit

	case "/", "ctrl+p":
		return m.palette.Open()

	case "r":
		m.bus.Publish(domain.RefreshRequestedEvent{})
		m.status = "refreshing…"
		return clearStatusAfter(statusLingerShort)

	case "esc", "backspace":
		switch m.view {
		case viewRunDetail:
			m.view = viewRuns
		case viewRuns:
			m.view = viewExperiments
			m.runFilterLabel = ""
		}
		return nil

	case "up", "k":
		m.moveCursor(-1)
		return nil

	case "down", "j":
		m.moveCursor(1)
		return nil

	case "pgup":
		m.moveCursor(-m.listHeight())
		return nil

	case "pgdown":
		m.moveCursor(m.listHeight())
		return nil

	case "home", "g":
		m.setCursor(0)
		return nil

	case "end", "G":
		m.setCursor(m.itemCount() - 1)
		return nil

	case "enter":
		return m.openSelection()

	case "l":
		if m.view == viewRuns {
			if run, ok := m.selectedRun(); ok {
				return m.openLogPager(run.Record.RunID)
			}
		}
		return nil

	case "?":
		return m.showHelp()

	case "x":
		if m.view == viewExperiments {
			m.expFilter = ""
			m.expFilterLabel = ""
			m.clampExperimentCursor()
		}
		return nil
	}
	return nil
}

func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.ExperimentsUpdatedEvent:
		m.loadingCatalog = false
		m.experiments = e.Experiments
		m.clampExperimentCursor()
		return nil
	case eventbus.ServerErrorEvent:
		m.status = e.Message
		return clearStatusAfter(statusLingerShort)
	}
	return nil
}

// openSelection descends into the selected row.
func (m *Model) openSelection() tea.Cmd {
	switch m.view {
	case viewExperiments:
		exps := m.visibleExperiments()
		if m.expIndex < 0 || m.expIndex >= len(exps) {
			return nil
		}
		return m.navigateTo("/experiments/" + exps[m.expIndex].ExperimentID)

	case viewRuns:
		if run, ok := m.selectedRun(); ok {
			return m.navigateTo("/runs/" + run.Record.RunID)
		}
	}
	return nil
}

// visibleExperiments applies the client-side catalog filter.
func (m *Model) visibleExperiments() []domain.ExperimentInfo {
	if m.expFilter == "" {
		return m.experiments
	}
	needle := strings.ToLower(m.expFilter)
	var out []domain.ExperimentInfo
	for _, e := range m.experiments {
		if strings.Contains(strings.ToLower(e.ExperimentID), needle) {
			out = append(out, e)
		}
	}
	return out
}

func (m *Model) selectedRun() (domain.Run, bool) {
	if m.runIndex < 0 || m.runIndex >= len(m.runs.Runs) {
		return domain.Run{}, false
	}
	return m.runs.Runs[m.runIndex], true
}

func (m *Model) itemCount() int {
	switch m.view {
	case viewExperiments:
		return len(m.visibleExperiments())
	case viewRuns:
		return len(m.runs.Runs)
	}
	return 0
}

func (m *Model) moveCursor(delta int) {
	m.setCursor(m.cursor() + delta)
}

func (m *Model) cursor() int {
	if m.view == viewRuns {
		return m.runIndex
	}
	return m.expIndex
}

func (m *Model) setCursor(index int) {
	n := m.itemCount()
	if n == 0 {
		index = 0
	} else {
		if index < 0 {
			index = 0
		}
		if index >= n {
			index = n - 1
		}
	}
	if m.view == viewRuns {
		m.runIndex = index
	} else {
		m.expIndex = index
	}
	m.ensureVisible()
}

func (m *Model) clampExperimentCursor() {
	if n := len(m.visibleExperiments()); m.expIndex >= n {
		m.expIndex = n - 1
	}
	if m.expIndex < 0 {
		m.expIndex = 0
	}
	m.ensureVisible()
}

func (m *Model) clampRunCursor() {
	if n := len(m.runs.Runs); m.runIndex >= n {
		m.runIndex = n - 1
	}
	if m.runIndex < 0 {
		m.runIndex = 0
	}
	m.ensureVisible()
}

// listHeight is the number of list rows that fit the window.
func (m *Model) listHeight() int {
	h := m.height - 7 // title, header, status, footer
	if h < 1 {
		h = 1
	}
	return h
}

// ensureVisible keeps the selected row inside the viewport, scrolling just
// far enough in either direction.
func (m *Model) ensureVisible() {
	offset := &m.expOffset
	cursor := m.expIndex
	if m.view == viewRuns {
		offset = &m.runOffset
		cursor = m.runIndex
	}
	height := m.listHeight()
	if cursor < *offset {
		*offset = cursor
	}
	if cursor >= *offset+height {
		*offset = cursor - height + 1
	}
	if *offset < 0 {
		*offset = 0
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var body string
	switch m.view {
	case viewRuns:
		body = m.renderer.RunList(views.RunListData{
			Runs:        m.runs.Runs,
			Total:       m.runs.Total,
			Experiment:  m.runOpts.ExperimentID,
			FilterLabel: m.runFilterLabel,
			Cursor:      m.runIndex,
			Offset:      m.runOffset,
			Height:      m.listHeight(),
			Loading:     m.loadingRuns,
			Width:       m.width,
		})
	case viewRunDetail:
		body = m.renderer.RunDetail(views.RunDetailData{
			Run:     m.run,
			Loading: m.loadingRun,
			Width:   m.width,
		})
	default:
		body = m.renderer.ExperimentList(views.ExperimentListData{
			Experiments: m.visibleExperiments(),
			FilterLabel: m.expFilterLabel,
			Cursor:      m.expIndex,
			Offset:      m.expOffset,
			Height:      m.listHeight(),
			Loading:     m.loadingCatalog,
			Width:       m.width,
		})
	}

	base := m.renderer.Frame(body, m.status, m.footerHint(), m.width, m.height)

	if m.palette.IsOpen() {
		eng := m.palette.Engine()
		return m.renderer.PaletteOverlay(base, views.PaletteData{
			State:       eng.State(),
			Input:       m.palette.InputView(),
			Spinner:     m.palette.SpinnerView(),
			Items:       eng.Items(),
			Cursor:      eng.CursorIndex(),
			Offset:      m.palette.Offset(),
			Rows:        m.palette.Rows(),
			LogsPending: eng.LogsPending(),
		}, m.width, m.height)
	}
	return base
}

func (m *Model) footerHint() string {
	switch m.view {
	case viewRuns:
		return "↑/↓ move · enter detail · l log · / search · esc back · q quit"
	case viewRunDetail:
		return "esc back · / search · q quit"
	default:
		return "↑/↓ move · enter runs · / search · r refresh · ? help · q quit"
	}
}

// Commands

func (m *Model) fetchExperiments() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.cfg.Timeout())
		defer cancel()
		experiments, err := m.client.Experiments(ctx)
		return experimentsMsg{experiments: experiments, err: err}
	}
}

func (m *Model) fetchRuns() tea.Cmd {
	opts := m.runOpts
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.cfg.Timeout())
		defer cancel()
		page, err := m.client.Runs(ctx, opts)
		return runsMsg{page: page, err: err}
	}
}

func (m *Model) fetchRun(runID string) tea.Cmd {
	m.loadingRun = true
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.cfg.Timeout())
		defer cancel()
		run, err := m.client.Run(ctx, runID)
		return runMsg{run: run, err: err}
	}
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
