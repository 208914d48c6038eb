package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"rungrip/internal/domain"
	"rungrip/internal/search"
)

// SearchSource is the pair of query executors the palette fans out to.
type SearchSource interface {
	Search(ctx context.Context, q string, limit int) (domain.SearchResponse, error)
	SearchLogs(ctx context.Context, q string, limit int) (domain.SearchResponse, error)
}

// Palette is the modal search surface. It owns the engine, the text input
// and the result viewport; the root model delegates every key to it while
// it is open so dashboard navigation cannot be hijacked.
type Palette struct {
	engine   *search.Engine
	input    textinput.Model
	spin     spinner.Model
	source   SearchSource
	navigate func(destination string) tea.Cmd

	limit    int
	debounce time.Duration
	timeout  time.Duration

	open   bool
	offset int // first visible item index in the result viewport
	rows   int // visible item rows
}

// NewPalette creates a closed palette.
func NewPalette(source SearchSource, navigate func(string) tea.Cmd, limit int, debounce, timeout time.Duration) *Palette {
	ti := textinput.New()
	ti.Placeholder = "search experiments, runs, params, logs…"
	ti.Prompt = "> "
	ti.CharLimit = 128

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	if limit <= 0 {
		limit = search.PerCategoryLimit
	}
	if debounce <= 0 {
		debounce = search.DebounceInterval
	}

	return &Palette{
		engine:   search.NewEngine(limit),
		input:    ti,
		spin:     sp,
		source:   source,
		navigate: navigate,
		limit:    limit,
		debounce: debounce,
		timeout:  timeout,
		rows:     10,
	}
}

// IsOpen reports whether the palette is on screen.
func (p *Palette) IsOpen() bool { return p.open }

// Open resets all palette state and focuses the input.
func (p *Palette) Open() tea.Cmd {
	p.open = true
	p.offset = 0
	p.engine.Reset()
	p.input.Reset()
	p.input.Focus()
	return tea.Batch(textinput.Blink, p.spin.Tick)
}

// Close dismisses the palette. Responses still in flight are ignored from
// here on; the engine resets again on next open.
func (p *Palette) Close() {
	p.open = false
	p.engine.Reset()
	p.input.Blur()
}

// SetSize updates the result viewport height from the window size.
func (p *Palette) SetSize(width, height int) {
	rows := height - 10 // input, frame, status lines
	if rows < 4 {
		rows = 4
	}
	if rows > 16 {
		rows = 16
	}
	p.rows = rows
}

// Update processes a message while the palette is open.
func (p *Palette) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return p.handleKey(msg)

	case debounceMsg:
		query, gen, dispatch := p.engine.Settle(msg.token)
		p.scrollToCursor()
		if !dispatch {
			return nil
		}
		return tea.Batch(p.searchCmd(query, gen), p.searchLogsCmd(query, gen))

	case primaryResultMsg:
		p.engine.ApplyPrimary(msg.gen, search.SourceResult{Groups: msg.groups, Err: msg.err})
		p.scrollToCursor()
		return nil

	case logsResultMsg:
		p.engine.ApplyLogs(msg.gen, search.SourceResult{Groups: msg.groups, Err: msg.err})
		p.scrollToCursor()
		return nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		p.spin, cmd = p.spin.Update(msg)
		return cmd
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

func (p *Palette) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		p.Close()
		return nil

	case "enter":
		item, ok := p.engine.Current()
		if !ok {
			return nil // empty list: activation is a no-op
		}
		p.Close()
		return p.navigate(item.Destination)

	case "down":
		p.engine.MoveDown()
		p.scrollToCursor()
		return nil

	case "up":
		p.engine.MoveUp()
		p.scrollToCursor()
		return nil

	case "ctrl+down", "alt+down":
		p.engine.JumpDown()
		p.scrollToCursor()
		return nil

	case "ctrl+up", "alt+up":
		p.engine.JumpUp()
		p.scrollToCursor()
		return nil
	}

	// Everything else belongs to the search box.
	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	value := p.input.Value()
	if value == before {
		return cmd
	}
	token := p.engine.SetLive(value)
	wait := p.debounce
	return tea.Batch(cmd, tea.Tick(wait, func(time.Time) tea.Msg {
		return debounceMsg{token: token}
	}))
}

// scrollToCursor keeps the selected row inside the viewport using nearest
// placement: scroll just far enough, never recenter.
func (p *Palette) scrollToCursor() {
	cursor := p.engine.CursorIndex()
	if cursor < 0 {
		p.offset = 0
		return
	}
	if cursor < p.offset {
		p.offset = cursor
	}
	if cursor >= p.offset+p.rows {
		p.offset = cursor - p.rows + 1
	}
	if max := len(p.engine.Items()) - p.rows; p.offset > max {
		p.offset = max
	}
	if p.offset < 0 {
		p.offset = 0
	}
}

func (p *Palette) searchCmd(query string, gen int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := p.requestContext()
		defer cancel()
		resp, err := p.source.Search(ctx, query, p.limit)
		return primaryResultMsg{gen: gen, groups: resp.Groups, err: err}
	}
}

func (p *Palette) searchLogsCmd(query string, gen int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := p.requestContext()
		defer cancel()
		resp, err := p.source.SearchLogs(ctx, query, p.limit)
		return logsResultMsg{gen: gen, groups: resp.Groups, err: err}
	}
}

func (p *Palette) requestContext() (context.Context, context.CancelFunc) {
	if p.timeout > 0 {
		return context.WithTimeout(context.Background(), p.timeout)
	}
	return context.WithCancel(context.Background())
}

// Engine exposes the engine for the view layer.
func (p *Palette) Engine() *search.Engine { return p.engine }

// InputView renders the text input line.
func (p *Palette) InputView() string { return p.input.View() }

// SpinnerView renders the loading spinner frame.
func (p *Palette) SpinnerView() string { return p.spin.View() }

// Offset returns the first visible item index.
func (p *Palette) Offset() int { return p.offset }

// Rows returns the visible item row count.
func (p *Palette) Rows() int { return p.rows }
