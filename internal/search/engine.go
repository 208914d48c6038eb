package search

// Engine glues the debouncer, coordinator, merger, flattener and cursor
// into one state object with pure transitions. The UI layer feeds it
// keystrokes, timer tokens and source completions and renders whatever it
// derives; the engine itself never blocks.
type Engine struct {
	debounce Debouncer
	coord    *Coordinator
	cursor   Cursor
	items    []SelectableItem
	starts   []int
}

// NewEngine returns an engine in the empty-input state with the given
// per-category hit cap.
func NewEngine(limit int) *Engine {
	return &Engine{
		coord:  NewCoordinator(limit),
		cursor: NewCursor(),
	}
}

// SetLive records a keystroke and returns the debounce token for the timer
// the caller must start.
func (e *Engine) SetLive(value string) int {
	return e.debounce.Set(value)
}

// Live returns the current live input value.
func (e *Engine) Live() string { return e.debounce.Live() }

// Settled returns the current settled query.
func (e *Engine) Settled() string { return e.coord.Settled() }

// Settle is called when a debounce timer fires. It reports whether the
// sources should be queried and with which generation tag.
func (e *Engine) Settle(token int) (query string, gen int, dispatch bool) {
	value, ok := e.debounce.Fire(token)
	if !ok || value == e.coord.Settled() {
		return "", 0, false
	}
	dispatch = e.coord.SetQuery(value)
	e.rebuild()
	e.cursor.Reset(len(e.items))
	return value, e.coord.Generation(), dispatch
}

// ApplyPrimary feeds back the entity source's completion.
func (e *Engine) ApplyPrimary(gen int, resp SourceResult) {
	e.coord.ApplyPrimary(gen, resp.Groups, resp.Err)
	e.rebuild()
	e.cursor.Clamp(len(e.items))
}

// ApplyLogs feeds back the log source's completion.
func (e *Engine) ApplyLogs(gen int, resp SourceResult) {
	e.coord.ApplyLogs(gen, resp.Groups, resp.Err)
	e.rebuild()
	e.cursor.Clamp(len(e.items))
}

// Reset clears all state. Used when the palette closes or reopens.
func (e *Engine) Reset() {
	e.debounce.Reset()
	e.coord.Reset()
	e.rebuild()
	e.cursor.Reset(len(e.items))
}

func (e *Engine) rebuild() {
	merged := Merge(e.coord.Primary(), e.coord.Logs(), e.coord.Settled())
	e.items = Flatten(merged, e.coord.Settled())
	e.starts = SectionStarts(e.items)
}

// Items returns the flattened selectable list.
func (e *Engine) Items() []SelectableItem { return e.items }

// SectionStarts returns the section boundary indices of the current list.
func (e *Engine) SectionStarts() []int { return e.starts }

// CursorIndex returns the selected index, -1 when the list is empty.
func (e *Engine) CursorIndex() int { return e.cursor.Index() }

// Current returns the selected item, if any.
func (e *Engine) Current() (SelectableItem, bool) {
	i := e.cursor.Index()
	if i < 0 || i >= len(e.items) {
		return SelectableItem{}, false
	}
	return e.items[i], true
}

// MoveDown, MoveUp, JumpDown and JumpUp apply the navigation transitions.
func (e *Engine) MoveDown() { e.cursor.Down(len(e.items)) }
func (e *Engine) MoveUp()   { e.cursor.Up(len(e.items)) }
func (e *Engine) JumpDown() { e.cursor.JumpDown(e.starts, len(e.items)) }
func (e *Engine) JumpUp()   { e.cursor.JumpUp(e.starts, len(e.items)) }

// State classifies the current view state for the renderer.
func (e *Engine) State() ViewState {
	return Classify(Signals{
		Live:       e.debounce.Live(),
		Settled:    e.coord.Settled(),
		Loading:    e.coord.Loading(),
		Stale:      e.coord.Stale(),
		HasResults: HasAnyResults(e.coord.Primary(), e.coord.Logs()),
		ItemCount:  len(e.items),
	})
}

// LogsPending reports whether the log source is still fetching; the view
// uses it to render the pending logs section with a spinner.
func (e *Engine) LogsPending() bool { return e.coord.Logs().Loading }
