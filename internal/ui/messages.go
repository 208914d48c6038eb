package ui

import (
	"rungrip/internal/domain"
	"rungrip/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// debounceMsg fires when a palette debounce timer elapses
type debounceMsg struct {
	token int
}

// primaryResultMsg contains the entity search completion for one generation
type primaryResultMsg struct {
	gen    int
	groups []domain.SearchGroup
	err    error
}

// logsResultMsg contains the log search completion for one generation
type logsResultMsg struct {
	gen    int
	groups []domain.SearchGroup
	err    error
}

// experimentsMsg contains the result of an experiment catalog fetch
type experimentsMsg struct {
	experiments []domain.ExperimentInfo
	err         error
}

// runsMsg contains the result of a run listing fetch
type runsMsg struct {
	page domain.RunListPage
	err  error
}

// runMsg contains the result of a single-run fetch
type runMsg struct {
	run domain.Run
	err error
}

// logPagerMsg contains the result of showing a run log in the pager
type logPagerMsg struct {
	runID string
	err   error
}

// clearStatusMsg clears the transient status bar message
type clearStatusMsg struct{}
