package search

import "strings"

// ViewState is the single discrete state the palette renders from. Exactly
// one holds at a time; Classify resolves overlaps in declaration order, so
// the skeleton wins while data is unsettled.
type ViewState int

const (
	StateAwaitingInput ViewState = iota // live query empty
	StateNeedsMoreInput                 // live query too short to dispatch
	StateSkeleton                       // debouncing, loading, or stale
	StateEmptyResults                   // settled, idle, zero matches
	StateResults                        // fresh results on screen
)

func (s ViewState) String() string {
	switch s {
	case StateAwaitingInput:
		return "awaiting-input"
	case StateNeedsMoreInput:
		return "needs-more-input"
	case StateSkeleton:
		return "skeleton"
	case StateEmptyResults:
		return "empty-results"
	default:
		return "results"
	}
}

// Signals are the booleans the classifier derives the state from.
type Signals struct {
	Live       string
	Settled    string
	Loading    bool // primary source fetching the current settled query
	Stale      bool // either source serving a superseded payload
	HasResults bool // any merged group has hits or a nonzero total
	ItemCount  int  // flattened list length
}

// Debouncing reports whether the live value has not settled yet.
func (s Signals) Debouncing() bool {
	return Dispatchable(s.Live) && s.Live != s.Settled
}

// Classify derives the palette's view state.
func Classify(s Signals) ViewState {
	switch {
	case strings.TrimSpace(s.Live) == "":
		return StateAwaitingInput
	case !Dispatchable(s.Live):
		return StateNeedsMoreInput
	case s.Stale || s.Debouncing() || s.Loading:
		return StateSkeleton
	case Dispatchable(s.Settled) && !s.HasResults:
		return StateEmptyResults
	case s.ItemCount == 0:
		return StateEmptyResults
	default:
		return StateResults
	}
}

// HasAnyResults reports whether any group carries hits or a nonzero total.
// The synthetic pending logs group (empty, total 0) does not count.
func HasAnyResults(primary, logs SourceResponse) bool {
	for _, resp := range []SourceResponse{primary, logs} {
		for _, g := range resp.Groups {
			if len(g.Hits) > 0 || g.Total > 0 {
				return true
			}
		}
	}
	return false
}
