// Package search implements the palette search engine: query debouncing,
// fan-out to the entity and log-content sources, staleness suppression,
// result merging, flattening into a selectable list, and the cursor state
// machine. The package is pure state and derivation; timers and requests
// live in the UI event loop, which feeds their completions back in.
package search

import (
	"strings"
	"time"

	"rungrip/internal/domain"
)

const (
	// DebounceInterval is the quiet period before a live query settles.
	DebounceInterval = 300 * time.Millisecond

	// PerCategoryLimit caps the hits requested per result category.
	PerCategoryLimit = 5

	// MinQueryLen is the minimum trimmed query length that is dispatched.
	MinQueryLen = 2
)

// SourceResponse is one source's current payload as seen by the merger.
// Loading and Placeholder are independent: a source can serve a retained
// payload from a previous query (Placeholder) while a fresh request is in
// flight (Loading), or serve it idle.
type SourceResponse struct {
	Groups      []domain.SearchGroup
	Loading     bool
	Placeholder bool
}

// SourceResult is one source's completed request as fed back into the
// engine: the groups it returned, or the error it failed with. Errors
// degrade to empty results inside the coordinator.
type SourceResult struct {
	Groups []domain.SearchGroup
	Err    error
}

// ItemKind distinguishes the two selectable item variants.
type ItemKind int

const (
	ItemHit ItemKind = iota
	ItemOverflow
)

// SelectableItem is one entry of the flattened result list: either a
// concrete hit or the trailing "N more" overflow entry of a group.
type SelectableItem struct {
	Kind        ItemKind
	Group       domain.SearchGroup
	Hit         domain.SearchHit // zero value for overflow items
	Destination string
}

// Dispatchable reports whether a query is long enough to send to sources.
func Dispatchable(query string) bool {
	return len([]rune(strings.TrimSpace(query))) >= MinQueryLen
}
