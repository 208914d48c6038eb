package search

import "rungrip/internal/domain"

// LogsCategory is the category tag of the log-content source's single group.
const LogsCategory = "logs"

// pendingLogsGroup stands in for the log source while it is still fetching.
// It renders as an empty section so the header position is stable when the
// real results land; it is replaced outright, never merged.
var pendingLogsGroup = domain.SearchGroup{
	Category: LogsCategory,
	Label:    "Log contents",
	Scope:    "run",
	Total:    0,
}

// Merge combines both sources into one ordered group list: entity groups
// first, then log groups. While the log source is loading with no payload
// for a dispatchable query, a synthetic pending logs group is appended.
func Merge(primary, logs SourceResponse, settled string) []domain.SearchGroup {
	merged := make([]domain.SearchGroup, 0, len(primary.Groups)+len(logs.Groups)+1)
	merged = append(merged, primary.Groups...)
	switch {
	case len(logs.Groups) > 0:
		merged = append(merged, logs.Groups...)
	case logs.Loading && Dispatchable(settled):
		merged = append(merged, pendingLogsGroup)
	}
	return merged
}
