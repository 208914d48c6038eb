package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"rungrip/internal/domain"
)

func TestMergePrimaryGroupsComeFirst(t *testing.T) {
	primary := SourceResponse{Groups: []domain.SearchGroup{
		{Category: "experiments", Label: "Experiments"},
		{Category: "param_names", Label: "Param names"},
	}}
	logs := SourceResponse{Groups: []domain.SearchGroup{
		{Category: LogsCategory, Label: "Log contents"},
	}}

	merged := Merge(primary, logs, "lr")
	require.Len(t, merged, 3)
	require.Equal(t, "experiments", merged[0].Category)
	require.Equal(t, "param_names", merged[1].Category)
	require.Equal(t, LogsCategory, merged[2].Category)
}

func TestMergePendingLogsGroupWhileLoading(t *testing.T) {
	primary := SourceResponse{Groups: []domain.SearchGroup{
		{Category: "experiments", Label: "Experiments", Total: 2},
	}}
	logs := SourceResponse{Loading: true}

	merged := Merge(primary, logs, "lr")
	require.Len(t, merged, 2)
	last := merged[len(merged)-1]
	require.Equal(t, LogsCategory, last.Category)
	require.Empty(t, last.Hits)
	require.Zero(t, last.Total)
}

func TestMergeNoPendingGroupForShortQuery(t *testing.T) {
	merged := Merge(SourceResponse{}, SourceResponse{Loading: true}, "a")
	require.Empty(t, merged)
}

func TestMergeRealLogsReplacePendingGroup(t *testing.T) {
	logs := SourceResponse{Groups: []domain.SearchGroup{
		{Category: LogsCategory, Label: "Log contents", Total: 4},
	}}

	merged := Merge(SourceResponse{}, logs, "lr")
	require.Len(t, merged, 1)
	require.Equal(t, 4, merged[0].Total)
}
