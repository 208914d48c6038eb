package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"rungrip/internal/domain"
)

func TestFlattenHitsThenOverflow(t *testing.T) {
	groups := []domain.SearchGroup{
		{
			Category: "param_names",
			Label:    "Param names",
			Scope:    "experiment",
			Hits: []domain.SearchHit{
				{Label: "lr", EntityType: domain.EntityExperiment, EntityID: "exp-a"},
				{Label: "lr_schedule", EntityType: domain.EntityExperiment, EntityID: "exp-b"},
			},
			Total: 9,
		},
	}

	items := Flatten(groups, "lr")
	require.Len(t, items, 3)
	require.Equal(t, ItemHit, items[0].Kind)
	require.Equal(t, ItemHit, items[1].Kind)
	require.Equal(t, ItemOverflow, items[2].Kind)
	require.Equal(t, "/experiments?has_param=lr", items[2].Destination)
}

func TestFlattenNoOverflowWhenAllHitsReturned(t *testing.T) {
	groups := []domain.SearchGroup{
		{
			Category: "experiments",
			Hits:     []domain.SearchHit{{Label: "exp-a", EntityType: domain.EntityExperiment, EntityID: "exp-a"}},
			Total:    1,
		},
	}

	items := Flatten(groups, "exp")
	require.Len(t, items, 1)
	require.Equal(t, ItemHit, items[0].Kind)
}

func TestFlattenPreservesGroupOrder(t *testing.T) {
	groups := []domain.SearchGroup{
		{Category: "experiments", Hits: []domain.SearchHit{{EntityID: "e1", EntityType: domain.EntityExperiment}}, Total: 1},
		{Category: "runs", Hits: []domain.SearchHit{{EntityID: "r1", EntityType: domain.EntityRun}}, Total: 1},
		{Category: LogsCategory, Scope: "run", Hits: []domain.SearchHit{{EntityID: "r2", EntityType: domain.EntityRun}}, Total: 3},
	}

	items := Flatten(groups, "loss")
	require.Len(t, items, 4)
	require.Equal(t, "experiments", items[0].Group.Category)
	require.Equal(t, "runs", items[1].Group.Category)
	require.Equal(t, LogsCategory, items[2].Group.Category)
	require.Equal(t, ItemOverflow, items[3].Kind)
	require.Equal(t, "/runs?log_contains=loss", items[3].Destination)
}

func TestHitDestinations(t *testing.T) {
	exp := domain.SearchHit{EntityType: domain.EntityExperiment, EntityID: "cifar baseline"}
	require.Equal(t, "/experiments/cifar%20baseline", HitDestination(exp))

	run := domain.SearchHit{EntityType: domain.EntityRun, EntityID: "run-42"}
	require.Equal(t, "/runs/run-42", HitDestination(run))
}

func TestOverflowDestinations(t *testing.T) {
	cases := []struct {
		group domain.SearchGroup
		want  string
	}{
		{domain.SearchGroup{Category: "param_names"}, "/experiments?has_param=lr"},
		{domain.SearchGroup{Category: "metric_names"}, "/experiments?has_metric=lr"},
		{domain.SearchGroup{Category: LogsCategory}, "/runs?log_contains=lr"},
		{domain.SearchGroup{Category: "experiments", Scope: "experiment"}, "/experiments?q=lr"},
		{domain.SearchGroup{Category: "runs", Scope: "run"}, "/runs?q=lr"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, OverflowDestination(tc.group, "lr"), tc.group.Category)
	}
}

func TestSectionStarts(t *testing.T) {
	items := []SelectableItem{
		{Group: domain.SearchGroup{Category: "experiments"}},
		{Group: domain.SearchGroup{Category: "experiments"}},
		{Group: domain.SearchGroup{Category: "runs"}},
		{Group: domain.SearchGroup{Category: LogsCategory}},
		{Group: domain.SearchGroup{Category: LogsCategory}},
	}
	require.Equal(t, []int{0, 2, 3}, SectionStarts(items))
	require.Nil(t, SectionStarts(nil))
}
