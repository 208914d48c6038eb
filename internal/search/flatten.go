package search

import (
	"net/url"

	"rungrip/internal/domain"
)

// HitDestination returns the route a hit activates.
func HitDestination(hit domain.SearchHit) string {
	if hit.EntityType == domain.EntityExperiment {
		return "/experiments/" + url.PathEscape(hit.EntityID)
	}
	return "/runs/" + url.PathEscape(hit.EntityID)
}

// OverflowDestination returns the route of the fuller listing for a group
// whose total exceeds the returned hits, filtered by the settled query.
func OverflowDestination(group domain.SearchGroup, query string) string {
	q := url.QueryEscape(query)
	switch group.Category {
	case "param_names":
		return "/experiments?has_param=" + q
	case "metric_names":
		return "/experiments?has_metric=" + q
	case LogsCategory:
		return "/runs?log_contains=" + q
	}
	if group.Scope == "experiment" {
		return "/experiments?q=" + q
	}
	return "/runs?q=" + q
}

// Flatten produces the linear selectable list: for each group, its hits in
// order, then one overflow item when more matches exist server-side than
// were returned.
func Flatten(groups []domain.SearchGroup, query string) []SelectableItem {
	var items []SelectableItem
	for _, g := range groups {
		for _, h := range g.Hits {
			items = append(items, SelectableItem{
				Kind:        ItemHit,
				Group:       g,
				Hit:         h,
				Destination: HitDestination(h),
			})
		}
		if g.Total > len(g.Hits) {
			items = append(items, SelectableItem{
				Kind:        ItemOverflow,
				Group:       g,
				Destination: OverflowDestination(g, query),
			})
		}
	}
	return items
}

// SectionStarts returns the indices at which the category changes from the
// previous item. It starts at 0 whenever the list is non-empty.
func SectionStarts(items []SelectableItem) []int {
	var starts []int
	for i, it := range items {
		if i == 0 || it.Group.Category != items[i-1].Group.Category {
			starts = append(starts, i)
		}
	}
	return starts
}
