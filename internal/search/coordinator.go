package search

import "rungrip/internal/domain"

// sourceSlot tracks one source's retained payload and in-flight state.
type sourceSlot struct {
	groups  []domain.SearchGroup
	gen     int // generation the payload belongs to
	loading bool
}

func (s *sourceSlot) response(current int) SourceResponse {
	return SourceResponse{
		Groups:      s.groups,
		Loading:     s.loading,
		Placeholder: len(s.groups) > 0 && s.gen != current,
	}
}

// Coordinator owns the settled query and the state of both search sources.
// Responses are tagged with the generation of the query that produced them;
// a response for a superseded generation is dropped so stale data can never
// be mistaken for fresh.
type Coordinator struct {
	settled string
	gen     int
	limit   int
	primary sourceSlot
	logs    sourceSlot
}

// NewCoordinator returns a coordinator with no settled query. Applied
// responses are clamped to at most limit hits per group.
func NewCoordinator(limit int) *Coordinator {
	if limit <= 0 {
		limit = PerCategoryLimit
	}
	return &Coordinator{limit: limit}
}

// Settled returns the current settled query.
func (c *Coordinator) Settled() string { return c.settled }

// Generation returns the tag requests for the current query must carry.
func (c *Coordinator) Generation() int { return c.gen }

// SetQuery installs a newly settled query. It returns true when the query
// should be dispatched to both sources. Short queries are never dispatched:
// both sources immediately report empty, not loading, not placeholder.
func (c *Coordinator) SetQuery(query string) bool {
	c.settled = query
	c.gen++
	if !Dispatchable(query) {
		c.primary = sourceSlot{gen: c.gen}
		c.logs = sourceSlot{gen: c.gen}
		return false
	}
	c.primary.loading = true
	c.logs.loading = true
	return true
}

// ApplyPrimary records the entity source's response for a generation.
// Errors degrade to an empty payload; they never propagate past here.
func (c *Coordinator) ApplyPrimary(gen int, groups []domain.SearchGroup, err error) {
	c.apply(&c.primary, gen, groups, err)
}

// ApplyLogs records the log source's response for a generation.
func (c *Coordinator) ApplyLogs(gen int, groups []domain.SearchGroup, err error) {
	c.apply(&c.logs, gen, groups, err)
}

func (c *Coordinator) apply(slot *sourceSlot, gen int, groups []domain.SearchGroup, err error) {
	if gen != c.gen {
		return // superseded by a newer settled query
	}
	if err != nil {
		groups = nil
	}
	// A source must never hand the engine more hits per group than were
	// requested; a misbehaving server is clamped here.
	for i := range groups {
		if len(groups[i].Hits) > c.limit {
			groups[i].Hits = groups[i].Hits[:c.limit]
		}
	}
	slot.groups = groups
	slot.gen = gen
	slot.loading = false
}

// Primary returns the entity source's current view.
func (c *Coordinator) Primary() SourceResponse { return c.primary.response(c.gen) }

// Logs returns the log source's current view.
func (c *Coordinator) Logs() SourceResponse { return c.logs.response(c.gen) }

// Loading reports whether the entity source is still fetching the current
// settled query.
func (c *Coordinator) Loading() bool { return c.primary.loading }

// Stale reports whether either source is serving a retained payload from a
// superseded query.
func (c *Coordinator) Stale() bool {
	return c.Primary().Placeholder || c.Logs().Placeholder
}

// Reset drops all retained payloads and cancels interest in any responses
// still in flight. Used when the palette closes.
func (c *Coordinator) Reset() {
	c.gen++
	c.settled = ""
	c.primary = sourceSlot{gen: c.gen}
	c.logs = sourceSlot{gen: c.gen}
}
