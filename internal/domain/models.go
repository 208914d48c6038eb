package domain

import "time"

// RunStatus is the completion status reported by the tracking server.
type RunStatus string

const (
	StatusSuccess   RunStatus = "success"
	StatusFailed    RunStatus = "failed"
	StatusCancelled RunStatus = "cancelled"
	StatusRunning   RunStatus = "running"
)

// EntityType tags a search hit with the kind of entity it points at.
type EntityType string

const (
	EntityExperiment EntityType = "experiment"
	EntityRun        EntityType = "run"
)

// ExperimentInfo is one row of the experiment catalog.
type ExperimentInfo struct {
	ExperimentID string     `json:"experiment_id"`
	RunCount     int        `json:"run_count"`
	LatestRun    *time.Time `json:"latest_run,omitempty"`
}

// ExperimentsResponse is the payload of GET /api/meta/experiments.
type ExperimentsResponse struct {
	Experiments []ExperimentInfo `json:"experiments"`
}

// RunRecord holds the core record.* fields of a run.
type RunRecord struct {
	RunID              string     `json:"run_id"`
	ExperimentID       string     `json:"experiment_id"`
	Status             RunStatus  `json:"status"`
	ContextFingerprint string     `json:"context_fingerprint,omitempty"`
	ParamsFingerprint  string     `json:"params_fingerprint,omitempty"`
	SeedFingerprint    string     `json:"seed_fingerprint,omitempty"`
	StartedAt          time.Time  `json:"started_at"`
	FinishedAt         *time.Time `json:"finished_at,omitempty"`
	DurationMS         *int64     `json:"duration_ms,omitempty"`
	Tags               []string   `json:"tags,omitempty"`
	Notes              string     `json:"notes,omitempty"`
}

// ArtifactInfo describes one artifact produced by a run.
type ArtifactInfo struct {
	ArtifactID string `json:"artifact_id"`
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	Format     string `json:"format"`
	SizeBytes  *int64 `json:"size_bytes,omitempty"`
}

// Run is a complete run with namespaced fields.
type Run struct {
	Record    RunRecord      `json:"record"`
	Params    map[string]any `json:"params,omitempty"`
	Metrics   map[string]any `json:"metrics,omitempty"`
	Artifacts []ArtifactInfo `json:"artifacts,omitempty"`
}

// RunListPage is a paginated slice of runs.
type RunListPage struct {
	Runs   []Run `json:"runs"`
	Total  int   `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// SearchHit is a single search result item.
type SearchHit struct {
	Label      string     `json:"label"`
	Sublabel   string     `json:"sublabel,omitempty"`
	EntityType EntityType `json:"entity_type"`
	EntityID   string     `json:"entity_id"`
	Field      string     `json:"field,omitempty"`
	Value      string     `json:"value,omitempty"`
}

// SearchGroup is one category of results for one query.
// Invariant: len(Hits) <= Total.
type SearchGroup struct {
	Category string      `json:"category"`
	Label    string      `json:"label"`
	Scope    string      `json:"scope"` // "experiment" or "run"
	Hits     []SearchHit `json:"hits"`
	Total    int         `json:"total"`
}

// SearchResponse is the payload of the search endpoints.
type SearchResponse struct {
	Query     string        `json:"query"`
	Groups    []SearchGroup `json:"groups"`
	Truncated bool          `json:"truncated,omitempty"`
}
