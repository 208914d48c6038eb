package tracker

import (
	"context"
	"net/url"

	"rungrip/internal/domain"
)

// Search queries the structured-entity search endpoint. Hits are grouped by
// category with at most limit hits per group.
func (c *Client) Search(ctx context.Context, q string, limit int) (domain.SearchResponse, error) {
	var out domain.SearchResponse
	params := url.Values{"q": {q}, "limit": {intQuery(limit)}}
	err := c.get(ctx, "/api/search", params, &out)
	return out, err
}

// SearchLogs queries full-text search in run log contents. Slower than
// Search; the server bounds how many runs it scans and sets Truncated when
// it stops early.
func (c *Client) SearchLogs(ctx context.Context, q string, limit int) (domain.SearchResponse, error) {
	var out domain.SearchResponse
	params := url.Values{"q": {q}, "limit": {intQuery(limit)}}
	err := c.get(ctx, "/api/search/logs", params, &out)
	return out, err
}

// Experiments lists the experiment catalog with run counts.
func (c *Client) Experiments(ctx context.Context) ([]domain.ExperimentInfo, error) {
	var out domain.ExperimentsResponse
	if err := c.get(ctx, "/api/meta/experiments", nil, &out); err != nil {
		return nil, err
	}
	return out.Experiments, nil
}

// RunsOptions filter and page the run listing.
type RunsOptions struct {
	ExperimentID string
	Query        string // free-text filter over run ids and tags
	SortBy       string
	SortOrder    string
	Limit        int
	Offset       int
}

// Runs lists runs, newest first by default.
func (c *Client) Runs(ctx context.Context, opts RunsOptions) (domain.RunListPage, error) {
	params := url.Values{}
	if opts.ExperimentID != "" {
		params.Set("experiment_id", opts.ExperimentID)
	}
	if opts.Query != "" {
		params.Set("q", opts.Query)
	}
	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = "record.started_at"
	}
	params.Set("sort_by", sortBy)
	sortOrder := opts.SortOrder
	if sortOrder == "" {
		sortOrder = "desc"
	}
	params.Set("sort_order", sortOrder)
	if opts.Limit > 0 {
		params.Set("limit", intQuery(opts.Limit))
	}
	if opts.Offset > 0 {
		params.Set("offset", intQuery(opts.Offset))
	}
	var out domain.RunListPage
	err := c.get(ctx, "/api/runs", params, &out)
	return out, err
}

// Run fetches a single run by id.
func (c *Client) Run(ctx context.Context, runID string) (domain.Run, error) {
	var out domain.Run
	err := c.get(ctx, "/api/runs/"+url.PathEscape(runID), nil, &out)
	return out, err
}

// RunLogs lists the log names recorded for a run.
func (c *Client) RunLogs(ctx context.Context, runID string) ([]string, error) {
	var out struct {
		Logs []string `json:"logs"`
	}
	err := c.get(ctx, "/api/runs/"+url.PathEscape(runID)+"/logs", nil, &out)
	return out.Logs, err
}

// RunLog fetches one log's full contents. Missing logs come back empty.
func (c *Client) RunLog(ctx context.Context, runID, name string) (string, error) {
	var out struct {
		Content string `json:"content"`
	}
	err := c.get(ctx, "/api/runs/"+url.PathEscape(runID)+"/logs/"+url.PathEscape(name), nil, &out)
	return out.Content, err
}

// Refresh asks the server to rescan its store for new experiments.
func (c *Client) Refresh(ctx context.Context) error {
	return c.post(ctx, "/api/meta/refresh", nil)
}
