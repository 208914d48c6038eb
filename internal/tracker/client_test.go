package tracker

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"rungrip/internal/domain"
)

func TestSearchSendsQueryAndLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/search", r.URL.Path)
		require.Equal(t, "lr", r.URL.Query().Get("q"))
		require.Equal(t, "5", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"query": "lr",
			"groups": [{
				"category": "param_names",
				"label": "Param names",
				"scope": "experiment",
				"hits": [{"label": "lr", "entity_type": "experiment", "entity_id": "exp-a", "field": "params.lr"}],
				"total": 9
			}]
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.Search(context.Background(), "lr", 5)
	require.NoError(t, err)
	require.Equal(t, "lr", resp.Query)
	require.Len(t, resp.Groups, 1)
	require.Equal(t, 9, resp.Groups[0].Total)
	require.Equal(t, domain.EntityExperiment, resp.Groups[0].Hits[0].EntityType)
}

func TestSearchLogsHitsLogEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/search/logs", r.URL.Path)
		w.Write([]byte(`{"query": "loss", "groups": [], "truncated": true}`))
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL).SearchLogs(context.Background(), "loss", 5)
	require.NoError(t, err)
	require.True(t, resp.Truncated)
}

func TestRunsDefaultsToNewestFirst(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "record.started_at", q.Get("sort_by"))
		require.Equal(t, "desc", q.Get("sort_order"))
		require.Equal(t, "exp-a", q.Get("experiment_id"))
		require.Equal(t, "200", q.Get("limit"))
		w.Write([]byte(`{"runs": [], "total": 0, "limit": 200, "offset": 0}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Runs(context.Background(), RunsOptions{
		ExperimentID: "exp-a",
		Limit:        200,
	})
	require.NoError(t, err)
}

func TestRunDecodesNamespacedFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/runs/run-42", r.URL.Path)
		w.Write([]byte(`{
			"record": {
				"run_id": "run-42",
				"experiment_id": "exp-a",
				"status": "success",
				"started_at": "2026-08-01T10:00:00Z",
				"duration_ms": 4200,
				"tags": ["baseline"]
			},
			"params": {"lr": 0.001},
			"metrics": {"loss": 0.42},
			"artifacts": [{"artifact_id": "a1", "name": "model.pt", "kind": "model", "format": "pt"}]
		}`))
	}))
	defer srv.Close()

	run, err := NewClient(srv.URL).Run(context.Background(), "run-42")
	require.NoError(t, err)
	require.Equal(t, domain.StatusSuccess, run.Record.Status)
	require.Equal(t, []string{"baseline"}, run.Record.Tags)
	require.InDelta(t, 0.001, run.Params["lr"], 1e-9)
	require.Len(t, run.Artifacts, 1)
}

func TestRunLogsAndContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/runs/run-42/logs":
			w.Write([]byte(`{"run_id": "run-42", "logs": ["stdout", "stderr"]}`))
		case "/api/runs/run-42/logs/stdout":
			w.Write([]byte(`{"run_id": "run-42", "log_name": "stdout", "content": "epoch 1\n", "exists": true}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	logs, err := client.RunLogs(context.Background(), "run-42")
	require.NoError(t, err)
	require.Equal(t, []string{"stdout", "stderr"}, logs)

	content, err := client.RunLog(context.Background(), "run-42", "stdout")
	require.NoError(t, err)
	require.Equal(t, "epoch 1\n", content)
}

func TestAPIErrorCarriesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "run not found"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Run(context.Background(), "nope")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Equal(t, "run not found", apiErr.Detail)
	require.Contains(t, apiErr.Error(), "404")
}

func TestRefreshPosts(t *testing.T) {
	var method, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.Write([]byte(`{"status": "ok"}`))
	}))
	defer srv.Close()

	require.NoError(t, NewClient(srv.URL).Refresh(context.Background()))
	require.Equal(t, http.MethodPost, method)
	require.Equal(t, "/api/meta/refresh", path)
}

func TestClientTimeoutOption(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"experiments": []}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, WithTimeout(20*time.Millisecond))
	_, err := client.Experiments(context.Background())
	require.Error(t, err)
}
