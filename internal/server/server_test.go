package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/neurotopo/trisect/pkg/observability"
	"github.com/neurotopo/trisect/pkg/pipeline"
	"github.com/neurotopo/trisect/pkg/store"
)

const fanGraphJSON = `{
	"nodes": [{"id":"a"},{"id":"b"},{"id":"c"},{"id":"d"},{"id":"e"},{"id":"f"}],
	"edges": [{"from":"a","to":"b"},{"from":"c","to":"d"},{"from":"e","to":"a"},{"from":"e","to":"c"},{"from":"f","to":"b"},{"from":"f","to":"d"}]
}`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, nil, logger)
	return New(runner, store.NewMemoryStore(), logger)
}

func doRequest(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodGet, "/healthz", "")

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want %q", body["status"], "ok")
	}
}

func TestCreateAnalysis(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodPost, "/api/v1/analyses", `{"graph":`+fanGraphJSON+`}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d; body %s", w.Code, http.StatusCreated, w.Body)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var run store.Run
	if err := json.Unmarshal(w.Body.Bytes(), &run); err != nil {
		t.Fatalf("decode run: %v", err)
	}
	if run.ID == "" || run.CreatedAt.IsZero() {
		t.Error("run should carry an ID and creation time")
	}
	if run.Nodes != 6 || run.Edges != 6 {
		t.Errorf("graph size = %d/%d, want 6/6", run.Nodes, run.Edges)
	}
	if run.Options.Criterion != "power" || run.Options.Parameter != "max" {
		t.Errorf("recorded options = %+v, want defaults", run.Options)
	}
	if run.Result == nil || run.Result.Best == nil {
		t.Fatal("run should include the search result")
	}
	if !reflect.DeepEqual(run.Result.Best.R, []string{"a", "c", "e"}) ||
		!reflect.DeepEqual(run.Result.Best.B, []string{"b", "d", "f"}) {
		t.Errorf("best clusters = %v / %v, want [a c e] / [b d f]", run.Result.Best.R, run.Result.Best.B)
	}
}

func TestCreateAnalysisThreshold(t *testing.T) {
	s := newTestServer(t)
	body := `{"graph":` + fanGraphJSON + `,"options":{"criterion":"size","parameter":"3"}}`
	w := doRequest(t, s, http.MethodPost, "/api/v1/analyses", body)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d; body %s", w.Code, http.StatusCreated, w.Body)
	}
	var run store.Run
	if err := json.Unmarshal(w.Body.Bytes(), &run); err != nil {
		t.Fatalf("decode run: %v", err)
	}
	if run.Options.Criterion != "size" || run.Options.Parameter != "3" {
		t.Errorf("recorded options = %+v, want size/3", run.Options)
	}
	if got := len(run.Result.Qualifiers); got != 4 {
		t.Errorf("qualifiers = %d, want 4", got)
	}
}

func TestCreateAnalysisErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"malformed json", "{", http.StatusBadRequest, "INVALID_INPUT"},
		{"missing graph", `{}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown edge target", `{"graph":{"nodes":[{"id":"a"}],"edges":[{"from":"a","to":"zz"}]}}`, http.StatusBadRequest, "INVALID_GRAPH"},
		{"unknown criterion", `{"graph":` + fanGraphJSON + `,"options":{"criterion":"colour"}}`, http.StatusBadRequest, "INVALID_CONFIGURATION"},
		{"bad parameter", `{"graph":` + fanGraphJSON + `,"options":{"parameter":"huge"}}`, http.StatusBadRequest, "INVALID_CONFIGURATION"},
	}

	s := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, s, http.MethodPost, "/api/v1/analyses", tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d; body %s", w.Code, tt.wantStatus, w.Body)
			}
			var resp errorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode error envelope: %v", err)
			}
			if resp.Error.Code != tt.wantCode {
				t.Errorf("error code = %q, want %q", resp.Error.Code, tt.wantCode)
			}
			if resp.Error.Message == "" {
				t.Error("error message should not be empty")
			}
		})
	}
}

func TestGetAnalysis(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodPost, "/api/v1/analyses", `{"graph":`+fanGraphJSON+`}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d; body %s", w.Code, w.Body)
	}
	var created store.Run
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode run: %v", err)
	}

	w = doRequest(t, s, http.MethodGet, "/api/v1/analyses/"+created.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d, want %d", w.Code, http.StatusOK)
	}
	var fetched store.Run
	if err := json.Unmarshal(w.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("decode run: %v", err)
	}
	if fetched.ID != created.ID || fetched.GraphHash != created.GraphHash {
		t.Errorf("fetched run %s/%s, want %s/%s", fetched.ID, fetched.GraphHash, created.ID, created.GraphHash)
	}
}

func TestGetAnalysisNotFound(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodGet, "/api/v1/analyses/no-such-run", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	var resp errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if resp.Error.Code != "RUN_NOT_FOUND" {
		t.Errorf("error code = %q, want RUN_NOT_FOUND", resp.Error.Code)
	}
}

func TestListAnalyses(t *testing.T) {
	s := newTestServer(t)

	var ids []string
	for range 2 {
		w := doRequest(t, s, http.MethodPost, "/api/v1/analyses", `{"graph":`+fanGraphJSON+`}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("create status = %d; body %s", w.Code, w.Body)
		}
		var run store.Run
		if err := json.Unmarshal(w.Body.Bytes(), &run); err != nil {
			t.Fatalf("decode run: %v", err)
		}
		ids = append(ids, run.ID)
	}

	w := doRequest(t, s, http.MethodGet, "/api/v1/analyses", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d, want %d", w.Code, http.StatusOK)
	}
	var resp listResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if resp.Count != 2 || len(resp.Runs) != 2 {
		t.Fatalf("list count = %d (%d runs), want 2", resp.Count, len(resp.Runs))
	}
	// Most recent first.
	if resp.Runs[0].ID != ids[1] || resp.Runs[1].ID != ids[0] {
		t.Errorf("list order = [%s %s], want [%s %s]", resp.Runs[0].ID, resp.Runs[1].ID, ids[1], ids[0])
	}

	w = doRequest(t, s, http.MethodGet, "/api/v1/analyses?limit=1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("limited list status = %d, want %d", w.Code, http.StatusOK)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if resp.Count != 1 || resp.Runs[0].ID != ids[1] {
		t.Errorf("limited list = %d runs starting %s, want 1 run starting %s", resp.Count, resp.Runs[0].ID, ids[1])
	}
}

func TestListAnalysesEmpty(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodGet, "/api/v1/analyses", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), `"runs":[]`) {
		t.Errorf("empty list should encode as [], got %s", w.Body)
	}
}

func TestListAnalysesBadLimit(t *testing.T) {
	s := newTestServer(t)
	for _, limit := range []string{"abc", "-1"} {
		w := doRequest(t, s, http.MethodGet, "/api/v1/analyses?limit="+limit, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("limit %q: status = %d, want %d", limit, w.Code, http.StatusBadRequest)
		}
	}
}

func TestDeleteAnalysis(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodPost, "/api/v1/analyses", `{"graph":`+fanGraphJSON+`}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d; body %s", w.Code, w.Body)
	}
	var run store.Run
	if err := json.Unmarshal(w.Body.Bytes(), &run); err != nil {
		t.Fatalf("decode run: %v", err)
	}

	w = doRequest(t, s, http.MethodDelete, "/api/v1/analyses/"+run.ID, "")
	if w.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want %d", w.Code, http.StatusNoContent)
	}

	w = doRequest(t, s, http.MethodGet, "/api/v1/analyses/"+run.ID, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want %d", w.Code, http.StatusNotFound)
	}

	// Deleting an absent run stays 204.
	w = doRequest(t, s, http.MethodDelete, "/api/v1/analyses/"+run.ID, "")
	if w.Code != http.StatusNoContent {
		t.Errorf("repeat delete status = %d, want %d", w.Code, http.StatusNoContent)
	}
}

type recordingServerHooks struct {
	requests  int
	responses int
	status    int
}

func (h *recordingServerHooks) OnRequest(_ context.Context, method, path string) {
	h.requests++
}

func (h *recordingServerHooks) OnResponse(_ context.Context, _, _ string, statusCode int, _ time.Duration) {
	h.responses++
	h.status = statusCode
}

func TestServerHooksFire(t *testing.T) {
	hooks := &recordingServerHooks{}
	observability.SetServerHooks(hooks)
	t.Cleanup(observability.Reset)

	s := newTestServer(t)
	if w := doRequest(t, s, http.MethodGet, "/healthz", ""); w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	if hooks.requests != 1 || hooks.responses != 1 {
		t.Errorf("hook calls = %d/%d, want 1/1", hooks.requests, hooks.responses)
	}
	if hooks.status != http.StatusOK {
		t.Errorf("recorded status = %d, want %d", hooks.status, http.StatusOK)
	}
}
