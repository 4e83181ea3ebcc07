package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/colsense/colsense/internal/config"
	"github.com/colsense/colsense/internal/core"
	"github.com/colsense/colsense/internal/csv"
	"github.com/colsense/colsense/internal/refdata"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()

	cfg := &config.Config{}
	cfg.Server.RequestTimeout = 60 * time.Second
	cfg.Logging.Level = "error"
	cfg.Logging.Format = "text"
	// Rate limiting and auth stay off: zero-value Rate.Enabled and
	// Security.RequireAPIKey are false.

	svc := core.NewService(refdata.MustLoad(), core.Config{DataDir: dir}, nil)
	return NewServer(svc, cfg), dir
}

func writeSample(t *testing.T, dir string) {
	t.Helper()
	records := [][]string{
		{"id", "ph_nb", "vendor"},
		{"1", "+91 6796233790", "Tresata pvt ltd."},
		{"2", "+1 2312953582", "Apple Inc."},
		{"3", "+44 2028323322", "Google LLC"},
	}
	if err := csv.Write(filepath.Join(dir, "input.csv"), records); err != nil {
		t.Fatalf("write sample: %v", err)
	}
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestHandleClassify_InlineValues(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/classify", map[string]any{
		"values": []string{"+91 6796233790", "+1 2312953582", "+44 2028323322"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp classifyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Result.Label != "phonenumber" {
		t.Errorf("label = %s, want phonenumber", resp.Result.Label)
	}
	if len(resp.Scores) != 4 {
		t.Errorf("scores = %d, want one per detector", len(resp.Scores))
	}
}

func TestHandleClassify_FileColumn(t *testing.T) {
	s, dir := newTestServer(t)
	writeSample(t, dir)

	rec := doJSON(t, s, http.MethodPost, "/api/classify", map[string]any{
		"file":   "input.csv",
		"column": "vendor",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp classifyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Result.Label != "companyname" {
		t.Errorf("label = %s, want companyname", resp.Result.Label)
	}
}

func TestHandleClassify_BadRequests(t *testing.T) {
	s, dir := newTestServer(t)
	writeSample(t, dir)

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{"empty body", map[string]any{}, http.StatusBadRequest},
		{"unknown column", map[string]any{"file": "input.csv", "column": "nope"}, http.StatusBadRequest},
		{"missing file", map[string]any{"file": "absent.csv", "column": "id"}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, s, http.MethodPost, "/api/classify", tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestHandleParse(t *testing.T) {
	s, dir := newTestServer(t)
	writeSample(t, dir)

	rec := doJSON(t, s, http.MethodPost, "/api/parse", map[string]any{"file": "input.csv"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var summary core.ParseSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !summary.Phone.Found || summary.Phone.Column != "ph_nb" {
		t.Errorf("phone selection = %+v, want ph_nb", summary.Phone)
	}
	if summary.Rows != 3 {
		t.Errorf("rows = %d, want 3", summary.Rows)
	}

	records, err := csv.Read(summary.OutputFile)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(records) != 4 {
		t.Errorf("output records = %d, want header + 3 rows", len(records))
	}
}

func TestHandleProcess(t *testing.T) {
	s, dir := newTestServer(t)
	writeSample(t, dir)

	rec := doJSON(t, s, http.MethodPost, "/api/process", map[string]any{"file": "input.csv"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res core.ProcessResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(res.Classifications) != 3 {
		t.Errorf("classifications = %d, want 3", len(res.Classifications))
	}
}

func TestHandleListFiles(t *testing.T) {
	s, dir := newTestServer(t)
	writeSample(t, dir)

	rec := doJSON(t, s, http.MethodGet, "/api/files", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp map[string][]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp["files"]) != 1 || resp["files"][0] != "input.csv" {
		t.Errorf("files = %v, want [input.csv]", resp["files"])
	}
}

func TestHandleHistory_NotConfigured(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/history", nil)
	if rec.Code != http.StatusNotImplemented {
		t.Errorf("status = %d, want 501", rec.Code)
	}
}

func TestAPIKeyAuth(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.Server.RequestTimeout = 60 * time.Second
	cfg.Security.RequireAPIKey = true
	cfg.Security.APIKeys = []string{"secret-key"}

	svc := core.NewService(refdata.MustLoad(), core.Config{DataDir: dir}, nil)
	s := NewServer(svc, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/files", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("without key: status = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/files", nil)
	req.Header.Set("X-API-Key", "wrong")
	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("wrong key: status = %d, want 403", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/files", nil)
	req.Header.Set("X-API-Key", "secret-key")
	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("valid key: status = %d, want 200", rec.Code)
	}

	// Health endpoint stays open.
	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("healthz: status = %d, want 200", rec.Code)
	}
}

func TestRateLimiter(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.Server.RequestTimeout = 60 * time.Second
	cfg.Rate.Enabled = true
	cfg.Rate.RequestsPerMinute = 3

	svc := core.NewService(refdata.MustLoad(), core.Config{DataDir: dir}, nil)
	s := NewServer(svc, cfg)

	var last int
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, req)
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("4th request status = %d, want 429", last)
	}
}
