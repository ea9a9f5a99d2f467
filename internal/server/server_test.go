package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"zaur-newsdesk/internal/discovery"
	"zaur-newsdesk/internal/model"
	"zaur-newsdesk/internal/storage"
)

func newTestServer(t *testing.T, st storage.Store, sources []model.NewsSource) *Server {
	t.Helper()
	now := func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) }
	eng := discovery.NewEngine(st, sources, discovery.Config{Now: now})
	return New(st, eng, sources, Config{PerSourceCap: 2, Now: now})
}

func getJSON(t *testing.T, h http.Handler, path string, out any) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return rec.Code
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, storage.NewMemoryStore(), nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz returned %d", rec.Code)
	}
}

func TestNewsEndpointBalancesAndComments(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStore()
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	sources := []model.NewsSource{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}

	seedItems := []model.NewsItem{
		{ID: "a-1", Title: "AI breakthrough announced", SourceID: "a", Category: "technology", PublishDate: base.Add(3 * time.Hour)},
		{ID: "a-2", Title: "Quantum chip ships", SourceID: "a", Category: "technology", PublishDate: base.Add(2 * time.Hour)},
		{ID: "a-3", Title: "Third story", SourceID: "a", Category: "technology", PublishDate: base.Add(time.Hour)},
		{ID: "b-1", Title: "Space probe launches", SourceID: "b", Category: "science", PublishDate: base},
	}
	for _, it := range seedItems {
		if _, err := st.Upsert(ctx, it); err != nil {
			t.Fatal(err)
		}
	}

	srv := newTestServer(t, st, sources)
	var resp struct {
		Items []struct {
			ID      string `json:"id"`
			Comment string `json:"comment"`
		} `json:"items"`
	}
	if code := getJSON(t, srv.Router(), "/api/news", &resp); code != http.StatusOK {
		t.Fatalf("news returned %d", code)
	}
	// cap of 2 per source drops a-3
	if len(resp.Items) != 3 {
		t.Fatalf("got %d items, want 3", len(resp.Items))
	}
	seen := map[string]bool{}
	for _, it := range resp.Items {
		if it.ID == "a-3" {
			t.Error("over-cap item a-3 served")
		}
		if it.Comment == "" {
			t.Errorf("item %s has no comment", it.ID)
		}
		if seen[it.Comment] {
			t.Errorf("duplicate comment %q in one response", it.Comment)
		}
		seen[it.Comment] = true
	}

	// comments are persisted on first render
	c, err := st.GetComment(ctx, "a-1")
	if err != nil {
		t.Fatal(err)
	}
	if c == "" {
		t.Error("comment for a-1 not persisted")
	}
}

func TestNewsEndpointCategoryFilter(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStore()
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	sources := []model.NewsSource{{ID: "a", Name: "A"}}

	st.Upsert(ctx, model.NewsItem{ID: "a-1", Title: "t", SourceID: "a", Category: "technology", PublishDate: base})
	st.Upsert(ctx, model.NewsItem{ID: "a-2", Title: "s", SourceID: "a", Category: "science", PublishDate: base})

	srv := newTestServer(t, st, sources)
	var resp struct {
		Items []model.NewsItem `json:"items"`
	}
	getJSON(t, srv.Router(), "/api/news?category=science", &resp)
	if len(resp.Items) != 1 || resp.Items[0].ID != "a-2" {
		t.Fatalf("category filter returned %+v", resp.Items)
	}
}

func TestNewsEndpointPlaceholders(t *testing.T) {
	sources := []model.NewsSource{{ID: "a", Name: "Alpha Wire"}}
	srv := newTestServer(t, storage.NewMemoryStore(), sources)
	var resp struct {
		Items []model.NewsItem `json:"items"`
	}
	getJSON(t, srv.Router(), "/api/news", &resp)
	if len(resp.Items) != 1 {
		t.Fatalf("empty store served %d items, want 1 placeholder", len(resp.Items))
	}
	if resp.Items[0].Source != "Alpha Wire" {
		t.Errorf("placeholder source %q", resp.Items[0].Source)
	}
}

func TestDiscoveryEndpointNull(t *testing.T) {
	srv := newTestServer(t, storage.NewMemoryStore(), nil)
	var resp map[string]json.RawMessage
	if code := getJSON(t, srv.Router(), "/api/discovery", &resp); code != http.StatusOK {
		t.Fatalf("discovery returned %d", code)
	}
	if string(resp["discovery"]) != "null" {
		t.Errorf("expected null discovery, got %s", resp["discovery"])
	}
}

func TestStatusEndpoint(t *testing.T) {
	srv := newTestServer(t, storage.NewMemoryStore(), nil)
	var resp struct {
		Status string `json:"status"`
	}
	if code := getJSON(t, srv.Router(), "/api/status", &resp); code != http.StatusOK {
		t.Fatalf("status returned %d", code)
	}
	if resp.Status != "idle" {
		t.Errorf("status %q, want idle", resp.Status)
	}
}
