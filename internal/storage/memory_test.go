package storage

import (
	"context"
	"testing"
	"time"

	"zaur-newsdesk/internal/model"
)

func memItem(id string, date time.Time) model.NewsItem {
	return model.NewsItem{ID: id, Title: id, PublishDate: date, Category: "technology"}
}

func TestMemoryUpsertNewerWins(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	written, err := s.Upsert(ctx, memItem("a", base))
	if err != nil || !written {
		t.Fatalf("initial insert: written=%v err=%v", written, err)
	}

	// same date: no-op
	written, _ = s.Upsert(ctx, memItem("a", base))
	if written {
		t.Error("equal publish date must not overwrite")
	}

	// older: no-op
	written, _ = s.Upsert(ctx, memItem("a", base.Add(-time.Hour)))
	if written {
		t.Error("older publish date must not overwrite")
	}

	// newer: replaces
	newer := memItem("a", base.Add(time.Hour))
	newer.Title = "fresher"
	written, _ = s.Upsert(ctx, newer)
	if !written {
		t.Fatal("newer publish date must overwrite")
	}
	items, _ := s.Query(ctx, "")
	if len(items) != 1 || items[0].Title != "fresher" {
		t.Fatalf("store state wrong after update: %+v", items)
	}
}

func TestMemoryQueryFiltersAndOrders(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, cat := range []string{"technology", "science", "technology"} {
		it := memItem(string(rune('a'+i)), base.Add(time.Duration(i)*time.Hour))
		it.Category = cat
		s.Upsert(ctx, it)
	}

	all, _ := s.Query(ctx, "")
	if len(all) != 3 {
		t.Fatalf("got %d items, want 3", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].PublishDate.After(all[i-1].PublishDate) {
			t.Fatal("query result not ordered newest first")
		}
	}

	tech, _ := s.Query(ctx, "technology")
	if len(tech) != 2 {
		t.Fatalf("category filter returned %d items, want 2", len(tech))
	}
}

func TestMemoryPruneKeepsNewest(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		s.Upsert(ctx, memItem(string(rune('a'+i)), base.Add(time.Duration(i)*time.Hour)))
	}

	pruned, err := s.Prune(ctx, 4)
	if err != nil {
		t.Fatal(err)
	}
	if pruned != 6 {
		t.Errorf("pruned %d, want 6", pruned)
	}
	items, _ := s.Query(ctx, "")
	if len(items) != 4 {
		t.Fatalf("kept %d items, want 4", len(items))
	}
	// the survivors are the 4 newest
	for _, it := range items {
		if it.PublishDate.Before(base.Add(6 * time.Hour)) {
			t.Errorf("kept an old item %s (%v)", it.ID, it.PublishDate)
		}
	}

	// idempotent
	pruned, _ = s.Prune(ctx, 4)
	if pruned != 0 {
		t.Errorf("second prune removed %d items, want 0", pruned)
	}
}

func TestMemoryComments(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	got, err := s.GetComment(ctx, "missing")
	if err != nil || got != "" {
		t.Fatalf("missing comment: got %q err=%v", got, err)
	}

	s.SaveComment(ctx, "a", "first")
	s.SaveComment(ctx, "a", "second")
	got, _ = s.GetComment(ctx, "a")
	if got != "second" {
		t.Errorf("latest write must win, got %q", got)
	}
}

func TestMemoryDiscoveryRefresh(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	s.AddDiscovery(ctx, "a")
	clock = clock.Add(time.Hour)
	s.AddDiscovery(ctx, "a")

	ds, _ := s.ListDiscoveries(ctx)
	if len(ds) != 1 {
		t.Fatalf("re-discovery duplicated the record: %+v", ds)
	}
	if !ds[0].Timestamp.Equal(clock) {
		t.Errorf("timestamp not refreshed: %v", ds[0].Timestamp)
	}
}

func TestMemoryPruneDiscoveries(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	s.AddDiscovery(ctx, "old")
	clock = clock.Add(48 * time.Hour)
	s.AddDiscovery(ctx, "fresh")

	pruned, err := s.PruneDiscoveries(ctx, 24*time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if pruned != 1 {
		t.Fatalf("pruned %d, want 1", pruned)
	}
	ds, _ := s.ListDiscoveries(ctx)
	if len(ds) != 1 || ds[0].ItemID != "fresh" {
		t.Fatalf("wrong survivor: %+v", ds)
	}
}
