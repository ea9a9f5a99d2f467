package discovery

import (
	"context"
	"testing"
	"time"

	"zaur-newsdesk/internal/model"
	"zaur-newsdesk/internal/storage"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, 3, 1, hour, minute, 0, 0, time.UTC)
}

func item(id string, ts time.Time) model.NewsItem {
	return model.NewsItem{ID: id, Title: id, SourceID: "s", Category: "technology", PublishDate: ts}
}

func TestCheckWindowMinutes(t *testing.T) {
	ok, seed := Check(at(10, 10), false, 1)
	if !ok || seed != 1010 {
		t.Fatalf("10:10 -> ok=%v seed=%d, want ok=true seed=1010", ok, seed)
	}
	if ok, _ := Check(at(10, 11), false, 1); ok {
		t.Error("10:11 must not fire")
	}
	for _, m := range []int{10, 25, 40, 55} {
		if ok, _ := Check(at(14, m), false, 1); !ok {
			t.Errorf("14:%02d should fire", m)
		}
	}
}

func TestCheckSuppressedWhileShowing(t *testing.T) {
	if ok, _ := Check(at(10, 10), true, 1); ok {
		t.Error("must not fire while a discovery is showing")
	}
	if ok, _ := Check(at(10, 10), false, 0); ok {
		t.Error("must not fire with no undiscovered items")
	}
}

func TestPickNewDeterministic(t *testing.T) {
	base := at(9, 0)
	available := []model.NewsItem{
		item("a", base.Add(4 * time.Hour)),
		item("b", base.Add(3 * time.Hour)),
		item("c", base.Add(2 * time.Hour)),
		item("d", base.Add(1 * time.Hour)),
	}
	current := []model.NewsItem{item("d", base.Add(1 * time.Hour))}
	discovered := map[string]bool{}

	p1, ok1 := PickNew(available, current, discovered, 1010)
	p2, ok2 := PickNew(available, current, discovered, 1010)
	if !ok1 || !ok2 {
		t.Fatal("expected picks")
	}
	if p1.Item.ID != p2.Item.ID || p1.DiscoveryComment != p2.DiscoveryComment {
		t.Fatalf("identical inputs picked different items: %q vs %q", p1.Item.ID, p2.Item.ID)
	}
}

func TestPickNewPrefersNewestQuarter(t *testing.T) {
	base := at(9, 0)
	// 8 items newer than current: window is the newest 2
	available := make([]model.NewsItem, 0, 8)
	for i := 0; i < 8; i++ {
		available = append(available, item(string(rune('a'+i)), base.Add(time.Duration(i+1)*time.Hour)))
	}
	current := []model.NewsItem{item("z", base)}

	for seed := int64(0); seed < 50; seed++ {
		p, ok := PickNew(available, current, map[string]bool{}, seed)
		if !ok {
			t.Fatal("expected a pick")
		}
		if p.Item.ID != "h" && p.Item.ID != "g" {
			t.Fatalf("seed %d picked %q, outside the newest quarter", seed, p.Item.ID)
		}
	}
}

func TestPickNewFallbackTiers(t *testing.T) {
	base := at(9, 0)
	a := item("a", base.Add(2*time.Hour))
	b := item("b", base.Add(1*time.Hour))
	current := []model.NewsItem{a, b}

	// everything discovered and displayed: still returns something
	p, ok := PickNew([]model.NewsItem{a, b}, current, map[string]bool{"a": true, "b": true}, 7)
	if !ok {
		t.Fatal("pick must degrade gracefully, not fail")
	}

	// nothing newer than current: publish date is synthesized past the newest
	if !p.Synthesized {
		t.Error("expected a synthesized publish date when no newer item existed")
	}
	if !p.Item.PublishDate.Equal(base.Add(2*time.Hour + time.Minute)) {
		t.Errorf("synthesized date %v, want newest current +60s", p.Item.PublishDate)
	}
}

func TestPickNewSkipsDiscovered(t *testing.T) {
	base := at(9, 0)
	available := []model.NewsItem{
		item("seen", base.Add(2*time.Hour)),
		item("fresh", base.Add(1*time.Hour)),
	}
	p, ok := PickNew(available, nil, map[string]bool{"seen": true}, 3)
	if !ok || p.Item.ID != "fresh" {
		t.Fatalf("picked %q, want the undiscovered item", p.Item.ID)
	}
}

func TestPickNewEmpty(t *testing.T) {
	if _, ok := PickNew(nil, nil, nil, 1); ok {
		t.Fatal("no items must yield no pick")
	}
}

func TestEngineTickFiresOncePerWindow(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStore()
	base := at(10, 0)
	for i := 0; i < 4; i++ {
		st.Upsert(ctx, item(string(rune('a'+i)), base.Add(time.Duration(i)*time.Minute)))
	}

	clock := at(10, 10)
	eng := NewEngine(st, nil, Config{
		DisplayFor: 5 * time.Minute,
		Now:        func() time.Time { return clock },
	})

	d, err := eng.Tick(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if d == nil {
		t.Fatal("expected a discovery at 10:10")
	}
	if eng.Current() == nil {
		t.Fatal("discovery should be showing")
	}

	// same window again: suppressed
	if d2, _ := eng.Tick(ctx); d2 != nil {
		t.Fatal("second tick in the same window fired again")
	}

	// discovery persisted
	ds, _ := st.ListDiscoveries(ctx)
	if len(ds) != 1 || ds[0].ItemID != d.Item.ID {
		t.Fatalf("discovery not persisted: %+v", ds)
	}

	// comment persisted and stable
	c, _ := st.GetComment(ctx, d.Item.ID)
	if c != d.Comment {
		t.Errorf("persisted comment %q != returned %q", c, d.Comment)
	}

	// off-window minute: nothing fires even after display lapses
	clock = at(10, 17)
	if eng.Current() != nil {
		t.Fatal("display window should have lapsed")
	}
	if d3, _ := eng.Tick(ctx); d3 != nil {
		t.Fatal("10:17 must not fire")
	}

	// next window fires a new discovery
	clock = at(10, 25)
	d4, err := eng.Tick(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if d4 == nil {
		t.Fatal("expected a discovery at 10:25")
	}
	if d4.Item.ID == d.Item.ID {
		t.Error("already-discovered item surfaced again while alternatives existed")
	}
}

func TestSessionTransitions(t *testing.T) {
	s := NewSession()
	if s.Status() != StatusIdle {
		t.Fatalf("initial status %q", s.Status())
	}
	s.BeginFetch()
	if s.Status() != StatusFetching {
		t.Fatalf("after BeginFetch: %q", s.Status())
	}
	s.BeginRefresh()
	if s.Status() != StatusRefreshing {
		t.Fatalf("after BeginRefresh: %q", s.Status())
	}
	s.Fail()
	if s.Status() != StatusError {
		t.Fatalf("after Fail: %q", s.Status())
	}
	s.Retry()
	if s.Status() != StatusFetching {
		t.Fatalf("after Retry: %q", s.Status())
	}
	s.Done()
	if s.Status() != StatusIdle {
		t.Fatalf("after Done: %q", s.Status())
	}
}
