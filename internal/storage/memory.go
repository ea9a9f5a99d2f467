package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"zaur-newsdesk/internal/model"
)

// MemoryStore is the in-process backend used for tests and zero-dependency
// runs. Deployments are single-instance, so a plain mutex is all the
// coordination needed.
type MemoryStore struct {
	mu          sync.RWMutex
	items       map[string]model.NewsItem
	comments    map[string]model.Comment
	discoveries map[string]time.Time
	now         func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items:       make(map[string]model.NewsItem),
		comments:    make(map[string]model.Comment),
		discoveries: make(map[string]time.Time),
		now:         time.Now,
	}
}

func (s *MemoryStore) Upsert(ctx context.Context, item model.NewsItem) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.items[item.ID]; ok && !item.PublishDate.After(existing.PublishDate) {
		return false, nil
	}
	s.items[item.ID] = item
	return true, nil
}

func (s *MemoryStore) Query(ctx context.Context, category string) ([]model.NewsItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.NewsItem, 0, len(s.items))
	for _, it := range s.items {
		if category != "" && it.Category != category {
			continue
		}
		out = append(out, it)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].PublishDate.Equal(out[j].PublishDate) {
			return out[i].PublishDate.After(out[j].PublishDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) Prune(ctx context.Context, maxItems int) (int, error) {
	if maxItems <= 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) <= maxItems {
		return 0, nil
	}
	all := make([]model.NewsItem, 0, len(s.items))
	for _, it := range s.items {
		all = append(all, it)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if !all[i].PublishDate.Equal(all[j].PublishDate) {
			return all[i].PublishDate.After(all[j].PublishDate)
		}
		return all[i].ID < all[j].ID
	})
	pruned := 0
	for _, it := range all[maxItems:] {
		delete(s.items, it.ID)
		pruned++
	}
	return pruned, nil
}

func (s *MemoryStore) SaveComment(ctx context.Context, itemID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments[itemID] = model.Comment{ItemID: itemID, Comment: text, Timestamp: s.now()}
	return nil
}

func (s *MemoryStore) GetComment(ctx context.Context, itemID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.comments[itemID].Comment, nil
}

func (s *MemoryStore) AddDiscovery(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.discoveries[itemID] = s.now()
	return nil
}

func (s *MemoryStore) ListDiscoveries(ctx context.Context) ([]model.DiscoveredItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.DiscoveredItem, 0, len(s.discoveries))
	for id, ts := range s.discoveries {
		out = append(out, model.DiscoveredItem{ItemID: id, Timestamp: ts})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ItemID < out[j].ItemID
	})
	return out, nil
}

func (s *MemoryStore) PruneDiscoveries(ctx context.Context, maxAge time.Duration) (int, error) {
	if maxAge <= 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-maxAge)
	pruned := 0
	for id, ts := range s.discoveries {
		if ts.Before(cutoff) {
			delete(s.discoveries, id)
			pruned++
		}
	}
	return pruned, nil
}

func (s *MemoryStore) Close() error { return nil }
