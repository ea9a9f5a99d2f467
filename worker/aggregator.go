package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"zaur-newsdesk/internal/ai"
	"zaur-newsdesk/internal/model"
	"zaur-newsdesk/internal/news"
	"zaur-newsdesk/internal/storage"
)

// SourceFetcher retrieves the normalized items of one source.
type SourceFetcher interface {
	Fetch(ctx context.Context, src model.NewsSource) ([]model.NewsItem, error)
}

// maxSummariesPerCycle bounds AI enrichment so a large backlog cannot stall a
// cycle.
const maxSummariesPerCycle = 5

// Aggregator periodically fans out across all configured sources, merges the
// results into the store, and prunes by count. One source failing only costs
// that source's items for the cycle.
type Aggregator struct {
	Fetcher      SourceFetcher
	Store        storage.Store
	Sources      []model.NewsSource
	Interval     time.Duration
	FetchTimeout time.Duration
	MaxItems     int
	Summarizer   ai.Summarizer // optional
}

func (w *Aggregator) Name() string { return "aggregator" }

func (w *Aggregator) Start(ctx context.Context) error {
	if w.Interval <= 0 {
		w.Interval = 30 * time.Minute
	}
	t := time.NewTicker(w.Interval)
	defer t.Stop()

	// initial run
	w.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			w.runOnce(ctx)
		}
	}
}

func (w *Aggregator) runOnce(ctx context.Context) {
	res, err := w.RunOnce(ctx)
	if err != nil {
		slog.Error("aggregator: cycle failed", "error", err)
		return
	}
	slog.Info("aggregator: cycle completed", "added", res.Added, "updated", res.Updated, "total", res.Total)
}

// RunOnce executes a single aggregation pass and reports the merge counts.
func (w *Aggregator) RunOnce(ctx context.Context) (news.MergeResult, error) {
	incoming := w.collect(ctx)
	if w.Summarizer != nil {
		w.enrich(ctx, incoming)
	}

	existing, err := w.Store.Query(ctx, "")
	if err != nil {
		return news.MergeResult{}, err
	}
	_, changed, res := news.Merge(existing, incoming)
	for _, it := range changed {
		if _, err := w.Store.Upsert(ctx, it); err != nil {
			slog.Error("aggregator: upsert failed", "id", it.ID, "error", err)
		}
	}
	if w.MaxItems > 0 {
		pruned, err := w.Store.Prune(ctx, w.MaxItems)
		if err != nil {
			slog.Error("aggregator: prune failed", "error", err)
		} else if pruned > 0 {
			slog.Info("aggregator: pruned old items", "count", pruned)
		}
	}
	return res, nil
}

type fetchResult struct {
	source model.NewsSource
	items  []model.NewsItem
	err    error
}

// collect fans out one goroutine per source and settles all of them; failed
// sources contribute zero items this cycle.
func (w *Aggregator) collect(ctx context.Context) []model.NewsItem {
	timeout := w.FetchTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	results := make(chan fetchResult, len(w.Sources))
	var wg sync.WaitGroup
	for _, src := range w.Sources {
		wg.Add(1)
		go func(src model.NewsSource) {
			defer wg.Done()
			fctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			items, err := w.Fetcher.Fetch(fctx, src)
			results <- fetchResult{source: src, items: items, err: err}
		}(src)
	}
	wg.Wait()
	close(results)

	var incoming []model.NewsItem
	for r := range results {
		if r.err != nil {
			slog.Error("aggregator: source fetch failed", "source", r.source.ID, "error", r.err)
			continue
		}
		slog.Info("aggregator: source fetched", "source", r.source.ID, "items", len(r.items))
		incoming = append(incoming, r.items...)
	}
	return incoming
}

// enrich fills empty summaries via the AI summarizer, best effort.
func (w *Aggregator) enrich(ctx context.Context, items []model.NewsItem) {
	done := 0
	for i := range items {
		if done >= maxSummariesPerCycle {
			return
		}
		if items[i].Summary != "" {
			continue
		}
		s, err := w.Summarizer.SummarizeItem(ctx, items[i].Title, items[i].URL)
		if err != nil {
			slog.Error("aggregator: summarize failed", "id", items[i].ID, "error", err)
			continue
		}
		items[i].Summary = s
		done++
	}
}
