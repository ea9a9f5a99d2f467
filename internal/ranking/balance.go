// Package ranking turns the raw item pool into a fair, source-diverse feed.
package ranking

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"zaur-newsdesk/internal/model"
)

// DefaultPerSourceCap is the usual per-source limit. When four or fewer
// sources are active the cap widens to 3 so the feed does not run short.
const DefaultPerSourceCap = 2

// Balance caps items per source and orders the result by recency.
//
// First pass: the newest item of every source, so each source is represented.
// Second pass: up to cap-1 more per source. A dominant source (substring match
// on sourceID) is hard-capped at one item total. The final order is publish
// date descending with ties broken by source priority descending. Pass
// perSourceCap <= 0 to use the default.
func Balance(items []model.NewsItem, sources []model.NewsSource, perSourceCap int, dominantSource string) []model.NewsItem {
	if len(items) == 0 {
		return nil
	}

	var order []string
	groups := map[string][]model.NewsItem{}
	for _, it := range items {
		if _, ok := groups[it.SourceID]; !ok {
			order = append(order, it.SourceID)
		}
		groups[it.SourceID] = append(groups[it.SourceID], it)
	}
	for _, id := range order {
		g := groups[id]
		sort.SliceStable(g, func(i, j int) bool {
			return g[i].PublishDate.After(g[j].PublishDate)
		})
	}

	if perSourceCap <= 0 {
		perSourceCap = DefaultPerSourceCap
		if len(order) <= 4 {
			perSourceCap = 3
		}
	}
	capFor := func(sourceID string) int {
		if dominantSource != "" && strings.Contains(sourceID, dominantSource) {
			return 1
		}
		return perSourceCap
	}

	out := make([]model.NewsItem, 0, len(order)*perSourceCap)
	for _, id := range order {
		out = append(out, groups[id][0])
	}
	for _, id := range order {
		g := groups[id]
		limit := capFor(id)
		for i := 1; i < len(g) && i < limit; i++ {
			out = append(out, g[i])
		}
	}

	priorities := make(map[string]int, len(sources))
	for _, s := range sources {
		priorities[s.ID] = s.Priority
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].PublishDate.Equal(out[j].PublishDate) {
			return out[i].PublishDate.After(out[j].PublishDate)
		}
		return priorities[out[i].SourceID] > priorities[out[j].SourceID]
	})
	return out
}

// Placeholders synthesizes one stand-in item per source so the panel never
// renders an empty feed when every source failed this cycle.
func Placeholders(sources []model.NewsSource, now time.Time) []model.NewsItem {
	out := make([]model.NewsItem, 0, len(sources))
	for i, s := range sources {
		out = append(out, model.NewsItem{
			ID:          fmt.Sprintf("%s-placeholder", s.ID),
			Title:       fmt.Sprintf("%s is quiet right now", s.Name),
			Summary:     "This source could not be reached. It will be retried on the next cycle.",
			URL:         s.URL,
			PublishDate: now.Add(-time.Duration(i) * time.Minute),
			Source:      s.Name,
			SourceID:    s.ID,
			Category:    s.Category,
		})
	}
	return out
}
