// Package discovery deterministically surfaces one "new" item per scheduled
// window. Selection depends only on the window seed and the candidate pool, so
// every process evaluating the same minute picks the same item.
package discovery

import (
	"sort"
	"time"

	"zaur-newsdesk/internal/commentary"
	"zaur-newsdesk/internal/detrand"
	"zaur-newsdesk/internal/model"
)

// WindowMinutes are the minute marks at which a discovery may fire.
var WindowMinutes = []int{10, 25, 40, 55}

// Check reports whether a discovery should fire at now. It fires only on an
// exact window minute, when nothing is currently being shown, and when at
// least one undiscovered item exists. The returned seed is hour*100+minute.
func Check(now time.Time, showingDiscovery bool, undiscovered int) (bool, int64) {
	if showingDiscovery || undiscovered <= 0 {
		return false, 0
	}
	m := now.Minute()
	for _, wm := range WindowMinutes {
		if m == wm {
			return true, detrand.WindowSeed(now)
		}
	}
	return false, 0
}

// Pick is the outcome of a deterministic discovery selection.
type Pick struct {
	Item             model.NewsItem
	DiscoveryComment string
	// Synthesized marks that the publish date was bumped to just past the
	// newest displayed item so the pick visually ranks first.
	Synthesized bool
}

// PickNew selects the discovery item for a window seed.
//
// The candidate pool starts as items newer than anything currently displayed
// and degrades through three widening tiers (drop the already-discovered,
// then anything not displayed, then everything) so it never comes up empty
// while at least one item exists. The final choice is pseudo-random within
// the newest quarter of the pool.
func PickNew(available, current []model.NewsItem, discovered map[string]bool, seed int64) (Pick, bool) {
	if len(available) == 0 {
		return Pick{}, false
	}

	var newestCurrent time.Time
	currentIDs := make(map[string]bool, len(current))
	for _, it := range current {
		currentIDs[it.ID] = true
		if it.PublishDate.After(newestCurrent) {
			newestCurrent = it.PublishDate
		}
	}

	pool := filterItems(available, func(it model.NewsItem) bool {
		return it.PublishDate.After(newestCurrent)
	})
	hadNewer := len(pool) > 0
	if !hadNewer {
		pool = available
	}

	if p := filterItems(pool, func(it model.NewsItem) bool { return !discovered[it.ID] }); len(p) > 0 {
		pool = p
	} else if p := filterItems(available, func(it model.NewsItem) bool { return !currentIDs[it.ID] }); len(p) > 0 {
		pool = p
	} else {
		pool = available
	}

	sorted := make([]model.NewsItem, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].PublishDate.Equal(sorted[j].PublishDate) {
			return sorted[i].PublishDate.After(sorted[j].PublishDate)
		}
		return sorted[i].ID < sorted[j].ID
	})

	window := len(sorted) / 4
	if window < 1 {
		window = 1
	}
	idx := int(detrand.SeededRandom(seed) * float64(window))

	p := Pick{
		Item:             sorted[idx],
		DiscoveryComment: commentary.DiscoveryComment(seed + 1),
	}
	if !hadNewer && !newestCurrent.IsZero() {
		p.Item.PublishDate = newestCurrent.Add(time.Minute)
		p.Synthesized = true
	}
	return p, true
}

func filterItems(items []model.NewsItem, keep func(model.NewsItem) bool) []model.NewsItem {
	out := make([]model.NewsItem, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
