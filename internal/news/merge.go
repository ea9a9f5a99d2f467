// Package news holds the pure merge rules applied when a fetch cycle lands on
// top of the stored items.
package news

import "zaur-newsdesk/internal/model"

// MergeResult reports what a merge did.
type MergeResult struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
	Total   int `json:"total"`
}

// Merge applies incoming items over existing ones. An unknown ID is inserted;
// a known ID is replaced only when the incoming publish date is strictly
// newer, so out-of-order refetches are tolerated. Anything else is a no-op and
// not counted. Returns the merged snapshot, the items that actually changed
// (in incoming order, for store writes), and the counts. Applying the same
// batch twice yields Added=0, Updated=0 on the second pass.
func Merge(existing, incoming []model.NewsItem) ([]model.NewsItem, []model.NewsItem, MergeResult) {
	merged := make([]model.NewsItem, len(existing))
	copy(merged, existing)
	byID := make(map[string]int, len(merged))
	for i, it := range merged {
		byID[it.ID] = i
	}

	var res MergeResult
	changed := make([]model.NewsItem, 0, len(incoming))
	for _, in := range incoming {
		idx, ok := byID[in.ID]
		if !ok {
			byID[in.ID] = len(merged)
			merged = append(merged, in)
			changed = append(changed, in)
			res.Added++
			continue
		}
		if in.PublishDate.After(merged[idx].PublishDate) {
			merged[idx] = in
			changed = append(changed, in)
			res.Updated++
		}
	}
	res.Total = len(merged)
	return merged, changed, res
}
