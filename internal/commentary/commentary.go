// Package commentary maps item titles and categories to Zaur's pseudo-random
// but stable one-liners. Selection is keyed off detrand.HashString so repeat
// renders of the same title produce the same remark.
package commentary

import (
	"strings"

	"zaur-newsdesk/internal/detrand"
)

// Generate returns the commentary for an item, or "" when none applies.
//
// A previously persisted comment (base) is returned unchanged. Otherwise the
// first keyword found in the lowercased title selects a response by title
// hash; if that response was already handed out in this rendering pass the
// category pool is probed instead, and only when every category option is
// exhausted is a duplicate allowed. The used set is mutated by the caller's
// whole rendering pass and is never persisted.
func Generate(title, category, base string, used map[string]struct{}) string {
	if base != "" {
		return base
	}
	lower := strings.ToLower(title)
	var candidate string
	for _, e := range keywordResponses {
		if strings.Contains(lower, e.keyword) {
			candidate = e.responses[detrand.HashString(title)%int64(len(e.responses))]
			break
		}
	}
	if candidate != "" {
		if _, taken := used[candidate]; !taken {
			used[candidate] = struct{}{}
			return candidate
		}
	}
	options := categoryComments[strings.ToLower(strings.TrimSpace(category))]
	if len(options) == 0 {
		return ""
	}
	n := int64(len(options))
	seed := detrand.HashString(title + category)
	for attempt := int64(0); attempt < n; attempt++ {
		c := options[(seed+attempt)%n]
		if _, taken := used[c]; !taken {
			used[c] = struct{}{}
			return c
		}
	}
	// every option is taken; duplicate as last resort
	c := options[seed%n]
	used[c] = struct{}{}
	return c
}

// DiscoveryComment picks the lead-in line for a discovery window seed.
func DiscoveryComment(seed int64) string {
	idx := int(detrand.SeededRandom(seed) * float64(len(discoveryComments)))
	return discoveryComments[idx]
}

// DiscoveryCommentCount is exposed for selection-range tests.
func DiscoveryCommentCount() int {
	return len(discoveryComments)
}
