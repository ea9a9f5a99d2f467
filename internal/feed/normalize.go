package feed

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"zaur-newsdesk/internal/detrand"
	"zaur-newsdesk/internal/model"
)

// SummaryMaxLen bounds the stripped description carried on an item.
const SummaryMaxLen = 280

// ItemID derives the stable identity for a feed item: the source ID plus an
// 8-hex-digit truncated hash of the item's GUID, or of title+link when the
// feed carries no GUID. Refetching the same item must yield the same ID so
// upserts deduplicate.
func ItemID(sourceID, key string) string {
	return fmt.Sprintf("%s-%08x", sourceID, uint32(detrand.HashString(key)))
}

// Normalize converts raw feed items into uniform NewsItems. A malformed item
// is skipped and logged, never aborting the batch; a missing or unparseable
// publish date is substituted with now.
func Normalize(items []*gofeed.Item, src model.NewsSource, now time.Time) []model.NewsItem {
	out := make([]model.NewsItem, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		title := strings.TrimSpace(it.Title)
		link := strings.TrimSpace(it.Link)
		if title == "" && link == "" {
			slog.Warn("feed: skipping malformed item", "source", src.ID)
			continue
		}

		key := strings.TrimSpace(it.GUID)
		if key == "" {
			key = title + link
		}

		published := now
		if it.PublishedParsed != nil {
			published = *it.PublishedParsed
		} else if it.UpdatedParsed != nil {
			published = *it.UpdatedParsed
		}

		desc := it.Description
		if strings.TrimSpace(desc) == "" {
			desc = it.Content
		}

		out = append(out, model.NewsItem{
			ID:          ItemID(src.ID, key),
			Title:       title,
			Summary:     Truncate(StripHTML(desc), SummaryMaxLen),
			URL:         link,
			PublishDate: published,
			Source:      src.Name,
			SourceID:    src.ID,
			Category:    src.Category,
			ImageURL:    imageURL(it),
			Author:      authorName(it),
		})
	}
	return out
}

func imageURL(it *gofeed.Item) string {
	if it.Image != nil && it.Image.URL != "" {
		return it.Image.URL
	}
	for _, enc := range it.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") && enc.URL != "" {
			return enc.URL
		}
	}
	return ""
}

func authorName(it *gofeed.Item) string {
	if it.Author != nil && it.Author.Name != "" {
		return it.Author.Name
	}
	for _, a := range it.Authors {
		if a != nil && a.Name != "" {
			return a.Name
		}
	}
	return ""
}
