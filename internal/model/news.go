package model

import "time"

// NewsItem is a single normalized item from a configured source.
// JSON field names match what the panel widget consumes.
type NewsItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	URL         string    `json:"url"`
	PublishDate time.Time `json:"publishDate"`
	Source      string    `json:"source"`
	SourceID    string    `json:"sourceId"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Author      string    `json:"author"`
}

// NewsSource is an operator-configured feed origin. Priority is a tie-break
// weight (higher wins) applied only when two items share a publish timestamp.
type NewsSource struct {
	ID       string `json:"id" yaml:"id" mapstructure:"id"`
	Name     string `json:"name" yaml:"name" mapstructure:"name"`
	URL      string `json:"url" yaml:"url" mapstructure:"url"`
	Category string `json:"category" yaml:"category" mapstructure:"category"`
	Priority int    `json:"priority" yaml:"priority" mapstructure:"priority"`
}

// DiscoveredItem records when an item was surfaced as a discovery.
// Re-discovering the same item refreshes Timestamp instead of duplicating.
type DiscoveredItem struct {
	ItemID    string    `json:"itemId"`
	Timestamp time.Time `json:"timestamp"`
}

// Comment is the persisted commentary for an item. One logical comment per
// item; the latest write wins.
type Comment struct {
	ItemID    string    `json:"itemId"`
	Comment   string    `json:"comment"`
	Timestamp time.Time `json:"timestamp"`
}

// Discovery is a news item decorated for a scheduled discovery window.
type Discovery struct {
	Item             NewsItem  `json:"item"`
	DiscoveryComment string    `json:"discoveryComment"`
	Comment          string    `json:"comment,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}
