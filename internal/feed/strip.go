package feed

import (
	"regexp"
	"strings"
)

var htmlTagRe = regexp.MustCompile(`<[^>]+>`) // best-effort removal

// entityReplacer unescapes the handful of entities that actually show up in
// feed descriptions.
var entityReplacer = strings.NewReplacer(
	"&quot;", "\"",
	"&apos;", "'",
	"&#39;", "'",
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
)

// StripHTML removes markup from a feed description. Feed HTML is simple, so a
// tag regex plus a small entity table is enough.
func StripHTML(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	s = htmlTagRe.ReplaceAllString(s, "")
	return strings.TrimSpace(entityReplacer.Replace(s))
}

// Truncate bounds s to max runes, appending an ellipsis when it was cut.
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return strings.TrimSpace(string(r[:max])) + "..."
}
