// Package record renders one activity item as a single normalized output line.
package record

import "strings"

// Record is one fully formed output line. Fields are space separated:
// channel label, timestamp, activity type, resource detail, title.
type Record struct {
	Channel   string
	Published string
	Type      string
	Detail    string
	Title     string
}

// Line renders the record. The timestamp is reduced to second resolution
// and the title is forced to plain ASCII so the line stays a single line
// regardless of what the remote side put in the title.
func (r Record) Line() string {
	return r.Channel + " " + NormalizeTimestamp(r.Published) + " " + r.Type + " " + r.Detail + " " + SanitizeTitle(r.Title)
}

// NormalizeTimestamp strips the fractional-seconds component from a
// fixed-width ISO-8601 UTC timestamp: "2020-05-01T12:00:00.123Z" becomes
// "2020-05-01T12:00:00Z". Timestamps without a fraction pass through.
func NormalizeTimestamp(ts string) string {
	i := strings.IndexByte(ts, '.')
	if i < 0 {
		return ts
	}
	return ts[:i] + "Z"
}

// SanitizeTitle replaces every code point >= 127 with a literal '.'.
// The replacement is 1:1 per code point, not per byte.
func SanitizeTitle(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range title {
		if r >= 127 {
			b.WriteByte('.')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
