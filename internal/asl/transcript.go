package asl

import (
	"strings"
	"time"
)

// DefaultWordGap is the pause between stable letters that separates words
// in an assembled transcript.
const DefaultWordGap = 3 * time.Second

// Entry is one stable letter observed at a point in time.
type Entry struct {
	Letter Letter
	At     time.Time
}

// Transcript assembles stable-letter entries into text, oldest first. A
// pause longer than wordGap between consecutive letters inserts a space;
// Unknown and None entries are skipped. Non-positive wordGap uses the
// default.
func Transcript(entries []Entry, wordGap time.Duration) string {
	if wordGap <= 0 {
		wordGap = DefaultWordGap
	}

	var b strings.Builder
	var last time.Time
	for _, e := range entries {
		if e.Letter == LetterUnknown || e.Letter == LetterNone {
			continue
		}
		if b.Len() > 0 && e.At.Sub(last) > wordGap {
			b.WriteByte(' ')
		}
		b.WriteString(string(e.Letter))
		last = e.At
	}
	return b.String()
}
