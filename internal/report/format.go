package report

import (
	"fmt"
	"sort"
)

type RankedEntry struct {
	Rank   int
	Marker string
	Label  string
	Count  int
}

// medals mark the podium positions in technician rankings.
var medals = [3]string{"\U0001F947", "\U0001F948", "\U0001F949"}

// Rank sorts entries by count descending, stably, so ties keep their
// first-seen order. A limit > 0 truncates after sorting; remainder reports
// how many entries the truncation dropped.
func Rank(entries []Entry, limit int) (ranked []RankedEntry, remainder int) {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})

	if limit > 0 && len(sorted) > limit {
		remainder = len(sorted) - limit
		sorted = sorted[:limit]
	}

	ranked = make([]RankedEntry, 0, len(sorted))
	for i, e := range sorted {
		ranked = append(ranked, RankedEntry{
			Rank:   i + 1,
			Marker: rankMarker(i),
			Label:  e.Label,
			Count:  e.Count,
		})
	}
	return ranked, remainder
}

// RankPlain is Rank with plain ordinal markers for every position, used for
// channel and workzone listings.
func RankPlain(entries []Entry, limit int) ([]RankedEntry, int) {
	ranked, remainder := Rank(entries, limit)
	for i := range ranked {
		ranked[i].Marker = fmt.Sprintf("%d.", ranked[i].Rank)
	}
	return ranked, remainder
}

// WithoutSentinel drops the empty-group bucket entry, for rankings where an
// unknown technician row should not compete.
func WithoutSentinel(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Label != SentinelGroup {
			out = append(out, e)
		}
	}
	return out
}

func rankMarker(i int) string {
	if i < len(medals) {
		return medals[i]
	}
	return fmt.Sprintf("%d.", i+1)
}
