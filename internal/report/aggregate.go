package report

import (
	"strings"
	"time"

	"github.com/rekapan-quality/bot/internal/models"
)

// SentinelGroup buckets records whose group field is empty.
const SentinelGroup = "-"

// Bucket counts records per group key, remembering first-seen insertion order
// so equal counts never reorder between runs on the same input.
type Bucket struct {
	keys   []string
	counts map[string]int
}

func NewBucket() *Bucket {
	return &Bucket{counts: map[string]int{}}
}

func (b *Bucket) Add(key string) {
	if _, ok := b.counts[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.counts[key]++
}

func (b *Bucket) Len() int {
	return len(b.keys)
}

type Entry struct {
	Label string
	Count int
}

// Entries returns the bucket in insertion order. Ordering for display is the
// formatter's job.
func (b *Bucket) Entries() []Entry {
	out := make([]Entry, 0, len(b.keys))
	for _, k := range b.keys {
		out = append(out, Entry{Label: k, Count: b.counts[k]})
	}
	return out
}

type Summary struct {
	Total        int
	ByChannel    *Bucket
	ByWorkzone   *Bucket
	ByTechnician *Bucket
}

// Aggregate filters records by window and/or technician identity and counts
// the survivors per channel, workzone, and technician. Total is the retained
// record count; a record contributes to all three buckets. Records with
// unparsable dates are dropped silently when a window is set.
func Aggregate(records []models.ActivationRecord, window *DateWindow, technician string, loc *time.Location) Summary {
	s := Summary{
		ByChannel:    NewBucket(),
		ByWorkzone:   NewBucket(),
		ByTechnician: NewBucket(),
	}
	wantTech := NormalizeHandle(technician)

	for _, rec := range records {
		if window != nil {
			d, ok := ParseRecordDate(rec.Tanggal, loc)
			if !ok || !window.Contains(d) {
				continue
			}
		}
		if wantTech != "" && NormalizeHandle(rec.Teknisi) != wantTech {
			continue
		}
		s.Total++
		s.ByChannel.Add(groupKey(rec.Channel))
		s.ByWorkzone.Add(groupKey(rec.Workzone))
		s.ByTechnician.Add(groupKey(rec.Teknisi))
	}
	return s
}

func groupKey(v string) string {
	v = strings.ToUpper(strings.TrimSpace(v))
	if v == "" {
		return SentinelGroup
	}
	return v
}

// NormalizeHandle lower-cases a technician identity and strips a leading "@".
func NormalizeHandle(s string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "@"))
}
