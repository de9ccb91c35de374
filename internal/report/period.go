// Package report filters stored records into calendar windows and turns them
// into ranked summaries.
package report

import (
	"regexp"
	"strconv"
	"time"

	"github.com/rekapan-quality/bot/internal/dates"
)

type Period string

const (
	PeriodAll     Period = "all"
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

func ParsePeriod(s string) Period {
	switch Period(s) {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return Period(s)
	default:
		return PeriodAll
	}
}

// DateWindow is an inclusive calendar-day span: Start at 00:00:00, End at
// 23:59:59. Recomputed per query, never stored.
type DateWindow struct {
	Start time.Time
	End   time.Time
}

func (w DateWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

var explicitDatePattern = regexp.MustCompile(`(\d{1,2})[/\-](\d{1,2})[/\-](\d{4})`)

// ParseExplicitDate reads a D/M/YYYY (or D-M-YYYY) anchor date.
func ParseExplicitDate(s string, loc *time.Location) (time.Time, bool) {
	m := explicitDatePattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc), true
}

// Resolve computes the window for a period around an anchor date. When
// explicitDate is set but malformed, the query silently degrades to the
// current period anchored at now; callers needing strict filtering must
// validate the date upstream. A PeriodAll request returns no window.
func Resolve(period Period, explicitDate string, now time.Time, loc *time.Location) *DateWindow {
	if period == PeriodAll {
		return nil
	}
	anchor := now.In(loc)
	if explicitDate != "" {
		if d, ok := ParseExplicitDate(explicitDate, loc); ok {
			anchor = d
		}
	}
	anchor = time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, loc)

	var start, end time.Time
	switch period {
	case PeriodDaily:
		start = anchor
		end = anchor
	case PeriodWeekly:
		// Monday-start weeks: a Sunday anchor belongs to the week that
		// started six days earlier.
		offset := int(anchor.Weekday()) - int(time.Monday)
		if anchor.Weekday() == time.Sunday {
			offset = 6
		}
		start = anchor.AddDate(0, 0, -offset)
		end = start.AddDate(0, 0, 6)
	case PeriodMonthly:
		start = time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 1, -1)
	}
	return &DateWindow{
		Start: start,
		End:   time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, loc),
	}
}

// ParseRecordDate reads a stored record's long-form date. Unparsable dates
// make the record invisible to window filtering, not an error.
func ParseRecordDate(s string, loc *time.Location) (time.Time, bool) {
	return dates.ParseLong(s, loc)
}
