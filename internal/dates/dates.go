// Package dates owns the Indonesian calendar conventions shared by the
// extractor (default creation date) and the reporting pipeline (stored-date
// parsing). Tables are immutable.
package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var dayNames = [7]string{
	"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu",
}

var monthNames = [12]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

var monthByName = func() map[string]time.Month {
	m := make(map[string]time.Month, 12)
	for i, name := range monthNames {
		m[strings.ToLower(name)] = time.Month(i + 1)
	}
	return m
}()

// FormatLong renders t in the sheet's long form, e.g. "Senin, 5 Mei 2025".
func FormatLong(t time.Time) string {
	return fmt.Sprintf("%s, %d %s %d",
		dayNames[int(t.Weekday())], t.Day(), monthNames[int(t.Month())-1], t.Year())
}

// FormatStamp renders a short timestamp, e.g. "05/05/2025 14.30.01".
func FormatStamp(t time.Time) string {
	return fmt.Sprintf("%02d/%02d/%d %02d.%02d.%02d",
		t.Day(), int(t.Month()), t.Year(), t.Hour(), t.Minute(), t.Second())
}

// ParseLong reads a long-form date back into a calendar day in loc. The
// weekday name is ignored; only day number, month name, and year matter.
// Historical rows carry inconsistent formats, so failure is reported by the
// bool rather than an error.
func ParseLong(s string, loc *time.Location) (time.Time, bool) {
	fields := strings.Fields(strings.ReplaceAll(strings.ToLower(s), ",", " "))
	if len(fields) < 4 {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(fields[1])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}
	month, ok := monthByName[fields[2]]
	if !ok {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(fields[3])
	if err != nil || year < 1000 {
		return time.Time{}, false
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc), true
}

// Jakarta returns the home timezone, falling back to a fixed UTC+7 zone when
// the system has no tzdata.
func Jakarta() *time.Location {
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		return time.FixedZone("WIB", 7*60*60)
	}
	return loc
}
