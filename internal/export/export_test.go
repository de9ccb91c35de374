package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rekapan-quality/bot/internal/dates"
	"github.com/rekapan-quality/bot/internal/models"
)

func TestCSVQuoting(t *testing.T) {
	headers := []string{"A", "B", "C"}
	rows := [][]string{
		{"plain", `with "quotes"`, "with,comma"},
		{"multi\nline", "x", "y"},
	}
	out, err := CSV(headers, rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := string(out)
	if !strings.HasPrefix(s, "A,B,C\n") {
		t.Fatalf("missing header line: %q", s)
	}
	if !strings.Contains(s, `"with ""quotes"""`) {
		t.Fatalf("quote escaping missing: %q", s)
	}
	if !strings.Contains(s, `"with,comma"`) {
		t.Fatalf("comma quoting missing: %q", s)
	}
	if !strings.Contains(s, "\"multi\nline\"") {
		t.Fatalf("newline quoting missing: %q", s)
	}
}

func TestCSVPadsShortRows(t *testing.T) {
	out, err := CSV([]string{"A", "B", "C"}, [][]string{{"x"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if lines[1] != "x,," {
		t.Fatalf("expected padded row, got %q", lines[1])
	}
}

func TestPDFGeneratesDocument(t *testing.T) {
	rows := [][]string{
		models.ActivationRecord{Tanggal: "Senin, 10 Juni 2024", Channel: "A", AO: "X1", Teknisi: "budi"}.Row(),
		models.ActivationRecord{Tanggal: "Senin, 10 Juni 2024", Channel: "B", AO: "X2", Teknisi: "ani"}.Row(),
	}
	now := time.Date(2024, time.June, 10, 12, 0, 0, 0, dates.Jakarta())
	out, err := PDF("DATA AKTIVASI", models.RecordHeader, rows, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("expected a PDF document, got %q", out[:min(8, len(out))])
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 3); got != "abc" {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := truncate("ab", 3); got != "ab" {
		t.Fatalf("short strings must pass through, got %q", got)
	}
}
