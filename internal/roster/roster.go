// Package roster looks registered technicians up in the MASTER sheet.
package roster

import (
	"context"
	"strings"

	"github.com/rekapan-quality/bot/internal/models"
	"github.com/rekapan-quality/bot/internal/report"
	"github.com/rekapan-quality/bot/internal/sheets"
)

// MASTER sheet columns: I holds the telegram handle, J the role, K the
// status. Only AKTIF rows are usable.
const (
	colHandle = 8
	colRole   = 9
	colStatus = 10

	statusActive = "AKTIF"
	roleAdmin    = "ADMIN"
)

type Service struct {
	Store sheets.Store
	Sheet string
}

// Lookup returns the active MASTER entry for a handle, or nil when the handle
// is unknown or not AKTIF. The lookup key is case-insensitive with a leading
// "@" stripped on both sides.
func (s *Service) Lookup(ctx context.Context, username string) (*models.RosterEntry, error) {
	want := report.NormalizeHandle(username)
	if want == "" {
		return nil, nil
	}

	rows, err := s.Store.Rows(ctx, s.Sheet)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(rows); i++ {
		handle := cell(rows[i], colHandle)
		status := strings.ToUpper(strings.TrimSpace(cell(rows[i], colStatus)))
		if report.NormalizeHandle(handle) == want && status == statusActive {
			return &models.RosterEntry{
				Handle: strings.TrimSpace(handle),
				Role:   strings.ToUpper(strings.TrimSpace(cell(rows[i], colRole))),
				Status: status,
			}, nil
		}
	}
	return nil, nil
}

// IsAdmin reports whether the handle maps to an active ADMIN entry.
func (s *Service) IsAdmin(ctx context.Context, username string) bool {
	entry, err := s.Lookup(ctx, username)
	if err != nil {
		return false
	}
	return entry != nil && entry.Role == roleAdmin
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
