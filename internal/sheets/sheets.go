// Package sheets is the record-store collaborator. The backing store is a
// shared spreadsheet: tabs are named collections of fixed-width string rows,
// the first row being a header the core logic ignores.
package sheets

import "context"

type Store interface {
	// Rows returns every row of a tab, header included, in sheet order.
	Rows(ctx context.Context, sheet string) ([][]string, error)
	// Append adds one row at the bottom of a tab.
	Append(ctx context.Context, sheet string, row []string) error
}
