// Package export renders record sets into downloadable documents.
package export

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/rekapan-quality/bot/internal/dates"
)

const maxCellLen = 50

// PDF renders headers and rows as a landscape A4 table. Page overflow is
// handled by the document engine; long cell values are truncated like the
// sheet export always has been.
func PDF(title string, headers []string, rows [][]string, generatedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithMaxGridSize(len(headers)).
		WithPageNumber(props.PageNumber{
			Pattern: "Hal. {current}/{total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(8, text.NewCol(len(headers), title, props.Text{
		Size:  14,
		Style: fontstyle.Bold,
		Align: align.Center,
	}))
	m.AddRow(6, text.NewCol(len(headers), "Generated: "+dates.FormatStamp(generatedAt)+" WIB", props.Text{
		Size:  8,
		Align: align.Center,
	}))

	headerCols := make([]core.Col, 0, len(headers))
	for _, h := range headers {
		headerCols = append(headerCols, text.NewCol(1, h, props.Text{Size: 6, Style: fontstyle.Bold}))
	}
	m.AddRow(7, headerCols...)

	for _, row := range rows {
		cols := make([]core.Col, 0, len(headers))
		for i := range headers {
			cell := ""
			if i < len(row) {
				cell = truncate(row[i], maxCellLen)
			}
			cols = append(cols, text.NewCol(1, cell, props.Text{Size: 5}))
		}
		m.AddRow(6, cols...)
	}

	m.AddRow(8, text.NewCol(len(headers), fmt.Sprintf("Total Records: %d", len(rows)), props.Text{
		Size:  8,
		Align: align.Right,
	}))

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
