package export

import (
	"bytes"
	"encoding/csv"
)

// CSV renders headers and rows as comma-delimited text. Quoting of values
// containing the delimiter, quotes, or newlines follows the standard writer.
func CSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, err
	}
	for _, row := range rows {
		padded := row
		if len(row) < len(headers) {
			padded = append(append([]string(nil), row...), make([]string, len(headers)-len(row))...)
		}
		if err := w.Write(padded); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
