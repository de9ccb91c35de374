package sheets

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// GoogleStore reads and appends rows of one Google Sheets spreadsheet through
// a service account.
type GoogleStore struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

// NewGoogle builds a store from a service-account key, given raw or
// base64-encoded JSON.
func NewGoogle(ctx context.Context, credentials string, spreadsheetID string) (*GoogleStore, error) {
	key, err := decodeCredentials(credentials)
	if err != nil {
		return nil, err
	}
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsJSON(key),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &GoogleStore{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func (g *GoogleStore) Rows(ctx context.Context, sheet string) ([][]string, error) {
	resp, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, sheet).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", sheet, err)
	}
	return valuesToRows(resp.Values), nil
}

func (g *GoogleStore) Append(ctx context.Context, sheet string, row []string) error {
	values := make([]any, len(row))
	for i, cell := range row {
		values[i] = cell
	}
	_, err := g.svc.Spreadsheets.Values.
		Append(g.spreadsheetID, sheet, &sheetsapi.ValueRange{Values: [][]any{values}}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append %s: %w", sheet, err)
	}
	return nil
}

func decodeCredentials(credentials string) ([]byte, error) {
	credentials = strings.TrimSpace(credentials)
	if strings.HasPrefix(credentials, "{") {
		return []byte(credentials), nil
	}
	decoded, err := base64.StdEncoding.DecodeString(credentials)
	if err != nil {
		return nil, fmt.Errorf("service account key is neither JSON nor base64: %w", err)
	}
	return decoded, nil
}

func valuesToRows(values [][]any) [][]string {
	rows := make([][]string, 0, len(values))
	for _, v := range values {
		row := make([]string, len(v))
		for i, cell := range v {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows
}
