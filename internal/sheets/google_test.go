package sheets

import (
	"encoding/base64"
	"testing"
)

func TestDecodeCredentialsRawJSON(t *testing.T) {
	key, err := decodeCredentials(`{"type":"service_account"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(key) != `{"type":"service_account"}` {
		t.Fatalf("unexpected key: %s", key)
	}
}

func TestDecodeCredentialsBase64(t *testing.T) {
	raw := `{"type":"service_account"}`
	key, err := decodeCredentials(base64.StdEncoding.EncodeToString([]byte(raw)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(key) != raw {
		t.Fatalf("unexpected key: %s", key)
	}
}

func TestDecodeCredentialsRejectsGarbage(t *testing.T) {
	if _, err := decodeCredentials("not json, not base64!!"); err == nil {
		t.Fatal("expected error")
	}
}

func TestValuesToRows(t *testing.T) {
	rows := valuesToRows([][]any{{"a", 1, true}, {"b"}})
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "a" || rows[0][1] != "1" || rows[0][2] != "true" {
		t.Fatalf("unexpected row: %v", rows[0])
	}
}
