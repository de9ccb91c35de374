package config

import (
	"os"
	"path/filepath"
	"testing"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	env := "TELEGRAM_TOKEN=123:abc\nSHEET_ID=sheet-1\nGOOGLE_SERVICE_ACCOUNT_KEY={\"type\":\"service_account\"}\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	chdir(t, dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TelegramToken != "123:abc" {
		t.Fatalf("unexpected token %q", cfg.TelegramToken)
	}
	if cfg.RecordSheet != "REKAPAN QUALITY" || cfg.MasterSheet != "MASTER" {
		t.Fatalf("unexpected sheet defaults: %q %q", cfg.RecordSheet, cfg.MasterSheet)
	}
	if cfg.Port != "8080" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %q %q", cfg.Port, cfg.LogLevel)
	}
	if cfg.UseWebhook() {
		t.Fatal("webhook should be off without PUBLIC_URL")
	}
}

func TestLoadRejectsMissingToken(t *testing.T) {
	dir := t.TempDir()
	env := "SHEET_ID=sheet-1\nGOOGLE_SERVICE_ACCOUNT_KEY=x\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	chdir(t, dir)

	if _, err := Load(); err == nil {
		t.Fatal("expected validation error for missing TELEGRAM_TOKEN")
	}
}
