package bot

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
telegram:
  token: "test-token"
  admin_ids: [1, 2]
  run_mode: longpoll

database:
  host: localhost
  port: "5432"
  user: u
  name: db

event:
  title: "Jeep Festival"
  dates: "18-20 сентября"
  fee_amount: "500 000 сум"
  card_number: "8600 0000 0000 0000"

flow:
  fields: [name, car, phone, people]
  locales: [ru]
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Telegram.Token != "test-token" {
		t.Fatalf("token: %q", cfg.Telegram.Token)
	}
	if !cfg.Telegram.IsAdmin(2) || cfg.Telegram.IsAdmin(3) {
		t.Fatal("admin list not applied")
	}
	if cfg.Event.Title != "Jeep Festival" {
		t.Fatalf("event title: %q", cfg.Event.Title)
	}

	fields, err := cfg.Flow.ParsedFields()
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	if len(fields) != 4 {
		t.Fatalf("got %d fields", len(fields))
	}
}

func TestLoadConfigMissingToken(t *testing.T) {
	body := `
telegram:
  admin_ids: [1]
flow:
  fields: [name, car, phone, people]
  locales: [ru]
`
	if _, err := LoadConfig(writeConfig(t, body)); err == nil {
		t.Fatal("expected error for missing token")
	}
}

func TestLoadConfigRejectsUnknownField(t *testing.T) {
	body := `
telegram:
  token: "t"
  admin_ids: [1]
flow:
  fields: [name, shoe_size]
  locales: [ru]
`
	if _, err := LoadConfig(writeConfig(t, body)); err == nil {
		t.Fatal("expected error for unknown flow field")
	}
}

func TestLoadConfigRejectsBadPhonePattern(t *testing.T) {
	body := `
telegram:
  token: "t"
  admin_ids: [1]
flow:
  fields: [name, car, phone, people]
  locales: [ru]
  strict_phone_pattern: "(["
`
	if _, err := LoadConfig(writeConfig(t, body)); err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("FEE_AMOUNT", "600 000 сум")
	cfg, err := LoadConfig(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Event.FeeAmount != "600 000 сум" {
		t.Fatalf("env override not applied: %q", cfg.Event.FeeAmount)
	}
}
