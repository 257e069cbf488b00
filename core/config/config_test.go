package config

import "testing"

func base() *Config {
	cfg := &Config{}
	cfg.Telegram.Token = "t"
	return cfg
}

func TestNormalizeDefaultsToLongpoll(t *testing.T) {
	cfg := base()
	if err := Normalize(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Fatalf("run mode: %q", cfg.Telegram.RunMode)
	}
}

func TestNormalizeAcceptsPollingAlias(t *testing.T) {
	cfg := base()
	cfg.Telegram.RunMode = "Polling"
	if err := Normalize(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Fatalf("alias not normalized: %q", cfg.Telegram.RunMode)
	}
}

func TestNormalizeRequiresToken(t *testing.T) {
	if err := Normalize(&Config{}); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestNormalizeWebhookNeedsURL(t *testing.T) {
	cfg := base()
	cfg.Telegram.RunMode = RunModeWebhook
	cfg.Webhook.Listen = "0.0.0.0"
	cfg.Webhook.Port = 8443
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for missing webhook url")
	}
	cfg.Webhook.URL = "https://example.com/hook"
	if err := Normalize(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNormalizeRejectsUnknownExclude(t *testing.T) {
	cfg := base()
	cfg.RateLimit.ExcludeUpdates = []string{"Callback", "inline_query"}
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for unknown exclude value")
	}
	cfg.RateLimit.ExcludeUpdates = []string{"Callback", " message "}
	if err := Normalize(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RateLimit.ExcludeUpdates[0] != "callback" || cfg.RateLimit.ExcludeUpdates[1] != "message" {
		t.Fatalf("values not normalized: %v", cfg.RateLimit.ExcludeUpdates)
	}
}
