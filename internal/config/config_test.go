package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(WithEnvMap(map[string]string{}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Server.Addr() != ":8080" {
		t.Errorf("unexpected addr %s", cfg.Server.Addr())
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("unexpected read timeout: %s", cfg.Server.ReadTimeout)
	}
	if cfg.Site.PublicDir != "public" || cfg.Site.LocalesDir != "locales" {
		t.Errorf("unexpected site dirs: %+v", cfg.Site)
	}
	if cfg.Site.Dev {
		t.Errorf("expected dev mode off by default")
	}
	wantTo := []string{"portugalgeng.comercial@gmail.com", "fernando.karakanian12@gmail.com"}
	if !reflect.DeepEqual(cfg.Mail.To, wantTo) {
		t.Errorf("expected default recipients %v, got %v", wantTo, cfg.Mail.To)
	}
	if cfg.Mail.From != "contato@portugalengenharia.com" {
		t.Errorf("unexpected default sender %s", cfg.Mail.From)
	}
	if cfg.Mail.FromName != "Portugal Engenharia" {
		t.Errorf("unexpected default sender name %s", cfg.Mail.FromName)
	}
	if cfg.Mail.Transport != TransportSendmail {
		t.Errorf("expected sendmail transport, got %s", cfg.Mail.Transport)
	}
	if cfg.Contact.MaxUpload != 10<<20 {
		t.Errorf("unexpected upload cap %d", cfg.Contact.MaxUpload)
	}
	if cfg.Contact.RatePerMinute != 6 || cfg.Contact.RateBurst != 3 {
		t.Errorf("unexpected rate limits %+v", cfg.Contact)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("unexpected log level %s", cfg.LogLevel)
	}
}

func TestLoadWithOverrides(t *testing.T) {
	env := map[string]string{
		"SITE_WEB_PORT":         "9090",
		"PORT":                  "7070",
		"SITE_WEB_DEV":          "true",
		"SITE_WEB_BASE_URL":     "https://portugalengenharia.com/",
		"SITE_WEB_READ_TIMEOUT": "20s",
		"MAIL_TO":               " a@example.com ,, b@example.com ",
		"MAIL_FROM":             "site@example.com",
		"MAIL_TRANSPORT":        "SMTP",
		"MAIL_SMTP_ADDR":        "smtp.example.com:587",
		"MAIL_SMTP_USERNAME":    "user",
		"MAIL_SMTP_PASSWORD":    "pass",
		"CONTACT_RATE_PER_MIN":  "0",
		"CONTACT_MAX_UPLOAD":    "1024",
		"LOG_LEVEL":             "DEBUG",
	}

	cfg, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("expected SITE_WEB_PORT to win, got %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 20*time.Second {
		t.Errorf("unexpected read timeout %s", cfg.Server.ReadTimeout)
	}
	if !cfg.Site.Dev {
		t.Errorf("expected dev mode")
	}
	if cfg.Site.BaseURL != "https://portugalengenharia.com" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.Site.BaseURL)
	}
	if !reflect.DeepEqual(cfg.Mail.To, []string{"a@example.com", "b@example.com"}) {
		t.Errorf("unexpected recipients %v", cfg.Mail.To)
	}
	if cfg.Mail.Transport != TransportSMTP || cfg.Mail.SMTPAddr != "smtp.example.com:587" {
		t.Errorf("unexpected mail config %+v", cfg.Mail)
	}
	if cfg.Contact.RatePerMinute != 0 {
		t.Errorf("expected rate limiting disabled, got %d", cfg.Contact.RatePerMinute)
	}
	if cfg.Contact.MaxUpload != 1024 {
		t.Errorf("unexpected upload cap %d", cfg.Contact.MaxUpload)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("unexpected log level %s", cfg.LogLevel)
	}
}

func TestLoadFallsBackToPlatformPort(t *testing.T) {
	cfg, err := Load(WithEnvMap(map[string]string{"PORT": "7070", "DEV": "1"}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Errorf("expected PORT fallback, got %s", cfg.Server.Port)
	}
	if !cfg.Site.Dev {
		t.Errorf("expected DEV to enable dev mode")
	}
}

func TestLoadValidation(t *testing.T) {
	env := map[string]string{
		"SITE_WEB_PORT":      "http",
		"MAIL_TO":            "not-an-address",
		"MAIL_TRANSPORT":     "pigeon",
		"CONTACT_MAX_UPLOAD": "-1",
	}

	_, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := []string{"Server.Port", "Mail.To", "Mail.Transport", "Contact.MaxUpload"}
	if !reflect.DeepEqual(vErr.Fields(), want) {
		t.Errorf("expected fields %v, got %v", want, vErr.Fields())
	}
}

func TestLoadSMTPRequiresAddr(t *testing.T) {
	_, err := Load(WithEnvMap(map[string]string{"MAIL_TRANSPORT": "smtp"}), WithoutSystemEnv(), WithEnvFile(""))
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !reflect.DeepEqual(vErr.Fields(), []string{"Mail.SMTPAddr"}) {
		t.Errorf("unexpected fields %v", vErr.Fields())
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# local overrides\nexport SITE_WEB_PORT=9191\nMAIL_FROM='dev@example.com'\nMAIL_TRANSPORT=log\nBROKEN\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := Load(WithEnvFile(path), WithoutSystemEnv(), WithEnvMap(map[string]string{"MAIL_TRANSPORT": "sendmail"}))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "9191" {
		t.Errorf("expected port from .env, got %s", cfg.Server.Port)
	}
	if cfg.Mail.From != "dev@example.com" {
		t.Errorf("expected quoted value unwrapped, got %s", cfg.Mail.From)
	}
	if cfg.Mail.Transport != TransportSendmail {
		t.Errorf("expected env map to override .env, got %s", cfg.Mail.Transport)
	}
}

func TestEnvironmentValuesMissingFileIsIgnored(t *testing.T) {
	values, err := EnvironmentValues(WithEnvFile(filepath.Join(t.TempDir(), "missing.env")), WithoutSystemEnv())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(values) != 0 {
		t.Errorf("expected empty environment, got %v", values)
	}
}
