package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.ExternalBaseURL != "http://localhost:8080" {
		t.Errorf("ExternalBaseURL = %q", cfg.ExternalBaseURL)
	}
	if cfg.ProfileCacheTTL != 10*time.Minute {
		t.Errorf("ProfileCacheTTL = %v, want 10m", cfg.ProfileCacheTTL)
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{
		DBUser: "app", DBPassword: "secret", DBHost: "db", DBPort: "5433",
		DBName: "accounts", DBSSLMode: "disable",
	}
	want := "postgres://app:secret@db:5433/accounts?sslmode=disable"
	if got := cfg.PostgresDSN(); got != want {
		t.Errorf("PostgresDSN() = %q, want %q", got, want)
	}
}

func TestCSVAccessors(t *testing.T) {
	cfg := &Config{
		CORSAllowedOrigins: "http://a.test, http://b.test ,",
		ElasticsearchAddrs: "",
	}
	origins := cfg.CORSOrigins()
	if len(origins) != 2 || origins[0] != "http://a.test" || origins[1] != "http://b.test" {
		t.Errorf("CORSOrigins() = %v", origins)
	}
	if addrs := cfg.ESAddrs(); len(addrs) != 0 {
		t.Errorf("ESAddrs() = %v, want empty", addrs)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PROFILE_CACHE_TTL", "30s")
	t.Setenv("MAIL_SEND_ENABLED", "false")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.ProfileCacheTTL != 30*time.Second {
		t.Errorf("ProfileCacheTTL = %v, want 30s", cfg.ProfileCacheTTL)
	}
	if cfg.MailSendEnabled {
		t.Error("MailSendEnabled should be false")
	}
}
