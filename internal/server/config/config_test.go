package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if cfg.Address != ":8080" {
		t.Fatalf("address default mismatch: %q", cfg.Address)
	}
	if cfg.TokenValidity != 24*time.Hour {
		t.Fatalf("token validity default mismatch: %v", cfg.TokenValidity)
	}
	if cfg.SecretKey == "" || cfg.DatabaseDSN == "" {
		t.Fatalf("secret key and DSN must have dev defaults")
	}
	if cfg.BcryptCost != 10 {
		t.Fatalf("bcrypt cost default mismatch: %d", cfg.BcryptCost)
	}
}

func TestParseEnv_OverridesOnlySetVariables(t *testing.T) {
	t.Setenv("SECRET_KEY", "env-secret")
	t.Setenv("TOKEN_VALIDITY", "2h")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	if cfg.SecretKey != "env-secret" {
		t.Fatalf("secret not overridden: %q", cfg.SecretKey)
	}
	if cfg.TokenValidity != 2*time.Hour {
		t.Fatalf("validity not overridden: %v", cfg.TokenValidity)
	}
	if cfg.Address != ":8080" {
		t.Fatalf("unset variable must keep default, got %q", cfg.Address)
	}
}

func TestParseFlags_Overrides(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"server", "-a", ":9090", "-t", "48"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	if cfg.Address != ":9090" {
		t.Fatalf("address flag not applied: %q", cfg.Address)
	}
	if cfg.TokenValidity != 48*time.Hour {
		t.Fatalf("validity flag not applied: %v", cfg.TokenValidity)
	}
}
