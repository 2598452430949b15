package config

import "testing"

func TestLoadFailsWithoutAPIKeys(t *testing.T) {
	t.Setenv("KYOO_APIKEYS", "")
	_, err := Load("")
	if err == nil {
		t.Fatal("expected error when KYOO_APIKEYS is unset")
	}
	if _, ok := err.(*MissingAPIKeysError); !ok {
		t.Fatalf("expected MissingAPIKeysError, got %T", err)
	}
}

func TestLoadAppliesDefaultsAndEnv(t *testing.T) {
	t.Setenv("KYOO_APIKEYS", "secret-key,other-key")
	t.Setenv("RC_PORT", "9000")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000 (from env)", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want default 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Resolver.FirstAPIKey() != "secret-key" {
		t.Errorf("FirstAPIKey() = %q, want secret-key", cfg.Resolver.FirstAPIKey())
	}
}
