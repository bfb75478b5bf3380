package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestDefaultBoostCaps(t *testing.T) {
	c := Default()
	if c.Boost.MultEffectiveMax != 2.5 || c.Boost.MultMax != 3 {
		t.Fatalf("boost caps = %.2f/%.2f, want 2.5/3", c.Boost.MultEffectiveMax, c.Boost.MultMax)
	}
	if c.Player.FollowRadius != c.Player.Radius {
		t.Fatalf("follow radius %.1f should equal player radius %.1f", c.Player.FollowRadius, c.Player.Radius)
	}
}

func TestSaveDefaultThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hookshot.toml")
	if err := SaveDefault(path); err != nil {
		t.Fatalf("SaveDefault: %v", err)
	}
	if err := SaveDefault(path); err == nil {
		t.Fatal("SaveDefault should refuse to overwrite")
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != Default() {
		t.Fatalf("loaded config differs from default:\n got %+v\nwant %+v", got, Default())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"tick rate", func(c *Config) { c.Server.TickRate = 0 }},
		{"radius", func(c *Config) { c.Hook.Radius = 0 }},
		{"boost caps", func(c *Config) { c.Boost.MultEffectiveMax = c.Boost.MultMax + 1 }},
		{"cutoff", func(c *Config) { c.Hook.CutoffDistance = -1 }},
		{"max players", func(c *Config) { c.Server.MaxPlayers = 0 }},
		{"no world", func(c *Config) { c.Server.World = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			if err := c.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("HOOKSHOT_TEST_VALUE=grapple\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HOOKSHOT_TEST_VALUE", "")
	os.Unsetenv("HOOKSHOT_TEST_VALUE")

	if err := LoadEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if got := Env("HOOKSHOT_TEST_VALUE", "fallback"); got != "grapple" {
		t.Fatalf("Env = %q, want grapple", got)
	}
	if got := Env("HOOKSHOT_TEST_UNSET", "fallback"); got != "fallback" {
		t.Fatalf("Env = %q, want fallback", got)
	}
}
