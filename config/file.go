package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

// SaveDefault writes the default configuration to path. It refuses to
// overwrite an existing file.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.New("config file already exists")
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	data, err := toml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("encode default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Load reads a TOML file on top of the defaults, so a file only needs the
// values it changes.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Decode(data)
}

// Decode parses TOML bytes on top of the defaults.
func Decode(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the simulation cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Server.TickRate <= 0:
		return fmt.Errorf("server tick rate must be positive, got %d", c.Server.TickRate)
	case c.Server.MaxPlayers <= 0:
		return fmt.Errorf("server max players must be positive, got %d", c.Server.MaxPlayers)
	case c.Server.World == "":
		return errors.New("server world must be set")
	case c.Player.Radius <= 0 || c.Hook.Radius <= 0:
		return errors.New("player and hook radius must be positive")
	case c.Boost.MultEffectiveMax > c.Boost.MultMax:
		return fmt.Errorf("effective boost cap %.2f exceeds boost max %.2f", c.Boost.MultEffectiveMax, c.Boost.MultMax)
	case c.Hook.CutoffDistance <= 0:
		return errors.New("hook cutoff distance must be positive")
	}
	return nil
}
