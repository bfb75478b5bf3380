package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from the given .env files into the process
// environment. Missing files are not an error.
func LoadEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Env returns the variable v, or fallback when it is unset or empty.
func Env(v, fallback string) string {
	if b := os.Getenv(v); b != "" {
		return b
	}
	return fallback
}
