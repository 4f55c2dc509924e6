// Package config loads the YAML configuration of the login demo.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/loginmvi/internal/auth"
)

// Config is the effective configuration.
type Config struct {
	Backend Backend `yaml:"backend"`
	Theme   string  `yaml:"theme"`
	Log     string  `yaml:"log,omitempty"`
}

// Backend configures the simulated login backend.
type Backend struct {
	Delay    time.Duration  `yaml:"delay"`
	Timeout  time.Duration  `yaml:"timeout"`
	Accounts []auth.Account `yaml:"accounts,omitempty"`
}

// Default returns the built-in configuration: a two second stub that
// accepts any credentials.
func Default() Config {
	return Config{
		Backend: Backend{
			Delay:   auth.DefaultDelay,
			Timeout: 10 * time.Second,
		},
		Theme: "classic",
	}
}

// Load reads path over the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(b []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects negative durations, unknown themes and duplicate
// accounts.
func (c Config) Validate() error {
	if c.Backend.Delay < 0 {
		return fmt.Errorf("backend.delay: negative duration %v", c.Backend.Delay)
	}
	if c.Backend.Timeout < 0 {
		return fmt.Errorf("backend.timeout: negative duration %v", c.Backend.Timeout)
	}
	switch c.Theme {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("theme: unknown theme %q", c.Theme)
	}
	seen := make(map[string]bool, len(c.Backend.Accounts))
	for i, a := range c.Backend.Accounts {
		if a.Username == "" {
			return fmt.Errorf("backend.accounts[%d]: empty username", i)
		}
		if seen[a.Username] {
			return fmt.Errorf("backend.accounts[%d]: duplicate username %q", i, a.Username)
		}
		seen[a.Username] = true
	}
	return nil
}

// Stub builds the simulated backend described by c.
func (c Config) Stub() *auth.Stub {
	return &auth.Stub{Delay: c.Backend.Delay, Accounts: c.Backend.Accounts}
}

// YAML encodes c.
func (c Config) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}
