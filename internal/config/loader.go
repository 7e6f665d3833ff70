package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if DUELBOARD_CONFIG is set
//  3. env (prefix DUELBOARD_, top-level keys only)
//
// The battle and problem lists are structured and come from the file layer.
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("DUELBOARD_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: DUELBOARD_LOG_LEVEL, DUELBOARD_METRICS_ADDR, ...
	// Keys map flat, preserving underscores to match the koanf tags.
	envProvider := env.Provider("DUELBOARD_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "duelboard_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the process cannot start with. A failure
// here is fatal at startup; nothing is recoverable at runtime.
func (c *Config) Validate() error {
	if c.PollIntervalSeconds <= 0 {
		return fmt.Errorf("%w: poll_interval_seconds must be positive", ErrInvalidConfig)
	}

	if len(c.Problems) == 0 {
		return fmt.Errorf("%w: at least one problem is required", ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(c.Problems))
	for _, p := range c.Problems {
		if p.ContestID <= 0 || p.Index == "" {
			return fmt.Errorf("%w: every problem needs a contest_id and index", ErrInvalidConfig)
		}
		key := fmt.Sprintf("%d/%s", p.ContestID, p.Index)
		if p.Points <= 0 {
			return fmt.Errorf("%w: problem %s needs a positive point value", ErrInvalidConfig, key)
		}
		if seen[key] {
			return fmt.Errorf("%w: duplicate problem %s", ErrInvalidConfig, key)
		}
		seen[key] = true
	}

	if len(c.Battles) == 0 {
		return fmt.Errorf("%w: at least one battle is required", ErrInvalidConfig)
	}
	for _, b := range c.Battles {
		if b.ID == "" {
			return fmt.Errorf("%w: every battle needs an id", ErrInvalidConfig)
		}
		if len(b.Teams) != 2 {
			return fmt.Errorf("%w: battle %s needs exactly two teams", ErrInvalidConfig, b.ID)
		}
		for _, t := range b.Teams {
			if t.Name == "" || t.Handle == "" {
				return fmt.Errorf("%w: battle %s team needs a name and handle", ErrInvalidConfig, b.ID)
			}
		}
		if b.Teams[0].Name == b.Teams[1].Name {
			return fmt.Errorf("%w: battle %s pairs a team against itself", ErrInvalidConfig, b.ID)
		}
	}

	if c.Sheet.SpreadsheetID == "" {
		return fmt.Errorf("%w: sheet spreadsheet_id is required", ErrInvalidConfig)
	}
	if c.Sheet.SheetName == "" {
		return fmt.Errorf("%w: sheet sheet_name is required", ErrInvalidConfig)
	}
	return nil
}
