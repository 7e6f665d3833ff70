// Package config defines process configuration structures and loading.
//
// Conventions follow the rest of the codebase: New builds defaults, Load
// layers file and environment on top, and external errors are wrapped via
// this package's sentinel kinds.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// MetricsAddr configures the metrics/health listen address.
	MetricsAddr string `koanf:"metrics_addr"`

	// PollIntervalSeconds is the fixed delay between polling cycles.
	PollIntervalSeconds int `koanf:"poll_interval_seconds"`

	// DedupeSize bounds the submission-id dedupe cache.
	DedupeSize int `koanf:"dedupe_size"`

	Feed  FeedConfig  `koanf:"feed"`
	Sheet SheetConfig `koanf:"sheet"`

	// Problems is the contest problem set, in leaderboard column order.
	Problems []ProblemConfig `koanf:"problems"`

	// Battles are the configured 1v1 pairings.
	Battles []BattleConfig `koanf:"battles"`
}

// FeedConfig configures the judge submission feed.
type FeedConfig struct {
	BaseURL        string `koanf:"base_url"`
	Count          int    `koanf:"count"`
	TimeoutSeconds int    `koanf:"timeout_seconds"`
}

// SheetConfig configures the spreadsheet leaderboard sink.
type SheetConfig struct {
	CredentialsFile string `koanf:"credentials_file"`
	SpreadsheetID   string `koanf:"spreadsheet_id"`
	SheetName       string `koanf:"sheet_name"`
}

// ProblemConfig declares one problem and its point value.
type ProblemConfig struct {
	ContestID int    `koanf:"contest_id"`
	Index     string `koanf:"index"`
	Points    int    `koanf:"points"`
}

// TeamConfig binds a leaderboard team name to a judge handle.
type TeamConfig struct {
	Name   string `koanf:"name"`
	Handle string `koanf:"handle"`
}

// BattleConfig declares one battle; exactly two teams.
type BattleConfig struct {
	ID    string       `koanf:"id"`
	Teams []TeamConfig `koanf:"teams"`
}

// New returns a Config populated with defaults. Battles, problems and sheet
// parameters have no sensible defaults and must come from file or env.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		MetricsAddr:         ":9090",
		PollIntervalSeconds: 30,
		DedupeSize:          4096,
		Feed: FeedConfig{
			BaseURL:        "https://codeforces.com/api",
			Count:          10,
			TimeoutSeconds: 10,
		},
		Sheet: SheetConfig{
			SheetName: "Sheet1",
		},
	}
}
