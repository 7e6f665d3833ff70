// Package app wires configuration, adapters and the resolution engine into
// a runnable service.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/duelboard/internal/adapters/feed"
	"github.com/okian/duelboard/internal/adapters/sheet"
	"github.com/okian/duelboard/internal/config"
	"github.com/okian/duelboard/internal/domain/dedupe"
	"github.com/okian/duelboard/internal/domain/model"
	"github.com/okian/duelboard/internal/domain/resolve"
	"github.com/okian/duelboard/internal/poller"
	"github.com/okian/duelboard/pkg/logger"
	"github.com/okian/duelboard/pkg/metrics"
)

const shutdownTimeout = 30 * time.Second

// Service owns the polling loop and its collaborators for the process
// lifetime.
type Service struct {
	mu sync.Mutex

	cfg *config.Config

	// Collaborators; injectable for tests, built from config otherwise.
	feed resolve.Feed
	sink resolve.Sink

	engine *resolve.Engine
	poller *poller.Poller

	started bool
	logger  logger.Logger
}

// New constructs a Service for the given, already-validated configuration.
func New(cfg *config.Config, opts ...Option) *Service {
	s := &Service{cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the engine from configuration and launches the polling loop.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("app")
	}

	battles := battlesFromConfig(s.cfg)
	problems := problemsFromConfig(s.cfg)

	if s.feed == nil {
		s.feed = feed.New(
			feed.WithBaseURL(s.cfg.Feed.BaseURL),
			feed.WithCount(s.cfg.Feed.Count),
			feed.WithTimeout(time.Duration(s.cfg.Feed.TimeoutSeconds)*time.Second),
		)
	}
	if s.sink == nil {
		snk, err := sheet.New(ctx, s.cfg.Sheet.SpreadsheetID, s.cfg.Sheet.SheetName, problems,
			sheet.WithCredentialsFile(s.cfg.Sheet.CredentialsFile),
		)
		if err != nil {
			return fmt.Errorf("build leaderboard sink: %w", err)
		}
		s.sink = snk
	}

	s.engine = resolve.New(battles, problems, s.feed, s.sink,
		resolve.WithLogger(s.logger.Named("resolve")),
		resolve.WithDeduper(dedupe.New(dedupe.WithMaxSize(s.cfg.DedupeSize))),
	)
	s.poller = poller.New(s.engine,
		time.Duration(s.cfg.PollIntervalSeconds)*time.Second,
		poller.WithLogger(s.logger.Named("poller")),
	)

	go s.poller.Run(ctx)

	metrics.UpdateBattleCount(len(battles))
	metrics.UpdateProblemCount(len(problems))

	s.started = true
	s.logger.Info(ctx, "battle resolution service started",
		logger.Int("battles", len(battles)),
		logger.Int("problems", len(problems)),
		logger.Int("pollIntervalSeconds", s.cfg.PollIntervalSeconds),
	)
	return nil
}

// Stop shuts the polling loop down, waiting for an in-flight cycle.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.poller.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "poller did not stop cleanly", logger.Error(err))
	}

	s.started = false
	s.logger.Info(context.Background(), "battle resolution service stopped")
}

// Outcome exposes the engine's current state for one battle/problem pair.
func (s *Service) Outcome(battleID, problemKey string) (resolve.Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine == nil {
		return resolve.Outcome{}, false
	}
	return s.engine.Outcome(battleID, problemKey)
}

// GetStats returns a service snapshot for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]interface{}{
		"started":             s.started,
		"battles":             len(s.cfg.Battles),
		"problems":            len(s.cfg.Problems),
		"pollIntervalSeconds": s.cfg.PollIntervalSeconds,
	}
}

// battlesFromConfig converts configured battle definitions to domain values.
// Config validation guarantees exactly two teams per battle.
func battlesFromConfig(cfg *config.Config) []model.Battle {
	battles := make([]model.Battle, 0, len(cfg.Battles))
	for _, b := range cfg.Battles {
		battles = append(battles, model.Battle{
			ID:   b.ID,
			Home: model.Participant{Team: b.Teams[0].Name, Handle: b.Teams[0].Handle},
			Away: model.Participant{Team: b.Teams[1].Name, Handle: b.Teams[1].Handle},
		})
	}
	return battles
}

// problemsFromConfig converts configured problems to domain values,
// preserving leaderboard column order.
func problemsFromConfig(cfg *config.Config) []model.Problem {
	problems := make([]model.Problem, 0, len(cfg.Problems))
	for _, p := range cfg.Problems {
		problems = append(problems, model.Problem{
			ContestID: p.ContestID,
			Index:     p.Index,
			Points:    p.Points,
		})
	}
	return problems
}
