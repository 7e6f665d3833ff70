// Package resolve implements first-solver resolution for head-to-head
// battles: it folds submission records into per-battle, per-problem winner
// state and emits leaderboard mutations as credit is claimed or moves.
package resolve

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/duelboard/internal/domain/dedupe"
	"github.com/okian/duelboard/internal/domain/model"
	"github.com/okian/duelboard/pkg/logger"
	"github.com/okian/duelboard/pkg/metrics"
)

// Feed returns a participant's recent submissions. The window is
// provider-defined, may overlap across cycles and carries no ordering
// guarantee the engine relies on.
type Feed interface {
	Recent(ctx context.Context, handle string) ([]model.Submission, error)
}

// Sink applies one leaderboard mutation. Implementations report a mutation
// target missing from the leaderboard with ErrTeamNotFound; the engine logs
// it and moves on.
type Sink interface {
	Apply(ctx context.Context, m model.Mutation) error
}

// Outcome is the current first-solver state for one problem in one battle.
// Winner is empty iff the problem is unclaimed, in which case SolvedAt is
// zero.
type Outcome struct {
	Winner   string
	SolvedAt int64
}

// Engine owns the outcome state and drives one resolution pass per polling
// cycle. It is not safe for concurrent cycles; the poller runs cycles
// strictly one after another.
type Engine struct {
	// mu serializes outcome mutation against concurrent readers; cycles
	// themselves never overlap.
	mu sync.RWMutex

	battles  []model.Battle
	problems map[string]model.Problem
	feed     Feed
	sink     Sink
	deduper  dedupe.Deduper
	outcomes map[string]map[string]*Outcome // battle id -> problem key
	logger   logger.Logger
}

// New builds an engine over the configured battles and problems. Both are
// fixed for the engine's lifetime.
func New(battles []model.Battle, problems []model.Problem, feed Feed, sink Sink, opts ...Option) *Engine {
	e := &Engine{
		battles:  battles,
		problems: make(map[string]model.Problem, len(problems)),
		feed:     feed,
		sink:     sink,
		outcomes: make(map[string]map[string]*Outcome, len(battles)),
	}
	for _, p := range problems {
		e.problems[p.Key()] = p
	}
	for _, b := range battles {
		perProblem := make(map[string]*Outcome, len(problems))
		for _, p := range problems {
			perProblem[p.Key()] = &Outcome{}
		}
		e.outcomes[b.ID] = perProblem
	}

	for _, opt := range opts {
		opt(e)
	}
	if e.deduper == nil {
		e.deduper = dedupe.New()
	}
	if e.logger == nil {
		e.logger = logger.Get().Named("resolve")
	}
	return e
}

// ProcessCycle fetches fresh submissions for every participant of every
// battle and folds them into the outcome state. A fetch failure skips that
// participant for this cycle only; the cycle always runs to completion.
func (e *Engine) ProcessCycle(ctx context.Context) {
	cycle := uuid.NewString()
	start := time.Now()
	defer func() {
		metrics.RecordCycle()
		metrics.ObserveCycleDuration(time.Since(start))
		metrics.UpdateClaimedProblems(e.claimedCount())
	}()

	for _, battle := range e.battles {
		for _, p := range battle.Participants() {
			subs, err := e.feed.Recent(ctx, p.Handle)
			if err != nil {
				metrics.RecordFetchError()
				e.logger.Warn(ctx, "submission fetch failed, skipping participant this cycle",
					logger.String("cycle", cycle),
					logger.String("battle", battle.ID),
					logger.String("handle", p.Handle),
					logger.Error(err),
				)
				continue
			}
			for i := range subs {
				e.resolve(ctx, cycle, battle, p, subs[i])
			}
		}
	}
}

// resolve applies one submission record to the battle's outcome state.
func (e *Engine) resolve(ctx context.Context, cycle string, battle model.Battle, p model.Participant, sub model.Submission) {
	metrics.RecordSubmissionSeen()

	problem, ok := e.problems[sub.ProblemKey()]
	if !ok {
		return // outside the configured set, irrelevant input
	}
	if sub.Verdict != model.VerdictAccepted {
		return
	}
	if sub.ID != 0 && e.deduper.SeenAndRecord(ctx, sub.ID) {
		metrics.RecordDuplicateSkipped()
		return
	}

	out := e.outcomes[battle.ID][problem.Key()]
	switch {
	case out.Winner == "":
		e.claim(ctx, cycle, battle, p.Team, problem, sub.SubmittedAt, "")
	case out.Winner == p.Team:
		// already credited, re-observation is a no-op
	case beats(sub.SubmittedAt, p.Team, out.SolvedAt, out.Winner):
		e.claim(ctx, cycle, battle, p.Team, problem, sub.SubmittedAt, out.Winner)
	}
}

// claim credits team with the problem, revoking the displaced team's credit
// first when the win moves. Outcome state is updated regardless of sink
// write failures and never rolled back.
func (e *Engine) claim(ctx context.Context, cycle string, battle model.Battle, team string, problem model.Problem, solvedAt int64, displaced string) {
	if displaced != "" {
		e.logger.Info(ctx, "earlier accepted submission observed, moving credit",
			logger.String("cycle", cycle),
			logger.String("battle", battle.ID),
			logger.String("problem", problem.Key()),
			logger.String("from", displaced),
			logger.String("to", team),
		)
		metrics.RecordRevoke()
		e.apply(ctx, cycle, battle, model.Mutation{
			Action:  model.ActionRevoke,
			Team:    displaced,
			Problem: problem,
		})
	}

	e.mu.Lock()
	out := e.outcomes[battle.ID][problem.Key()]
	out.Winner = team
	out.SolvedAt = solvedAt
	e.mu.Unlock()

	metrics.RecordAward()
	e.apply(ctx, cycle, battle, model.Mutation{
		Action:   model.ActionAward,
		Team:     team,
		Problem:  problem,
		SolvedAt: model.SolveLabel(solvedAt),
	})
	e.logger.Info(ctx, "problem credited",
		logger.String("cycle", cycle),
		logger.String("battle", battle.ID),
		logger.String("problem", problem.Key()),
		logger.String("team", team),
		logger.Int64("solvedAt", solvedAt),
	)
}

// apply sends one mutation to the sink. Failures are warnings, not cycle
// aborts: the sink is fire-and-forget from the engine's perspective.
func (e *Engine) apply(ctx context.Context, cycle string, battle model.Battle, m model.Mutation) {
	err := e.sink.Apply(ctx, m)
	if err == nil {
		return
	}
	metrics.RecordSinkError()
	msg := "leaderboard write failed"
	if errors.Is(err, ErrTeamNotFound) {
		msg = "team missing from leaderboard, mutation skipped"
	}
	e.logger.Warn(ctx, msg,
		logger.String("cycle", cycle),
		logger.String("battle", battle.ID),
		logger.String("problem", m.Problem.Key()),
		logger.String("team", m.Team),
		logger.String("action", string(m.Action)),
		logger.Error(err),
	)
}

// beats reports whether a challenger takes credit from the current winner:
// strictly earlier wins; an exact timestamp tie breaks to the
// lexicographically lower team name so the final state does not depend on
// observation order.
func beats(ts int64, team string, curTS int64, curTeam string) bool {
	if ts != curTS {
		return ts < curTS
	}
	return team < curTeam
}

// claimedCount returns the number of battle/problem pairs with a winner.
func (e *Engine) claimedCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	n := 0
	for _, perProblem := range e.outcomes {
		for _, out := range perProblem {
			if out.Winner != "" {
				n++
			}
		}
	}
	return n
}

// Outcome returns a copy of the current outcome for a battle/problem pair
// and whether the pair is configured.
func (e *Engine) Outcome(battleID, problemKey string) (Outcome, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	perProblem, ok := e.outcomes[battleID]
	if !ok {
		return Outcome{}, false
	}
	out, ok := perProblem[problemKey]
	if !ok {
		return Outcome{}, false
	}
	return *out, true
}
