// Package model contains domain values passed between layers.
package model

import (
	"fmt"
	"time"
)

// VerdictAccepted is the judge verdict that earns credit. Every other
// verdict is ignored by resolution.
const VerdictAccepted = "OK"

// solveZone is the fixed UTC+5:30 offset used for leaderboard time labels.
var solveZone = time.FixedZone("UTC+05:30", 5*3600+30*60)

// Submission is one record from the submission feed. Transient and never
// mutated; the same record may be delivered again in later cycles.
type Submission struct {
	ID          int64  // feed-assigned submission id, 0 if absent
	Handle      string // judge handle it was fetched for
	ContestID   int
	Index       string
	Verdict     string
	SubmittedAt int64 // epoch seconds
}

// ProblemKey renders the submission's problem identifier, e.g. "1881/A".
func (s Submission) ProblemKey() string {
	return fmt.Sprintf("%d/%s", s.ContestID, s.Index)
}

// Problem is a configured contest problem with its point value. Immutable
// after startup.
type Problem struct {
	ContestID int
	Index     string
	Points    int
}

// Key renders the problem identifier, e.g. "1881/A".
func (p Problem) Key() string {
	return fmt.Sprintf("%d/%s", p.ContestID, p.Index)
}

// Participant binds a leaderboard team name to its judge handle.
type Participant struct {
	Team   string
	Handle string
}

// Battle is a fixed 1v1 pairing competing over the same problem set.
// Membership is immutable after startup.
type Battle struct {
	ID   string
	Home Participant
	Away Participant
}

// Participants returns both sides in configured order.
func (b Battle) Participants() [2]Participant {
	return [2]Participant{b.Home, b.Away}
}

// Action discriminates leaderboard mutations.
type Action string

const (
	ActionAward  Action = "award"
	ActionRevoke Action = "revoke"
)

// Mutation is one leaderboard write command produced by the engine and
// consumed by the sink. The point delta is implied by Problem.Points.
type Mutation struct {
	Action   Action
	Team     string
	Problem  Problem
	SolvedAt string // award only; human-readable solve time
}

// SolveLabel renders an epoch timestamp as HH:MM:SS at fixed UTC+5:30.
// The label carries no date, so contests spanning midnight produce
// ambiguous labels; this is the single conversion point to change if a
// date-qualified label is ever needed.
func SolveLabel(epochSeconds int64) string {
	return time.Unix(epochSeconds, 0).In(solveZone).Format("15:04:05")
}
