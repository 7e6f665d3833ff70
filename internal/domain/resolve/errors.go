package resolve

import "errors"

// Sentinel kinds for sink errors.
var (
	// ErrTeamNotFound reports a mutation target absent from the leaderboard.
	ErrTeamNotFound = errors.New("team not found")
)
