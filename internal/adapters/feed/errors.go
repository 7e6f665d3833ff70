package feed

import "errors"

// Sentinel kinds for feed errors.
var (
	// ErrUnavailable reports a transport-level failure or non-200 response.
	ErrUnavailable = errors.New("submission feed unavailable")
	// ErrRejected reports an API-level failure status with a comment.
	ErrRejected = errors.New("submission feed rejected request")
)
