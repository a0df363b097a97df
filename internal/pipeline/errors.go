package pipeline

import "errors"

// Domain-specific errors for the pipeline package.
var (
	ErrEmptyTranscript     = errors.New("transcript is empty")
	ErrDuplicateSuppressed = errors.New("duplicate task suppressed")
	ErrRateLimited         = errors.New("submission rate limit exceeded")
	ErrNoTranscriber       = errors.New("no transcriber configured")
)
