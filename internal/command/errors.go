package command

import "errors"

// Domain-specific errors for the command package.
var (
	ErrEmptyInput = errors.New("transcript is empty")
)
