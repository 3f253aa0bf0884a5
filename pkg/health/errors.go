package health

import "errors"

var (
	// ErrCheckFailed is reported by Response.Err when a check fails.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout marks a check that ran past the run timeout.
	ErrCheckTimeout = errors.New("health: check timeout")
)
