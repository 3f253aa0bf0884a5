package redis

import "errors"

var (
	ErrEmptyConnectionURL = errors.New("redis: empty connection URL")
	ErrFailedToParseURL   = errors.New("redis: failed to parse connection URL")
	ErrConnectionFailed   = errors.New("redis: failed to establish connection")

	// ErrUnhealthy is returned by Healthcheck when the server does not answer.
	ErrUnhealthy = errors.New("redis: server not reachable")
)
