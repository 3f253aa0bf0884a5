package db

import "errors"

// Connection and migration errors.
var (
	ErrFailedToParseDBConfig    = errors.New("db: failed to parse database configuration")
	ErrFailedToOpenDBConnection = errors.New("db: failed to open database connection")
	ErrSetDialect               = errors.New("db migrator: failed to set dialect")
	ErrApplyMigrations          = errors.New("db migrator: failed to apply migrations")
)

var (
	// ErrUnhealthy is returned by Healthcheck when the pool cannot reach the server.
	ErrUnhealthy = errors.New("db: database not reachable")

	// ErrSessionReleased is returned by Session.Tx after Release.
	ErrSessionReleased = errors.New("db: session already released")
)
