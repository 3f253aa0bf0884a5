package db

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5"
)

// Beginner starts transactions. *pgxpool.Pool satisfies it.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// SessionMaker hands out one Session per request.
//
// Plug it into the app as the scope factory:
//
//	uniweb.WithScopeFactory(uniweb.ScopeFunc(db.NewSessionMaker(pool).Acquire))
type SessionMaker struct {
	pool Beginner
}

// NewSessionMaker creates a maker over pool.
func NewSessionMaker(pool Beginner) *SessionMaker {
	return &SessionMaker{pool: pool}
}

// Acquire returns a new session. No connection is taken until the first
// call to Session.Tx.
func (m *SessionMaker) Acquire(ctx context.Context) (*Session, error) {
	return &Session{pool: m.pool, ctx: context.WithoutCancel(ctx)}, nil
}

// Session is a lazily started transaction scoped to one request.
// Work is discarded unless Commit is called before Release.
type Session struct {
	pool     Beginner
	ctx      context.Context
	tx       pgx.Tx
	mu       sync.Mutex
	done     bool
	released bool
}

// Tx returns the session transaction, beginning it on first use.
func (s *Session) Tx(ctx context.Context) (pgx.Tx, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return nil, ErrSessionReleased
	}
	if s.tx != nil {
		return s.tx, nil
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	s.tx = tx
	return tx, nil
}

// Commit commits the transaction if one was started.
func (s *Session) Commit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return ErrSessionReleased
	}
	if s.tx == nil || s.done {
		return nil
	}
	s.done = true
	return s.tx.Commit(ctx)
}

// Release rolls back uncommitted work and returns the connection to the pool.
func (s *Session) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return ErrSessionReleased
	}
	s.released = true
	if s.tx == nil || s.done {
		return nil
	}
	s.done = true
	if err := s.tx.Rollback(s.ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}
