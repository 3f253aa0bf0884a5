package internal

import "context"

// Scope is a resource held for the lifetime of one request, such as a
// database transaction. Release is called exactly once after the response
// has been emitted, on every outcome.
type Scope interface {
	Release() error
}

// ScopeFactory acquires a Scope at the start of each request.
type ScopeFactory interface {
	Acquire(ctx context.Context) (Scope, error)
}

// ScopeFactoryFunc adapts a function to ScopeFactory.
type ScopeFactoryFunc func(ctx context.Context) (Scope, error)

// Acquire calls f.
func (f ScopeFactoryFunc) Acquire(ctx context.Context) (Scope, error) {
	return f(ctx)
}

// ScopeFunc adapts a constructor returning a concrete scope type.
//
// Example:
//
//	uniweb.WithScopeFactory(uniweb.ScopeFunc(sessions.Acquire))
func ScopeFunc[S Scope](acquire func(ctx context.Context) (S, error)) ScopeFactory {
	return ScopeFactoryFunc(func(ctx context.Context) (Scope, error) {
		s, err := acquire(ctx)
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}

// ScopeAs returns the request scope asserted to S.
func ScopeAs[S Scope](d Deps) (S, bool) {
	s, ok := d.Scope().(S)
	return s, ok
}

type nopScope struct{}

func (nopScope) Release() error { return nil }

// NopScopeFactory returns a factory whose scopes hold nothing.
func NopScopeFactory() ScopeFactory {
	return ScopeFactoryFunc(func(context.Context) (Scope, error) {
		return nopScope{}, nil
	})
}
