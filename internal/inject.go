package internal

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
)

// Token names a capability a handler can ask for.
type Token string

// TokenLogger resolves to the app's *slog.Logger unless overridden.
const TokenLogger Token = "logger"

// Provider produces a capability value. Providers are called once per
// request for every route that declares their token.
type Provider func() any

// Providers maps capability tokens to providers.
type Providers map[Token]Provider

// Value returns a provider that always yields v.
func Value(v any) Provider {
	return func() any { return v }
}

// Deps carries the capability values resolved for one request and the
// request's scoped resource.
type Deps struct {
	values map[Token]any
	scope  Scope
}

// NewDeps builds a Deps by hand. Useful for calling handlers in tests.
func NewDeps(values map[Token]any, scope Scope) Deps {
	if scope == nil {
		scope = nopScope{}
	}
	return Deps{values: maps.Clone(values), scope: scope}
}

// Get returns the value resolved for t.
func (d Deps) Get(t Token) (any, bool) {
	v, ok := d.values[t]
	return v, ok
}

// Scope returns the scoped resource acquired for the request.
func (d Deps) Scope() Scope {
	if d.scope == nil {
		return nopScope{}
	}
	return d.scope
}

// Logger returns the injected logger, or slog.Default when the route did not
// declare TokenLogger.
func (d Deps) Logger() *slog.Logger {
	if l, ok := Resolve[*slog.Logger](d, TokenLogger); ok && l != nil {
		return l
	}
	return slog.Default()
}

// Resolve returns the value for t asserted to T.
func Resolve[T any](d Deps, t Token) (T, bool) {
	v, ok := d.values[t].(T)
	return v, ok
}

// injector owns the provider table. Reads happen on every request, writes
// only through OverrideDependencies.
type injector struct {
	providers Providers
	mu        sync.RWMutex
}

func newInjector(defaults Providers) *injector {
	return &injector{providers: maps.Clone(defaults)}
}

// override merges p over the current providers. Nil providers are ignored.
func (i *injector) override(p Providers) {
	i.mu.Lock()
	defer i.mu.Unlock()
	for t, fn := range p {
		if fn != nil {
			i.providers[t] = fn
		}
	}
}

// check returns ErrUnknownCapability for the first token without a provider.
func (i *injector) check(path string, tokens []Token) error {
	i.mu.RLock()
	defer i.mu.RUnlock()
	for _, t := range tokens {
		if _, ok := i.providers[t]; !ok {
			return fmt.Errorf("%w: %q for route %q", ErrUnknownCapability, t, path)
		}
	}
	return nil
}

// resolve calls the provider of every token. Tokens were validated at
// inclusion and providers are never removed, so a lookup cannot miss.
func (i *injector) resolve(tokens []Token, scope Scope) Deps {
	deps := Deps{scope: scope}
	if len(tokens) == 0 {
		return deps
	}

	i.mu.RLock()
	fns := make([]Provider, len(tokens))
	for n, t := range tokens {
		fns[n] = i.providers[t]
	}
	i.mu.RUnlock()

	deps.values = make(map[Token]any, len(tokens))
	for n, t := range tokens {
		deps.values[t] = fns[n]()
	}
	return deps
}

// provider returns the provider for t.
func (i *injector) provider(t Token) (Provider, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	fn, ok := i.providers[t]
	return fn, ok
}

// tokens lists the registered tokens in sorted order.
func (i *injector) tokens() []Token {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return slices.Sorted(maps.Keys(i.providers))
}
