package session

// Option configures a session backend.
type Option func(*options)

type options struct {
	newID  func() string
	prefix string
	dir    string
}

func buildOptions(opts []Option) options {
	o := options{
		newID: NewID,
		dir:   "sessions",
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithIDGenerator replaces the identifier generator.
// Mostly useful in tests that need deterministic identifiers.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.newID = fn
		}
	}
}

// WithPrefix sets the key prefix used by the Redis backend.
// Default: none, sessions are stored under their bare ids.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithDir sets the directory used by the filesystem backend.
// Default: "sessions".
func WithDir(dir string) Option {
	return func(o *options) {
		if dir != "" {
			o.dir = dir
		}
	}
}
