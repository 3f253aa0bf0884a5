// Package cache provides small TTL caches for read-mostly data, with an
// in-process backend and a Redis backend, plus a stampede-safe loader.
//
// Usage:
//
//	c := cache.NewMemory[[]store.Question](cache.WithDefaultTTL(time.Minute))
//	loader := cache.NewLoader[[]store.Question](c, 0)
//
//	qs, err := loader.Load(ctx, "questions", func(ctx context.Context) ([]store.Question, error) {
//	    return repo.Questions(ctx)
//	})
//
// Concurrent misses for one key call the load function once.
package cache
