package cache

import (
	"context"
	"time"

	"github.com/diillson/bookbridge/pkg/resilience"
)

// GuardedCache passa as operações por um circuit breaker. Com o circuito
// aberto as chamadas falham na hora com resilience.ErrCircuitOpen.
type GuardedCache struct {
	inner   Cache
	breaker *resilience.CircuitBreaker
}

func NewGuardedCache(inner Cache, breaker *resilience.CircuitBreaker) *GuardedCache {
	return &GuardedCache{inner: inner, breaker: breaker}
}

func (g *GuardedCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return g.breaker.Execute(ctx, func(ctx context.Context) error {
		return g.inner.Set(ctx, key, value, expiration)
	})
}

func (g *GuardedCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	var found bool
	err := g.breaker.Execute(ctx, func(ctx context.Context) error {
		var err error
		found, err = g.inner.Get(ctx, key, dest)
		return err
	})
	return found, err
}

func (g *GuardedCache) Delete(ctx context.Context, key string) error {
	return g.breaker.Execute(ctx, func(ctx context.Context) error {
		return g.inner.Delete(ctx, key)
	})
}

func (g *GuardedCache) Clear(ctx context.Context) error {
	return g.breaker.Execute(ctx, func(ctx context.Context) error {
		return g.inner.Clear(ctx)
	})
}

// Ping ignora o breaker para que o health check veja o estado real do Redis
func (g *GuardedCache) Ping(ctx context.Context) error {
	return g.inner.Ping(ctx)
}

// Close fecha o cache interno quando ele suporta
func (g *GuardedCache) Close() error {
	if closer, ok := g.inner.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
