package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/diillson/bookbridge/pkg/config"
	"github.com/diillson/bookbridge/pkg/resilience"
	"go.uber.org/zap"
)

// KeyPrefix é aplicado a todas as chaves gravadas no Redis
const KeyPrefix = "bookbridge:"

// Cache define a interface para operações de cache
type Cache interface {
	// Set armazena um valor no cache com tempo de expiração
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error

	// Get recupera um valor do cache; false indica cache miss
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	Delete(ctx context.Context, key string) error

	Clear(ctx context.Context) error

	// Ping verifica se o cache está acessível
	Ping(ctx context.Context) error
}

// HitRatioRecorder recebe a taxa de acerto calculada pelo cache em memória
type HitRatioRecorder interface {
	UpdateCacheHitRatio(cacheType string, ratio float64)
}

// Recorder agrega as métricas publicadas pelos caches
type Recorder interface {
	HitRatioRecorder
	resilience.StateRecorder
}

// New cria o cache descrito pela configuração. Cache desabilitado retorna NoOpCache.
// O Redis fica atrás de um circuit breaker; recorder pode ser nil.
func New(cfg config.CacheConfig, recorder Recorder, logger *zap.Logger) (Cache, error) {
	var hits HitRatioRecorder
	var states resilience.StateRecorder
	if recorder != nil {
		hits, states = recorder, recorder
	}

	if !cfg.Enabled {
		logger.Info("cache desabilitado")
		return &NoOpCache{}, nil
	}

	switch cfg.Type {
	case "memory", "":
		return NewMemoryCache(cfg.TTL, cfg.CleanupInterval, hits, logger), nil
	case "redis":
		redisCache, err := NewRedisCache(cfg.Redis, logger)
		if err != nil {
			return nil, err
		}
		breaker := resilience.New(resilience.Config{
			Name:        "cache.redis",
			MaxFailures: cfg.Breaker.MaxFailures,
			Timeout:     cfg.Breaker.OpenTimeout,
		}, states, logger)
		return NewGuardedCache(redisCache, breaker), nil
	default:
		return nil, fmt.Errorf("tipo de cache não suportado: %s", cfg.Type)
	}
}
