package cache

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// MemoryCache implementa a interface Cache usando armazenamento em memória
type MemoryCache struct {
	cache    *gocache.Cache
	logger   *zap.Logger
	hits     int64
	misses   int64
	recorder HitRatioRecorder
}

// NewMemoryCache cria uma nova instância de MemoryCache
func NewMemoryCache(defaultExpiration, cleanupInterval time.Duration, recorder HitRatioRecorder, logger *zap.Logger) *MemoryCache {
	return &MemoryCache{
		cache:    gocache.New(defaultExpiration, cleanupInterval),
		logger:   logger,
		recorder: recorder,
	}
}

// Set armazena uma cópia serializada do valor, de modo que alterações
// posteriores no original não vazem para o cache
func (c *MemoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Error("falha ao serializar para cache", zap.String("key", key), zap.Error(err))
		return err
	}

	if expiration <= 0 {
		expiration = gocache.DefaultExpiration
	}
	c.cache.Set(key, data, expiration)
	return nil
}

// Get recupera um valor do cache
func (c *MemoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	value, found := c.cache.Get(key)
	if !found {
		c.record(atomic.LoadInt64(&c.hits), atomic.AddInt64(&c.misses, 1))
		return false, nil
	}

	c.record(atomic.AddInt64(&c.hits, 1), atomic.LoadInt64(&c.misses))

	data, ok := value.([]byte)
	if !ok {
		c.cache.Delete(key)
		return false, nil
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Error("falha ao deserializar para o destino", zap.String("key", key), zap.Error(err))
		return false, err
	}

	return true, nil
}

// Delete remove um valor do cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.cache.Delete(key)
	return nil
}

// Clear remove todos os valores do cache
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.cache.Flush()
	return nil
}

// Ping sempre tem sucesso para o cache em memória
func (c *MemoryCache) Ping(ctx context.Context) error {
	return nil
}

func (c *MemoryCache) record(hits, misses int64) {
	if c.recorder == nil {
		return
	}

	if total := hits + misses; total > 0 {
		c.recorder.UpdateCacheHitRatio("memory", float64(hits)/float64(total))
	}
}
