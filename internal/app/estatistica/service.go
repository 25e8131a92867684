package estatistica

import (
	"context"
	"time"

	"github.com/diillson/bookbridge/internal/domain/model"
	"github.com/diillson/bookbridge/internal/domain/repository"
	"github.com/diillson/bookbridge/pkg/cache"
	"go.uber.org/zap"
)

const cacheKey = "estatisticas"

// Invalidator descarta agregados em cache após mutações
type Invalidator interface {
	Invalidate(ctx context.Context)
}

// Service calcula as estatísticas da plataforma com cache
type Service struct {
	repo   repository.EstatisticaRepository
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

func NewService(repo repository.EstatisticaRepository, c cache.Cache, ttl time.Duration, logger *zap.Logger) *Service {
	if c == nil {
		c = &cache.NoOpCache{}
	}
	return &Service{
		repo:   repo,
		cache:  c,
		ttl:    ttl,
		logger: logger,
	}
}

// Get retorna as estatísticas, do cache quando disponíveis
func (s *Service) Get(ctx context.Context) (*model.Estatisticas, error) {
	var est model.Estatisticas

	found, err := s.cache.Get(ctx, cacheKey, &est)
	if err != nil {
		// falha de cache não impede a consulta ao banco
		s.logger.Warn("Erro ao buscar estatísticas do cache", zap.Error(err))
	} else if found {
		return &est, nil
	}

	atual, err := s.repo.Estatisticas(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, atual, s.ttl); err != nil {
		s.logger.Warn("Erro ao armazenar estatísticas no cache", zap.Error(err))
	}
	return atual, nil
}

// Invalidate remove as estatísticas do cache
func (s *Service) Invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		s.logger.Warn("Erro ao invalidar cache de estatísticas", zap.Error(err))
	}
}
