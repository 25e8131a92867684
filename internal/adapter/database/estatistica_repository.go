package database

import (
	"context"
	"fmt"

	"github.com/diillson/bookbridge/internal/domain/model"
	"github.com/diillson/bookbridge/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EstatisticaRepository implementa repository.EstatisticaRepository com agregados SQL
type EstatisticaRepository struct {
	baseRepository
}

func NewEstatisticaRepository(db *gorm.DB, logger *zap.Logger) repository.EstatisticaRepository {
	return &EstatisticaRepository{newBaseRepository(db, logger, "estatisticas")}
}

// Estatisticas conta as entidades e calcula as médias. Denominador zero resulta em média 0.
func (r *EstatisticaRepository) Estatisticas(ctx context.Context) (*model.Estatisticas, error) {
	ctx, span := r.startSpan(ctx, "EstatisticaRepository.Estatisticas", "select")
	defer span.End()

	db := r.db.WithContext(ctx)
	var est model.Estatisticas

	counts := []struct {
		entity interface{}
		dest   *int64
	}{
		{&model.Usuario{}, &est.TotalUsuarios},
		{&model.Clube{}, &est.TotalClubes},
		{&model.Livro{}, &est.TotalLivros},
		{&model.Avaliacao{}, &est.TotalAvaliacoes},
	}
	for _, c := range counts {
		if err := db.Model(c.entity).Count(c.dest).Error; err != nil {
			return nil, r.fail(span, "falha ao contar registros", fmt.Errorf("falha ao calcular estatísticas: %w", err))
		}
	}

	if est.TotalAvaliacoes > 0 {
		var media float64
		if err := db.Model(&model.Avaliacao{}).Select("COALESCE(AVG(nota), 0)").Scan(&media).Error; err != nil {
			return nil, r.fail(span, "falha ao calcular média das avaliações", fmt.Errorf("falha ao calcular estatísticas: %w", err))
		}
		est.MediaAvaliacoes = media
	}

	if est.TotalClubes > 0 {
		est.MediaLivrosPorClube = float64(est.TotalLivros) / float64(est.TotalClubes)
	}

	r.logger.Debug("estatísticas calculadas",
		zap.Int64("usuarios", est.TotalUsuarios),
		zap.Int64("avaliacoes", est.TotalAvaliacoes))
	return &est, nil
}
