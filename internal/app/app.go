package app

import (
	"context"
	"fmt"
	"time"

	"github.com/diillson/bookbridge/internal/adapter/database"
	"github.com/diillson/bookbridge/internal/adapter/http"
	"github.com/diillson/bookbridge/internal/app/auth"
	"github.com/diillson/bookbridge/internal/app/avaliacao"
	"github.com/diillson/bookbridge/internal/app/clube"
	"github.com/diillson/bookbridge/internal/app/estatistica"
	"github.com/diillson/bookbridge/internal/app/livro"
	"github.com/diillson/bookbridge/internal/app/usuario"
	"github.com/diillson/bookbridge/internal/infra/metrics"
	"github.com/diillson/bookbridge/internal/infra/middleware"
	"github.com/diillson/bookbridge/pkg/cache"
	"github.com/diillson/bookbridge/pkg/config"
	apierrors "github.com/diillson/bookbridge/pkg/errors"
	"github.com/diillson/bookbridge/pkg/security"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers agrupa os handlers HTTP da aplicação
type Handlers struct {
	Usuario     *http.UsuarioHandler
	Auth        *http.AuthHandler
	Clube       *http.ClubeHandler
	Livro       *http.LivroHandler
	Avaliacao   *http.AvaliacaoHandler
	Estatistica *http.EstatisticaHandler
	Health      *http.HealthChecker
}

type App struct {
	Logger      *zap.Logger
	Config      *config.Config
	DB          *database.Database
	Cache       cache.Cache
	KeyManager  *security.KeyManager
	AuthService *auth.AuthService
	Middleware  *middleware.Middleware
	Handlers    Handlers
	APIMetrics  *metrics.APIMetrics

	cancel context.CancelFunc
}

// NewApp cria a aplicação com todas as dependências injetadas a partir da configuração
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	keyManager, err := security.NewKeyManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiration, logger)
	if err != nil {
		return nil, fmt.Errorf("configuração de autenticação inválida: %w", err)
	}

	db, err := database.NewDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	var apiMetrics *metrics.APIMetrics
	if cfg.Metrics.Enabled {
		apiMetrics = metrics.NewAPIMetrics()
	}

	var recorder cache.Recorder
	if apiMetrics != nil {
		recorder = apiMetrics
	}
	appCache, err := cache.New(cfg.Cache, recorder, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("falha ao inicializar cache: %w", err)
	}

	gormDB := db.DB()
	usuarioRepo := database.NewUsuarioRepository(gormDB, logger)
	clubeRepo := database.NewClubeRepository(gormDB, logger)
	livroRepo := database.NewLivroRepository(gormDB, logger)
	avaliacaoRepo := database.NewAvaliacaoRepository(gormDB, logger)
	estatisticaRepo := database.NewEstatisticaRepository(gormDB, logger)

	estatisticaService := estatistica.NewService(estatisticaRepo, appCache, cfg.Cache.TTL, logger)
	authService := auth.NewAuthService(keyManager, usuarioRepo, logger)
	usuarioService := usuario.NewService(usuarioRepo, estatisticaService, logger)
	clubeService := clube.NewService(clubeRepo, estatisticaService, logger)
	livroService := livro.NewService(livroRepo, clubeService, estatisticaService, logger)
	avaliacaoService := avaliacao.NewService(avaliacaoRepo, livroRepo, estatisticaService, logger)

	middlewares := middleware.NewMiddleware(logger, authService, apiMetrics, cfg)

	appCtx, cancel := context.WithCancel(ctx)
	middlewares.LoginLimiter().StartCleanup(appCtx, 10*time.Minute)

	return &App{
		Logger:      logger,
		Config:      cfg,
		DB:          db,
		Cache:       appCache,
		KeyManager:  keyManager,
		AuthService: authService,
		Middleware:  middlewares,
		APIMetrics:  apiMetrics,
		Handlers: Handlers{
			Usuario:     http.NewUsuarioHandler(usuarioService, logger),
			Auth:        http.NewAuthHandler(authService, logger),
			Clube:       http.NewClubeHandler(clubeService, logger),
			Livro:       http.NewLivroHandler(livroService, logger),
			Avaliacao:   http.NewAvaliacaoHandler(avaliacaoService, logger),
			Estatistica: http.NewEstatisticaHandler(estatisticaService, logger),
			Health:      http.NewHealthChecker(db, appCache, logger),
		},
		cancel: cancel,
	}, nil
}

// Router cria um engine gin com todas as rotas registradas
func (a *App) Router() *gin.Engine {
	router := gin.New()
	a.RegisterRoutes(router)
	return router
}

// RegisterRoutes registra todas as rotas no router
func (a *App) RegisterRoutes(router *gin.Engine) {
	router.Use(a.Middleware.Recovery())
	router.Use(a.Middleware.Logger())
	router.Use(a.Middleware.Tracing())
	router.Use(a.Middleware.Metrics())
	router.Use(a.Middleware.SecurityHeaders())
	router.Use(a.Middleware.CORS())
	router.Use(a.Middleware.IgnoreFavicon())

	h := a.Handlers
	requireIdentity := a.Middleware.RequireIdentity()

	// Rotas públicas
	router.GET("/health", h.Health.LivenessCheck)
	router.GET("/health/liveness", h.Health.LivenessCheck)
	router.GET("/health/readiness", h.Health.ReadinessCheck)
	router.GET("/health/details", h.Health.DetailedHealth)

	if metricsHandler := a.Middleware.MetricsHandler(); metricsHandler != nil {
		router.GET(a.Config.Metrics.PrometheusPath, metricsHandler)
		a.Logger.Info("Endpoint de métricas Prometheus registrado",
			zap.String("path", a.Config.Metrics.PrometheusPath))
	}

	router.POST("/login", a.Middleware.LoginRateLimit(), h.Auth.Login)

	router.POST("/usuarios", h.Usuario.Create)
	router.GET("/usuarios", h.Usuario.List)
	router.PUT("/usuarios/:id", h.Usuario.Update)
	router.DELETE("/usuarios/:id", h.Usuario.Delete)

	router.GET("/clubes", h.Clube.List)
	router.GET("/livros/:id/avaliacoes", h.Avaliacao.ListByLivro)
	router.GET("/estatisticas", h.Estatistica.Get)

	// Rotas que exigem identidade
	protected := router.Group("/", requireIdentity)
	{
		protected.POST("/clubes", h.Clube.Create)
		protected.PUT("/clubes/:id", h.Clube.Update)
		protected.DELETE("/clubes/:id", h.Clube.Delete)

		protected.POST("/clubes/:id/livros", h.Livro.Create)
		protected.GET("/clubes/:id/livros", h.Livro.ListByClube)
		protected.PUT("/livros/:id", h.Livro.Update)
		protected.DELETE("/livros/:id", h.Livro.Delete)

		protected.POST("/livros/:id/avaliacoes", h.Avaliacao.Create)
		protected.PUT("/avaliacoes/:id", h.Avaliacao.Update)
		protected.DELETE("/avaliacoes/:id", h.Avaliacao.Delete)
	}

	router.NoRoute(func(c *gin.Context) {
		apiErr := apierrors.NotFound("Rota não encontrada", nil)
		c.JSON(apiErr.Code, apiErr)
	})
}

// Close libera o banco, o cache e as rotinas de limpeza
func (a *App) Close() error {
	if a.cancel != nil {
		a.cancel()
	}

	if closer, ok := a.Cache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			a.Logger.Warn("falha ao fechar cache", zap.Error(err))
		}
	}
	return a.DB.Close()
}
