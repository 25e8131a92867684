package main

import (
	"context"
	"crypto/tls"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diillson/bookbridge/internal/app"
	"github.com/diillson/bookbridge/pkg/config"
	"github.com/diillson/bookbridge/pkg/logging"
	"github.com/diillson/bookbridge/pkg/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"
)

func main() {
	configPath := flag.String("config", "./config", "Diretório do config.yaml")
	flag.Parse()

	// .env é opcional
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Falha ao carregar configuração: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erro ao inicializar logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Tracing.Enabled {
		tp, err := telemetry.NewTracerProvider(ctx, cfg.Tracing, logger)
		if err != nil {
			logger.Error("Falha ao inicializar tracer", zap.Error(err))
		} else {
			logger.Info("Tracer inicializado com sucesso", zap.String("endpoint", cfg.Tracing.Endpoint))
			defer tp.Shutdown(context.Background())
		}
	}

	if cfg.Logging.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	application, err := app.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Falha ao inicializar aplicação", zap.Error(err))
	}
	defer application.Close()

	server, certFile, keyFile := setupServer(application.Router(), cfg, logger)

	errCh := make(chan error, 1)
	go func() {
		var err error
		if server.TLSConfig != nil {
			logger.Info("Iniciando servidor HTTPS", zap.String("addr", server.Addr))
			err = server.ListenAndServeTLS(certFile, keyFile)
		} else {
			logger.Info("Iniciando servidor HTTP", zap.String("addr", server.Addr))
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		logger.Error("Erro ao iniciar servidor", zap.Error(err))
	case <-ctx.Done():
	}

	logger.Info("Encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Erro ao encerrar servidor", zap.Error(err))
		return
	}

	logger.Info("Servidor encerrado com sucesso")
}

// setupServer monta o http.Server. Com TLS, usa os certificados configurados
// ou, na falta deles, Let's Encrypt para os domínios listados.
func setupServer(router http.Handler, cfg *config.Config, logger *zap.Logger) (*http.Server, string, string) {
	server := &http.Server{
		Addr:           fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	if !cfg.Server.TLS {
		return server, "", ""
	}

	server.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}

	if cfg.Server.CertFile != "" && cfg.Server.KeyFile != "" {
		logger.Info("Usando certificados TLS fornecidos",
			zap.String("certFile", cfg.Server.CertFile),
			zap.String("keyFile", cfg.Server.KeyFile))
		return server, cfg.Server.CertFile, cfg.Server.KeyFile
	}

	certManager := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		HostPolicy: autocert.HostWhitelist(cfg.Server.Domains...),
		Cache:      autocert.DirCache("./certs"),
		Email:      os.Getenv("LETSENCRYPT_EMAIL"),
	}
	server.TLSConfig.GetCertificate = certManager.GetCertificate

	go func() {
		challenge := &http.Server{
			Addr:              ":80",
			Handler:           certManager.HTTPHandler(nil),
			ReadHeaderTimeout: 5 * time.Second,
		}
		logger.Info("Iniciando servidor HTTP para desafios Let's Encrypt", zap.String("addr", challenge.Addr))
		if err := challenge.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Erro no servidor de desafios Let's Encrypt", zap.Error(err))
		}
	}()

	logger.Info("Let's Encrypt configurado", zap.Strings("domains", cfg.Server.Domains))
	return server, "", ""
}
