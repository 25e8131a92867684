package telemetry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/diillson/bookbridge/pkg/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.10.0"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const defaultSamplingRatio = 0.1

// TracerProvider é o provider global de traces com a conexão ao coletor OTLP
type TracerProvider struct {
	provider *sdktrace.TracerProvider
	conn     *grpc.ClientConn
	logger   *zap.Logger
}

// NewTracerProvider registra um provider global que exporta spans via OTLP/gRPC
// e propaga W3C trace context e baggage. A conexão com o coletor é preguiçosa.
func NewTracerProvider(ctx context.Context, cfg config.TracingConfig, logger *zap.Logger) (*TracerProvider, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("endpoint do coletor OTLP não configurado")
	}

	conn, err := grpc.NewClient(cfg.Endpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("conexão com o coletor: %w", err)
	}

	tp, err := newProvider(ctx, cfg, conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	otel.SetTracerProvider(tp)

	return &TracerProvider{provider: tp, conn: conn, logger: logger}, nil
}

func newProvider(ctx context.Context, cfg config.TracingConfig, conn *grpc.ClientConn) (*sdktrace.TracerProvider, error) {
	exporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("exporter OTLP: %w", err)
	}

	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceNameKey.String(cfg.ServiceName),
		attribute.String("environment", env),
	))
	if err != nil {
		return nil, fmt.Errorf("resource OTEL: %w", err)
	}

	ratio := cfg.SamplingRatio
	if ratio <= 0 || ratio > 1 {
		ratio = defaultSamplingRatio
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	), nil
}

// Shutdown descarrega os spans pendentes e fecha a conexão, em até 5s
func (tp *TracerProvider) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := tp.provider.Shutdown(ctx)
	if err != nil {
		tp.logger.Error("falha ao encerrar tracer provider", zap.Error(err))
	}
	if cerr := tp.conn.Close(); cerr != nil {
		tp.logger.Warn("falha ao fechar conexão com o coletor", zap.Error(cerr))
		err = errors.Join(err, cerr)
	}
	return err
}
