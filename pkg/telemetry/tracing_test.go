package telemetry

import (
	"context"
	"testing"

	"github.com/diillson/bookbridge/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap/zaptest"
)

func TestNewTracerProvider(t *testing.T) {
	previous := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	cfg := config.TracingConfig{Enabled: true, Endpoint: "localhost:4317", ServiceName: "bookbridge-test", SamplingRatio: 5}
	tp, err := NewTracerProvider(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Same(t, tp.provider, otel.GetTracerProvider())
	assert.NoError(t, tp.Shutdown(context.Background()))
}

func TestNewTracerProvider_RequiresEndpoint(t *testing.T) {
	_, err := NewTracerProvider(context.Background(), config.TracingConfig{}, zaptest.NewLogger(t))
	assert.Error(t, err)
}
