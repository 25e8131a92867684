package database

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// baseRepository reúne conexão, logger e tracer comuns aos repositórios
type baseRepository struct {
	db     *gorm.DB
	logger *zap.Logger
	tracer trace.Tracer
	table  string
}

func newBaseRepository(db *gorm.DB, logger *zap.Logger, table string) baseRepository {
	return baseRepository{
		db:     db,
		logger: logger,
		tracer: otel.GetTracerProvider().Tracer("bookbridge.repository." + table),
		table:  table,
	}
}

func (r baseRepository) startSpan(ctx context.Context, name, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs,
		attribute.String("db.operation", operation),
		attribute.String("db.table", r.table),
	)
	return r.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// fail registra o erro no span e no log e devolve o erro recebido
func (r baseRepository) fail(span trace.Span, msg string, err error, fields ...zap.Field) error {
	span.SetStatus(codes.Error, msg)
	span.RecordError(err)
	r.logger.Error(msg, append(fields, zap.Error(err))...)
	return err
}

func notFound(span trace.Span, err error) error {
	span.SetStatus(codes.Error, "not found")
	span.SetAttributes(attribute.Bool("db.found", false))
	return err
}
