// Package observability inicializa el tracing OpenTelemetry del servicio.
package observability

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"
	"go.uber.org/zap"
)

const (
	ExporterOTLP   = "otlp"
	ExporterStdout = "stdout"
)

type OTelConfig struct {
	Enabled     bool
	ServiceName string
	Environment string
	Exporter    string  // otlp | stdout
	SampleRatio float64 // [0,1]
}

// ShutdownFunc vacia y cierra el tracer provider.
type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// InitOTel registra el tracer provider global. Deshabilitado, deja el provider noop de otel.
// El exporter OTLP toma endpoint y headers de las variables OTEL_EXPORTER_OTLP_*.
func InitOTel(ctx context.Context, cfg OTelConfig, logger *zap.Logger) (ShutdownFunc, error) {
	if !cfg.Enabled {
		return noopShutdown, nil
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "career-compass"
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			attribute.String("deployment.environment", strings.TrimSpace(cfg.Environment)),
		),
	)
	if err != nil {
		logger.Warn("otel resource init failed (continuing)", zap.Error(err))
	}

	exporter, err := buildTraceExporter(ctx, cfg.Exporter)
	if err != nil {
		return noopShutdown, fmt.Errorf("otel exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(clampRatio(cfg.SampleRatio)))),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Info("otel tracing initialized",
		zap.String("service", serviceName),
		zap.String("exporter", cfg.Exporter),
		zap.Float64("sample_ratio", clampRatio(cfg.SampleRatio)),
	)
	return tp.Shutdown, nil
}

func buildTraceExporter(ctx context.Context, kind string) (sdktrace.SpanExporter, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", ExporterOTLP:
		return otlptracehttp.New(ctx)
	case ExporterStdout:
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	default:
		return nil, fmt.Errorf("unknown exporter %q", kind)
	}
}

func clampRatio(r float64) float64 {
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}
