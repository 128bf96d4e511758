package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

type Protocol string

const (
	ProtocolGrpc Protocol = "grpc"
	ProtocolHttp Protocol = "http"
)

const defaultMetricIntervalSeconds = 5

// Config is the content of telemetry.json5, one collector receives both
// spans and metrics.
type Config struct {
	// Endpoint is the collector url, e.g. "http://localhost:4317".
	Endpoint string            `json:"endpoint"`
	Protocol Protocol          `json:"protocol"`
	Headers  map[string]string `json:"headers"`
	// MetricIntervalSeconds is the push interval before the final flush on
	// Shutdown.
	MetricIntervalSeconds int `json:"metric_interval_seconds"`
}

// withDefaults fills the protocol (grpc) and the metric interval, the
// endpoint is required.
func (c Config) withDefaults() (Config, error) {
	if c.Endpoint == "" {
		return c, errors.New("telemetry: endpoint is not set")
	}
	switch c.Protocol {
	case "":
		c.Protocol = ProtocolGrpc
	case ProtocolGrpc, ProtocolHttp:
	default:
		return c, fmt.Errorf("telemetry: unknown protocol %q, expected %q or %q", c.Protocol, ProtocolGrpc, ProtocolHttp)
	}
	if c.MetricIntervalSeconds <= 0 {
		c.MetricIntervalSeconds = defaultMetricIntervalSeconds
	}
	return c, nil
}

func (c Config) metricInterval() time.Duration {
	return time.Duration(c.MetricIntervalSeconds) * time.Second
}

func newResource(serviceName string) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
}

type exporters struct {
	spans   trace.SpanExporter
	metrics metric.Exporter
}

func newSpanExporter(ctx context.Context, c Config) (trace.SpanExporter, error) {
	if c.Protocol == ProtocolHttp {
		return otlptracehttp.New(
			ctx,
			otlptracehttp.WithEndpointURL(c.Endpoint),
			otlptracehttp.WithHeaders(c.Headers),
		)
	}
	return otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpointURL(c.Endpoint),
		otlptracegrpc.WithHeaders(c.Headers),
	)
}

func newMetricExporter(ctx context.Context, c Config) (metric.Exporter, error) {
	if c.Protocol == ProtocolHttp {
		return otlpmetrichttp.New(
			ctx,
			otlpmetrichttp.WithEndpointURL(c.Endpoint),
			otlpmetrichttp.WithHeaders(c.Headers),
		)
	}
	return otlpmetricgrpc.New(
		ctx,
		otlpmetricgrpc.WithEndpointURL(c.Endpoint),
		otlpmetricgrpc.WithHeaders(c.Headers),
	)
}

// newExporters expects a config that went through withDefaults.
func newExporters(ctx context.Context, c Config) (exporters, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*3)
	defer cancel()

	spans, err := newSpanExporter(ctx, c)
	if err != nil {
		return exporters{}, fmt.Errorf("otlp span exporter: %w", err)
	}
	metrics, err := newMetricExporter(ctx, c)
	if err != nil {
		return exporters{}, errors.Join(
			fmt.Errorf("otlp metric exporter: %w", err),
			spans.Shutdown(ctx),
		)
	}

	slog.Info(
		"otlp exporters initialized",
		"protocol", c.Protocol,
		"endpoint", c.Endpoint,
		"headers", len(c.Headers) > 0,
	)
	return exporters{spans: spans, metrics: metrics}, nil
}
