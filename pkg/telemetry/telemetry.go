// Package telemetry wires OpenTelemetry OTLP gRPC export for analysis
// runs. Tracing is opt-in; when no exporter is initialized the span
// helpers fall back to the no-op global tracer.
package telemetry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// ServiceName identifies this service in exported traces.
const ServiceName = "caseflow"

// Config configures the OTLP gRPC exporter.
type Config struct {
	// Endpoint is the OTLP gRPC endpoint (e.g., "localhost:4317")
	Endpoint string

	// ServiceVersion is the version reported with each trace
	ServiceVersion string

	// Environment is the deployment environment (e.g., "production")
	Environment string

	// InsecureTLS disables TLS for the gRPC connection (local dev)
	InsecureTLS bool

	// Headers are sent with each export request (e.g., auth tokens)
	Headers map[string]string

	// BatchTimeout is how long to wait before sending a batch of spans
	BatchTimeout time.Duration

	// MaxBatchSize is the maximum number of spans per batch
	MaxBatchSize int

	// MaxQueueSize is the maximum number of spans queued before dropping
	MaxQueueSize int

	// ExportTimeout is the timeout for exporting a batch
	ExportTimeout time.Duration

	// SamplingRatio is the fraction of traces to sample (0.0 to 1.0)
	SamplingRatio float64
}

// DefaultConfig returns sensible defaults for local development.
func DefaultConfig() Config {
	return Config{
		Endpoint:       "localhost:4317",
		ServiceVersion: "1.0.0",
		Environment:    "development",
		InsecureTLS:    true,
		BatchTimeout:   5 * time.Second,
		MaxBatchSize:   512,
		MaxQueueSize:   2048,
		ExportTimeout:  30 * time.Second,
		SamplingRatio:  1.0,
	}
}

// Exporter manages the tracer provider lifecycle.
type Exporter struct {
	mu sync.Mutex

	cfg         Config
	provider    *sdktrace.TracerProvider
	shutdown    func(context.Context) error
	initialized bool
}

// NewExporter creates an exporter; call Init to start exporting.
func NewExporter(cfg Config) *Exporter {
	return &Exporter{cfg: cfg}
}

// Init sets up the OTLP exporter and installs the global tracer
// provider. The returned shutdown function flushes pending spans.
func (e *Exporter) Init(ctx context.Context) (func(context.Context) error, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized {
		return e.shutdown, nil
	}

	var dialOpts []grpc.DialOption
	if e.cfg.InsecureTLS {
		dialOpts = append(dialOpts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}

	exporterOpts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(e.cfg.Endpoint),
		otlptracegrpc.WithDialOption(dialOpts...),
		otlptracegrpc.WithTimeout(e.cfg.ExportTimeout),
	}
	if e.cfg.InsecureTLS {
		exporterOpts = append(exporterOpts, otlptracegrpc.WithInsecure())
	}
	if len(e.cfg.Headers) > 0 {
		exporterOpts = append(exporterOpts, otlptracegrpc.WithHeaders(e.cfg.Headers))
	}

	exporter, err := otlptracegrpc.New(ctx, exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("telemetry: create OTLP exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(ServiceName),
			semconv.ServiceVersion(e.cfg.ServiceVersion),
			semconv.DeploymentEnvironment(e.cfg.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: create resource: %w", err)
	}

	var sampler sdktrace.Sampler
	switch {
	case e.cfg.SamplingRatio >= 1.0:
		sampler = sdktrace.AlwaysSample()
	case e.cfg.SamplingRatio <= 0:
		sampler = sdktrace.NeverSample()
	default:
		sampler = sdktrace.TraceIDRatioBased(e.cfg.SamplingRatio)
	}

	e.provider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter,
			sdktrace.WithBatchTimeout(e.cfg.BatchTimeout),
			sdktrace.WithMaxExportBatchSize(e.cfg.MaxBatchSize),
			sdktrace.WithMaxQueueSize(e.cfg.MaxQueueSize),
			sdktrace.WithExportTimeout(e.cfg.ExportTimeout),
		),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	)

	otel.SetTracerProvider(e.provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	e.shutdown = func(ctx context.Context) error {
		e.mu.Lock()
		defer e.mu.Unlock()
		if !e.initialized {
			return nil
		}
		e.initialized = false
		return e.provider.Shutdown(ctx)
	}
	e.initialized = true
	return e.shutdown, nil
}

// Init is the one-call entry point for enabling OTLP export.
func Init(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	return NewExporter(cfg).Init(ctx)
}

// StartSpan starts a span on the global tracer. No-op when tracing is
// not initialized.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer(ServiceName).Start(ctx, name, opts...)
}

// RecordError records err on the span carried by ctx, if any.
func RecordError(ctx context.Context, err error) {
	if span := trace.SpanFromContext(ctx); span != nil {
		span.RecordError(err)
	}
}

// AddEvent adds an event to the span carried by ctx, if any.
func AddEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	if span := trace.SpanFromContext(ctx); span != nil {
		span.AddEvent(name, trace.WithAttributes(attrs...))
	}
}
