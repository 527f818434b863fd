package hooks

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/promptraid/promptraid/pkg/defaults"
	"github.com/promptraid/promptraid/pkg/duration"
	"github.com/promptraid/promptraid/pkg/output/dispatcher"
	"github.com/promptraid/promptraid/pkg/output/events"
)

// Compile-time interface check.
var _ dispatcher.Hook = (*OTelHook)(nil)

// OTelHook exports run telemetry to an OpenTelemetry collector. Each
// run becomes a root span; results and findings are recorded as span
// events with attributes.
type OTelHook struct {
	opts           OTelOptions
	tracerProvider *sdktrace.TracerProvider
	tracer         trace.Tracer

	mu       sync.Mutex
	rootSpan trace.Span
	closed   bool
}

// OTelOptions configures the OpenTelemetry hook behavior.
type OTelOptions struct {
	// Endpoint is the OTLP endpoint (e.g., "localhost:4317").
	Endpoint string

	// ServiceName is the service name for traces (default: the tool
	// name).
	ServiceName string

	// Insecure uses a plaintext connection (no TLS).
	Insecure bool

	// Headers contains additional headers for the OTLP exporter.
	Headers map[string]string
}

// NewOTelHook creates an OpenTelemetry hook exporting to the configured
// endpoint. Connection failures surface on export, not here, so an
// unreachable collector never blocks a run.
func NewOTelHook(opts OTelOptions) (*OTelHook, error) {
	if opts.ServiceName == "" {
		opts.ServiceName = defaults.ToolName
	}
	if opts.Endpoint == "" {
		opts.Endpoint = defaults.OTLPEndpointDefault
	}

	grpcOpts := []grpc.DialOption{}
	if opts.Insecure {
		grpcOpts = append(grpcOpts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}

	exporterOpts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(opts.Endpoint),
		otlptracegrpc.WithDialOption(grpcOpts...),
	}
	if opts.Insecure {
		exporterOpts = append(exporterOpts, otlptracegrpc.WithInsecure())
	}
	if len(opts.Headers) > 0 {
		exporterOpts = append(exporterOpts, otlptracegrpc.WithHeaders(opts.Headers))
	}

	ctx, cancel := context.WithTimeout(context.Background(), duration.TelemetryConnect)
	defer cancel()

	exporter, err := otlptracegrpc.New(ctx, exporterOpts...)
	if err != nil {
		return nil, err
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(opts.ServiceName),
		semconv.ServiceVersion(defaults.Version),
	)

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tracerProvider)

	return &OTelHook{
		opts:           opts,
		tracerProvider: tracerProvider,
		tracer:         tracerProvider.Tracer(defaults.ToolName + "/run"),
	}, nil
}

// OnEvent records events on the run span.
func (h *OTelHook) OnEvent(ctx context.Context, event events.Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}

	switch e := event.(type) {
	case *events.StartEvent:
		_, h.rootSpan = h.tracer.Start(ctx, "run",
			trace.WithAttributes(
				attribute.String("run.id", e.Run),
				attribute.String("run.module", e.Module),
				attribute.Int("run.total_payloads", e.TotalPayloads),
				attribute.String("run.engine", e.Engine),
			))
	case *events.ResultEvent:
		if h.rootSpan != nil {
			h.rootSpan.AddEvent("result", trace.WithAttributes(
				attribute.Bool("verdict.success", e.Verdict.Success),
				attribute.Float64("verdict.confidence", e.Verdict.Confidence),
			))
		}
	case *events.FindingEvent:
		if h.rootSpan != nil {
			h.rootSpan.AddEvent("finding", trace.WithAttributes(
				attribute.String("finding.severity", e.Severity),
				attribute.Float64("finding.confidence", e.Confidence),
				attribute.StringSlice("finding.leaks", e.Leaks),
			))
			h.rootSpan.SetStatus(codes.Error, "vulnerable response detected")
		}
	case *events.ErrorEvent:
		if h.rootSpan != nil {
			h.rootSpan.AddEvent("error", trace.WithAttributes(
				attribute.String("error.message", e.Message),
			))
		}
	case *events.CompleteEvent:
		if h.rootSpan != nil {
			h.rootSpan.SetAttributes(attribute.Int64("run.duration_ms", e.DurationMs))
			h.rootSpan.End()
			h.rootSpan = nil
		}
	}
	return nil
}

// EventTypes returns nil so the hook sees the whole stream.
func (h *OTelHook) EventTypes() []events.EventType { return nil }

// Close ends any open span and flushes the exporter.
func (h *OTelHook) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	if h.rootSpan != nil {
		h.rootSpan.End()
		h.rootSpan = nil
	}
	h.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), duration.TelemetryShutdown)
	defer cancel()
	return h.tracerProvider.Shutdown(ctx)
}
