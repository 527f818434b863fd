// Package hooks implements dispatcher.Hook integrations: a Prometheus
// metrics endpoint and an OpenTelemetry trace exporter.
package hooks

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/promptraid/promptraid/pkg/defaults"
	"github.com/promptraid/promptraid/pkg/duration"
	"github.com/promptraid/promptraid/pkg/output/dispatcher"
	"github.com/promptraid/promptraid/pkg/output/events"
)

// Compile-time interface check.
var _ dispatcher.Hook = (*PrometheusHook)(nil)

// PrometheusHook exposes run metrics for Prometheus scraping: counters
// for analyzed payloads, findings and errors plus a confidence
// histogram. The metrics server runs until Close.
type PrometheusHook struct {
	server   *http.Server
	registry *prometheus.Registry
	opts     PrometheusOptions

	payloadsTotal  *prometheus.CounterVec
	findingsTotal  *prometheus.CounterVec
	errorsTotal    prometheus.Counter
	confidenceHist *prometheus.HistogramVec
}

// PrometheusOptions configures the Prometheus hook behavior.
type PrometheusOptions struct {
	// Port for the metrics server (default: 9090). A negative port
	// disables the server; metrics stay reachable through Registry for
	// embedding into an existing server.
	Port int

	// Path for the metrics endpoint (default: "/metrics").
	Path string
}

// NewPrometheusHook creates a Prometheus hook. The metrics server
// starts immediately unless disabled.
func NewPrometheusHook(opts PrometheusOptions) (*PrometheusHook, error) {
	if opts.Port == 0 {
		opts.Port = defaults.MetricsPortDefault
	}
	if opts.Path == "" {
		opts.Path = defaults.MetricsPathDefault
	}

	// Private registry keeps tool metrics out of the global default.
	registry := prometheus.NewRegistry()
	hook := &PrometheusHook{registry: registry, opts: opts}

	if err := hook.initMetrics(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}
	if opts.Port > 0 {
		hook.startServer()
	}
	return hook, nil
}

func (h *PrometheusHook) initMetrics() error {
	h.payloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promptraid_payloads_total",
			Help: "Total number of payload responses analyzed",
		},
		[]string{"module", "verdict"},
	)
	h.findingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promptraid_findings_total",
			Help: "Total number of vulnerable responses detected",
		},
		[]string{"module", "severity"},
	)
	h.errorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "promptraid_errors_total",
			Help: "Total number of errors during testing",
		},
	)
	h.confidenceHist = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "promptraid_verdict_confidence",
			Help:    "Distribution of verdict confidence values",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 9),
		},
		[]string{"module"},
	)

	for _, c := range []prometheus.Collector{
		h.payloadsTotal, h.findingsTotal, h.errorsTotal, h.confidenceHist,
	} {
		if err := h.registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (h *PrometheusHook) startServer() {
	mux := http.NewServeMux()
	mux.Handle(h.opts.Path, promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{}))

	h.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", h.opts.Port),
		Handler:      mux,
		ReadTimeout:  duration.MetricsRead,
		WriteTimeout: duration.MetricsWrite,
	}
	go func() {
		_ = h.server.ListenAndServe()
	}()
}

// Registry exposes the hook's metric registry for embedding.
func (h *PrometheusHook) Registry() *prometheus.Registry {
	return h.registry
}

// OnEvent updates metrics from the event stream.
func (h *PrometheusHook) OnEvent(_ context.Context, event events.Event) error {
	switch e := event.(type) {
	case *events.ResultEvent:
		verdict := "guarded"
		switch {
		case e.Verdict.Error != "":
			verdict = "error"
		case e.Verdict.Success:
			verdict = "vulnerable"
		}
		h.payloadsTotal.WithLabelValues(e.Module, verdict).Inc()
		if e.Verdict.Error == "" {
			h.confidenceHist.WithLabelValues(e.Module).Observe(e.Verdict.Confidence)
		}
	case *events.FindingEvent:
		h.findingsTotal.WithLabelValues(e.Module, e.Severity).Inc()
	case *events.ErrorEvent:
		h.errorsTotal.Inc()
	}
	return nil
}

// EventTypes limits delivery to the event types that move a metric.
func (h *PrometheusHook) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventTypeResult,
		events.EventTypeFinding,
		events.EventTypeError,
	}
}

// Close shuts the metrics server down.
func (h *PrometheusHook) Close() error {
	if h.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), duration.TelemetryShutdown)
	defer cancel()
	return h.server.Shutdown(ctx)
}
