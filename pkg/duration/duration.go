// Package duration provides canonical time constants for the entire codebase.
// This is the SINGLE SOURCE OF TRUTH for all time-based configuration.
//
// DO NOT use hardcoded time.Duration values like `5 * time.Second` anywhere.
// Instead, reference the appropriate constant from this package.
package duration

import "time"

// ============================================================================
// TELEMETRY / METRICS
// ============================================================================
//
// Use these for the Prometheus endpoint and the OTLP exporter lifecycle.
// ============================================================================

const (
	// TelemetryShutdown bounds graceful shutdown of exporters and
	// metric servers (5s)
	TelemetryShutdown = 5 * time.Second

	// TelemetryConnect bounds establishing the OTLP connection (10s)
	TelemetryConnect = 10 * time.Second

	// MetricsRead is the metrics HTTP server read timeout (5s)
	MetricsRead = 5 * time.Second

	// MetricsWrite is the metrics HTTP server write timeout (10s)
	MetricsWrite = 10 * time.Second
)

// ============================================================================
// CONTEXT/OPERATION TIMEOUTS
// ============================================================================
//
// Use these for context.WithTimeout() calls to bound operation duration.
// ============================================================================

const (
	// ContextShort is for quick operations (30s)
	ContextShort = 30 * time.Second

	// ContextMedium is for standard operations (5min)
	ContextMedium = 5 * time.Minute
)

// ============================================================================
// SCRIPT EXECUTION
// ============================================================================

const (
	// ScriptRun bounds a single scripted technique invocation (1s).
	// A transform that runs longer than this is broken, not slow.
	ScriptRun = 1 * time.Second
)
