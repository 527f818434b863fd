// Package writers implements the dispatcher.Writer interface for the
// supported output formats: JSONL for streaming consumers, a JSON array
// for batch files, and a colorized table for terminals.
package writers

import (
	"io"
	"sync"

	"github.com/promptraid/promptraid/pkg/jsonutil"
	"github.com/promptraid/promptraid/pkg/output/dispatcher"
	"github.com/promptraid/promptraid/pkg/output/events"
)

// Compile-time interface check.
var _ dispatcher.Writer = (*JSONLWriter)(nil)

// JSONLWriter writes events as newline-delimited JSON. Each event is a
// complete JSON object on one line, so jq, grep and streaming parsers
// can process the run in real time.
type JSONLWriter struct {
	mu      sync.Mutex
	opts    JSONLOptions
	encoder *jsonutil.Encoder
}

// JSONLOptions configures the JSONL writer behavior.
type JSONLOptions struct {
	// OnlyFindings filters output to finding events, dropping the
	// per-payload result stream.
	OnlyFindings bool
}

// NewJSONLWriter creates a JSONL writer that writes to w. Safe for
// concurrent use.
func NewJSONLWriter(w io.Writer, opts JSONLOptions) *JSONLWriter {
	return &JSONLWriter{
		opts:    opts,
		encoder: jsonutil.NewEncoder(w),
	}
}

// Write writes an event as a single JSON line. Returns nil if the
// event was filtered out by options.
func (jw *JSONLWriter) Write(event events.Event) error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	if jw.opts.OnlyFindings && event.EventType() != events.EventTypeFinding {
		return nil
	}
	return jw.encoder.Encode(event)
}

// Flush is a no-op: every event is written as soon as it arrives.
func (jw *JSONLWriter) Flush() error { return nil }

// Close closes the underlying writer if it implements io.Closer.
func (jw *JSONLWriter) Close() error { return nil }

// SupportsEvent reports true for every event type; filtering happens
// in Write.
func (jw *JSONLWriter) SupportsEvent(events.EventType) bool { return true }
