package writers

import (
	"io"
	"sync"

	"github.com/promptraid/promptraid/pkg/jsonutil"
	"github.com/promptraid/promptraid/pkg/output/dispatcher"
	"github.com/promptraid/promptraid/pkg/output/events"
)

// Compile-time interface check.
var _ dispatcher.Writer = (*JSONWriter)(nil)

// JSONWriter buffers all events in memory and writes them as a single
// JSON array on Close. Suitable for batch file output; use JSONLWriter
// for streaming.
type JSONWriter struct {
	w      io.Writer
	mu     sync.Mutex
	opts   JSONOptions
	buffer []events.Event
}

// JSONOptions configures the JSON writer behavior.
type JSONOptions struct {
	// Pretty enables indented output.
	Pretty bool
}

// NewJSONWriter creates a JSON array writer that writes to w on Close.
// Safe for concurrent use.
func NewJSONWriter(w io.Writer, opts JSONOptions) *JSONWriter {
	return &JSONWriter{w: w, opts: opts}
}

// Write buffers an event for the array written at Close.
func (jw *JSONWriter) Write(event events.Event) error {
	jw.mu.Lock()
	defer jw.mu.Unlock()
	jw.buffer = append(jw.buffer, event)
	return nil
}

// Flush is a no-op; the array is only complete at Close.
func (jw *JSONWriter) Flush() error { return nil }

// Close writes all buffered events as one JSON array.
func (jw *JSONWriter) Close() error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	if jw.buffer == nil {
		// An empty run still produces a valid JSON array.
		jw.buffer = []events.Event{}
	}

	var (
		data []byte
		err  error
	)
	if jw.opts.Pretty {
		data, err = jsonutil.MarshalIndent(jw.buffer, "", "  ")
	} else {
		data, err = jsonutil.Marshal(jw.buffer)
	}
	if err != nil {
		return err
	}
	if _, err := jw.w.Write(data); err != nil {
		return err
	}
	_, err = jw.w.Write([]byte{'\n'})
	return err
}

// SupportsEvent reports true for every event type.
func (jw *JSONWriter) SupportsEvent(events.EventType) bool { return true }
