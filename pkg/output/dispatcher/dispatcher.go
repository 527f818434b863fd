// Package dispatcher routes run events to registered writers and
// hooks. Writers persist events to output formats (JSON, JSONL, table);
// hooks feed live integrations (metrics, traces). The dispatcher
// decouples event producers from consumers: the run loop emits once and
// every consumer sees the stream.
package dispatcher

import (
	"context"
	"sync"

	"github.com/promptraid/promptraid/pkg/output/events"
)

// Writer is the interface for all output writers.
type Writer interface {
	// Write writes an event to the output.
	Write(event events.Event) error

	// Flush ensures all buffered events are written.
	Flush() error

	// Close closes the writer and releases any resources.
	Close() error

	// SupportsEvent returns true if the writer handles this event type.
	SupportsEvent(eventType events.EventType) bool
}

// Hook is the interface for event hooks. Hooks receive events in real
// time; a hook returning an error never fails the run.
type Hook interface {
	// OnEvent is called for each matching event.
	OnEvent(ctx context.Context, event events.Event) error

	// EventTypes returns the event types this hook handles.
	// Return nil or an empty slice to receive all events.
	EventTypes() []events.EventType
}

// Dispatcher routes events to writers and hooks. Safe for concurrent
// use.
type Dispatcher struct {
	mu      sync.RWMutex
	writers []Writer
	hooks   []Hook

	async  bool
	hookWG sync.WaitGroup
}

// Config configures dispatcher behavior.
type Config struct {
	// Async calls hooks in goroutines so a slow integration never
	// stalls the run loop. Close waits for in-flight hook calls.
	Async bool
}

// New creates an event dispatcher.
func New(cfg Config) *Dispatcher {
	return &Dispatcher{async: cfg.Async}
}

// RegisterWriter adds a writer. Writers receive events matching their
// SupportsEvent filter.
func (d *Dispatcher) RegisterWriter(w Writer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.writers = append(d.writers, w)
}

// RegisterHook adds a hook. Hooks receive events matching their
// EventTypes filter.
func (d *Dispatcher) RegisterHook(h Hook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hooks = append(d.hooks, h)
}

// Dispatch sends an event to all registered writers and hooks. It
// returns nil even when individual consumers fail so every consumer
// gets a chance to see the event.
func (d *Dispatcher) Dispatch(ctx context.Context, event events.Event) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, w := range d.writers {
		if w.SupportsEvent(event.EventType()) {
			if err := w.Write(event); err != nil {
				continue
			}
		}
	}

	for _, h := range d.hooks {
		if !hookSupportsEvent(h, event.EventType()) {
			continue
		}
		if d.async {
			d.hookWG.Add(1)
			go func(hook Hook) {
				defer d.hookWG.Done()
				_ = hook.OnEvent(ctx, event)
			}(h)
		} else {
			_ = h.OnEvent(ctx, event)
		}
	}

	return nil
}

func hookSupportsEvent(h Hook, eventType events.EventType) bool {
	types := h.EventTypes()
	if len(types) == 0 {
		return true
	}
	for _, et := range types {
		if et == eventType {
			return true
		}
	}
	return false
}

// Flush flushes all registered writers.
func (d *Dispatcher) Flush() error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, w := range d.writers {
		_ = w.Flush()
	}
	return nil
}

// Close waits for in-flight async hooks, then flushes and closes all
// writers. The dispatcher must not be used afterwards.
func (d *Dispatcher) Close() error {
	d.hookWG.Wait()

	d.mu.Lock()
	defer d.mu.Unlock()
	for _, w := range d.writers {
		_ = w.Flush()
		_ = w.Close()
	}
	return nil
}
