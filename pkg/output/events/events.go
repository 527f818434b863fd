// Package events defines the event types emitted during a test run.
// All events are designed for JSON serialization so every writer and
// hook consumes the same stream.
//
// BaseEvent carries the fields shared by all events and is embedded in
// the specific event types.
package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/promptraid/promptraid/pkg/analyze"
)

// EventType represents the type of output event.
type EventType string

const (
	// EventTypeStart indicates a test run has started.
	EventTypeStart EventType = "start"
	// EventTypeResult indicates a single payload/response result.
	EventTypeResult EventType = "result"
	// EventTypeFinding indicates a vulnerable response was detected.
	EventTypeFinding EventType = "finding"
	// EventTypeError indicates an error occurred.
	EventTypeError EventType = "error"
	// EventTypeSummary indicates a summary of results.
	EventTypeSummary EventType = "summary"
	// EventTypeComplete indicates a test run has completed.
	EventTypeComplete EventType = "complete"
)

// Event is the base interface for all events.
type Event interface {
	EventType() EventType
	Timestamp() time.Time
	RunID() string
}

// BaseEvent contains common fields for all events.
// It is designed to be embedded in specific event types.
type BaseEvent struct {
	Type EventType `json:"type"`
	Time time.Time `json:"timestamp"`
	Run  string    `json:"run_id"`
}

// EventType returns the type of this event.
func (e BaseEvent) EventType() EventType { return e.Type }

// Timestamp returns when this event occurred.
func (e BaseEvent) Timestamp() time.Time { return e.Time }

// RunID returns the unique identifier for the run that produced this
// event.
func (e BaseEvent) RunID() string { return e.Run }

// NewRunID generates a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// NewBase stamps a BaseEvent for the given run.
func NewBase(t EventType, runID string) BaseEvent {
	return BaseEvent{Type: t, Time: time.Now().UTC(), Run: runID}
}

// StartEvent is emitted when a test run begins.
type StartEvent struct {
	BaseEvent
	Module        string   `json:"module"`
	Techniques    []string `json:"techniques,omitempty"`
	TotalPayloads int      `json:"total_payloads"`
	Engine        string   `json:"engine,omitempty"`
}

// ResultEvent is emitted for every analyzed response.
type ResultEvent struct {
	BaseEvent
	Module  string          `json:"module,omitempty"`
	Payload string          `json:"payload"`
	Verdict analyze.Verdict `json:"verdict"`
}

// FindingEvent is emitted when a response crosses the vulnerability
// threshold. Leaks lists leakage pattern names found in the response.
type FindingEvent struct {
	BaseEvent
	Module     string          `json:"module,omitempty"`
	Severity   string          `json:"severity,omitempty"`
	Payload    string          `json:"payload"`
	Verdict    analyze.Verdict `json:"verdict"`
	Leaks      []string        `json:"leaks,omitempty"`
	Confidence float64         `json:"confidence"`
}

// ErrorEvent is emitted when an operation fails.
type ErrorEvent struct {
	BaseEvent
	Message string `json:"message"`
	Context string `json:"context,omitempty"`
}

// SummaryEvent aggregates a finished run.
type SummaryEvent struct {
	BaseEvent
	Module        string  `json:"module,omitempty"`
	TotalPayloads int     `json:"total_payloads"`
	Analyzed      int     `json:"analyzed"`
	Vulnerable    int     `json:"vulnerable"`
	Errors        int     `json:"errors"`
	MaxConfidence float64 `json:"max_confidence"`
}

// CompleteEvent is the final event of a run.
type CompleteEvent struct {
	BaseEvent
	DurationMs int64 `json:"duration_ms"`
}
