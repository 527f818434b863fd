package writers

import (
	"fmt"
	"io"
	"sync"

	"github.com/promptraid/promptraid/pkg/output/dispatcher"
	"github.com/promptraid/promptraid/pkg/output/events"
	"github.com/promptraid/promptraid/pkg/strutil"
	"github.com/promptraid/promptraid/pkg/ui"
)

// Compile-time interface check.
var _ dispatcher.Writer = (*TableWriter)(nil)

// payloadColumn is the display width reserved for payload snippets.
const payloadColumn = 48

// TableWriter renders events as human-readable lines for terminals.
// Results print one line each; findings get an emphasized line; the
// summary is a short block at the end.
type TableWriter struct {
	w     io.Writer
	mu    sync.Mutex
	color bool
}

// NewTableWriter creates a table writer. Color is applied when the
// terminal supports it.
func NewTableWriter(w io.Writer) *TableWriter {
	return &TableWriter{w: w, color: ui.ColorEnabled()}
}

// Write renders one event.
func (tw *TableWriter) Write(event events.Event) error {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	switch e := event.(type) {
	case *events.StartEvent:
		return tw.writeStart(e)
	case *events.ResultEvent:
		return tw.writeResult(e)
	case *events.FindingEvent:
		return tw.writeFinding(e)
	case *events.ErrorEvent:
		return tw.writeError(e)
	case *events.SummaryEvent:
		return tw.writeSummary(e)
	default:
		return nil
	}
}

func (tw *TableWriter) writeStart(e *events.StartEvent) error {
	_, err := fmt.Fprintf(tw.w, "%s module=%s payloads=%d engine=%s\n",
		tw.styled(ui.SectionStyle.Render, "run"), e.Module, e.TotalPayloads, e.Engine)
	return err
}

func (tw *TableWriter) writeResult(e *events.ResultEvent) error {
	label := "guarded"
	if e.Verdict.Success {
		label = "vulnerable"
	}
	if e.Verdict.Error != "" {
		label = "error"
	}
	styled := label
	if tw.color {
		styled = ui.VerdictStyle(e.Verdict.Success, e.Verdict.Confidence).Render(label)
	}
	_, err := fmt.Fprintf(tw.w, "  %-10s conf=%.2f %s\n",
		styled, e.Verdict.Confidence, strutil.Snippet(e.Payload, payloadColumn))
	return err
}

func (tw *TableWriter) writeFinding(e *events.FindingEvent) error {
	marker := ui.Icon("✗", "[!]")
	line := fmt.Sprintf("%s FINDING %s conf=%.2f %s",
		marker, e.Severity, e.Confidence, strutil.Snippet(e.Payload, payloadColumn))
	if len(e.Leaks) > 0 {
		line += fmt.Sprintf(" leaks=%v", e.Leaks)
	}
	if tw.color {
		line = ui.VulnerableStyle.Render(line)
	}
	_, err := fmt.Fprintln(tw.w, line)
	return err
}

func (tw *TableWriter) writeError(e *events.ErrorEvent) error {
	_, err := fmt.Fprintf(tw.w, "  %s %s\n", ui.Icon("⚠", "[x]"), e.Message)
	return err
}

func (tw *TableWriter) writeSummary(e *events.SummaryEvent) error {
	_, err := fmt.Fprintf(tw.w, "\n%s analyzed=%d vulnerable=%d errors=%d max_confidence=%.2f\n",
		tw.styled(ui.SectionStyle.Render, "summary"), e.Analyzed, e.Vulnerable, e.Errors, e.MaxConfidence)
	return err
}

func (tw *TableWriter) styled(render func(...string) string, s string) string {
	if !tw.color {
		return s
	}
	return render(s)
}

// Flush is a no-op; lines are written unbuffered.
func (tw *TableWriter) Flush() error { return nil }

// Close is a no-op.
func (tw *TableWriter) Close() error { return nil }

// SupportsEvent skips the complete event, which carries nothing a
// human reading the table needs.
func (tw *TableWriter) SupportsEvent(t events.EventType) bool {
	return t != events.EventTypeComplete
}
