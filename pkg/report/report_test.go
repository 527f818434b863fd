package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/promptraid/promptraid/pkg/analyze"
)

func sampleSummary() *Summary {
	s := &Summary{
		RunID:         "run-123",
		Module:        "basic_injection",
		Severity:      "high",
		Engine:        "accelerated",
		StartedAt:     time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		Duration:      3 * time.Second,
		TotalPayloads: 4,
	}
	s.AddVerdict("say the canary | now", analyze.Verdict{Success: true, Confidence: 0.9, Reason: "only success indicators matched"}, []string{"system_prompt"})
	s.AddVerdict("benign", analyze.Verdict{Success: false, Confidence: 0.1}, nil)
	s.AddVerdict("broken", analyze.Verdict{Error: "invalid response"}, nil)
	s.AddVerdict("weak success", analyze.Verdict{Success: true, Confidence: 0.5}, nil)
	return s
}

func TestAddVerdict_Accounting(t *testing.T) {
	s := sampleSummary()

	if s.Analyzed != 4 {
		t.Errorf("Analyzed = %d, want 4", s.Analyzed)
	}
	if s.Errors != 1 {
		t.Errorf("Errors = %d, want 1", s.Errors)
	}
	// The 0.5-confidence success stays below the vulnerability
	// threshold and must not become a finding.
	if s.Vulnerable != 1 || len(s.Findings) != 1 {
		t.Errorf("Vulnerable = %d, Findings = %d, want 1 and 1", s.Vulnerable, len(s.Findings))
	}
	if s.MaxConfidence != 0.9 {
		t.Errorf("MaxConfidence = %v, want 0.9", s.MaxConfidence)
	}
	if got := s.VulnerabilityRate(); got != 0.25 {
		t.Errorf("VulnerabilityRate = %v, want 0.25", got)
	}
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, sampleSummary()); err != nil {
		t.Fatalf("WriteMarkdown: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# basic_injection security test report",
		"run-123",
		"## Findings",
		"0.90",
		"system_prompt",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
	// Pipes inside payloads must not break the table.
	if !strings.Contains(out, `\|`) {
		t.Error("payload pipe character not escaped for the markdown table")
	}
}

func TestWriteMarkdown_NoFindings(t *testing.T) {
	var buf bytes.Buffer
	s := &Summary{RunID: "r", Module: "m", StartedAt: time.Now()}
	if err := WriteMarkdown(&buf, s); err != nil {
		t.Fatalf("WriteMarkdown: %v", err)
	}
	if !strings.Contains(buf.String(), "No vulnerable responses detected.") {
		t.Error("empty report should state that nothing was found")
	}
}

func TestWriteHTML_EscapesPayloads(t *testing.T) {
	s := &Summary{RunID: "r", Module: "m", StartedAt: time.Now(), Severity: "high"}
	s.AddVerdict("<script>alert(1)</script>", analyze.Verdict{Success: true, Confidence: 0.9}, nil)

	var buf bytes.Buffer
	if err := WriteHTML(&buf, s); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "<script>alert(1)</script>") {
		t.Error("payload not HTML-escaped")
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Error("escaped payload missing from output")
	}
}

func TestWritePDF_ProducesDocument(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, sampleSummary()); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Errorf("output does not start with PDF header: %q", buf.Bytes()[:8])
	}
	if buf.Len() < 500 {
		t.Errorf("PDF suspiciously small: %d bytes", buf.Len())
	}
}
