// Package report renders finished runs as shareable documents:
// Markdown and HTML via templates, PDF via fpdf.
package report

import (
	"time"

	"github.com/promptraid/promptraid/pkg/analyze"
	"github.com/promptraid/promptraid/pkg/defaults"
)

// Finding is one vulnerable response in a report.
type Finding struct {
	Payload    string   `json:"payload"`
	Confidence float64  `json:"confidence"`
	Reason     string   `json:"reason,omitempty"`
	Severity   string   `json:"severity,omitempty"`
	Leaks      []string `json:"leaks,omitempty"`
}

// Summary is the input to every report format.
type Summary struct {
	RunID         string        `json:"run_id"`
	Module        string        `json:"module"`
	Severity      string        `json:"severity,omitempty"`
	Engine        string        `json:"engine,omitempty"`
	StartedAt     time.Time     `json:"started_at"`
	Duration      time.Duration `json:"duration"`
	TotalPayloads int           `json:"total_payloads"`
	Analyzed      int           `json:"analyzed"`
	Vulnerable    int           `json:"vulnerable"`
	Errors        int           `json:"errors"`
	MaxConfidence float64       `json:"max_confidence"`
	Findings      []Finding     `json:"findings,omitempty"`
}

// AddVerdict folds one analyzed payload into the summary, recording a
// finding when the verdict crosses the vulnerability threshold.
func (s *Summary) AddVerdict(payload string, v analyze.Verdict, leaks []string) {
	s.Analyzed++
	if v.Error != "" {
		s.Errors++
		return
	}
	if v.Confidence > s.MaxConfidence {
		s.MaxConfidence = v.Confidence
	}
	if v.Success && v.Confidence >= defaults.VulnerableThreshold {
		s.Vulnerable++
		s.Findings = append(s.Findings, Finding{
			Payload:    payload,
			Confidence: v.Confidence,
			Reason:     v.Reason,
			Severity:   s.Severity,
			Leaks:      leaks,
		})
	}
}

// VulnerabilityRate returns the share of analyzed responses that were
// vulnerable, in [0, 1].
func (s *Summary) VulnerabilityRate() float64 {
	if s.Analyzed == 0 {
		return 0
	}
	return float64(s.Vulnerable) / float64(s.Analyzed)
}
