package engine

import (
	"github.com/promptraid/promptraid/pkg/analyze"
	"github.com/promptraid/promptraid/pkg/match"
)

// portable has no automaton, no cache and no pool. Matching is a naive
// per-pattern scan and batches run serially, which keeps it correct on
// any platform at the cost of throughput.
type portable struct {
	core
	finder   match.Naive
	analyzer *analyze.Analyzer
}

// NewPortable builds the fallback engine.
func NewPortable() Engine {
	return &portable{
		analyzer: analyze.New(analyze.Options{Finder: match.Naive{}}),
	}
}

func (e *portable) Name() string { return "portable" }

func (e *portable) FindPatterns(text string, patterns []string, caseSensitive bool) (match.Result, error) {
	return e.finder.FindPatterns(text, patterns, caseSensitive)
}

func (e *portable) CheckAttackSuccess(response string, successIndicators, failureIndicators []string) (analyze.Verdict, error) {
	return e.analyzer.CheckAttackSuccess(response, successIndicators, failureIndicators)
}

func (e *portable) AnalyzeResponses(responses []string, spec analyze.IndicatorSpec) ([]analyze.Verdict, error) {
	return e.analyzer.AnalyzeResponses(responses, spec)
}

func (e *portable) Close() {}
