// Package analyze evaluates LLM responses against indicator sets and
// produces success/confidence verdicts. Matching runs through the
// multi-pattern matcher so a response is scanned once regardless of how
// many indicators a module defines.
package analyze

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/promptraid/promptraid/pkg/match"
	"github.com/promptraid/promptraid/pkg/scoring"
	"github.com/promptraid/promptraid/pkg/workerpool"
)

// ErrInvalidResponse reports a response that cannot be analyzed, such
// as malformed UTF-8. In batch mode the error lands in the verdict slot
// for that response instead of failing the batch.
var ErrInvalidResponse = errors.New("analyze: invalid response")

// IndicatorSpec holds the two disjoint indicator lists. Checks are
// case-insensitive substring containment.
type IndicatorSpec struct {
	Success []string `json:"success_indicators" yaml:"success_indicators"`
	Failure []string `json:"failure_indicators" yaml:"failure_indicators"`
}

// Verdict is the outcome of analyzing one response. Error is set when
// the response could not be evaluated at all; a set Error means
// Success/Confidence carry no information, which keeps "not vulnerable"
// distinguishable from "could not be evaluated".
type Verdict struct {
	Success    bool            `json:"success"`
	Confidence float64         `json:"confidence"`
	Reason     string          `json:"reason,omitempty"`
	Indicators map[string]bool `json:"indicators,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// Analyzer owns the automaton cache used across calls. The zero value
// is not usable; construct with New.
type Analyzer struct {
	cache  *match.Cache
	finder match.Finder
	pool   *workerpool.Pool
}

// Options configures an Analyzer.
type Options struct {
	// Cache is the automaton cache to use. Nil creates a private cache.
	// Ignored when Finder is set.
	Cache *match.Cache

	// Finder overrides the pattern finder. Nil uses a cached automaton
	// matcher. The portable engine passes match.Naive here.
	Finder match.Finder

	// Pool executes batch analysis. Nil means batches run serially;
	// the pool's lifetime stays with the caller.
	Pool *workerpool.Pool
}

// New creates an Analyzer.
func New(opts Options) *Analyzer {
	a := &Analyzer{
		finder: opts.Finder,
		pool:   opts.Pool,
	}
	if a.finder == nil {
		a.cache = opts.Cache
		if a.cache == nil {
			a.cache = match.NewCache()
		}
		a.finder = match.NewCachedMatcher(a.cache)
	}
	return a
}

// CheckAttackSuccess evaluates one response against the indicator
// lists. An empty spec (no indicators at all) yields a low-confidence
// negative verdict rather than an error: the module simply declared
// nothing to look for.
func (a *Analyzer) CheckAttackSuccess(response string, successIndicators, failureIndicators []string) (Verdict, error) {
	if !utf8.ValidString(response) {
		return Verdict{}, fmt.Errorf("%w: malformed UTF-8", ErrInvalidResponse)
	}

	spec := IndicatorSpec{Success: successIndicators, Failure: failureIndicators}
	union := spec.union()
	if len(union) == 0 {
		return Verdict{
			Success:    false,
			Confidence: scoring.Evaluate(scoring.Input{}).Confidence,
			Reason:     "no indicators configured",
			Indicators: map[string]bool{},
		}, nil
	}

	result, err := a.finder.FindPatterns(response, union, false)
	if err != nil {
		return Verdict{}, err
	}

	return verdictFrom(spec, result), nil
}

// AnalyzeResponses evaluates each response independently and returns
// one verdict per response, output index i corresponding to input index
// i regardless of execution order. Per-response failures surface in the
// matching verdict slot; the batch itself only fails on an unusable
// indicator spec.
func (a *Analyzer) AnalyzeResponses(responses []string, spec IndicatorSpec) ([]Verdict, error) {
	union := spec.union()
	if len(union) > 0 && a.cache != nil {
		// Build once before fan-out so workers share a read-only automaton.
		if err := a.cache.Warm(union, false); err != nil {
			return nil, err
		}
	}

	verdicts := make([]Verdict, len(responses))
	analyzeOne := func(i int) {
		v, err := a.CheckAttackSuccess(responses[i], spec.Success, spec.Failure)
		if err != nil {
			verdicts[i] = Verdict{Error: err.Error()}
			return
		}
		verdicts[i] = v
	}

	if a.pool != nil {
		a.pool.ParallelFor(len(responses), analyzeOne)
	} else {
		for i := range responses {
			analyzeOne(i)
		}
	}
	return verdicts, nil
}

func (s IndicatorSpec) union() []string {
	union := make([]string, 0, len(s.Success)+len(s.Failure))
	for _, ind := range s.Success {
		if ind != "" {
			union = append(union, ind)
		}
	}
	for _, ind := range s.Failure {
		if ind != "" {
			union = append(union, ind)
		}
	}
	return union
}

// verdictFrom partitions match results back into the two indicator
// lists and scores them.
func verdictFrom(spec IndicatorSpec, result match.Result) Verdict {
	indicators := make(map[string]bool, len(result))

	var input scoring.Input
	for _, ind := range spec.Success {
		if ind == "" {
			continue
		}
		hits := len(result[ind])
		indicators[ind] = hits > 0
		if hits > 0 {
			input.SuccessMatches++
			input.SuccessOccurrences += hits
		}
	}
	for _, ind := range spec.Failure {
		if ind == "" {
			continue
		}
		hits := len(result[ind])
		indicators[ind] = hits > 0
		if hits > 0 {
			input.FailureMatches++
		}
	}

	scored := scoring.Evaluate(input)
	return Verdict{
		Success:    scored.Success,
		Confidence: scored.Confidence,
		Reason:     scored.Reason,
		Indicators: indicators,
	}
}
