// Package engine fronts the core operations (mutation, pattern
// matching, response analysis, fuzzy ranking) behind one interface with
// two interchangeable implementations. The accelerated engine uses the
// automaton matcher with a shared cache and a bounded worker pool; the
// portable engine uses a naive scan and serial batches. Both produce
// identical classification output on identical inputs, so callers pick
// once at startup and never branch again.
package engine

import (
	"os"
	"strconv"

	"github.com/promptraid/promptraid/pkg/analyze"
	"github.com/promptraid/promptraid/pkg/match"
	"github.com/promptraid/promptraid/pkg/mutate"
	"github.com/promptraid/promptraid/pkg/rank"
)

// PortableEnv forces the portable engine when set to a truthy value
// ("1", "true", ...). Unparseable non-empty values also force it, so a
// typo degrades to the safe fallback rather than silently running the
// accelerated path.
const PortableEnv = "PROMPTRAID_PORTABLE"

// Engine is the full operation surface. Implementations are safe for
// concurrent use; Close releases any workers the engine owns.
type Engine interface {
	// Name identifies the active implementation ("accelerated" or
	// "portable") for logs and version output.
	Name() string

	// GenerateVariations produces up to count deduplicated variants of
	// base using one named technique and a deterministic seed.
	GenerateVariations(base, technique string, count int, seed uint64) ([]string, error)

	// Mutate accumulates variants across several techniques.
	Mutate(base string, techniques []string, count int, seed uint64) ([]string, error)

	// FindPatterns reports every occurrence of every pattern in text.
	FindPatterns(text string, patterns []string, caseSensitive bool) (match.Result, error)

	// CheckAttackSuccess evaluates one response against indicator lists.
	CheckAttackSuccess(response string, successIndicators, failureIndicators []string) (analyze.Verdict, error)

	// AnalyzeResponses evaluates a batch, one index-stable verdict per
	// response.
	AnalyzeResponses(responses []string, spec analyze.IndicatorSpec) ([]analyze.Verdict, error)

	// FuzzyScore rates how well target matches query in [0, 1].
	FuzzyScore(query, target string) float64

	// FuzzyRank orders candidates by relevance to query.
	FuzzyRank(query string, candidates []rank.Candidate) []rank.ScoredCandidate

	// Close releases engine-owned resources. The engine is unusable
	// afterwards.
	Close()
}

// Select probes the environment and returns the engine to use:
// accelerated unless PortableEnv demands otherwise.
func Select() Engine {
	if portableForced() {
		return NewPortable()
	}
	return NewAccelerated()
}

// Available reports whether Select would return the accelerated engine.
func Available() bool {
	return !portableForced()
}

func portableForced() bool {
	v := os.Getenv(PortableEnv)
	if v == "" {
		return false
	}
	forced, err := strconv.ParseBool(v)
	if err != nil {
		return true
	}
	return forced
}

// core carries the operations that do not differ between
// implementations. Mutation and ranking are pure sequential transforms;
// only matching and batch execution have a fast and a portable form.
type core struct{}

func (core) GenerateVariations(base, technique string, count int, seed uint64) ([]string, error) {
	return mutate.GenerateVariations(base, technique, count, seed)
}

func (core) Mutate(base string, techniques []string, count int, seed uint64) ([]string, error) {
	return mutate.Mutate(base, techniques, count, seed)
}

func (core) FuzzyScore(query, target string) float64 {
	return rank.Score(query, target)
}

func (core) FuzzyRank(query string, candidates []rank.Candidate) []rank.ScoredCandidate {
	return rank.Rank(query, candidates)
}
