package engine

import (
	"runtime"

	"github.com/promptraid/promptraid/pkg/analyze"
	"github.com/promptraid/promptraid/pkg/match"
	"github.com/promptraid/promptraid/pkg/workerpool"
)

// accelerated backs matching with the automaton cache and runs batch
// analysis on a bounded worker pool sized to the CPU count.
type accelerated struct {
	core
	cache    *match.Cache
	matcher  *match.Matcher
	pool     *workerpool.Pool
	analyzer *analyze.Analyzer
}

// NewAccelerated builds the automaton-backed engine sized to the CPU
// count.
func NewAccelerated() Engine {
	return NewAcceleratedWorkers(runtime.GOMAXPROCS(0))
}

// NewAcceleratedWorkers builds the automaton-backed engine with an
// explicit worker count. The automaton cache is shared between direct
// matching and analysis so an indicator set compiles once no matter
// which entry point sees it first.
func NewAcceleratedWorkers(workers int) Engine {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	cache := match.NewCache()
	pool := workerpool.New(workers)
	return &accelerated{
		cache:   cache,
		matcher: match.NewCachedMatcher(cache),
		pool:    pool,
		analyzer: analyze.New(analyze.Options{
			Cache: cache,
			Pool:  pool,
		}),
	}
}

func (e *accelerated) Name() string { return "accelerated" }

func (e *accelerated) FindPatterns(text string, patterns []string, caseSensitive bool) (match.Result, error) {
	return e.matcher.FindPatterns(text, patterns, caseSensitive)
}

func (e *accelerated) CheckAttackSuccess(response string, successIndicators, failureIndicators []string) (analyze.Verdict, error) {
	return e.analyzer.CheckAttackSuccess(response, successIndicators, failureIndicators)
}

func (e *accelerated) AnalyzeResponses(responses []string, spec analyze.IndicatorSpec) ([]analyze.Verdict, error) {
	return e.analyzer.AnalyzeResponses(responses, spec)
}

func (e *accelerated) Close() {
	e.pool.Close()
	e.cache.Clear()
}
