// Package match provides multi-pattern substring search for response
// scanning. A single automaton pass over the text reports every
// occurrence of every pattern, so indicator checks stay linear in the
// response size no matter how many indicators a module registers.
package match

import (
	"errors"
	"fmt"
	"sort"

	"github.com/promptraid/promptraid/pkg/strutil"
)

// ErrInvalidArgument reports an unusable pattern set. An empty set is
// rejected rather than returning an empty result so callers can tell
// "searched, found nothing" apart from "searched nothing".
var ErrInvalidArgument = errors.New("match: invalid argument")

// Result maps each queried pattern (original casing) to the ascending
// byte offsets of its occurrences in the searched text. Every queried
// pattern is present as a key; an unmatched pattern maps to an empty
// slice.
type Result map[string][]int

// Matcher locates pattern sets in text, optionally memoizing compiled
// automatons across calls. The zero value is usable and builds a fresh
// automaton per call.
type Matcher struct {
	cache *Cache
}

// NewMatcher returns a Matcher that compiles an automaton per call.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// NewCachedMatcher returns a Matcher that memoizes compiled automatons
// in the given cache. The cache is owned by the caller; passing the
// same cache to several matchers shares compiled automatons between
// them.
func NewCachedMatcher(cache *Cache) *Matcher {
	return &Matcher{cache: cache}
}

// FindPatterns scans text once and reports every occurrence of every
// pattern, including overlapping ones. Offsets are byte offsets into
// text. With caseSensitive=false, ASCII letters are folded on both
// sides; folding is length-preserving so reported offsets remain valid
// for slicing the original text.
func (m *Matcher) FindPatterns(text string, patterns []string, caseSensitive bool) (Result, error) {
	compiled, err := m.compile(patterns, caseSensitive)
	if err != nil {
		return nil, err
	}

	scanText := text
	if !caseSensitive {
		scanText = strutil.FoldASCII(text)
	}

	offsets := make([][]int, len(compiled.auto.patterns))
	compiled.auto.scan(scanText, func(patternIdx int32, start int) {
		offsets[patternIdx] = append(offsets[patternIdx], start)
	})

	// The scan emits matches in end-offset order; overlapping patterns
	// of different lengths can emit starts out of order.
	for _, offs := range offsets {
		sort.Ints(offs)
	}

	result := make(Result, len(patterns))
	for original, idx := range compiled.byOriginal {
		offs := offsets[idx]
		if offs == nil {
			offs = []int{}
		}
		result[original] = offs
	}
	return result, nil
}

// FindPatterns is the package-level convenience form using a throwaway
// Matcher.
func FindPatterns(text string, patterns []string, caseSensitive bool) (Result, error) {
	return NewMatcher().FindPatterns(text, patterns, caseSensitive)
}

// compiled pairs an automaton with the mapping from the caller's
// original pattern strings to automaton pattern indexes.
type compiledSet struct {
	auto       *automaton
	byOriginal map[string]int32
}

func (m *Matcher) compile(patterns []string, caseSensitive bool) (*compiledSet, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("%w: empty pattern set", ErrInvalidArgument)
	}
	for _, p := range patterns {
		if p == "" {
			return nil, fmt.Errorf("%w: empty pattern", ErrInvalidArgument)
		}
	}

	if m.cache != nil {
		return m.cache.get(patterns, caseSensitive)
	}
	return compilePatterns(patterns, caseSensitive), nil
}

// compilePatterns dedupes the pattern set (by folded form when
// case-insensitive) and builds the automaton over the deduped list.
func compilePatterns(patterns []string, caseSensitive bool) *compiledSet {
	byOriginal := make(map[string]int32, len(patterns))
	byFolded := make(map[string]int32, len(patterns))
	unique := make([]string, 0, len(patterns))

	for _, p := range patterns {
		key := p
		if !caseSensitive {
			key = strutil.FoldASCII(p)
		}
		idx, seen := byFolded[key]
		if !seen {
			idx = int32(len(unique))
			unique = append(unique, key)
			byFolded[key] = idx
		}
		byOriginal[p] = idx
	}

	return &compiledSet{
		auto:       buildAutomaton(unique),
		byOriginal: byOriginal,
	}
}
