package match

import (
	"fmt"

	"github.com/promptraid/promptraid/pkg/strutil"
)

// Finder is the pattern-location contract both the automaton matcher
// and the naive fallback satisfy. Consumers that only need "where do
// these patterns occur" depend on this instead of a concrete matcher,
// which is what keeps the fast and portable engines interchangeable.
type Finder interface {
	FindPatterns(text string, patterns []string, caseSensitive bool) (Result, error)
}

var (
	_ Finder = (*Matcher)(nil)
	_ Finder = (*Naive)(nil)
)

// Naive is the portable reference finder: a per-pattern sliding scan
// with no construction cost and no cache. O(len(text) * patterns) where
// the automaton is O(len(text)), but byte-for-byte the same results.
// It doubles as the oracle in matcher tests.
type Naive struct{}

// FindPatterns scans text once per pattern. Validation, dedup and
// result shape match Matcher.FindPatterns exactly.
func (Naive) FindPatterns(text string, patterns []string, caseSensitive bool) (Result, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("%w: empty pattern set", ErrInvalidArgument)
	}
	for _, p := range patterns {
		if p == "" {
			return nil, fmt.Errorf("%w: empty pattern", ErrInvalidArgument)
		}
	}

	scanText := text
	if !caseSensitive {
		scanText = strutil.FoldASCII(text)
	}

	result := make(Result, len(patterns))
	for _, original := range patterns {
		if _, dup := result[original]; dup {
			continue
		}
		needle := original
		if !caseSensitive {
			needle = strutil.FoldASCII(original)
		}

		offsets := []int{}
		for i := 0; i+len(needle) <= len(scanText); i++ {
			if scanText[i:i+len(needle)] == needle {
				offsets = append(offsets, i)
			}
		}
		result[original] = offsets
	}
	return result, nil
}
