package match

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/spaolacci/murmur3"

	"github.com/promptraid/promptraid/pkg/strutil"
)

// Cache memoizes compiled automatons keyed by the exact pattern set and
// case flag. It is pure memoization: eviction at any point is safe and
// never observable through match results. Entries are built once and
// only read afterwards, so concurrent analysis tasks can share a cache
// without locking on the scan path.
//
// The cache is an explicit object rather than a process-wide singleton
// so tests and callers control its lifetime and can start from empty.
type Cache struct {
	entries sync.Map // cacheKey -> *compiledSet
}

// NewCache returns an empty automaton cache.
func NewCache() *Cache {
	return &Cache{}
}

type cacheKey struct {
	h1, h2        uint64
	caseSensitive bool
}

// keyFor canonicalizes the pattern set (sorted, folded for
// case-insensitive sets, NUL-joined) and hashes it. Pattern strings
// never contain NUL in practice; a set that does still hashes
// consistently because ordering and folding are applied first.
func keyFor(patterns []string, caseSensitive bool) cacheKey {
	canonical := make([]string, len(patterns))
	for i, p := range patterns {
		if caseSensitive {
			canonical[i] = p
		} else {
			// Same fold as compilation, so sets that compile to the same
			// automaton share a key and sets that do not, do not.
			canonical[i] = strutil.FoldASCII(p)
		}
	}
	sort.Strings(canonical)

	h1, h2 := murmur3.Sum128([]byte(strings.Join(canonical, "\x00")))
	return cacheKey{h1: h1, h2: h2, caseSensitive: caseSensitive}
}

func (c *Cache) get(patterns []string, caseSensitive bool) (*compiledSet, error) {
	key := keyFor(patterns, caseSensitive)

	if cached, ok := c.entries.Load(key); ok {
		return cached.(*compiledSet), nil
	}

	compiled := compilePatterns(patterns, caseSensitive)

	// LoadOrStore keeps the automaton single-instanced under races; a
	// losing builder's work is discarded.
	actual, _ := c.entries.LoadOrStore(key, compiled)
	return actual.(*compiledSet), nil
}

// Warm builds and caches the automaton for a pattern set ahead of use.
// Batch analysis warms the cache once before fanning out so concurrent
// tasks only ever read a fully built automaton.
func (c *Cache) Warm(patterns []string, caseSensitive bool) error {
	if len(patterns) == 0 {
		return fmt.Errorf("%w: empty pattern set", ErrInvalidArgument)
	}
	for _, p := range patterns {
		if p == "" {
			return fmt.Errorf("%w: empty pattern", ErrInvalidArgument)
		}
	}
	_, err := c.get(patterns, caseSensitive)
	return err
}

// Size returns the number of cached automatons.
func (c *Cache) Size() int {
	count := 0
	c.entries.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

// Clear evicts all cached automatons. Primarily useful for tests and
// long-running callers bounding memory.
func (c *Cache) Clear() {
	c.entries.Range(func(key, _ any) bool {
		c.entries.Delete(key)
		return true
	})
}
