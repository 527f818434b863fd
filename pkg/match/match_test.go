package match

import (
	"errors"
	"sort"
	"strings"
	"testing"
)

func TestFindPatterns_OverlappingOccurrences(t *testing.T) {
	result, err := FindPatterns("aaa", []string{"aa"}, true)
	if err != nil {
		t.Fatalf("FindPatterns: %v", err)
	}

	offsets := result["aa"]
	if len(offsets) != 2 || offsets[0] != 0 || offsets[1] != 1 {
		t.Errorf("overlapping offsets = %v, want [0 1]", offsets)
	}
}

func TestFindPatterns_EveryPatternPresent(t *testing.T) {
	patterns := []string{"cannot", "CANARY_123", "missing"}
	result, err := FindPatterns("I cannot say CANARY_123", patterns, true)
	if err != nil {
		t.Fatalf("FindPatterns: %v", err)
	}

	if len(result) != 3 {
		t.Fatalf("result has %d keys, want 3", len(result))
	}
	for _, p := range patterns {
		offsets, ok := result[p]
		if !ok {
			t.Errorf("pattern %q missing from result", p)
			continue
		}
		if offsets == nil {
			t.Errorf("pattern %q has nil offsets, want empty slice", p)
		}
	}
	if len(result["missing"]) != 0 {
		t.Errorf("unmatched pattern has offsets %v", result["missing"])
	}
}

func TestFindPatterns_ByteOffsetsInBounds(t *testing.T) {
	text := "über cannot über cannot über"
	patterns := []string{"cannot", "über", "er c"}
	result, err := FindPatterns(text, patterns, true)
	if err != nil {
		t.Fatalf("FindPatterns: %v", err)
	}

	for pattern, offsets := range result {
		if !sort.IntsAreSorted(offsets) {
			t.Errorf("offsets for %q not ascending: %v", pattern, offsets)
		}
		for _, off := range offsets {
			if off < 0 || off+len(pattern) > len(text) {
				t.Fatalf("offset %d out of bounds for %q in text of %d bytes", off, pattern, len(text))
			}
			if text[off:off+len(pattern)] != pattern {
				t.Errorf("slice at %d = %q, want %q", off, text[off:off+len(pattern)], pattern)
			}
		}
	}
}

func TestFindPatterns_CaseInsensitive(t *testing.T) {
	result, err := FindPatterns("I CANNOT comply. i cannot.", []string{"cannot"}, false)
	if err != nil {
		t.Fatalf("FindPatterns: %v", err)
	}

	if got := result["cannot"]; len(got) != 2 {
		t.Errorf("case-insensitive offsets = %v, want 2 matches", got)
	}
}

func TestFindPatterns_CaseInsensitiveOffsetsSliceOriginal(t *testing.T) {
	text := "prefix CaNaRy suffix"
	result, err := FindPatterns(text, []string{"canary"}, false)
	if err != nil {
		t.Fatalf("FindPatterns: %v", err)
	}

	offsets := result["canary"]
	if len(offsets) != 1 {
		t.Fatalf("offsets = %v, want one match", offsets)
	}
	if got := text[offsets[0] : offsets[0]+len("canary")]; got != "CaNaRy" {
		t.Errorf("original-text slice = %q, want CaNaRy", got)
	}
}

func TestFindPatterns_CaseSensitiveDistinguishes(t *testing.T) {
	result, err := FindPatterns("Secret secret", []string{"Secret", "secret"}, true)
	if err != nil {
		t.Fatalf("FindPatterns: %v", err)
	}
	if len(result["Secret"]) != 1 || result["Secret"][0] != 0 {
		t.Errorf("Secret offsets = %v", result["Secret"])
	}
	if len(result["secret"]) != 1 || result["secret"][0] != 7 {
		t.Errorf("secret offsets = %v", result["secret"])
	}
}

func TestFindPatterns_DuplicatePatternsCollapse(t *testing.T) {
	result, err := FindPatterns("abc abc", []string{"abc", "abc"}, true)
	if err != nil {
		t.Fatalf("FindPatterns: %v", err)
	}
	if len(result) != 1 {
		t.Errorf("result has %d keys, want 1", len(result))
	}
	if got := result["abc"]; len(got) != 2 {
		t.Errorf("offsets = %v, want 2 matches", got)
	}
}

func TestFindPatterns_EmptySetRejected(t *testing.T) {
	_, err := FindPatterns("some text", nil, true)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestFindPatterns_EmptyPatternRejected(t *testing.T) {
	_, err := FindPatterns("some text", []string{"ok", ""}, true)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestFindPatterns_EmptyText(t *testing.T) {
	result, err := FindPatterns("", []string{"x"}, true)
	if err != nil {
		t.Fatalf("FindPatterns: %v", err)
	}
	if len(result["x"]) != 0 {
		t.Errorf("offsets in empty text = %v", result["x"])
	}
}

func TestFindPatterns_ManyPatternsSinglePass(t *testing.T) {
	// A large pattern set against repeated text exercises failure links
	// and shared-suffix emission.
	text := strings.Repeat("ushers ", 100)
	result, err := FindPatterns(text, []string{"he", "she", "his", "hers", "ushers"}, true)
	if err != nil {
		t.Fatalf("FindPatterns: %v", err)
	}

	if len(result["she"]) != 100 {
		t.Errorf("she matched %d times, want 100", len(result["she"]))
	}
	if len(result["he"]) != 100 {
		t.Errorf("he matched %d times, want 100", len(result["he"]))
	}
	if len(result["hers"]) != 100 {
		t.Errorf("hers matched %d times, want 100", len(result["hers"]))
	}
	if len(result["his"]) != 0 {
		t.Errorf("his matched %d times, want 0", len(result["his"]))
	}
	if len(result["ushers"]) != 100 {
		t.Errorf("ushers matched %d times, want 100", len(result["ushers"]))
	}
}

func TestCache_ReusesCompiledAutomaton(t *testing.T) {
	cache := NewCache()
	m := NewCachedMatcher(cache)

	patterns := []string{"alpha", "beta"}
	if _, err := m.FindPatterns("alpha", patterns, true); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if cache.Size() != 1 {
		t.Fatalf("cache size = %d, want 1", cache.Size())
	}

	first, _ := cache.get(patterns, true)
	second, _ := cache.get([]string{"beta", "alpha"}, true) // order-independent key
	if first != second {
		t.Error("equivalent pattern sets compiled twice")
	}
}

func TestCache_CaseFlagSeparatesEntries(t *testing.T) {
	cache := NewCache()
	m := NewCachedMatcher(cache)

	if _, err := m.FindPatterns("x", []string{"x"}, true); err != nil {
		t.Fatal(err)
	}
	if _, err := m.FindPatterns("x", []string{"x"}, false); err != nil {
		t.Fatal(err)
	}

	if cache.Size() != 2 {
		t.Errorf("cache size = %d, want 2 (one per case flag)", cache.Size())
	}

	cache.Clear()
	if cache.Size() != 0 {
		t.Errorf("cache size after Clear = %d", cache.Size())
	}
}

func TestCache_EvictionNotObservable(t *testing.T) {
	cache := NewCache()
	m := NewCachedMatcher(cache)

	before, err := m.FindPatterns("aaa", []string{"aa"}, true)
	if err != nil {
		t.Fatal(err)
	}
	cache.Clear()
	after, err := m.FindPatterns("aaa", []string{"aa"}, true)
	if err != nil {
		t.Fatal(err)
	}

	if len(before["aa"]) != len(after["aa"]) {
		t.Errorf("results differ across eviction: %v vs %v", before["aa"], after["aa"])
	}
}
