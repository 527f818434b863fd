package rank

import (
	"testing"
)

func TestScore_IdenticalStrings(t *testing.T) {
	for _, s := range []string{"injection", "a", "basic_injection", "DAN Jailbreak"} {
		if got := Score(s, s); got != 1.0 {
			t.Errorf("Score(%q, %q) = %v, want 1.0", s, s, got)
		}
	}
}

func TestScore_CaseInsensitiveIdentity(t *testing.T) {
	if got := Score("INJECTION", "injection"); got != 1.0 {
		t.Errorf("Score = %v, want 1.0", got)
	}
}

func TestScore_NonNegativeAndBounded(t *testing.T) {
	pairs := [][2]string{
		{"xyz", "basic_injection"},
		{"inj", "basic_injection"},
		{"", "anything"},
		{"anything", ""},
		{"longer query than target", "ab"},
		{"bscnj", "basic_injection"},
	}
	for _, p := range pairs {
		got := Score(p[0], p[1])
		if got < 0 || got > 1 {
			t.Errorf("Score(%q, %q) = %v out of [0,1]", p[0], p[1], got)
		}
	}
}

func TestScore_PrefixBeatsSubstringBeatsSubsequence(t *testing.T) {
	prefix := Score("bas", "basic_injection")
	substring := Score("inject", "basic_injection")
	subsequence := Score("bscnj", "basic_injection")

	if prefix <= substring {
		t.Errorf("prefix %.3f should beat substring %.3f", prefix, substring)
	}
	if substring <= subsequence {
		t.Errorf("substring %.3f should beat subsequence %.3f", substring, subsequence)
	}
	if subsequence <= 0 {
		t.Errorf("in-order subsequence should earn partial credit, got %.3f", subsequence)
	}
}

func TestScore_MissingCharactersScoreZero(t *testing.T) {
	if got := Score("xyz", "basic_injection"); got != 0 {
		t.Errorf("Score = %v, want 0", got)
	}
}

func TestRank_OrdersByRelevance(t *testing.T) {
	candidates := []Candidate{
		{ID: "jailbreak/dan", Name: "dan_jailbreak", Description: "DAN-style jailbreak", Tags: []string{"jailbreak", "roleplay"}},
		{ID: "injection/basic", Name: "basic_injection", Description: "Tests for basic prompt injection vulnerabilities", Tags: []string{"injection", "prompt", "owasp"}},
	}

	results := Rank("inj", candidates)
	if len(results) != 2 {
		t.Fatalf("results = %v", results)
	}
	if results[0].ID != "injection/basic" {
		t.Errorf("top result = %q, want injection/basic", results[0].ID)
	}
	if results[0].Score <= results[1].Score {
		t.Errorf("basic_injection %.3f should rank strictly above dan_jailbreak %.3f",
			results[0].Score, results[1].Score)
	}
}

func TestRank_StableTieBreakByInputOrder(t *testing.T) {
	candidates := []Candidate{
		{ID: "a", Name: "zzz"},
		{ID: "b", Name: "zzz"},
		{ID: "c", Name: "zzz"},
	}

	results := Rank("zzz", candidates)
	for i, want := range []string{"a", "b", "c"} {
		if results[i].ID != want {
			t.Fatalf("tie order %v, want input order a,b,c", results)
		}
	}
}

func TestRank_EmptyQueryReturnsInputOrderUnscored(t *testing.T) {
	candidates := []Candidate{
		{ID: "x", Name: "alpha"},
		{ID: "y", Name: "beta"},
	}

	results := Rank("", candidates)
	if len(results) != 2 || results[0].ID != "x" || results[1].ID != "y" {
		t.Fatalf("results = %v, want input order", results)
	}
	for _, r := range results {
		if r.Score != 0 {
			t.Errorf("empty query score = %v, want 0", r.Score)
		}
	}
}

func TestRank_TagMatchLiftsCandidate(t *testing.T) {
	candidates := []Candidate{
		{ID: "plain", Name: "magic_string", Description: "Magic string resource exhaustion"},
		{ID: "tagged", Name: "magic_string_v2", Description: "Magic string resource exhaustion", Tags: []string{"dos"}},
	}

	results := Rank("dos", candidates)
	if results[0].ID != "tagged" {
		t.Errorf("tagged candidate should rank first, got %v", results)
	}
}

func TestRank_NameOutweighsDescription(t *testing.T) {
	candidates := []Candidate{
		{ID: "desc-hit", Name: "unrelated", Description: "extraction of system prompts"},
		{ID: "name-hit", Name: "extraction", Description: "unrelated text"},
	}

	results := Rank("extraction", candidates)
	if results[0].ID != "name-hit" {
		t.Errorf("name match should outrank description match, got %v", results)
	}
}
