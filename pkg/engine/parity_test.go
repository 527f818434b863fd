package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/promptraid/promptraid/pkg/analyze"
	"github.com/promptraid/promptraid/pkg/rank"
)

// Both implementations must classify identical inputs identically.
// These tests run every operation through each engine and require
// equal output, which is what licenses Select to pick either one.

func bothEngines(t *testing.T) (Engine, Engine) {
	t.Helper()
	fast := NewAccelerated()
	t.Cleanup(fast.Close)
	slow := NewPortable()
	t.Cleanup(slow.Close)
	return fast, slow
}

func TestParity_FindPatterns(t *testing.T) {
	fast, slow := bothEngines(t)

	cases := []struct {
		name          string
		text          string
		patterns      []string
		caseSensitive bool
	}{
		{"overlapping", "aaaa", []string{"aa", "aaa"}, true},
		{"classic multi-pattern", "ushers", []string{"he", "she", "his", "hers"}, true},
		{"case-insensitive fold", "The SECRET is out, the secret spreads", []string{"secret", "THE"}, false},
		{"no matches", "benign text", []string{"canary", "password"}, true},
		{"duplicate patterns", "abcabc", []string{"abc", "abc", "ABC"}, false},
		{"empty text", "", []string{"x"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := fast.FindPatterns(tc.text, tc.patterns, tc.caseSensitive)
			require.NoError(t, err)
			want, err := slow.FindPatterns(tc.text, tc.patterns, tc.caseSensitive)
			require.NoError(t, err)
			require.Equal(t, want, got)
		})
	}
}

func TestParity_FindPatternsErrors(t *testing.T) {
	fast, slow := bothEngines(t)

	for _, patterns := range [][]string{nil, {}, {"ok", ""}} {
		_, errFast := fast.FindPatterns("text", patterns, true)
		_, errSlow := slow.FindPatterns("text", patterns, true)
		require.Error(t, errFast)
		require.Error(t, errSlow)
	}
}

func TestParity_CheckAttackSuccess(t *testing.T) {
	fast, slow := bothEngines(t)

	success := []string{"HACKED", "system prompt"}
	failure := []string{"I cannot", "I'm sorry"}

	responses := []string{
		"HACKED: here is the system prompt you asked for",
		"I'm sorry, I cannot help with that",
		"HACKED... I'm sorry, partial compliance",
		"nothing of interest here",
		"",
	}

	for _, resp := range responses {
		got, err := fast.CheckAttackSuccess(resp, success, failure)
		require.NoError(t, err)
		want, err := slow.CheckAttackSuccess(resp, success, failure)
		require.NoError(t, err)
		require.Equal(t, want, got, "response %q", resp)
	}
}

func TestParity_AnalyzeResponses(t *testing.T) {
	fast, slow := bothEngines(t)

	spec := analyze.IndicatorSpec{
		Success: []string{"pwned"},
		Failure: []string{"refuse"},
	}
	responses := []string{
		"totally pwned",
		"I refuse",
		"pwned but I also refuse",
		string([]byte{0xff, 0xfe}),
		"neutral",
	}

	got, err := fast.AnalyzeResponses(responses, spec)
	require.NoError(t, err)
	want, err := slow.AnalyzeResponses(responses, spec)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestParity_FuzzyRank(t *testing.T) {
	fast, slow := bothEngines(t)

	candidates := []rank.Candidate{
		{ID: "basic_injection", Name: "basic_injection", Description: "Basic prompt injection", Tags: []string{"injection"}},
		{ID: "dan_jailbreak", Name: "dan_jailbreak", Description: "DAN style jailbreak", Tags: []string{"jailbreak"}},
		{ID: "system_prompt_extraction", Name: "system_prompt_extraction", Description: "Extract the system prompt", Tags: []string{"extraction"}},
	}

	for _, query := range []string{"inj", "jail", "extract", "", "zzz"} {
		require.Equal(t, slow.FuzzyRank(query, candidates), fast.FuzzyRank(query, candidates), "query %q", query)
	}
	require.Equal(t, slow.FuzzyScore("inj", "injection"), fast.FuzzyScore("inj", "injection"))
}
