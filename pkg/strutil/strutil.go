// Package strutil provides shared string utilities for the promptraid codebase.
package strutil

import (
	"strings"
	"unicode/utf8"
)

// Truncate returns s cut to maxLen runes. If truncated, a "..." suffix
// is appended (included in maxLen). Returns s unchanged if
// utf8.RuneCountInString(s) <= maxLen.
// Safe for maxLen <= 0 (returns empty string).
// This function is rune-aware and never produces invalid UTF-8.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runeCount := utf8.RuneCountInString(s)
	if runeCount <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string([]rune(s)[:maxLen])
	}
	return string([]rune(s)[:maxLen-3]) + "..."
}

// Snippet flattens s to a single line and truncates it to maxLen runes.
// LLM responses routinely span many lines; table and report cells need
// one-line excerpts.
func Snippet(s string, maxLen int) string {
	flat := strings.Join(strings.Fields(s), " ")
	return Truncate(flat, maxLen)
}

// FoldASCII lowercases ASCII letters in s without touching other bytes.
// Unlike strings.ToLower it never changes the byte length of the input,
// so byte offsets into the folded string are valid offsets into s.
func FoldASCII(s string) string {
	hasUpper := false
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return s
	}
	b := []byte(s)
	for i := 0; i < len(b); i++ {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}
