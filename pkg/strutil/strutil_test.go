package strutil

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"shorter than max", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"truncated with ellipsis", "hello world", 8, "hello..."},
		{"zero max", "hello", 0, ""},
		{"negative max", "hello", -1, ""},
		{"tiny max skips ellipsis", "hello", 2, "he"},
		{"multibyte runes", "héllo wörld", 8, "héllo..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.maxLen)
			if got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestSnippetFlattensNewlines(t *testing.T) {
	got := Snippet("I cannot\n\thelp  with\nthat", 50)
	if got != "I cannot help with that" {
		t.Errorf("Snippet = %q", got)
	}
}

func TestFoldASCII(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello World", "hello world"},
		{"already lower", "already lower"},
		{"MIXED123!@#", "mixed123!@#"},
		{"", ""},
		{"ÜBER Straße", "ÜBER straße"}, // non-ASCII untouched
	}

	for _, tt := range tests {
		got := FoldASCII(tt.input)
		if got != tt.want {
			t.Errorf("FoldASCII(%q) = %q, want %q", tt.input, got, tt.want)
		}
		if len(got) != len(tt.input) {
			t.Errorf("FoldASCII(%q) changed byte length %d -> %d", tt.input, len(tt.input), len(got))
		}
	}
}
