package config

import (
	"errors"
	"flag"
	"testing"
)

func TestValidateDefaults(t *testing.T) {
	var cfg Config
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.RegisterMutationFlags(fs)
	cfg.RegisterOutputFlags(fs)
	if err := fs.Parse(nil); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"negative count", Config{Count: -1}},
		{"count over max", Config{Count: 1000000}},
		{"bad format", Config{OutputFormat: "xml"}},
		{"bad report extension", Config{ReportFile: "out.docx"}},
		{"negative workers", Config{Workers: -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error should wrap ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestTechniqueList(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want []string
	}{
		{"empty", Config{}, nil},
		{"single", Config{Technique: "leetspeak"}, []string{"leetspeak"}},
		{"plural wins", Config{Technique: "rot13", Techniques: "homoglyph, zwsp"}, []string{"homoglyph", "zwsp"}},
		{"trims blanks", Config{Techniques: "a,, b ,"}, []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cfg.TechniqueList()
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("index %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPatternList(t *testing.T) {
	cfg := Config{Patterns: "secret, api_key,,token "}
	got := cfg.PatternList()
	want := []string{"secret", "api_key", "token"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("index %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
