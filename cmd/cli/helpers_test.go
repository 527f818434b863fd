package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/promptraid/promptraid/pkg/config"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"simple", "a\nb\nc\n", []string{"a", "b", "c"}},
		{"no trailing newline", "a\nb", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"skips blank lines", "a\n\n\nb\n", []string{"a", "b"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitLines([]byte(tt.in))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestReadLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "responses.txt")
	if err := os.WriteFile(path, []byte("first\nsecond\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	lines, err := readLines(path)
	if err != nil {
		t.Fatalf("readLines: %v", err)
	}
	if len(lines) != 2 || lines[0] != "first" || lines[1] != "second" {
		t.Errorf("unexpected lines: %v", lines)
	}
}

func TestReadLinesJSONArray(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "responses.json")
	if err := os.WriteFile(path, []byte(`["one", "two\nwith newline"]`), 0o644); err != nil {
		t.Fatal(err)
	}
	lines, err := readLines(path)
	if err != nil {
		t.Fatalf("readLines: %v", err)
	}
	if len(lines) != 2 || lines[1] != "two\nwith newline" {
		t.Errorf("unexpected entries: %v", lines)
	}
}

func TestNewWriterFormats(t *testing.T) {
	for _, format := range []string{"", "table", "json", "jsonl"} {
		cfg := config.Config{OutputFormat: format}
		if _, err := newWriter(&cfg, os.Stderr); err != nil {
			t.Errorf("format %q: %v", format, err)
		}
	}
	cfg := config.Config{OutputFormat: "csv"}
	if _, err := newWriter(&cfg, os.Stderr); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestLoadCatalogWithModuleDir(t *testing.T) {
	dir := t.TempDir()
	mod := "name: custom_probe\ndescription: custom test module\nindicators:\n  success_indicators: [\"ok\"]\n"
	if err := os.WriteFile(filepath.Join(dir, "custom.yaml"), []byte(mod), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Config{ModuleDir: dir}
	cat, err := loadCatalog(&cfg)
	if err != nil {
		t.Fatalf("loadCatalog: %v", err)
	}
	if _, ok := cat.Get("custom_probe"); !ok {
		t.Error("custom module not loaded")
	}
	if _, ok := cat.Get("basic_injection"); !ok {
		t.Error("builtin modules missing")
	}
}
