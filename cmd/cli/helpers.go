package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/promptraid/promptraid/pkg/catalog"
	"github.com/promptraid/promptraid/pkg/config"
	"github.com/promptraid/promptraid/pkg/jsonutil"
	"github.com/promptraid/promptraid/pkg/output/dispatcher"
	"github.com/promptraid/promptraid/pkg/output/writers"
	"github.com/promptraid/promptraid/pkg/ui"
)

// openOutput returns the stream for writer output and a close func.
// Stdout is never closed.
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}
	return f, f.Close, nil
}

// newWriter builds the output writer named by cfg.OutputFormat.
func newWriter(cfg *config.Config, w io.Writer) (dispatcher.Writer, error) {
	switch cfg.OutputFormat {
	case "", "table":
		return writers.NewTableWriter(w), nil
	case "json":
		return writers.NewJSONWriter(w, writers.JSONOptions{Pretty: true}), nil
	case "jsonl":
		return writers.NewJSONLWriter(w, writers.JSONLOptions{OnlyFindings: cfg.OnlyFindings}), nil
	default:
		return nil, fmt.Errorf("%w: unknown output format %q", config.ErrInvalidConfig, cfg.OutputFormat)
	}
}

// loadCatalog returns the built-in catalog, extended with any YAML
// modules from cfg.ModuleDir.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	cat := catalog.Builtin()
	if cfg.ModuleDir != "" {
		if err := cat.LoadDir(cfg.ModuleDir); err != nil {
			return nil, fmt.Errorf("load module dir: %w", err)
		}
	}
	return cat, nil
}

// applyUIFlags wires silent and color settings before any output.
func applyUIFlags(cfg *config.Config) {
	if cfg.Silent {
		ui.SetSilent(true)
	}
	if cfg.NoColor {
		ui.SetNoColor(true)
	}
}

// readLines reads entries from a file, or stdin when path is "-".
// Input is either newline-separated text or a JSON array of strings.
func readLines(path string) ([]string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		var entries []string
		if err := jsonutil.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("parse JSON array: %w", err)
		}
		return entries, nil
	}
	return splitLines(data), nil
}

func splitLines(data []byte) []string {
	var lines []string
	start := 0
	for i, b := range data {
		if b == '\n' {
			line := string(data[start:i])
			if len(line) > 0 && line[len(line)-1] == '\r' {
				line = line[:len(line)-1]
			}
			if line != "" {
				lines = append(lines, line)
			}
			start = i + 1
		}
	}
	if start < len(data) {
		if line := string(data[start:]); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
