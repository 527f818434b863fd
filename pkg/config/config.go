// Package config holds the CLI run configuration and its flag
// registration. Every subcommand registers the shared flags it needs
// on its own FlagSet and validates the result here.
package config

import (
	"flag"
	"fmt"
	"runtime"
	"strings"

	"github.com/promptraid/promptraid/pkg/defaults"
)

// Config holds all CLI configuration options.
type Config struct {
	// Mutation settings
	Technique  string // Single technique name
	Techniques string // Comma-separated technique list
	Count      int    // Variants to generate
	Seed       uint64 // Deterministic seed (0 = time-based)
	ScriptDir  string // Directory of .tengo technique scripts

	// Matching settings
	Patterns      string // Comma-separated patterns
	CaseSensitive bool

	// Analysis settings
	Module     string // Catalog module providing indicators
	ModuleDir  string // Directory of YAML module definitions
	Workers    int    // Parallel analysis workers
	Portable   bool   // Force the portable engine
	DetectLeak bool   // Run leakage detection on vulnerable responses

	// Output settings
	OutputFile   string // Output file path (empty = stdout)
	OutputFormat string // table, json, jsonl
	OnlyFindings bool   // Restrict stream output to findings
	ReportFile   string // Report path; format chosen by extension
	Verbose      bool
	Silent       bool
	NoColor      bool

	// Integration settings
	OTelEndpoint   string // OTLP endpoint for trace export
	PrometheusPort int    // Metrics port (0 = disabled)
}

// RegisterMutationFlags registers mutation-related flags.
func (c *Config) RegisterMutationFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Technique, "technique", "", "Mutation technique name")
	fs.StringVar(&c.Technique, "t", "", "Mutation technique (alias)")
	fs.StringVar(&c.Techniques, "techniques", "", "Comma-separated technique list")
	fs.IntVar(&c.Count, "count", defaults.VariantCountDefault, "Number of variants")
	fs.IntVar(&c.Count, "n", defaults.VariantCountDefault, "Number of variants (alias)")
	fs.Uint64Var(&c.Seed, "seed", 0, "Deterministic seed (0 = random)")
	fs.StringVar(&c.ScriptDir, "scripts", "", "Directory of .tengo technique scripts")
}

// RegisterMatchFlags registers pattern matching flags.
func (c *Config) RegisterMatchFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Patterns, "patterns", "", "Comma-separated patterns to locate")
	fs.StringVar(&c.Patterns, "p", "", "Patterns (alias)")
	fs.BoolVar(&c.CaseSensitive, "case-sensitive", false, "Match case-sensitively")
}

// RegisterAnalysisFlags registers analysis flags.
func (c *Config) RegisterAnalysisFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Module, "module", "", "Catalog module providing indicators")
	fs.StringVar(&c.Module, "m", "", "Module (alias)")
	fs.StringVar(&c.ModuleDir, "module-dir", "", "Directory of YAML module definitions")
	fs.IntVar(&c.Workers, "workers", runtime.GOMAXPROCS(0), "Parallel analysis workers")
	fs.BoolVar(&c.Portable, "portable", false, "Force the portable engine")
	fs.BoolVar(&c.DetectLeak, "leakage", true, "Detect credential/prompt leakage in vulnerable responses")
}

// RegisterOutputFlags registers output and integration flags.
func (c *Config) RegisterOutputFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.OutputFile, "output", "", "Output file (default stdout)")
	fs.StringVar(&c.OutputFile, "o", "", "Output file (alias)")
	fs.StringVar(&c.OutputFormat, "format", "table", "Output format: table, json, jsonl")
	fs.BoolVar(&c.OnlyFindings, "only-findings", false, "Limit stream output to findings")
	fs.StringVar(&c.ReportFile, "report", "", "Report file (.md, .html or .pdf)")
	fs.BoolVar(&c.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&c.Verbose, "v", false, "Verbose output (alias)")
	fs.BoolVar(&c.Silent, "silent", false, "Suppress banner and progress")
	fs.BoolVar(&c.NoColor, "no-color", false, "Disable colored output")
	fs.StringVar(&c.OTelEndpoint, "otel-endpoint", "", "OpenTelemetry OTLP endpoint")
	fs.IntVar(&c.PrometheusPort, "metrics-port", 0, "Prometheus metrics port (0 = disabled)")
}

// Validate checks cross-field consistency.
func (c *Config) Validate() error {
	if c.Count < 0 || c.Count > defaults.VariantCountMax {
		return fmt.Errorf("%w: count must be between 0 and %d", ErrInvalidConfig, defaults.VariantCountMax)
	}
	switch c.OutputFormat {
	case "", "table", "json", "jsonl":
	default:
		return fmt.Errorf("%w: unknown output format %q", ErrInvalidConfig, c.OutputFormat)
	}
	if c.ReportFile != "" && !hasReportExtension(c.ReportFile) {
		return fmt.Errorf("%w: report file must end in .md, .html or .pdf", ErrInvalidConfig)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be non-negative", ErrInvalidConfig)
	}
	return nil
}

// TechniqueList returns the configured techniques: the plural flag
// split on commas, or the single technique flag.
func (c *Config) TechniqueList() []string {
	if c.Techniques == "" {
		if c.Technique == "" {
			return nil
		}
		return []string{c.Technique}
	}
	parts := strings.Split(c.Techniques, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// PatternList returns the configured patterns split on commas.
func (c *Config) PatternList() []string {
	if c.Patterns == "" {
		return nil
	}
	parts := strings.Split(c.Patterns, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func hasReportExtension(path string) bool {
	for _, ext := range []string{".md", ".html", ".pdf"} {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
