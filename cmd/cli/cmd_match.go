package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/promptraid/promptraid/pkg/config"
	"github.com/promptraid/promptraid/pkg/jsonutil"
	"github.com/promptraid/promptraid/pkg/ui"
)

func runMatch() error {
	fs := flag.NewFlagSet("match", flag.ExitOnError)
	var cfg config.Config
	cfg.RegisterMatchFlags(fs)
	cfg.RegisterOutputFlags(fs)
	fs.BoolVar(&cfg.Portable, "portable", false, "Force the portable engine")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: promptraid match -patterns p1,p2 <file | ->")
		fs.PrintDefaults()
	}
	if err := fs.Parse(os.Args[2:]); err != nil {
		return err
	}
	applyUIFlags(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	patterns := cfg.PatternList()
	if len(patterns) == 0 {
		return fmt.Errorf("%w: -patterns", config.ErrMissingRequired)
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("%w: input file argument", config.ErrMissingRequired)
	}

	var text string
	if path := fs.Arg(0); path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		text = string(data)
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		text = string(data)
	}

	eng := selectEngine(&cfg)
	defer eng.Close()

	result, err := eng.FindPatterns(text, patterns, cfg.CaseSensitive)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(cfg.OutputFile)
	if err != nil {
		return err
	}
	defer closeOut()

	if cfg.OutputFormat == "json" {
		data, err := jsonutil.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	names := make([]string, 0, len(result))
	for name := range result {
		names = append(names, name)
	}
	sort.Strings(names)
	total := 0
	for _, name := range names {
		offsets := result[name]
		total += len(offsets)
		fmt.Fprintf(out, "%-30s %d match(es) at %v\n", name, len(offsets), offsets)
	}
	if total == 0 {
		ui.PrintInfo("No matches found")
	}
	return nil
}
