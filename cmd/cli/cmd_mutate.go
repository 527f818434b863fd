package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/promptraid/promptraid/pkg/config"
	"github.com/promptraid/promptraid/pkg/engine"
	"github.com/promptraid/promptraid/pkg/jsonutil"
	"github.com/promptraid/promptraid/pkg/mutate"
	"github.com/promptraid/promptraid/pkg/ui"
)

func runMutate() error {
	fs := flag.NewFlagSet("mutate", flag.ExitOnError)
	var cfg config.Config
	cfg.RegisterMutationFlags(fs)
	cfg.RegisterOutputFlags(fs)
	fs.BoolVar(&cfg.Portable, "portable", false, "Force the portable engine")
	listTechniques := fs.Bool("list", false, "List available techniques and exit")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: promptraid mutate [flags] <base payload>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(os.Args[2:]); err != nil {
		return err
	}
	applyUIFlags(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.ScriptDir != "" {
		names, err := mutate.LoadScriptDir(mutate.DefaultRegistry, cfg.ScriptDir)
		if err != nil {
			return fmt.Errorf("load scripts: %w", err)
		}
		if cfg.Verbose {
			ui.PrintInfo(fmt.Sprintf("Loaded %d script techniques", len(names)))
		}
	}

	if *listTechniques {
		for _, name := range mutate.DefaultRegistry.Names() {
			fmt.Println(name)
		}
		return nil
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("%w: base payload argument", config.ErrMissingRequired)
	}
	base := strings.Join(fs.Args(), " ")

	techniques := cfg.TechniqueList()
	if len(techniques) == 0 {
		techniques = mutate.DefaultRegistry.Names()
	}

	eng := selectEngine(&cfg)
	defer eng.Close()

	variants, err := eng.Mutate(base, techniques, cfg.Count, cfg.Seed)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(cfg.OutputFile)
	if err != nil {
		return err
	}
	defer closeOut()

	switch cfg.OutputFormat {
	case "json":
		data, err := jsonutil.MarshalIndent(variants, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	case "jsonl":
		enc := jsonutil.NewEncoder(out)
		for _, v := range variants {
			if err := enc.Encode(v); err != nil {
				return err
			}
		}
	default:
		for _, v := range variants {
			fmt.Fprintln(out, v)
		}
	}
	return nil
}

// selectEngine honors the -portable flag over the environment probe.
func selectEngine(cfg *config.Config) engine.Engine {
	if cfg.Portable {
		return engine.NewPortable()
	}
	return engine.Select()
}
