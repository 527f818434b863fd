package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/promptraid/promptraid/pkg/config"
	"github.com/promptraid/promptraid/pkg/jsonutil"
	"github.com/promptraid/promptraid/pkg/ui"
)

func runSearch() error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	var cfg config.Config
	cfg.RegisterOutputFlags(fs)
	fs.StringVar(&cfg.ModuleDir, "module-dir", "", "Directory of YAML module definitions")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: promptraid search [flags] <query>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(os.Args[2:]); err != nil {
		return err
	}
	applyUIFlags(&cfg)

	cat, err := loadCatalog(&cfg)
	if err != nil {
		return err
	}

	query := strings.Join(fs.Args(), " ")
	results := cat.Search(query)

	out, closeOut, err := openOutput(cfg.OutputFile)
	if err != nil {
		return err
	}
	defer closeOut()

	if cfg.OutputFormat == "json" {
		data, err := jsonutil.MarshalIndent(results, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(results) == 0 {
		ui.PrintInfo("No modules matched " + query)
		return nil
	}
	for _, r := range results {
		fmt.Fprintf(out, "%.2f  %-22s %-10s %s\n", r.Score, r.Module.Name, r.Module.Severity, r.Module.Description)
	}
	return nil
}

func runModules() error {
	fs := flag.NewFlagSet("modules", flag.ExitOnError)
	var cfg config.Config
	cfg.RegisterOutputFlags(fs)
	fs.StringVar(&cfg.ModuleDir, "module-dir", "", "Directory of YAML module definitions")
	category := fs.String("category", "", "Filter by category")
	if err := fs.Parse(os.Args[2:]); err != nil {
		return err
	}
	applyUIFlags(&cfg)

	cat, err := loadCatalog(&cfg)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(cfg.OutputFile)
	if err != nil {
		return err
	}
	defer closeOut()

	modules := cat.Modules()
	if *category != "" {
		filtered := modules[:0]
		for _, m := range modules {
			if string(m.Category) == *category {
				filtered = append(filtered, m)
			}
		}
		modules = filtered
	}

	if cfg.OutputFormat == "json" {
		data, err := jsonutil.MarshalIndent(modules, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	for _, m := range modules {
		style := ui.SeverityStyle(string(m.Severity))
		sev := string(m.Severity)
		if ui.ColorEnabled() {
			sev = style.Render(sev)
		}
		fmt.Fprintf(out, "%-22s %-12s %-10s %s\n", m.Name, m.Category, sev, m.Description)
	}
	fmt.Fprintf(out, "\n%d module(s)\n", len(modules))
	return nil
}
