package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/promptraid/promptraid/pkg/analyze"
	"github.com/promptraid/promptraid/pkg/config"
	"github.com/promptraid/promptraid/pkg/defaults"
	"github.com/promptraid/promptraid/pkg/engine"
	"github.com/promptraid/promptraid/pkg/output/dispatcher"
	"github.com/promptraid/promptraid/pkg/output/events"
	"github.com/promptraid/promptraid/pkg/output/hooks"
	"github.com/promptraid/promptraid/pkg/report"
	"github.com/promptraid/promptraid/pkg/strutil"
	"github.com/promptraid/promptraid/pkg/ui"
)

func runAnalyze() error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	var cfg config.Config
	cfg.RegisterAnalysisFlags(fs)
	cfg.RegisterOutputFlags(fs)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: promptraid analyze -module <name> <responses file | ->")
		fs.PrintDefaults()
	}
	if err := fs.Parse(os.Args[2:]); err != nil {
		return err
	}
	applyUIFlags(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Module == "" {
		return fmt.Errorf("%w: -module", config.ErrMissingRequired)
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("%w: responses file argument", config.ErrMissingRequired)
	}

	cat, err := loadCatalog(&cfg)
	if err != nil {
		return err
	}
	mod, ok := cat.Get(cfg.Module)
	if !ok {
		return fmt.Errorf("%w: unknown module %q", config.ErrInvalidConfig, cfg.Module)
	}

	responses, err := readLines(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("read responses: %w", err)
	}
	if len(responses) == 0 {
		return fmt.Errorf("%w: responses file is empty", config.ErrInvalidConfig)
	}

	eng := analysisEngine(&cfg)
	defer eng.Close()

	ui.PrintBanner()
	ui.PrintSection("Analyze")
	ui.PrintConfigLine("Module", mod.Name)
	ui.PrintConfigLine("Engine", eng.Name())
	ui.PrintConfigLine("Responses", fmt.Sprintf("%d", len(responses)))
	ui.PrintConfigLine("Format", cfg.OutputFormat)

	out, closeOut, err := openOutput(cfg.OutputFile)
	if err != nil {
		return err
	}
	defer closeOut()

	w, err := newWriter(&cfg, out)
	if err != nil {
		return err
	}

	disp := dispatcher.New(dispatcher.Config{})
	disp.RegisterWriter(w)
	if err := registerHooks(&cfg, disp); err != nil {
		return err
	}

	ctx := context.Background()
	runID := events.NewRunID()
	started := time.Now()

	summary := &report.Summary{
		RunID:         runID,
		Module:        mod.Name,
		Severity:      string(mod.Severity),
		Engine:        eng.Name(),
		StartedAt:     started.UTC(),
		TotalPayloads: len(responses),
	}

	disp.Dispatch(ctx, &events.StartEvent{
		BaseEvent:     events.NewBase(events.EventTypeStart, runID),
		Module:        mod.Name,
		Techniques:    mod.Techniques,
		TotalPayloads: len(responses),
		Engine:        eng.Name(),
	})

	verdicts, err := eng.AnalyzeResponses(responses, mod.Indicators)
	if err != nil {
		disp.Dispatch(ctx, &events.ErrorEvent{
			BaseEvent: events.NewBase(events.EventTypeError, runID),
			Message:   err.Error(),
			Context:   "analyze",
		})
		disp.Close()
		return err
	}

	for i, v := range verdicts {
		payload := strutil.Snippet(responses[i], defaults.ResponseSnippetLen)

		disp.Dispatch(ctx, &events.ResultEvent{
			BaseEvent: events.NewBase(events.EventTypeResult, runID),
			Module:    mod.Name,
			Payload:   payload,
			Verdict:   v,
		})

		if v.Error != "" {
			disp.Dispatch(ctx, &events.ErrorEvent{
				BaseEvent: events.NewBase(events.EventTypeError, runID),
				Message:   v.Error,
				Context:   payload,
			})
			summary.AddVerdict(payload, v, nil)
			continue
		}

		var leaks []string
		if v.Success && cfg.DetectLeak {
			leaks = analyze.DetectLeakage(responses[i])
		}
		if v.Success && v.Confidence >= defaults.VulnerableThreshold {
			disp.Dispatch(ctx, &events.FindingEvent{
				BaseEvent:  events.NewBase(events.EventTypeFinding, runID),
				Module:     mod.Name,
				Severity:   string(mod.Severity),
				Payload:    payload,
				Verdict:    v,
				Leaks:      leaks,
				Confidence: v.Confidence,
			})
		}
		summary.AddVerdict(payload, v, leaks)
	}

	disp.Dispatch(ctx, &events.SummaryEvent{
		BaseEvent:     events.NewBase(events.EventTypeSummary, runID),
		Module:        mod.Name,
		TotalPayloads: summary.TotalPayloads,
		Analyzed:      summary.Analyzed,
		Vulnerable:    summary.Vulnerable,
		Errors:        summary.Errors,
		MaxConfidence: summary.MaxConfidence,
	})

	summary.Duration = time.Since(started)
	disp.Dispatch(ctx, &events.CompleteEvent{
		BaseEvent:  events.NewBase(events.EventTypeComplete, runID),
		DurationMs: summary.Duration.Milliseconds(),
	})

	if err := disp.Close(); err != nil {
		ui.PrintWarning(fmt.Sprintf("output close: %v", err))
	}

	if cfg.ReportFile != "" {
		if err := writeReport(cfg.ReportFile, summary); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		ui.PrintSuccess("Report written to " + cfg.ReportFile)
	}

	if summary.Vulnerable > 0 {
		ui.PrintWarning(fmt.Sprintf("%d of %d responses vulnerable", summary.Vulnerable, summary.Analyzed))
	} else {
		ui.PrintSuccess("No vulnerable responses detected")
	}
	return nil
}

// analysisEngine builds the engine for a run, honoring the -workers
// and -portable flags over the environment probe.
func analysisEngine(cfg *config.Config) engine.Engine {
	if cfg.Portable {
		return engine.NewPortable()
	}
	if !engine.Available() {
		return engine.NewPortable()
	}
	return engine.NewAcceleratedWorkers(cfg.Workers)
}

func registerHooks(cfg *config.Config, disp *dispatcher.Dispatcher) error {
	if cfg.PrometheusPort > 0 {
		hook, err := hooks.NewPrometheusHook(hooks.PrometheusOptions{Port: cfg.PrometheusPort})
		if err != nil {
			return fmt.Errorf("prometheus hook: %w", err)
		}
		disp.RegisterHook(hook)
	}
	if cfg.OTelEndpoint != "" {
		hook, err := hooks.NewOTelHook(hooks.OTelOptions{Endpoint: cfg.OTelEndpoint, Insecure: true})
		if err != nil {
			return fmt.Errorf("otel hook: %w", err)
		}
		disp.RegisterHook(hook)
	}
	return nil
}

func writeReport(path string, s *report.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch {
	case strings.HasSuffix(path, ".md"):
		return report.WriteMarkdown(f, s)
	case strings.HasSuffix(path, ".html"):
		return report.WriteHTML(f, s)
	case strings.HasSuffix(path, ".pdf"):
		return report.WritePDF(f, s)
	default:
		return fmt.Errorf("%w: unsupported report format", config.ErrInvalidConfig)
	}
}
