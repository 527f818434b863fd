// Command promptraid is the payload mutation and response analysis
// toolkit for LLM security testing.
package main

import (
	"fmt"
	"os"

	"github.com/promptraid/promptraid/pkg/ui"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "mutate":
		err = runMutate()
	case "match":
		err = runMatch()
	case "analyze":
		err = runAnalyze()
	case "search":
		err = runSearch()
	case "modules":
		err = runModules()
	case "version", "-v", "--version":
		runVersion()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `promptraid - LLM payload mutation and response analysis

Usage:
  promptraid <command> [flags]

Commands:
  mutate    Generate payload variants from a base prompt
  match     Locate indicator patterns in text
  analyze   Analyze captured responses for attack success
  search    Fuzzy-search the attack module catalog
  modules   List catalog modules
  version   Print version information
  help      Show this help

Run 'promptraid <command> -h' for command flags.
`)
}
