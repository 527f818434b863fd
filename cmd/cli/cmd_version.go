package main

import (
	"fmt"
	"runtime"

	"github.com/promptraid/promptraid/pkg/defaults"
	"github.com/promptraid/promptraid/pkg/engine"
	"github.com/promptraid/promptraid/pkg/ui"
)

func runVersion() {
	fmt.Printf("%s %s\n", defaults.ToolName, ui.Version)
	fmt.Printf("  commit:  %s\n", ui.Commit)
	fmt.Printf("  built:   %s\n", ui.BuildDate)
	fmt.Printf("  go:      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)

	eng := engine.Select()
	defer eng.Close()
	fmt.Printf("  engine:  %s\n", eng.Name())
}
