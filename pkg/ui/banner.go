package ui

import (
	"fmt"
	"os"
	"sync"

	"github.com/promptraid/promptraid/pkg/defaults"
)

// Version information - these can be overridden at build time via ldflags:
// go build -ldflags "-X github.com/promptraid/promptraid/pkg/ui.Version=1.0.0"
var (
	Version   = defaults.Version
	BuildDate = "dev"
	Commit    = "dev"
)

// Global UI state
var (
	silentMode  bool
	noColorMode bool
	uiMu        sync.RWMutex
)

// SetSilent enables or disables silent mode (suppresses the banner and
// progress output).
func SetSilent(silent bool) {
	uiMu.Lock()
	defer uiMu.Unlock()
	silentMode = silent
}

// Silent reports whether silent mode is active.
func Silent() bool {
	uiMu.RLock()
	defer uiMu.RUnlock()
	return silentMode
}

// SetNoColor disables colored output regardless of terminal support.
func SetNoColor(noColor bool) {
	uiMu.Lock()
	defer uiMu.Unlock()
	noColorMode = noColor
}

const bannerArt = `
                                   __              _     __
    ____  _________  ____ ___  ____  / /__________ _(_)___/ /
   / __ \/ ___/ __ \/ __ '__ \/ __ \/ __/ ___/ __ '/ / __  /
  / /_/ / /  / /_/ / / / / / / /_/ / /_/ /  / /_/ / / /_/ /
 / .___/_/   \____/_/ /_/ /_/ .___/\__/_/   \__,_/_/\__,_/
/_/                        /_/
`

// PrintBanner writes the startup banner to stderr unless silent mode
// is active.
func PrintBanner() {
	if Silent() {
		return
	}
	if ColorEnabled() {
		fmt.Fprintln(os.Stderr, BannerStyle.Render(bannerArt))
		fmt.Fprintf(os.Stderr, "  %s %s\n\n",
			SubtitleStyle.Render("LLM security testing"),
			VersionStyle.Render("v"+Version))
		return
	}
	fmt.Fprint(os.Stderr, bannerArt+"\n")
	fmt.Fprintf(os.Stderr, "  LLM security testing v%s\n\n", Version)
}
