package ui

import (
	"os"
	"runtime"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

var (
	unicodeOnce sync.Once
	unicodeOK   bool
)

// UnicodeTerminal reports whether stderr can render Unicode glyphs.
// Returns false when output is piped, redirected, TERM is "dumb", or on
// Windows without Windows Terminal.
//
// Legacy Windows consoles cannot render special glyphs even with the
// UTF-8 code page because the default fonts lack them. Windows Terminal
// (detected via WT_SESSION) handles them.
func UnicodeTerminal() bool {
	unicodeOnce.Do(func() {
		if os.Getenv("TERM") == "dumb" {
			return
		}
		if !term.IsTerminal(int(os.Stderr.Fd())) {
			return
		}
		if runtime.GOOS == "windows" {
			unicodeOK = os.Getenv("WT_SESSION") != ""
			return
		}
		unicodeOK = true
	})
	return unicodeOK
}

// Icon returns unicode when the terminal supports it, ascii otherwise.
// Use at every call site that renders special characters:
// ui.Icon("⚠", "[!]")
func Icon(unicode, ascii string) string {
	if UnicodeTerminal() {
		return unicode
	}
	return ascii
}

// ColorEnabled reports whether stdout supports colored output,
// honoring NO_COLOR and the forced no-color mode.
func ColorEnabled() bool {
	uiMu.RLock()
	forced := noColorMode
	uiMu.RUnlock()
	if forced {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return termenv.NewOutput(os.Stdout).Profile != termenv.Ascii
}

// TermWidth returns the terminal width, or the fallback when stdout is
// not a terminal.
func TermWidth(fallback int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}
