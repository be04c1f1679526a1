package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// ColorEnabled reports whether output written to f should be coloured:
// NO_COLOR is unset, f is a terminal and the terminal has colours.
func ColorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}

// Configure switches lipgloss and pterm to plain text when colour is off.
func Configure(color bool) {
	if !color {
		lipgloss.SetColorProfile(termenv.Ascii)
		pterm.DisableStyling()
		resetIndicators()
	}
}

func resetIndicators() {
	SuccessIndicator = SuccessStyle.Render("✓")
	ErrorIndicator = ErrorStyle.Render("✗")
	WarningIndicator = WarningStyle.Render("!")
	InfoIndicator = InfoStyle.Render("•")
}
