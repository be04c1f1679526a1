package style

import (
	"fmt"

	"github.com/pterm/pterm"
)

// Status of a generated file as reported to the user
type Status string

const (
	StatusWritten   Status = "written"
	StatusUnchanged Status = "unchanged"
	StatusChanged   Status = "changed"
	StatusMissing   Status = "missing"
	StatusPlanned   Status = "would write"
)

// StatusStyle returns the pterm style for a status
func StatusStyle(status Status) *pterm.Style {
	switch status {
	case StatusWritten:
		return pterm.NewStyle(pterm.FgGreen, pterm.Bold)
	case StatusChanged:
		return pterm.NewStyle(pterm.FgYellow, pterm.Bold)
	case StatusMissing:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	case StatusPlanned:
		return pterm.NewStyle(pterm.FgCyan)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// StatusLine renders one file status, e.g. "  changed  workspace  ./lzuoslab.code-workspace"
func StatusLine(status Status, name, path string) string {
	label := StatusStyle(status).Sprint(fmt.Sprintf("%-11s", status))
	return fmt.Sprintf("  %s %-9s %s", label, name, PathStyle.Render(path))
}
