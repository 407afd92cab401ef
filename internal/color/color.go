package color

import (
	"github.com/fatih/color"
)

var (
	fgRed     = color.New(color.FgRed).SprintFunc()
	fgGreen   = color.New(color.FgGreen).SprintFunc()
	fgCyan    = color.New(color.FgCyan).SprintFunc()
	fgMagenta = color.New(color.FgMagenta).SprintFunc()
	bold      = color.New(color.Bold).SprintFunc()
)

func FgRed(s string) string     { return fgRed(s) }
func FgGreen(s string) string   { return fgGreen(s) }
func FgCyan(s string) string    { return fgCyan(s) }
func FgMagenta(s string) string { return fgMagenta(s) }
func Bold(s string) string      { return bold(s) }

// SetEnabled overrides the TTY based detection done by fatih/color.
func SetEnabled(enabled bool) {
	color.NoColor = !enabled
}

func Enabled() bool {
	return !color.NoColor
}
