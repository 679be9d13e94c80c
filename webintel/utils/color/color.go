package color

import (
	"github.com/fatih/color"
)

var (
	infoColor    = color.New(color.FgGreen)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	headerColor  = color.New(color.FgCyan, color.Bold)
)

func ColorInfo(s string) string {
	return infoColor.Sprint(s)
}

func ColorWarning(s string) string {
	return warningColor.Sprint(s)
}

func ColorError(s string) string {
	return errorColor.Sprint(s)
}

func ColorHeader(s string) string {
	return headerColor.Sprint(s)
}

// Disable turns colors off, e.g. when output is piped.
func Disable() {
	color.NoColor = true
}
