package output

import (
	"os"
	"strconv"

	"golang.org/x/term"
)

// TerminalCapabilities describes what the attached terminal supports.
type TerminalCapabilities struct {
	IsTTY         bool
	SupportsColor bool
}

// DetectTerminalCapabilities inspects the given file (normally os.Stderr).
// Colors are off when f is not a terminal, when NO_COLOR is set to anything,
// or when AUTOCONC_NO_COLOR holds a true boolean ("1", "true", "T", ...).
func DetectTerminalCapabilities(f *os.File) TerminalCapabilities {
	isTTY := term.IsTerminal(int(f.Fd()))
	return TerminalCapabilities{
		IsTTY:         isTTY,
		SupportsColor: isTTY && !NoColorEnv(),
	}
}

// NoColorEnv reports whether the environment disables colors. AUTOCONC_NO_COLOR
// is parsed like the no_color config key.
func NoColorEnv() bool {
	if os.Getenv("NO_COLOR") != "" {
		return true
	}
	v, err := strconv.ParseBool(os.Getenv("AUTOCONC_NO_COLOR"))
	return err == nil && v
}
