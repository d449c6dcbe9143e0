// Package detector inspects the process environment to choose how logs are
// written.
package detector

import (
	"os"

	"go.trai.ch/depsub/internal/adapters/logger"
	"golang.org/x/term"
)

// DetectLogFormat returns the log format suited to the environment: JSON
// when stderr is not a terminal or a CI variable is set, pretty otherwise.
func DetectLogFormat() logger.Format {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))
	if !isTTY || IsCI() {
		return logger.FormatJSON
	}
	return logger.FormatPretty
}

// IsCI reports whether CI or GITHUB_ACTIONS is set to a true value.
func IsCI() bool {
	for _, name := range []string{"CI", "GITHUB_ACTIONS"} {
		if v := os.Getenv(name); v == "true" || v == "1" {
			return true
		}
	}
	return false
}

// ResolveLogFormat applies the --log-format flag to the detected format.
// userFlag is one of "auto", "pretty", "json" or empty.
func ResolveLogFormat(detected logger.Format, userFlag string) logger.Format {
	switch userFlag {
	case "pretty":
		return logger.FormatPretty
	case "json":
		return logger.FormatJSON
	default:
		return detected
	}
}
