// Package output creates termenv outputs with the color profile depsub
// renders logs and summaries with.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// ProfileFunc selects a color profile.
type ProfileFunc func() termenv.Profile

// Detect returns Ascii when NO_COLOR is set and the terminal's own profile
// otherwise.
func Detect() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// ANSI returns Ascii when NO_COLOR is set and the basic 16 color profile
// otherwise. CI log viewers render ANSI but rarely anything richer.
func ANSI() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.ANSI
}

// New creates an output on w using the Detect profile. A nil w writes to
// stderr.
func New(w io.Writer) *termenv.Output {
	return NewWithProfile(w, Detect)
}

// NewWithProfile creates an output on w using profile.
func NewWithProfile(w io.Writer, profile ProfileFunc) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	return termenv.NewOutput(w, termenv.WithProfile(profile()), termenv.WithTTY(true))
}
