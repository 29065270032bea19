// Package termui is the terminal driver collaborator (§1 "out of
// scope... specified only at their interface to the core"): raw mode,
// SIGWINCH-driven resize, and an ANSI diff-render of a screen.Screen,
// kept as a thin demonstrative shell rather than a full terminal UI.
package termui

import (
	"os"

	"golang.org/x/term"
)

// rawState wraps the terminal state term.MakeRaw returns, adapted from
// the teacher's tui/term.go State.
type rawState struct {
	state *term.State
}

func enableRawMode(f *os.File) (*rawState, error) {
	old, err := term.MakeRaw(int(f.Fd()))
	if err != nil {
		return nil, err
	}
	return &rawState{state: old}, nil
}

func disableRawMode(f *os.File, s *rawState) error {
	if s == nil || s.state == nil {
		return nil
	}
	return term.Restore(int(f.Fd()), s.state)
}

// Size returns the current terminal dimensions, falling back to 80x24
// when the query fails (e.g. stdout isn't a tty).
func Size() (width, height int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80, 24
	}
	return w, h
}
