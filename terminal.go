package termconsole

import (
	"io"
	"os"
	"runtime"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-tty"
	"golang.org/x/term"
)

// terminalInterface abstracts the terminal the console runs on.
//
// Implementations:
//   - realTerminal: go-tty input, x/term raw mode, colorable output
//   - mockTerminal: scripted input and captured output for tests
type terminalInterface interface {
	SetRaw() error                // Enter raw mode for per-keystroke input
	Restore() error               // Restore the original terminal settings
	ReadRune() (rune, int, error) // Read one character of input
	Output() io.Writer            // Where escape sequences and text are written
	Close() error                 // Release the terminal; safe to call twice
}

// realTerminal implements terminalInterface using external libraries for production use.
//
// go-tty provides cross-platform rune input, golang.org/x/term switches the
// controlling terminal into raw mode and back, and go-colorable translates
// ANSI sequences on Windows consoles.
type realTerminal struct {
	tty           *tty.TTY    // TTY handle from go-tty for cross-platform input
	output        io.Writer   // Color-capable output writer (colorable on Windows, stdout elsewhere)
	closed        bool        // Prevents double-close panics on Windows
	stdinFd       int         // File descriptor used for raw mode management
	originalState *term.State // Terminal state to restore on exit
}

func newRealTerminal() (*realTerminal, error) {
	t, err := tty.Open()
	if err != nil {
		return nil, err
	}

	var output io.Writer = os.Stdout
	if runtime.GOOS == "windows" {
		output = colorable.NewColorableStdout()
	}

	return &realTerminal{
		tty:     t,
		output:  output,
		stdinFd: int(os.Stdin.Fd()),
	}, nil
}

func (t *realTerminal) SetRaw() error {
	if !term.IsTerminal(t.stdinFd) {
		return nil
	}
	state, err := term.MakeRaw(t.stdinFd)
	if err != nil {
		return err
	}
	t.originalState = state
	return nil
}

func (t *realTerminal) Restore() error {
	if t.originalState == nil {
		return nil
	}
	err := term.Restore(t.stdinFd, t.originalState)
	// Reset so a later SetRaw captures a fresh baseline
	t.originalState = nil
	return err
}

func (t *realTerminal) ReadRune() (rune, int, error) {
	r, err := t.tty.ReadRune()
	if err != nil {
		return 0, 0, err
	}
	return r, 1, nil
}

func (t *realTerminal) Output() io.Writer {
	return t.output
}

func (t *realTerminal) Close() error {
	if t.closed || t.tty == nil {
		return nil
	}
	t.closed = true
	return t.tty.Close()
}
