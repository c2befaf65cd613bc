// Package termconsole provides an interactive input line with a log area
// above it for terminal programs.
//
// A program reads a line of user input keystroke by keystroke while other
// code keeps printing status messages. Messages appear above the input
// line and the line is redrawn underneath them, so neither the typed text
// nor the log output is ever torn.
//
// Key Features:
//
//   - Single-line editing with cursor movement and backspace
//   - Bounded command history, browsed read-only with the arrow keys
//   - Six log levels with colored badges (plain, info, warn, error, accept, reject)
//   - slog.Handler and io.Writer adapters that print through the console
//   - TOML color schemes and optional history persistence
//
// Quick Start:
//
//	package main
//
//	import (
//		"errors"
//		"log"
//		"time"
//
//		"github.com/nao1215/termconsole"
//	)
//
//	func main() {
//		c, err := termconsole.New(termconsole.WithHistory("help"))
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer c.Close()
//
//		c.OnLine(func(line string) {
//			c.Acceptf("ran %q", line)
//		})
//
//		go func() {
//			for range time.Tick(5 * time.Second) {
//				c.Info("still here")
//			}
//		}()
//
//		if err := c.Run(); err != nil && !errors.Is(err, termconsole.ErrInterrupted) {
//			log.Fatal(err)
//		}
//	}
//
// Key Bindings:
//
//   - Enter: Submit the line (the submitted text is pushed onto the history)
//   - Ctrl+C: Stop Run with ErrInterrupted
//   - Left/Right: Move the cursor
//   - Home/End, Ctrl+A/Ctrl+E: Move to the beginning or end of the line
//   - Up/Down: Browse history; the margin shows the entry's index
//   - Backspace: Delete the character before the cursor
//
// While a history entry is shown, any editing key first copies it into the
// input line and then acts on the copy; the history itself never changes
// except by submitting.
//
// Output Ordering:
//
// Every write to the terminal is an action in a render queue. Enqueueing on
// an idle queue drains it before returning; enqueueing while it drains only
// appends. A log call made from an OnLine listener, or from another
// goroutine, is therefore printed whole, followed by a redraw of the input
// line, and never interleaved with another write.
//
// Hosts With Their Own Input:
//
// Programs that already decode keystrokes create the console with
// NewWithWriter and pass each key to HandleKey. KeyDecoder can turn raw
// terminal runes into Keys when needed.
package termconsole
