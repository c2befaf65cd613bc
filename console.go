package termconsole

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// Common errors
var (
	// ErrEOF is returned when the input stream ends
	ErrEOF = errors.New("EOF")
	// ErrInterrupted is returned when the user presses Ctrl+C
	ErrInterrupted = errors.New("interrupted")
	// ErrNoTerminal is returned by Run on a console created without a terminal
	ErrNoTerminal = errors.New("console has no terminal to read from")
)

// Internal action kinds queued by the console itself.
const (
	actionRelease ActionKind = -1 // Close: show the cursor and leave a clean line
	actionStart   ActionKind = -2 // Run: open a fresh row unless one is already drawn
)

// Console is an input line with a log area above it.
//
// It owns one LineEditor, one RenderQueue and the renderer writing to the
// terminal. Every write goes through the queue, so log calls made from any
// goroutine, or from inside a line listener, never tear the input line.
type Console struct {
	config      Config
	output      io.Writer
	terminal    terminalInterface
	history     *History
	historyFile *historyFile
	editor      *LineEditor
	queue       *RenderQueue
	renderer    *renderer

	listenersMu sync.RWMutex
	listeners   []func(line string)

	errMu     sync.Mutex
	renderErr error

	drawn bool // Set once the input row is on screen; only touched by handleAction


	closeOnce sync.Once
}

// New creates a console on the process's terminal.
//
// Example:
//
//	c, err := termconsole.New(
//		termconsole.WithHistory("status", "help"),
//		termconsole.WithHistoryMax(50),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer c.Close()
//
//	c.OnLine(func(line string) {
//		c.Infof("you typed %q", line)
//	})
//	if err := c.Run(); err != nil && !errors.Is(err, termconsole.ErrInterrupted) {
//		log.Fatal(err)
//	}
func New(options ...Option) (*Console, error) {
	config := Config{}
	for _, option := range options {
		option(&config)
	}

	terminal, err := newRealTerminal()
	if err != nil {
		return nil, fmt.Errorf("failed to create terminal: %w", err)
	}

	c, err := newFromConfig(config, terminal, terminal.Output())
	if err != nil {
		_ = terminal.Close()
		return nil, err
	}
	return c, nil
}

// NewWithWriter creates a console without a terminal of its own. The host
// decodes keys itself and feeds them to HandleKey; output goes to w.
func NewWithWriter(w io.Writer, options ...Option) (*Console, error) {
	config := Config{}
	for _, option := range options {
		option(&config)
	}
	return newFromConfig(config, nil, w)
}

func newFromConfig(config Config, terminal terminalInterface, output io.Writer) (*Console, error) {
	if config.HistoryMax <= 0 {
		config.HistoryMax = DefaultHistoryMax
	}
	if config.ColorScheme == nil {
		config.ColorScheme = ThemeDefault
		if os.Getenv("NO_COLOR") != "" {
			config.ColorScheme = ThemeMonochrome
		}
	}
	if config.KeyMap == nil {
		config.KeyMap = NewDefaultKeyMap()
	}
	if config.Output != nil {
		output = config.Output
	}

	c := &Console{
		config:   config,
		output:   output,
		terminal: terminal,
		renderer: newRenderer(output, config.ColorScheme),
	}

	entries := append([]string{}, config.History...)
	if config.HistoryFile != "" {
		hf, err := newHistoryFile(config.HistoryFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load history: %w", err)
		}
		stored, err := hf.load()
		if err != nil {
			return nil, fmt.Errorf("failed to load history: %w", err)
		}
		entries = append(entries, stored...)
		c.historyFile = hf
	}
	c.history = NewHistory(entries, config.HistoryMax)

	c.queue = NewRenderQueue(c.handleAction)
	c.editor = NewLineEditor(c.history, config.KeyMap, c.queue)
	return c, nil
}

// handleAction performs one drained action. It is the only place that
// writes to the output.
func (c *Console) handleAction(a Action) {
	var err error
	switch a.Kind {
	case ActionRedraw:
		err = c.renderer.redraw(c.editor.View())
		c.drawn = true
	case ActionLogLine:
		err = c.renderer.logLine(a.Level, a.Text, c.editor.View())
		c.drawn = true
	case actionStart:
		if !c.drawn {
			_, err = io.WriteString(c.output, "\n")
		}
	case actionRelease:
		_, err = io.WriteString(c.output, showCursor+"\n")
	}
	if err != nil {
		c.recordError(err)
	}
}

func (c *Console) recordError(err error) {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	if c.renderErr == nil {
		c.renderErr = err
	}
}

// Err returns the first error raised while writing to the output, if any.
func (c *Console) Err() error {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	return c.renderErr
}

// Run reads keys from the terminal until Ctrl+C or the end of input.
//
// This is a convenience method that calls RunWithContext with a background context.
func (c *Console) Run() error {
	return c.RunWithContext(context.Background())
}

// RunWithContext puts the terminal in raw mode, draws the input line and
// feeds every decoded key to HandleKey. Submitted lines reach the OnLine
// listeners.
//
// It returns ErrInterrupted on Ctrl+C, ErrEOF when input ends and ctx.Err()
// when the context is done; cancellation is observed between keystrokes.
// The terminal is restored on every path.
func (c *Console) RunWithContext(ctx context.Context) error {
	if c.terminal == nil {
		return ErrNoTerminal
	}
	if err := c.terminal.SetRaw(); err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer func() {
		if err := c.terminal.Restore(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to exit raw mode: %v\n", err)
		}
	}()

	c.queue.Enqueue(Action{Kind: actionStart})
	c.queue.Enqueue(Redraw())

	decoder := NewKeyDecoder(c.terminal)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := c.Err(); err != nil {
			return fmt.Errorf("failed to render: %w", err)
		}

		k, err := decoder.ReadKey()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return ErrEOF
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		if c.HandleKey(k).Kind == EffectCancel {
			return ErrInterrupted
		}
	}
}

// HandleKey passes one key to the line editor and notifies the OnLine
// listeners when it submits a line. Hosts with their own key decoding call
// it directly; Run calls it for every key read from the terminal. A key
// whose Sequence holds several printable runes is inserted whole, with the
// cursor moved past all of them.
func (c *Console) HandleKey(k Key) EditEffect {
	effect := c.editor.HandleKey(k)
	if effect.Kind == EffectSubmitted {
		c.listenersMu.RLock()
		listeners := append([]func(string){}, c.listeners...)
		c.listenersMu.RUnlock()

		for _, fn := range listeners {
			fn(effect.Line)
		}
	}
	return effect
}

// OnLine registers fn to be called with every submitted line, in
// registration order. Listeners may log to the console.
func (c *Console) OnLine(fn func(line string)) {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Print prints msg above the input line with the given level's prefix.
func (c *Console) Print(level Level, msg string) {
	c.queue.Enqueue(LogLine(level, msg))
}

// Log prints msg with a blank prefix.
func (c *Console) Log(msg string) { c.Print(LevelPlain, msg) }

// Info prints msg with the info prefix.
func (c *Console) Info(msg string) { c.Print(LevelInfo, msg) }

// Warn prints msg with the warning prefix.
func (c *Console) Warn(msg string) { c.Print(LevelWarn, msg) }

// Error prints msg with the error prefix.
func (c *Console) Error(msg string) { c.Print(LevelError, msg) }

// Accept prints msg with the check-mark prefix.
func (c *Console) Accept(msg string) { c.Print(LevelAccept, msg) }

// Reject prints msg with the cross prefix.
func (c *Console) Reject(msg string) { c.Print(LevelReject, msg) }

// Logf formats according to a format specifier and prints with a blank prefix.
func (c *Console) Logf(format string, args ...any) { c.Log(fmt.Sprintf(format, args...)) }

// Infof formats according to a format specifier and prints with the info prefix.
func (c *Console) Infof(format string, args ...any) { c.Info(fmt.Sprintf(format, args...)) }

// Warnf formats according to a format specifier and prints with the warning prefix.
func (c *Console) Warnf(format string, args ...any) { c.Warn(fmt.Sprintf(format, args...)) }

// Errorf formats according to a format specifier and prints with the error prefix.
func (c *Console) Errorf(format string, args ...any) { c.Error(fmt.Sprintf(format, args...)) }

// Acceptf formats according to a format specifier and prints with the check-mark prefix.
func (c *Console) Acceptf(format string, args ...any) { c.Accept(fmt.Sprintf(format, args...)) }

// Rejectf formats according to a format specifier and prints with the cross prefix.
func (c *Console) Rejectf(format string, args ...any) { c.Reject(fmt.Sprintf(format, args...)) }

// History returns the recorded lines, newest first.
func (c *Console) History() []string {
	return c.history.Entries()
}

// State returns a snapshot of the line editor state.
func (c *Console) State() EditState {
	return c.editor.State()
}

// Close shows the cursor, moves to a fresh line, saves the history file if
// one is configured and releases the terminal.
//
// It is safe to call Close multiple times and it should be called even if
// Run returns an error.
func (c *Console) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.queue.Enqueue(Action{Kind: actionRelease})

		if c.historyFile != nil {
			if saveErr := c.historyFile.save(c.history.Entries()); saveErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save history: %v\n", saveErr)
			}
		}

		if c.terminal != nil {
			err = c.terminal.Close()
		}
	})
	return err
}
