package termconsole

import "io"

// Config holds the configuration for a console.
type Config struct {
	History     []string     // Initial history, newest first
	HistoryMax  int          // Maximum history entries (default: 10)
	HistoryFile string       // File the history is loaded from and saved to (empty = memory only)
	ColorScheme *ColorScheme // Color scheme (nil for default, or monochrome when NO_COLOR is set)
	KeyMap      *KeyMap      // Key bindings (nil for default)
	Output      io.Writer    // Overrides the terminal output (nil = terminal)
}

// Option represents a configuration option for a console
type Option func(*Config)

// WithHistory seeds the history. Entries are given newest first, the way
// they are browsed with the up arrow.
//
// Example:
//
//	termconsole.New(termconsole.WithHistory("last command", "older command"))
func WithHistory(entries ...string) Option {
	return func(c *Config) {
		c.History = append([]string{}, entries...)
	}
}

// WithHistoryMax sets how many entries the history keeps. Values below 1
// select the default of 10.
func WithHistoryMax(maxEntries int) Option {
	return func(c *Config) {
		c.HistoryMax = maxEntries
	}
}

// WithFileHistory loads history from file when the console is created and
// writes it back on Close. "~/" is expanded and relative paths are made
// absolute.
//
// Example:
//
//	termconsole.New(termconsole.WithFileHistory(termconsole.DefaultHistoryFile()))
func WithFileHistory(file string) Option {
	return func(c *Config) {
		c.HistoryFile = file
	}
}

// WithColorScheme sets the color scheme
func WithColorScheme(colorScheme *ColorScheme) Option {
	return func(c *Config) {
		c.ColorScheme = colorScheme
	}
}

// WithKeyMap sets the key bindings
func WithKeyMap(keyMap *KeyMap) Option {
	return func(c *Config) {
		c.KeyMap = keyMap
	}
}

// WithOutput sends all console output to w instead of the terminal.
func WithOutput(w io.Writer) Option {
	return func(c *Config) {
		c.Output = w
	}
}
