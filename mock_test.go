package termconsole

import (
	"bytes"
	"io"
)

// mockTerminal implements terminalInterface for testing.
//
// Input is a pre-configured rune sequence that ends with io.EOF; everything
// the console writes is captured in output. Raw mode and close calls are
// only tracked so tests can assert the terminal was restored.
type mockTerminal struct {
	input    []rune       // Pre-configured input sequence
	inputPos int          // Current position in the input sequence
	rawMode  bool         // Track raw mode state for test verification
	closed   bool         // Track Close for test verification
	output   bytes.Buffer // Everything written by the console
}

func newMockTerminal(input string) *mockTerminal {
	return &mockTerminal{input: []rune(input)}
}

func (m *mockTerminal) SetRaw() error {
	m.rawMode = true
	return nil
}

func (m *mockTerminal) Restore() error {
	m.rawMode = false
	return nil
}

func (m *mockTerminal) ReadRune() (rune, int, error) {
	if m.inputPos >= len(m.input) {
		return 0, 0, io.EOF
	}
	r := m.input[m.inputPos]
	m.inputPos++
	return r, 1, nil
}

func (m *mockTerminal) Output() io.Writer {
	return &m.output
}

func (m *mockTerminal) Close() error {
	m.closed = true
	return nil
}
