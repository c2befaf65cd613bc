package termconsole

import (
	"fmt"
	"io"
	"strings"
)

// marginWidth is the 3-column indicator plus the space separating it from the text.
const marginWidth = 4

// Escape sequences shared by the renderer.
const (
	clearLine  = "\r\x1b[2K"
	hideCursor = "\x1b[?25l"
	showCursor = "\x1b[?25h"
	liveMarker = " > "
)

// View is the part of the edit state the renderer needs for one redraw.
type View struct {
	Text         string // Displayed text: live buffer or browsed history entry
	Cursor       int    // Cursor offset in runes, already clamped into Text
	HistoryIndex int    // -1 while editing live, otherwise the browsed entry
}

// Browsing reports whether the view shows a history entry.
func (v View) Browsing() bool {
	return v.HistoryIndex >= 0
}

// renderer turns views and log lines into ANSI output.
//
// Every method emits its whole frame with a single write so a slow terminal
// never shows half of a redraw. Cursor placement uses an absolute column
// (CHA), which makes repeated redraws idempotent wherever the cursor was.
type renderer struct {
	output      io.Writer
	colorScheme *ColorScheme
}

func newRenderer(output io.Writer, colorScheme *ColorScheme) *renderer {
	return &renderer{
		output:      output,
		colorScheme: colorScheme,
	}
}

// badge returns the fixed 3-column marker for a level.
func badge(l Level) string {
	switch l {
	case LevelInfo:
		return " i "
	case LevelWarn:
		return " ! "
	case LevelError:
		return " E "
	case LevelAccept:
		return " ✓ "
	case LevelReject:
		return " ✗ "
	default:
		return "   "
	}
}

// margin returns the live prompt marker or the 1-based, zero-padded history index.
func margin(v View) string {
	if !v.Browsing() {
		return liveMarker
	}
	return fmt.Sprintf("%03d", v.HistoryIndex+1)
}

func (r *renderer) writeInputLine(b *strings.Builder, v View) {
	b.WriteString(clearLine)
	b.WriteString(r.colorScheme.Margin.ToANSI())
	b.WriteString(margin(v))
	b.WriteString(Reset())
	b.WriteString(" ")
	b.WriteString(r.colorScheme.Input.ToANSI())
	b.WriteString(v.Text)
	b.WriteString(Reset())
	fmt.Fprintf(b, "\x1b[%dG", marginWidth+v.Cursor+1)
}

// redraw erases the current line and renders the input line.
func (r *renderer) redraw(v View) error {
	var b strings.Builder
	r.writeInputLine(&b, v)
	_, err := io.WriteString(r.output, b.String())
	return err
}

// logLine prints text above the input line and redraws the input below it.
// The cursor is hidden for the duration so it does not flicker between the
// erased line and the new prompt. Multi-line text gets a blank badge on
// continuation lines.
func (r *renderer) logLine(level Level, text string, v View) error {
	style := r.colorScheme.level(level)

	var b strings.Builder
	b.WriteString(hideCursor)
	for i, line := range strings.Split(text, "\n") {
		b.WriteString(clearLine)
		if i == 0 {
			b.WriteString(style.Badge.ToANSI())
			b.WriteString(badge(level))
			b.WriteString(Reset())
		} else {
			b.WriteString(badge(LevelPlain))
		}
		b.WriteString(style.Text.ToANSI())
		b.WriteString(" ")
		b.WriteString(strings.TrimSuffix(line, "\r"))
		b.WriteString(Reset())
		b.WriteString("\n")
	}
	r.writeInputLine(&b, v)
	b.WriteString(showCursor)

	_, err := io.WriteString(r.output, b.String())
	return err
}
