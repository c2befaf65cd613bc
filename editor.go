package termconsole

import "sync"

// EffectKind discriminates the outcome of a key event.
type EffectKind int

// Effect kinds returned by LineEditor.HandleKey.
const (
	EffectNone      EffectKind = iota // State changed (or not); nothing for the host to do
	EffectSubmitted                   // A line was submitted; see EditEffect.Line
	EffectCancel                      // The interrupt chord was pressed; the host should stop
)

// EditEffect is the result of handling one key event.
type EditEffect struct {
	Kind EffectKind
	Line string // Submitted text when Kind is EffectSubmitted
}

// EditState is a snapshot of the editor state.
// Cursor is reported as stored, which may be transiently out of range
// between a keystroke and the redraw that follows it.
type EditState struct {
	Buffer         string
	Cursor         int
	HistoryPointer int
}

// Browsing reports whether a history entry is being viewed.
func (s EditState) Browsing() bool {
	return s.HistoryPointer >= 0
}

// LineEditor is the single-line editing state machine.
//
// It owns the live buffer, the cursor and a pointer into History. While the
// pointer is at an entry, that entry is displayed read-only; any editing key
// first adopts it into the live buffer (copy on write) and returns to live
// editing. Every handled key except the interrupt chord enqueues one Redraw.
//
// The cursor is only clamped when a view is taken for rendering, so a
// backspace at offset 0 or a right arrow at the end of the buffer leaves it
// briefly out of range until the redraw that follows.
type LineEditor struct {
	mu             sync.Mutex
	buffer         []rune
	cursor         int
	historyPointer int
	history        *History
	keyMap         *KeyMap
	queue          *RenderQueue
}

// NewLineEditor creates an editor over history. A nil history starts empty
// with DefaultHistoryMax capacity, a nil keyMap selects NewDefaultKeyMap and a
// nil queue disables redraw requests.
func NewLineEditor(history *History, keyMap *KeyMap, queue *RenderQueue) *LineEditor {
	if history == nil {
		history = NewHistory(nil, DefaultHistoryMax)
	}
	if keyMap == nil {
		keyMap = NewDefaultKeyMap()
	}
	return &LineEditor{
		historyPointer: -1,
		history:        history,
		keyMap:         keyMap,
		queue:          queue,
	}
}

// HandleKey applies one key event and requests a redraw.
//
// An unbound printable key inserts its whole Sequence at the cursor and
// moves the cursor past all of it, so a multi-rune Sequence such as a paste
// advances by its rune count rather than by one.
func (e *LineEditor) HandleKey(k Key) EditEffect {
	effect := e.apply(k)
	if effect.Kind != EffectCancel && e.queue != nil {
		e.queue.Enqueue(Redraw())
	}
	return effect
}

func (e *LineEditor) apply(k Key) EditEffect {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.keyMap.GetAction(k) {
	case ActionCancel:
		return EditEffect{Kind: EffectCancel}

	case ActionSubmit:
		text := e.displayed()
		e.buffer = nil
		e.cursor = 0
		e.historyPointer = -1
		e.history.Push(text)
		return EditEffect{Kind: EffectSubmitted, Line: text}

	case ActionMoveLeft:
		if e.adopt() {
			e.cursor = len(e.buffer) - 1
		} else {
			e.cursor--
		}

	case ActionMoveRight:
		if e.adopt() {
			e.cursor = len(e.buffer)
		} else {
			e.cursor++
		}

	case ActionMoveHome:
		e.adopt()
		e.cursor = 0

	case ActionMoveEnd:
		e.adopt()
		e.cursor = len(e.buffer)

	case ActionHistoryUp:
		if e.historyPointer < e.history.Len()-1 {
			e.historyPointer++
		}

	case ActionHistoryDown:
		// Never adopts: stepping below the newest entry reveals the live buffer.
		if e.historyPointer > -1 {
			e.historyPointer--
		}

	case ActionDeleteChar:
		if e.adopt() {
			e.cursor = len(e.buffer)
		}
		e.deleteBefore()

	default:
		if !k.Printable() {
			break
		}
		if e.adopt() {
			e.cursor = len(e.buffer)
		}
		e.insert(k.Sequence)
	}
	return EditEffect{Kind: EffectNone}
}

// displayed returns the text currently shown. Callers hold e.mu.
func (e *LineEditor) displayed() string {
	if e.historyPointer == -1 {
		return string(e.buffer)
	}
	entry, _ := e.history.Entry(e.historyPointer)
	return entry
}

// adopt copies the browsed entry into the live buffer and leaves browsing.
// It reports whether an adoption took place. Callers hold e.mu.
func (e *LineEditor) adopt() bool {
	if e.historyPointer == -1 {
		return false
	}
	e.buffer = []rune(e.displayed())
	e.historyPointer = -1
	return true
}

// position is the cursor clamped into the buffer, used as an edit offset.
func (e *LineEditor) position() int {
	return max(0, min(e.cursor, len(e.buffer)))
}

func (e *LineEditor) deleteBefore() {
	p := e.position()
	if p > 0 {
		e.buffer = append(e.buffer[:p-1], e.buffer[p:]...)
	}
	// At offset 0 nothing is deleted but the cursor still moves; the next
	// view clamps it back.
	e.cursor = p - 1
}

func (e *LineEditor) insert(text string) {
	runes := []rune(text)
	p := e.position()
	buf := make([]rune, 0, len(e.buffer)+len(runes))
	buf = append(buf, e.buffer[:p]...)
	buf = append(buf, runes...)
	e.buffer = append(buf, e.buffer[p:]...)
	e.cursor = p + len(runes)
}

// View clamps the cursor into the buffer and returns what should be drawn.
// While browsing, the cursor sits at the end of the browsed entry.
func (e *LineEditor) View() View {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cursor = e.position()
	if e.historyPointer == -1 {
		return View{Text: string(e.buffer), Cursor: e.cursor, HistoryIndex: -1}
	}
	text := e.displayed()
	return View{Text: text, Cursor: len([]rune(text)), HistoryIndex: e.historyPointer}
}

// State returns a snapshot of the edit state.
func (e *LineEditor) State() EditState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return EditState{
		Buffer:         string(e.buffer),
		Cursor:         e.cursor,
		HistoryPointer: e.historyPointer,
	}
}

// History returns the history the editor records submissions into.
func (e *LineEditor) History() *History {
	return e.history
}
