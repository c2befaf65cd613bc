package termconsole

import "sync"

// Level selects the prefix a log line is printed with.
type Level int

// Log levels, in the order of the console's log entry points.
const (
	LevelPlain Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelAccept
	LevelReject
)

func (l Level) String() string {
	switch l {
	case LevelPlain:
		return "plain"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelAccept:
		return "accept"
	case LevelReject:
		return "reject"
	default:
		return "unknown"
	}
}

// ActionKind discriminates the pending actions held by a RenderQueue.
type ActionKind int

// Action kinds.
const (
	ActionRedraw ActionKind = iota
	ActionLogLine
)

// Action is one pending terminal write. Redraw carries no payload; LogLine
// carries the level and text of the message.
type Action struct {
	Kind  ActionKind
	Level Level
	Text  string
}

// Redraw returns an action that re-renders the input line.
func Redraw() Action {
	return Action{Kind: ActionRedraw}
}

// LogLine returns an action that prints text above the input line.
func LogLine(level Level, text string) Action {
	return Action{Kind: ActionLogLine, Level: level, Text: text}
}

type queueState int

const (
	queueIdle queueState = iota
	queueDraining
)

// RenderQueue serializes every terminal write through a FIFO of actions.
//
// Enqueue on an idle queue drains it on the calling goroutine until it is
// empty, including actions appended while draining. Enqueue on a draining
// queue only appends; the active drain picks the action up. The handler runs
// outside the queue lock, so it may enqueue re-entrantly, and callers on
// other goroutines never write to the terminal concurrently with the drain.
type RenderQueue struct {
	mu      sync.Mutex
	state   queueState
	pending []Action
	handle  func(Action)
}

// NewRenderQueue creates an idle queue that passes each drained action to handle.
func NewRenderQueue(handle func(Action)) *RenderQueue {
	return &RenderQueue{handle: handle}
}

// Enqueue appends an action and, if the queue was idle, drains it.
func (q *RenderQueue) Enqueue(a Action) {
	q.mu.Lock()
	q.pending = append(q.pending, a)
	if q.state == queueDraining {
		q.mu.Unlock()
		return
	}
	q.state = queueDraining
	q.mu.Unlock()

	q.drain()
}

// Draining reports whether a drain is in progress.
func (q *RenderQueue) Draining() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state == queueDraining
}

// Len returns the number of actions waiting to be drained.
func (q *RenderQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

func (q *RenderQueue) drain() {
	defer func() {
		// A panicking handler must not leave the queue stuck in Draining.
		if r := recover(); r != nil {
			q.mu.Lock()
			q.state = queueIdle
			q.mu.Unlock()
			panic(r)
		}
	}()

	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.pending = nil
			q.state = queueIdle
			q.mu.Unlock()
			return
		}
		a := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		if q.handle != nil {
			q.handle(a)
		}
	}
}
