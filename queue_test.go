package termconsole

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderQueueDrainsInOrder(t *testing.T) {
	t.Parallel()

	var got []Action
	q := NewRenderQueue(func(a Action) {
		got = append(got, a)
	})

	q.Enqueue(LogLine(LevelInfo, "one"))
	q.Enqueue(Redraw())
	q.Enqueue(LogLine(LevelWarn, "two"))

	assert.Equal(t, []Action{
		{Kind: ActionLogLine, Level: LevelInfo, Text: "one"},
		{Kind: ActionRedraw},
		{Kind: ActionLogLine, Level: LevelWarn, Text: "two"},
	}, got)
	assert.False(t, q.Draining())
	assert.Equal(t, 0, q.Len())
}

func TestRenderQueueReentrantEnqueue(t *testing.T) {
	t.Parallel()

	var (
		q      *RenderQueue
		events []string
		depth  int
		nested bool
	)
	q = NewRenderQueue(func(a Action) {
		depth++
		defer func() { depth-- }()
		if depth > 1 {
			nested = true
		}

		switch a.Kind {
		case ActionLogLine:
			events = append(events, a.Text+" line")
			if a.Text == "A" {
				q.Enqueue(LogLine(LevelPlain, "B"))
				assert.True(t, q.Draining())
				assert.Equal(t, 1, q.Len(), "re-entrant enqueue only appends")
			}
			events = append(events, a.Text+" redraw")
		case ActionRedraw:
			events = append(events, "redraw")
		}
	})

	q.Enqueue(LogLine(LevelPlain, "A"))

	assert.Equal(t, []string{"A line", "A redraw", "B line", "B redraw"}, events)
	assert.False(t, nested, "the handler never runs recursively")
	assert.False(t, q.Draining())
}

func TestRenderQueueConcurrentEnqueue(t *testing.T) {
	t.Parallel()

	const (
		workers   = 8
		perWorker = 200
	)

	var (
		active    atomic.Int32
		overlap   atomic.Bool
		processed atomic.Int32
	)
	q := NewRenderQueue(func(Action) {
		if active.Add(1) > 1 {
			overlap.Store(true)
		}
		processed.Add(1)
		active.Add(-1)
	})

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				q.Enqueue(Redraw())
			}
		}()
	}
	wg.Wait()

	assert.False(t, overlap.Load(), "handler must never run concurrently")
	assert.Equal(t, int32(workers*perWorker), processed.Load())
	assert.False(t, q.Draining())
}

func TestRenderQueuePanicReturnsToIdle(t *testing.T) {
	t.Parallel()

	calls := 0
	q := NewRenderQueue(func(a Action) {
		calls++
		if a.Text == "boom" {
			panic("handler failed")
		}
	})

	require.Panics(t, func() {
		q.Enqueue(LogLine(LevelError, "boom"))
	})
	assert.False(t, q.Draining())

	q.Enqueue(Redraw())
	assert.Equal(t, 2, calls, "the queue keeps working after a panic")
}

func TestRenderQueueNilHandler(t *testing.T) {
	t.Parallel()

	q := NewRenderQueue(nil)
	assert.NotPanics(t, func() {
		q.Enqueue(Redraw())
	})
	assert.Equal(t, 0, q.Len())
}

func TestLevelString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level Level
		want  string
	}{
		{LevelPlain, "plain"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{LevelAccept, "accept"},
		{LevelReject, "reject"},
		{Level(42), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.level.String())
	}
}
