package termconsole

import "sync"

// DefaultHistoryMax is the number of entries kept when no limit is configured.
const DefaultHistoryMax = 10

// History is a bounded list of submitted lines, newest first.
//
// Pushing onto a full history evicts the oldest entry. Entries are never
// de-duplicated and empty lines are kept, so the history mirrors exactly
// what was submitted. History is safe for concurrent use.
type History struct {
	mu      sync.RWMutex
	entries []string
	max     int
}

// NewHistory creates a history seeded with entries (newest first).
// A max of zero or less selects DefaultHistoryMax. Seed entries beyond
// max are dropped from the old end.
func NewHistory(entries []string, max int) *History {
	if max <= 0 {
		max = DefaultHistoryMax
	}
	if len(entries) > max {
		entries = entries[:max]
	}
	return &History{
		entries: append(make([]string, 0, max), entries...),
		max:     max,
	}
}

// Push records entry as the newest item.
func (h *History) Push(entry string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, "")
	copy(h.entries[1:], h.entries)
	h.entries[0] = entry
	if len(h.entries) > h.max {
		h.entries = h.entries[:h.max]
	}
}

// Entry returns the entry at index i, where 0 is the newest.
func (h *History) Entry(i int) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return "", false
	}
	return h.entries[i], true
}

// Len returns the number of stored entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// Max returns the capacity of the history.
func (h *History) Max() int {
	return h.max
}

// Entries returns a copy of all entries, newest first.
func (h *History) Entries() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]string{}, h.entries...)
}
