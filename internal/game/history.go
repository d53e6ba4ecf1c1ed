package game

import "sync"

// History keeps one snapshot per turn start for review and playback.
type History struct {
	mu     sync.RWMutex
	states []Snapshot
	index  int
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Record appends a snapshot.
func (h *History) Record(s Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.states = append(h.states, s)
}

// Start rewinds playback to the first snapshot.
func (h *History) Start() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.index = 0
}

// Next returns the snapshot at the cursor and moves forward.
func (h *History) Next() (Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index >= len(h.states) {
		return Snapshot{}, false
	}
	s := h.states[h.index]
	h.index++
	return s, true
}

// Previous moves back one and returns that snapshot.
func (h *History) Previous() (Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index == 0 {
		return Snapshot{}, false
	}
	h.index--
	return h.states[h.index], true
}

// Skip moves forward count snapshots, stopping at the last one.
func (h *History) Skip(count int) (Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.states) == 0 {
		return Snapshot{}, false
	}
	h.index += count
	if h.index >= len(h.states) {
		h.index = len(h.states) - 1
	}
	if h.index < 0 {
		h.index = 0
	}
	return h.states[h.index], true
}

// Size returns the number of recorded snapshots.
func (h *History) Size() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.states)
}

// At returns the snapshot at index.
func (h *History) At(index int) (Snapshot, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if index < 0 || index >= len(h.states) {
		return Snapshot{}, false
	}
	return h.states[index], true
}

// Latest returns the most recent snapshot.
func (h *History) Latest() (Snapshot, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.states) == 0 {
		return Snapshot{}, false
	}
	return h.states[len(h.states)-1], true
}

// Reset drops every snapshot.
func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.states = nil
	h.index = 0
}
