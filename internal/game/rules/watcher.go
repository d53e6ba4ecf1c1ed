package rules

import (
	"sort"
	"sync"
)

// Watcher accumulates per-player statistics from published events.
type Watcher interface {
	// Key identifies the watcher in its registry.
	Key() string
	// Follows lists the event types routed to Watch.
	Follows() []EventType
	// Watch records one event.
	Watch(event Event)
	// Reset forgets everything recorded so far (called on restart).
	Reset()
}

// Tally is a set of named counters per player.
type Tally struct {
	mu     sync.RWMutex
	counts map[string]map[string]int
}

// NewTally creates an empty tally.
func NewTally() *Tally {
	return &Tally{counts: make(map[string]map[string]int)}
}

// Add increases a player's counter by delta.
func (t *Tally) Add(playerID, counter string, delta int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.counts[playerID]
	if !ok {
		row = make(map[string]int)
		t.counts[playerID] = row
	}
	row[counter] += delta
}

// SetOnce stores value unless the counter already exists. Reports whether it stored.
func (t *Tally) SetOnce(playerID, counter string, value int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.counts[playerID]
	if !ok {
		row = make(map[string]int)
		t.counts[playerID] = row
	}
	if _, seen := row[counter]; seen {
		return false
	}
	row[counter] = value
	return true
}

// Get returns a player's counter, or 0.
func (t *Tally) Get(playerID, counter string) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.counts[playerID][counter]
}

// Players returns the players with at least one counter, sorted.
func (t *Tally) Players() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ids := make([]string, 0, len(t.counts))
	for id := range t.counts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clear drops every counter.
func (t *Tally) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.counts = make(map[string]map[string]int)
}

// BaseWatcher carries the key, the followed event types and a tally.
// Concrete watchers embed it and implement Watch.
type BaseWatcher struct {
	*Tally
	key     string
	follows []EventType
}

// NewBaseWatcher creates a base watcher following the given event types.
func NewBaseWatcher(key string, follows ...EventType) *BaseWatcher {
	return &BaseWatcher{
		Tally:   NewTally(),
		key:     key,
		follows: append([]EventType(nil), follows...),
	}
}

// Key returns the watcher key.
func (bw *BaseWatcher) Key() string {
	return bw.key
}

// Follows returns the followed event types.
func (bw *BaseWatcher) Follows() []EventType {
	return append([]EventType(nil), bw.follows...)
}

// Reset clears the tally.
func (bw *BaseWatcher) Reset() {
	bw.Clear()
}

// WatcherRegistry routes events to the watchers that follow them.
type WatcherRegistry struct {
	mu       sync.RWMutex
	watchers map[string]Watcher
	routes   map[EventType][]string
}

// NewWatcherRegistry creates a new watcher registry.
func NewWatcherRegistry() *WatcherRegistry {
	return &WatcherRegistry{
		watchers: make(map[string]Watcher),
		routes:   make(map[EventType][]string),
	}
}

// AddWatcher registers a watcher, replacing any watcher with the same key.
func (wr *WatcherRegistry) AddWatcher(watcher Watcher) {
	if watcher == nil || watcher.Key() == "" {
		return
	}
	wr.mu.Lock()
	defer wr.mu.Unlock()
	wr.watchers[watcher.Key()] = watcher
	wr.rebuildRoutes()
}

// RemoveWatcher removes a watcher from the registry.
func (wr *WatcherRegistry) RemoveWatcher(key string) {
	wr.mu.Lock()
	defer wr.mu.Unlock()
	delete(wr.watchers, key)
	wr.rebuildRoutes()
}

// GetWatcher retrieves a watcher by key.
func (wr *WatcherRegistry) GetWatcher(key string) Watcher {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	return wr.watchers[key]
}

// Keys returns the registered keys in order.
func (wr *WatcherRegistry) Keys() []string {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	keys := make([]string, 0, len(wr.watchers))
	for key := range wr.watchers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ResetWatchers resets all watchers (called when the game restarts).
func (wr *WatcherRegistry) ResetWatchers() {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	for _, watcher := range wr.watchers {
		watcher.Reset()
	}
}

// NotifyWatchers delivers an event to its followers in key order.
func (wr *WatcherRegistry) NotifyWatchers(event Event) {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	for _, key := range wr.routes[event.Type] {
		wr.watchers[key].Watch(event)
	}
}

// rebuildRoutes must be called with mu held.
func (wr *WatcherRegistry) rebuildRoutes() {
	routes := make(map[EventType][]string)
	for key, w := range wr.watchers {
		for _, t := range w.Follows() {
			routes[t] = append(routes[t], key)
		}
	}
	for t := range routes {
		sort.Strings(routes[t])
	}
	wr.routes = routes
}
