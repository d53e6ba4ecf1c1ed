// Package gamelog is the append-only record of game events consumed by the
// presentation layer.
package gamelog

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Kind classifies a log entry.
type Kind string

const (
	KindSystem    Kind = "system"    // phase and turn bookkeeping
	KindAction    Kind = "action"    // a player action that changed state
	KindSpeech    Kind = "speech"    // a computer player talking
	KindRejected  Kind = "rejected"  // a command that was refused
	KindMilestone Kind = "milestone" // escape, win, restart
	KindHint      Kind = "hint"      // advice from the hint provider
)

// Entry is one log record.
type Entry struct {
	ID        uuid.UUID     `json:"id"`
	Seq       uint64        `json:"seq"`
	Kind      Kind          `json:"kind"`
	Turn      int           `json:"turn"`
	PlayerID  string        `json:"player_id,omitempty"`
	Message   string        `json:"message"`
	Amount    int           `json:"amount,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	Elapsed   time.Duration `json:"elapsed"`
}

// Clock returns the current time.
type Clock func() time.Time

// Log is an append-only, concurrency-safe sequence of entries.
type Log struct {
	mu          sync.RWMutex
	entries     []Entry
	seq         uint64
	start       time.Time
	clock       Clock
	logger      *zap.Logger
	subscribers []subscriber
	nextSub     int
}

type subscriber struct {
	id int
	fn func(Entry)
}

// New creates an empty log. A nil clock uses time.Now.
func New(clock Clock, logger *zap.Logger) *Log {
	if clock == nil {
		clock = time.Now
	}
	return &Log{
		start:       clock(),
		clock:       clock,
		logger:      logger,
	}
}

// Append stamps and stores an entry, then hands it to subscribers.
// Sequence numbers keep increasing across Reset.
func (l *Log) Append(entry Entry) Entry {
	l.mu.Lock()
	l.seq++
	now := l.clock()
	entry.ID = uuid.New()
	entry.Seq = l.seq
	entry.Timestamp = now
	entry.Elapsed = now.Sub(l.start)
	l.entries = append(l.entries, entry)
	subs := l.subscribers
	l.mu.Unlock()

	if l.logger != nil {
		l.logger.Debug("game log",
			zap.Uint64("seq", entry.Seq),
			zap.String("kind", string(entry.Kind)),
			zap.Int("turn", entry.Turn),
			zap.String("player_id", entry.PlayerID),
			zap.String("message", entry.Message),
		)
	}
	for _, sub := range subs {
		sub.fn(entry)
	}
	return entry
}

// Entries returns a copy of every entry in order.
func (l *Log) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Entry(nil), l.entries...)
}

// Since returns the entries with a sequence number greater than seq.
func (l *Log) Since(seq uint64) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for i, e := range l.entries {
		if e.Seq > seq {
			return append([]Entry(nil), l.entries[i:]...)
		}
	}
	return nil
}

// Len returns the number of entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Last returns the most recent entry.
func (l *Log) Last() (Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.entries) == 0 {
		return Entry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// Subscribe registers fn for every future entry and returns a cancel function.
// Subscribers run in subscription order, synchronously on the appending
// goroutine, and must not block.
func (l *Log) Subscribe(fn func(Entry)) func() {
	if fn == nil {
		return func() {}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.nextSub
	l.nextSub++
	l.subscribers = append(l.subscribers, subscriber{id: id, fn: fn})
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		for i, sub := range l.subscribers {
			if sub.id == id {
				l.subscribers = append(l.subscribers[:i:i], l.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Reset drops every entry and restarts the elapsed clock.
func (l *Log) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
	l.start = l.clock()
}
