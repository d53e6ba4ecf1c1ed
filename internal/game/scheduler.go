package game

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Pacing holds the delays between automated steps.
type Pacing struct {
	RollDelay    time.Duration // between a roll and its landing
	ThinkDelay   time.Duration // before a computer player acts
	EndTurnDelay time.Duration // before a computer player's turn passes
}

// DefaultPacing matches the table-top feel of the game.
var DefaultPacing = Pacing{
	RollDelay:    time.Second,
	ThinkDelay:   1500 * time.Millisecond,
	EndTurnDelay: 800 * time.Millisecond,
}

// maxPendingSteps bounds RunPending so a faulty policy cannot spin forever.
const maxPendingSteps = 10000

type task struct {
	id         uint64
	name       string
	delay      time.Duration
	generation uint64
	run        func()
}

// scheduler is a FIFO of delayed engine steps. Restart bumps the generation,
// which discards every queued step.
type scheduler struct {
	mu         sync.Mutex
	queue      []task
	nextID     uint64
	generation uint64
	wake       chan struct{}
}

func newScheduler() *scheduler {
	return &scheduler{wake: make(chan struct{}, 1)}
}

func (s *scheduler) schedule(name string, delay time.Duration, run func()) uint64 {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	wasEmpty := len(s.queue) == 0
	s.queue = append(s.queue, task{id: id, name: name, delay: delay, generation: s.generation, run: run})
	s.mu.Unlock()
	if wasEmpty {
		s.signal()
	}
	return id
}

// cancelAll drops every queued step and returns the new generation.
func (s *scheduler) cancelAll() uint64 {
	s.mu.Lock()
	s.generation++
	s.queue = nil
	gen := s.generation
	s.mu.Unlock()
	s.signal()
	return gen
}

func (s *scheduler) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *scheduler) peek() (task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return task{}, false
	}
	return s.queue[0], true
}

// pop removes the head. When id is non-zero the head must carry that id.
func (s *scheduler) pop(id uint64) (task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return task{}, false
	}
	head := s.queue[0]
	if id != 0 && head.id != id {
		return task{}, false
	}
	s.queue = s.queue[1:]
	if head.generation != s.generation {
		return task{}, false
	}
	return head, true
}

func (s *scheduler) pending() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, len(s.queue))
	for i, t := range s.queue {
		names[i] = t.name
	}
	return names
}

// RunNext runs the oldest pending step immediately, ignoring its delay.
// It returns false when nothing is pending.
func (e *Engine) RunNext() bool {
	return e.runTask(0)
}

// RunPending drains the queue, including steps scheduled by the steps it runs.
// It stops when the game waits for a human. Returns how many steps ran.
func (e *Engine) RunPending() int {
	ran := 0
	for ran < maxPendingSteps && e.RunNext() {
		ran++
	}
	if ran == maxPendingSteps && e.logger != nil {
		e.logger.Warn("pending step limit reached", zap.Int("steps", ran))
	}
	return ran
}

// PendingSteps lists the names of the queued steps in order.
func (e *Engine) PendingSteps() []string {
	return e.sched.pending()
}

func (e *Engine) runTask(id uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for {
		t, ok := e.sched.pop(id)
		if ok {
			if e.logger != nil {
				e.logger.Debug("running step", zap.String("step", t.name), zap.Uint64("id", t.id))
			}
			t.run()
			return true
		}
		// A stale head was dropped; try the next one unless a specific id was asked for.
		if id != 0 {
			return false
		}
		if _, more := e.sched.peek(); !more {
			return false
		}
	}
}

// Run executes pending steps in real time, honouring each step's delay,
// until ctx is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	for {
		head, ok := e.sched.peek()
		if !ok {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-e.sched.wake:
				continue
			}
		}

		timer := time.NewTimer(head.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-e.sched.wake:
			// The queue was cancelled or refilled; look again.
			timer.Stop()
			continue
		case <-timer.C:
		}
		e.runTask(head.id)
	}
}
