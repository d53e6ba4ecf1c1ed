package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerRunsInOrder(t *testing.T) {
	s := newScheduler()
	var ran []string
	s.schedule("first", time.Second, func() { ran = append(ran, "first") })
	s.schedule("second", 0, func() { ran = append(ran, "second") })
	assert.Equal(t, []string{"first", "second"}, s.pending())

	for {
		task, ok := s.pop(0)
		if !ok {
			break
		}
		task.run()
	}
	assert.Equal(t, []string{"first", "second"}, ran)
}

func TestSchedulerCancelDropsQueuedTasks(t *testing.T) {
	s := newScheduler()
	s.schedule("stale", 0, func() { t.Fatal("stale task ran") })
	gen := s.cancelAll()

	assert.Equal(t, uint64(1), gen)
	assert.Empty(t, s.pending())
	_, ok := s.pop(0)
	assert.False(t, ok)

	id := s.schedule("fresh", 0, func() {})
	task, ok := s.pop(id)
	require.True(t, ok)
	assert.Equal(t, "fresh", task.name)
}

func TestSchedulerPopByIDRequiresHead(t *testing.T) {
	s := newScheduler()
	first := s.schedule("first", 0, func() {})
	second := s.schedule("second", 0, func() {})

	_, ok := s.pop(second)
	assert.False(t, ok)
	task, ok := s.pop(first)
	require.True(t, ok)
	assert.Equal(t, first, task.id)
}

func TestRunNextOnEmptyQueue(t *testing.T) {
	h := newHarness(t, humanSeed("p1"))
	assert.False(t, h.engine.RunNext())
	assert.Equal(t, 0, h.engine.RunPending())
}
