package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingTask records how often it ran and can fail on every second run
type countingTask struct {
	runs        atomic.Int64
	failEvenRun bool
}

func (c *countingTask) Run(ctx context.Context) error {
	n := c.runs.Add(1)
	if c.failEvenRun && n%2 == 0 {
		return assert.AnError
	}
	return nil
}

func (c *countingTask) Interval() time.Duration { return 10 * time.Millisecond }
func (c *countingTask) Name() string            { return "counting-task" }

func TestScheduler_RunsTasksOnInterval(t *testing.T) {
	task := &countingTask{}

	s := New(context.Background())
	s.AddTask(task)
	s.Start()

	// First run happens immediately, further runs on every tick
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	assert.GreaterOrEqual(t, task.runs.Load(), int64(2))
}

func TestScheduler_CountsRunsAndErrors(t *testing.T) {
	task := &countingTask{failEvenRun: true}

	s := New(context.Background())
	s.AddTask(task)
	s.Start()

	time.Sleep(100 * time.Millisecond)
	s.Stop()

	require.Len(t, s.entries, 1)
	entry := s.entries[0]

	runs := entry.runs.Load()
	errors := entry.errors.Load()
	assert.GreaterOrEqual(t, runs, uint64(2))
	assert.GreaterOrEqual(t, errors, uint64(1))
	assert.LessOrEqual(t, errors, runs)
	assert.Equal(t, uint64(task.runs.Load()), runs)
}

func TestScheduler_StopWithoutTasks(t *testing.T) {
	s := New(context.Background())
	s.Start()
	s.Stop()

	assert.Empty(t, s.entries)
}
