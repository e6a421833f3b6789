package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Task is a unit of work run on a fixed interval
type Task interface {
	Run(ctx context.Context) error
	Interval() time.Duration
	Name() string
}

// taskEntry pairs a task with its lifetime counters
type taskEntry struct {
	task   Task
	runs   atomic.Uint64
	errors atomic.Uint64
}

// Scheduler runs registered tasks until stopped and keeps per-task run and
// error counts, reported when the scheduler shuts down
type Scheduler struct {
	ctx     context.Context
	cancel  context.CancelFunc
	entries []*taskEntry
	wg      sync.WaitGroup
}

// New creates a new task scheduler
func New(ctx context.Context) *Scheduler {
	ctx, cancel := context.WithCancel(ctx)
	return &Scheduler{
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddTask adds a task to the scheduler
func (s *Scheduler) AddTask(task Task) {
	s.entries = append(s.entries, &taskEntry{task: task})
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	for _, entry := range s.entries {
		s.wg.Add(1)
		go s.runTask(entry)
	}
	slog.Info("Task scheduler started", "task_count", len(s.entries))
}

// Stop gracefully stops all tasks, waits for them to finish and logs how
// often each one ran and failed over its lifetime
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()

	for _, entry := range s.entries {
		slog.Info("Task stopped",
			"task", entry.task.Name(),
			"runs", entry.runs.Load(),
			"errors", entry.errors.Load(),
		)
	}
	slog.Info("Task scheduler stopped")
}

// runTask runs a single task on its schedule, once immediately and then on
// every interval tick
func (s *Scheduler) runTask(entry *taskEntry) {
	defer s.wg.Done()

	ticker := time.NewTicker(entry.task.Interval())
	defer ticker.Stop()

	s.runOnce(entry)

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(entry)
		}
	}
}

func (s *Scheduler) runOnce(entry *taskEntry) {
	entry.runs.Add(1)
	if err := entry.task.Run(s.ctx); err != nil {
		entry.errors.Add(1)
		slog.Error("Error running task", "task", entry.task.Name(), "error", err)
	}
}
