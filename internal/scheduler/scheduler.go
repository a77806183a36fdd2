// Package scheduler runs named recurring tasks on independent tickers. A
// tick that is still in flight when the ticker fires again causes that fire
// to be skipped rather than overlapped, and a panicking tick is recovered so
// the task keeps its schedule.
package scheduler

import (
	"context"
	"sync"
	"time"

	"passr/pkg/logger"
)

// TaskFunc is one tick of a recurring task. Errors are logged, never fatal.
type TaskFunc func(ctx context.Context) error

type task struct {
	name     string
	interval time.Duration
	run      TaskFunc
	busy     sync.Mutex
}

type Scheduler struct {
	tasks []*task
	wg    sync.WaitGroup
}

func New() *Scheduler {
	return &Scheduler{}
}

// Every registers a task to run each interval once Start is called.
func (s *Scheduler) Every(interval time.Duration, name string, run TaskFunc) {
	s.tasks = append(s.tasks, &task{
		name:     name,
		interval: interval,
		run:      run,
	})
}

// Start launches one goroutine per task. Tasks stop when ctx is cancelled;
// Wait blocks until all of them have exited.
func (s *Scheduler) Start(ctx context.Context) {
	for _, t := range s.tasks {
		s.wg.Add(1)
		go s.loop(ctx, t)
		logger.Info("Scheduled task %q every %s", t.name, t.interval)
	}
}

func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, t *task) {
	defer s.wg.Done()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !t.busy.TryLock() {
				logger.Warn("Task %q still running, skipping tick", t.name)
				continue
			}
			s.runOnce(ctx, t)
			t.busy.Unlock()
		case <-ctx.Done():
			return
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, t *task) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Task %q panicked: %v", t.name, r)
		}
	}()

	if err := t.run(ctx); err != nil {
		logger.Error("Task %q failed: %v", t.name, err)
	}
}
