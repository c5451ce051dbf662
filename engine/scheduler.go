package engine

import "sync"

// Scheduler defers the AI turn. Implementations must run each task exactly
// once and never concurrently with other calls into the same Game.
type Scheduler interface {
	Schedule(task func())
}

type SchedulerFunc func(task func())

func (f SchedulerFunc) Schedule(task func()) {
	f(task)
}

// QueueScheduler holds tasks until RunPending is called.
type QueueScheduler struct {
	mu    sync.Mutex
	tasks []func()
}

func (q *QueueScheduler) Schedule(task func()) {
	q.mu.Lock()
	q.tasks = append(q.tasks, task)
	q.mu.Unlock()
}

func (q *QueueScheduler) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// RunPending runs the tasks queued so far, in order, and returns how many ran.
// Tasks queued while running wait for the next call.
func (q *QueueScheduler) RunPending() int {
	q.mu.Lock()
	tasks := q.tasks
	q.tasks = nil
	q.mu.Unlock()
	for _, task := range tasks {
		task()
	}
	return len(tasks)
}
