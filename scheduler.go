package recycler

import "sync"

// TaskResult is what a Task reports after one step.
type TaskResult int

const (
	// TaskRunning asks to be stepped again on the next tick.
	TaskRunning TaskResult = iota
	// TaskSucceeded, TaskFailed and TaskAborted remove the task.
	TaskSucceeded
	TaskFailed
	TaskAborted
)

func (r TaskResult) String() string {
	switch r {
	case TaskRunning:
		return "running"
	case TaskSucceeded:
		return "succeeded"
	case TaskFailed:
		return "failed"
	case TaskAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Task is a unit of cooperative work advanced once per scheduler tick.
type Task interface {
	Step() TaskResult
}

// Scheduler drives tasks one step per frame.
//
// Host layout writes are only observable on the frame after they are issued,
// so multi-step work (stepped pool initialization) yields between steps and
// resumes on the next Tick. Everything runs on the caller's goroutine; the
// mutex only guards registration from other goroutines.
//
// Usage:
//
//	sched := recycler.NewScheduler()
//	r, _ := recycler.New(pool, recycler.WithScheduler(sched))
//	r.Initialize(proto, viewport, content, source)
//	for !window.ShouldClose() {
//	    sched.Tick() // once at the start of each frame
//	    ...
//	}
type Scheduler struct {
	mu    sync.Mutex
	tasks []Task
	frame uint64
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Schedule appends t. It is first stepped on the next Tick.
func (s *Scheduler) Schedule(t Task) {
	if t == nil {
		return
	}
	s.mu.Lock()
	s.tasks = append(s.tasks, t)
	s.mu.Unlock()
}

// Tick advances the frame counter and steps every pending task once, in
// scheduling order. Tasks scheduled during Tick wait for the next one.
// It returns the number of tasks still running.
func (s *Scheduler) Tick() int {
	s.mu.Lock()
	s.frame++
	tasks := s.tasks // Copy slice under lock
	s.tasks = nil
	s.mu.Unlock()

	running := tasks[:0]
	for _, t := range tasks {
		if t.Step() == TaskRunning {
			running = append(running, t)
		}
	}

	s.mu.Lock()
	s.tasks = append(running, s.tasks...)
	n := len(s.tasks)
	s.mu.Unlock()
	return n
}

// Pending returns the number of tasks waiting for a tick.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Frame returns the number of ticks so far.
func (s *Scheduler) Frame() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// RunUntilIdle ticks until no task is pending or maxTicks is reached and
// returns the number of ticks used. Tools and tests use it to finish stepped
// work without a render loop.
func (s *Scheduler) RunUntilIdle(maxTicks int) int {
	ticks := 0
	for ticks < maxTicks && s.Pending() > 0 {
		s.Tick()
		ticks++
	}
	return ticks
}
