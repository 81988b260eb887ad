package combobox

// Scheduler queues work deferred out of the current event.
//
// Flush runs after-render tasks first, then next-tick tasks. Tasks queued
// while a flush is running wait for the following flush.
type Scheduler struct {
	afterRender []task
	nextTick    []task
	stopped     bool
}

type task struct {
	key string
	fn  func()
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// AfterRender queues fn to run once the next frame has been drawn. A
// non-empty key makes the task unique: while a task with the same key is
// pending, further ones are dropped.
func (s *Scheduler) AfterRender(key string, fn func()) {
	if s.stopped {
		return
	}
	if key != "" {
		for _, t := range s.afterRender {
			if t.key == key {
				return
			}
		}
	}
	s.afterRender = append(s.afterRender, task{key: key, fn: fn})
}

// Defer queues fn for the next tick.
func (s *Scheduler) Defer(fn func()) {
	if s.stopped {
		return
	}
	s.nextTick = append(s.nextTick, task{fn: fn})
}

// Pending reports whether any task is waiting.
func (s *Scheduler) Pending() bool {
	return len(s.afterRender) > 0 || len(s.nextTick) > 0
}

// Flush runs every task queued before the call and returns how many ran.
func (s *Scheduler) Flush() int {
	render, tick := s.afterRender, s.nextTick
	s.afterRender, s.nextTick = nil, nil

	ran := 0
	for _, t := range render {
		if s.stopped {
			return ran
		}
		t.fn()
		ran++
	}
	for _, t := range tick {
		if s.stopped {
			return ran
		}
		t.fn()
		ran++
	}
	return ran
}

// Stop drops pending work and refuses new tasks.
func (s *Scheduler) Stop() {
	s.stopped = true
	s.afterRender, s.nextTick = nil, nil
}
