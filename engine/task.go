package engine

import (
	"sort"
	"time"
)

// TaskStatus is returned by a task callback to rearm or retire the task
type TaskStatus uint8

const (
	TaskCont TaskStatus = iota // Run again next frame
	TaskDone                   // Remove after this run
)

// TaskFunc is a per-frame callback
type TaskFunc func(t *Task) TaskStatus

// Task is a named, sorted per-frame callback
// Time is the elapsed time since the task first became eligible to run
type Task struct {
	Name  string
	Sort  int
	Time  time.Duration
	Dt    time.Duration // Delta of the current frame
	Frame uint64        // Frames this task has run

	fn      TaskFunc
	delay   time.Duration
	seq     uint64
	removed bool
}

// TaskManager runs tasks once per Step in (Sort, insertion) order on the caller goroutine
// Lower Sort values run first within a frame
type TaskManager struct {
	tasks   []*Task
	pending []*Task
	nextSeq uint64

	stepping bool
	frame    uint64
	now      time.Duration
}

func NewTaskManager() *TaskManager {
	return &TaskManager{}
}

// Add registers fn under name to run every frame starting with the next Step
func (m *TaskManager) Add(fn TaskFunc, name string, sort int) *Task {
	return m.DoMethodLater(0, fn, name, sort)
}

// DoMethodLater registers fn to start running once delay has elapsed
// Task.Time counts from the moment the delay expires
func (m *TaskManager) DoMethodLater(delay time.Duration, fn TaskFunc, name string, sort int) *Task {
	m.nextSeq++
	t := &Task{
		Name:  name,
		Sort:  sort,
		fn:    fn,
		delay: delay,
		seq:   m.nextSeq,
	}
	if m.stepping {
		m.pending = append(m.pending, t)
	} else {
		m.insert(t)
	}
	return t
}

// Remove retires every task registered under name, returns the number removed
func (m *TaskManager) Remove(name string) int {
	n := 0
	for _, t := range m.tasks {
		if t.Name == name && !t.removed {
			t.removed = true
			n++
		}
	}
	for _, t := range m.pending {
		if t.Name == name && !t.removed {
			t.removed = true
			n++
		}
	}
	if !m.stepping {
		m.compact()
	}
	return n
}

// HasTaskNamed reports whether a live task is registered under name
func (m *TaskManager) HasTaskNamed(name string) bool {
	for _, t := range m.tasks {
		if t.Name == name && !t.removed {
			return true
		}
	}
	for _, t := range m.pending {
		if t.Name == name && !t.removed {
			return true
		}
	}
	return false
}

// Count returns the number of live tasks
func (m *TaskManager) Count() int {
	n := 0
	for _, t := range m.tasks {
		if !t.removed {
			n++
		}
	}
	for _, t := range m.pending {
		if !t.removed {
			n++
		}
	}
	return n
}

// Names returns live task names in execution order
func (m *TaskManager) Names() []string {
	names := make([]string, 0, len(m.tasks))
	for _, t := range m.tasks {
		if !t.removed {
			names = append(names, t.Name)
		}
	}
	return names
}

// Frame returns the number of completed steps
func (m *TaskManager) Frame() uint64 { return m.frame }

// Now returns the accumulated step time
func (m *TaskManager) Now() time.Duration { return m.now }

// Step advances time by dt and runs every eligible task once
// Tasks added during the step first run on the next step
func (m *TaskManager) Step(dt time.Duration) {
	m.stepping = true
	m.now += dt

	for _, t := range m.tasks {
		if t.removed {
			continue
		}
		if t.delay > 0 {
			t.delay -= dt
			if t.delay > 0 {
				continue
			}
			// Overshoot counts as elapsed task time
			t.Time = -t.delay
			t.delay = 0
		} else if t.Frame > 0 {
			t.Time += dt
		}

		t.Dt = dt
		t.Frame++
		if t.fn(t) == TaskDone {
			t.removed = true
		}
	}

	m.stepping = false
	for _, t := range m.pending {
		if !t.removed {
			m.insert(t)
		}
	}
	m.pending = m.pending[:0]
	m.compact()
	m.frame++
}

func (m *TaskManager) insert(t *Task) {
	i := sort.Search(len(m.tasks), func(i int) bool {
		o := m.tasks[i]
		if o.Sort != t.Sort {
			return o.Sort > t.Sort
		}
		return o.seq > t.seq
	})
	m.tasks = append(m.tasks, nil)
	copy(m.tasks[i+1:], m.tasks[i:])
	m.tasks[i] = t
}

func (m *TaskManager) compact() {
	live := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.removed {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(m.tasks); i++ {
		m.tasks[i] = nil
	}
	m.tasks = live
}
