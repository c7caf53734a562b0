package timing

import (
	"sort"
	"time"

	"github.com/yohamta/donburi"
)

// Scheduler runs callbacks once the clock passes their due time. Every
// callback belongs to an owner entity so a dying actor can drop all of its
// pending work in one call.
type Scheduler struct {
	now     time.Duration
	seq     uint64
	pending []*task
}

type task struct {
	owner     donburi.Entity
	due       time.Duration
	seq       uint64
	fn        func()
	taken     bool
	cancelled bool
}

// Handle cancels a single scheduled callback.
type Handle struct {
	t *task
}

// Cancel stops the callback if it has not run yet.
func (h Handle) Cancel() {
	if h.t != nil {
		h.t.cancelled = true
	}
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// After schedules fn to run delay after the current time.
func (s *Scheduler) After(owner donburi.Entity, delay time.Duration, fn func()) Handle {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	t := &task{owner: owner, due: s.now + delay, seq: s.seq, fn: fn}
	s.pending = append(s.pending, t)
	return Handle{t: t}
}

// CancelOwner drops every callback registered for owner that has not run,
// including ones already due in the batch currently executing.
func (s *Scheduler) CancelOwner(owner donburi.Entity) int {
	n := 0
	for _, t := range s.pending {
		if t.owner == owner && !t.cancelled {
			t.cancelled = true
			n++
		}
	}
	return n
}

// Pending reports how many callbacks are still waiting for owner.
func (s *Scheduler) Pending(owner donburi.Entity) int {
	n := 0
	for _, t := range s.pending {
		if t.owner == owner && !t.cancelled && !t.taken {
			n++
		}
	}
	return n
}

// Advance moves the scheduler to now and runs everything that became due,
// earliest first. Callbacks due at the same instant run in the order they
// were scheduled. Work scheduled from inside a callback runs in the same call
// when it is already due.
func (s *Scheduler) Advance(now time.Duration) {
	if now > s.now {
		s.now = now
	}
	for {
		due := s.takeDue()
		if len(due) == 0 {
			break
		}
		for _, t := range due {
			if !t.cancelled {
				t.fn()
			}
		}
	}
	s.compact()
}

func (s *Scheduler) Now() time.Duration { return s.now }

func (s *Scheduler) takeDue() []*task {
	var due []*task
	for _, t := range s.pending {
		if !t.taken && !t.cancelled && t.due <= s.now {
			t.taken = true
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].seq < due[j].seq
	})
	return due
}

func (s *Scheduler) compact() {
	live := s.pending[:0]
	for _, t := range s.pending {
		if !t.taken && !t.cancelled {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.pending); i++ {
		s.pending[i] = nil
	}
	s.pending = live
}
