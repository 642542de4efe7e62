package scheduler

import "github.com/asyncring/asyncring/pool"

// Scheduler holds the bookkeeping an executor needs: a FIFO queue of
// runnable tasks and a ticket table of suspended ones. It is not safe
// for concurrent use; callers must serialize access, typically behind
// a single mutex owned by the executor.
type Scheduler struct {
	runnable       []Task
	tickets        map[Ticket]*ticketRecord
	nextTicket     Ticket
	suspendedCount int
	records        pool.Pool
	slices         pool.Pool
	shuttingDown   bool
}

// New constructs an empty Scheduler. Ticket records are recycled
// through a Dynamic pool: the poll loop allocates and frees one of
// these on every suspend/resume pair, and a sync.Pool-backed recycler
// keeps that churn off the regular allocator.
func New() *Scheduler {
	return &Scheduler{
		tickets: make(map[Ticket]*ticketRecord),
		records: pool.NewDynamic(func() interface{} { return &ticketRecord{} }),
		slices:  pool.NewDynamic(func() interface{} { return []Task(nil) }),
	}
}

// ScheduleTask pushes task onto the runnable FIFO, reusing a recycled
// backing array from the last TakeRunnableTasks/RecycleTasks round
// trip when one is available.
func (s *Scheduler) ScheduleTask(task Task) {
	if s.runnable == nil {
		if buf, _ := s.slices.Get().([]Task); buf != nil {
			s.runnable = buf
		}
	}
	s.runnable = append(s.runnable, task)
}

// RecycleTasks returns buf, emptied by the caller, to the run-queue
// slice recycler so a later ScheduleTask can reuse its backing array
// instead of growing a new one.
func (s *Scheduler) RecycleTasks(buf []Task) {
	s.slices.Put(buf[:0])
}

// ObtainTicket allocates a new ticket with the given initial refcount
// and an empty slot. initialRefs must be at least 1.
func (s *Scheduler) ObtainTicket(initialRefs int) Ticket {
	if initialRefs < 1 {
		panic("scheduler: ObtainTicket requires initialRefs >= 1")
	}
	s.nextTicket++
	t := s.nextTicket
	rec := s.records.Get().(*ticketRecord)
	rec.refcount = initialRefs
	rec.resumed = false
	rec.task = nil
	s.tickets[t] = rec
	return t
}

// releaseRecord returns rec to the recycler once its ticket has no
// remaining references.
func (s *Scheduler) releaseRecord(rec *ticketRecord) {
	s.records.Put(rec)
}

// FinalizeTicket is called by the executor after a single poll that
// obtained ticket. finished reports whether that poll's task completed
// (returned a non-pending result) despite having obtained a ticket; in
// that case the ticket is simply released and no slot work happens.
//
// Otherwise: if the ticket was already resumed (a race during the
// poll), task is pushed onto the runnable queue. Else if the ticket's
// refcount is still positive after releasing the executor's own
// retained reference, task is moved into the ticket's slot and the
// suspended-task counter is incremented. Else the task is abandoned
// and returned to the caller, who owns destroying it.
func (s *Scheduler) FinalizeTicket(ticket Ticket, task Task, finished bool) (abandoned Task) {
	rec, ok := s.tickets[ticket]
	if !ok {
		return nil
	}

	rec.refcount--

	if !finished {
		switch {
		case rec.resumed:
			s.runnable = append(s.runnable, task)
		case rec.refcount > 0:
			rec.task = task
			s.suspendedCount++
		default:
			abandoned = task
		}
	}

	if rec.refcount <= 0 {
		delete(s.tickets, ticket)
		s.releaseRecord(rec)
	}
	return abandoned
}

// DuplicateTicket increments ticket's refcount and returns it
// unchanged.
func (s *Scheduler) DuplicateTicket(ticket Ticket) Ticket {
	if rec, ok := s.tickets[ticket]; ok {
		rec.refcount++
	}
	return ticket
}

// ReleaseTicket decrements ticket's refcount. If this drops the last
// reference of a never-resumed ticket, its suspended task (if any) is
// returned for the caller to destroy.
func (s *Scheduler) ReleaseTicket(ticket Ticket) (abandoned Task) {
	rec, ok := s.tickets[ticket]
	if !ok {
		return nil
	}

	rec.refcount--
	if rec.refcount <= 0 {
		if !rec.resumed && rec.task != nil {
			abandoned = rec.task
			s.suspendedCount--
		}
		delete(s.tickets, ticket)
		s.releaseRecord(rec)
	}
	return abandoned
}

// ResumeTaskWithTicket decrements ticket's refcount and, if the ticket
// had not already been resumed, marks it resumed and moves its slot's
// task (if any) onto the runnable queue. It reports whether a task
// actually became runnable as a result of this call.
func (s *Scheduler) ResumeTaskWithTicket(ticket Ticket) (becameRunnable bool) {
	rec, ok := s.tickets[ticket]
	if !ok {
		return false
	}

	rec.refcount--

	if !rec.resumed {
		rec.resumed = true
		if rec.task != nil {
			s.runnable = append(s.runnable, rec.task)
			s.suspendedCount--
			rec.task = nil
			becameRunnable = true
		}
	}

	if rec.refcount <= 0 {
		delete(s.tickets, ticket)
		s.releaseRecord(rec)
	}
	return becameRunnable
}

// TakeRunnableTasks drains the runnable FIFO and returns its contents
// in order.
func (s *Scheduler) TakeRunnableTasks() []Task {
	out := s.runnable
	s.runnable = nil
	return out
}

// BeginShutdown marks the scheduler as shutting down. It is the only
// state in which TakeAllTasks is permitted, and is irreversible.
func (s *Scheduler) BeginShutdown() {
	s.shuttingDown = true
}

// TakeAllTasks drains the runnable FIFO and then every occupied ticket
// slot, zeroing the suspended-task counter. Ticket records themselves
// are left in place with their refcounts untouched: outside handles
// still own those refcounts, and a later ResumeTaskWithTicket or
// ReleaseTicket on one of them is a well-defined no-op on the slot
// (there is nothing left to move or abandon) that still adjusts the
// refcount and still deletes the record when it reaches zero.
//
// This is the shutdown primitive: draining every task out from under
// the scheduler so the caller can destroy them is only meaningful when
// no further scheduling will happen, so it panics unless BeginShutdown
// has already been called. Callers outside a shutdown sequence should
// use TakeRunnableTasks.
func (s *Scheduler) TakeAllTasks() []Task {
	if !s.shuttingDown {
		panic("scheduler: TakeAllTasks called while not shutting down")
	}
	out := s.runnable
	s.runnable = nil
	for _, rec := range s.tickets {
		if rec.task != nil {
			out = append(out, rec.task)
			rec.task = nil
		}
	}
	s.suspendedCount = 0
	return out
}

// HasRunnableTasks reports whether the runnable queue is non-empty.
func (s *Scheduler) HasRunnableTasks() bool { return len(s.runnable) > 0 }

// HasSuspendedTasks reports whether any ticket slot currently holds a
// task.
func (s *Scheduler) HasSuspendedTasks() bool { return s.suspendedCount > 0 }

// HasOutstandingTickets reports whether any ticket record still
// exists.
func (s *Scheduler) HasOutstandingTickets() bool { return len(s.tickets) > 0 }

// ResolveTicket implements Resolver in terms of ReleaseTicket and
// ResumeTaskWithTicket, so a Scheduler can back SuspendedTask handles
// directly when no executor adds bookkeeping of its own (as this
// package's tests do). A multi-goroutine executor instead wraps its
// Scheduler behind a mutex and implements Resolver itself.
func (s *Scheduler) ResolveTicket(ticket Ticket, resume bool) {
	if resume {
		s.ResumeTaskWithTicket(ticket)
		return
	}
	s.ReleaseTicket(ticket)
}

var _ Resolver = (*Scheduler)(nil)
