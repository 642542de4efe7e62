package scheduler

// Ticket is a monotonically allocated identifier keying one suspended
// task and its reference count. Tickets are never reused within a
// Scheduler's lifetime.
type Ticket uint64

// Context is the per-poll capability a continuation uses to suspend
// itself. SuspendTask obtains a SuspendedTask handle for the task
// currently being polled; the first call within one poll allocates the
// backing ticket, later calls in the same poll duplicate it.
type Context interface {
	SuspendTask() SuspendedTask
}

// Task is anything a Scheduler can queue and an executor can drive to
// completion by polling it. Poll runs the task once and reports
// whether it finished (true) or must be polled again later (false).
type Task interface {
	Poll(ctx Context) bool
}

// Resolver is the thread-safe capability backing a SuspendedTask. It is
// the minimal dynamic-dispatch surface an executor must expose so that
// SuspendedTask handles created on one goroutine can be resolved from
// any other.
type Resolver interface {
	// DuplicateTicket increments the refcount for ticket and returns it
	// unchanged; the returned value names the same ticket as the input.
	DuplicateTicket(ticket Ticket) Ticket

	// ResolveTicket decrements the refcount for ticket. If resume is
	// true and the ticket has not already been resumed, it marks the
	// ticket resumed and arranges for its task to become runnable.
	ResolveTicket(ticket Ticket, resume bool)
}

// ticketRecord is the Scheduler-internal bookkeeping for one ticket.
type ticketRecord struct {
	refcount int
	resumed  bool
	task     Task // non-nil while a task is suspended under this ticket
}
