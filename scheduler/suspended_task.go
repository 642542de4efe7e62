package scheduler

// SuspendedTask is a ref-counted capability to resume or abandon one
// suspended task. Its zero value is empty and every operation on an
// empty handle is a safe no-op, mirroring a default-constructed handle
// in the source design.
//
// Unlike a C++ value type, a Go SuspendedTask has no copy constructor
// or destructor hook: duplicating the capability is the explicit
// Clone, and releasing it without resuming is the explicit Reset
// (typically deferred). Both empty the receiver afterwards, so a
// double Reset or a Reset following ResumeTask is a no-op.
type SuspendedTask struct {
	resolver Resolver
	ticket   Ticket
	valid    bool
}

// NewSuspendedTask wraps a ticket already reference-counted by r into a
// handle. Scheduler/executor-internal; application code never
// constructs a SuspendedTask directly, it receives one from
// Context.SuspendTask.
func NewSuspendedTask(r Resolver, ticket Ticket) SuspendedTask {
	return SuspendedTask{resolver: r, ticket: ticket, valid: true}
}

// IsEmpty reports whether the handle refers to any ticket.
func (s SuspendedTask) IsEmpty() bool { return !s.valid }

// Clone duplicates the capability, incrementing the underlying
// ticket's refcount. Cloning an empty handle yields another empty
// handle.
func (s SuspendedTask) Clone() SuspendedTask {
	if !s.valid {
		return SuspendedTask{}
	}
	return SuspendedTask{resolver: s.resolver, ticket: s.resolver.DuplicateTicket(s.ticket), valid: true}
}

// Reset releases the capability without resuming the task. If this was
// the last outstanding reference to the ticket and the task was never
// resumed, the task is abandoned. Reset on an empty handle is a no-op.
// After Reset the receiver is empty.
func (s *SuspendedTask) Reset() {
	if s.valid {
		s.resolver.ResolveTicket(s.ticket, false)
	}
	*s = SuspendedTask{}
}

// ResumeTask marks the ticket resumed (idempotent: a ticket already
// resumed by another handle is left untouched) and releases this
// handle's reference. ResumeTask on an empty handle is a no-op. After
// ResumeTask the receiver is empty.
func (s *SuspendedTask) ResumeTask() {
	if s.valid {
		s.resolver.ResolveTicket(s.ticket, true)
	}
	*s = SuspendedTask{}
}
