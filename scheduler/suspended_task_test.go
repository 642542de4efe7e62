package scheduler

import "testing"

func TestSuspendedTask_EmptyIsNoop(t *testing.T) {
	var s SuspendedTask
	if !s.IsEmpty() {
		t.Fatalf("zero value must be empty")
	}
	s.Reset()
	s.ResumeTask()
	if clone := s.Clone(); !clone.IsEmpty() {
		t.Fatalf("cloning an empty handle must yield an empty handle")
	}
}

func TestSuspendedTask_ResetAbandonsLastRef(t *testing.T) {
	s := New()
	// FinalizeTicket releases the executor's retained ref, leaving the
	// handle's ref as the only one.
	ticket := s.ObtainTicket(2)
	task := &stubTask{}
	s.FinalizeTicket(ticket, task, false)

	handle := NewSuspendedTask(s, ticket)
	handle.Reset()

	if handle.resolver != nil || handle.valid {
		t.Fatalf("Reset must empty the receiver")
	}
	if s.HasSuspendedTasks() {
		t.Fatalf("Reset on the only outstanding ref must release the ticket")
	}
}

func TestSuspendedTask_CloneKeepsTaskAliveUntilBothReset(t *testing.T) {
	s := New()
	ticket := s.ObtainTicket(2)
	task := &stubTask{}
	s.FinalizeTicket(ticket, task, false)

	handle := NewSuspendedTask(s, ticket)
	clone := handle.Clone()

	handle.Reset()
	if !s.HasSuspendedTasks() {
		t.Fatalf("task must survive while the clone is still outstanding")
	}

	clone.Reset()
	if s.HasSuspendedTasks() {
		t.Fatalf("task must be released once both handles are reset")
	}
}

func TestSuspendedTask_ResumeTaskMovesTaskToRunnable(t *testing.T) {
	s := New()
	ticket := s.ObtainTicket(2)
	task := &stubTask{}
	s.FinalizeTicket(ticket, task, false)

	handle := NewSuspendedTask(s, ticket)
	handle.ResumeTask()

	if handle.valid {
		t.Fatalf("ResumeTask must empty the receiver")
	}
	if s.HasSuspendedTasks() {
		t.Fatalf("resumed task must no longer be suspended")
	}
	got := s.TakeRunnableTasks()
	if len(got) != 1 || got[0] != Task(task) {
		t.Fatalf("expected resumed task on runnable queue, got %v", got)
	}
}
