package scheduler

import "testing"

type stubTask struct {
	polls   int
	finish  int // number of Poll calls after which it returns true
	history []string
}

func (s *stubTask) Poll(ctx Context) bool {
	s.polls++
	return s.finish > 0 && s.polls >= s.finish
}

func TestSchedulerScheduleAndTakeRunnable(t *testing.T) {
	s := New()
	if s.HasRunnableTasks() {
		t.Fatalf("new scheduler should have no runnable tasks")
	}

	a, b := &stubTask{}, &stubTask{}
	s.ScheduleTask(a)
	s.ScheduleTask(b)

	if !s.HasRunnableTasks() {
		t.Fatalf("expected runnable tasks after ScheduleTask")
	}

	got := s.TakeRunnableTasks()
	if len(got) != 2 || got[0] != Task(a) || got[1] != Task(b) {
		t.Fatalf("TakeRunnableTasks returned %v, want FIFO order [a b]", got)
	}
	if s.HasRunnableTasks() {
		t.Fatalf("TakeRunnableTasks should drain the queue")
	}
}

func TestSchedulerObtainAndFinalizeTicket_Suspends(t *testing.T) {
	s := New()
	// One ref for the handed-out handle, one retained by the executor
	// and released by FinalizeTicket.
	ticket := s.ObtainTicket(2)
	if !s.HasOutstandingTickets() {
		t.Fatalf("expected an outstanding ticket")
	}

	task := &stubTask{}
	abandoned := s.FinalizeTicket(ticket, task, false)
	if abandoned != nil {
		t.Fatalf("task should not be abandoned, got %v", abandoned)
	}
	if !s.HasSuspendedTasks() {
		t.Fatalf("expected a suspended task after FinalizeTicket with no resume")
	}
	if s.HasRunnableTasks() {
		t.Fatalf("suspended task must not be runnable")
	}
}

func TestSchedulerFinalizeTicket_FinishedReleasesWithoutSuspending(t *testing.T) {
	s := New()
	ticket := s.ObtainTicket(1)
	task := &stubTask{}

	abandoned := s.FinalizeTicket(ticket, task, true)
	if abandoned != nil {
		t.Fatalf("finished task must never be reported abandoned")
	}
	if s.HasSuspendedTasks() || s.HasRunnableTasks() {
		t.Fatalf("finished ticket must leave nothing suspended or runnable")
	}
	if s.HasOutstandingTickets() {
		t.Fatalf("ticket with no outstanding refs must be removed")
	}
}

func TestSchedulerResumeTaskWithTicket_MovesTaskToRunnable(t *testing.T) {
	s := New()
	ticket := s.ObtainTicket(2)
	task := &stubTask{}
	s.FinalizeTicket(ticket, task, false)

	if becameRunnable := s.ResumeTaskWithTicket(ticket); !becameRunnable {
		t.Fatalf("expected ResumeTaskWithTicket to report becameRunnable=true")
	}
	if s.HasSuspendedTasks() {
		t.Fatalf("resumed task must no longer count as suspended")
	}
	got := s.TakeRunnableTasks()
	if len(got) != 1 || got[0] != Task(task) {
		t.Fatalf("expected resumed task on runnable queue, got %v", got)
	}
}

func TestSchedulerResumeTaskWithTicket_RaceBeforeSuspend(t *testing.T) {
	// Resuming a ticket before the task has been parked in its slot
	// (the poll that obtained the ticket hasn't called FinalizeTicket
	// yet) must not lose the resume: FinalizeTicket sees rec.resumed
	// and pushes the task straight onto the runnable queue instead of
	// suspending it.
	s := New()
	ticket := s.ObtainTicket(2)

	if becameRunnable := s.ResumeTaskWithTicket(ticket); becameRunnable {
		t.Fatalf("no task parked yet; resume cannot make anything runnable")
	}

	task := &stubTask{}
	abandoned := s.FinalizeTicket(ticket, task, false)
	if abandoned != nil {
		t.Fatalf("task should not be abandoned, got %v", abandoned)
	}
	if s.HasSuspendedTasks() {
		t.Fatalf("already-resumed ticket must not suspend its task")
	}
	got := s.TakeRunnableTasks()
	if len(got) != 1 || got[0] != Task(task) {
		t.Fatalf("expected task pushed to runnable queue, got %v", got)
	}
}

func TestSchedulerReleaseTicket_AbandonsLastSuspendedRef(t *testing.T) {
	s := New()
	ticket := s.ObtainTicket(2)
	task := &stubTask{}
	s.FinalizeTicket(ticket, task, false)

	abandoned := s.ReleaseTicket(ticket)
	if abandoned != Task(task) {
		t.Fatalf("expected task abandoned on last release, got %v", abandoned)
	}
	if s.HasSuspendedTasks() || s.HasOutstandingTickets() {
		t.Fatalf("abandoned ticket must leave no suspended task or ticket record")
	}
}

func TestSchedulerDuplicateTicket_KeepsTaskAliveUntilAllReleased(t *testing.T) {
	s := New()
	ticket := s.ObtainTicket(2)
	dup := s.DuplicateTicket(ticket)
	if dup != ticket {
		t.Fatalf("DuplicateTicket must return the same ticket value")
	}

	task := &stubTask{}
	s.FinalizeTicket(ticket, task, false)

	if abandoned := s.ReleaseTicket(ticket); abandoned != nil {
		t.Fatalf("task must survive while a duplicate ref is outstanding")
	}
	if !s.HasSuspendedTasks() {
		t.Fatalf("task should still be suspended")
	}

	abandoned := s.ReleaseTicket(ticket)
	if abandoned != Task(task) {
		t.Fatalf("releasing the last ref must abandon the task")
	}
}

func TestSchedulerTakeAllTasks_PanicsBeforeShutdown(t *testing.T) {
	s := New()
	s.ScheduleTask(&stubTask{})

	defer func() {
		if recover() == nil {
			t.Fatalf("expected TakeAllTasks before BeginShutdown to panic")
		}
	}()
	s.TakeAllTasks()
}

func TestSchedulerTakeAllTasks_DrainsRunnableAndSuspended(t *testing.T) {
	s := New()
	runnable := &stubTask{}
	s.ScheduleTask(runnable)

	ticket := s.ObtainTicket(2)
	suspended := &stubTask{}
	s.FinalizeTicket(ticket, suspended, false)

	s.BeginShutdown()
	all := s.TakeAllTasks()
	if len(all) != 2 {
		t.Fatalf("expected 2 drained tasks, got %d", len(all))
	}
	if s.HasRunnableTasks() || s.HasSuspendedTasks() {
		t.Fatalf("TakeAllTasks must leave nothing runnable or suspended")
	}
	// The ticket record itself is untouched; a later release on it
	// must still be a safe no-op that removes the record.
	if abandoned := s.ReleaseTicket(ticket); abandoned != nil {
		t.Fatalf("ReleaseTicket after TakeAllTasks must not re-abandon the drained task")
	}
	if s.HasOutstandingTickets() {
		t.Fatalf("ticket should be gone after its final release")
	}
}
