package executor

import (
	"testing"
	"time"

	"github.com/asyncring/asyncring/scheduler"
)

type countingTask struct {
	polls  int
	finish int
	onPoll func(ctx scheduler.Context, polls int)
}

func (t *countingTask) Poll(ctx scheduler.Context) bool {
	t.polls++
	if t.onPoll != nil {
		t.onPoll(ctx, t.polls)
	}
	return t.polls >= t.finish
}

func TestSingleThreadedExecutor_RunsScheduledTasks(t *testing.T) {
	e := New()
	task := &countingTask{finish: 3}
	e.ScheduleTask(task)
	e.Run()

	// The task returns pending without suspending itself, so the
	// executor abandons it after its first poll.
	if task.polls != 1 {
		t.Fatalf("expected task polled once and then abandoned, got %d", task.polls)
	}
	e.Close()
}

func TestSingleThreadedExecutor_RunProcessesTasksScheduledDuringRun(t *testing.T) {
	e := New()
	var second countingTask
	second.finish = 1

	first := &countingTask{finish: 1, onPoll: func(ctx scheduler.Context, polls int) {
		e.ScheduleTask(&second)
	}}
	e.ScheduleTask(first)
	e.Run()

	if second.polls != 1 {
		t.Fatalf("expected task scheduled mid-run to also complete, got %d polls", second.polls)
	}
	e.Close()
}

func TestSingleThreadedExecutor_SuspendAndResumeFromAnotherGoroutine(t *testing.T) {
	e := New()
	resumed := make(chan struct{})

	task := &countingTask{finish: 2, onPoll: func(ctx scheduler.Context, polls int) {
		if polls == 1 {
			handle := ctx.SuspendTask()
			go func() {
				handle.ResumeTask()
				close(resumed)
			}()
		}
	}}
	e.ScheduleTask(task)
	e.Run()

	select {
	case <-resumed:
	case <-time.After(time.Second):
		t.Fatalf("resume goroutine never completed")
	}
	if task.polls != 2 {
		t.Fatalf("expected task polled twice (suspend then resume), got %d", task.polls)
	}
	e.Close()
}

func TestSingleThreadedExecutor_AbandonedTaskIsDropped(t *testing.T) {
	e := New()
	polled := make(chan struct{})

	task := &countingTask{finish: 1000, onPoll: func(ctx scheduler.Context, polls int) {
		if polls == 1 {
			handle := ctx.SuspendTask()
			handle.Reset() // drop the only outstanding reference: abandons the task
			close(polled)
		}
	}}
	e.ScheduleTask(task)
	e.Run()

	<-polled
	if task.polls != 1 {
		t.Fatalf("abandoned task must not be polled again, got %d polls", task.polls)
	}
	e.Close()
}

func TestSingleThreadedExecutor_ScheduleAfterCloseByPanics(t *testing.T) {
	e := New()
	e.Close()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected ScheduleTask after Close to panic")
		}
	}()
	e.ScheduleTask(&countingTask{finish: 1})
}

func TestInlineExecutor_RunsTaskToCompletion(t *testing.T) {
	var exec InlineExecutor
	task := &countingTask{finish: 5}
	exec.Run(task)
	if task.polls != 5 {
		t.Fatalf("expected 5 polls, got %d", task.polls)
	}
}

func TestInlineExecutor_SuspendPanics(t *testing.T) {
	var exec InlineExecutor
	task := &countingTask{finish: 2, onPoll: func(ctx scheduler.Context, polls int) {
		ctx.SuspendTask()
	}}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected suspending on InlineExecutor to panic")
		}
	}()
	exec.Run(task)
}
