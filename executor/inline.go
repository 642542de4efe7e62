package executor

import "github.com/asyncring/asyncring/scheduler"

// InlineExecutor drives a single task to completion inline, without
// any dispatch loop or the ability to suspend across invocations. It
// is useful for tests and for call sites that know their task
// completes synchronously.
//
// Suspending a task run on InlineExecutor panics with
// ErrInlineSuspend: there is no mechanism by which a goroutine could
// ever resume it.
type InlineExecutor struct{}

// Run polls task repeatedly until it completes. Because
// InlineExecutor's Context panics on SuspendTask, this only returns
// for tasks that never suspend.
func (InlineExecutor) Run(task scheduler.Task) {
	ctx := inlineContext{}
	for !task.Poll(ctx) {
	}
}

type inlineContext struct{}

func (inlineContext) SuspendTask() scheduler.SuspendedTask {
	panic(ErrInlineSuspend)
}

var _ scheduler.Context = inlineContext{}
