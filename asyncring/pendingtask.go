package asyncring

import "github.com/asyncring/asyncring/scheduler"

// PendingTask holds an arbitrary promise with its result discarded,
// ready to schedule on an executor via scheduler.Task. An executor
// repeatedly polls a pending task until it reports completion; if the
// caller needs the promise's result, it must capture it with a
// combinator (e.g. Inspect) before wrapping the promise into a task.
type PendingTask struct {
	promise Promise[struct{}, struct{}]
}

// NewPendingTask wraps p, discarding whatever value and error type it
// produces.
func NewPendingTask[T, E any](p Promise[T, E]) PendingTask {
	return PendingTask{promise: DiscardResult(p)}
}

// IsEmpty reports whether the task has already completed (or was
// never given a promise).
func (t *PendingTask) IsEmpty() bool { return t.promise.IsEmpty() }

// Poll evaluates the task once. It reports true once the task's
// promise completes, at which point the task reverts to empty.
func (t *PendingTask) Poll(ctx scheduler.Context) bool {
	result := t.promise.Poll(ctx)
	return !result.IsPending()
}

// TakePromise extracts the task's promise, leaving the task empty.
func (t *PendingTask) TakePromise() Promise[struct{}, struct{}] {
	p := t.promise
	t.promise = Promise[struct{}, struct{}]{}
	return p
}

var _ scheduler.Task = (*PendingTask)(nil)
