package asyncring

import "github.com/asyncring/asyncring/scheduler"

// Context is the capability an executor hands a continuation on each
// poll. A continuation that cannot make progress calls SuspendTask to
// obtain a handle it can resume from any goroutine once it becomes
// possible to make progress again.
type Context = scheduler.Context

// SuspendedTask is the ref-counted capability to resume or abandon a
// task that suspended itself mid-poll. It is obtained from
// Context.SuspendTask.
type SuspendedTask = scheduler.SuspendedTask

// Continuation is the callable a Promise wraps: repeatedly invoked by
// an executor (directly or via a combinator) until it returns a
// non-pending AsyncResult.
type Continuation[T, E any] func(ctx Context) AsyncResult[T, E]

// Promise wraps an asynchronous task as a continuation that is
// repeatedly invoked by an executor until it produces a result.
// Additional tasks can be chained onto it with the combinators in
// combinators.go.
//
// A Promise has single-ownership semantics: invoking it or taking its
// continuation leaves the receiver empty. It is not safe for
// concurrent or re-entrant use, though a Promise may be handed off to
// another goroutine between invocations.
type Promise[T, E any] struct {
	cont Continuation[T, E]
}

// New wraps handler as a Promise. Most callers reach this indirectly
// through MakePromise et al.; New is exposed for combinators and other
// low-level constructors within the package and its companions.
func New[T, E any](handler Continuation[T, E]) Promise[T, E] {
	return Promise[T, E]{cont: handler}
}

// IsEmpty reports whether the promise has no continuation, either
// because it was never given one or because Poll/Take already
// consumed it.
func (p Promise[T, E]) IsEmpty() bool { return p.cont == nil }

// Poll invokes the promise's continuation once. If the result is not
// pending, the promise's continuation is discarded, leaving the
// promise empty; a second Poll on an empty promise panics.
func (p *Promise[T, E]) Poll(ctx Context) AsyncResult[T, E] {
	if p.cont == nil {
		panic(ErrInvalidPromise)
	}
	result := p.cont(ctx)
	if !result.IsPending() {
		p.cont = nil
	}
	return result
}

// TakeContinuation removes and returns the promise's continuation,
// leaving the promise empty. It panics if the promise is already
// empty.
func (p *Promise[T, E]) TakeContinuation() Continuation[T, E] {
	if p.cont == nil {
		panic(ErrInvalidPromise)
	}
	cont := p.cont
	p.cont = nil
	return cont
}
