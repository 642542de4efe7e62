package asyncring

// FutureState describes which of a Future's four states is current.
type FutureState int

const (
	// FutureEmpty holds neither a promise nor a result.
	FutureEmpty FutureState = iota
	// FuturePending holds a promise that has not yet produced a result.
	FuturePending
	// FutureOk holds a successful result.
	FutureOk
	// FutureError holds a failed result.
	FutureError
)

// Future holds onto a Promise until it completes, then retains the
// resulting value or error. Unlike a Promise, a Future keeps its
// result around so callers composing multiple asynchronous tasks
// don't have to plumb the result through themselves.
//
// A Future has a single owner responsible for driving it (calling
// Poll while it is pending) and for consuming its result once ready.
// It is not safe for concurrent use.
type Future[T, E any] struct {
	promise Promise[T, E]
	result  AsyncResult[T, E]
	pending bool
}

// NewFuture wraps p. If p is empty the future starts Empty; otherwise
// it starts Pending.
func NewFuture[T, E any](p Promise[T, E]) Future[T, E] {
	f := Future[T, E]{}
	if !p.IsEmpty() {
		f.promise = p
		f.pending = true
	}
	return f
}

// NewFutureFromResult wraps result. If result is pending the future
// starts Empty; otherwise it starts Ok or Error immediately.
func NewFutureFromResult[T, E any](result AsyncResult[T, E]) Future[T, E] {
	f := Future[T, E]{}
	if !result.IsPending() {
		f.result = result
	}
	return f
}

// State reports which of the future's four states is current.
func (f *Future[T, E]) State() FutureState {
	switch {
	case f.pending:
		return FuturePending
	case !f.result.IsPending():
		if f.result.IsOk() {
			return FutureOk
		}
		return FutureError
	default:
		return FutureEmpty
	}
}

// IsEmpty reports whether the future holds neither a promise nor a
// result.
func (f *Future[T, E]) IsEmpty() bool { return f.State() == FutureEmpty }

// IsPending reports whether the future still holds an unresolved
// promise.
func (f *Future[T, E]) IsPending() bool { return f.State() == FuturePending }

// IsOk reports whether the future holds a successful result.
func (f *Future[T, E]) IsOk() bool { return f.State() == FutureOk }

// IsError reports whether the future holds a failed result.
func (f *Future[T, E]) IsError() bool { return f.State() == FutureError }

// IsReady reports whether the future holds a result (Ok or Error).
func (f *Future[T, E]) IsReady() bool { return f.IsOk() || f.IsError() }

// Poll drives the future forward: if pending, it polls the underlying
// promise once. If that poll completes, the future transitions to Ok
// or Error and the promise is discarded. It reports whether the
// future's state is now ready (Ok or Error) -- true immediately if the
// future was already ready, false if it is Empty.
func (f *Future[T, E]) Poll(ctx Context) bool {
	switch f.State() {
	case FutureEmpty:
		return false
	case FuturePending:
		result := f.promise.Poll(ctx)
		if !result.IsPending() {
			f.result = result
			f.pending = false
			return true
		}
		return false
	default: // Ok or Error
		return true
	}
}

// Value returns the future's value without consuming it. It panics
// unless the future is Ok.
func (f *Future[T, E]) Value() T {
	if !f.IsOk() {
		panic(ErrFutureNotReady)
	}
	return f.result.Value()
}

// Error returns the future's error without consuming it. It panics
// unless the future is Error.
func (f *Future[T, E]) Error() E {
	if !f.IsError() {
		panic(ErrFutureNotReady)
	}
	return f.result.Error()
}

// Result returns the future's result without consuming it. It panics
// unless the future is ready.
func (f *Future[T, E]) Result() AsyncResult[T, E] {
	if !f.IsReady() {
		panic(ErrFutureNotReady)
	}
	return f.result
}

// Promise returns the future's in-flight promise without consuming
// it. It panics unless the future is Pending.
func (f *Future[T, E]) Promise() Promise[T, E] {
	if !f.IsPending() {
		panic(ErrFutureNotReady)
	}
	return f.promise
}

// TakeResult returns the future's result and resets it to Empty. It
// panics unless the future is ready.
func (f *Future[T, E]) TakeResult() AsyncResult[T, E] {
	if !f.IsReady() {
		panic(ErrFutureNotReady)
	}
	result := f.result
	f.result = AsyncResult[T, E]{}
	return result
}

// TakeValue returns the future's value and resets it to Empty. It
// panics unless the future is Ok.
func (f *Future[T, E]) TakeValue() T {
	if !f.IsOk() {
		panic(ErrFutureNotReady)
	}
	return f.TakeResult().Value()
}

// TakeError returns the future's error and resets it to Empty. It
// panics unless the future is Error.
func (f *Future[T, E]) TakeError() E {
	if !f.IsError() {
		panic(ErrFutureNotReady)
	}
	return f.TakeResult().Error()
}

// TakePromise returns the future's promise and resets it to Empty. It
// panics unless the future is Pending.
func (f *Future[T, E]) TakePromise() Promise[T, E] {
	if !f.IsPending() {
		panic(ErrFutureNotReady)
	}
	p := f.promise
	f.promise = Promise[T, E]{}
	f.pending = false
	return p
}
