package asyncring

// Chain is what a Then/AndThen/OrElse handler returns: either a
// finished result (Done) or another promise to await before the
// combined promise can finish (Continue). This is the Go stand-in for
// the source design's handler-return-shape detection (a value, an
// error, or another promise) — Go has no structural overload
// resolution, so the handler names which case it's in explicitly.
type Chain[U, E any] struct {
	result    AsyncResult[U, E]
	next      Promise[U, E]
	continued bool
}

// Done completes the chain immediately with result.
func Done[U, E any](result AsyncResult[U, E]) Chain[U, E] {
	return Chain[U, E]{result: result}
}

// DoneOk completes the chain immediately with a successful value.
func DoneOk[U, E any](value U) Chain[U, E] {
	return Done[U, E](Ok[U, E](value))
}

// DoneError completes the chain immediately with a failure.
func DoneError[U, E any](err E) Chain[U, E] {
	return Done[U, E](Err[U, E](err))
}

// Continue defers the chain's completion to another promise, which is
// polled to completion before the combined promise produces a result.
func Continue[U, E any](next Promise[U, E]) Chain[U, E] {
	return Chain[U, E]{next: next, continued: true}
}

// chainedPromise polls p, then on completion calls produce to obtain a
// Chain and drives it (polling the continuation promise, if any) to a
// final result. It is the shared engine behind Then/AndThen/OrElse.
func chainedPromise[T, E, U, E2 any](p Promise[T, E], produce func(Context, AsyncResult[T, E]) Chain[U, E2]) Promise[U, E2] {
	pf := NewFuture(p)
	var next Future[U, E2]
	haveNext := false

	return New(func(ctx Context) AsyncResult[U, E2] {
		if !haveNext {
			if !pf.Poll(ctx) {
				return Pending[U, E2]()
			}
			chain := produce(ctx, pf.TakeResult())
			if !chain.continued {
				return chain.result
			}
			next = NewFuture(chain.next)
			haveNext = true
		}
		if next.Poll(ctx) {
			return next.TakeResult()
		}
		return Pending[U, E2]()
	})
}

// Then runs handler once p completes, successfully or not, delivering
// its result. It consumes p.
func Then[T, E, U, E2 any](p Promise[T, E], handler func(AsyncResult[T, E]) Chain[U, E2]) Promise[U, E2] {
	return chainedPromise(p, func(_ Context, r AsyncResult[T, E]) Chain[U, E2] {
		return handler(r)
	})
}

// ThenCtx is Then for handlers that also need the poll's Context, e.g.
// to suspend themselves before producing a Chain.
func ThenCtx[T, E, U, E2 any](p Promise[T, E], handler func(Context, AsyncResult[T, E]) Chain[U, E2]) Promise[U, E2] {
	return chainedPromise(p, handler)
}

// AndThen runs handler once p completes successfully, delivering its
// value. If p fails, the error propagates unchanged and handler is
// never called. It consumes p.
func AndThen[T, E, U any](p Promise[T, E], handler func(T) Chain[U, E]) Promise[U, E] {
	return chainedPromise(p, func(_ Context, r AsyncResult[T, E]) Chain[U, E] {
		if r.IsError() {
			return Done[U, E](Err[U, E](r.Error()))
		}
		return handler(r.Value())
	})
}

// AndThenCtx is AndThen for handlers that also need the Context.
func AndThenCtx[T, E, U any](p Promise[T, E], handler func(Context, T) Chain[U, E]) Promise[U, E] {
	return chainedPromise(p, func(ctx Context, r AsyncResult[T, E]) Chain[U, E] {
		if r.IsError() {
			return Done[U, E](Err[U, E](r.Error()))
		}
		return handler(ctx, r.Value())
	})
}

// OrElse runs handler once p completes with an error, delivering that
// error. If p succeeds, the value propagates unchanged and handler is
// never called. It consumes p.
func OrElse[T, E, E2 any](p Promise[T, E], handler func(E) Chain[T, E2]) Promise[T, E2] {
	return chainedPromise(p, func(_ Context, r AsyncResult[T, E]) Chain[T, E2] {
		if r.IsOk() {
			return Done[T, E2](Ok[T, E2](r.Value()))
		}
		return handler(r.Error())
	})
}

// OrElseCtx is OrElse for handlers that also need the Context.
func OrElseCtx[T, E, E2 any](p Promise[T, E], handler func(Context, E) Chain[T, E2]) Promise[T, E2] {
	return chainedPromise(p, func(ctx Context, r AsyncResult[T, E]) Chain[T, E2] {
		if r.IsOk() {
			return Done[T, E2](Ok[T, E2](r.Value()))
		}
		return handler(ctx, r.Error())
	})
}

// Inspect runs handler once p completes, to examine (but not alter)
// its result, then propagates that same result onwards. Useful for
// logging or metrics mid-chain. It consumes p.
func Inspect[T, E any](p Promise[T, E], handler func(AsyncResult[T, E])) Promise[T, E] {
	pf := NewFuture(p)
	return New(func(ctx Context) AsyncResult[T, E] {
		if !pf.Poll(ctx) {
			return Pending[T, E]()
		}
		result := pf.TakeResult()
		handler(result)
		return result
	})
}

// InspectCtx is Inspect for handlers that also need the Context.
func InspectCtx[T, E any](p Promise[T, E], handler func(Context, AsyncResult[T, E])) Promise[T, E] {
	pf := NewFuture(p)
	return New(func(ctx Context) AsyncResult[T, E] {
		if !pf.Poll(ctx) {
			return Pending[T, E]()
		}
		result := pf.TakeResult()
		handler(ctx, result)
		return result
	})
}

// DiscardResult discards the result of p once it completes, producing
// a successful empty result regardless of whether p succeeded or
// failed. It consumes p.
func DiscardResult[T, E any](p Promise[T, E]) Promise[struct{}, struct{}] {
	pf := NewFuture(p)
	return New(func(ctx Context) AsyncResult[struct{}, struct{}] {
		if !pf.Poll(ctx) {
			return Pending[struct{}, struct{}]()
		}
		pf.TakeResult()
		return Ok[struct{}, struct{}](struct{}{})
	})
}

// Wrapper applies a transformation to a promise, such as imposing a
// FIFO execution order across a sequence of promises. It is the Go
// analogue of a wrap_with() wrapper object: a type with a Wrap method
// that consumes a promise and produces a new promise of the same type.
type Wrapper[T, E any] interface {
	Wrap(Promise[T, E]) Promise[T, E]
}

// WrapWith applies wrapper to p and returns the wrapped promise. It
// consumes p.
func WrapWith[T, E any](p Promise[T, E], wrapper Wrapper[T, E]) Promise[T, E] {
	return wrapper.Wrap(p)
}
