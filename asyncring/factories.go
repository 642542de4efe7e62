package asyncring

// MakePromise wraps handler as an unboxed Promise. The type of the
// promise's result is inferred from the handler's signature.
func MakePromise[T, E any](handler Continuation[T, E]) Promise[T, E] {
	return New(handler)
}

// MakeResultPromise returns a promise that immediately returns result
// the first time it is polled. Useful for functions with multiple
// branches, some of which complete synchronously.
func MakeResultPromise[T, E any](result AsyncResult[T, E]) Promise[T, E] {
	return New(func(Context) AsyncResult[T, E] {
		return result
	})
}

// MakeOkPromise returns a promise that immediately succeeds with
// value.
func MakeOkPromise[T, E any](value T) Promise[T, E] {
	return MakeResultPromise[T, E](Ok[T, E](value))
}

// MakeErrorPromise returns a promise that immediately fails with err.
func MakeErrorPromise[T, E any](err E) Promise[T, E] {
	return MakeResultPromise[T, E](Err[T, E](err))
}

// JoinResult2 is the result of JoinPromises2: the paired results of
// two jointly-awaited promises, delivered together once both are
// ready.
type JoinResult2[T1, E1, T2, E2 any] struct {
	First  AsyncResult[T1, E1]
	Second AsyncResult[T2, E2]
}

// JoinPromises2 jointly evaluates two promises and returns a promise
// that produces both of their results once they have both completed.
// Go's lack of variadic generics keeps this to a fixed arity; callers
// awaiting more promises at once should use JoinPromiseVector.
func JoinPromises2[T1, E1, T2, E2 any](p1 Promise[T1, E1], p2 Promise[T2, E2]) Promise[JoinResult2[T1, E1, T2, E2], struct{}] {
	f1 := NewFuture(p1)
	f2 := NewFuture(p2)
	return New(func(ctx Context) AsyncResult[JoinResult2[T1, E1, T2, E2], struct{}] {
		r1 := f1.Poll(ctx)
		r2 := f2.Poll(ctx)
		if !r1 || !r2 {
			return Pending[JoinResult2[T1, E1, T2, E2], struct{}]()
		}
		return Ok[JoinResult2[T1, E1, T2, E2], struct{}](JoinResult2[T1, E1, T2, E2]{
			First:  f1.TakeResult(),
			Second: f2.TakeResult(),
		})
	})
}

// JoinPromiseVector jointly evaluates a slice of homogeneous promises
// and returns a promise that produces a slice of their results, in
// the same order, once they have all completed.
func JoinPromiseVector[T, E any](promises []Promise[T, E]) Promise[[]AsyncResult[T, E], struct{}] {
	futures := make([]Future[T, E], len(promises))
	for i, p := range promises {
		futures[i] = NewFuture(p)
	}
	return New(func(ctx Context) AsyncResult[[]AsyncResult[T, E], struct{}] {
		allReady := true
		for i := range futures {
			if !futures[i].Poll(ctx) {
				allReady = false
			}
		}
		if !allReady {
			return Pending[[]AsyncResult[T, E], struct{}]()
		}
		results := make([]AsyncResult[T, E], len(futures))
		for i := range futures {
			results[i] = futures[i].TakeResult()
		}
		return Ok[[]AsyncResult[T, E], struct{}](results)
	})
}
