package asyncring

import "errors"

// Namespace prefixes every sentinel error this package defines,
// matching the convention its teacher package uses for its own error
// values.
const Namespace = "asyncring"

var (
	// ErrEmptyResult is the panic value (never a returned error) when
	// Value/Error/TakeValue/TakeError is called on an AsyncResult whose
	// state does not match.
	ErrEmptyResult = errors.New(Namespace + ": AsyncResult access does not match its state")

	// ErrInvalidPromise is the panic value when an empty Promise (its
	// continuation already consumed, or never set) is polled or has its
	// continuation taken.
	ErrInvalidPromise = errors.New(Namespace + ": promise has no continuation")

	// ErrFutureNotReady is panicked by Future.TakeResult when the
	// future has not reached a terminal state.
	ErrFutureNotReady = errors.New(Namespace + ": future result is not ready")

	// ErrAbandoned is never returned or panicked by this module: an
	// abandoned continuation is dropped instead of polled again. It
	// exists for callers that keep their own liveness bookkeeping.
	ErrAbandoned = errors.New(Namespace + ": task was abandoned while suspended")
)
