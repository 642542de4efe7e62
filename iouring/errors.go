package iouring

import "errors"

// Namespace prefixes this package's sentinel errors.
const Namespace = "iouring"

var (
	// ErrUnsupportedPlatform is returned by New and by every Ring method
	// on any OS other than Linux, where io_uring does not exist.
	ErrUnsupportedPlatform = errors.New(Namespace + ": io_uring is only available on linux")

	// ErrSubmissionQueueFull is returned by GetSubmissionEntry when the
	// submission queue has no free slot; the caller must Submit first.
	ErrSubmissionQueueFull = errors.New(Namespace + ": submission queue is full")

	// ErrNoCompletion is returned by PeekCompletionEntry when no
	// completion is currently available.
	ErrNoCompletion = errors.New(Namespace + ": no completion entry available")

	// ErrClosed is returned by Submit and Close on a Ring that has
	// already been closed. The other Ring methods do not check whether
	// the ring is closed.
	ErrClosed = errors.New(Namespace + ": ring is closed")
)
